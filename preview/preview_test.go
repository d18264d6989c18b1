package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/metrics"
	"github.com/tsawler/fragmerge/model"
)

func TestRenderer_Render(t *testing.T) {
	doc := document.New(metrics.NewMonospace())
	id, _ := doc.NewFragment(model.Point{X: 0, Y: 0}, model.JustifyStart)
	_, _ = doc.AddRun(id, "Hello", document.Style{Size: 10, AutoLeading: true})
	_ = doc.Select(id)

	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	img, err := r.Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Bounds are 25 x 10 units at scale 2 plus a 16 pixel margin.
	b := img.Bounds()
	if b.Dx() != 82 || b.Dy() != 52 {
		t.Errorf("image is %dx%d, want 82x52", b.Dx(), b.Dy())
	}

	// Something besides the background was drawn.
	ink := false
	for y := b.Min.Y; y < b.Max.Y && !ink; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, g, bl, _ := img.At(x, y).RGBA(); r != 0xffff || g != 0xffff || bl != 0xffff {
				ink = true
				break
			}
		}
	}
	if !ink {
		t.Error("rendered image is blank")
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	doc := document.New(nil)
	id, _ := doc.NewFragment(model.Point{}, model.JustifyCenter)
	_, _ = doc.AddRun(id, "ab\rcd", document.Style{Size: 12, AutoLeading: true})

	r, _ := NewRenderer()
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf, doc); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestNewRendererWithConfig_InvalidScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scale = 0
	if _, err := NewRendererWithConfig(cfg); err == nil {
		t.Error("expected an error for a zero scale")
	}
}
