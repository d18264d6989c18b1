// Package preview rasterizes the fragments of a document to PNG, to check a
// merge by eye.
package preview

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/model"
)

// Config holds configuration for rendering
type Config struct {
	// Scale is the number of pixels per document unit (default: 2)
	Scale float64

	// Margin is the blank border around the content, in pixels (default: 16)
	Margin float64

	// ShowBounds outlines every fragment's measured bounds (default: true)
	ShowBounds bool

	// Colors, as hex strings understood by gg
	Background string
	Ink        string
	Bounds     string
	Selected   string
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Scale:      2,
		Margin:     16,
		ShowBounds: true,
		Background: "#ffffff",
		Ink:        "#000000",
		Bounds:     "#9e9e9e",
		Selected:   "#d32f2f",
	}
}

// Renderer draws documents with the Go Regular font.
type Renderer struct {
	config Config
	font   *opentype.Font
	faces  map[float64]font.Face
}

// NewRenderer creates a renderer with default configuration
func NewRenderer() (*Renderer, error) {
	return NewRendererWithConfig(DefaultConfig())
}

// NewRendererWithConfig creates a renderer with custom configuration
func NewRendererWithConfig(config Config) (*Renderer, error) {
	if config.Scale <= 0 {
		return nil, fmt.Errorf("preview: scale must be positive, got %v", config.Scale)
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return &Renderer{config: config, font: f, faces: make(map[float64]font.Face)}, nil
}

// Render draws every measurable fragment of doc.
func (r *Renderer) Render(doc *document.Document) (image.Image, error) {
	dc, err := r.draw(doc)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// EncodePNG renders doc and writes it to w as PNG.
func (r *Renderer) EncodePNG(w io.Writer, doc *document.Document) error {
	dc, err := r.draw(doc)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG renders doc to a PNG file.
func (r *Renderer) SavePNG(filename string, doc *document.Document) error {
	dc, err := r.draw(doc)
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

type item struct {
	id       document.FragmentID
	bounds   model.BBox
	selected bool
}

func (r *Renderer) draw(doc *document.Document) (*gg.Context, error) {
	selected := make(map[document.FragmentID]bool)
	for _, id := range doc.Selection() {
		selected[id] = true
	}

	var items []item
	var extent model.BBox
	for _, id := range doc.Fragments() {
		g, err := doc.Measure(id)
		if err != nil {
			continue
		}
		items = append(items, item{id: id, bounds: g.Bounds, selected: selected[id]})
		extent = extent.Union(g.Bounds)
	}

	s, m := r.config.Scale, r.config.Margin
	w := int(math.Ceil(extent.Width*s + 2*m))
	h := int(math.Ceil(extent.Height*s + 2*m))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.SetHexColor(r.config.Background)
	dc.Clear()

	// Document y grows upward.
	toX := func(x float64) float64 { return (x-extent.Left())*s + m }
	toY := func(y float64) float64 { return (extent.Top()-y)*s + m }

	for _, it := range items {
		if r.config.ShowBounds {
			color := r.config.Bounds
			if it.selected {
				color = r.config.Selected
			}
			dc.SetHexColor(color)
			dc.SetLineWidth(1)
			dc.DrawRectangle(toX(it.bounds.Left()), toY(it.bounds.Top()), it.bounds.Width*s, it.bounds.Height*s)
			dc.Stroke()
		}

		glyphs, err := doc.Glyphs(it.id)
		if err != nil {
			return nil, err
		}
		dc.SetHexColor(r.config.Ink)
		for _, g := range glyphs {
			if document.IsSpace(g.Cluster) {
				continue
			}
			face, err := r.face(g.Size * s)
			if err != nil {
				return nil, err
			}
			dc.SetFontFace(face)
			dc.DrawString(g.Cluster, toX(g.X), toY(g.Baseline+g.Shift))
		}
	}
	return dc, nil
}

func (r *Renderer) face(size float64) (font.Face, error) {
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face: %w", err)
	}
	r.faces[size] = f
	return f, nil
}
