package metrics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/fragmerge/model"
)

// SFNT measures a TrueType/OpenType font with golang.org/x/image/font/sfnt.
// Advances include pair kerning from the font's kern table when present.
//
// SFNT is safe for concurrent use; the shared sfnt.Buffer is guarded.
type SFNT struct {
	mu   sync.Mutex
	buf  sfnt.Buffer
	font *opentype.Font
}

// NewSFNT parses font data.
func NewSFNT(data []byte) (*SFNT, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to parse font: %w", err)
	}
	return &SFNT{font: f}, nil
}

// DefaultSFNT returns an SFNT backend for Go Regular.
func DefaultSFNT() (*SFNT, error) {
	return NewSFNT(goregular.TTF)
}

// Name returns the family name of the font, or "" if the font has none.
func (s *SFNT) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, err := s.font.Name(&s.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// Advances implements Metrics.
func (s *SFNT) Advances(text string, size float64) ([]float64, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	ppem := floatToFixed(size)

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		adv  []float64
		prev sfnt.GlyphIndex
	)
	for i, r := range []rune(text) {
		gi, err := s.font.GlyphIndex(&s.buf, r)
		if err != nil {
			return nil, fmt.Errorf("metrics: glyph index for %q: %w", r, err)
		}
		a, err := s.font.GlyphAdvance(&s.buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("metrics: glyph advance for %q: %w", r, err)
		}
		if i > 0 {
			// Missing kern tables report ErrNotFound; no kerning then.
			if k, err := s.font.Kern(&s.buf, prev, gi, ppem, font.HintingNone); err == nil {
				adv[i-1] += fixedToFloat(k)
			}
		}
		adv = append(adv, fixedToFloat(a))
		prev = gi
	}
	return adv, nil
}

// GlyphBounds implements Metrics.
func (s *SFNT) GlyphBounds(r rune, size float64) (model.BBox, error) {
	if err := checkSize(size); err != nil {
		return model.BBox{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gi, err := s.font.GlyphIndex(&s.buf, r)
	if err != nil {
		return model.BBox{}, fmt.Errorf("metrics: glyph index for %q: %w", r, err)
	}
	bounds, _, err := s.font.GlyphBounds(&s.buf, gi, floatToFixed(size), font.HintingNone)
	if err != nil {
		return model.BBox{}, fmt.Errorf("metrics: glyph bounds for %q: %w", r, err)
	}
	return boundsToBBox(bounds), nil
}

// VerticalMetrics implements Metrics.
func (s *SFNT) VerticalMetrics(size float64) (float64, float64, error) {
	if err := checkSize(size); err != nil {
		return 0, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.font.Metrics(&s.buf, floatToFixed(size), font.HintingNone)
	if err != nil {
		return 0, 0, fmt.Errorf("metrics: font metrics: %w", err)
	}
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent), nil
}

// boundsToBBox converts sfnt bounds (Y down) into a model box (Y up).
func boundsToBBox(b fixed.Rectangle26_6) model.BBox {
	if b.Empty() {
		return model.BBox{}
	}
	return model.BBox{
		X:      fixedToFloat(b.Min.X),
		Y:      -fixedToFloat(b.Max.Y),
		Width:  fixedToFloat(b.Max.X - b.Min.X),
		Height: fixedToFloat(b.Max.Y - b.Min.Y),
	}
}

// floatToFixed converts a float64 size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
