package metrics

import (
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/fragmerge/model"
)

// Monospace is a fixed-pitch font model expressed in fractions of an em.
// Every rune advances by Advance*size; printable glyphs fill the advance box
// from the baseline up to CapHeight*size.
type Monospace struct {
	Advance   float64
	Ascent    float64
	Descent   float64
	CapHeight float64
}

// NewMonospace returns a half-em fixed-pitch model.
func NewMonospace() *Monospace {
	return &Monospace{
		Advance:   0.5,
		Ascent:    0.8,
		Descent:   0.2,
		CapHeight: 0.7,
	}
}

// Advances implements Metrics.
func (m *Monospace) Advances(s string, size float64) ([]float64, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	adv := make([]float64, 0, utf8.RuneCountInString(s))
	for range s {
		adv = append(adv, m.Advance*size)
	}
	return adv, nil
}

// GlyphBounds implements Metrics.
func (m *Monospace) GlyphBounds(r rune, size float64) (model.BBox, error) {
	if err := checkSize(size); err != nil {
		return model.BBox{}, err
	}
	if unicode.IsSpace(r) {
		return model.BBox{}, nil
	}
	return model.NewBBox(0, 0, m.Advance*size, m.CapHeight*size), nil
}

// VerticalMetrics implements Metrics.
func (m *Monospace) VerticalMetrics(size float64) (float64, float64, error) {
	if err := checkSize(size); err != nil {
		return 0, 0, err
	}
	return m.Ascent * size, m.Descent * size, nil
}
