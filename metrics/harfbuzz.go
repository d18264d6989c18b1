package metrics

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tsawler/fragmerge/model"
)

// Harfbuzz measures advances with go-text/typesetting's HarfBuzz port, so
// ligatures and GPOS kerning are reflected in run widths. Ink bounds and
// vertical metrics come from an SFNT view of the same font data.
//
// Harfbuzz is safe for concurrent use: font.Face and HarfbuzzShaper are not,
// so shaping is serialized.
type Harfbuzz struct {
	mu     sync.Mutex
	face   *font.Face
	shaper shaping.HarfbuzzShaper
	sfnt   *SFNT
}

// NewHarfbuzz parses font data for shaping.
func NewHarfbuzz(data []byte) (*Harfbuzz, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("metrics: failed to parse font: %w", err)
	}
	s, err := NewSFNT(data)
	if err != nil {
		return nil, err
	}
	return &Harfbuzz{face: face, sfnt: s}, nil
}

// DefaultHarfbuzz returns a Harfbuzz backend for Go Regular.
func DefaultHarfbuzz() (*Harfbuzz, error) {
	return NewHarfbuzz(goregular.TTF)
}

// Advances implements Metrics. A ligature's advance is charged to the first
// rune of its cluster; the other runes of the cluster advance by zero.
func (h *Harfbuzz) Advances(s string, size float64) ([]float64, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	runes := []rune(s)
	adv := make([]float64, len(runes))
	if len(runes) == 0 {
		return adv, nil
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      h.face,
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	h.mu.Lock()
	out := h.shaper.Shape(input)
	h.mu.Unlock()

	for _, g := range out.Glyphs {
		idx := g.TextIndex()
		if idx < 0 || idx >= len(adv) {
			continue
		}
		adv[idx] += fixedToFloat(g.Advance)
	}
	return adv, nil
}

// GlyphBounds implements Metrics.
func (h *Harfbuzz) GlyphBounds(r rune, size float64) (model.BBox, error) {
	return h.sfnt.GlyphBounds(r, size)
}

// VerticalMetrics implements Metrics.
func (h *Harfbuzz) VerticalMetrics(size float64) (float64, float64, error) {
	return h.sfnt.VerticalMetrics(size)
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
