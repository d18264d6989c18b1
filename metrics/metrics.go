package metrics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/fragmerge/model"
)

// ErrUnsupportedSize is returned when a size is not strictly positive.
var ErrUnsupportedSize = errors.New("metrics: font size must be positive")

// Metrics measures glyphs of a single font.
type Metrics interface {
	// Advances returns the advance width of every rune of s at size.
	// len(result) == utf8.RuneCountInString(s).
	Advances(s string, size float64) ([]float64, error)

	// GlyphBounds returns the ink bounds of r relative to the pen origin
	// on the baseline, Y up. Whitespace has empty bounds.
	GlyphBounds(r rune, size float64) (model.BBox, error)

	// VerticalMetrics returns the ascent and descent (both positive) at size.
	VerticalMetrics(size float64) (ascent, descent float64, err error)
}

// Backend names accepted by Open.
const (
	BackendMonospace = "mono"
	BackendSFNT      = "sfnt"
	BackendHarfbuzz  = "harfbuzz"
)

// Open returns the backend called name. fontData may be nil, in which case
// the sfnt based backends use Go Regular.
func Open(name string, fontData []byte) (Metrics, error) {
	switch strings.ToLower(name) {
	case "", BackendMonospace, "monospace":
		return NewMonospace(), nil
	case BackendSFNT:
		if fontData == nil {
			return DefaultSFNT()
		}
		return NewSFNT(fontData)
	case BackendHarfbuzz, "hb":
		if fontData == nil {
			return DefaultHarfbuzz()
		}
		return NewHarfbuzz(fontData)
	}
	return nil, fmt.Errorf("metrics: unknown backend %q", name)
}

func checkSize(size float64) error {
	if !(size > 0) {
		return fmt.Errorf("%w: %v", ErrUnsupportedSize, size)
	}
	return nil
}
