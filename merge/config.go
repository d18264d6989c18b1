package merge

import (
	"fmt"
)

// Config holds the tolerances of a merge
type Config struct {
	// WidthToleranceRatio is the accepted seam width error as a fraction of
	// the seam character's font size (default: 0.16)
	WidthToleranceRatio float64

	// WidthTolerance, when positive, replaces the ratio with an absolute
	// tolerance in document units (default: 0, use the ratio)
	WidthTolerance float64

	// BaselineShiftThreshold is the vertical anchor offset above which an
	// appended fragment gets a compensating baseline shift (default: 0.1)
	BaselineShiftThreshold float64

	// SameLineTolerance is the rounding increment used to bucket anchors
	// into lines (default: 1)
	SameLineTolerance float64

	// AlignmentEpsilon is the start-alignment amplitude under which lines
	// are considered flush left (default: 0.001)
	AlignmentEpsilon float64

	// TrackingMin and TrackingMax bound the tracking search, in thousandths
	// of an em (default: -1000, 1000)
	TrackingMin float64
	TrackingMax float64

	// TrackingResolution stops the bisection once the range is this narrow
	// (default: 0.25)
	TrackingResolution float64

	// ExactTolerance is the residual seam width error still reported as an
	// exact match (default: 0.01)
	ExactTolerance float64

	// MaxSeamSpaces caps the whitespace edits at one seam (default: 256)
	MaxSeamSpaces int

	// ReferenceGlyph is the glyph used to locate the baseline of the last
	// row of a multi-row line (default: "A")
	ReferenceGlyph string
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		WidthToleranceRatio:    0.16,
		WidthTolerance:         0,
		BaselineShiftThreshold: 0.1,
		SameLineTolerance:      1,
		AlignmentEpsilon:       0.001,
		TrackingMin:            -1000,
		TrackingMax:            1000,
		TrackingResolution:     0.25,
		ExactTolerance:         0.01,
		MaxSeamSpaces:          256,
		ReferenceGlyph:         "A",
	}
}

// Validate reports configurations the search cannot run with.
func (c Config) Validate() error {
	switch {
	case c.WidthTolerance <= 0 && c.WidthToleranceRatio <= 0:
		return fmt.Errorf("%w: width tolerance must be positive", ErrInvalidConfig)
	case c.TrackingMin >= c.TrackingMax:
		return fmt.Errorf("%w: tracking range [%v, %v] is empty", ErrInvalidConfig, c.TrackingMin, c.TrackingMax)
	case c.TrackingResolution <= 0:
		return fmt.Errorf("%w: tracking resolution must be positive", ErrInvalidConfig)
	case c.BaselineShiftThreshold < 0 || c.SameLineTolerance < 0 || c.AlignmentEpsilon < 0:
		return fmt.Errorf("%w: thresholds must not be negative", ErrInvalidConfig)
	case c.ReferenceGlyph == "":
		return fmt.Errorf("%w: reference glyph is empty", ErrInvalidConfig)
	}
	return nil
}

// widthTolerance returns the seam tolerance for a seam character of size.
func (c Config) widthTolerance(size float64) float64 {
	if c.WidthTolerance > 0 {
		return c.WidthTolerance
	}
	return c.WidthToleranceRatio * size
}
