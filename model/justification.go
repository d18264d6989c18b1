package model

import "fmt"

// Justification is the paragraph-level horizontal alignment of a fragment.
// It decides which point of a row the fragment anchor refers to.
type Justification int

const (
	JustifyStart Justification = iota
	JustifyCenter
	JustifyEnd
)

// Justifications lists the candidate alignments in tie-break order.
var Justifications = []Justification{JustifyStart, JustifyCenter, JustifyEnd}

// String returns a string representation of the justification
func (j Justification) String() string {
	switch j {
	case JustifyCenter:
		return "center"
	case JustifyEnd:
		return "end"
	default:
		return "start"
	}
}

// ParseJustification parses the names produced by String and the SVG
// text-anchor values ("start", "middle", "end").
func ParseJustification(s string) (Justification, error) {
	switch s {
	case "", "start", "left":
		return JustifyStart, nil
	case "center", "middle":
		return JustifyCenter, nil
	case "end", "right":
		return JustifyEnd, nil
	}
	return JustifyStart, fmt.Errorf("model: unknown justification %q", s)
}

// RowLeft returns the left edge of a row of the given width whose anchor is
// at anchorX.
func (j Justification) RowLeft(anchorX, width float64) float64 {
	switch j {
	case JustifyCenter:
		return anchorX - width/2
	case JustifyEnd:
		return anchorX - width
	default:
		return anchorX
	}
}

// Reference returns the reference x of a box under this justification:
// left edge, center or right edge.
func (j Justification) Reference(left, width float64) float64 {
	switch j {
	case JustifyCenter:
		return left + width/2
	case JustifyEnd:
		return left + width
	default:
		return left
	}
}
