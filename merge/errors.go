package merge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/fragmerge/document"
)

var (
	ErrEmptySelection         = errors.New("merge: no text fragment selected")
	ErrMeasurementUnavailable = errors.New("merge: measurement unavailable")
	ErrNonConvergentSearch    = errors.New("merge: tracking search found no exact width")
	ErrInvalidConfig          = errors.New("merge: invalid configuration")
)

// Warning is a non-fatal condition met during a merge.
type Warning struct {
	Err      error
	Fragment document.FragmentID
	Message  string
}

// String formats the warning for display
func (w Warning) String() string {
	if w.Message == "" {
		return fmt.Sprintf("fragment %d: %v", w.Fragment, w.Err)
	}
	return fmt.Sprintf("fragment %d: %v: %s", w.Fragment, w.Err, w.Message)
}

// FormatWarnings joins warnings into one notice, one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
