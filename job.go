package fragmerge

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/merge"
	"github.com/tsawler/fragmerge/metrics"
	"github.com/tsawler/fragmerge/preview"
	"github.com/tsawler/fragmerge/selector"
	"github.com/tsawler/fragmerge/svgdoc"
)

// ErrUnknownName is returned when IDs names a fragment the document does
// not have.
var ErrUnknownName = errors.New("fragmerge: no fragment with this name")

// Warning is a non-fatal condition reported by a merge.
type Warning = merge.Warning

// Job provides a fluent interface for configuring a merge. Each
// configuration method returns a new Job, so partially configured jobs can
// be shared.
type Job struct {
	// Source
	filename string
	doc      *document.Document

	// Configuration
	options MergeOptions
}

// clone creates a shallow copy of the Job with a deep copy of options.
func (j *Job) clone() *Job {
	return &Job{
		filename: j.filename,
		doc:      j.doc,
		options:  j.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Job instance)
// ============================================================================

// IDs selects fragments by SVG id. Multiple calls are cumulative.
//
// Example:
//
//	out, _, err := fragmerge.Open("page.svg").IDs("a", "b").Merge()
func (j *Job) IDs(names ...string) *Job {
	newJob := j.clone()
	newJob.options.names = append(newJob.options.names, names...)
	return newJob
}

// Where selects fragments with a JavaScript predicate; see package selector
// for the available fields.
//
// Example:
//
//	out, _, err := fragmerge.Open("page.svg").Where(`size == 12`).Merge()
func (j *Job) Where(expr string) *Job {
	newJob := j.clone()
	newJob.options.where = expr
	return newJob
}

// Metrics chooses the font metrics backend: "mono", "sfnt" or "harfbuzz".
func (j *Job) Metrics(name string) *Job {
	newJob := j.clone()
	newJob.options.metrics = name
	return newJob
}

// FontFile loads the font measured by the sfnt and harfbuzz backends
// instead of Go Regular.
func (j *Job) FontFile(path string) *Job {
	newJob := j.clone()
	newJob.options.fontFile = path
	return newJob
}

// WidthTolerance sets an absolute seam tolerance in document units.
func (j *Job) WidthTolerance(v float64) *Job {
	newJob := j.clone()
	newJob.options.config.WidthTolerance = v
	return newJob
}

// WidthToleranceRatio sets the seam tolerance as a fraction of the font
// size.
func (j *Job) WidthToleranceRatio(v float64) *Job {
	newJob := j.clone()
	newJob.options.config.WidthToleranceRatio = v
	return newJob
}

// BaselineShiftThreshold sets the anchor offset above which appended
// fragments get a compensating baseline shift.
func (j *Job) BaselineShiftThreshold(v float64) *Job {
	newJob := j.clone()
	newJob.options.config.BaselineShiftThreshold = v
	return newJob
}

// SameLineTolerance sets the rounding used to bucket fragments into lines.
func (j *Job) SameLineTolerance(v float64) *Job {
	newJob := j.clone()
	newJob.options.config.SameLineTolerance = v
	return newJob
}

// AlignmentEpsilon sets the amplitude under which lines count as flush
// left.
func (j *Job) AlignmentEpsilon(v float64) *Job {
	newJob := j.clone()
	newJob.options.config.AlignmentEpsilon = v
	return newJob
}

// WithConfig replaces every engine setting at once.
func (j *Job) WithConfig(config merge.Config) *Job {
	newJob := j.clone()
	newJob.options.config = config
	return newJob
}

// ============================================================================
// Terminal Methods
// ============================================================================

// Output is the document after a merge.
type Output struct {
	Document *document.Document
	Result   *merge.Result
}

// WriteSVG writes the merged document to an SVG file.
func (o *Output) WriteSVG(filename string) error {
	return svgdoc.WriteFile(filename, o.Document)
}

// SavePNG renders the merged document to a PNG file.
func (o *Output) SavePNG(filename string) error {
	r, err := preview.NewRenderer()
	if err != nil {
		return err
	}
	return r.SavePNG(filename, o.Document)
}

// Merge loads the document, resolves the selection and merges it.
func (j *Job) Merge() (*Output, []Warning, error) {
	return j.MergeContext(context.Background())
}

// MergeContext is Merge with a context checked between merge steps.
func (j *Job) MergeContext(ctx context.Context) (*Output, []Warning, error) {
	doc, err := j.document()
	if err != nil {
		return nil, nil, err
	}
	ids, err := j.selection(doc)
	if err != nil {
		return nil, nil, err
	}

	res, err := merge.NewMergerWithConfig(j.options.config).Merge(ctx, doc, ids)
	if err != nil {
		return nil, nil, err
	}
	return &Output{Document: doc, Result: res}, res.Warnings, nil
}

// Selection loads the document and returns the fragments a merge would
// use, without merging.
func (j *Job) Selection() ([]document.FragmentID, error) {
	doc, err := j.document()
	if err != nil {
		return nil, err
	}
	return j.selection(doc)
}

func (j *Job) document() (*document.Document, error) {
	if j.doc != nil {
		return j.doc, nil
	}
	if j.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	var fontData []byte
	if j.options.fontFile != "" {
		data, err := os.ReadFile(j.options.fontFile)
		if err != nil {
			return nil, fmt.Errorf("reading font: %w", err)
		}
		fontData = data
	}
	m, err := metrics.Open(j.options.metrics, fontData)
	if err != nil {
		return nil, err
	}
	return svgdoc.Open(j.filename, m)
}

// selection resolves IDs and Where. With neither set it is the selection
// stored in the document.
func (j *Job) selection(doc *document.Document) ([]document.FragmentID, error) {
	if len(j.options.names) == 0 && j.options.where == "" {
		return doc.Selection(), nil
	}

	var ids []document.FragmentID
	seen := make(map[document.FragmentID]bool)
	for _, name := range j.options.names {
		id, ok := doc.FindByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if j.options.where != "" {
		matched, err := selector.Select(doc, j.options.where)
		if err != nil {
			return nil, err
		}
		for _, id := range matched {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
