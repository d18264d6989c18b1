// Package fragmerge provides a fluent API for merging split text fragments
// of an SVG file back into one line or paragraph.
//
// Basic usage:
//
//	out, warnings, err := fragmerge.Open("page.svg").IDs("t1", "t2", "t3").Merge()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", merge.FormatWarnings(warnings))
//	}
//	err = out.WriteSVG("merged.svg")
//
// With options:
//
//	out, _, err := fragmerge.Open("page.svg").
//	    Where(`size < 14 && y > -400`).
//	    Metrics("sfnt").
//	    WidthTolerance(0.5).
//	    Merge()
//
// For finer control, the document, merge and svgdoc packages can be used
// directly.
package fragmerge

import (
	"github.com/tsawler/fragmerge/document"
)

// Open returns a Job merging fragments of an SVG file.
//
// Example:
//
//	out, _, err := fragmerge.Open("page.svg").Merge()
func Open(filename string) *Job {
	return &Job{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument returns a Job working on an existing document. The document
// is edited in place; Metrics and FontFile have no effect on it.
//
// Example:
//
//	doc := document.New(metrics.NewMonospace())
//	// ... add fragments
//	out, _, err := fragmerge.FromDocument(doc).Merge()
func FromDocument(doc *document.Document) *Job {
	return &Job{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	ids := fragmerge.Must(fragmerge.Open("page.svg").Selection())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustMerge is a helper that wraps a call to Merge() and panics if the
// error is non-nil. It discards warnings.
//
// Example:
//
//	out := fragmerge.MustMerge(fragmerge.Open("page.svg").Merge())
func MustMerge[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
