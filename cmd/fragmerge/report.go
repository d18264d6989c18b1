package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/merge"
)

const sourceColumn = 24

// writeReport prints one row per seam, then a summary of the merge.
func writeReport(w io.Writer, doc *document.Document, res *merge.Result) error {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false

	header := cond.FillRight("source", sourceColumn)
	fmt.Fprintf(w, "%s  %6s  %6s  %8s  %8s  %6s  %s\n", header, "spaces", "remove", "tracking", "delta", "probes", "exact")
	fmt.Fprintln(w, strings.Repeat("-", sourceColumn+52))
	for _, s := range res.Seams {
		src := strings.ReplaceAll(s.Source, document.ParagraphBreak, "\u21b5")
		src = cond.Truncate(src, sourceColumn, "\u2026")
		fmt.Fprintf(w, "%s  %6d  %6d  %8.0f  %8.3f  %6d  %v\n",
			cond.FillRight(src, sourceColumn), s.SpacesAdded, s.SpacesRemoved, s.Tracking, s.Delta, s.Probes, s.Exact)
	}

	txt, err := doc.Text(res.Fragment)
	if err != nil {
		return fmt.Errorf("reading merged text: %w", err)
	}
	fmt.Fprintf(w, "\nlines: %d  justification: %s  amplitudes: start %.3f center %.3f end %.3f\n",
		len(res.Lines), res.Justification, res.Amplitudes[0], res.Amplitudes[1], res.Amplitudes[2])
	_, err = fmt.Fprintf(w, "merged: %q\n", txt)
	return err
}
