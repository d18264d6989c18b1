// Command fragmerge merges split text fragments of an SVG file back into one
// line or paragraph.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tsawler/fragmerge"
	"github.com/tsawler/fragmerge/merge"
	"github.com/tsawler/fragmerge/svgdoc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaults := merge.DefaultConfig()

	fs := flag.NewFlagSet("fragmerge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", "", "output SVG file path (default: stdout)")
	where := fs.String("where", "", "JavaScript predicate selecting fragments")
	ids := fs.String("ids", "", "comma-separated SVG ids to merge")
	tol := fs.Float64("tol", defaults.WidthTolerance, "absolute seam width tolerance (0: use -tol-ratio)")
	tolRatio := fs.Float64("tol-ratio", defaults.WidthToleranceRatio, "seam width tolerance as a fraction of the font size")
	shift := fs.Float64("shift", defaults.BaselineShiftThreshold, "anchor offset that triggers a baseline shift")
	group := fs.Float64("group", defaults.SameLineTolerance, "baseline rounding used to group fragments into lines")
	alignEps := fs.Float64("align-eps", defaults.AlignmentEpsilon, "amplitude under which lines count as flush left")
	backend := fs.String("metrics", "mono", "font metrics: mono, sfnt or harfbuzz")
	fontFile := fs.String("font", "", "TrueType/OpenType font for -metrics sfnt or harfbuzz")
	previewPath := fs.String("preview", "", "also render the result to this PNG file")
	verbose := fs.Bool("v", false, "log seam edits to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fragmerge [flags] <in.svg>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	if *verbose {
		merge.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer merge.SetLogger(nil)
	}

	cfg := defaults
	cfg.WidthTolerance = *tol
	cfg.WidthToleranceRatio = *tolRatio
	cfg.BaselineShiftThreshold = *shift
	cfg.SameLineTolerance = *group
	cfg.AlignmentEpsilon = *alignEps

	job := fragmerge.Open(fs.Arg(0)).
		Metrics(*backend).
		WithConfig(cfg)
	if *fontFile != "" {
		job = job.FontFile(*fontFile)
	}
	if *where != "" {
		job = job.Where(*where)
	}
	if *ids != "" {
		job = job.IDs(splitList(*ids)...)
	}

	out, warnings, err := job.Merge()
	if errors.Is(err, merge.ErrEmptySelection) {
		fmt.Fprintln(stderr, "Nothing to merge: no text fragment selected")
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if err := writeReport(stderr, out.Document, out.Result); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if len(warnings) > 0 {
		fmt.Fprintf(stderr, "Warnings:\n%s\n", merge.FormatWarnings(warnings))
	}

	if *output == "" {
		err = svgdoc.Write(stdout, out.Document)
	} else {
		err = out.WriteSVG(*output)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error writing SVG: %v\n", err)
		return 1
	}

	if *previewPath != "" {
		if err := out.SavePNG(*previewPath); err != nil {
			fmt.Fprintf(stderr, "Error rendering preview: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "Preview saved to %s\n", *previewPath)
	}
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
