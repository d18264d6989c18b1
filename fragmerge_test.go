package fragmerge

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/tsawler/fragmerge/merge"
	"github.com/tsawler/fragmerge/model"
	"github.com/tsawler/fragmerge/svgdoc"
)

// testSVGPath returns the path to a test SVG file
func testSVGPath(filename string) string {
	return filepath.Join("testdata", filename)
}

func TestOpen(t *testing.T) {
	// Test with non-existent file
	_, _, err := Open("nonexistent.svg").Merge()
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestMerge_DocumentSelection(t *testing.T) {
	out, warnings, err := Open(testSVGPath("split_line.svg")).Merge()
	if err != nil {
		t.Fatalf("failed to merge: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %s", merge.FormatWarnings(warnings))
	}

	txt, _ := out.Document.Text(out.Result.Fragment)
	if txt != "Hello World!" {
		t.Errorf("merged text = %q, want %q", txt, "Hello World!")
	}
	if n := len(out.Document.Fragments()); n != 2 {
		t.Errorf("expected the merged line and the footer, got %d fragments", n)
	}
}

func TestMerge_IDsAndWhere(t *testing.T) {
	tests := []struct {
		name string
		job  *Job
	}{
		{"ids", Open(testSVGPath("split_line.svg")).IDs("t1", "t2").IDs("t3")},
		{"where", Open(testSVGPath("split_line.svg")).Where(`y > -200`)},
		{"both", Open(testSVGPath("split_line.svg")).IDs("t3").Where(`name == "t1" || name == "t2"`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := tt.job.Merge()
			if err != nil {
				t.Fatalf("failed to merge: %v", err)
			}
			txt, _ := out.Document.Text(out.Result.Fragment)
			if txt != "Hello World!" {
				t.Errorf("merged text = %q", txt)
			}
		})
	}
}

func TestMerge_UnknownName(t *testing.T) {
	_, _, err := Open(testSVGPath("split_line.svg")).IDs("missing").Merge()
	if !errors.Is(err, ErrUnknownName) {
		t.Errorf("error = %v, want ErrUnknownName", err)
	}
}

func TestMerge_EmptySelection(t *testing.T) {
	_, _, err := Open(testSVGPath("split_paragraph.svg")).Merge()
	if !errors.Is(err, merge.ErrEmptySelection) {
		t.Errorf("error = %v, want ErrEmptySelection", err)
	}
}

func TestMerge_ParagraphRoundTrip(t *testing.T) {
	out, _, err := Open(testSVGPath("split_paragraph.svg")).Where(`true`).Merge()
	if err != nil {
		t.Fatalf("failed to merge: %v", err)
	}
	if out.Result.Justification != model.JustifyCenter {
		t.Errorf("justification = %v, want center", out.Result.Justification)
	}

	path := filepath.Join(t.TempDir(), "merged.svg")
	if err := out.WriteSVG(path); err != nil {
		t.Fatalf("WriteSVG() error = %v", err)
	}
	doc, err := svgdoc.Open(path, nil)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	ids := doc.Fragments()
	if len(ids) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(ids))
	}
	if txt, _ := doc.Text(ids[0]); txt != "abcdefgh\rabcd" {
		t.Errorf("text = %q", txt)
	}
	if sel := doc.Selection(); len(sel) != 1 {
		t.Errorf("selection was not written: %v", sel)
	}
}

func TestMerge_Metrics(t *testing.T) {
	for _, backend := range []string{"mono", "sfnt", "harfbuzz"} {
		t.Run(backend, func(t *testing.T) {
			_, _, err := Open(testSVGPath("split_line.svg")).Metrics(backend).Merge()
			if err != nil {
				t.Errorf("failed to merge: %v", err)
			}
		})
	}
	if _, _, err := Open(testSVGPath("split_line.svg")).Metrics("bogus").Merge(); err == nil {
		t.Error("expected error for unknown metrics backend")
	}
}

func TestJob_Immutable(t *testing.T) {
	base := Open(testSVGPath("split_line.svg"))
	narrowed := base.IDs("t1").WidthTolerance(0.5)

	if len(base.options.names) != 0 || base.options.config.WidthTolerance != 0 {
		t.Errorf("configuration leaked into the base job: %+v", base.options)
	}
	if len(narrowed.options.names) != 1 || narrowed.options.config.WidthTolerance != 0.5 {
		t.Errorf("narrowed job = %+v", narrowed.options)
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Must to panic")
		}
	}()
	Must(Open("nonexistent.svg").Selection())
}

func TestMustMerge(t *testing.T) {
	out := MustMerge(Open(testSVGPath("split_line.svg")).Merge())
	if out.Result == nil {
		t.Error("expected a result")
	}
}
