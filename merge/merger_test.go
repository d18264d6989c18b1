package merge

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/model"
)

func TestMerge_EmptySelection(t *testing.T) {
	d := newTestDocument()
	removed := addFragment(t, d, "gone", 0, 0, model.JustifyStart)
	_ = d.RemoveFragment(removed)
	empty, _ := d.NewFragment(model.Point{}, model.JustifyStart)

	tests := []struct {
		name      string
		selection []document.FragmentID
	}{
		{"nil", nil},
		{"stale identifier", []document.FragmentID{removed}},
		{"fragment without runs", []document.FragmentID{empty}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.ResetStats()
			_, err := NewMerger().Merge(context.Background(), d, tt.selection)
			if !errors.Is(err, ErrEmptySelection) {
				t.Errorf("Merge() error = %v, want ErrEmptySelection", err)
			}
			if s := d.Stats(); s.Edits != 0 || s.Removes != 0 || s.Duplicates != 0 {
				t.Errorf("document was edited: %+v", s)
			}
		})
	}
}

func TestMerge_MeasurementUnavailable(t *testing.T) {
	d := newTestDocument()
	ok := addFragment(t, d, "fine", 0, 0, model.JustifyStart)
	bad, _ := d.NewFragment(model.Point{X: 30}, model.JustifyStart)
	_, _ = d.AddRun(bad, "broken", document.Style{Size: 0})

	_, err := NewMerger().Merge(context.Background(), d, []document.FragmentID{ok, bad})
	if !errors.Is(err, ErrMeasurementUnavailable) {
		t.Fatalf("Merge() error = %v, want ErrMeasurementUnavailable", err)
	}
	if !errors.Is(err, document.ErrUnmeasurable) {
		t.Errorf("Merge() error = %v does not wrap the document error", err)
	}
}

func TestMerge_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrackingResolution = 0
	_, err := NewMergerWithConfig(cfg).Merge(context.Background(), newTestDocument(), nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Merge() error = %v, want ErrInvalidConfig", err)
	}
}

func TestMerge_CanceledContext(t *testing.T) {
	d := newTestDocument()
	a := addFragment(t, d, "a", 0, 0, model.JustifyStart)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMerger().Merge(ctx, d, []document.FragmentID{a}); !errors.Is(err, context.Canceled) {
		t.Errorf("Merge() error = %v, want context.Canceled", err)
	}
}

func TestMerge_SingleLine(t *testing.T) {
	d := newTestDocument()
	world := addFragment(t, d, " World", 25, 0.3, model.JustifyStart)
	hello := addFragment(t, d, "Hello", 0, 0, model.JustifyStart)
	bang := addFragment(t, d, "!", 55, 0, model.JustifyStart)

	res, err := NewMerger().Merge(context.Background(), d, []document.FragmentID{world, hello, bang, hello})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if res.Fragment != hello {
		t.Errorf("Fragment = %d, want %d", res.Fragment, hello)
	}
	if txt := mustText(t, d, res.Fragment); txt != "Hello World!" {
		t.Errorf("Text() = %q, want %q", txt, "Hello World!")
	}
	if len(res.Lines) != 1 || len(res.Seams) != 2 || len(res.Warnings) != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	if sel := d.Selection(); len(sel) != 1 || sel[0] != hello {
		t.Errorf("Selection() = %v, want [%d]", sel, hello)
	}
}

func TestMerge_Paragraph(t *testing.T) {
	d := newTestDocument()
	// Two centered lines split into pieces.
	l1a := addFragment(t, d, "abcd", 0, 100, model.JustifyStart)
	l1b := addFragment(t, d, "efgh", 20, 100, model.JustifyStart)
	l2 := addFragment(t, d, "abcd", 10, 80, model.JustifyStart)

	res, err := NewMerger().Merge(context.Background(), d, []document.FragmentID{l2, l1b, l1a})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if res.Fragment != l1a {
		t.Errorf("Fragment = %d, want %d", res.Fragment, l1a)
	}
	if res.Justification != model.JustifyCenter {
		t.Errorf("Justification = %v, want center (amplitudes %v)", res.Justification, res.Amplitudes)
	}
	if txt := mustText(t, d, res.Fragment); txt != "abcdefgh\rabcd" {
		t.Errorf("Text() = %q", txt)
	}

	f, _ := d.Fragment(res.Fragment)
	if f.Justification != model.JustifyCenter || !approx(f.Anchor.X, 20) || !approx(f.Anchor.Y, 100) {
		t.Errorf("fragment %+v, want centered on (20, 100)", f)
	}
	g, _ := d.Measure(res.Fragment)
	if !approx(g.Left(), 0) || !approx(g.Right(), 40) {
		t.Errorf("bounds [%v, %v], want [0, 40]", g.Left(), g.Right())
	}
	if len(g.Baselines) != 2 || !approx(g.Baselines[1], 80) {
		t.Errorf("baselines = %v, want [100 80]", g.Baselines)
	}
	if n := len(d.Fragments()); n != 1 {
		t.Errorf("%d fragments left, want 1", n)
	}
	if sel := d.Selection(); len(sel) != 1 || sel[0] != res.Fragment {
		t.Errorf("Selection() = %v", sel)
	}
}

func TestMerge_TrimsFlushLeftLines(t *testing.T) {
	d := newTestDocument()
	a := addFragment(t, d, "one  ", 0, 100, model.JustifyStart)
	b := addFragment(t, d, "two", 0, 88, model.JustifyStart)

	res, err := NewMerger().Merge(context.Background(), d, []document.FragmentID{a, b})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if res.Justification != model.JustifyStart {
		t.Errorf("Justification = %v, want start", res.Justification)
	}
	if txt := mustText(t, d, res.Fragment); txt != "one\rtwo" {
		t.Errorf("Text() = %q, want %q", txt, "one\rtwo")
	}
}

func TestGroupByBaseline(t *testing.T) {
	d := newTestDocument()
	low := addFragment(t, d, "low", 0, 10, model.JustifyStart)
	highB := addFragment(t, d, "b", 30, 50.2, model.JustifyStart)
	highA := addFragment(t, d, "a", 0, 49.9, model.JustifyStart)

	groups, err := GroupByBaseline(d, []document.FragmentID{low, highB, highA}, 1)
	if err != nil {
		t.Fatalf("GroupByBaseline() error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %v", groups)
	}
	if len(groups[0]) != 2 || groups[0][0] != highB || groups[0][1] != highA {
		t.Errorf("top group = %v, want [%d %d]", groups[0], highB, highA)
	}
	if len(groups[1]) != 1 || groups[1][0] != low {
		t.Errorf("bottom group = %v, want [%d]", groups[1], low)
	}
}

func TestMerge_Logging(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	d := newTestDocument()
	a := addFragment(t, d, "ab", 0, 0, model.JustifyStart)
	b := addFragment(t, d, "cd", 10, 0, model.JustifyStart)
	if _, err := NewMerger().Merge(context.Background(), d, []document.FragmentID{a, b}); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"seam merged", "merge complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatWarnings(t *testing.T) {
	ws := []Warning{
		{Err: ErrNonConvergentSearch, Fragment: 3, Message: "off by 0.2"},
		{Err: ErrNonConvergentSearch, Fragment: 4},
	}
	want := "fragment 3: merge: tracking search found no exact width: off by 0.2\n" +
		"fragment 4: merge: tracking search found no exact width"
	if got := FormatWarnings(ws); got != want {
		t.Errorf("FormatWarnings() = %q, want %q", got, want)
	}
}
