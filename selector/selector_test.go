package selector

import (
	"errors"
	"testing"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/metrics"
	"github.com/tsawler/fragmerge/model"
)

func newDoc(t *testing.T) (*document.Document, []document.FragmentID) {
	t.Helper()
	doc := document.New(metrics.NewMonospace())
	var ids []document.FragmentID
	for _, f := range []struct {
		name string
		text string
		x, y float64
		size float64
	}{
		{"title", "Chapter One", 0, 0, 18},
		{"body-1", "It was a dark", 0, -30, 10},
		{"body-2", "and stormy night", 70, -30, 10},
	} {
		id, err := doc.NewFragment(model.Point{X: f.x, Y: f.y}, model.JustifyStart)
		if err != nil {
			t.Fatalf("NewFragment() error = %v", err)
		}
		_ = doc.SetName(id, f.name)
		if _, err := doc.AddRun(id, f.text, document.Style{Size: f.size, AutoLeading: true}); err != nil {
			t.Fatalf("AddRun() error = %v", err)
		}
		ids = append(ids, id)
	}
	return doc, ids
}

func TestSelect(t *testing.T) {
	doc, ids := newDoc(t)

	tests := []struct {
		expr string
		want []document.FragmentID
	}{
		{`size == 10`, ids[1:]},
		{`/^Chapter/.test(text)`, ids[:1]},
		{`name.startsWith("body") && x > 10`, ids[2:]},
		{`fragment.width > 70`, []document.FragmentID{ids[0], ids[2]}},
		{`rows == 1 && justification == "start"`, ids},
		{`false`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Select(doc, tt.expr)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Select() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Select()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSelect_Errors(t *testing.T) {
	doc, _ := newDoc(t)

	if _, err := Select(doc, `size +`); err == nil {
		t.Error("expected a syntax error")
	}
	if _, err := Select(doc, `size`); !errors.Is(err, ErrNotBoolean) {
		t.Errorf("Select() error = %v, want ErrNotBoolean", err)
	}
	if _, err := Select(doc, `undefinedThing`); err == nil {
		t.Error("expected a reference error")
	}
}

func TestDescribe(t *testing.T) {
	doc, ids := newDoc(t)
	r, err := Describe(doc, ids[0])
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	// 11 characters at 9 units each.
	if !r.Measured || r.Width != 99 || r.Rows != 1 || r.Text != "Chapter One" || r.Name != "title" {
		t.Errorf("Describe() = %+v", r)
	}
}
