// Package selector picks fragments with JavaScript predicates.
//
// A predicate is an expression evaluated once per fragment with the fields
// of a [Record] bound as globals:
//
//	name == "title" || (size >= 18 && y > -200)
//	/^Chapter/.test(text)
//
// The same record is also bound as the object fragment.
package selector

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"

	"github.com/tsawler/fragmerge/document"
)

// ErrNotBoolean is returned when a predicate evaluates to anything but a
// boolean.
var ErrNotBoolean = errors.New("selector: predicate did not return a boolean")

// Record is the view of a fragment a predicate sees. Coordinates grow
// upward.
type Record struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Text          string  `json:"text"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Left          float64 `json:"left"`
	Right         float64 `json:"right"`
	Top           float64 `json:"top"`
	Bottom        float64 `json:"bottom"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Rows          int     `json:"rows"`
	Size          float64 `json:"size"`
	Font          string  `json:"font"`
	Justification string  `json:"justification"`
	Measured      bool    `json:"measured"`
}

// Predicate is a compiled selection expression.
type Predicate struct {
	source  string
	program *goja.Program
	vm      *goja.Runtime
}

// Compile parses a predicate expression.
func Compile(expr string) (*Predicate, error) {
	prog, err := goja.Compile("where", expr, false)
	if err != nil {
		return nil, fmt.Errorf("compiling predicate: %w", err)
	}
	return &Predicate{source: expr, program: prog, vm: goja.New()}, nil
}

// String returns the source of the predicate
func (p *Predicate) String() string {
	return p.source
}

// Match evaluates the predicate against one record.
func (p *Predicate) Match(r Record) (bool, error) {
	if err := p.bind(r); err != nil {
		return false, err
	}
	v, err := p.vm.RunProgram(p.program)
	if err != nil {
		return false, fmt.Errorf("evaluating predicate: %w", err)
	}
	b, ok := v.Export().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q gave %s", ErrNotBoolean, p.source, v.String())
	}
	return b, nil
}

func (p *Predicate) bind(r Record) error {
	obj := p.vm.NewObject()
	fields := map[string]any{
		"id":            r.ID,
		"name":          r.Name,
		"text":          r.Text,
		"x":             r.X,
		"y":             r.Y,
		"left":          r.Left,
		"right":         r.Right,
		"top":           r.Top,
		"bottom":        r.Bottom,
		"width":         r.Width,
		"height":        r.Height,
		"rows":          r.Rows,
		"size":          r.Size,
		"font":          r.Font,
		"justification": r.Justification,
		"measured":      r.Measured,
	}
	for k, v := range fields {
		if err := obj.Set(k, v); err != nil {
			return err
		}
		if err := p.vm.Set(k, v); err != nil {
			return err
		}
	}
	return p.vm.Set("fragment", obj)
}

// Describe builds the record of a fragment. Fragments that cannot be
// measured get zero geometry and Measured false.
func Describe(doc *document.Document, id document.FragmentID) (Record, error) {
	f, err := doc.Fragment(id)
	if err != nil {
		return Record{}, err
	}
	txt, err := doc.Text(id)
	if err != nil {
		return Record{}, err
	}
	r := Record{
		ID:            int64(id),
		Name:          f.Name,
		Text:          txt,
		X:             f.Anchor.X,
		Y:             f.Anchor.Y,
		Justification: f.Justification.String(),
	}
	if len(f.Runs) > 0 {
		first, err := doc.Run(f.Runs[0])
		if err != nil {
			return Record{}, err
		}
		r.Size = first.Size
		r.Font = first.Font
	}
	if g, err := doc.Measure(id); err == nil {
		r.Measured = true
		r.Left, r.Right = g.Left(), g.Right()
		r.Top, r.Bottom = g.Top(), g.Bounds.Bottom()
		r.Width, r.Height = g.Bounds.Width, g.Bounds.Height
		r.Rows = g.Rows
	}
	return r, nil
}

// Select returns the fragments of doc matching expr, in document order.
func Select(doc *document.Document, expr string) ([]document.FragmentID, error) {
	p, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	var ids []document.FragmentID
	for _, id := range doc.Fragments() {
		r, err := Describe(doc, id)
		if err != nil {
			return nil, err
		}
		ok, err := p.Match(r)
		if err != nil {
			return nil, fmt.Errorf("fragment %d: %w", id, err)
		}
		if ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
