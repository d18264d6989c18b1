package document

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/fragmerge/model"
)

// DuplicateFragment copies a fragment and all of its runs. The copy is
// placed right after the source in document order.
func (d *Document) DuplicateFragment(id FragmentID) (FragmentID, error) {
	src, err := d.fragment(id)
	if err != nil {
		return 0, err
	}
	dst := &fragment{
		id:            FragmentID(d.nextID()),
		name:          "",
		anchor:        src.anchor,
		justification: src.justification,
	}
	for _, rid := range src.runs {
		r := d.runs[rid]
		c := &run{id: RunID(d.nextID()), fragment: dst.id, text: r.text, style: r.style}
		d.runs[c.id] = c
		dst.runs = append(dst.runs, c.id)
	}
	d.fragments[dst.id] = dst
	d.order = insertAfter(d.order, id, dst.id)
	d.stats.Duplicates++
	return dst.id, nil
}

// DuplicateRun copies a run to the end of fragment dst.
func (d *Document) DuplicateRun(id RunID, dst FragmentID) (RunID, error) {
	r, err := d.run(id)
	if err != nil {
		return 0, err
	}
	f, err := d.fragment(dst)
	if err != nil {
		return 0, err
	}
	c := &run{id: RunID(d.nextID()), fragment: dst, text: r.text, style: r.style}
	d.runs[c.id] = c
	f.runs = append(f.runs, c.id)
	d.stats.Duplicates++
	return c.id, nil
}

// RemoveFragment removes a fragment and its runs.
func (d *Document) RemoveFragment(id FragmentID) error {
	f, err := d.fragment(id)
	if err != nil {
		return err
	}
	for _, rid := range f.runs {
		delete(d.runs, rid)
	}
	delete(d.fragments, id)
	d.order = without(d.order, id)
	d.selection = without(d.selection, id)
	d.stats.Removes++
	return nil
}

// RemoveRun removes a run from its fragment.
func (d *Document) RemoveRun(id RunID) error {
	r, err := d.run(id)
	if err != nil {
		return err
	}
	f := d.fragments[r.fragment]
	for i, rid := range f.runs {
		if rid == id {
			f.runs = append(f.runs[:i], f.runs[i+1:]...)
			break
		}
	}
	delete(d.runs, id)
	d.stats.Removes++
	return nil
}

// SetText replaces the text of a run.
func (d *Document) SetText(id RunID, text string) error {
	r, err := d.run(id)
	if err != nil {
		return err
	}
	r.text = norm.NFC.String(text)
	d.splitBreaks(r)
	d.stats.Edits++
	return nil
}

// AppendText appends text to a run.
func (d *Document) AppendText(id RunID, text string) error {
	r, err := d.run(id)
	if err != nil {
		return err
	}
	r.text = norm.NFC.String(r.text + text)
	d.splitBreaks(r)
	d.stats.Edits++
	return nil
}

// TrimLastGrapheme removes the last grapheme cluster of a run and returns
// it. Trimming an empty run is a no-op returning "".
func (d *Document) TrimLastGrapheme(id RunID) (string, error) {
	r, err := d.run(id)
	if err != nil {
		return "", err
	}
	last := LastGrapheme(r.text)
	if last == "" {
		return "", nil
	}
	r.text = strings.TrimSuffix(r.text, last)
	d.stats.Edits++
	return last, nil
}

// SplitLastGrapheme moves the last grapheme cluster of a run into a new run
// with the same style, inserted right after it, and returns the new run.
// A run holding a single cluster (or nothing) is returned unchanged.
func (d *Document) SplitLastGrapheme(id RunID) (RunID, error) {
	r, err := d.run(id)
	if err != nil {
		return 0, err
	}
	last := LastGrapheme(r.text)
	if last == "" || last == r.text {
		return id, nil
	}
	r.text = strings.TrimSuffix(r.text, last)
	tail := &run{id: RunID(d.nextID()), fragment: r.fragment, text: last, style: r.style}
	d.runs[tail.id] = tail
	f := d.fragments[r.fragment]
	f.runs = insertRunAfter(f.runs, id, tail.id)
	d.stats.Edits++
	return tail.id, nil
}

// SetTracking sets the tracking of a run, in thousandths of an em.
func (d *Document) SetTracking(id RunID, tracking float64) error {
	return d.editStyle(id, func(s *Style) { s.Tracking = tracking })
}

// SetBaselineShift sets the baseline shift of a run.
func (d *Document) SetBaselineShift(id RunID, shift float64) error {
	return d.editStyle(id, func(s *Style) { s.BaselineShift = shift })
}

// SetLeading sets the leading of a run. It only applies while auto leading
// is off.
func (d *Document) SetLeading(id RunID, leading float64) error {
	return d.editStyle(id, func(s *Style) { s.Leading = leading })
}

// SetAutoLeading switches auto leading of a run.
func (d *Document) SetAutoLeading(id RunID, auto bool) error {
	return d.editStyle(id, func(s *Style) { s.AutoLeading = auto })
}

func (d *Document) editStyle(id RunID, edit func(*Style)) error {
	r, err := d.run(id)
	if err != nil {
		return err
	}
	edit(&r.style)
	d.stats.Edits++
	return nil
}

// SetJustification sets the justification of a fragment. The anchor stays
// where it is, so the rendered rows move.
func (d *Document) SetJustification(id FragmentID, j model.Justification) error {
	f, err := d.fragment(id)
	if err != nil {
		return err
	}
	f.justification = j
	d.stats.Edits++
	return nil
}

// MoveBy translates a fragment.
func (d *Document) MoveBy(id FragmentID, dx, dy float64) error {
	f, err := d.fragment(id)
	if err != nil {
		return err
	}
	f.anchor = f.anchor.Add(dx, dy)
	d.stats.Edits++
	return nil
}

// splitBreaks keeps the paragraph break at the end of its run: text after a
// break moves into new runs with the same style.
func (d *Document) splitBreaks(r *run) {
	idx := strings.Index(r.text, ParagraphBreak)
	if idx < 0 || idx == len(r.text)-len(ParagraphBreak) {
		return
	}
	rest := r.text[idx+len(ParagraphBreak):]
	r.text = r.text[:idx+len(ParagraphBreak)]

	tail := &run{id: RunID(d.nextID()), fragment: r.fragment, text: rest, style: r.style}
	d.runs[tail.id] = tail
	f := d.fragments[r.fragment]
	f.runs = insertRunAfter(f.runs, r.id, tail.id)
	d.splitBreaks(tail)
}

func insertAfter(ids []FragmentID, after, id FragmentID) []FragmentID {
	for i, v := range ids {
		if v == after {
			ids = append(ids, 0)
			copy(ids[i+2:], ids[i+1:])
			ids[i+1] = id
			return ids
		}
	}
	return append(ids, id)
}

func insertRunAfter(ids []RunID, after, id RunID) []RunID {
	for i, v := range ids {
		if v == after {
			ids = append(ids, 0)
			copy(ids[i+2:], ids[i+1:])
			ids[i+1] = id
			return ids
		}
	}
	return append(ids, id)
}

func without(ids []FragmentID, id FragmentID) []FragmentID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// String describes a fragment for diagnostics.
func (f Fragment) String() string {
	if f.Name != "" {
		return fmt.Sprintf("fragment %d (%s)", f.ID, f.Name)
	}
	return fmt.Sprintf("fragment %d", f.ID)
}
