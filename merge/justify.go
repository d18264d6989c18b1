package merge

import (
	"sort"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/model"
)

// Amplitudes holds the spread (max - min) of the line reference points for
// each justification, indexed by model.Justification.
type Amplitudes [3]float64

// InferJustification picks the justification under which the boxes line up
// best: the one whose reference points (left edges, centers or right edges)
// spread the least. A start amplitude under epsilon wins outright; other
// ties go to start, then center, then end.
func InferJustification(boxes []model.BBox, epsilon float64) (model.Justification, Amplitudes) {
	var amps Amplitudes
	if len(boxes) == 0 {
		return model.JustifyStart, amps
	}

	refs := make([]float64, len(boxes))
	for _, j := range model.Justifications {
		for i, b := range boxes {
			refs[i] = j.Reference(b.Left(), b.Width)
		}
		sort.Float64s(refs)
		amps[j] = refs[len(refs)-1] - refs[0]
	}

	if amps[model.JustifyStart] < epsilon {
		return model.JustifyStart, amps
	}
	best := model.JustifyStart
	for _, j := range model.Justifications[1:] {
		if amps[j] < amps[best] {
			best = j
		}
	}
	return best, amps
}

// alignLines trims start-justified lines, infers the common justification
// and applies it to every line without moving its box. It returns the line
// anchors after the change.
func (m *Merger) alignLines(doc Document, lines []Line) (model.Justification, Amplitudes, []float64, error) {
	boxes := make([]model.BBox, len(lines))
	for i := range lines {
		j, err := doc.Justification(lines[i].Fragment)
		if err != nil {
			return 0, Amplitudes{}, nil, err
		}
		if j == model.JustifyStart {
			if err := trimTrailingSpace(doc, lines[i].Fragment); err != nil {
				return 0, Amplitudes{}, nil, err
			}
		}
		g, err := measure(doc, lines[i].Fragment)
		if err != nil {
			return 0, Amplitudes{}, nil, err
		}
		lines[i].Geometry = g
		boxes[i] = g.Bounds
	}

	best, amps := InferJustification(boxes, m.config.AlignmentEpsilon)

	anchors := make([]float64, len(lines))
	for i := range lines {
		id := lines[i].Fragment
		before := lines[i].Geometry
		current, err := doc.Justification(id)
		if err != nil {
			return 0, Amplitudes{}, nil, err
		}
		if current != best {
			if err := doc.SetJustification(id, best); err != nil {
				return 0, Amplitudes{}, nil, err
			}
			after, err := measure(doc, id)
			if err != nil {
				return 0, Amplitudes{}, nil, err
			}
			if err := doc.MoveBy(id, before.Left()-after.Left(), before.Top()-after.Top()); err != nil {
				return 0, Amplitudes{}, nil, err
			}
		}
		g, err := measure(doc, id)
		if err != nil {
			return 0, Amplitudes{}, nil, err
		}
		lines[i].Geometry = g
		anchors[i] = g.Anchor.X
	}
	return best, amps, anchors, nil
}

// trimTrailingSpace removes trailing whitespace characters, paragraph breaks
// included, and the runs they leave empty. The first character of the
// fragment is never removed.
func trimTrailingSpace(doc Document, id document.FragmentID) error {
	for {
		runs, err := doc.Runs(id)
		if err != nil {
			return err
		}
		last := runs[len(runs)-1]
		r, err := doc.Run(last)
		if err != nil {
			return err
		}
		if r.Text == "" {
			if len(runs) == 1 {
				return nil
			}
			if err := doc.RemoveRun(last); err != nil {
				return err
			}
			continue
		}
		g := document.LastGrapheme(r.Text)
		if !document.IsSpace(g) || (len(runs) == 1 && g == r.Text) {
			return nil
		}
		if _, err := doc.TrimLastGrapheme(last); err != nil {
			return err
		}
	}
}
