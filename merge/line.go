package merge

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/fragmerge/document"
)

// SeamReport describes how one fragment was joined to its line.
type SeamReport struct {
	// Line is the fragment the source was appended to
	Line document.FragmentID

	// Source is the text of the appended fragment
	Source string

	// Tolerance is the accepted width error at this seam
	Tolerance float64

	// SpacesAdded and SpacesRemoved count whitespace edits at the seam
	SpacesAdded   int
	SpacesRemoved int

	// Tracking is the tracking left on the seam character
	Tracking float64

	// Delta is the final width error (positive: too wide)
	Delta float64

	// Probes is the number of tracking values tried
	Probes int

	// Exact is true when Delta is within Config.ExactTolerance
	Exact bool
}

type seamEdit int

const (
	editNone seamEdit = iota
	editAdded
	editRemoved
)

// reconstructLine merges fragments sharing a baseline into the leftmost
// one. A single fragment is returned untouched.
func (m *Merger) reconstructLine(doc Document, group []document.FragmentID, st *state) (document.FragmentID, error) {
	if len(group) == 1 {
		return group[0], nil
	}

	type placed struct {
		id document.FragmentID
		x  float64
	}
	frags := make([]placed, len(group))
	for i, id := range group {
		g, err := measure(doc, id)
		if err != nil {
			return 0, err
		}
		frags[i] = placed{id: id, x: g.Anchor.X}
	}
	sort.SliceStable(frags, func(i, j int) bool {
		return frags[i].x < frags[j].x
	})

	merged := frags[0].id
	for _, f := range frags[1:] {
		seam, err := m.appendFragment(doc, merged, f.id)
		if err != nil {
			return 0, err
		}
		st.seams = append(st.seams, seam)
		if !seam.Exact {
			st.warn(merged, ErrNonConvergentSearch,
				fmt.Sprintf("seam before %q is off by %.3f", seam.Source, seam.Delta))
		}
	}
	return merged, nil
}

// appendFragment moves the runs of src to the end of merged, then edits the
// seam until merged ends where src ended.
func (m *Merger) appendFragment(doc Document, merged, src document.FragmentID) (SeamReport, error) {
	seam := SeamReport{Line: merged}

	mergedGeom, err := measure(doc, merged)
	if err != nil {
		return seam, err
	}
	srcGeom, err := measure(doc, src)
	if err != nil {
		return seam, err
	}
	if seam.Source, err = doc.Text(src); err != nil {
		return seam, err
	}

	srcRuns, err := doc.Runs(src)
	if err != nil {
		return seam, err
	}

	offset := srcGeom.Anchor.Y - mergedGeom.Anchor.Y
	if math.Abs(offset) > m.config.BaselineShiftThreshold {
		for _, rid := range srcRuns {
			r, err := doc.Run(rid)
			if err != nil {
				return seam, err
			}
			if err := doc.SetBaselineShift(rid, r.BaselineShift+offset); err != nil {
				return seam, err
			}
		}
	}

	mergedRuns, err := doc.Runs(merged)
	if err != nil {
		return seam, err
	}
	boundary, err := doc.SplitLastGrapheme(mergedRuns[len(mergedRuns)-1])
	if err != nil {
		return seam, err
	}
	boundaryRun, err := doc.Run(boundary)
	if err != nil {
		return seam, err
	}
	seam.Tolerance = m.config.widthTolerance(boundaryRun.Size)

	left := mergedGeom.Left()
	target := srcGeom.Right() - left

	// Content is copied before the source goes away.
	for _, rid := range srcRuns {
		if _, err := doc.DuplicateRun(rid, merged); err != nil {
			return seam, err
		}
	}
	if err := doc.RemoveFragment(src); err != nil {
		return seam, err
	}

	widthError := func() (float64, error) {
		g, err := measure(doc, merged)
		if err != nil {
			return 0, err
		}
		return g.Width() - target, nil
	}

	delta, err := widthError()
	if err != nil {
		return seam, err
	}
	delta, err = m.matchWhitespace(doc, boundary, delta, &seam, widthError)
	if err != nil {
		return seam, err
	}

	seam.Tracking = boundaryRun.Tracking
	seam.Delta = delta
	seam.Exact = math.Abs(delta) <= m.config.ExactTolerance
	if delta != 0 {
		res, err := bisectTracking(m.config.TrackingMin, m.config.TrackingMax,
			m.config.TrackingResolution, m.config.ExactTolerance,
			func(tracking float64) (float64, error) {
				if err := doc.SetTracking(boundary, tracking); err != nil {
					return 0, err
				}
				return widthError()
			})
		if err != nil {
			return seam, err
		}
		if err := doc.SetTracking(boundary, res.Best.Tracking); err != nil {
			return seam, err
		}
		seam.Tracking = res.Best.Tracking
		seam.Delta = res.Best.Delta
		seam.Probes = res.Probes
		seam.Exact = res.Exact
	}

	// Growing a centered or end-justified line moves its left edge.
	g, err := measure(doc, merged)
	if err != nil {
		return seam, err
	}
	if dx := left - g.Left(); dx != 0 {
		if err := doc.MoveBy(merged, dx, 0); err != nil {
			return seam, err
		}
	}

	Logger().Debug("seam merged",
		"line", merged,
		"source", seam.Source,
		"spacesAdded", seam.SpacesAdded,
		"spacesRemoved", seam.SpacesRemoved,
		"tracking", seam.Tracking,
		"delta", seam.Delta,
		"probes", seam.Probes)
	return seam, nil
}

// matchWhitespace closes the coarse part of the seam error with spaces on
// the boundary run. It never undoes its previous edit: a space that
// overshoots is taken back and the rest is left to tracking.
func (m *Merger) matchWhitespace(doc Document, boundary document.RunID, delta float64, seam *SeamReport, widthError func() (float64, error)) (float64, error) {
	var err error
	last := editNone
	for edits := 0; math.Abs(delta) > seam.Tolerance && edits < m.config.MaxSeamSpaces; edits++ {
		if delta < 0 {
			if last == editRemoved {
				break
			}
			if err := doc.AppendText(boundary, " "); err != nil {
				return delta, err
			}
			seam.SpacesAdded++
			last = editAdded
		} else {
			r, err := doc.Run(boundary)
			if err != nil {
				return delta, err
			}
			if !document.IsSpace(document.LastGrapheme(r.Text)) {
				break
			}
			if _, err := doc.TrimLastGrapheme(boundary); err != nil {
				return delta, err
			}
			if last == editAdded {
				seam.SpacesAdded--
				return widthError()
			}
			seam.SpacesRemoved++
			last = editRemoved
		}
		if delta, err = widthError(); err != nil {
			return delta, err
		}
	}
	return delta, nil
}
