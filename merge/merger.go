package merge

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/model"
)

// Merger merges a selection of fragments into one fragment.
type Merger struct {
	config Config
}

// NewMerger creates a merger with the default configuration
func NewMerger() *Merger {
	return &Merger{config: DefaultConfig()}
}

// NewMergerWithConfig creates a merger with a custom configuration
func NewMergerWithConfig(config Config) *Merger {
	return &Merger{config: config}
}

// Config returns the configuration of the merger
func (m *Merger) Config() Config {
	return m.config
}

// Line is a reconstructed line with its geometry at the time justification
// was inferred.
type Line struct {
	Fragment document.FragmentID
	Geometry document.Geometry
}

// Result describes a finished merge.
type Result struct {
	// Fragment is the merged fragment, now the document selection
	Fragment document.FragmentID

	// Lines are the reconstructed lines, top to bottom as bucketed
	Lines []Line

	// Justification is the inferred justification; only set when there was
	// more than one line
	Justification model.Justification

	// Amplitudes are the per-justification spreads the inference compared
	Amplitudes Amplitudes

	// Seams reports every join made while reconstructing lines
	Seams []SeamReport

	// Warnings are the non-fatal conditions met along the way
	Warnings []Warning
}

// state accumulates reports during one Merge call.
type state struct {
	seams    []SeamReport
	warnings []Warning
}

func (st *state) warn(id document.FragmentID, err error, msg string) {
	w := Warning{Err: err, Fragment: id, Message: msg}
	st.warnings = append(st.warnings, w)
	Logger().Warn("merge warning", "fragment", id, "error", err, "message", msg)
}

// Merge merges the text fragments of selection. Identifiers that do not
// name a fragment with text are ignored; if none is left the result is
// ErrEmptySelection and the document is untouched. On success the merged
// fragment is the document selection.
func (m *Merger) Merge(ctx context.Context, doc Document, selection []document.FragmentID) (*Result, error) {
	if err := m.config.Validate(); err != nil {
		return nil, err
	}

	ids, err := usableFragments(doc, selection)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}

	groups, err := GroupByBaseline(doc, ids, m.config.SameLineTolerance)
	if err != nil {
		return nil, fmt.Errorf("grouping lines: %w", err)
	}

	st := &state{}
	res := &Result{}
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, err := m.reconstructLine(doc, group, st)
		if err != nil {
			return nil, fmt.Errorf("reconstructing line: %w", err)
		}
		res.Lines = append(res.Lines, Line{Fragment: id})
	}
	res.Seams = st.seams

	if len(res.Lines) == 1 {
		res.Fragment = res.Lines[0].Fragment
		g, err := measure(doc, res.Fragment)
		if err != nil {
			return nil, err
		}
		res.Lines[0].Geometry = g
		res.Warnings = st.warnings
		if err := doc.Select(res.Fragment); err != nil {
			return nil, err
		}
		m.logSummary(res, len(ids))
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	j, amps, anchors, err := m.alignLines(doc, res.Lines)
	if err != nil {
		return nil, fmt.Errorf("inferring justification: %w", err)
	}
	res.Justification = j
	res.Amplitudes = amps

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	merged, err := m.reconstructParagraph(doc, res.Lines)
	if err != nil {
		return nil, fmt.Errorf("reconstructing paragraph: %w", err)
	}

	if err := m.reposition(doc, merged, anchors); err != nil {
		return nil, fmt.Errorf("repositioning: %w", err)
	}

	if err := doc.Select(merged); err != nil {
		return nil, err
	}
	res.Fragment = merged
	res.Warnings = st.warnings
	m.logSummary(res, len(ids))
	return res, nil
}

func (m *Merger) logSummary(res *Result, fragments int) {
	Logger().Info("merge complete",
		"fragment", res.Fragment,
		"fragments", fragments,
		"lines", len(res.Lines),
		"justification", res.Justification.String(),
		"seams", len(res.Seams),
		"warnings", len(res.Warnings))
}

// usableFragments drops duplicates, stale identifiers and fragments without
// runs, keeping selection order.
func usableFragments(doc Document, selection []document.FragmentID) ([]document.FragmentID, error) {
	seen := make(map[document.FragmentID]bool, len(selection))
	var ids []document.FragmentID
	for _, id := range selection {
		if seen[id] {
			continue
		}
		seen[id] = true

		runs, err := doc.Runs(id)
		if errors.Is(err, document.ErrInvalidID) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(runs) == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GroupByBaseline buckets fragments whose anchor y rounds to the same
// multiple of tolerance. Buckets are ordered top to bottom; fragments keep
// their input order inside a bucket. A tolerance of zero groups only equal
// anchors.
func GroupByBaseline(doc Document, ids []document.FragmentID, tolerance float64) ([][]document.FragmentID, error) {
	type bucket struct {
		key float64
		ids []document.FragmentID
	}
	var buckets []*bucket
	byKey := make(map[float64]*bucket)

	for _, id := range ids {
		g, err := measure(doc, id)
		if err != nil {
			return nil, err
		}
		key := g.Anchor.Y
		if tolerance > 0 {
			key = math.Round(key/tolerance) * tolerance
		}
		b, ok := byKey[key]
		if !ok {
			b = &bucket{key: key}
			byKey[key] = b
			buckets = append(buckets, b)
		}
		b.ids = append(b.ids, id)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].key > buckets[j].key
	})

	groups := make([][]document.FragmentID, len(buckets))
	for i, b := range buckets {
		groups[i] = b.ids
	}
	return groups, nil
}
