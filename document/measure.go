package document

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/fragmerge/model"
)

// ErrNoGlyph is returned by OutlineLastGlyph for fragments without a visible
// glyph.
var ErrNoGlyph = errors.New("document: no visible glyph")

// Geometry is the measured layout of a fragment.
type Geometry struct {
	// Anchor is the origin of the first row's baseline
	Anchor model.Point

	// Bounds covers every row, trailing whitespace included
	Bounds model.BBox

	// Rows is the number of visual rows
	Rows int

	// Baselines holds the baseline Y of each row, top to bottom
	Baselines []float64
}

// Left returns the left edge of the fragment bounds
func (g Geometry) Left() float64 { return g.Bounds.Left() }

// Right returns the right edge of the fragment bounds
func (g Geometry) Right() float64 { return g.Bounds.Right() }

// Top returns the top edge of the fragment bounds
func (g Geometry) Top() float64 { return g.Bounds.Top() }

// Width returns the width of the fragment bounds
func (g Geometry) Width() float64 { return g.Bounds.Width }

// placedGlyph is one grapheme cluster after layout.
type placedGlyph struct {
	cluster  string
	x        float64 // pen position
	baseline float64
	run      *run
}

// layoutRow is one visual row after layout.
type layoutRow struct {
	runs     []*run
	glyphs   []placedGlyph
	width    float64
	left     float64
	baseline float64
	leading  float64
}

// Measure lays out a fragment and returns its geometry.
func (d *Document) Measure(id FragmentID) (Geometry, error) {
	f, err := d.fragment(id)
	if err != nil {
		return Geometry{}, err
	}
	d.stats.Measures++

	rows, err := d.layout(f)
	if err != nil {
		return Geometry{}, err
	}

	g := Geometry{Anchor: f.anchor, Rows: len(rows)}
	for _, row := range rows {
		g.Baselines = append(g.Baselines, row.baseline)
		box, err := d.rowBounds(row)
		if err != nil {
			return Geometry{}, fmt.Errorf("%w: fragment %d: %v", ErrUnmeasurable, id, err)
		}
		g.Bounds = g.Bounds.Union(box)
	}
	return g, nil
}

// OutlineLastGlyph returns the ink bounds of the last visible glyph of a
// fragment, as placed by the layout.
func (d *Document) OutlineLastGlyph(id FragmentID) (model.BBox, error) {
	f, err := d.fragment(id)
	if err != nil {
		return model.BBox{}, err
	}
	d.stats.Measures++

	rows, err := d.layout(f)
	if err != nil {
		return model.BBox{}, err
	}
	for i := len(rows) - 1; i >= 0; i-- {
		glyphs := rows[i].glyphs
		for j := len(glyphs) - 1; j >= 0; j-- {
			g := glyphs[j]
			if IsSpace(g.cluster) {
				continue
			}
			r, _ := utf8.DecodeRuneInString(g.cluster)
			ink, err := d.metrics.GlyphBounds(r, g.run.style.Size)
			if err != nil {
				return model.BBox{}, fmt.Errorf("%w: fragment %d: %v", ErrUnmeasurable, id, err)
			}
			return ink.Translate(g.x, g.baseline+g.run.style.BaselineShift), nil
		}
	}
	return model.BBox{}, fmt.Errorf("%w: fragment %d", ErrNoGlyph, id)
}

// Glyph is one grapheme cluster placed by the layout.
type Glyph struct {
	Cluster  string
	X        float64 // pen position
	Baseline float64 // row baseline, before the run's baseline shift
	Run      RunID
	Font     string
	Size     float64
	Shift    float64
}

// Glyphs lays out a fragment and returns its clusters in reading order.
// Paragraph breaks are not included.
func (d *Document) Glyphs(id FragmentID) ([]Glyph, error) {
	f, err := d.fragment(id)
	if err != nil {
		return nil, err
	}
	rows, err := d.layout(f)
	if err != nil {
		return nil, err
	}
	var out []Glyph
	for _, row := range rows {
		for _, g := range row.glyphs {
			out = append(out, Glyph{
				Cluster:  g.cluster,
				X:        g.x,
				Baseline: g.baseline,
				Run:      g.run.id,
				Font:     g.run.style.Font,
				Size:     g.run.style.Size,
				Shift:    g.run.style.BaselineShift,
			})
		}
	}
	return out, nil
}

// layout places every grapheme cluster of a fragment.
func (d *Document) layout(f *fragment) ([]layoutRow, error) {
	if len(f.runs) == 0 {
		return nil, fmt.Errorf("%w: fragment %d has no runs", ErrUnmeasurable, f.id)
	}

	rows := []layoutRow{{}}
	for _, rid := range f.runs {
		r := d.runs[rid]
		if !(r.style.Size > 0) || math.IsInf(r.style.Size, 0) {
			return nil, fmt.Errorf("%w: run %d has size %v", ErrUnmeasurable, rid, r.style.Size)
		}
		row := &rows[len(rows)-1]
		row.runs = append(row.runs, r)

		visible := strings.TrimSuffix(r.text, ParagraphBreak)
		if err := d.placeRun(row, r, visible); err != nil {
			return nil, fmt.Errorf("%w: run %d: %v", ErrUnmeasurable, rid, err)
		}
		if visible != r.text {
			// An empty row keeps the leading of the run that opened it.
			rows = append(rows, layoutRow{leading: d.leading(r)})
		}
	}

	baseline := f.anchor.Y
	for i := range rows {
		row := &rows[i]
		if i > 0 {
			if len(row.runs) > 0 {
				row.leading = d.leading(row.runs[0])
				for _, r := range row.runs[1:] {
					row.leading = math.Max(row.leading, d.leading(r))
				}
			}
			baseline -= row.leading
		}
		row.baseline = baseline
		row.left = f.justification.RowLeft(f.anchor.X, row.width)
		for j := range row.glyphs {
			row.glyphs[j].x += row.left
			row.glyphs[j].baseline = baseline
		}
	}
	return rows, nil
}

// placeRun appends the clusters of a run to a row, advancing the pen by the
// font advance plus tracking.
func (d *Document) placeRun(row *layoutRow, r *run, text string) error {
	if text == "" {
		return nil
	}
	adv, err := d.metrics.Advances(text, r.style.Size)
	if err != nil {
		return err
	}
	track := r.style.Tracking / 1000 * r.style.Size
	i := 0
	for _, cluster := range Graphemes(text) {
		w := 0.0
		for range cluster {
			if i < len(adv) {
				w += adv[i]
			}
			i++
		}
		row.glyphs = append(row.glyphs, placedGlyph{cluster: cluster, x: row.width, run: r})
		row.width += w + track
	}
	return nil
}

// rowBounds returns the box of a row: full advance width, and the vertical
// extent of its runs shifted by their baseline shift.
func (d *Document) rowBounds(row layoutRow) (model.BBox, error) {
	if len(row.glyphs) == 0 {
		return model.BBox{}, nil
	}
	top, bottom := math.Inf(-1), math.Inf(1)
	for _, g := range row.glyphs {
		ascent, descent, err := d.metrics.VerticalMetrics(g.run.style.Size)
		if err != nil {
			return model.BBox{}, err
		}
		shifted := row.baseline + g.run.style.BaselineShift
		top = math.Max(top, shifted+ascent)
		bottom = math.Min(bottom, shifted-descent)
	}
	return model.NewBBox(row.left, bottom, row.width, top-bottom), nil
}

// leading returns the effective leading of a run.
func (d *Document) leading(r *run) float64 {
	if r.style.AutoLeading {
		return r.style.Size * d.config.AutoLeadingRatio
	}
	return r.style.Leading
}
