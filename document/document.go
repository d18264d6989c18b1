package document

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/fragmerge/metrics"
	"github.com/tsawler/fragmerge/model"
)

var (
	// ErrInvalidID is returned for identifiers that were never issued or
	// whose record has been removed.
	ErrInvalidID = errors.New("document: invalid identifier")

	// ErrUnmeasurable is returned when a fragment cannot be laid out.
	ErrUnmeasurable = errors.New("document: fragment cannot be measured")
)

// ParagraphBreak separates rows inside a fragment.
const ParagraphBreak = "\r"

// FragmentID identifies a fragment in a Document.
type FragmentID int64

// RunID identifies a character run in a Document.
type RunID int64

// Run is a snapshot of a character run.
type Run struct {
	ID            RunID
	Fragment      FragmentID
	Text          string
	Font          string
	Size          float64
	Tracking      float64 // thousandths of an em
	BaselineShift float64
	Leading       float64
	AutoLeading   bool
}

// Fragment is a snapshot of a fragment.
type Fragment struct {
	ID            FragmentID
	Name          string
	Anchor        model.Point
	Justification model.Justification
	Runs          []RunID
}

// Style holds the attributes of a new run.
type Style struct {
	Font          string
	Size          float64
	Tracking      float64
	BaselineShift float64
	Leading       float64
	AutoLeading   bool
}

// Config holds configuration for a Document
type Config struct {
	// AutoLeadingRatio is the leading of auto-leading runs as a multiple of
	// their size (default: 1.2)
	AutoLeadingRatio float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		AutoLeadingRatio: 1.2,
	}
}

// Stats counts the host round-trips performed on a Document.
type Stats struct {
	Duplicates int // fragment and run duplications
	Removes    int // fragment and run removals
	Edits      int // text and attribute edits, moves
	Measures   int // Measure and OutlineLastGlyph calls
}

type fragment struct {
	id            FragmentID
	name          string
	anchor        model.Point
	justification model.Justification
	runs          []RunID
}

type run struct {
	id       RunID
	fragment FragmentID
	text     string
	style    Style
}

// Document is an arena of fragments and runs.
type Document struct {
	config  Config
	metrics metrics.Metrics

	next      int64
	fragments map[FragmentID]*fragment
	runs      map[RunID]*run
	order     []FragmentID
	selection []FragmentID

	stats Stats
}

// New creates an empty document measured with m and default configuration
func New(m metrics.Metrics) *Document {
	return NewWithConfig(m, DefaultConfig())
}

// NewWithConfig creates an empty document with custom configuration
func NewWithConfig(m metrics.Metrics, config Config) *Document {
	if m == nil {
		m = metrics.NewMonospace()
	}
	if config.AutoLeadingRatio <= 0 {
		config.AutoLeadingRatio = DefaultConfig().AutoLeadingRatio
	}
	return &Document{
		config:    config,
		metrics:   m,
		fragments: make(map[FragmentID]*fragment),
		runs:      make(map[RunID]*run),
	}
}

// Config returns the document configuration.
func (d *Document) Config() Config {
	return d.config
}

// Stats returns the round-trip counters.
func (d *Document) Stats() Stats {
	return d.stats
}

// ResetStats zeroes the round-trip counters.
func (d *Document) ResetStats() {
	d.stats = Stats{}
}

func (d *Document) nextID() int64 {
	d.next++
	return d.next
}

func (d *Document) fragment(id FragmentID) (*fragment, error) {
	f, ok := d.fragments[id]
	if !ok {
		return nil, fmt.Errorf("%w: fragment %d", ErrInvalidID, id)
	}
	return f, nil
}

func (d *Document) run(id RunID) (*run, error) {
	r, ok := d.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: run %d", ErrInvalidID, id)
	}
	return r, nil
}

// NewFragment adds an empty fragment anchored at anchor.
func (d *Document) NewFragment(anchor model.Point, j model.Justification) (FragmentID, error) {
	f := &fragment{
		id:            FragmentID(d.nextID()),
		anchor:        anchor,
		justification: j,
	}
	d.fragments[f.id] = f
	d.order = append(d.order, f.id)
	return f.id, nil
}

// AddRun appends a run to the end of a fragment.
func (d *Document) AddRun(id FragmentID, text string, style Style) (RunID, error) {
	f, err := d.fragment(id)
	if err != nil {
		return 0, err
	}
	r := &run{
		id:       RunID(d.nextID()),
		fragment: id,
		text:     norm.NFC.String(text),
		style:    style,
	}
	d.runs[r.id] = r
	f.runs = append(f.runs, r.id)
	d.splitBreaks(r)
	return r.id, nil
}

// SetName sets the name of a fragment (the SVG id when read from a file).
func (d *Document) SetName(id FragmentID, name string) error {
	f, err := d.fragment(id)
	if err != nil {
		return err
	}
	f.name = name
	return nil
}

// Fragments returns the live fragments in document order.
func (d *Document) Fragments() []FragmentID {
	return append([]FragmentID(nil), d.order...)
}

// Fragment returns a snapshot of a fragment.
func (d *Document) Fragment(id FragmentID) (Fragment, error) {
	f, err := d.fragment(id)
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{
		ID:            f.id,
		Name:          f.name,
		Anchor:        f.anchor,
		Justification: f.justification,
		Runs:          append([]RunID(nil), f.runs...),
	}, nil
}

// FindByName returns the fragment called name.
func (d *Document) FindByName(name string) (FragmentID, bool) {
	for _, id := range d.order {
		if d.fragments[id].name == name {
			return id, true
		}
	}
	return 0, false
}

// Runs returns the runs of a fragment in order.
func (d *Document) Runs(id FragmentID) ([]RunID, error) {
	f, err := d.fragment(id)
	if err != nil {
		return nil, err
	}
	return append([]RunID(nil), f.runs...), nil
}

// Run returns a snapshot of a run.
func (d *Document) Run(id RunID) (Run, error) {
	r, err := d.run(id)
	if err != nil {
		return Run{}, err
	}
	return Run{
		ID:            r.id,
		Fragment:      r.fragment,
		Text:          r.text,
		Font:          r.style.Font,
		Size:          r.style.Size,
		Tracking:      r.style.Tracking,
		BaselineShift: r.style.BaselineShift,
		Leading:       r.style.Leading,
		AutoLeading:   r.style.AutoLeading,
	}, nil
}

// Text returns the text of a fragment, rows separated by ParagraphBreak.
func (d *Document) Text(id FragmentID) (string, error) {
	f, err := d.fragment(id)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, rid := range f.runs {
		sb.WriteString(d.runs[rid].text)
	}
	return sb.String(), nil
}

// RowRuns returns the runs of a fragment grouped by row.
func (d *Document) RowRuns(id FragmentID) ([][]RunID, error) {
	f, err := d.fragment(id)
	if err != nil {
		return nil, err
	}
	rows := [][]RunID{nil}
	for _, rid := range f.runs {
		rows[len(rows)-1] = append(rows[len(rows)-1], rid)
		if strings.HasSuffix(d.runs[rid].text, ParagraphBreak) {
			rows = append(rows, nil)
		}
	}
	return rows, nil
}

// Justification returns the justification of a fragment.
func (d *Document) Justification(id FragmentID) (model.Justification, error) {
	f, err := d.fragment(id)
	if err != nil {
		return model.JustifyStart, err
	}
	return f.justification, nil
}

// Selection returns the selected fragments.
func (d *Document) Selection() []FragmentID {
	return append([]FragmentID(nil), d.selection...)
}

// Select replaces the selection.
func (d *Document) Select(ids ...FragmentID) error {
	for _, id := range ids {
		if _, err := d.fragment(id); err != nil {
			return err
		}
	}
	d.selection = append([]FragmentID(nil), ids...)
	return nil
}
