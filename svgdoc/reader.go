package svgdoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/metrics"
	"github.com/tsawler/fragmerge/model"
)

var (
	// ErrNoText is returned for input without any <text> element.
	ErrNoText = errors.New("svgdoc: no text element")

	// ErrInvalidNumber is returned for numeric attributes that do not parse.
	ErrInvalidNumber = errors.New("svgdoc: invalid number")
)

// DefaultFontSize is used when neither a <text> nor its <tspan> sets one.
const DefaultFontSize = 16

// Open reads an SVG file into a new document measured with m.
func Open(filename string, m metrics.Metrics) (*document.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f, m)
}

// OpenReader parses SVG from an io.Reader into a new document.
func OpenReader(r io.Reader, m metrics.Metrics) (*document.Document, error) {
	doc := document.New(m)
	if err := Decode(r, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Decode adds the <text> elements of an SVG stream to doc. Elements marked
// data-selected="true" replace the document selection.
func Decode(r io.Reader, doc *document.Document) error {
	root, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("parsing SVG: %w", err)
	}

	texts := findElements(root, "text")
	if len(texts) == 0 {
		return ErrNoText
	}

	var selected []document.FragmentID
	for _, n := range texts {
		id, err := decodeText(n, doc)
		if err != nil {
			return err
		}
		if attr(n, "data-selected") == "true" {
			selected = append(selected, id)
		}
	}
	if len(selected) > 0 {
		return doc.Select(selected...)
	}
	return nil
}

// decoder carries the state of one <text> element.
type decoder struct {
	doc  *document.Document
	id   document.FragmentID
	last document.RunID
	runs int
}

func decodeText(n *html.Node, doc *document.Document) (document.FragmentID, error) {
	x, err := number(n, "x", 0)
	if err != nil {
		return 0, err
	}
	y, err := number(n, "y", 0)
	if err != nil {
		return 0, err
	}
	j, err := model.ParseJustification(attr(n, "text-anchor"))
	if err != nil {
		return 0, err
	}

	style, err := inherit(n, document.Style{Size: DefaultFontSize, AutoLeading: true})
	if err != nil {
		return 0, err
	}

	id, err := doc.NewFragment(model.Point{X: x, Y: -y}, j)
	if err != nil {
		return 0, err
	}
	if name := attr(n, "id"); name != "" {
		if err := doc.SetName(id, name); err != nil {
			return 0, err
		}
	}

	d := &decoder{doc: doc, id: id}
	if err := d.children(n, style); err != nil {
		return 0, fmt.Errorf("text %q: %w", attr(n, "id"), err)
	}
	return id, nil
}

func (d *decoder) children(n *html.Node, style document.Style) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			if isFormatting(c.Data) {
				continue
			}
			if err := d.add(c.Data, style); err != nil {
				return err
			}
		case c.Type == html.ElementNode && c.Data == "tspan":
			if err := d.tspan(c, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *decoder) tspan(n *html.Node, parent document.Style) error {
	style, err := inherit(n, parent)
	if err != nil {
		return err
	}
	if attr(n, "data-break") == "1" {
		if err := d.breakRow(style); err != nil {
			return err
		}
		if _, ok := lookup(n, "data-leading"); !ok {
			if dy, ok := lookup(n, "dy"); ok {
				v, err := parseNumber("dy", dy)
				if err != nil {
					return err
				}
				style.Leading = v
				style.AutoLeading = false
			}
		}
	}
	return d.children(n, style)
}

// breakRow ends the current row with a paragraph break.
func (d *decoder) breakRow(style document.Style) error {
	if d.runs == 0 {
		return d.add(document.ParagraphBreak, style)
	}
	return d.doc.AppendText(d.last, document.ParagraphBreak)
}

func (d *decoder) add(text string, style document.Style) error {
	rid, err := d.doc.AddRun(d.id, text, style)
	if err != nil {
		return err
	}
	d.last = rid
	d.runs++
	return nil
}

// inherit applies the run attributes set on n over parent.
func inherit(n *html.Node, parent document.Style) (document.Style, error) {
	s := parent
	if v, ok := lookup(n, "font-family"); ok {
		s.Font = v
	}
	if v, ok := lookup(n, "font-size"); ok {
		size, err := parseNumber("font-size", v)
		if err != nil {
			return s, err
		}
		s.Size = size
	}
	if v, ok := lookup(n, "baseline-shift"); ok {
		shift, err := parseNumber("baseline-shift", v)
		if err != nil {
			return s, err
		}
		s.BaselineShift = shift
	}
	if v, ok := lookup(n, "data-tracking"); ok {
		tracking, err := parseNumber("data-tracking", v)
		if err != nil {
			return s, err
		}
		s.Tracking = tracking
	} else if v, ok := lookup(n, "letter-spacing"); ok {
		tracking, err := letterSpacing(v, s.Size)
		if err != nil {
			return s, err
		}
		s.Tracking = tracking
	}
	if v, ok := lookup(n, "data-leading"); ok {
		leading, err := parseNumber("data-leading", v)
		if err != nil {
			return s, err
		}
		s.Leading = leading
		s.AutoLeading = false
	}
	return s, nil
}

// letterSpacing converts an SVG letter-spacing value to tracking in
// thousandths of an em.
func letterSpacing(v string, size float64) (float64, error) {
	if em, ok := strings.CutSuffix(strings.TrimSpace(v), "em"); ok {
		f, err := parseNumber("letter-spacing", em)
		return f * 1000, err
	}
	f, err := parseNumber("letter-spacing", v)
	if err != nil || size == 0 {
		return 0, err
	}
	return f / size * 1000, nil
}

// isFormatting reports whether a text node is indentation between elements.
func isFormatting(s string) bool {
	return strings.TrimSpace(s) == "" && strings.ContainsAny(s, "\n\t")
}

func number(n *html.Node, key string, def float64) (float64, error) {
	v, ok := lookup(n, key)
	if !ok {
		return def, nil
	}
	return parseNumber(key, v)
}

func parseNumber(key, v string) (float64, error) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, key, v)
	}
	return f, nil
}

func attr(n *html.Node, key string) string {
	v, _ := lookup(n, key)
	return v
}

func lookup(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// findElements returns every element named tag, in document order.
func findElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	if n.Type == html.ElementNode && n.Data == tag {
		return append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findElements(c, tag)...)
	}
	return out
}
