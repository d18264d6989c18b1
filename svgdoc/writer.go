package svgdoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/fragmerge/document"
	"github.com/tsawler/fragmerge/merge"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// WriteFile writes every fragment of doc to an SVG file.
func WriteFile(filename string, doc *document.Document) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write renders every fragment of doc as SVG, in document order. Selected
// fragments are marked data-selected="true".
func Write(w io.Writer, doc *document.Document) error {
	svg := element("svg", "xmlns", svgNamespace)

	selected := make(map[document.FragmentID]bool)
	for _, id := range doc.Selection() {
		selected[id] = true
	}

	for _, id := range doc.Fragments() {
		n, err := encodeText(doc, id, selected[id])
		if err != nil {
			return err
		}
		svg.AppendChild(n)
	}

	if err := html.Render(w, svg); err != nil {
		return fmt.Errorf("rendering SVG: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func encodeText(doc *document.Document, id document.FragmentID, selected bool) (*html.Node, error) {
	f, err := doc.Fragment(id)
	if err != nil {
		return nil, err
	}
	rows, err := doc.RowRuns(id)
	if err != nil {
		return nil, err
	}

	text := element("text",
		"x", formatNumber(f.Anchor.X),
		"y", formatNumber(-f.Anchor.Y),
		"text-anchor", textAnchor(f.Justification.String()))
	if f.Name != "" {
		text.Attr = append(text.Attr, html.Attribute{Key: "id", Val: f.Name})
	}
	if selected {
		text.Attr = append(text.Attr, html.Attribute{Key: "data-selected", Val: "true"})
	}

	// Row distances come from the layout; without one the runs' own
	// leading is written.
	var baselines []float64
	if g, err := doc.Measure(id); err == nil {
		baselines = g.Baselines
	} else {
		merge.Logger().Debug("writing leading without layout", "fragment", id, "error", err)
	}

	for i, row := range rows {
		if i > 0 && len(row) == 0 {
			// Trailing break: an empty row.
			brk := element("tspan", "data-break", "1", "x", formatNumber(f.Anchor.X))
			if i < len(baselines) {
				brk.Attr = append(brk.Attr, html.Attribute{Key: "dy", Val: formatNumber(baselines[i-1] - baselines[i])})
			}
			text.AppendChild(brk)
			continue
		}
		runs, err := coalesce(doc, row)
		if err != nil {
			return nil, err
		}
		for j, r := range runs {
			span := encodeRun(r)
			if i > 0 && j == 0 {
				span.Attr = append(span.Attr,
					html.Attribute{Key: "data-break", Val: "1"},
					html.Attribute{Key: "x", Val: formatNumber(f.Anchor.X)})
				dy := r.Leading
				if i < len(baselines) {
					dy = baselines[i-1] - baselines[i]
				}
				span.Attr = append(span.Attr, html.Attribute{Key: "dy", Val: formatNumber(dy)})
			}
			text.AppendChild(span)
		}
	}
	return text, nil
}

// coalesce joins adjacent runs of a row that share every style attribute,
// so seam splits do not reach the output.
func coalesce(doc *document.Document, row []document.RunID) ([]document.Run, error) {
	var out []document.Run
	for _, rid := range row {
		r, err := doc.Run(rid)
		if err != nil {
			return nil, err
		}
		if n := len(out); n > 0 && sameStyle(out[n-1], r) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func sameStyle(a, b document.Run) bool {
	return a.Font == b.Font &&
		a.Size == b.Size &&
		a.Tracking == b.Tracking &&
		a.BaselineShift == b.BaselineShift &&
		a.Leading == b.Leading &&
		a.AutoLeading == b.AutoLeading
}

func encodeRun(r document.Run) *html.Node {
	span := element("tspan", "font-size", formatNumber(r.Size))
	if r.Font != "" {
		span.Attr = append(span.Attr, html.Attribute{Key: "font-family", Val: r.Font})
	}
	if r.Tracking != 0 {
		span.Attr = append(span.Attr,
			html.Attribute{Key: "letter-spacing", Val: formatNumber(r.Tracking/1000) + "em"},
			html.Attribute{Key: "data-tracking", Val: formatNumber(r.Tracking)})
	}
	if r.BaselineShift != 0 {
		span.Attr = append(span.Attr, html.Attribute{Key: "baseline-shift", Val: formatNumber(r.BaselineShift)})
	}
	if !r.AutoLeading {
		span.Attr = append(span.Attr, html.Attribute{Key: "data-leading", Val: formatNumber(r.Leading)})
	}
	if txt := strings.TrimSuffix(r.Text, document.ParagraphBreak); txt != "" {
		span.AppendChild(&html.Node{Type: html.TextNode, Data: txt})
	}
	return span
}

func textAnchor(justification string) string {
	if justification == "center" {
		return "middle"
	}
	return justification
}

func element(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:      html.ElementNode,
		Data:      tag,
		DataAtom:  atom.Lookup([]byte(tag)),
		Namespace: "svg",
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
