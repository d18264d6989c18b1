// Package svgdoc reads and writes text fragments as SVG.
//
// Each <text> element is one fragment. Its x and y attributes are the
// anchor, text-anchor the justification and id the fragment name. Text
// content and <tspan> children become runs; a <tspan data-break="1"> starts
// a new row whose distance from the previous row is given by dy. Run
// attributes are font-size, font-family, baseline-shift, letter-spacing and
// the data-tracking and data-leading extensions.
//
// SVG coordinates grow downward while fragment anchors grow upward: the
// reader stores -y and the writer flips it back.
package svgdoc
