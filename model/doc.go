// Package model provides the geometric primitives shared by the fragment
// merging packages.
//
// Coordinates follow the illustration convention: X grows to the right and
// Y grows upward, so a row that sits lower on the artboard has a smaller Y.
//
// # Geometry
//
//   - [BBox] - bounding box with union and translation
//   - [Point] - 2D point, used for fragment anchors
//
// # Justification
//
// [Justification] selects which point of a row the anchor of a fragment
// designates: the left edge ([JustifyStart]), the center ([JustifyCenter]) or
// the right edge ([JustifyEnd]).
package model
