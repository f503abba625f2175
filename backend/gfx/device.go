package gfx

import (
	"unicode/utf8"

	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/percent"
	"golang.org/x/text/width"
)

// DeviceContext is the interface drawing code outputs to.
type DeviceContext interface {
	// StartGraphic opens a graphic element. An empty id denotes an anonymous
	// part of a split element.
	StartGraphic(class, id string)
	// EndGraphic closes the graphic element opened last.
	EndGraphic(id string)
	// DrawThickBezier draws a cubic bezier from p1 to p2 with control points
	// c1 and c2, thickened to a lens shape of maximum width thickness.
	DrawThickBezier(p1, p2, c1, c2 dimen.Point, thickness dimen.Dimen, staffSize percent.Percent)
	// DrawFullRectangle fills the rectangle spanned by two corners.
	DrawFullRectangle(x1, y1, x2, y2 dimen.Dimen)
	// TextExtent returns width and height of a text set in the lyric font.
	TextExtent(text string, staffSize percent.Percent) (w, h dimen.Dimen)
}

// TextMeasurer measures texts set in the lyric font.
type TextMeasurer interface {
	Extent(text string, staffSize percent.Percent) (w, h dimen.Dimen)
}

// TextEstimator estimates text extents from the display width of the runes.
// Wide and fullwidth runes count as two cells.
type TextEstimator struct {
	Cell dimen.Dimen // advance of a narrow rune at 100% staff size
}

// DefaultTextEstimator matches a lyric font of about 1.4 staff spaces.
var DefaultTextEstimator = TextEstimator{Cell: 150}

// Cells returns the number of display cells of a text.
func Cells(text string) int {
	cells := 0
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			cells += 2
		default:
			cells++
		}
	}
	return cells
}

var _ TextMeasurer = TextEstimator{}

// Extent estimates width and height of a text.
func (est TextEstimator) Extent(text string, staffSize percent.Percent) (w, h dimen.Dimen) {
	cell := staffSize.Scale(est.Cell)
	return dimen.Dimen(Cells(text)) * cell, 2 * cell
}
