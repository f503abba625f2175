package view

import (
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/parameters"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/engrave/engine/score"
)

// curveAnchors holds the notes and layers of a slur or tie.
type curveAnchors struct {
	note1, note2   score.NodeID
	layer1, layer2 score.NodeID
}

func (v *View) anchors(element score.NodeID) (curveAnchors, bool) {
	doc := v.Doc
	s := doc.Spanning(element)
	a := curveAnchors{note1: s.Start, note2: s.End}
	if !doc.Is(a.note1, score.KindNote) || !doc.Is(a.note2, score.KindNote) {
		v.advise(core.Error(core.EINVALID, "%s %s does not connect two notes",
			doc.Kind(element), doc.Node(element).XMLID))
		return a, false
	}
	a.layer1 = doc.FirstAncestor(a.note1, score.KindLayer)
	a.layer2 = doc.FirstAncestor(a.note2, score.KindLayer)
	if a.layer1 == score.NoNode || a.layer2 == score.NoNode {
		v.advise(core.Error(core.EMISSING, "%s %s has an anchor outside of a layer",
			doc.Kind(element), doc.Node(element).XMLID))
		return a, false
	}
	if doc.Layer(a.layer1).N != doc.Layer(a.layer2).N {
		v.advise(core.Error(core.EINVALID, "%s %s connects different layers",
			doc.Kind(element), doc.Node(element).XMLID))
	}
	return a, true
}

// curveUp decides whether a curve is drawn above its notes. An authored
// direction wins, then the stem direction of the layer, then the position
// of the note within its chord and finally the note's own stem.
func (v *View) curveUp(element score.NodeID, a curveAnchors, stemDir score.StemDir,
	y1 dimen.Dimen, staff score.NodeID) bool {
	doc := v.Doc
	s := doc.Spanning(element)
	up := true
	switch {
	case s.CurveDir != score.CurveNone:
		up = s.CurveDir == score.CurveAbove
	case doc.Layer(a.layer1).StemDir != score.StemNone:
		up = doc.Layer(a.layer1).StemDir == score.StemUp
	case doc.ChordOf(a.note1) != score.NoNode:
		switch pos := doc.PositionInChord(a.note1); {
		case pos < 0:
			up = false
		case pos > 0:
			up = true
		default: // center note curves away from the stem
			up = stemDir != score.StemUp
		}
	case stemDir == score.StemUp:
		up = false
	case stemDir == score.StemNone:
		center := doc.DrawingY(staff) - v.Metrics.StaffSize(doc.Staff(staff).Size)/2
		up = y1 > center
	}
	return up
}

// curveHeight is the distance of the control points from the chord.
func (v *View) curveHeight(element score.NodeID, x1, x2 dimen.Dimen, size percent.Percent) dimen.Dimen {
	unit := v.Metrics.DrawingUnit(size)
	var height dimen.Dimen
	if bulge := v.Doc.Spanning(element).Bulge; !bulge.IsNone() {
		height = unit * dimen.Dimen(bulge.Unwrap())
	} else {
		height = unit
		if x2-x1 > 2*v.Metrics.StaffSize(size) {
			height += unit
		}
	}
	return height * 4 / 3
}

func (v *View) thickness(p parameters.EngravingParameter, size percent.Percent) dimen.Dimen {
	return v.Metrics.DrawingUnit(size) * dimen.Dimen(v.Params.N(p)) / dimen.DefinitionFactor
}

func (v *View) cacheCurve(element, system score.NodeID, b score.Bezier) {
	s := v.Doc.Spanning(element)
	if s.Curves == nil {
		s.Curves = make(map[score.NodeID]score.Bezier)
	}
	s.Curves[system] = b
}

// DrawSlur draws a slur. Control points are computed on the chord rotated
// to the horizontal and rotated back afterwards.
func (v *View) DrawSlur(element score.NodeID, sp span) {
	doc := v.Doc
	a, ok := v.anchors(element)
	if !ok {
		return
	}
	var y1, y2 dimen.Dimen
	var stemDir score.StemDir
	switch sp.typ {
	case SpanningStartEnd:
		y1, y2 = doc.DrawingY(a.note1), doc.DrawingY(a.note2)
		stemDir = doc.NoteStemDir(a.note1)
	case SpanningStart:
		y1 = doc.DrawingY(a.note1)
		y2 = y1
		stemDir = doc.NoteStemDir(a.note1)
	case SpanningEnd:
		y1 = doc.DrawingY(a.note2)
		y2 = y1
		stemDir = doc.NoteStemDir(a.note2)
	default:
		v.advise(core.Error(core.EUNSUPPORTED, "slur %s across a whole system", doc.Node(element).XMLID))
		return
	}
	size := doc.Staff(sp.staff).Size
	unit := v.Metrics.DrawingUnit(size)
	up := v.curveUp(element, a, stemDir, y1, sp.staff)
	if up {
		y1 += 2 * unit
		y2 += 2 * unit
	} else {
		y1 -= 2 * unit
		y2 -= 2 * unit
	}
	x1, x2 := sp.x1, sp.x2
	angle := dimen.Angle(dimen.P(x1, y1), dimen.P(x2, y2))
	center := dimen.P(x1, y1)
	rotatedP2 := dimen.Rotate(dimen.P(x2, y2), -angle, center)
	height := v.curveHeight(element, x1, x2, size)
	thickness := v.thickness(parameters.P_SLURTHICKNESS, size)
	var c1, c2 dimen.Point
	c1.X = x1 + (rotatedP2.X-x1)/4
	c2.X = x1 + (rotatedP2.X-x1)/4*3
	if up {
		c1.Y = y1 + height
		c2.Y = rotatedP2.Y + height
	} else {
		c1.Y = y1 - height
		c2.Y = rotatedP2.Y - height
	}
	curve := score.Bezier{
		P1: center,
		C1: dimen.Rotate(c1, angle, center),
		C2: dimen.Rotate(c2, angle, center),
		P2: dimen.Rotate(rotatedP2, angle, center),
	}
	v.drawCurve(element, "slur", sp, curve, thickness, size)
}

// DrawTie draws a tie. Ties are flat and never rotated.
func (v *View) DrawTie(element score.NodeID, sp span) {
	doc := v.Doc
	a, ok := v.anchors(element)
	if !ok {
		return
	}
	size := doc.Staff(sp.staff).Size
	unit := v.Metrics.DrawingUnit(size)
	doubleUnit := v.Metrics.DoubleUnit(size)
	x1, x2 := sp.x1, sp.x2
	chord := doc.ChordOf(a.note1)
	// chords never get the short tie correction
	isShortTie := chord == score.NoNode && x2-x1 < 3*doubleUnit
	var y1, y2 dimen.Dimen
	var stemDir score.StemDir
	switch sp.typ {
	case SpanningStartEnd:
		y1, y2 = doc.DrawingY(a.note1), doc.DrawingY(a.note2)
		if !isShortTie {
			x1 += unit * 3 / 2
			x2 -= unit * 3 / 2
			if dots := doc.Note(a.note1).Dots; dots > 0 {
				x1 += doubleUnit * dimen.Dimen(dots)
			} else if c := doc.Chord(chord); c != nil && c.Dots > 0 {
				x1 += doubleUnit * dimen.Dimen(c.Dots)
			}
		}
		stemDir = doc.NoteStemDir(a.note1)
	case SpanningStart:
		y1 = doc.DrawingY(a.note1)
		y2 = y1
		if !isShortTie {
			x1 += unit * 3 / 2
		}
		stemDir = doc.NoteStemDir(a.note1)
	case SpanningEnd:
		y1 = doc.DrawingY(a.note2)
		y2 = y1
		if !isShortTie {
			x2 -= unit * 3 / 2
		}
		stemDir = doc.NoteStemDir(a.note2)
	default:
		v.advise(core.Error(core.EUNSUPPORTED, "tie %s across a whole system", doc.Node(element).XMLID))
		return
	}
	up := v.curveUp(element, a, stemDir, y1, sp.staff)
	offset := unit / 2
	if isShortTie {
		offset += unit
	}
	if !up {
		offset = -offset
	}
	y1 += offset
	y2 += offset
	height := v.curveHeight(element, x1, x2, size)
	if !up {
		height = -height
	}
	curve := score.Bezier{
		P1: dimen.P(x1, y1),
		C1: dimen.P(x1+(x2-x1)/4, y1+height),
		C2: dimen.P(x1+(x2-x1)/4*3, y2+height),
		P2: dimen.P(x2, y2),
	}
	v.drawCurve(element, "tie", sp, curve, v.thickness(parameters.P_TIETHICKNESS, size), size)
}

func (v *View) drawCurve(element score.NodeID, class string, sp span, curve score.Bezier,
	thickness dimen.Dimen, size percent.Percent) {
	system := v.Doc.FirstAncestor(sp.staff, score.KindSystem)
	v.cacheCurve(element, system, curve)
	id := v.startGraphic(element, class, sp)
	v.DC.DrawThickBezier(curve.P1, curve.P2, curve.C1, curve.C2, thickness, size)
	v.DC.EndGraphic(id)
}

// --- Lyrics ----------------------------------------------------------------

// SylY returns the baseline of a verse of lyrics below a staff.
func (v *View) SylY(syl, staff score.NodeID) dimen.Dimen {
	st := v.Doc.Staff(staff)
	unit := v.Metrics.DrawingUnit(st.Size)
	spacing := unit * dimen.Dimen(v.Params.N(parameters.P_LYRICVERSESPACING)) / dimen.DefinitionFactor
	verse := dimen.Dimen(v.Doc.Syl(syl).Verse)
	return v.Doc.DrawingY(staff) - v.Metrics.StaffSize(st.Size) - verse*spacing
}

// DrawSylConnector draws the connector following a syllable. In the system
// of the syllable the connector starts after the syllable's text.
func (v *View) DrawSylConnector(element score.NodeID, sp span) {
	doc := v.Doc
	syl := doc.Syl(element)
	size := doc.Staff(sp.staff).Size
	y := v.SylY(element, sp.staff)
	x1, x2 := sp.x1, sp.x2
	if sp.typ == SpanningStartEnd || sp.typ == SpanningStart {
		w, _ := v.DC.TextExtent(syl.Text, size)
		x1 += w - 2*v.Metrics.DrawingUnit(size)
	}
	id := v.startGraphic(element, "connector", sp)
	v.DrawSylConnectorLines(x1, x2, y, element, sp.staff)
	v.DC.EndGraphic(id)
}

// DrawSylConnectorLines draws centered dashes or an underline between x1
// and x2.
func (v *View) DrawSylConnectorLines(x1, x2, y dimen.Dimen, syl, staff score.NodeID) {
	size := v.Doc.Staff(staff).Size
	unit := v.Metrics.DrawingUnit(size)
	barline := v.Metrics.BarlineWidth(size)
	switch v.Doc.Syl(syl).Con {
	case score.ConDash:
		y += unit * 2 / 3
		x2 -= 2 * unit
		dashLength := unit * 4 / 3
		dashSpace := v.Metrics.StaffSize(size) * 5 / 3
		halfDashLength := dashLength / 2
		dist := x2 - x1
		nbDashes := dist / dashSpace
		margin := dist / 2
		if nbDashes < 2 {
			nbDashes = 1
		} else {
			margin = (dist - (nbDashes-1)*dashSpace) / 2
		}
		margin -= dashLength / 2
		for i := dimen.Dimen(0); i < nbDashes; i++ {
			x := x1 + margin + i*dashSpace
			v.DC.DrawFullRectangle(x-halfDashLength, y, x+halfDashLength, y+barline)
		}
	case score.ConUnderline:
		x1 += unit / 2
		v.DC.DrawFullRectangle(x1, y, x2, y+barline)
	}
}
