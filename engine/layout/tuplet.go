package layout

import (
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/engine/functor"
	"github.com/npillmayer/engrave/engine/score"
)

// calcTuplet determines the boundary elements of tuplets, their alignment
// with beams and the alignment of numbers with brackets.
type calcTuplet struct {
	functor.Base
	e *Engine
}

// CalcTuplet aligns tuplet brackets and numbers.
func (e *Engine) CalcTuplet() functor.Code {
	return e.process(&calcTuplet{e: e})
}

func (p *calcTuplet) VisitTuplet(n *score.Node) functor.Code {
	doc := p.e.Doc
	tuplet := doc.Tuplet(n.ID)
	elements := tupletElements(doc, n.ID)
	if len(elements) == 0 {
		p.e.advise(core.Error(core.EINVALID, "tuplet %s has no notes, chords or rests", n.XMLID))
		return functor.Continue
	}
	tuplet.DrawingLeft = elements[0]
	tuplet.DrawingRight = elements[len(elements)-1]
	bracketID := doc.FirstChild(n.ID, score.KindTupletBracket)
	numID := doc.FirstChild(n.ID, score.KindTupletNum)
	if beam := alignedBeam(doc, n.ID); beam != score.NoNode {
		tuplet.BracketAlignedBeam = beam
		tuplet.NumAlignedBeam = beam
	}
	if bracket := doc.TupletBracket(bracketID); bracket != nil {
		unit := p.e.Metrics.DrawingUnit(p.e.staffSize(n.ID))
		bracket.XRelLeft = -unit
		bracket.XRelRight = 2*p.e.Radius(tuplet.DrawingRight, false) + unit
		if num := doc.TupletNum(numID); num != nil && !num.Visible.IsFalse() && !bracket.Visible.IsFalse() {
			doc.SetAlignedBracket(numID, bracketID)
		}
	}
	return functor.Continue
}

// tupletElements collects the notes, chords and rests of a tuplet in
// document order. Notes of chords are represented by their chord.
func tupletElements(doc *score.Document, tuplet score.NodeID) []score.NodeID {
	var elements []score.NodeID
	var collect func(score.NodeID)
	collect = func(id score.NodeID) {
		for _, ch := range doc.Children(id) {
			switch doc.Kind(ch) {
			case score.KindNote, score.KindChord, score.KindRest:
				elements = append(elements, ch)
			default:
				collect(ch)
			}
		}
	}
	collect(tuplet)
	return elements
}

// alignedBeam returns a beam holding all elements of a tuplet: either a
// beam enclosing the tuplet, or a beam which is the only content of the
// tuplet.
func alignedBeam(doc *score.Document, tuplet score.NodeID) score.NodeID {
	if beam := doc.FirstAncestor(tuplet, score.KindBeam); beam != score.NoNode {
		return beam
	}
	beam := score.NoNode
	for _, ch := range doc.Children(tuplet) {
		switch doc.Kind(ch) {
		case score.KindTupletBracket, score.KindTupletNum:
			continue
		case score.KindBeam:
			if beam != score.NoNode {
				return score.NoNode
			}
			beam = ch
		default:
			return score.NoNode
		}
	}
	return beam
}

// --- Bracket and number positions ------------------------------------------

func (e *Engine) bracketContext(bracket score.NodeID) (*score.Tuplet, *score.TupletBracket, error) {
	b := e.Doc.TupletBracket(bracket)
	if b == nil {
		return nil, nil, core.Error(core.EINVALID, "node %d is not a tuplet bracket", bracket)
	}
	t := e.Doc.Tuplet(e.Doc.FirstAncestor(bracket, score.KindTuplet))
	if t == nil || t.DrawingLeft == score.NoNode || t.DrawingRight == score.NoNode {
		return nil, nil, core.Error(core.EMISSING, "bracket %d has no aligned tuplet", bracket)
	}
	return t, b, nil
}

// BracketXLeft returns the x of the left end of a bracket.
func (e *Engine) BracketXLeft(bracket score.NodeID) (dimen.Dimen, error) {
	t, b, err := e.bracketContext(bracket)
	if err != nil {
		return 0, err
	}
	return e.Doc.DrawingX(t.DrawingLeft) + b.XRelLeft, nil
}

// BracketXRight returns the x of the right end of a bracket.
func (e *Engine) BracketXRight(bracket score.NodeID) (dimen.Dimen, error) {
	t, b, err := e.bracketContext(bracket)
	if err != nil {
		return 0, err
	}
	return e.Doc.DrawingX(t.DrawingRight) + b.XRelRight, nil
}

// BracketYLeft returns the y of the left end of a bracket. Brackets aligned
// to a beam follow the beam's slope.
func (e *Engine) BracketYLeft(bracket score.NodeID) (dimen.Dimen, error) {
	t, b, err := e.bracketContext(bracket)
	if err != nil {
		return 0, err
	}
	return e.bracketY(bracket, e.Doc.DrawingX(t.DrawingLeft)+b.XRelLeft, t), nil
}

// BracketYRight returns the y of the right end of a bracket.
func (e *Engine) BracketYRight(bracket score.NodeID) (dimen.Dimen, error) {
	t, b, err := e.bracketContext(bracket)
	if err != nil {
		return 0, err
	}
	return e.bracketY(bracket, e.Doc.DrawingX(t.DrawingRight)+b.XRelRight, t), nil
}

func (e *Engine) bracketY(bracket score.NodeID, x dimen.Dimen, t *score.Tuplet) dimen.Dimen {
	if beam := e.Doc.Beam(t.BracketAlignedBeam); beam != nil {
		return beam.Segment.YAt(x, e.Doc.Node(bracket).YRel)
	}
	return e.Doc.DrawingY(bracket)
}

// NumXMid returns the horizontal center of a tuplet number.
func (e *Engine) NumXMid(num score.NodeID) (dimen.Dimen, error) {
	doc := e.Doc
	tn := doc.TupletNum(num)
	if tn == nil {
		return 0, core.Error(core.EINVALID, "node %d is not a tuplet number", num)
	}
	if bracket := tn.AlignedBracket(); bracket != score.NoNode {
		xLeft, err := e.BracketXLeft(bracket)
		if err != nil {
			return 0, err
		}
		xRight, err := e.BracketXRight(bracket)
		if err != nil {
			return 0, err
		}
		return xLeft + (xRight-xLeft)/2, nil
	}
	t := doc.Tuplet(doc.FirstAncestor(num, score.KindTuplet))
	if t == nil || t.DrawingLeft == score.NoNode || t.DrawingRight == score.NoNode {
		return 0, core.Error(core.EMISSING, "number %d has no aligned tuplet", num)
	}
	xLeft := doc.DrawingX(t.DrawingLeft)
	xRight := doc.DrawingX(t.DrawingRight) + 2*e.Radius(t.DrawingRight, false)
	if beam := doc.Beam(t.NumAlignedBeam); beam != nil {
		switch beam.Place {
		case score.BeamPlaceAbove:
			xLeft += e.Radius(t.DrawingLeft, false)
		case score.BeamPlaceBelow:
			xRight -= e.Radius(t.DrawingRight, false)
		}
	}
	return xLeft + (xRight-xLeft)/2, nil
}

// NumYMid returns the vertical center of a tuplet number.
func (e *Engine) NumYMid(num score.NodeID) (dimen.Dimen, error) {
	tn := e.Doc.TupletNum(num)
	if tn == nil {
		return 0, core.Error(core.EINVALID, "node %d is not a tuplet number", num)
	}
	if bracket := tn.AlignedBracket(); bracket != score.NoNode {
		yLeft, err := e.BracketYLeft(bracket)
		if err != nil {
			return 0, err
		}
		yRight, err := e.BracketYRight(bracket)
		if err != nil {
			return 0, err
		}
		return yLeft + (yRight-yLeft)/2, nil
	}
	return e.Doc.DrawingY(num), nil
}
