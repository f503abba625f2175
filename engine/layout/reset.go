package layout

import (
	"github.com/npillmayer/engrave/core/parameters"
	"github.com/npillmayer/engrave/engine/functor"
	"github.com/npillmayer/engrave/engine/score"
)

// resetDrawing clears attributes written by the drawing passes.
type resetDrawing struct {
	functor.Base
	doc *score.Document
}

// ResetDrawing clears stem geometry, flag counts, ligature shapes, neume
// glyphs and cached curves.
func (e *Engine) ResetDrawing() functor.Code {
	return e.process(&resetDrawing{doc: e.Doc})
}

func (r *resetDrawing) VisitNote(n *score.Node) functor.Code {
	r.doc.Note(n.ID).DrawingStemDir = score.StemNone
	return functor.Continue
}

func (r *resetDrawing) VisitChord(n *score.Node) functor.Code {
	r.doc.Chord(n.ID).DrawingStemDir = score.StemNone
	return functor.Continue
}

func (r *resetDrawing) VisitStem(n *score.Node) functor.Code {
	stem := r.doc.Stem(n.ID)
	stem.DrawingDir = score.StemNone
	stem.DrawingLen = 0
	n.XRel, n.YRel = 0, 0
	return functor.Continue
}

func (r *resetDrawing) VisitFlag(n *score.Node) functor.Code {
	r.doc.Flag(n.ID).Count = 0
	n.YRel = 0
	return functor.Continue
}

func (r *resetDrawing) VisitLigature(n *score.Node) functor.Code {
	r.doc.Ligature(n.ID).Shapes = nil
	return functor.Continue
}

func (r *resetDrawing) VisitNc(n *score.Node) functor.Code {
	r.doc.Nc(n.ID).Glyphs = nil
	return functor.Continue
}

func (r *resetDrawing) VisitSlur(n *score.Node) functor.Code { return r.resetCurves(n) }
func (r *resetDrawing) VisitTie(n *score.Node) functor.Code  { return r.resetCurves(n) }
func (r *resetDrawing) VisitSyl(n *score.Node) functor.Code  { return r.resetCurves(n) }

func (r *resetDrawing) resetCurves(n *score.Node) functor.Code {
	if sp := r.doc.Spanning(n.ID); sp != nil {
		sp.Curves = nil
	}
	return functor.Continue
}

// resetHorizontal clears horizontal attributes and alignment links.
type resetHorizontal struct {
	functor.Base
	doc               *score.Document
	ligatureAsBracket bool // ligature notes keep their input positions
	neumeAsNote       bool // neume components keep their input positions
}

// ResetHorizontalAlignment clears bracket offsets, bracket and number
// alignment, tuplet boundaries and the offsets of ligature notes and neume
// components.
func (e *Engine) ResetHorizontalAlignment() functor.Code {
	return e.process(&resetHorizontal{
		doc:               e.Doc,
		ligatureAsBracket: e.Params.B(parameters.P_LIGATUREASBRACKET),
		neumeAsNote:       e.Params.B(parameters.P_NEUMEASNOTE),
	})
}

func (r *resetHorizontal) VisitTuplet(n *score.Node) functor.Code {
	t := r.doc.Tuplet(n.ID)
	t.DrawingLeft, t.DrawingRight = score.NoNode, score.NoNode
	t.BracketAlignedBeam, t.NumAlignedBeam = score.NoNode, score.NoNode
	return functor.Continue
}

func (r *resetHorizontal) VisitTupletBracket(n *score.Node) functor.Code {
	b := r.doc.TupletBracket(n.ID)
	b.XRelLeft, b.XRelRight = 0, 0
	if num := b.AlignedNum(); num != score.NoNode {
		r.doc.SetAlignedBracket(num, score.NoNode)
	}
	return functor.Continue
}

func (r *resetHorizontal) VisitTupletNum(n *score.Node) functor.Code {
	r.doc.SetAlignedBracket(n.ID, score.NoNode)
	return functor.Continue
}

func (r *resetHorizontal) VisitNote(n *score.Node) functor.Code {
	if !r.ligatureAsBracket && r.doc.Is(n.Parent, score.KindLigature) {
		n.XRel = 0
	}
	return functor.Continue
}

func (r *resetHorizontal) VisitNc(n *score.Node) functor.Code {
	if !r.neumeAsNote {
		n.XRel = 0
	}
	return functor.Continue
}
