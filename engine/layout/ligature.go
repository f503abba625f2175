package layout

import (
	"math"

	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/parameters"
	"github.com/npillmayer/engrave/engine/functor"
	"github.com/npillmayer/engrave/engine/score"
)

// neverStack is the stacking threshold for a recta step down followed by
// the final longa. Diatonic steps are compared against it, so the longa
// is never stacked.
const neverStack = math.MaxInt32

// calcLigatureOrNeumePos computes ligature shapes and neume glyphs. Both
// handle their notes or components in explicit loops and return Siblings.
type calcLigatureOrNeumePos struct {
	functor.Base
	e                 *Engine
	ligatureAsBracket bool
	neumeAsNote       bool
}

// CalcLigatureOrNeumePos computes the shapes and horizontal offsets of the
// notes of mensural ligatures and the glyphs and offsets of neume
// components.
func (e *Engine) CalcLigatureOrNeumePos() functor.Code {
	return e.process(&calcLigatureOrNeumePos{
		e:                 e,
		ligatureAsBracket: e.Params.B(parameters.P_LIGATUREASBRACKET),
		neumeAsNote:       e.Params.B(parameters.P_NEUMEASNOTE),
	})
}

// ligaturePair holds the data of a (previous, current) pair of notes.
type ligaturePair struct {
	n1, n2     int // indices of previous and current note
	dur1, dur2 score.Duration
	isMaxima   bool // previous note is a maxima, folded into a longa
	up         bool
	step       int // diatonic step from previous to current
	isLastNote bool
	current    *score.Note
}

func (p *calcLigatureOrNeumePos) VisitLigature(n *score.Node) functor.Code {
	if p.ligatureAsBracket {
		return functor.Continue
	}
	doc := p.e.Doc
	lig := doc.Ligature(n.ID)
	lig.Shapes = nil
	noteIDs := doc.FindAllDescendants(n.ID, score.KindNote)
	if len(noteIDs) < 2 {
		p.e.advise(core.Error(core.EINVALID, "ligature %s has %d notes", n.XMLID, len(noteIDs)))
		return functor.Siblings
	}
	staffID := p.e.staffOf(n.ID)
	if staffID == score.NoNode {
		p.e.advise(core.Error(core.EMISSING, "ligature %s is not on a staff", n.XMLID))
		return functor.Siblings
	}
	staff := doc.Staff(staffID)
	notes := make([]*score.Note, len(noteIDs))
	for i, id := range noteIDs {
		notes[i] = doc.Note(id)
	}
	lig.Shapes = ligatureShapes(notes, lig.Form, staff.Notation == score.NotationMensuralBlack)

	// horizontal offsets
	var previousRight dimen.Dimen
	n1 := 0
	for i, id := range noteIDs {
		node := doc.Node(id)
		width := 2*p.e.Radius(id, true) - p.e.Metrics.StemWidth(staff.Size)
		// a stacked note is drawn above its predecessor
		if k := n1 + 1; k < len(lig.Shapes) && lig.Shapes[k]&score.LigatureStacked != 0 {
			previousRight -= width
		}
		node.XRel = previousRight
		previousRight += width
		if i == 0 {
			continue
		}
		step := notes[i].Diatonic() - notes[i-1].Diatonic()
		// limit the angle of obliques spanning more than a third
		if lig.Shapes[n1]&score.LigatureOblique != 0 && dimen.Abs(step) > 2 {
			shift := dimen.Dimen(dimen.Abs(step)-2) * width * 2 / 3
			node.XRel += shift
			previousRight += shift
		}
		n1++
	}
	tracer().Debugf("ligature %s: shapes %v", n, lig.Shapes)
	return functor.Siblings
}

// ligatureShapes resolves the drawing shapes of the notes of a ligature
// pair by pair.
func ligatureShapes(notes []*score.Note, form score.LigatureForm, isMensuralBlack bool) []score.LigatureShape {
	shapes := make([]score.LigatureShape, len(notes))
	clearPrevOblique := func(n1 int) {
		if n1 > 0 {
			shapes[n1-1] &^= score.LigatureOblique
		}
	}
	oblique := len(notes) == 2 && form == score.LigatureObliqua
	previousUp := false
	for i := 1; i < len(notes); i++ {
		prev := notes[i-1]
		pair := ligaturePair{
			n1:         i - 1,
			n2:         i,
			dur1:       prev.Dur,
			dur2:       notes[i].Dur,
			step:       notes[i].Diatonic() - prev.Diatonic(),
			isLastNote: i == len(notes)-1,
			current:    notes[i],
		}
		if prev.Lig == score.LigatureObliqua {
			oblique = true
		}
		if pair.dur1 == score.DurMaxima {
			pair.dur1, pair.isMaxima = score.DurLonga, true
		}
		if pair.dur2 == score.DurMaxima {
			pair.dur2 = score.DurLonga
		}
		pair.up = pair.step > 0
		applyPairRule(shapes, pair, clearPrevOblique)

		// an authored oblique is set without looking at the durations
		if oblique {
			shapes[pair.n1] |= score.LigatureOblique
			clearPrevOblique(pair.n1)
		}
		// in black notation a final longa going up is stacked
		if pair.isLastNote && isMensuralBlack && pair.dur2 == score.DurLonga && pair.up {
			threshold := 1 // at least a third
			if pair.n1 > 0 && !previousUp {
				// after an oblique going down stack from a fourth only
				threshold = neverStack
				if shapes[pair.n1-1]&score.LigatureOblique != 0 {
					threshold = 2
				}
			}
			if pair.step > threshold {
				shapes[pair.n2] = score.LigatureStacked
			}
		}
		oblique = false
		previousUp = pair.up
	}
	return shapes
}

// applyPairRule applies the shape table for the durations of a pair.
func applyPairRule(shapes []score.LigatureShape, p ligaturePair, clearPrevOblique func(int)) {
	const (
		L  = score.DurLonga
		B  = score.DurBreve
		SB = score.Dur1
	)
	switch {
	case p.dur1 == L && p.dur2 == L:
		if p.up {
			shapes[p.n1] = score.LigatureStemRightDown
			shapes[p.n2] = score.LigatureStemRightDown
		}
	case p.dur1 == L && p.dur2 == B:
		if p.up {
			shapes[p.n1] = score.LigatureStemRightDown
		} else if !p.isMaxima && (p.n1 == 0 || p.isLastNote) {
			shapes[p.n1] = score.LigatureOblique
			clearPrevOblique(p.n1)
		}
	case p.dur1 == B && p.dur2 == B:
		if !p.up && (p.n1 == 0 || p.isLastNote) {
			shapes[p.n1] = score.LigatureOblique
			if p.n1 > 0 {
				clearPrevOblique(p.n1)
			} else {
				shapes[p.n1] |= score.LigatureStemLeftDown
			}
		}
	case p.dur1 == B && p.dur2 == L:
		if p.up {
			shapes[p.n2] = score.LigatureStemRightDown
		} else {
			if !p.isLastNote {
				shapes[p.n2] = score.LigatureStemRightDown
			}
			if p.n1 == 0 {
				shapes[p.n1] = score.LigatureStemLeftDown
			}
		}
	case p.dur1 == SB && p.dur2 == SB:
		shapes[p.n1] = score.LigatureStemLeftUp
	case p.dur1 == SB && p.dur2 == L:
		if p.up {
			shapes[p.n2] = score.LigatureStemRightDown
		}
	case p.dur1 == SB && p.dur2 == B:
		// no oblique if the breve starts an oblique itself
		if !p.up && p.current.Lig != score.LigatureObliqua {
			shapes[p.n1] = score.LigatureOblique
			clearPrevOblique(p.n1)
		}
	}
}
