package layout

import (
	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/font"
	"github.com/npillmayer/engrave/core/parameters"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/engrave/engine/functor"
	"github.com/npillmayer/engrave/engine/score"
)

// Engine runs layout passes over a document.
type Engine struct {
	Doc        *score.Document
	Metrics    font.Metrics
	Params     *parameters.Registers
	advisories *multierror.Error
}

// New creates a layout engine. If params is nil, default parameters are
// used; if metrics is nil, the built-in glyph table is used.
func New(doc *score.Document, metrics font.Metrics, params *parameters.Registers) *Engine {
	if params == nil {
		params = parameters.NewRegisters()
	}
	if metrics == nil {
		metrics = font.NewStaticMetrics(font.UnitsFromParameters(params))
	}
	return &Engine{Doc: doc, Metrics: metrics, Params: params}
}

// Run resets all derived attributes and runs the positioning passes in
// order. It returns the advisories of the run, or nil.
func (e *Engine) Run() error {
	e.advisories = nil
	tracer().Infof("layout of %d nodes", e.Doc.Len())
	for _, pass := range []struct {
		name string
		run  func() functor.Code
	}{
		{"reset-horizontal-alignment", e.ResetHorizontalAlignment},
		{"reset-drawing", e.ResetDrawing},
		{"calc-ligature-or-neume-pos", e.CalcLigatureOrNeumePos},
		{"calc-stem", e.CalcStem},
		{"calc-tuplet", e.CalcTuplet},
	} {
		if pass.run() == functor.Stop {
			tracer().Infof("pass %s stopped", pass.name)
		}
	}
	return e.Advisories()
}

// Advisories returns the advisories collected since the last call of Run,
// or nil.
func (e *Engine) Advisories() error {
	return e.advisories.ErrorOrNil()
}

func (e *Engine) advise(err error) {
	tracer().Errorf("%v", err)
	e.advisories = multierror.Append(e.advisories, err)
}

func (e *Engine) process(v functor.Visitor) functor.Code {
	return functor.Process(e.Doc, e.Doc.Root(), v)
}

// --- Helpers shared by passes ----------------------------------------------

// staffOf returns the staff a node belongs to, or NoNode.
func (e *Engine) staffOf(id score.NodeID) score.NodeID {
	if e.Doc.Is(id, score.KindStaff) {
		return id
	}
	return e.Doc.FirstAncestor(id, score.KindStaff)
}

// staffSize returns the size of the staff a node belongs to.
func (e *Engine) staffSize(id score.NodeID) percent.Percent {
	if st := e.Doc.Staff(e.staffOf(id)); st != nil {
		return st.Size
	}
	return percent.Full
}

// NoteheadGlyph returns the notehead glyph for a duration.
func NoteheadGlyph(dur score.Duration) font.Glyph {
	switch {
	case dur <= score.DurBreve:
		return font.NoteheadDoubleWhole
	case dur == score.Dur1:
		return font.NoteheadWhole
	case dur == score.Dur2:
		return font.NoteheadHalf
	}
	return font.NoteheadBlack
}

// RestGlyph returns the rest glyph for a duration.
func RestGlyph(dur score.Duration) font.Glyph {
	switch {
	case dur <= score.Dur1:
		return font.RestWhole
	case dur == score.Dur2:
		return font.RestHalf
	case dur == score.Dur4:
		return font.RestQuarter
	case dur == score.Dur8:
		return font.Rest8th
	case dur == score.Dur16:
		return font.Rest16th
	}
	return font.Rest32nd
}

// Radius returns half the drawing width of a note, chord or rest. Notes
// within a mensural ligature have the width of a brevis.
func (e *Engine) Radius(id score.NodeID, inLigature bool) dimen.Dimen {
	doc := e.Doc
	size := e.staffSize(id)
	switch doc.Kind(id) {
	case score.KindNote:
		if inLigature {
			return e.Metrics.DoubleUnit(size) * 4 / 5
		}
		return e.Metrics.GlyphWidth(NoteheadGlyph(doc.Note(id).Dur), size, doc.IsCue(id)) / 2
	case score.KindChord:
		var r dimen.Dimen
		for _, n := range doc.FindAllDescendants(id, score.KindNote) {
			r = dimen.Max(r, e.Radius(n, false))
		}
		return r
	case score.KindRest:
		return e.Metrics.GlyphWidth(RestGlyph(doc.Rest(id).Dur), size, doc.IsCue(id)) / 2
	}
	return 0
}
