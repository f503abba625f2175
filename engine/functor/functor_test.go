package functor

import (
	"testing"

	"github.com/npillmayer/engrave/engine/score"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	Base
	w        *Walker
	visited  []score.Kind
	ended    []score.Kind
	skip     score.Kind
	stopAt   score.Kind
	noteAncs []score.NodeID
}

func (r *recorder) visit(n *score.Node) Code {
	r.visited = append(r.visited, n.Kind)
	switch n.Kind {
	case r.stopAt:
		return Stop
	case r.skip:
		return Siblings
	}
	return Continue
}

func (r *recorder) VisitDefault(n *score.Node) Code { return r.visit(n) }
func (r *recorder) VisitSystem(n *score.Node) Code  { return r.visit(n) }
func (r *recorder) VisitMeasure(n *score.Node) Code { return r.visit(n) }
func (r *recorder) VisitStaff(n *score.Node) Code   { return r.visit(n) }
func (r *recorder) VisitLayer(n *score.Node) Code   { return r.visit(n) }
func (r *recorder) VisitChord(n *score.Node) Code   { return r.visit(n) }
func (r *recorder) VisitStem(n *score.Node) Code    { return r.visit(n) }
func (r *recorder) VisitFlag(n *score.Node) Code    { return r.visit(n) }
func (r *recorder) VisitSlur(n *score.Node) Code    { return r.visit(n) }

func (r *recorder) VisitNote(n *score.Node) Code {
	if r.noteAncs == nil {
		r.noteAncs = r.w.Ancestors()
	}
	return r.visit(n)
}

func (r *recorder) EndVisit(n *score.Node) {
	r.ended = append(r.ended, n.Kind)
}

func build() (*score.Builder, score.NodeID) {
	b := score.NewBuilder(90)
	sys := b.System(0)
	m := b.Measure(sys, 0, 4000)
	st := b.Staff(m, 1, 0)
	l := b.Layer(st, 1)
	n1 := b.Note(l, 100, 4, score.Dur8)
	chord := b.Chord(l, 600, score.Dur4)
	b.ChordNote(chord, 2)
	b.ChordNote(chord, 6)
	b.Slur(m, n1, chord)
	return b, sys
}

func TestDocumentOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.functor")
	defer teardown()
	//
	b, sys := build()
	r := &recorder{w: NewWalker(b.Doc), skip: score.KindNone, stopAt: score.KindNone}
	code := r.w.Process(sys, r)
	assert.Equal(t, Continue, code)
	assert.Equal(t, []score.Kind{
		score.KindSystem, score.KindMeasure, score.KindStaff, score.KindLayer,
		score.KindNote, score.KindStem, score.KindFlag,
		score.KindChord, score.KindStem, score.KindNote, score.KindNote,
		score.KindSlur,
	}, r.visited)
	assert.Equal(t, score.KindFlag, r.ended[0], "post-order")
	assert.Equal(t, score.KindSystem, r.ended[len(r.ended)-1])
	assert.Len(t, r.noteAncs, 4)
	assert.Equal(t, score.KindLayer, b.Doc.Kind(r.noteAncs[0]), "nearest ancestor first")
	assert.Equal(t, sys, r.noteAncs[3])
}

func TestSiblingsSkipsChildren(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.functor")
	defer teardown()
	//
	b, sys := build()
	r := &recorder{w: NewWalker(b.Doc), skip: score.KindChord, stopAt: score.KindNone}
	assert.Equal(t, Continue, r.w.Process(sys, r))
	assert.Equal(t, []score.Kind{
		score.KindSystem, score.KindMeasure, score.KindStaff, score.KindLayer,
		score.KindNote, score.KindStem, score.KindFlag,
		score.KindChord, score.KindSlur,
	}, r.visited)
	assert.Contains(t, r.ended, score.KindChord)
}

func TestStopAborts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.functor")
	defer teardown()
	//
	b, sys := build()
	r := &recorder{w: NewWalker(b.Doc), skip: score.KindNone, stopAt: score.KindFlag}
	assert.Equal(t, Stop, r.w.Process(sys, r))
	assert.Equal(t, score.KindFlag, r.visited[len(r.visited)-1])
	assert.Empty(t, r.ended)
}

func TestBaseVisitorContinues(t *testing.T) {
	b, _ := build()
	assert.Equal(t, Continue, Process(b.Doc, b.Doc.Root(), Base{}))
	assert.Equal(t, Continue, Process(b.Doc, score.NoNode, Base{}))
	assert.Equal(t, "siblings", Siblings.String())
}
