package functor

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/engrave/engine/score"
)

// Code is returned by visitor methods to direct the traversal.
type Code int8

// Traversal control codes
const (
	Continue Code = iota // descend into the children
	Siblings             // skip the children, proceed with the next sibling
	Stop                 // abort the traversal
)

func (c Code) String() string {
	switch c {
	case Continue:
		return "continue"
	case Siblings:
		return "siblings"
	case Stop:
		return "stop"
	}
	return "?"
}

// Visitor is the operation of a pass. There is one method per node kind
// handled by any pass; all other kinds go to VisitDefault.
type Visitor interface {
	VisitDefault(n *score.Node) Code
	VisitSystem(n *score.Node) Code
	VisitMeasure(n *score.Node) Code
	VisitStaff(n *score.Node) Code
	VisitLayer(n *score.Node) Code
	VisitNote(n *score.Node) Code
	VisitChord(n *score.Node) Code
	VisitRest(n *score.Node) Code
	VisitBeam(n *score.Node) Code
	VisitBTrem(n *score.Node) Code
	VisitTuplet(n *score.Node) Code
	VisitTupletBracket(n *score.Node) Code
	VisitTupletNum(n *score.Node) Code
	VisitStem(n *score.Node) Code
	VisitFlag(n *score.Node) Code
	VisitDots(n *score.Node) Code
	VisitLigature(n *score.Node) Code
	VisitNeume(n *score.Node) Code
	VisitNc(n *score.Node) Code
	VisitSlur(n *score.Node) Code
	VisitTie(n *score.Node) Code
	VisitSyl(n *score.Node) Code
}

// EndVisitor may be implemented by visitors which need to close a scope
// after the subtree of a node has been walked. EndVisit is not called for
// nodes visited after Stop.
type EndVisitor interface {
	EndVisit(n *score.Node)
}

// Base implements Visitor with every method returning Continue. Passes embed
// it and override the methods they need.
type Base struct{}

var _ Visitor = Base{}

func (Base) VisitDefault(*score.Node) Code       { return Continue }
func (Base) VisitSystem(*score.Node) Code        { return Continue }
func (Base) VisitMeasure(*score.Node) Code       { return Continue }
func (Base) VisitStaff(*score.Node) Code         { return Continue }
func (Base) VisitLayer(*score.Node) Code         { return Continue }
func (Base) VisitNote(*score.Node) Code          { return Continue }
func (Base) VisitChord(*score.Node) Code         { return Continue }
func (Base) VisitRest(*score.Node) Code          { return Continue }
func (Base) VisitBeam(*score.Node) Code          { return Continue }
func (Base) VisitBTrem(*score.Node) Code         { return Continue }
func (Base) VisitTuplet(*score.Node) Code        { return Continue }
func (Base) VisitTupletBracket(*score.Node) Code { return Continue }
func (Base) VisitTupletNum(*score.Node) Code     { return Continue }
func (Base) VisitStem(*score.Node) Code          { return Continue }
func (Base) VisitFlag(*score.Node) Code          { return Continue }
func (Base) VisitDots(*score.Node) Code          { return Continue }
func (Base) VisitLigature(*score.Node) Code      { return Continue }
func (Base) VisitNeume(*score.Node) Code         { return Continue }
func (Base) VisitNc(*score.Node) Code            { return Continue }
func (Base) VisitSlur(*score.Node) Code          { return Continue }
func (Base) VisitTie(*score.Node) Code           { return Continue }
func (Base) VisitSyl(*score.Node) Code           { return Continue }

// dispatch maps node kinds to visitor methods. Kinds without an entry are
// sent to VisitDefault.
var dispatch = map[score.Kind]func(Visitor, *score.Node) Code{
	score.KindSystem:        Visitor.VisitSystem,
	score.KindMeasure:       Visitor.VisitMeasure,
	score.KindStaff:         Visitor.VisitStaff,
	score.KindLayer:         Visitor.VisitLayer,
	score.KindNote:          Visitor.VisitNote,
	score.KindChord:         Visitor.VisitChord,
	score.KindRest:          Visitor.VisitRest,
	score.KindBeam:          Visitor.VisitBeam,
	score.KindBTrem:         Visitor.VisitBTrem,
	score.KindTuplet:        Visitor.VisitTuplet,
	score.KindTupletBracket: Visitor.VisitTupletBracket,
	score.KindTupletNum:     Visitor.VisitTupletNum,
	score.KindStem:          Visitor.VisitStem,
	score.KindFlag:          Visitor.VisitFlag,
	score.KindDots:          Visitor.VisitDots,
	score.KindLigature:      Visitor.VisitLigature,
	score.KindNeume:         Visitor.VisitNeume,
	score.KindNc:            Visitor.VisitNc,
	score.KindSlur:          Visitor.VisitSlur,
	score.KindTie:           Visitor.VisitTie,
	score.KindSyl:           Visitor.VisitSyl,
}

// Visit dispatches a single node to v.
func Visit(v Visitor, n *score.Node) Code {
	if m, ok := dispatch[n.Kind]; ok {
		return m(v, n)
	}
	return v.VisitDefault(n)
}

// --- Walker ----------------------------------------------------------------

// Walker walks a score tree and keeps track of the path of ancestors of the
// node currently visited.
type Walker struct {
	doc  *score.Document
	path *arraystack.Stack
}

// NewWalker creates a walker for a document.
func NewWalker(doc *score.Document) *Walker {
	return &Walker{doc: doc, path: arraystack.New()}
}

// Document returns the document walked.
func (w *Walker) Document() *score.Document {
	return w.doc
}

// Ancestors returns the ancestors of the node currently visited, down from
// the traversal root, nearest ancestor first.
func (w *Walker) Ancestors() []score.NodeID {
	values := w.path.Values()
	ids := make([]score.NodeID, len(values))
	for i, v := range values {
		ids[i] = v.(score.NodeID)
	}
	return ids
}

// Process walks the subtree rooted at root and returns Stop if the
// traversal was aborted, Continue otherwise.
func (w *Walker) Process(root score.NodeID, v Visitor) Code {
	n := w.doc.Node(root)
	if n == nil {
		tracer().Errorf("traversal root %d does not exist", root)
		return Continue
	}
	w.path.Clear()
	return w.process(n, v)
}

func (w *Walker) process(n *score.Node, v Visitor) Code {
	code := Visit(v, n)
	if code == Stop {
		tracer().Debugf("traversal stopped at %s", n)
		return Stop
	}
	if code == Continue {
		w.path.Push(n.ID)
		for _, ch := range n.Children {
			if w.process(w.doc.Node(ch), v) == Stop {
				return Stop
			}
		}
		w.path.Pop()
	}
	if ev, ok := v.(EndVisitor); ok {
		ev.EndVisit(n)
	}
	return Continue
}

// Process walks the subtree rooted at root with a fresh walker.
func Process(doc *score.Document, root score.NodeID, v Visitor) Code {
	return NewWalker(doc).Process(root, v)
}
