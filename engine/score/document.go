package score

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/npillmayer/engrave/core/dimen"
)

// NodeID is a handle for a node within a Document.
type NodeID int32

// NoNode is the null handle.
const NoNode NodeID = -1

// Node is an element of the score tree.
type Node struct {
	ID       NodeID
	XMLID    string // document-wide unique identifier, e.g. "note-<uuid>"
	Kind     Kind
	Parent   NodeID
	Children []NodeID
	XRel     dimen.Dimen // x relative to the parent's drawing x
	YRel     dimen.Dimen // y relative to the parent's drawing y
	Payload  interface{}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s#%d", n.Kind, n.ID)
}

// Document owns all nodes of a score. The node with handle 0 is the root.
type Document struct {
	nodes []*Node
	xmlid map[string]NodeID
}

// NewDocument creates a document with an empty root node.
func NewDocument() *Document {
	doc := &Document{xmlid: make(map[string]NodeID)}
	doc.newNode(KindDoc, nil)
	return doc
}

// Root returns the handle of the document root.
func (doc *Document) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the arena.
func (doc *Document) Len() int {
	return len(doc.nodes)
}

func (doc *Document) newNode(kind Kind, payload interface{}) *Node {
	n := &Node{
		ID:      NodeID(len(doc.nodes)),
		XMLID:   kind.String() + "-" + uuid.NewString(),
		Kind:    kind,
		Parent:  NoNode,
		Payload: payload,
	}
	doc.nodes = append(doc.nodes, n)
	doc.xmlid[n.XMLID] = n.ID
	return n
}

// Add creates a node of a given kind as the last child of parent.
func (doc *Document) Add(parent NodeID, kind Kind, payload interface{}) NodeID {
	p := doc.Node(parent)
	if p == nil {
		panic(fmt.Sprintf("score: cannot add %s to non-existing parent %d", kind, parent))
	}
	n := doc.newNode(kind, payload)
	n.Parent = parent
	p.Children = append(p.Children, n.ID)
	return n.ID
}

// Node returns the node for a handle, or nil for NoNode and invalid handles.
func (doc *Document) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(doc.nodes) {
		return nil
	}
	return doc.nodes[id]
}

// Kind returns the kind of a node, or KindNone.
func (doc *Document) Kind(id NodeID) Kind {
	if n := doc.Node(id); n != nil {
		return n.Kind
	}
	return KindNone
}

// Is is true if node id is of kind k.
func (doc *Document) Is(id NodeID, k Kind) bool {
	return doc.Kind(id) == k
}

// Parent returns the parent of a node, or NoNode.
func (doc *Document) Parent(id NodeID) NodeID {
	if n := doc.Node(id); n != nil {
		return n.Parent
	}
	return NoNode
}

// Children returns the children of a node in document order.
func (doc *Document) Children(id NodeID) []NodeID {
	if n := doc.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// ByXMLID finds a node by its XML identifier.
func (doc *Document) ByXMLID(xmlid string) NodeID {
	if id, ok := doc.xmlid[xmlid]; ok {
		return id
	}
	return NoNode
}

// SetXMLID replaces the XML identifier of a node, e.g. with an identifier
// from an input file.
func (doc *Document) SetXMLID(id NodeID, xmlid string) {
	n := doc.Node(id)
	if n == nil || xmlid == "" {
		return
	}
	delete(doc.xmlid, n.XMLID)
	n.XMLID = xmlid
	doc.xmlid[xmlid] = id
}

// --- Drawing positions -----------------------------------------------------

// DrawingX returns the absolute x position of a node, composed of the
// relative positions of the node and all its ancestors.
func (doc *Document) DrawingX(id NodeID) dimen.Dimen {
	var x dimen.Dimen
	for n := doc.Node(id); n != nil; n = doc.Node(n.Parent) {
		x += n.XRel
	}
	return x
}

// DrawingY returns the absolute y position of a node.
func (doc *Document) DrawingY(id NodeID) dimen.Dimen {
	var y dimen.Dimen
	for n := doc.Node(id); n != nil; n = doc.Node(n.Parent) {
		y += n.YRel
	}
	return y
}

// --- Navigation ------------------------------------------------------------

// FirstAncestor returns the nearest ancestor of kind k, or NoNode.
func (doc *Document) FirstAncestor(id NodeID, k Kind) NodeID {
	for p := doc.Parent(id); p != NoNode; p = doc.Parent(p) {
		if doc.nodes[p].Kind == k {
			return p
		}
	}
	return NoNode
}

// FirstChild returns the first direct child of kind k, or NoNode.
func (doc *Document) FirstChild(id NodeID, k Kind) NodeID {
	for _, ch := range doc.Children(id) {
		if doc.nodes[ch].Kind == k {
			return ch
		}
	}
	return NoNode
}

// LastChild returns the last direct child of kind k, or NoNode.
func (doc *Document) LastChild(id NodeID, k Kind) NodeID {
	children := doc.Children(id)
	for i := len(children) - 1; i >= 0; i-- {
		if doc.nodes[children[i]].Kind == k {
			return children[i]
		}
	}
	return NoNode
}

// ChildIndex returns the position of child within the children of parent,
// or -1.
func (doc *Document) ChildIndex(parent, child NodeID) int {
	for i, ch := range doc.Children(parent) {
		if ch == child {
			return i
		}
	}
	return -1
}

// Unlimited may be passed as depth to FindDescendant.
const Unlimited = -1

// FindDescendant searches the subtree of id (excluding id) in document order
// for the first node of kind k, descending at most depth levels. A depth of
// 1 searches direct children only.
func (doc *Document) FindDescendant(id NodeID, k Kind, depth int) NodeID {
	if depth == 0 {
		return NoNode
	}
	for _, ch := range doc.Children(id) {
		if doc.nodes[ch].Kind == k {
			return ch
		}
		if found := doc.FindDescendant(ch, k, depth-1); found != NoNode {
			return found
		}
	}
	return NoNode
}

// FindAllDescendants returns all nodes of kind k in the subtree of id
// (excluding id), in document order.
func (doc *Document) FindAllDescendants(id NodeID, k Kind) []NodeID {
	var result []NodeID
	var collect func(NodeID)
	collect = func(n NodeID) {
		for _, ch := range doc.Children(n) {
			if doc.nodes[ch].Kind == k {
				result = append(result, ch)
			}
			collect(ch)
		}
	}
	collect(id)
	return result
}

// IsAncestor is true if anc is a proper ancestor of id.
func (doc *Document) IsAncestor(anc, id NodeID) bool {
	for p := doc.Parent(id); p != NoNode; p = doc.Parent(p) {
		if p == anc {
			return true
		}
	}
	return false
}

// Systems returns all systems of the document in document order.
func (doc *Document) Systems() []NodeID {
	return doc.FindAllDescendants(doc.Root(), KindSystem)
}

// SystemIndex returns the position of a system in document order, or -1.
func (doc *Document) SystemIndex(system NodeID) int {
	for i, s := range doc.Systems() {
		if s == system {
			return i
		}
	}
	return -1
}

// --- Lateral links ---------------------------------------------------------

// SetAlignedBracket aligns a tuplet number with a bracket. The link is
// symmetric: prior partners of num and bracket lose their back-reference.
// Passing NoNode as bracket clears the alignment of num.
func (doc *Document) SetAlignedBracket(num, bracket NodeID) {
	tn := doc.TupletNum(num)
	if tn == nil {
		return
	}
	if old := doc.TupletBracket(tn.alignedBracket); old != nil {
		old.alignedNum = NoNode
	}
	tn.alignedBracket = NoNode
	tb := doc.TupletBracket(bracket)
	if tb == nil {
		return
	}
	if oldNum := doc.TupletNum(tb.alignedNum); oldNum != nil {
		oldNum.alignedBracket = NoNode
	}
	tn.alignedBracket = bracket
	tb.alignedNum = num
}

// --- Chords ----------------------------------------------------------------

// ChordOf returns the chord a note belongs to, or NoNode.
func (doc *Document) ChordOf(note NodeID) NodeID {
	if p := doc.Parent(note); doc.Is(p, KindChord) {
		return p
	}
	return NoNode
}

// ChordExtremes returns the lowest and highest notes of a chord.
func (doc *Document) ChordExtremes(chord NodeID) (bottom, top NodeID) {
	bottom, top = NoNode, NoNode
	for _, n := range doc.FindAllDescendants(chord, KindNote) {
		y := doc.DrawingY(n)
		if bottom == NoNode || y < doc.DrawingY(bottom) {
			bottom = n
		}
		if top == NoNode || y > doc.DrawingY(top) {
			top = n
		}
	}
	return
}

// PositionInChord returns -1 for notes in the lower half of a chord, 1 for
// notes in the upper half and 0 for the center note of a chord with an odd
// number of notes. Notes outside of chords return 0.
func (doc *Document) PositionInChord(note NodeID) int {
	chord := doc.ChordOf(note)
	if chord == NoNode {
		return 0
	}
	notes := doc.FindAllDescendants(chord, KindNote)
	y := doc.DrawingY(note)
	below := 0
	for _, n := range notes {
		if n != note && doc.DrawingY(n) < y {
			below++
		}
	}
	size := len(notes)
	if size%2 == 1 && below == size/2 {
		return 0
	}
	if below < size/2 {
		return -1
	}
	return 1
}

// NoteStemDir returns the drawing stem direction of a note, taking it from
// the chord for chord tones.
func (doc *Document) NoteStemDir(note NodeID) StemDir {
	if chord := doc.Chord(doc.ChordOf(note)); chord != nil {
		return chord.DrawingStemDir
	}
	if n := doc.Note(note); n != nil {
		return n.DrawingStemDir
	}
	return StemNone
}
