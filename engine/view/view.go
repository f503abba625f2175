package view

import (
	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/engrave/backend/gfx"
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/font"
	"github.com/npillmayer/engrave/core/parameters"
	"github.com/npillmayer/engrave/engine/functor"
	"github.com/npillmayer/engrave/engine/score"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SpanningType tells which part of a spanning element is drawn in a system.
type SpanningType int8

// Spanning types
const (
	SpanningStartEnd SpanningType = iota // start and end in the system
	SpanningStart                        // open at the end of the system
	SpanningEnd                          // open at the start of the system
	SpanningMiddle                       // crossing the whole system
)

func (t SpanningType) String() string {
	switch t {
	case SpanningStartEnd:
		return "start-end"
	case SpanningStart:
		return "start"
	case SpanningEnd:
		return "end"
	}
	return "middle"
}

// View draws spanning elements to a device context.
type View struct {
	Doc        *score.Document
	Metrics    font.Metrics
	Params     *parameters.Registers
	DC         gfx.DeviceContext
	advisories *multierror.Error
}

// New creates a view. If params is nil, default parameters are used; if
// metrics is nil, the built-in glyph table is used.
func New(doc *score.Document, metrics font.Metrics, params *parameters.Registers, dc gfx.DeviceContext) *View {
	if params == nil {
		params = parameters.NewRegisters()
	}
	if metrics == nil {
		metrics = font.NewStaticMetrics(font.UnitsFromParameters(params))
	}
	return &View{Doc: doc, Metrics: metrics, Params: params, DC: dc}
}

// Draw draws the spanning elements of all systems. It returns the
// advisories of all systems, or nil.
func (v *View) Draw() error {
	var all *multierror.Error
	for _, system := range v.Doc.Systems() {
		if err := v.DrawSystem(system); err != nil {
			all = multierror.Append(all, err)
		}
	}
	return all.ErrorOrNil()
}

// DrawSystem draws the spanning elements touching a system, in document
// order. Parameter overrides of the system's style apply while drawing it.
// It returns the advisories collected while drawing, or nil.
func (v *View) DrawSystem(system score.NodeID) error {
	v.advisories = nil
	doc := v.Doc
	index := make(map[score.NodeID]int)
	for i, s := range doc.Systems() {
		index[s] = i
	}
	current, ok := index[system]
	if !ok {
		v.advise(core.Error(core.EINVALID, "node %d is not a system", system))
		return v.Advisories()
	}
	tracer().Infof("drawing spanning elements of system #%d", current)
	if sys := doc.System(system); sys != nil && len(sys.Style) > 0 {
		v.Params.Begingroup()
		defer v.Params.Endgroup()
		names := maps.Keys(sys.Style)
		slices.Sort(names)
		for _, name := range names {
			if err := v.Params.PushNamed(name, sys.Style[name]); err != nil {
				v.advise(err)
			}
		}
	}
	systemIndex := func(id score.NodeID) int {
		if i, ok := index[doc.FirstAncestor(id, score.KindSystem)]; ok {
			return i
		}
		return -1
	}
	for _, id := range spanningElements(doc) {
		sp := doc.Spanning(id)
		if !sp.HasStartAndEnd() {
			v.DrawTimeSpanningElement(id, system) // reports the missing anchor
			continue
		}
		first, last := systemIndex(sp.Start), systemIndex(sp.End)
		if first <= current && current <= last {
			v.DrawTimeSpanningElement(id, system)
		}
	}
	return v.Advisories()
}

// collector gathers spanning elements in document order.
type collector struct {
	functor.Base
	elements []score.NodeID
}

func (c *collector) VisitSlur(n *score.Node) functor.Code { return c.collect(n) }
func (c *collector) VisitTie(n *score.Node) functor.Code  { return c.collect(n) }
func (c *collector) VisitSyl(n *score.Node) functor.Code  { return c.collect(n) }

func (c *collector) collect(n *score.Node) functor.Code {
	c.elements = append(c.elements, n.ID)
	return functor.Siblings
}

func spanningElements(doc *score.Document) []score.NodeID {
	c := &collector{}
	functor.Process(doc, doc.Root(), c)
	return c.elements
}

// Advisories returns the advisories of the last call of DrawSystem, or nil.
func (v *View) Advisories() error {
	return v.advisories.ErrorOrNil()
}

func (v *View) advise(err error) {
	tracer().Errorf("%v", err)
	v.advisories = multierror.Append(v.advisories, err)
}

// span is the part of a spanning element visible in a system.
type span struct {
	x1, x2  dimen.Dimen
	staff   score.NodeID
	typ     SpanningType
	graphic bool // the element's own graphic, as opposed to an anonymous part
}

// DrawTimeSpanningElement draws the part of a slur, tie or syllable
// connector which is visible in a system.
func (v *View) DrawTimeSpanningElement(element, system score.NodeID) {
	sp, ok := v.resolveSpan(element, system)
	if !ok {
		return
	}
	tracer().Debugf("%s %s: %s span %d…%d", v.Doc.Kind(element), v.Doc.Node(element).XMLID,
		sp.typ, sp.x1, sp.x2)
	switch v.Doc.Kind(element) {
	case score.KindSlur:
		v.DrawSlur(element, sp)
	case score.KindTie:
		v.DrawTie(element, sp)
	case score.KindSyl:
		v.DrawSylConnector(element, sp)
	}
}

func (v *View) resolveSpan(element, system score.NodeID) (span, bool) {
	doc := v.Doc
	s := doc.Spanning(element)
	if s == nil {
		v.advise(core.Error(core.EINVALID, "node %d is not a spanning element", element))
		return span{}, false
	}
	if !s.HasStartAndEnd() {
		v.advise(core.Error(core.EMISSING, "%s %s lacks an anchor", doc.Kind(element), doc.Node(element).XMLID))
		return span{}, false
	}
	system1 := doc.FirstAncestor(s.Start, score.KindSystem)
	system2 := doc.FirstAncestor(s.End, score.KindSystem)
	missing := func(what string) (span, bool) {
		v.advise(core.Error(core.EMISSING, "no %s for drawing %s %s", what, doc.Kind(element), doc.Node(element).XMLID))
		return span{}, false
	}
	switch {
	case system == system1 && system == system2:
		staff := doc.FirstAncestor(s.Start, score.KindStaff)
		if staff == score.NoNode {
			return missing("staff")
		}
		return span{
			x1:      doc.DrawingX(s.Start),
			x2:      doc.DrawingX(s.End),
			staff:   staff,
			typ:     SpanningStartEnd,
			graphic: true,
		}, true
	case system == system1:
		last := doc.LastChild(system, score.KindMeasure)
		if last == score.NoNode {
			return missing("last measure")
		}
		staff := doc.FirstAncestor(s.Start, score.KindStaff)
		if staff == score.NoNode {
			return missing("staff")
		}
		return span{
			x1:      doc.DrawingX(s.Start),
			x2:      doc.DrawingX(last) + doc.Measure(last).RightBarline,
			staff:   staff,
			typ:     SpanningStart,
			graphic: true,
		}, true
	case system == system2:
		first := doc.FirstChild(system, score.KindMeasure)
		if first == score.NoNode {
			return missing("first measure")
		}
		endStaff := doc.Staff(doc.FirstAncestor(s.End, score.KindStaff))
		if endStaff == nil {
			return missing("staff")
		}
		staff := v.staffByN(system, endStaff.N, 2)
		if staff == score.NoNode {
			return missing("staff in system")
		}
		x1 := doc.DrawingX(first)
		if note := doc.FindDescendant(staff, score.KindNote, score.Unlimited); note != score.NoNode {
			x1 = doc.DrawingX(note) - 2*v.Metrics.DoubleUnit(doc.Staff(staff).Size)
		}
		return span{
			x1:    x1,
			x2:    doc.DrawingX(s.End),
			staff: staff,
			typ:   SpanningEnd,
		}, true
	}
	first := doc.FirstChild(system, score.KindMeasure)
	last := doc.LastChild(system, score.KindMeasure)
	if first == score.NoNode || last == score.NoNode {
		return missing("measure")
	}
	startStaff := doc.Staff(doc.FirstAncestor(s.Start, score.KindStaff))
	if startStaff == nil {
		return missing("staff")
	}
	staff := v.staffByN(first, startStaff.N, 1)
	if staff == score.NoNode {
		return missing("staff in measure")
	}
	x1 := doc.DrawingX(first)
	if note := doc.FindDescendant(first, score.KindNote, score.Unlimited); note != score.NoNode {
		x1 = doc.DrawingX(note) - 2*v.Metrics.DoubleUnit(doc.Staff(staff).Size)
	}
	return span{
		x1:    x1,
		x2:    doc.DrawingX(last) + doc.Measure(last).RightBarline,
		staff: staff,
		typ:   SpanningMiddle,
	}, true
}

// staffByN finds the first staff numbered n within depth levels below id.
func (v *View) staffByN(id score.NodeID, n, depth int) score.NodeID {
	if depth == 0 {
		return score.NoNode
	}
	for _, ch := range v.Doc.Children(id) {
		if st := v.Doc.Staff(ch); st != nil && st.N == n {
			return ch
		}
		if found := v.staffByN(ch, n, depth-1); found != score.NoNode {
			return found
		}
	}
	return score.NoNode
}

// startGraphic opens the graphic of a spanning element: the element's own
// graphic, or an anonymous one for parts drawn in a following system.
func (v *View) startGraphic(element score.NodeID, class string, sp span) string {
	if sp.graphic {
		id := v.Doc.Node(element).XMLID
		v.DC.StartGraphic(class, id)
		return id
	}
	v.DC.StartGraphic("spanning-"+class, "")
	return ""
}
