package gfx

import (
	"fmt"
	"strings"

	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/percent"
)

// Op is the kind of a recorded drawing call.
type Op int8

// Recorded operations
const (
	OpStartGraphic Op = iota
	OpEndGraphic
	OpBezier
	OpRectangle
)

func (op Op) String() string {
	switch op {
	case OpStartGraphic:
		return "start"
	case OpEndGraphic:
		return "end"
	case OpBezier:
		return "bezier"
	case OpRectangle:
		return "rect"
	}
	return "?"
}

// Call is a recorded drawing call. Beziers store their points as
// P1, C1, C2, P2; rectangles store their two corners.
type Call struct {
	Op        Op
	Class, ID string
	Points    []dimen.Point
	Thickness dimen.Dimen
	StaffSize percent.Percent
}

func (c Call) String() string {
	switch c.Op {
	case OpStartGraphic:
		return fmt.Sprintf("start %s %q", c.Class, c.ID)
	case OpEndGraphic:
		return fmt.Sprintf("end %q", c.ID)
	}
	var b strings.Builder
	b.WriteString(c.Op.String())
	for _, pt := range c.Points {
		b.WriteString(" " + pt.String())
	}
	if c.Op == OpBezier {
		fmt.Fprintf(&b, " th=%d", c.Thickness)
	}
	return b.String()
}

// Recorder is a device context which records all drawing calls.
type Recorder struct {
	Calls     []Call
	Estimator TextMeasurer
	open      []string
}

var _ DeviceContext = &Recorder{}

// NewRecorder creates a recorder using the default text estimator.
func NewRecorder() *Recorder {
	return &Recorder{Estimator: DefaultTextEstimator}
}

func (rec *Recorder) StartGraphic(class, id string) {
	rec.open = append(rec.open, id)
	rec.Calls = append(rec.Calls, Call{Op: OpStartGraphic, Class: class, ID: id})
}

func (rec *Recorder) EndGraphic(id string) {
	if n := len(rec.open); n == 0 || rec.open[n-1] != id {
		tracer().Errorf("end of graphic %q does not match open graphics %v", id, rec.open)
	} else {
		rec.open = rec.open[:n-1]
	}
	rec.Calls = append(rec.Calls, Call{Op: OpEndGraphic, ID: id})
}

func (rec *Recorder) DrawThickBezier(p1, p2, c1, c2 dimen.Point, thickness dimen.Dimen, staffSize percent.Percent) {
	rec.Calls = append(rec.Calls, Call{
		Op:        OpBezier,
		Points:    []dimen.Point{p1, c1, c2, p2},
		Thickness: thickness,
		StaffSize: staffSize,
	})
}

func (rec *Recorder) DrawFullRectangle(x1, y1, x2, y2 dimen.Dimen) {
	rec.Calls = append(rec.Calls, Call{
		Op:     OpRectangle,
		Points: []dimen.Point{dimen.P(x1, y1), dimen.P(x2, y2)},
	})
}

func (rec *Recorder) TextExtent(text string, staffSize percent.Percent) (w, h dimen.Dimen) {
	return rec.Estimator.Extent(text, staffSize)
}

// Filter returns the recorded calls of one kind.
func (rec *Recorder) Filter(op Op) []Call {
	var calls []Call
	for _, c := range rec.Calls {
		if c.Op == op {
			calls = append(calls, c)
		}
	}
	return calls
}

// Balanced is true if every started graphic has been ended.
func (rec *Recorder) Balanced() bool {
	return len(rec.open) == 0
}

// Reset drops all recorded calls.
func (rec *Recorder) Reset() {
	rec.Calls, rec.open = nil, nil
}
