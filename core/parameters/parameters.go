/*
Package parameters holds the engraving parameters consulted by layout and
drawing code.

Parameters live in registers which may be overridden in nested groups, e.g.
for a single system drawn with thinner slurs.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package parameters

import (
	"fmt"

	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'engrave.core'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.core")
}

// EngravingParameter is a key for a register.
type EngravingParameter int

const (
	none                EngravingParameter = iota
	P_UNIT                                 // drawing unit (half a staff space) at 100% staff size
	P_STEMWIDTH                            // tenths of a unit
	P_BARLINEWIDTH                         // tenths of a unit
	P_SLURTHICKNESS                        // tenths of a unit
	P_TIETHICKNESS                         // tenths of a unit
	P_CUESIZE                              // percentage for cue and grace notes
	P_LIGATUREASBRACKET                    // draw ligatures as brackets over notes
	P_NEUMEASNOTE                          // draw neumes as plain notes
	P_LYRICVERSESPACING                    // tenths of a unit between verses
	P_STOPPER
)

var parameterNames = [...]string{
	"none", "unit", "stemwidth", "barlinewidth", "slurthickness",
	"tiethickness", "cuesize", "ligatureasbracket", "neumeasnote",
	"lyricversespacing", "stopper",
}

func (p EngravingParameter) String() string {
	if p < 0 || p > P_STOPPER {
		return fmt.Sprintf("EngravingParameter(%d)", int(p))
	}
	return parameterNames[p]
}

type parameterGroup struct {
	params map[EngravingParameter]interface{}
	level  int
	next   *parameterGroup
}

// Registers is a set of engraving parameters with grouped overrides.
type Registers struct {
	base       [P_STOPPER]interface{}
	groups     *parameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

// NewRegisters creates a register set initialized with default values.
func NewRegisters() *Registers {
	regs := &Registers{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_UNIT] = 9 * dimen.PX           // dimension
	p[P_STEMWIDTH] = 2                 // tenths of a unit
	p[P_BARLINEWIDTH] = 3              // tenths of a unit
	p[P_SLURTHICKNESS] = 6             // tenths of a unit
	p[P_TIETHICKNESS] = 5              // tenths of a unit
	p[P_CUESIZE] = percent.Percent(75) // percentage
	p[P_LIGATUREASBRACKET] = false     // flag
	p[P_NEUMEASNOTE] = false           // flag
	p[P_LYRICVERSESPACING] = 60        // tenths of a unit
}

// Begingroup opens a new group. Values pushed within the group are dropped
// at the matching Endgroup.
func (regs *Registers) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes the innermost group.
func (regs *Registers) Endgroup() {
	if regs.grouplevel == 0 {
		tracer().Errorf("parameters: endgroup without begingroup")
		return
	}
	if regs.groups != nil && regs.groups.level == regs.grouplevel {
		regs.groups = regs.groups.next
	}
	regs.grouplevel--
}

// Push sets a parameter value, either globally or for the current group.
func (regs *Registers) Push(key EngravingParameter, value interface{}) {
	checkKey(key)
	if regs.grouplevel > 0 {
		var g *parameterGroup
		if regs.groups == nil || regs.groups.level < regs.grouplevel {
			g = &parameterGroup{
				params: make(map[EngravingParameter]interface{}),
				level:  regs.grouplevel,
				next:   regs.groups,
			}
			regs.groups = g
		} else {
			g = regs.groups
		}
		g.params[key] = value
	} else {
		regs.base[key] = value
	}
}

// Get returns the value for a parameter, searching groups innermost first.
func (regs *Registers) Get(key EngravingParameter) interface{} {
	checkKey(key)
	var value interface{}
	for g := regs.groups; g != nil; g = g.next {
		if v, ok := g.params[key]; ok {
			value = v
			break
		}
	}
	if value == nil {
		value = regs.base[key]
	}
	return value
}

func checkKey(key EngravingParameter) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of engraving parameters")
	}
}

// N returns an integer parameter.
func (regs *Registers) N(key EngravingParameter) int {
	return regs.Get(key).(int)
}

// D returns a dimension parameter.
func (regs *Registers) D(key EngravingParameter) dimen.Dimen {
	return regs.Get(key).(dimen.Dimen)
}

// B returns a flag parameter.
func (regs *Registers) B(key EngravingParameter) bool {
	return regs.Get(key).(bool)
}

// P returns a percentage parameter.
func (regs *Registers) P(key EngravingParameter) percent.Percent {
	return regs.Get(key).(percent.Percent)
}
