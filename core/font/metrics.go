package font

import (
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/parameters"
	"github.com/npillmayer/engrave/core/percent"
)

// Metrics is the query interface for glyph and unit metrics. Implementations
// must be free of side effects; layout code calls them many times per pass.
//
// All values are in drawing units, y pointing upwards.
type Metrics interface {
	DrawingUnit(staffSize percent.Percent) dimen.Dimen  // half a staff space
	DoubleUnit(staffSize percent.Percent) dimen.Dimen   // a staff space
	StaffSize(staffSize percent.Percent) dimen.Dimen    // height of a five-line staff
	StemWidth(staffSize percent.Percent) dimen.Dimen    //
	BarlineWidth(staffSize percent.Percent) dimen.Dimen //
	CueSize(d dimen.Dimen) dimen.Dimen                  // scale d to cue size
	GlyphWidth(g Glyph, staffSize percent.Percent, cue bool) dimen.Dimen
	GlyphHeight(g Glyph, staffSize percent.Percent, cue bool) dimen.Dimen
	GlyphTop(g Glyph, staffSize percent.Percent, cue bool) dimen.Dimen
	GlyphBottom(g Glyph, staffSize percent.Percent, cue bool) dimen.Dimen
	GlyphAnchor(g Glyph, a Anchor, staffSize percent.Percent, cue bool) (dimen.Point, bool)
}

// Units holds the unit lengths every metrics provider shares. Stem and
// barline width are in tenths of a drawing unit.
type Units struct {
	Unit         dimen.Dimen     // drawing unit at 100% staff size
	StemTenths   int             //
	BarlineTenth int             //
	Cue          percent.Percent // cue and grace note scaling
}

// DefaultUnits are units matching the default engraving parameters.
var DefaultUnits = UnitsFromParameters(parameters.NewRegisters())

// UnitsFromParameters extracts units from engraving parameters.
func UnitsFromParameters(regs *parameters.Registers) Units {
	return Units{
		Unit:         regs.D(parameters.P_UNIT),
		StemTenths:   regs.N(parameters.P_STEMWIDTH),
		BarlineTenth: regs.N(parameters.P_BARLINEWIDTH),
		Cue:          regs.P(parameters.P_CUESIZE),
	}
}

// DrawingUnit is half a staff space.
func (u Units) DrawingUnit(staffSize percent.Percent) dimen.Dimen {
	return staffSize.Scale(u.Unit)
}

// DoubleUnit is the distance between two staff lines.
func (u Units) DoubleUnit(staffSize percent.Percent) dimen.Dimen {
	return 2 * u.DrawingUnit(staffSize)
}

// StaffSize is the height of a five-line staff, i.e. eight drawing units.
func (u Units) StaffSize(staffSize percent.Percent) dimen.Dimen {
	return 8 * u.DrawingUnit(staffSize)
}

func (u Units) StemWidth(staffSize percent.Percent) dimen.Dimen {
	return u.DrawingUnit(staffSize) * dimen.Dimen(u.StemTenths) / dimen.DefinitionFactor
}

func (u Units) BarlineWidth(staffSize percent.Percent) dimen.Dimen {
	return u.DrawingUnit(staffSize) * dimen.Dimen(u.BarlineTenth) / dimen.DefinitionFactor
}

func (u Units) CueSize(d dimen.Dimen) dimen.Dimen {
	return u.Cue.Scale(d)
}

// spaces converts a length in staff spaces to drawing units.
func (u Units) spaces(s float64, staffSize percent.Percent, cue bool) dimen.Dimen {
	d := dimen.Dimen(s * float64(u.DoubleUnit(staffSize)))
	if cue {
		d = u.CueSize(d)
	}
	return d
}
