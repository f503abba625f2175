package score

import (
	"fmt"
	"strings"
)

// Duration is a duration class. Values grow with shorter durations, so the
// number of flags of a note is its distance from Dur4.
type Duration int8

// Duration classes
const (
	DurMaxima Duration = iota - 1
	DurLonga
	DurBreve
	Dur1 // semibreve, whole note
	Dur2
	Dur4
	Dur8
	Dur16
	Dur32
	Dur64
	Dur128
	Dur256
	Dur512
	Dur1024
)

var durationNames = map[Duration]string{
	DurMaxima: "maxima", DurLonga: "long", DurBreve: "breve", Dur1: "1",
	Dur2: "2", Dur4: "4", Dur8: "8", Dur16: "16", Dur32: "32", Dur64: "64",
	Dur128: "128", Dur256: "256", Dur512: "512", Dur1024: "1024",
}

func (d Duration) String() string {
	if s, ok := durationNames[d]; ok {
		return s
	}
	return fmt.Sprintf("Duration(%d)", int(d))
}

// ParseDuration parses a duration name, e.g. "8" or "breve".
func ParseDuration(s string) (Duration, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range durationNames {
		if name == s {
			return d, true
		}
	}
	return Dur4, false
}

// HasStem is true for durations drawn with a stem.
func (d Duration) HasStem() bool {
	return d >= Dur2
}

// Flags returns the number of flags for a duration, 0…8.
func (d Duration) Flags() int {
	if d <= Dur4 {
		return 0
	}
	n := int(d - Dur4)
	if n > 8 {
		n = 8
	}
	return n
}

// StemDir is a stem direction.
type StemDir int8

// Stem directions
const (
	StemNone StemDir = iota
	StemUp
	StemDown
)

func (d StemDir) String() string {
	switch d {
	case StemUp:
		return "up"
	case StemDown:
		return "down"
	}
	return "none"
}

// StemPos is the horizontal position of a stem at the notehead.
type StemPos int8

// Stem positions
const (
	StemPosNone StemPos = iota
	StemPosLeft
	StemPosRight
)

// StemModifier is a stem decoration, usually tremolo slashes. The numeric
// values are ordered: modifiers below StemModSprech are slashes.
type StemModifier int8

// Stem modifiers
const (
	StemModNone StemModifier = iota // not set
	StemModNoneExplicit
	StemMod1Slash
	StemMod2Slash
	StemMod3Slash
	StemMod4Slash
	StemMod5Slash
	StemMod6Slash
	StemModSprech
	StemModZ
)

// CurveDir is the authored direction of a slur or tie.
type CurveDir int8

// Curve directions
const (
	CurveNone CurveDir = iota
	CurveAbove
	CurveBelow
)

// BeamPlace is the drawing position of a beam relative to the noteheads.
type BeamPlace int8

// Beam places
const (
	BeamPlaceNone BeamPlace = iota
	BeamPlaceAbove
	BeamPlaceBelow
	BeamPlaceMixed
)

// LigatureForm is the authored form of a ligature or of a ligature note.
type LigatureForm int8

// Ligature forms
const (
	LigatureFormNone LigatureForm = iota
	LigatureRecta
	LigatureObliqua
)

// LigatureShape is a bitmask of drawing shapes of a note within a ligature.
type LigatureShape uint8

// Ligature shapes
const (
	LigatureDefault       LigatureShape = 0
	LigatureStemLeftUp    LigatureShape = 1 << 0
	LigatureStemLeftDown  LigatureShape = 1 << 1
	LigatureStemRightUp   LigatureShape = 1 << 2
	LigatureStemRightDown LigatureShape = 1 << 3
	LigatureOblique       LigatureShape = 1 << 4
	LigatureStacked       LigatureShape = 1 << 5
)

// Has is true if all bits of other are set in s.
func (s LigatureShape) Has(other LigatureShape) bool {
	return s&other == other && other != 0
}

func (s LigatureShape) String() string {
	if s == LigatureDefault {
		return "default"
	}
	var parts []string
	for _, x := range []struct {
		bit  LigatureShape
		name string
	}{
		{LigatureStemLeftUp, "stem-left-up"},
		{LigatureStemLeftDown, "stem-left-down"},
		{LigatureStemRightUp, "stem-right-up"},
		{LigatureStemRightDown, "stem-right-down"},
		{LigatureOblique, "oblique"},
		{LigatureStacked, "stacked"},
	} {
		if s&x.bit != 0 {
			parts = append(parts, x.name)
		}
	}
	return strings.Join(parts, "|")
}

// NotationType is the notation type of a staff.
type NotationType int8

// Notation types
const (
	NotationCMN NotationType = iota
	NotationMensural
	NotationMensuralBlack
	NotationNeume
)

// Compass is a compass direction, used for the tilt of neume components.
type Compass int8

// Compass directions
const (
	CompassNone Compass = iota
	CompassN
	CompassNE
	CompassE
	CompassSE
	CompassS
	CompassSW
	CompassW
	CompassNW
)

// ParseCompass parses "n", "se", …
func ParseCompass(s string) Compass {
	switch strings.ToLower(s) {
	case "n":
		return CompassN
	case "ne":
		return CompassNE
	case "e":
		return CompassE
	case "se":
		return CompassSE
	case "s":
		return CompassS
	case "sw":
		return CompassSW
	case "w":
		return CompassW
	case "nw":
		return CompassNW
	}
	return CompassNone
}

// NcCurve is the curvature direction of a neume component.
type NcCurve int8

// Neume component curvatures: a is anti-clockwise, c is clockwise.
const (
	NcCurveNone NcCurve = iota
	NcCurveA
	NcCurveC
)

// Connector is the style of a syllable connector.
type Connector int8

// Connector styles
const (
	ConNone Connector = iota
	ConDash
	ConUnderline
)
