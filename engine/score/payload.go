package score

import (
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/font"
	"github.com/npillmayer/engrave/core/option"
	"github.com/npillmayer/engrave/core/percent"
)

// Payloads carry the kind-specific attributes of a node. Fields commented
// as derived are written by layout passes and cleared by the reset passes.

// System is the payload of a system. Style holds engraving parameter
// overrides by name, e.g. "slurthickness": "8", which apply to the
// drawing of this system only.
type System struct {
	Style map[string]string
}

// Measure is the payload of a measure.
type Measure struct {
	N            int
	RightBarline dimen.Dimen // x of the right barline, relative to the measure
}

// Staff is the payload of a staff. The staff's y position is the position
// of its top line.
type Staff struct {
	N        int
	Size     percent.Percent
	Notation NotationType
}

// Layer is the payload of a layer.
type Layer struct {
	N       int
	StemDir StemDir // drawing stem direction forced for the whole layer
}

// Note is the payload of a note.
type Note struct {
	PName, Oct  int // diatonic pitch name (0 = c … 6 = b) and octave
	Loc         int // staff position in drawing units, 0 = bottom line
	Dur         Duration
	Dots        int
	Cue         bool
	Grace       bool
	Lig         LigatureForm // authored ligature form starting at this note
	LedgerAbove int
	LedgerBelow int
	// StemSameasSecondary marks the second of two notes sharing a stem.
	StemSameasSecondary bool
	DrawingStemDir      StemDir // derived
}

// Diatonic returns the diatonic pitch number of a note.
func (n *Note) Diatonic() int {
	return n.Oct*7 + n.PName
}

// HasLedgerLines is true if the note needs ledger lines above or below the staff.
func (n *Note) HasLedgerLines() bool {
	return n.LedgerAbove > 0 || n.LedgerBelow > 0
}

// Chord is the payload of a chord. Chord notes do not carry stems of their
// own; the chord owns the stem.
type Chord struct {
	Dur            Duration
	Dots           int
	Cue            bool
	Grace          bool
	DrawingStemDir StemDir // derived
}

// Rest is the payload of a rest.
type Rest struct {
	Dur Duration
	Loc int
	Cue bool
}

// BeamSegment describes the drawn beam line.
type BeamSegment struct {
	StartX, StartY dimen.Dimen
	Slope          float64
}

// YAt returns the y coordinate of the beam line at x, shifted by offset.
// The sum is truncated as a whole.
func (s BeamSegment) YAt(x, offset dimen.Dimen) dimen.Dimen {
	return dimen.Dimen(float64(s.StartY) + s.Slope*float64(x-s.StartX) + float64(offset))
}

// Beam is the payload of a beam. Beam geometry is computed upstream.
type Beam struct {
	Segment BeamSegment
	Place   BeamPlace
}

// BTrem is the payload of a bowed tremolo.
type BTrem struct {
	Mod StemModifier
}

// Tuplet is the payload of a tuplet.
type Tuplet struct {
	Num, NumBase       int
	DrawingLeft        NodeID // derived: first element
	DrawingRight       NodeID // derived: last element
	BracketAlignedBeam NodeID // derived
	NumAlignedBeam     NodeID // derived
}

// TupletBracket is the payload of a tuplet bracket.
type TupletBracket struct {
	Visible    option.BoolT
	XRelLeft   dimen.Dimen // derived
	XRelRight  dimen.Dimen // derived
	alignedNum NodeID
}

// AlignedNum returns the number aligned with this bracket, or NoNode.
func (b *TupletBracket) AlignedNum() NodeID {
	return b.alignedNum
}

// TupletNum is the payload of a tuplet number.
type TupletNum struct {
	Visible        option.BoolT
	alignedBracket NodeID
}

// AlignedBracket returns the bracket aligned with this number, or NoNode.
func (n *TupletNum) AlignedBracket() NodeID {
	return n.alignedBracket
}

// Stem is the payload of a stem.
type Stem struct {
	Dir        StemDir     // authored
	Pos        StemPos     // authored
	Len        option.IntT // authored length in drawing units
	Mod        StemModifier
	Visible    option.BoolT
	DrawingDir StemDir     // derived
	DrawingLen dimen.Dimen // derived; negative for stems pointing up
}

// Flag is the payload of a flag.
type Flag struct {
	Count int // derived number of flags
}

// Dots is the payload of augmentation dots.
type Dots struct {
	N int
}

// Ligature is the payload of a mensural ligature. Its notes are its children.
type Ligature struct {
	Form   LigatureForm
	Shapes []LigatureShape // derived, one per note
}

// Neume is the payload of a neume. Its components are its children.
type Neume struct{}

// NcGlyph is a glyph drawn for a neume component. Offsets are in staff
// units.
type NcGlyph struct {
	Glyph            font.Glyph
	XOffset, YOffset float64
}

// Nc is the payload of a neume component.
type Nc struct {
	PName, Oct int
	Tilt       Compass
	Curve      NcCurve
	Ligated    option.BoolT
	Glyphs     []NcGlyph // derived
}

// Diatonic returns the diatonic pitch number of a neume component.
func (nc *Nc) Diatonic() int {
	return nc.Oct*7 + nc.PName
}

// PitchDifferenceTo returns the diatonic distance from other to nc.
func (nc *Nc) PitchDifferenceTo(other *Nc) int {
	return nc.Diatonic() - other.Diatonic()
}

// Bezier is a cubic bezier curve.
type Bezier struct {
	P1, C1, C2, P2 dimen.Point
}

// Spanning is the payload shared by slurs, ties and syllables.
type Spanning struct {
	Start, End NodeID
	CurveDir   CurveDir
	Bulge      option.IntT // curve height in drawing units
	// Curves caches the drawn curve per system. Derived.
	Curves map[NodeID]Bezier
}

// HasStartAndEnd is true if both anchors are set.
func (s *Spanning) HasStartAndEnd() bool {
	return s.Start != NoNode && s.End != NoNode
}

// Syl is the payload of a lyric syllable with its connector to the next one.
type Syl struct {
	Spanning
	Text  string
	Verse int
	Con   Connector
}
