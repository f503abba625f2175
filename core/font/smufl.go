package font

import "fmt"

// Glyph is a SMuFL code point.
type Glyph rune

// NoGlyph is returned wherever no glyph applies.
const NoGlyph Glyph = 0

// Noteheads
const (
	NoteheadDoubleWhole Glyph = 0xE0A0
	NoteheadWhole       Glyph = 0xE0A2
	NoteheadHalf        Glyph = 0xE0A3
	NoteheadBlack       Glyph = 0xE0A4
)

// Tremolos and stem decorations
const (
	Tremolo1          Glyph = 0xE220
	Tremolo2          Glyph = 0xE221
	Tremolo3          Glyph = 0xE222
	Tremolo4          Glyph = 0xE223
	Tremolo5          Glyph = 0xE224
	BuzzRoll          Glyph = 0xE22A
	VocalSprechgesang Glyph = 0xE645
)

// Flags. Up flags have even code points, down flags odd ones.
const (
	Flag8thUp      Glyph = 0xE240
	Flag8thDown    Glyph = 0xE241
	Flag16thUp     Glyph = 0xE242
	Flag16thDown   Glyph = 0xE243
	Flag32ndUp     Glyph = 0xE244
	Flag32ndDown   Glyph = 0xE245
	Flag64thUp     Glyph = 0xE246
	Flag64thDown   Glyph = 0xE247
	Flag128thUp    Glyph = 0xE248
	Flag128thDown  Glyph = 0xE249
	Flag256thUp    Glyph = 0xE24A
	Flag256thDown  Glyph = 0xE24B
	Flag512thUp    Glyph = 0xE24C
	Flag512thDown  Glyph = 0xE24D
	Flag1024thUp   Glyph = 0xE24E
	Flag1024thDown Glyph = 0xE24F
)

// Rests
const (
	RestWhole   Glyph = 0xE4E3
	RestHalf    Glyph = 0xE4E4
	RestQuarter Glyph = 0xE4E5
	Rest8th     Glyph = 0xE4E6
	Rest16th    Glyph = 0xE4E7
	Rest32nd    Glyph = 0xE4E8
)

// Mensural noteheads
const (
	MensuralBrevisBlack     Glyph = 0xE934
	MensuralSemibrevisBlack Glyph = 0xE938
)

// Chant
const (
	ChantPunctum              Glyph = 0xE990
	ChantPunctumInclinatum    Glyph = 0xE991
	ChantAuctumAsc            Glyph = 0xE994
	ChantAuctumDesc           Glyph = 0xE995
	ChantPunctumVirga         Glyph = 0xE996
	ChantPunctumVirgaReversed Glyph = 0xE997
	ChantQuilisma             Glyph = 0xE99B
	ChantPunctumDeminutum     Glyph = 0xE9A1
	ChantEntryLineAsc2nd      Glyph = 0xE9B4
	ChantEntryLineAsc3rd      Glyph = 0xE9B5
	ChantEntryLineAsc4th      Glyph = 0xE9B6
	ChantEntryLineAsc5th      Glyph = 0xE9B7
	ChantLigaturaDesc2nd      Glyph = 0xE9B9
	ChantLigaturaDesc3rd      Glyph = 0xE9BA
	ChantLigaturaDesc4th      Glyph = 0xE9BB
	ChantLigaturaDesc5th      Glyph = 0xE9BC
	ChantConnectingLineAsc3rd Glyph = 0xE9BE
	MedRenOriscusCMN          Glyph = 0xEA2A
)

func (g Glyph) String() string {
	return fmt.Sprintf("U+%04X", rune(g))
}

// FlagGlyph returns the flag glyph for a number of flags (1…8), for a stem
// pointing upwards or downwards. It returns NoGlyph for other counts.
func FlagGlyph(count int, up bool) Glyph {
	if count < 1 || count > 8 {
		return NoGlyph
	}
	g := Flag8thUp + Glyph(2*(count-1))
	if !up {
		g++
	}
	return g
}

// Anchor is a SMuFL glyph anchor.
type Anchor int8

// Anchors used for stem attachment.
const (
	StemUpSE Anchor = iota
	StemDownNW
	StemUpNW
	StemDownSW
)
