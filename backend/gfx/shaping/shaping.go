/*
Package shaping measures lyric syllables by shaping them with HarfBuzz.

A Shaper is a gfx.TextMeasurer which sums the glyph advances of a text
shaped in an OpenType font. Compared to gfx.TextEstimator it accounts for
proportional glyph widths, ligatures and kerning.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package shaping

import (
	"bytes"
	"encoding/binary"
	"sync"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/engrave/backend/gfx"
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// tracer traces with key 'engrave.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.gfx")
}

// DefaultEm is the em size of the lyric font at 100% staff size.
const DefaultEm = 300 * dimen.DU

// Shaper measures texts set in an OpenType font.
//
// Shaper is safe for concurrent use.
type Shaper struct {
	Em       dimen.Dimen // em size at 100% staff size
	Language language.Tag
	font     *hb.Font
	upem     int
	mx       sync.Mutex
}

var _ gfx.TextMeasurer = &Shaper{}

// NewShaper creates a shaper for a font in OpenType or TrueType format.
func NewShaper(fontdata []byte, em dimen.Dimen) (*Shaper, error) {
	face, err := hbtt.Parse(bytes.NewReader(fontdata), true)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse lyric font")
	}
	f, err := sfnt.Parse(fontdata)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse lyric font")
	}
	upem := int(f.UnitsPerEm())
	if upem <= 0 {
		upem = 1000
	}
	if em <= 0 {
		em = DefaultEm
	}
	return &Shaper{
		Em:       em,
		Language: language.Und,
		font:     hb.NewFont(face),
		upem:     upem,
	}, nil
}

// Advance shapes a text and returns the sum of its glyph advances in font
// units.
func (s *Shaper) Advance(text string) int {
	if text == "" {
		return 0
	}
	runes := []rune(text)
	buf := hb.NewBuffer()
	buf.Props = segmentProperties(s.Language)
	buf.AddRunes(runes, 0, len(runes))
	s.mx.Lock()
	buf.Shape(s.font, nil)
	s.mx.Unlock()
	adv := 0
	for i := range buf.Pos {
		adv += int(buf.Pos[i].XAdvance)
	}
	tracer().Debugf("shaped %q into %d glyphs, advance %d", text, len(buf.Info), adv)
	return adv
}

// segmentProperties sets up left-to-right shaping in the script of a
// language. An undetermined language is shaped as Latin.
func segmentProperties(lang language.Tag) hb.SegmentProperties {
	props := hb.SegmentProperties{Direction: hb.LeftToRight}
	script := language.MustParseScript("Latn")
	if lang != language.Und {
		props.Language = hblang.NewLanguage(lang.String())
		script, _ = lang.Script()
	}
	props.Script = script4HB(script)
	return props
}

// script4HB converts an ISO 15924 script to a HarfBuzz script tag.
// HarfBuzz tags are lowercase, e.g. "Latn" becomes 'latn'.
func script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	if len(b) != 4 {
		return hblang.Common
	}
	b[0] = byte(unicode.ToLower(rune(b[0])))
	return hblang.Script(binary.BigEndian.Uint32(b))
}

// Extent returns width and height of a text. The height is the em size.
func (s *Shaper) Extent(text string, staffSize percent.Percent) (w, h dimen.Dimen) {
	em := staffSize.Scale(s.Em)
	w = dimen.Dimen(s.Advance(text)) * em / dimen.Dimen(s.upem)
	return w, em
}
