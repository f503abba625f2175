package layout

import (
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/font"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/engrave/engine/functor"
	"github.com/npillmayer/engrave/engine/score"
)

// calcStem is the context of the stem pass. Staff and layer are set when
// entering them; the owner fields describe the note or chord whose stem is
// going to be visited next.
type calcStem struct {
	functor.Base
	e              *Engine
	staff          score.NodeID
	staffSize      percent.Percent
	verticalCenter dimen.Dimen
	layer          score.NodeID
	// stemmed element
	owner             score.NodeID
	dur               score.Duration
	isGrace           bool
	isSameasSecondary bool
	chordStemLength   dimen.Dimen
}

// CalcStem computes stem directions and lengths, flag counts and flag
// positions.
func (e *Engine) CalcStem() functor.Code {
	return e.process(&calcStem{
		e:     e,
		staff: score.NoNode,
		layer: score.NoNode,
		owner: score.NoNode,
	})
}

func (p *calcStem) VisitStaff(n *score.Node) functor.Code {
	p.staff = n.ID
	p.staffSize = p.e.staffSize(n.ID)
	p.verticalCenter = p.e.Doc.DrawingY(n.ID) - 2*p.e.Metrics.DoubleUnit(p.staffSize)
	return functor.Continue
}

func (p *calcStem) VisitLayer(n *score.Node) functor.Code {
	p.layer = n.ID
	return functor.Continue
}

// beamStemDir returns the stem direction forced by an enclosing beam. Stems
// of beamed notes are drawn by the beam.
func (p *calcStem) beamStemDir(id score.NodeID) (score.StemDir, bool) {
	beam := p.e.Doc.Beam(p.e.Doc.FirstAncestor(id, score.KindBeam))
	if beam == nil {
		return score.StemNone, false
	}
	switch beam.Place {
	case score.BeamPlaceAbove:
		return score.StemUp, true
	case score.BeamPlaceBelow:
		return score.StemDown, true
	}
	return score.StemNone, true
}

func (p *calcStem) layerStemDir() score.StemDir {
	if l := p.e.Doc.Layer(p.layer); l != nil {
		return l.StemDir
	}
	return score.StemNone
}

func (p *calcStem) VisitNote(n *score.Node) functor.Code {
	doc := p.e.Doc
	if doc.ChordOf(n.ID) != score.NoNode {
		return functor.Continue // the chord owns the stem
	}
	if doc.FirstAncestor(n.ID, score.KindLigature) != score.NoNode {
		return functor.Siblings
	}
	note := doc.Note(n.ID)
	stemID := doc.FirstChild(n.ID, score.KindStem)
	if stemID == score.NoNode {
		return functor.Continue
	}
	stem := doc.Stem(stemID)
	if dir, ok := p.beamStemDir(n.ID); ok {
		note.DrawingStemDir, stem.DrawingDir = dir, dir
		return functor.Siblings
	}
	dir := stem.Dir
	if dir == score.StemNone {
		dir = p.layerStemDir()
	}
	if dir == score.StemNone {
		if doc.DrawingY(n.ID) >= p.verticalCenter {
			dir = score.StemDown
		} else {
			dir = score.StemUp
		}
	}
	note.DrawingStemDir, stem.DrawingDir = dir, dir
	doc.Node(stemID).YRel = 0
	p.owner = n.ID
	p.dur = note.Dur
	p.isGrace = note.Grace
	p.isSameasSecondary = note.StemSameasSecondary
	p.chordStemLength = 0
	return functor.Continue
}

func (p *calcStem) VisitChord(n *score.Node) functor.Code {
	doc := p.e.Doc
	chord := doc.Chord(n.ID)
	stemID := doc.FirstChild(n.ID, score.KindStem)
	bottom, top := doc.ChordExtremes(n.ID)
	if stemID == score.NoNode || bottom == score.NoNode {
		return functor.Continue
	}
	stem := doc.Stem(stemID)
	if dir, ok := p.beamStemDir(n.ID); ok {
		chord.DrawingStemDir, stem.DrawingDir = dir, dir
		return functor.Siblings
	}
	yBottom, yTop := doc.DrawingY(bottom), doc.DrawingY(top)
	dir := stem.Dir
	if dir == score.StemNone {
		dir = p.layerStemDir()
	}
	if dir == score.StemNone {
		if yTop-p.verticalCenter > p.verticalCenter-yBottom {
			dir = score.StemDown
		} else {
			dir = score.StemUp
		}
	}
	chord.DrawingStemDir, stem.DrawingDir = dir, dir
	chordY := doc.DrawingY(n.ID)
	if dir == score.StemUp {
		doc.Node(stemID).YRel = yBottom - chordY
	} else {
		doc.Node(stemID).YRel = yTop - chordY
	}
	p.owner = n.ID
	p.dur = chord.Dur
	p.isGrace = chord.Grace
	p.isSameasSecondary = false
	p.chordStemLength = -(yTop - yBottom)
	return functor.Continue
}

// stemLenInThirdUnits is the default stem length in thirds of a unit:
// three and a half staff spaces, shortened for noteheads outside of the
// staff in stem direction, lengthened for 32nd notes and shorter.
func (p *calcStem) stemLenInThirdUnits(dir score.StemDir) int {
	doc := p.e.Doc
	note := doc.Note(p.owner)
	if doc.Is(p.owner, score.KindChord) {
		bottom, top := doc.ChordExtremes(p.owner)
		if dir == score.StemUp {
			note = doc.Note(top)
		} else {
			note = doc.Note(bottom)
		}
	}
	thirds := 21
	if note == nil {
		return thirds
	}
	outside := 0
	if dir == score.StemUp && note.Loc > 8 {
		outside = note.Loc - 8
	} else if dir == score.StemDown && note.Loc < 0 {
		outside = -note.Loc
	}
	if outside > 4 {
		outside = 4
	}
	thirds -= outside
	if p.dur >= score.Dur32 {
		thirds += 3
	}
	return thirds
}

// stemAnchor returns the stem attachment point of a note's head, relative
// to the note.
func (p *calcStem) stemAnchor(note score.NodeID, a font.Anchor, cue bool) dimen.Point {
	m := p.e.Metrics
	dur := p.dur
	if n := p.e.Doc.Note(note); n != nil {
		dur = n.Dur
	}
	glyph := NoteheadGlyph(dur)
	if pt, ok := m.GlyphAnchor(glyph, a, p.staffSize, cue); ok {
		return pt
	}
	yShift := m.DrawingUnit(p.staffSize) / 4
	if cue {
		yShift = m.CueSize(yShift)
	}
	if a == font.StemUpSE {
		return dimen.P(m.GlyphWidth(glyph, p.staffSize, cue), yShift)
	}
	return dimen.P(0, -yShift)
}

func (p *calcStem) stemUpSE(cue bool) dimen.Point {
	note := p.owner
	if p.e.Doc.Is(note, score.KindChord) {
		note, _ = p.e.Doc.ChordExtremes(note)
	}
	return p.stemAnchor(note, font.StemUpSE, cue)
}

func (p *calcStem) stemDownNW(cue bool) dimen.Point {
	note := p.owner
	if p.e.Doc.Is(note, score.KindChord) {
		_, note = p.e.Doc.ChordExtremes(note)
	}
	return p.stemAnchor(note, font.StemDownNW, cue)
}

// stemModGlyph returns the glyph drawn for a stem modifier.
func stemModGlyph(mod score.StemModifier) font.Glyph {
	switch mod {
	case score.StemMod1Slash:
		return font.Tremolo1
	case score.StemMod2Slash:
		return font.Tremolo2
	case score.StemMod3Slash:
		return font.Tremolo3
	case score.StemMod4Slash:
		return font.Tremolo4
	case score.StemMod5Slash, score.StemMod6Slash:
		return font.Tremolo5
	case score.StemModSprech:
		return font.VocalSprechgesang
	case score.StemModZ:
		return font.BuzzRoll
	}
	return font.NoGlyph
}

func (p *calcStem) VisitStem(n *score.Node) functor.Code {
	doc, m := p.e.Doc, p.e.Metrics
	if p.staff == score.NoNode || p.owner == score.NoNode || n.Parent != p.owner {
		p.e.advise(core.Error(core.EMISSING, "stem %s has no note or chord to attach to", n.XMLID))
		return functor.Siblings
	}
	stem := doc.Stem(n.ID)
	size := p.staffSize
	stemShift := m.StemWidth(size) / 2
	cue := doc.IsCue(p.owner)

	if p.dur < score.Dur2 {
		n.XRel, n.YRel = 0, 0
		stem.DrawingLen = 0
		return functor.Continue
	}

	// position, length and adjustment to the notehead
	unit := m.DrawingUnit(size)
	var baseStem dimen.Dimen
	if !stem.Len.IsNone() {
		baseStem = dimen.Dimen(stem.Len.Unwrap()) * -unit
	} else if !p.isSameasSecondary {
		thirdUnit := unit / 3
		baseStem = -(dimen.Dimen(p.stemLenInThirdUnits(stem.DrawingDir)) * thirdUnit)
		if cue {
			baseStem = m.CueSize(baseStem)
		}
	}
	// an authored length is measured from the center of the notehead
	if stem.Len.IsNone() || stem.Len.Unwrap() != 0 {
		var pt dimen.Point
		if stem.DrawingDir == score.StemUp {
			if stem.Pos == score.StemPosLeft {
				pt = p.stemDownNW(cue)
				pt.X += stemShift
			} else {
				pt = p.stemUpSE(cue)
				pt.X -= stemShift
			}
			shortening := pt.Y
			if p.isSameasSecondary {
				shortening = 0
			}
			stem.DrawingLen = baseStem + p.chordStemLength + shortening
		} else {
			if stem.Pos == score.StemPosRight {
				pt = p.stemUpSE(cue)
				pt.X -= stemShift
			} else {
				pt = p.stemDownNW(cue)
				pt.X += stemShift
			}
			shortening := pt.Y
			if p.isSameasSecondary {
				shortening = 0
			}
			stem.DrawingLen = -(baseStem + p.chordStemLength - shortening)
		}
		n.YRel += pt.Y
		n.XRel = pt.X
	}

	// flags and slashes
	stemMod := score.StemModNone
	if !p.isSameasSecondary {
		if btrem := doc.BTrem(doc.FirstAncestor(n.ID, score.KindBTrem)); btrem != nil {
			stemMod = btrem.Mod
		} else if stem.Mod != score.StemModNone && stem.Mod < score.StemModSprech {
			stemMod = stem.Mod
		}
	}
	var flagOffset dimen.Dimen
	var flagNode *score.Node
	var flag *score.Flag
	if p.dur > score.Dur4 {
		flagNode, flag = p.flagOf(n)
		if p.isSameasSecondary {
			flag.Count = 0
		} else {
			flag.Count = p.dur.Flags()
			flagOffset = unit * dimen.Dimen(flag.Count-1)
		}
	}
	code := stemModGlyph(stemMod)
	actualLength := stem.DrawingLen / unit * unit
	diff := dimen.Abs(actualLength) - m.GlyphHeight(code, size, false)
	if stemMod != score.StemModNone && stem.Len.IsNone() && diff < 2*unit {
		adjust := (2*unit - diff) / unit * unit
		if stemMod == score.StemMod6Slash {
			adjust += m.GlyphHeight(font.Tremolo1, size, false)
		}
		if stem.DrawingDir == score.StemUp {
			stem.DrawingLen = stem.DrawingLen - adjust - flagOffset
		} else {
			stem.DrawingLen = stem.DrawingLen + adjust + flagOffset
		}
	}
	if flagNode != nil {
		flagNode.YRel = -stem.DrawingLen
	}

	// authored lengths and shared stems are not corrected
	if p.isSameasSecondary || !stem.Len.IsNone() {
		if stem.Len.UnwrapOr(0) == 0 && flag != nil {
			flag.Count = 0
		}
		return functor.Continue
	}
	if stem.Visible.IsFalse() && flag != nil {
		flag.Count = 0
		return functor.Continue
	}

	// flags cover some of the stem from the 32nd on
	var flagHeight dimen.Dimen
	if p.dur > score.Dur16 {
		if stem.DrawingDir == score.StemUp {
			flagHeight = m.GlyphTop(font.FlagGlyph(flag.Count, true), size, cue)
		} else {
			flagHeight = m.GlyphBottom(font.FlagGlyph(flag.Count, false), size, cue)
		}
	}
	endY := doc.DrawingY(n.ID) - stem.DrawingLen + flagHeight
	adjust := (stem.DrawingDir == score.StemUp && endY < p.verticalCenter) ||
		(stem.DrawingDir == score.StemDown && endY > p.verticalCenter)
	// grace notes keep their length but still get the flag corrections
	if adjust && !p.isGrace {
		stem.DrawingLen += endY - p.verticalCenter
		if flagNode != nil {
			flagNode.YRel = -stem.DrawingLen
		}
	}
	if flagNode != nil {
		p.adjustFlagPlacement(n, stem, flagNode)
	}
	tracer().Debugf("stem %s: dir=%s len=%d", n, stem.DrawingDir, stem.DrawingLen)
	return functor.Continue
}

// flagOf returns the flag of a stem, creating it if the input tree lacks one.
func (p *calcStem) flagOf(n *score.Node) (*score.Node, *score.Flag) {
	doc := p.e.Doc
	id := doc.FirstChild(n.ID, score.KindFlag)
	if id == score.NoNode {
		id = doc.Add(n.ID, score.KindFlag, &score.Flag{})
	}
	return doc.Node(id), doc.Flag(id)
}
