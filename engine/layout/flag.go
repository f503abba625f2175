package layout

import (
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/font"
	"github.com/npillmayer/engrave/engine/score"
)

// adjustFlagPlacement keeps flags clear of the notehead and of ledger lines.
// All corrections are quantized to the drawing unit of the staff.
func (p *calcStem) adjustFlagPlacement(n *score.Node, stem *score.Stem, flagNode *score.Node) {
	doc, m := p.e.Doc, p.e.Metrics
	parent := n.Parent
	size := p.staffSize
	cue := doc.IsCue(parent)
	dir := stem.DrawingDir
	flag := doc.Flag(flagNode.ID)

	// flags shorter than a 16th grow in the opposite direction
	glyph := font.Flag16thUp
	if p.dur < score.Dur16 {
		glyph = font.FlagGlyph(flag.Count, dir == score.StemUp)
	}
	glyphHeight := m.GlyphHeight(glyph, size, cue)

	// only downward flags may collide with the notehead
	step := m.DrawingUnit(size)
	if dir == score.StemDown {
		noteheadMargin := stem.DrawingLen - (glyphHeight + p.e.Radius(parent, false))
		if p.dur > score.Dur16 && noteheadMargin < 0 {
			var offset dimen.Dimen
			if noteheadMargin%step < -step/3*2 {
				offset = step / 2
			}
			heightToAdjust := (noteheadMargin/step)*step - offset
			stem.DrawingLen -= heightToAdjust
			flagNode.YRel = -stem.DrawingLen
		}
	}

	note := doc.Note(parent)
	if doc.Is(parent, score.KindChord) {
		_, top := doc.ChordExtremes(parent)
		note = doc.Note(top)
	}
	if note == nil || !note.HasLedgerLines() {
		return
	}
	if (dir == score.StemUp && note.LedgerBelow == 0) || (dir == score.StemDown && note.LedgerAbove == 0) {
		return
	}
	// keep the flag clear of the first ledger line
	var bias dimen.Dimen = 1
	if dir == score.StemDown {
		bias = -1
	}
	position := doc.DrawingY(n.ID) - stem.DrawingLen - bias*glyphHeight
	ledgerPosition := p.verticalCenter - 6*bias*step
	displacementMargin := (position - ledgerPosition) * bias
	if displacementMargin < 0 {
		var offset dimen.Dimen
		if dir == score.StemDown && displacementMargin%step > -step/3 {
			offset = step / 2
		}
		heightToAdjust := (displacementMargin/step-1)*step*bias - offset
		stem.DrawingLen += heightToAdjust
		flagNode.YRel = -stem.DrawingLen
	}
}
