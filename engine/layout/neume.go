package layout

import (
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/font"
	"github.com/npillmayer/engrave/engine/functor"
	"github.com/npillmayer/engrave/engine/score"
)

var (
	entryLinesAsc = [...]font.Glyph{
		font.ChantEntryLineAsc2nd, font.ChantEntryLineAsc3rd,
		font.ChantEntryLineAsc4th, font.ChantEntryLineAsc5th,
	}
	ligaturaeDesc = [...]font.Glyph{
		font.ChantLigaturaDesc2nd, font.ChantLigaturaDesc3rd,
		font.ChantLigaturaDesc4th, font.ChantLigaturaDesc5th,
	}
)

func (p *calcLigatureOrNeumePos) VisitNeume(n *score.Node) functor.Code {
	if p.neumeAsNote {
		return functor.Siblings
	}
	doc := p.e.Doc
	staff := doc.Staff(p.e.staffOf(n.ID))
	if staff == nil {
		p.e.advise(core.Error(core.EMISSING, "neume %s is not on a staff", n.XMLID))
		return functor.Siblings
	}
	var xRel dimen.Dimen
	for _, id := range doc.FindAllDescendants(n.ID, score.KindNc) {
		nc := doc.Nc(id)
		nc.Glyphs = ncGlyphs(doc, n.ID, id)
		doc.Node(id).XRel = xRel
		// the first glyph sets the spacing
		xRel += p.e.Metrics.GlyphWidth(nc.Glyphs[0].Glyph, staff.Size, false)
	}
	return functor.Siblings
}

// ncGlyphs selects the glyphs of a neume component. A liquescent always
// yields three glyphs, any other component exactly one.
func ncGlyphs(doc *score.Document, neume, id score.NodeID) []score.NcGlyph {
	nc := doc.Nc(id)
	switch {
	case doc.FindDescendant(id, score.KindLiquescent, score.Unlimited) != score.NoNode:
		glyphs := make([]score.NcGlyph, 3)
		switch nc.Curve {
		case score.NcCurveC:
			glyphs[0].Glyph = font.ChantAuctumDesc
			glyphs[1].Glyph = font.ChantConnectingLineAsc3rd
			glyphs[2].Glyph = font.ChantConnectingLineAsc3rd
			glyphs[2].XOffset = 0.8
			glyphs[1].YOffset = -1.5
			glyphs[2].YOffset = -1.75
		case score.NcCurveA:
			glyphs[0].Glyph = font.ChantAuctumAsc
			glyphs[1].Glyph = font.ChantConnectingLineAsc3rd
			glyphs[2].Glyph = font.ChantConnectingLineAsc3rd
			glyphs[2].XOffset = 0.8
			glyphs[1].YOffset = 0.5
			glyphs[2].YOffset = 0.75
		default:
			glyphs[0].Glyph = font.ChantPunctumDeminutum
		}
		return glyphs
	case doc.FindDescendant(id, score.KindOriscus, score.Unlimited) != score.NoNode:
		return []score.NcGlyph{{Glyph: font.MedRenOriscusCMN}}
	case doc.FindDescendant(id, score.KindQuilisma, score.Unlimited) != score.NoNode:
		return []score.NcGlyph{{Glyph: font.ChantQuilisma}}
	}
	g := score.NcGlyph{Glyph: font.ChantPunctum}
	if nc.Tilt == score.CompassSE {
		g.Glyph = font.ChantPunctumInclinatum
	} else if nc.Ligated.IsTrue() {
		position := doc.ChildIndex(neume, id)
		var pitchDifference int
		isFirst := ligatureCount(doc, neume, position)%2 == 1
		if isFirst {
			if next := doc.Nc(childAt(doc, neume, position+1)); next != nil {
				pitchDifference = next.PitchDifferenceTo(nc)
				g.YOffset = float64(pitchDifference)
			}
		} else {
			prev := position - 1
			if prev < 0 {
				prev = 0
			}
			if last := doc.Nc(childAt(doc, neume, prev)); last != nil {
				pitchDifference = nc.PitchDifferenceTo(last)
				g.YOffset = float64(-pitchDifference)
			}
		}
		if pitchDifference <= -1 && pitchDifference >= -4 {
			if isFirst {
				g.Glyph = entryLinesAsc[-pitchDifference-1]
			} else {
				g.Glyph = ligaturaeDesc[-pitchDifference-1]
			}
		}
	}
	// a punctum tilted up or down becomes a virga
	if g.Glyph == font.ChantPunctum {
		switch nc.Tilt {
		case score.CompassS:
			g.Glyph = font.ChantPunctumVirga
		case score.CompassN:
			g.Glyph = font.ChantPunctumVirgaReversed
		}
	}
	return []score.NcGlyph{g}
}

// ligatureCount counts the ligated components among the children of a
// neume up to and including position.
func ligatureCount(doc *score.Document, neume score.NodeID, position int) int {
	count := 0
	for i, ch := range doc.Children(neume) {
		if i > position {
			break
		}
		if nc := doc.Nc(ch); nc != nil && nc.Ligated.IsTrue() {
			count++
		}
	}
	return count
}

func childAt(doc *score.Document, parent score.NodeID, i int) score.NodeID {
	children := doc.Children(parent)
	if i < 0 || i >= len(children) {
		return score.NoNode
	}
	return children[i]
}
