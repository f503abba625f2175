package layout

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/font"
	"github.com/npillmayer/engrave/core/parameters"
	"github.com/npillmayer/engrave/engine/score"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ligNote struct {
	loc int
	dur score.Duration
}

func buildLigature(form score.LigatureForm, nt score.NotationType, notes ...ligNote) (*score.Builder, score.NodeID, []score.NodeID) {
	b, _, l := newLayer(score.WithNotation(nt))
	lig := b.Ligature(l, 100, form)
	ids := make([]score.NodeID, len(notes))
	for i, n := range notes {
		ids[i] = b.Note(lig, 0, n.loc, n.dur)
	}
	return b, lig, ids
}

func errorCodes(err error) []int {
	var codes []int
	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			codes = append(codes, core.Code(e))
		}
	}
	return codes
}

func noAdjacentObliques(t *testing.T, shapes []score.LigatureShape) {
	for i := 1; i < len(shapes); i++ {
		assert.False(t, shapes[i-1].Has(score.LigatureOblique) && shapes[i].Has(score.LigatureOblique),
			"adjacent obliques at %d in %v", i, shapes)
	}
}

func TestLigatureBreveBreveDescending(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, lig, notes := buildLigature(score.LigatureRecta, score.NotationMensural,
		ligNote{6, score.DurBreve}, ligNote{4, score.DurBreve})
	require.NoError(t, New(b.Doc, nil, nil).Run())
	shapes := b.Doc.Ligature(lig).Shapes
	require.Len(t, shapes, 2)
	assert.Equal(t, score.LigatureOblique|score.LigatureStemLeftDown, shapes[0])
	assert.Equal(t, score.LigatureShape(0), shapes[1])
	assert.Equal(t, dimen.Zero, b.Doc.Node(notes[0]).XRel)
	assert.Equal(t, dimen.Dimen(270), b.Doc.Node(notes[1]).XRel)
}

func TestLigatureLongaLonga(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, lig, _ := buildLigature(score.LigatureRecta, score.NotationMensural,
		ligNote{2, score.DurLonga}, ligNote{4, score.DurLonga})
	require.NoError(t, New(b.Doc, nil, nil).Run())
	assert.Equal(t, []score.LigatureShape{score.LigatureStemRightDown, score.LigatureStemRightDown},
		b.Doc.Ligature(lig).Shapes)
	//
	b, lig, _ = buildLigature(score.LigatureRecta, score.NotationMensural,
		ligNote{4, score.DurLonga}, ligNote{2, score.DurLonga})
	require.NoError(t, New(b.Doc, nil, nil).Run())
	assert.Equal(t, []score.LigatureShape{0, 0}, b.Doc.Ligature(lig).Shapes)
}

func TestLigatureObliquesDoNotTouch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, lig, notes := buildLigature(score.LigatureRecta, score.NotationMensural,
		ligNote{6, score.DurBreve}, ligNote{4, score.DurBreve}, ligNote{2, score.DurBreve})
	require.NoError(t, New(b.Doc, nil, nil).Run())
	shapes := b.Doc.Ligature(lig).Shapes
	require.Len(t, shapes, 3)
	assert.Equal(t, score.LigatureStemLeftDown, shapes[0])
	assert.Equal(t, score.LigatureOblique, shapes[1])
	noAdjacentObliques(t, shapes)
	for i, id := range notes {
		assert.Equal(t, dimen.Dimen(270*i), b.Doc.Node(id).XRel)
	}
}

func TestLigatureShapeTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	L, B, SB := score.DurLonga, score.DurBreve, score.Dur1
	for _, c := range []struct {
		notes  []ligNote
		shapes []score.LigatureShape
	}{
		{[]ligNote{{2, L}, {4, B}}, []score.LigatureShape{score.LigatureStemRightDown, 0}},
		{[]ligNote{{4, L}, {2, B}}, []score.LigatureShape{score.LigatureOblique, 0}},
		{[]ligNote{{2, B}, {4, L}}, []score.LigatureShape{0, score.LigatureStemRightDown}},
		{[]ligNote{{4, B}, {2, L}}, []score.LigatureShape{score.LigatureStemLeftDown, 0}},
		{[]ligNote{{4, SB}, {2, SB}}, []score.LigatureShape{score.LigatureStemLeftUp, 0}},
		{[]ligNote{{2, SB}, {4, L}}, []score.LigatureShape{0, score.LigatureStemRightDown}},
		{[]ligNote{{4, SB}, {2, B}}, []score.LigatureShape{score.LigatureOblique, 0}},
		{[]ligNote{{4, score.DurMaxima}, {2, B}}, []score.LigatureShape{0, 0}},
	} {
		notes := make([]*score.Note, len(c.notes))
		for i, n := range c.notes {
			notes[i] = &score.Note{Loc: n.loc, Dur: n.dur}
			notes[i].PName, notes[i].Oct = score.PitchFromLoc(n.loc)
		}
		shapes := ligatureShapes(notes, score.LigatureRecta, false)
		assert.Equal(t, c.shapes, shapes, "notes %v", c.notes)
		noAdjacentObliques(t, shapes)
	}
}

func TestLigatureObliquaAngle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, lig, notes := buildLigature(score.LigatureObliqua, score.NotationMensural,
		ligNote{6, score.DurBreve}, ligNote{2, score.DurBreve})
	require.NoError(t, New(b.Doc, nil, nil).Run())
	assert.True(t, b.Doc.Ligature(lig).Shapes[0].Has(score.LigatureOblique))
	assert.Equal(t, dimen.Dimen(630), b.Doc.Node(notes[1]).XRel)
}

func TestLigatureStacking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, lig, notes := buildLigature(score.LigatureRecta, score.NotationMensuralBlack,
		ligNote{0, score.DurBreve}, ligNote{4, score.DurLonga})
	require.NoError(t, New(b.Doc, nil, nil).Run())
	assert.Equal(t, score.LigatureStacked, b.Doc.Ligature(lig).Shapes[1])
	assert.Equal(t, b.Doc.Node(notes[0]).XRel, b.Doc.Node(notes[1]).XRel)
	// after a step down, only an oblique lets the final longa stack
	b, lig, _ = buildLigature(score.LigatureRecta, score.NotationMensuralBlack,
		ligNote{6, score.DurLonga}, ligNote{2, score.DurBreve}, ligNote{8, score.DurLonga})
	require.NoError(t, New(b.Doc, nil, nil).Run())
	assert.Equal(t, score.LigatureStacked, b.Doc.Ligature(lig).Shapes[2])
	b, lig, _ = buildLigature(score.LigatureRecta, score.NotationMensuralBlack,
		ligNote{6, score.DurMaxima}, ligNote{2, score.DurBreve}, ligNote{12, score.DurLonga})
	require.NoError(t, New(b.Doc, nil, nil).Run())
	assert.Equal(t, score.LigatureStemRightDown, b.Doc.Ligature(lig).Shapes[2])
	// white notation never stacks
	b, lig, _ = buildLigature(score.LigatureRecta, score.NotationMensural,
		ligNote{0, score.DurBreve}, ligNote{4, score.DurLonga})
	require.NoError(t, New(b.Doc, nil, nil).Run())
	assert.Equal(t, score.LigatureStemRightDown, b.Doc.Ligature(lig).Shapes[1])
}

func TestLigatureAdvisories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, lig, _ := buildLigature(score.LigatureRecta, score.NotationMensural, ligNote{4, score.DurBreve})
	err := New(b.Doc, nil, nil).Run()
	require.Error(t, err)
	assert.Equal(t, []int{core.EINVALID}, errorCodes(err))
	assert.Empty(t, b.Doc.Ligature(lig).Shapes)
	//
	b = score.NewBuilder(90)
	m := b.Measure(b.System(0), 0, 3000)
	lig = b.Ligature(m, 100, score.LigatureRecta)
	b.Note(lig, 0, 4, score.DurBreve)
	b.Note(lig, 0, 2, score.DurBreve)
	err = New(b.Doc, nil, nil).Run()
	assert.Equal(t, []int{core.EMISSING}, errorCodes(err))
}

func TestLigatureAsBracket(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, lig, notes := buildLigature(score.LigatureRecta, score.NotationMensural,
		ligNote{6, score.DurBreve}, ligNote{4, score.DurBreve})
	b.Doc.Node(notes[1]).XRel = 500
	params := parameters.NewRegisters()
	params.Push(parameters.P_LIGATUREASBRACKET, true)
	require.NoError(t, New(b.Doc, nil, params).Run())
	assert.Empty(t, b.Doc.Ligature(lig).Shapes)
	assert.Equal(t, dimen.Dimen(500), b.Doc.Node(notes[1]).XRel, "authored offsets are kept")
}

// --- Neumes ----------------------------------------------------------------

func TestNeumeGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	neume := b.Neume(l, 100)
	plain := b.Nc(neume, 4, 3)
	inclinatum := b.Nc(neume, 3, 3, score.WithTilt(score.CompassSE))
	virga := b.Nc(neume, 5, 3, score.WithTilt(score.CompassS))
	reversed := b.Nc(neume, 5, 3, score.WithTilt(score.CompassN))
	oriscus := b.Nc(neume, 4, 3, score.WithOriscus())
	quilisma := b.Nc(neume, 4, 3, score.WithQuilisma())
	require.NoError(t, New(b.Doc, nil, nil).Run())
	for id, g := range map[score.NodeID]font.Glyph{
		plain:      font.ChantPunctum,
		inclinatum: font.ChantPunctumInclinatum,
		virga:      font.ChantPunctumVirga,
		reversed:   font.ChantPunctumVirgaReversed,
		oriscus:    font.MedRenOriscusCMN,
		quilisma:   font.ChantQuilisma,
	} {
		glyphs := b.Doc.Nc(id).Glyphs
		require.Len(t, glyphs, 1)
		assert.Equal(t, g, glyphs[0].Glyph)
	}
	assert.Equal(t, dimen.Zero, b.Doc.Node(plain).XRel)
	assert.Equal(t, dimen.Dimen(108), b.Doc.Node(inclinatum).XRel)
	assert.Equal(t, dimen.Dimen(108+93), b.Doc.Node(virga).XRel)
}

func TestNeumeLiquescent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	neume := b.Neume(l, 100)
	asc := b.Nc(neume, 4, 3, score.WithLiquescent(), score.WithCurve(score.NcCurveA))
	desc := b.Nc(neume, 4, 3, score.WithLiquescent(), score.WithCurve(score.NcCurveC))
	plain := b.Nc(neume, 4, 3, score.WithLiquescent())
	require.NoError(t, New(b.Doc, nil, nil).Run())
	glyphs := b.Doc.Nc(asc).Glyphs
	require.Len(t, glyphs, 3)
	assert.Equal(t, font.ChantAuctumAsc, glyphs[0].Glyph)
	assert.Equal(t, font.ChantConnectingLineAsc3rd, glyphs[1].Glyph)
	assert.Equal(t, 0.8, glyphs[2].XOffset)
	assert.Equal(t, 0.75, glyphs[2].YOffset)
	glyphs = b.Doc.Nc(desc).Glyphs
	require.Len(t, glyphs, 3)
	assert.Equal(t, font.ChantAuctumDesc, glyphs[0].Glyph)
	assert.Equal(t, -1.5, glyphs[1].YOffset)
	glyphs = b.Doc.Nc(plain).Glyphs
	require.Len(t, glyphs, 3)
	assert.Equal(t, font.ChantPunctumDeminutum, glyphs[0].Glyph)
}

func TestNeumeLigatedPair(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	neume := b.Neume(l, 100)
	first := b.Nc(neume, 4, 3, score.AsLigated())
	second := b.Nc(neume, 2, 3, score.AsLigated())
	require.NoError(t, New(b.Doc, nil, nil).Run())
	g1, g2 := b.Doc.Nc(first).Glyphs[0], b.Doc.Nc(second).Glyphs[0]
	assert.Equal(t, font.ChantEntryLineAsc3rd, g1.Glyph)
	assert.Equal(t, -2.0, g1.YOffset)
	assert.Equal(t, font.ChantLigaturaDesc3rd, g2.Glyph)
	assert.Equal(t, 2.0, g2.YOffset)
	assert.Equal(t, dimen.Dimen(14), b.Doc.Node(second).XRel)
}

func TestNeumeAsNote(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	neume := b.Neume(l, 100)
	nc := b.Nc(neume, 4, 3, score.WithLiquescent())
	params := parameters.NewRegisters()
	params.Push(parameters.P_NEUMEASNOTE, true)
	require.NoError(t, New(b.Doc, nil, params).Run())
	assert.Empty(t, b.Doc.Nc(nc).Glyphs)
}
