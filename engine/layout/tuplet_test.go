package layout

import (
	"testing"

	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/option"
	"github.com/npillmayer/engrave/engine/score"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Triplet notes are at x 1100, 1400 and 1700; a black notehead has a
// radius of 106.

type triplet struct {
	b               *score.Builder
	tuplet          score.NodeID
	bracket, num    score.NodeID
	first, last     score.NodeID
	beam            score.NodeID
	bracketVisible  option.BoolT
	numVisible      option.BoolT
	place           score.BeamPlace
	beamed, noBrckt bool
}

func (tr *triplet) build() {
	b, _, l := newLayer()
	tr.b = b
	tr.tuplet = b.Tuplet(l, 3, 2)
	if !tr.noBrckt {
		tr.bracket = b.TupletBracket(tr.tuplet, 200, tr.bracketVisible)
	}
	tr.num = b.TupletNum(tr.tuplet, 250, tr.numVisible)
	parent := tr.tuplet
	if tr.beamed {
		tr.beam = b.Beam(tr.tuplet, score.BeamSegment{StartX: 1100, StartY: 300, Slope: 0.5}, tr.place)
		parent = tr.beam
	}
	tr.first = b.Note(parent, 100, 2, score.Dur8)
	b.Note(parent, 400, 3, score.Dur8)
	tr.last = b.Note(parent, 700, 4, score.Dur8)
}

func TestTupletBoundaries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	tr := &triplet{}
	tr.build()
	e := New(tr.b.Doc, nil, nil)
	require.NoError(t, e.Run())
	tuplet := tr.b.Doc.Tuplet(tr.tuplet)
	assert.Equal(t, tr.first, tuplet.DrawingLeft)
	assert.Equal(t, tr.last, tuplet.DrawingRight)
	assert.Equal(t, score.NoNode, tuplet.BracketAlignedBeam)
	bracket := tr.b.Doc.TupletBracket(tr.bracket)
	assert.Equal(t, dimen.Dimen(-90), bracket.XRelLeft)
	assert.Equal(t, dimen.Dimen(302), bracket.XRelRight)
	assert.Equal(t, tr.num, bracket.AlignedNum())
	assert.Equal(t, tr.bracket, tr.b.Doc.TupletNum(tr.num).AlignedBracket())
	x, err := e.BracketXLeft(tr.bracket)
	require.NoError(t, err)
	assert.Equal(t, dimen.Dimen(1010), x)
	x, err = e.BracketXRight(tr.bracket)
	require.NoError(t, err)
	assert.Equal(t, dimen.Dimen(2002), x)
	y, err := e.BracketYLeft(tr.bracket)
	require.NoError(t, err)
	assert.Equal(t, dimen.Dimen(200), y)
	x, err = e.NumXMid(tr.num)
	require.NoError(t, err)
	assert.Equal(t, dimen.Dimen(1506), x)
	y, err = e.NumYMid(tr.num)
	require.NoError(t, err)
	assert.Equal(t, dimen.Dimen(200), y)
}

func TestTupletBracketFollowsBeam(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	tr := &triplet{beamed: true, place: score.BeamPlaceAbove}
	tr.build()
	e := New(tr.b.Doc, nil, nil)
	require.NoError(t, e.Run())
	tuplet := tr.b.Doc.Tuplet(tr.tuplet)
	assert.Equal(t, tr.beam, tuplet.BracketAlignedBeam)
	assert.Equal(t, tr.beam, tuplet.NumAlignedBeam)
	yLeft, err := e.BracketYLeft(tr.bracket)
	require.NoError(t, err)
	assert.Equal(t, dimen.Dimen(455), yLeft)
	yRight, err := e.BracketYRight(tr.bracket)
	require.NoError(t, err)
	assert.Equal(t, dimen.Dimen(951), yRight)
	y, err := e.NumYMid(tr.num)
	require.NoError(t, err)
	assert.Equal(t, dimen.Dimen(703), y)
}

func TestTupletNumWithoutBracket(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	for _, c := range []struct {
		place score.BeamPlace
		x     dimen.Dimen
	}{
		{score.BeamPlaceAbove, 1559},
		{score.BeamPlaceBelow, 1453},
	} {
		tr := &triplet{beamed: true, place: c.place, noBrckt: true}
		tr.build()
		e := New(tr.b.Doc, nil, nil)
		require.NoError(t, e.Run())
		assert.Equal(t, score.NoNode, tr.b.Doc.TupletNum(tr.num).AlignedBracket())
		x, err := e.NumXMid(tr.num)
		require.NoError(t, err)
		assert.Equal(t, c.x, x, "beam place %d", c.place)
		y, err := e.NumYMid(tr.num)
		require.NoError(t, err)
		assert.Equal(t, dimen.Dimen(250), y)
	}
}

func TestInvisibleBracketIsNotAligned(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	for _, tr := range []*triplet{
		{bracketVisible: option.False},
		{numVisible: option.False},
	} {
		tr.build()
		require.NoError(t, New(tr.b.Doc, nil, nil).Run())
		assert.Equal(t, score.NoNode, tr.b.Doc.TupletNum(tr.num).AlignedBracket())
		assert.Equal(t, score.NoNode, tr.b.Doc.TupletBracket(tr.bracket).AlignedNum())
	}
}

func TestTupletResetUnlinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	tr := &triplet{beamed: true}
	tr.build()
	e := New(tr.b.Doc, nil, nil)
	require.NoError(t, e.Run())
	e.ResetHorizontalAlignment()
	tuplet := tr.b.Doc.Tuplet(tr.tuplet)
	assert.Equal(t, score.NoNode, tuplet.DrawingLeft)
	assert.Equal(t, score.NoNode, tuplet.NumAlignedBeam)
	assert.Equal(t, dimen.Zero, tr.b.Doc.TupletBracket(tr.bracket).XRelRight)
	assert.Equal(t, score.NoNode, tr.b.Doc.TupletNum(tr.num).AlignedBracket())
	_, err := e.BracketXLeft(tr.bracket)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestEmptyTuplet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	tuplet := b.Tuplet(l, 3, 2)
	num := b.TupletNum(tuplet, 0, option.BoolNone)
	e := New(b.Doc, nil, nil)
	err := e.Run()
	assert.Equal(t, []int{core.EINVALID}, errorCodes(err))
	_, err = e.NumXMid(num)
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = e.NumXMid(tuplet)
	assert.Equal(t, core.EINVALID, core.Code(err))
}
