package layout

import (
	"testing"

	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/engrave/engine/score"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Metrics used throughout: unit 90, double unit 180, stem width 18. A
// staff at y=0 has its vertical center at -360; loc 4 is the middle line.

func newLayer(opts ...score.StaffOption) (*score.Builder, score.NodeID, score.NodeID) {
	b := score.NewBuilder(90)
	sys := b.System(0)
	m := b.Measure(sys, 1000, 6000)
	st := b.Staff(m, 1, 0, opts...)
	return b, m, b.Layer(st, 1)
}

func stemOf(doc *score.Document, id score.NodeID) (*score.Node, *score.Stem) {
	s := doc.FirstChild(id, score.KindStem)
	return doc.Node(s), doc.Stem(s)
}

func flagOf(doc *score.Document, id score.NodeID) (*score.Node, *score.Flag) {
	s := doc.FirstChild(id, score.KindStem)
	f := doc.FirstChild(s, score.KindFlag)
	return doc.Node(f), doc.Flag(f)
}

func TestStemDown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	n := b.Note(l, 100, 4, score.Dur4)
	require.NoError(t, New(b.Doc, nil, nil).Run())
	node, stem := stemOf(b.Doc, n)
	assert.Equal(t, score.StemDown, stem.DrawingDir)
	assert.Equal(t, score.StemDown, b.Doc.Note(n).DrawingStemDir)
	assert.Equal(t, dimen.Dimen(600), stem.DrawingLen)
	assert.Equal(t, dimen.Dimen(9), node.XRel)
	assert.Equal(t, dimen.Dimen(-30), node.YRel)
}

func TestStemUp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	n := b.Note(l, 100, 2, score.Dur4)
	require.NoError(t, New(b.Doc, nil, nil).Run())
	node, stem := stemOf(b.Doc, n)
	assert.Equal(t, score.StemUp, stem.DrawingDir)
	assert.Equal(t, dimen.Dimen(-600), stem.DrawingLen)
	assert.Equal(t, dimen.Dimen(203), node.XRel)
	assert.Equal(t, dimen.Dimen(30), node.YRel)
}

func TestStemDirectionPriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	b.Doc.Layer(l).StemDir = score.StemUp
	byLayer := b.Note(l, 100, 6, score.Dur4)
	authored := b.Note(l, 400, 2, score.Dur4, score.WithStemDir(score.StemDown))
	require.NoError(t, New(b.Doc, nil, nil).Run())
	_, s1 := stemOf(b.Doc, byLayer)
	_, s2 := stemOf(b.Doc, authored)
	assert.Equal(t, score.StemUp, s1.DrawingDir)
	assert.Equal(t, score.StemDown, s2.DrawingDir)
}

func TestStemZeroForLongDurations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	for _, size := range []percent.Percent{percent.Full, 75} {
		b, _, l := newLayer(score.WithStaffSize(size))
		var notes []score.NodeID
		for _, dur := range []score.Duration{score.DurLonga, score.DurBreve, score.Dur1} {
			notes = append(notes, b.Note(l, 100, 2, dur))
			notes = append(notes, b.Note(l, 300, -4, dur, score.AsCue()))
			notes = append(notes, b.Note(l, 500, 4, dur, score.WithStemLen(6)))
		}
		require.NoError(t, New(b.Doc, nil, nil).Run())
		for _, n := range notes {
			node, stem := stemOf(b.Doc, n)
			assert.Equal(t, dimen.Zero, stem.DrawingLen, "note %d at %s", n, size)
			assert.Equal(t, dimen.Zero, node.XRel)
			assert.Equal(t, dimen.Zero, node.YRel)
		}
	}
}

func TestStemReachesCenter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	low := b.Note(l, 100, -6, score.Dur4)
	grace := b.Note(l, 400, -6, score.Dur4, score.AsGrace())
	e := New(b.Doc, nil, nil)
	require.NoError(t, e.Run())
	node, stem := stemOf(b.Doc, low)
	assert.Equal(t, dimen.Dimen(-870), stem.DrawingLen)
	assert.Equal(t, dimen.Dimen(-360), b.Doc.DrawingY(node.ID)-stem.DrawingLen, "stem ends at the center")
	_, gstem := stemOf(b.Doc, grace)
	assert.Greater(t, int(gstem.DrawingLen), -870, "grace notes keep their length")
}

func TestAuthoredStemLength(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	n := b.Note(l, 100, -6, score.Dur4, score.WithStemLen(5), score.WithStemDir(score.StemUp))
	zero := b.Note(l, 400, 2, score.Dur8, score.WithStemLen(0))
	require.NoError(t, New(b.Doc, nil, nil).Run())
	_, stem := stemOf(b.Doc, n)
	assert.Equal(t, dimen.Dimen(-420), stem.DrawingLen, "no correction for authored lengths")
	znode, zstem := stemOf(b.Doc, zero)
	assert.Equal(t, dimen.Zero, zstem.DrawingLen)
	assert.Equal(t, dimen.Zero, znode.XRel)
	_, flag := flagOf(b.Doc, zero)
	assert.Equal(t, 0, flag.Count)
}

func TestCueStem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	n := b.Note(l, 100, 2, score.Dur4, score.AsCue())
	require.NoError(t, New(b.Doc, nil, nil).Run())
	node, stem := stemOf(b.Doc, n)
	assert.Equal(t, dimen.Dimen(-450), stem.DrawingLen)
	assert.Equal(t, dimen.Dimen(150), node.XRel)
	assert.Equal(t, dimen.Dimen(22), node.YRel)
}

func TestChordStem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	chord := b.Chord(l, 100, score.Dur4)
	b.ChordNote(chord, 2)
	tone := b.ChordNote(chord, 6)
	require.NoError(t, New(b.Doc, nil, nil).Run())
	node, stem := stemOf(b.Doc, chord)
	assert.Equal(t, score.StemUp, stem.DrawingDir)
	assert.Equal(t, dimen.Dimen(-960), stem.DrawingLen)
	assert.Equal(t, dimen.Dimen(-510), node.YRel)
	assert.Equal(t, score.StemUp, b.Doc.NoteStemDir(tone))
}

func TestStemModifiers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	five := b.Note(l, 100, 2, score.Dur4, score.WithStemMod(score.StemMod5Slash))
	six := b.Note(l, 400, 2, score.Dur4, score.WithStemMod(score.StemMod6Slash))
	sprech := b.Note(l, 700, 2, score.Dur4, score.WithStemMod(score.StemModSprech))
	btrem := b.BTrem(l, score.StemMod5Slash)
	inTrem := b.Note(btrem, 1000, 2, score.Dur4)
	require.NoError(t, New(b.Doc, nil, nil).Run())
	_, s := stemOf(b.Doc, five)
	assert.Equal(t, dimen.Dimen(-960), s.DrawingLen)
	_, s = stemOf(b.Doc, six)
	assert.Equal(t, dimen.Dimen(-1111), s.DrawingLen)
	_, s = stemOf(b.Doc, sprech)
	assert.Equal(t, dimen.Dimen(-600), s.DrawingLen, "only slashes lengthen stems")
	_, s = stemOf(b.Doc, inTrem)
	assert.Equal(t, dimen.Dimen(-960), s.DrawingLen)
}

func TestFlagCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	durs := []score.Duration{score.Dur8, score.Dur16, score.Dur32, score.Dur64,
		score.Dur128, score.Dur256, score.Dur512, score.Dur1024}
	var notes []score.NodeID
	for i, dur := range durs {
		notes = append(notes, b.Note(l, dimen.Dimen(100+300*i), 2+i%5, dur))
	}
	sameas := b.Note(l, 3000, 2, score.Dur16, score.AsStemSameasSecondary())
	hidden := b.Note(l, 3300, 2, score.Dur16, score.WithHiddenStem())
	require.NoError(t, New(b.Doc, nil, nil).Run())
	for i, n := range notes {
		_, flag := flagOf(b.Doc, n)
		assert.Equal(t, int(durs[i]-score.Dur4), flag.Count)
	}
	_, flag := flagOf(b.Doc, sameas)
	assert.Equal(t, 0, flag.Count)
	_, flag = flagOf(b.Doc, hidden)
	assert.Equal(t, 0, flag.Count)
}

func TestFlagFollowsStem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	for i, loc := range []int{-8, -4, 0, 2, 4, 6, 9, 12, 16} {
		for j, dur := range []score.Duration{score.Dur8, score.Dur16, score.Dur32, score.Dur128} {
			x := dimen.Dimen(100 + 200*(4*i+j))
			b.Note(l, x, loc, dur)
			b.Note(l, x, loc, dur, score.AsGrace())
			b.Note(l, x, loc, dur, score.WithStemMod(score.StemMod3Slash))
		}
	}
	chord := b.Chord(l, 9000, score.Dur16)
	b.ChordNote(chord, 11)
	b.ChordNote(chord, 14)
	require.NoError(t, New(b.Doc, nil, nil).Run())
	for _, f := range b.Doc.FindAllDescendants(b.Doc.Root(), score.KindFlag) {
		stem := b.Doc.Stem(b.Doc.Parent(f))
		assert.Equal(t, -stem.DrawingLen, b.Doc.Node(f).YRel)
	}
}

func TestFlagClearsLedgerLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	n := b.Note(l, 100, 12, score.Dur8)
	require.NoError(t, New(b.Doc, nil, nil).Run())
	_, stem := stemOf(b.Doc, n)
	assert.Equal(t, score.StemDown, stem.DrawingDir)
	assert.Equal(t, dimen.Dimen(780), stem.DrawingLen)
	fnode, flag := flagOf(b.Doc, n)
	assert.Equal(t, 1, flag.Count)
	assert.Equal(t, dimen.Dimen(-780), fnode.YRel)
}

func TestBeamedNotesTakeBeamDirection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	beam := b.Beam(l, score.BeamSegment{StartX: 1100, StartY: 600}, score.BeamPlaceAbove)
	n := b.Note(beam, 100, 8, score.Dur8)
	require.NoError(t, New(b.Doc, nil, nil).Run())
	_, stem := stemOf(b.Doc, n)
	assert.Equal(t, score.StemUp, stem.DrawingDir)
	assert.Equal(t, dimen.Zero, stem.DrawingLen, "beam draws the stem")
}

func TestOrphanStemIsReported(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.layout")
	defer teardown()
	//
	b, _, l := newLayer()
	b.Doc.Add(l, score.KindStem, score.NewStem())
	b.Note(l, 100, 2, score.Dur4)
	err := New(b.Doc, nil, nil).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no note or chord")
}
