package scoreyaml

import (
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/engrave/engine/score"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSystems = `
unit: 90
systems:
  - y: 0
    measures:
      - x: 1000
        width: 6000
        staves:
          - n: 1
            layers:
              - n: 1
                stemdir: down
                elements:
                  - note: {id: n1, x: 200, loc: 2, dur: "4", dots: 1}
                  - chord:
                      id: c1
                      x: 800
                      dur: "2"
                      notes:
                        - {id: c1a, loc: 0}
                        - {id: c1b, loc: 4}
                  - beam:
                      startx: 1500
                      starty: 300
                      slope: 0.5
                      place: above
                      elements:
                        - note: {x: 500, loc: 4, dur: "8"}
                        - note: {x: 800, loc: 5, dur: "8", stem: {len: 7}}
        spanning:
          - slur: {id: s1, start: n1, end: n2, curvedir: above, bulge: 2}
          - syl: {start: n1, end: c1b, text: "la", con: d}
  - y: -3000
    measures:
      - x: 1000
        width: 6000
        staves:
          - n: 1
            size: 75
            layers:
              - n: 1
                elements:
                  - note: {id: n2, x: 500, loc: 3, dur: "8"}
                  - rest: {x: 900, loc: 4, dur: "4"}
`

func TestLoadStructure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.scoreyaml")
	defer teardown()
	//
	doc, err := Load(strings.NewReader(twoSystems))
	require.NoError(t, err)
	require.Len(t, doc.Systems(), 2)
	n1 := doc.ByXMLID("n1")
	require.NotEqual(t, score.NoNode, n1)
	assert.Equal(t, dimen.Dimen(1200), doc.DrawingX(n1))
	assert.Equal(t, dimen.Dimen(-540), doc.DrawingY(n1))
	assert.Equal(t, 1, doc.Note(n1).Dots)
	assert.Equal(t, score.StemDown, doc.Layer(doc.FirstAncestor(n1, score.KindLayer)).StemDir)
	//
	c1 := doc.ByXMLID("c1")
	assert.Equal(t, c1, doc.ChordOf(doc.ByXMLID("c1b")))
	assert.Equal(t, score.Dur2, doc.Chord(c1).Dur)
	//
	beams := doc.FindAllDescendants(doc.Root(), score.KindBeam)
	require.Len(t, beams, 1)
	assert.Equal(t, score.BeamPlaceAbove, doc.Beam(beams[0]).Place)
	notes := doc.FindAllDescendants(beams[0], score.KindNote)
	require.Len(t, notes, 2)
	stem := doc.Stem(doc.FirstChild(notes[1], score.KindStem))
	assert.Equal(t, 7, stem.Len.Unwrap())
	//
	n2 := doc.ByXMLID("n2")
	assert.Equal(t, percent.Percent(75), doc.Staff(doc.FirstAncestor(n2, score.KindStaff)).Size)
	assert.Equal(t, dimen.Dimen(-3000-5*67), doc.DrawingY(n2), "positions scale with the staff")
	assert.Len(t, doc.FindAllDescendants(doc.Root(), score.KindRest), 1)
}

func TestLoadSpanning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.scoreyaml")
	defer teardown()
	//
	doc, err := Load(strings.NewReader(twoSystems))
	require.NoError(t, err)
	slur := doc.ByXMLID("s1")
	require.True(t, doc.Is(slur, score.KindSlur))
	sp := doc.Spanning(slur)
	assert.Equal(t, doc.ByXMLID("n1"), sp.Start)
	assert.Equal(t, doc.ByXMLID("n2"), sp.End, "anchors may follow the measure")
	assert.Equal(t, score.CurveAbove, sp.CurveDir)
	assert.Equal(t, 2, sp.Bulge.Unwrap())
	syls := doc.FindAllDescendants(doc.Root(), score.KindSyl)
	require.Len(t, syls, 1)
	syl := doc.Syl(syls[0])
	assert.Equal(t, "la", syl.Text)
	assert.Equal(t, 1, syl.Verse)
	assert.Equal(t, score.ConDash, syl.Con)
}

func TestLoadMensuralAndNeumes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.scoreyaml")
	defer teardown()
	//
	doc, err := Load(strings.NewReader(`
systems:
  - measures:
      - staves:
          - n: 1
            notation: mensural.black
            layers:
              - n: 1
                elements:
                  - ligature:
                      form: obliqua
                      notes:
                        - {loc: 4, dur: breve}
                        - {loc: 2, dur: breve}
          - n: 2
            notation: neume
            layers:
              - n: 1
                elements:
                  - neume:
                      x: 100
                      ncs:
                        - {pname: g, oct: 3}
                        - {pname: b, oct: 3, ligated: true, liquescent: true}
`))
	require.NoError(t, err)
	ligs := doc.FindAllDescendants(doc.Root(), score.KindLigature)
	require.Len(t, ligs, 1)
	assert.Equal(t, score.LigatureObliqua, doc.Ligature(ligs[0]).Form)
	assert.Equal(t, score.NotationMensuralBlack, doc.Staff(doc.FirstAncestor(ligs[0], score.KindStaff)).Notation)
	ncs := doc.FindAllDescendants(doc.Root(), score.KindNc)
	require.Len(t, ncs, 2)
	assert.Equal(t, 4, doc.Nc(ncs[0]).PName)
	assert.True(t, doc.Nc(ncs[1]).Ligated.IsTrue())
	assert.NotEqual(t, score.NoNode, doc.FirstChild(ncs[1], score.KindLiquescent))
}

func TestLoadReportsMalformedElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.scoreyaml")
	defer teardown()
	//
	doc, err := Load(strings.NewReader(`
systems:
  - measures:
      - staves:
          - n: 1
            layers:
              - n: 1
                elements:
                  - note: {id: a, dur: "3"}
                  - note: {id: a}
                  - {}
        spanning:
          - tie: {start: a, end: nowhere}
`))
	require.Error(t, err)
	require.NotNil(t, doc)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	var codes []int
	for _, e := range merr.Errors {
		codes = append(codes, core.Code(e))
	}
	assert.Equal(t, []int{core.EINVALID, core.EINVALID, core.EINVALID, core.EMISSING}, codes)
	assert.Len(t, doc.FindAllDescendants(doc.Root(), score.KindTie), 1)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.scoreyaml")
	defer teardown()
	//
	_, err := Load(strings.NewReader("systems:\n  - z: 1\n"))
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestLoadSystemStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.scoreyaml")
	defer teardown()
	//
	fixture := `
systems:
  - y: 0
    style: {slurthickness: "10", tiethickness: thick}
    measures:
      - x: 1000
        width: 4000
`
	doc, err := Load(strings.NewReader(fixture))
	require.NotNil(t, doc)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 1)
	assert.Equal(t, core.EINVALID, core.Code(merr.Errors[0]))
	sys := doc.Systems()[0]
	assert.Equal(t, map[string]string{"slurthickness": "10"}, doc.System(sys).Style)
}
