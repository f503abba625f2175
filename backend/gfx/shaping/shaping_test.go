package shaping

import (
	"testing"

	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/engrave/backend/gfx"
	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/dimen"
	"github.com/npillmayer/engrave/core/percent"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

func TestShaperExtent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	s, err := NewShaper(goregular.TTF, 0)
	require.NoError(t, err)
	w, h := s.Extent("", percent.Full)
	assert.Equal(t, dimen.Dimen(0), w)
	assert.Equal(t, DefaultEm, h)
	wide, _ := s.Extent("WW", percent.Full)
	narrow, _ := s.Extent("ii", percent.Full)
	assert.Greater(t, int(wide), int(narrow), "glyphs are proportional")
	assert.Greater(t, int(narrow), 0)
	small, em := s.Extent("WW", percent.Percent(50))
	assert.Equal(t, DefaultEm/2, em)
	assert.InDelta(t, float64(wide/2), float64(small), 2)
}

func TestShaperIsTextMeasurer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	s, err := NewShaper(goregular.TTF, 200)
	require.NoError(t, err)
	rec := gfx.NewRecorder()
	rec.Estimator = s
	w, h := rec.TextExtent("la", percent.Full)
	assert.Equal(t, dimen.Dimen(200), h)
	assert.Equal(t, dimen.Dimen(s.Advance("la")*200/s.upem), w)
}

func TestBrokenFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	_, err := NewShaper([]byte("no font"), 0)
	require.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestSegmentProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	und := segmentProperties(language.Und)
	assert.Equal(t, hb.LeftToRight, und.Direction)
	assert.Equal(t, hblang.Latin, und.Script)
	ru := segmentProperties(language.Russian)
	assert.Equal(t, hblang.Cyrillic, ru.Script)
	assert.Equal(t, hblang.NewLanguage("ru"), ru.Language)
}

func TestShaperWithLanguage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	s, err := NewShaper(goregular.TTF, 0)
	require.NoError(t, err)
	und := s.Advance("Kyrie")
	s.Language = language.MustParse("la")
	assert.Greater(t, und, 0)
	assert.Equal(t, und, s.Advance("Kyrie"), "Go Regular has no Latin-specific forms")
}
