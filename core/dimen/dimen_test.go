package dimen

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.core")
	defer teardown()
	//
	d, _, err := ParseDimen("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if d != 12*PX {
		t.Errorf("(1) expected d to be 12px (%d), is %d", 12*PX, d)
	}
	//
	d, _, err = ParseDimen("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if d != 0 {
		t.Errorf("(2) expected d to be 0, is %d", d)
	}
	//
	_, ispcnt, err := ParseDimen("20%")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if ispcnt != true {
		t.Errorf("(3) expected percentage-marker to be true, is %v", ispcnt)
	}
	//
	_, _, err = ParseDimen("12pt")
	assert.Error(t, err)
}

func TestRotateRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.core")
	defer teardown()
	//
	center := P(100, 100)
	p := P(300, 100)
	r := Rotate(p, math.Pi/2, center)
	assert.Equal(t, P(100, 300), r)
	back := Rotate(r, -math.Pi/2, center)
	assert.InDelta(t, 300, int(back.X), 1)
	assert.InDelta(t, 100, int(back.Y), 1)
}

func TestAngleAndAbs(t *testing.T) {
	assert.InDelta(t, math.Pi/4, Angle(P(0, 0), P(10, 10)), 1e-9)
	assert.Equal(t, Dimen(5), Abs(Dimen(-5)))
	assert.Equal(t, 7, Abs(7))
	assert.Equal(t, Dimen(3), Min(3, 4))
	assert.Equal(t, Dimen(4), Max(3, 4))
}

func TestRectHeightYUp(t *testing.T) {
	r := Rect{TopL: P(0, 50), BotR: P(20, 10)}
	assert.Equal(t, Dimen(20), r.Width())
	assert.Equal(t, Dimen(40), r.Height())
}
