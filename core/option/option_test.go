package option_test

import (
	"testing"

	"github.com/npillmayer/engrave/core/option"
	"github.com/stretchr/testify/assert"
)

func TestOptionInt(t *testing.T) {
	x := option.SomeInt(0)
	assert.False(t, x.IsNone())
	assert.Equal(t, 0, x.Unwrap())
	//
	y := option.Int()
	assert.True(t, y.IsNone())
	assert.Equal(t, 7, y.UnwrapOr(7))
	assert.Equal(t, "Int.None", y.String())
	assert.Panics(t, func() { y.Unwrap() })
}

func TestOptionBool(t *testing.T) {
	var b option.BoolT
	assert.True(t, b.IsNone())
	assert.False(t, b.IsTrue())
	assert.False(t, b.IsFalse())
	b = option.SomeBool(false)
	assert.True(t, b.IsFalse())
	assert.Equal(t, option.False, b)
	assert.Equal(t, "false", b.String())
}
