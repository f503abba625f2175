package option

import (
	"math"
	"strconv"
)

// Type is a type for optional values.
type Type interface {
	IsNone() bool
}

// --- IntT ------------------------------------------------------------------

// IntT is an option type for int32 quantities.
type IntT int32

// IntNone is used as an in-band null value for optional integers.
const IntNone int32 = math.MinInt32

// SomeInt creates an optional integer with an initial value of x.
func SomeInt(x int) IntT {
	return IntT(x)
}

// Int creates an optional integer without an initial value.
func Int() IntT {
	return IntT(IntNone)
}

// Unwrap returns the value of o. It must not be called for unset values.
func (o IntT) Unwrap() int {
	if o.IsNone() {
		panic("option: unwrap of unset integer")
	}
	return int(o)
}

// UnwrapOr returns the value of o or dflt if o is unset.
func (o IntT) UnwrapOr(dflt int) int {
	if o.IsNone() {
		return dflt
	}
	return int(o)
}

// IsNone returns true if o is unset.
func (o IntT) IsNone() bool {
	return o == IntT(IntNone)
}

func (o IntT) String() string {
	if o.IsNone() {
		return "Int.None"
	}
	return strconv.Itoa(int(o))
}

// --- BoolT -----------------------------------------------------------------

// BoolT is a tri-state boolean: unset, true or false.
type BoolT uint8

const (
	BoolNone BoolT = iota
	True
	False
)

// SomeBool creates an optional boolean with an initial value of b.
func SomeBool(b bool) BoolT {
	if b {
		return True
	}
	return False
}

// IsNone returns true if o is unset.
func (o BoolT) IsNone() bool {
	return o == BoolNone
}

// IsTrue is true only if o is set and true.
func (o BoolT) IsTrue() bool {
	return o == True
}

// IsFalse is true only if o is set and false.
func (o BoolT) IsFalse() bool {
	return o == False
}

func (o BoolT) String() string {
	switch o {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "Bool.None"
}

var _ Type = IntT(0)
var _ Type = BoolT(0)
