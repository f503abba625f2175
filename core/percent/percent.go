// Package percent implements a simple and straightforward type for percentage
// values, as used for staff sizes and cue/grace scaling.
package percent

import (
	"strconv"
	"strings"

	"github.com/npillmayer/engrave/core/dimen"
)

// Percent is a simple and straightforward type for percentage values.
// Values are clamped to [0…Max]; staff sizes larger than 100% are legal.
type Percent uint16

// Max is the largest percentage value representable.
const Max Percent = 400

// Full is 100%, the size of a regular staff.
const Full Percent = 100

func FromInt(n int) Percent {
	switch {
	case n <= 0:
		return Percent(0)
	case n >= int(Max):
		return Max
	}
	return Percent(n)
}

func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	n, err := strconv.Atoi(s)
	if err != nil {
		return Full, err
	}
	return FromInt(n), nil
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}

// Scale applies the percentage to a dimension. Integer arithmetic truncates
// towards zero.
func (p Percent) Scale(d dimen.Dimen) dimen.Dimen {
	return d * dimen.Dimen(p) / 100
}
