// Package dimen implements drawing units, points and rectangles for the
// layout engine.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Dimen is a dimension type.
// Values are in drawing units, i.e. pixels multiplied by DefinitionFactor.
// The y-axis points upwards: a larger y is higher on the page.
type Dimen int32

// DefinitionFactor is the number of drawing units per pixel. Thicknesses
// configured in tenths of a staff unit are divided by it.
const DefinitionFactor = 10

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	DU   Dimen = 1                     // drawing unit
	PX   Dimen = DefinitionFactor      // pixel
	IN   Dimen = 96 * DefinitionFactor // inch, at 96 px per inch
	MM   Dimen = 38                    // millimeters, rounded
)

// Infinity is the largest possible dimension
const Infinity = math.MaxInt32

// Stringer implementation.
func (d Dimen) String() string {
	return fmt.Sprintf("%ddu", int32(d))
}

// Pixels returns a dimension in (fractional) pixels.
func (d Dimen) Pixels() float64 {
	return float64(d) / float64(PX)
}

// Point is a point on a page.
type Point struct {
	X, Y Dimen
}

// Origin is origin
var Origin = Point{0, 0}

// P is a shortcut for creating a point.
func P(x, y Dimen) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", int32(p.X), int32(p.Y))
}

// Angle returns the angle of the vector p1→p2 against the x-axis, in radians.
func Angle(p1, p2 Point) float64 {
	return math.Atan2(float64(p2.Y-p1.Y), float64(p2.X-p1.X))
}

// Rotate rotates point p by alpha (radians) around center. Coordinates of the
// result are truncated towards zero, not rounded.
func Rotate(p Point, alpha float64, center Point) Point {
	dx := float64(p.X - center.X)
	dy := float64(p.Y - center.Y)
	s, c := math.Sin(alpha), math.Cos(alpha)
	x := float64(center.X) + dx*c - dy*s
	y := float64(center.Y) + dx*s + dy*c
	return Point{X: Dimen(x), Y: Dimen(y)}
}

// Rect is a rectangle (on a page).
type Rect struct {
	TopL, BotR Point
}

// Width returns the width of a rectangle, i.e. the difference between x-coordinates
// of bottom-right and top-left corner.
func (r Rect) Width() Dimen {
	return r.BotR.X - r.TopL.X
}

// Height returns the height of a rectangle. As the y-axis points upwards,
// this is the difference between the y-coordinates of top-left and bottom-right.
func (r Rect) Height() Dimen {
	return r.TopL.Y - r.BotR.Y
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+)(%|du|px|mm|in)?$`)

// ParseDimen parses a string to return a dimension.
// If a percentage value is given (`80%`), the second return value will be true.
func ParseDimen(s string) (Dimen, bool, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, false, errors.New("format error parsing dimension")
	}
	scale := DU
	ispcnt := false
	if len(d) > 2 {
		switch d[2] {
		case "px":
			scale = PX
		case "mm":
			scale = MM
		case "in":
			scale = IN
		case "du", "":
			scale = DU
		case "%":
			scale, ispcnt = 1, true
		default:
			return 0, false, errors.New("format error parsing dimension")
		}
	}
	n, err := strconv.Atoi(d[1])
	if err != nil {
		return 0, false, errors.New("format error parsing dimension")
	}
	return Dimen(n) * scale, ispcnt, nil
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}

// Abs returns the absolute value of a signed quantity.
func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
