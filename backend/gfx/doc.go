/*
Package gfx defines the boundary between the layout engine and graphics
backends.

Drawing code emits its output to a DeviceContext: grouping markers for
graphic elements, thick cubic bezier curves and filled rectangles. All
coordinates are in drawing units with the y-axis pointing upwards; a
backend is responsible for flipping and scaling them to its own device
space.

Recorder is a DeviceContext which keeps every call for later inspection.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package gfx

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'engrave.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.gfx")
}
