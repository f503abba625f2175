/*
Package scoreyaml reads score trees from YAML fixtures.

A fixture describes systems, measures, staves and layers with their
elements at precomputed positions, the way an upstream horizontal layout
would have left them. Positions are in drawing units. Spanning elements
are listed per measure and reference their anchors by id:

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
	                elements:
	                  - note: {id: n1, x: 200, loc: 2, dur: "4"}
	                  - note: {id: n2, x: 1200, loc: 2, dur: "4"}
	        spanning:
	          - slur: {start: n1, end: n2}

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scoreyaml

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'engrave.scoreyaml'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.scoreyaml")
}
