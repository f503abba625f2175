/*
Package view draws spanning elements of a laid-out score.

Slurs, ties and lyric syllable connectors reference a start and an end
element which may live in different systems. When drawing a system, each
spanning element touching it is classified by which of its anchors belong
to the system, and is drawn from anchor to anchor, from its start to the
end of the system, from the start of the system to its end, or across the
whole system.

Drawing positions of anchors have to be final before a view draws a
system; run the layout engine first.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package view

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'engrave.view'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.view")
}
