/*
Package score implements the object tree of an engraved score.

A score is a hierarchy of document, pages, systems, measures, staves and
layers, holding layer elements such as notes, chords, rests, beams,
tuplets, ligatures and neumes. Slurs, ties and lyric syllables are
"spanning" elements: they are attached to the measure they were encoded in
and reference a start and an end element, which may live in different
systems.

Nodes live in an arena owned by a Document and are addressed by NodeID
handles. Parent links and all lateral references (tuplet boundaries, beam
alignment, bracket and number alignment, spanning anchors) are plain
handles, never ownership.

Drawing positions are stored relative to the parent node and composed
lazily (DrawingX, DrawingY). The y-axis points upwards.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package score

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'engrave.score'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.score")
}
