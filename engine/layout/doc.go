/*
Package layout computes drawing attributes of a score tree.

Layout runs as a fixed sequence of passes over the tree, each one a
functor.Visitor:

	ResetHorizontalAlignment   clears derived horizontal attributes and links
	ResetDrawing               clears derived drawing attributes
	CalcLigatureOrNeumePos     ligature shapes, neume glyphs and their offsets
	CalcStem                   stem directions, lengths, flags
	CalcTuplet                 tuplet boundaries, beam and bracket alignment

Later passes read what earlier ones have written, so the order is fixed.
Horizontal positions of layer elements and the geometry of beams are input
to this package.

A pass never fails as a whole. Elements which cannot be laid out (a
ligature without a staff, a stem without a note) are skipped and reported
as advisories; Engine.Run returns all advisories of a run aggregated into a
single error.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'engrave.layout'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.layout")
}
