/*
Package font answers glyph metric queries for music fonts.

Music glyphs follow the Standard Music Font Layout (SMuFL). A SMuFL font is
designed with an em of four staff spaces, i.e. the height of a five-line
staff. Metrics are therefore kept in staff spaces and scaled to drawing
units for a given staff size.

Two providers are available: a built-in table (StaticMetrics), sufficient
for layout without any font file, and SFNTMetrics, which reads glyph
bounds from an OpenType SMuFL font.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'engrave.font'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.font")
}
