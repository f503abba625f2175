/*
Command engrave lays out score fixtures and draws their spanning elements.

	engrave layout score.yaml            # run layout passes, list stems and advisories
	engrave render -o out score.yaml     # draw every system into a PNG file
	engrave dot score.yaml | dot -Tsvg   # dump the laid-out tree for Graphviz

Engraving parameters are read from a configuration file (--config, keys
"engrave.<parameter>"), from the environment (ENGRAVE_<PARAMETER>) or from
a parameter style sheet (--style).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'engrave.cli'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.cli")
}

func main() {
	Execute()
}
