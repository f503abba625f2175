/*
Package functor implements the traversal framework driving layout passes.

A pass is a Visitor. Process walks a score tree in document order
(pre-order, children left to right) and dispatches every node to the
visitor method for its kind. The returned Code controls the walk:
Continue descends into the children, Siblings skips the children of the
node and Stop aborts the whole traversal.

Passes keep their mutable context (current staff, running offsets, …) in
the visitor value itself. A visitor lives for one invocation of Process
and is discarded afterwards.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package functor

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'engrave.functor'.
func tracer() tracing.Trace {
	return tracing.Select("engrave.functor")
}
