/*
Package otfont is the concrete core/mathfont.Font implementation over a
real font file. It wraps golang.org/x/image/font/sfnt for cmap, hmtx and
general glyph-outline access — one of the two backends tyse's own
core/font package chooses between — and adds its own small MATH-table
reader (math.go) for the subtables sfnt doesn't surface, since the
OpenType MATH table is specific to math typesetting and out of scope
for a general glyph-outline library.

Grounded on tyse's core/font/font.go and core/font/ot package (trace()
idiom, byte-segment table navigation) and on
original_source/src/font/backend/font.rs (the exact shape of the
MathFont contract this package fulfills).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package otfont

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// trace returns the module-wide tracer, following tyse's per-package
// trace() convention so call sites read `trace().Debugf(...)` uniformly.
func trace() tracing.Trace {
	return gtrace.CoreTracer
}
