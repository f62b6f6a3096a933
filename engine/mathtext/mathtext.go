/*
Package mathtext ties the lexer, macro expander, parser, and layout
engine into the single concurrency-safe unit spec §5 describes: an
Engine holding nothing but an immutable font reference and a default
style/size, whose Typeset method runs one formula through the whole
pipeline and hands back a positioned layout tree ready for
engine/mathtext/render.

Grounded on engine/khipu's pipeline-holds-immutable-resources pattern
(khipukamayuq.go's TypesettingPipeline holding a font/registers
reference reused across many KnotEncode calls) — Engine plays the same
role here, but for math formulas rather than paragraphs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package mathtext

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/mathtyp/core/mathfont"
	"github.com/npillmayer/mathtyp/engine/mathtext/layout"
	"github.com/npillmayer/mathtyp/engine/mathtext/macro"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// Engine is the concurrency-safe unit spec §5 names: an immutable font
// reference plus a default style and size. Multiple Engines may share
// the same Font by reference and run Typeset concurrently — an Engine
// holds no package-level or cross-call mutable state of its own.
type Engine struct {
	font       mathfont.Font
	style      layout.Style
	fontSizePx float64
	macros     *macro.Collection
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithStyle sets the style every Typeset call starts from (default
// layout.Display).
func WithStyle(style layout.Style) Option {
	return func(e *Engine) { e.style = style }
}

// WithMacros installs a macro.Collection of `\newcommand`-style
// definitions consulted before parsing (spec §4.2). Without this option
// macro expansion is skipped entirely — a plain collection with nothing
// defined behaves identically, but skipping it avoids the pass.
func WithMacros(macros *macro.Collection) Option {
	return func(e *Engine) { e.macros = macros }
}

// New builds an Engine over font at fontSizePx pixels-per-em. font is
// borrowed for the lifetime of every layout tree Typeset returns (spec
// §9's "borrowed references" note) and must outlive them.
func New(font mathfont.Font, fontSizePx float64, opts ...Option) *Engine {
	e := &Engine{font: font, fontSizePx: fontSizePx, style: layout.Display}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Typeset runs src through macro expansion (if an Option installed a
// Collection), the parser, and the layout engine, returning one
// HorizontalBox layout tree summarizing the whole formula. A formula
// that fails to parse or lay out produces no layout — spec §7's
// user-visible contract — and the error should be surfaced to the
// caller as-is (it carries an AppError code distinguishing EPARSE from
// ELAYOUT/EFONT).
func (e *Engine) Typeset(src string) (*layout.Layout, error) {
	if e.macros != nil {
		expanded, err := e.macros.Expand(src)
		if err != nil {
			return nil, err
		}
		src = expanded
	}

	nodes, err := parse.New(src).ParseFormula()
	if err != nil {
		trace().Errorf("mathtext: parse failed: %v", err)
		return nil, err
	}

	lay, err := layout.Typeset(nodes, e.style, e.font, e.fontSizePx)
	if err != nil {
		trace().Errorf("mathtext: layout failed: %v", err)
		return nil, err
	}
	return &lay, nil
}

// Font returns the Engine's immutable font reference.
func (e *Engine) Font() mathfont.Font {
	return e.font
}
