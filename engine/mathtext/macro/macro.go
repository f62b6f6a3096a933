/*
Package macro implements user-defined commands (`\newcommand`): parsing
their `#1 ... #9`-style bodies into text/arg-slot chunks, and expanding
them back into source text before the main parser ever sees them.
Expansion happens eagerly, once, before parsing — the parser in
engine/mathtext/parse never special-cases a user macro, it only ever sees
already-substituted source (spec §2).

Grounded on original_source/src/parser/macros.rs's CustomCommand::parse /
apply state machine, translated from its ReadString/ReadNumber/
ReadStringEscape loop into an idiomatic Go byte-scanner. The guard braces
`apply` wraps every substituted argument in ("{}"+arg+"{}") are kept
verbatim: they are the only thing stopping `\newcommand{\wrap}{\lbrace#1\rbrace}`
applied to "a" from gluing into the unrelated control word "\lbracea".

Commands are looked up in a map. Their names are also kept in a
github.com/derekparker/trie prefix tree, the same dependency tyse's stack
ships, which Collection.Suggest searches for "did you mean" candidates.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package macro

import (
	"strconv"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/engine/mathtext/lexer"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// chunkKind tells a Command chunk apart: literal text, or a placeholder
// for the i-th argument (zero-indexed, even though \newcommand syntax is
// one-indexed).
type chunkKind int8

const (
	chunkText chunkKind = iota
	chunkArg
)

type chunk struct {
	kind chunkKind
	text string
	arg  int
}

// Command is a parsed `\newcommand` body: an ordered list of text/arg
// chunks plus the highest argument index referenced.
type Command struct {
	NArgs  int
	chunks []chunk
}

// Parse parses a command body of the form "... #1 ... #2 ..." into a
// Command, the way original_source/src/parser/macros.rs's
// CustomCommand::parse does: a three-state scan (plain text, escaped
// character, digit run after a '#'). Returns ok=false for a dangling '#'
// not followed by any digits.
func Parse(body string) (Command, bool) {
	const (
		stateText = iota
		stateEscape
		stateNumber
	)
	var chunks []chunk
	state := stateText
	start := 0
	argMax := 0

	flushText := func(end int) {
		if end > start {
			chunks = append(chunks, chunk{kind: chunkText, text: body[start:end]})
		}
	}

	i := 0
	for i < len(body) {
		c := body[i]
		switch state {
		case stateEscape:
			state = stateText
		case stateText:
			switch c {
			case '\\':
				state = stateEscape
			case '#':
				flushText(i)
				start = i + 1
				state = stateNumber
			}
		case stateNumber:
			if c < '0' || c > '9' {
				if i == start {
					return Command{}, false
				}
				n, err := strconv.Atoi(body[start:i])
				if err != nil {
					return Command{}, false
				}
				if n > argMax {
					argMax = n
				}
				chunks = append(chunks, chunk{kind: chunkArg, arg: n - 1})
				start = i
				switch c {
				case '\\':
					state = stateEscape
				case '#':
					start = i + 1
				default:
					state = stateText
				}
			}
		}
		i++
	}

	switch state {
	case stateText, stateEscape:
		flushText(len(body))
	case stateNumber:
		if len(body) == start {
			return Command{}, false
		}
		n, err := strconv.Atoi(body[start:])
		if err != nil {
			return Command{}, false
		}
		if n > argMax {
			argMax = n
		}
		chunks = append(chunks, chunk{kind: chunkArg, arg: n - 1})
	}

	return Command{NArgs: argMax, chunks: chunks}, true
}

// Apply substitutes args into cmd's chunks, wrapping every argument in an
// empty-group guard ("{}") on both sides so that concatenation can never
// accidentally fuse into a longer control word — the same guard
// macros.rs's apply() uses, for the same reason
// (`\newcommand{\wrap}[1]{\lbrace#1\rbrace}` applied to "a" must expand
// to "\lbrace{}a{}\rbrace{}", not "\lbracea\rbrace"); one more guard is
// appended after the last chunk. Panics if len(args) <
// cmd.NArgs, matching the Rust original's documented precondition — the
// caller (Collection.Expand) always checks arity first.
func (cmd Command) Apply(args []string) string {
	const guard = "{}"
	var sb strings.Builder
	for _, ch := range cmd.chunks {
		switch ch.kind {
		case chunkArg:
			sb.WriteString(guard)
			sb.WriteString(args[ch.arg])
			sb.WriteString(guard)
		case chunkText:
			sb.WriteString(ch.text)
		}
	}
	sb.WriteString(guard)
	return sb.String()
}

// Collection is a named set of user-defined commands, looked up through a
// map, plus a trie index over their names used for "unknown command, did
// you mean" suggestions.
type Collection struct {
	commands map[string]Command
	names    *trie.Trie
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		commands: make(map[string]Command),
		names:    trie.New(),
	}
}

// Define registers name with body, parsed as arity nArgs. Redefining an
// existing name fails (core.EINVALID), mirroring CommandCollection's
// insert-only-if-absent policy.
func (c *Collection) Define(name string, nArgs int, body string) error {
	if _, ok := c.commands[name]; ok {
		return core.Error(core.EINVALID, "macro: \\%s is already defined", name)
	}
	cmd, ok := Parse(body)
	if !ok {
		return core.Error(core.EPARSE, "macro: cannot parse body of \\%s", name)
	}
	if cmd.NArgs != nArgs {
		return core.Error(core.EINVALID,
			"macro: \\%s declared with %d arguments but body references %d", name, nArgs, cmd.NArgs)
	}
	c.commands[name] = cmd
	c.names.Add(name, nil)
	trace().Debugf("macro: defined \\%s/%d", name, nArgs)
	return nil
}

// Lookup returns the Command registered under name, if any.
func (c *Collection) Lookup(name string) (Command, bool) {
	cmd, ok := c.commands[name]
	return cmd, ok
}

// Suggest returns up to n command names sharing a prefix with name, for
// "unknown command \XXX, did you mean ...?" diagnostics.
func (c *Collection) Suggest(name string, n int) []string {
	matches := c.names.PrefixSearch(name)
	if len(matches) > n {
		matches = matches[:n]
	}
	return matches
}

// maxRecursionDepth bounds eager macro expansion the way a recursive
// \newcommand referencing itself (directly or through a cycle) would
// otherwise expand forever. original_source has no such cap because Rust
// macros are expanded lazily per-token during parsing and a self-
// referential definition simply infinite-loops at first use; since our
// expansion happens eagerly up front (spec's design choice, SPEC_FULL.md
// §2), we need an explicit ceiling.
const maxRecursionDepth = 256

// Expand scans src for uses of commands registered in c and substitutes
// them, recursively, until no further registered command names remain in
// the result or maxRecursionDepth is reached (core.EINTERNAL).
// Control sequences c does not know about are passed through unchanged —
// they are either built-ins the parser itself understands, or will be
// reported as unknown by the parser.
func (c *Collection) Expand(src string) (string, error) {
	return c.expandDepth(src, 0)
}

func (c *Collection) expandDepth(src string, depth int) (string, error) {
	if depth > maxRecursionDepth {
		return "", core.Error(core.EINTERNAL, "macro: recursion depth exceeded %d while expanding", maxRecursionDepth)
	}
	var out strings.Builder
	l := lexer.New(src)
	changed := false
	for l.Current().Kind != lexer.EOF {
		tok := l.Current()
		if tok.Kind != lexer.Command {
			out.WriteString(tok.String())
			l.Next()
			continue
		}
		cmd, ok := c.Lookup(tok.Name)
		if !ok {
			out.WriteString(tok.String())
			// The lexer drops the whitespace that ends a control word;
			// restore one where the next token would otherwise extend it.
			if next := l.Next(); next.Kind == lexer.Symbol && lexer.New(tok.String()+next.String()).Current().Name != tok.Name {
				out.WriteString(" ")
			}
			continue
		}
		args := make([]string, cmd.NArgs)
		l.Next()
		for i := 0; i < cmd.NArgs; i++ {
			group, ok := l.Group()
			if !ok {
				return "", core.Error(core.EPARSE, "macro: \\%s expects %d arguments", tok.Name, cmd.NArgs)
			}
			args[i] = group
		}
		out.WriteString(cmd.Apply(args))
		changed = true
	}
	if !changed {
		return out.String(), nil
	}
	return c.expandDepth(out.String(), depth+1)
}
