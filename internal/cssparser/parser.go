// Package cssparser implements the parser core: the Parser type that walks
// a token stream with O(1) checkpoint/rewind, the "list of rules"/"list of
// declarations"/"qualified rule"/"at-rule" productions from CSS Syntax
// Module Level 3 (https://www.w3.org/TR/css-syntax-3/#parser-entry-points),
// and the generic trait-emulation pattern (Parseable/Parse) other packages
// use to plug in per-grammar parsing logic without the parser core needing
// to know about selectors, property values, or @supports conditions ahead
// of time.
//
// This generalizes esbuild's internal/css_parser: the shape of
// parseListOfRules/parseListOfDeclarations/parseAtRule is the same
// recursive-descent-over-a-token-array structure, but esbuild's parser
// builds esbuild's own minification-oriented AST and has no notion of
// checkpoint/rewind beyond a raw index save/restore. This parser adds
// speculative-parse support (Checkpoint/Rewind undoes both the cursor
// position and any tree nodes allocated during the abandoned attempt) since
// the property dispatcher and selector grammar both need to try a
// production and cleanly back out of it on failure.
package cssparser

import (
	"github.com/cssdx/csscore/internal/arena"
	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/csscursor"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

// State is a small bitmask of ambient parsing context that changes how a
// few productions behave without threading an explicit parameter through
// every call. It mirrors hdx_parser's state flags (e.g. "are we inside a
// @keyframes block, where a qualified rule's prelude is a keyframe
// selector instead of a normal selector list").
type State uint32

const (
	// StateNestingAllowed is set while parsing the body of a style rule,
	// where CSS Nesting permits a qualified rule's block to mix
	// declarations and further style rules.
	StateNestingAllowed State = 1 << iota
	// StateInKeyframesBlock changes qualified-rule prelude parsing to the
	// @keyframes percentage-selector grammar instead of a selector list.
	StateInKeyframesBlock
)

func (s State) Has(bit State) bool { return s&bit != 0 }

// Diagnostic is a recoverable parse error tagged with a stable MsgID, for
// callers that want to filter or programmatically inspect what went wrong
// rather than just print it. The underlying logger.Msg this toolkit's kept
// logger.Log produces has no ID field of its own, so the parser keeps this
// structured list alongside whatever it feeds to Log.
type Diagnostic struct {
	ID    logger.MsgID
	Range logger.Range
	Text  string
}

// Parser is the shared state threaded through every grammar production:
// the token stream, the tree being built, the atom table component values'
// identifiers are interned into, the diagnostic sink, and the current
// State flags.
type Parser struct {
	Log         logger.Log
	Source      logger.Source
	Stream      *csscursor.Stream
	Tree        *cssast.Tree
	Atoms       *atom.Table
	State       State
	Diagnostics []Diagnostic

	skip, stop csscursor.KindSet
}

// New creates a Parser over tokens already produced by internal/csslexer.
func New(log logger.Log, source logger.Source, tokens []csslexer.Token, atoms *atom.Table) *Parser {
	if atoms == nil {
		atoms = atom.Default()
	}
	return &Parser{
		Log:    log,
		Source: source,
		Stream: csscursor.NewStream(tokens),
		Tree:   cssast.NewTree(),
		Atoms:  atoms,
		skip:   csscursor.DefaultSkipSet,
	}
}

// Checkpoint is an O(1) snapshot of everything a speculative parse attempt
// can mutate: the cursor position, the tree's arena bump pointers, the
// active stop/skip sets, and the State flags. Rewinding to a Checkpoint
// makes the abandoned attempt's tokens unread and its allocated nodes
// unreachable, exactly as if the attempt had never been made.
type Checkpoint struct {
	cursor     csscursor.Mark
	arenaMark  arena.ArenaMark
	skip, stop csscursor.KindSet
	state      State
}

// Checkpoint snapshots the parser's current position.
func (p *Parser) Checkpoint() Checkpoint {
	return Checkpoint{
		cursor:    p.Stream.Checkpoint(),
		arenaMark: p.Tree.A.Checkpoint(),
		skip:      p.skip,
		stop:      p.stop,
		state:     p.State,
	}
}

// Rewind restores the parser to a previously taken Checkpoint.
func (p *Parser) Rewind(cp Checkpoint) {
	p.Stream.Rewind(cp.cursor)
	p.Tree.A.Rewind(cp.arenaMark)
	p.skip, p.stop, p.State = cp.skip, cp.stop, cp.state
}

// Peek returns the next significant Cursor without consuming it.
func (p *Parser) Peek() csscursor.Cursor { return p.Stream.Peek(p.skip, p.stop) }

// Next consumes and returns the next significant Cursor.
func (p *Parser) Next() csscursor.Cursor { return p.Stream.Next(p.skip, p.stop) }

// AtEndOfScope reports whether the next significant token is in the active
// stop set or is end-of-file, i.e. whether the current scope (a block, a
// declaration value, a function's arguments) has nothing left to consume.
func (p *Parser) AtEndOfScope() bool {
	c := p.Peek()
	return c.Tok.Kind == csslexer.KindEndOfFile || p.stop.Contains(c.Tok.Kind)
}

// FoldIdent returns the case-folded Atom for an ident-shaped token (ident,
// function, at-keyword, or hash), the same value every at-rule name,
// property name, and keyword comparison in this toolkit keys off of. It
// consults the lexer's FlagIsLowerCase to skip atom.Table's general
// Unicode case-folding pass whenever the token's raw text was already
// proven to need none — the common case for real-world CSS, which is
// overwhelmingly authored in lowercase.
func (p *Parser) FoldIdent(cur csscursor.Cursor) atom.Atom {
	text := cur.Tok.DecodedText(p.Source.Contents)
	if cur.Tok.Flags.Has(csslexer.FlagIsLowerCase) {
		return p.Atoms.FoldKnownLower(text)
	}
	return p.Atoms.Fold(text)
}

// PushStop temporarily adds kinds to the stop set (e.g. KindCloseBrace
// while parsing a block's contents) and returns a function that restores
// the previous stop set.
func (p *Parser) PushStop(kinds ...csslexer.Kind) (restore func()) {
	prev := p.stop
	p.stop |= csscursor.KindSetOf(kinds...)
	return func() { p.stop = prev }
}

func (p *Parser) span(start csscursor.SourceOffset) cssast.Span {
	return cssast.Span{Start: start, End: csscursor.SourceOffset(p.Stream.Checkpoint().Index())}
}

// Errorf reports a recoverable diagnostic against the range covered by
// cur's token, matching the spec's rule that lexical and grammar errors are
// reported and parsing continues rather than aborting the whole stylesheet.
func (p *Parser) Errorf(id logger.MsgID, cur csscursor.Cursor, text string) {
	p.Log.AddRangeError(&p.Source, cur.Tok.Range, text)
	p.Diagnostics = append(p.Diagnostics, Diagnostic{ID: id, Range: cur.Tok.Range, Text: text})
}
