// Package csscursor turns the flat token array produced by internal/csslexer
// into the stream the parser actually walks: a sequence of (offset, token)
// pairs with O(1) checkpoint/rewind, and a trivia-skipping Next/Peek pair
// driven by a per-call stop/skip bitmask. This mirrors hdx_lexer's
// Cursor(SourceOffset, Token) tuple and hdx_parser's stop-set/skip-set
// mechanism for trivia handling and scoped end-of-input detection.
package csscursor

import (
	"math"

	"github.com/cssdx/csscore/internal/csslexer"
)

// SourceOffset indexes a token within a Cursor's underlying token array.
// MaxOffset is reserved to mark a synthetic cursor that was built by the
// parser rather than read from source (see Cursor.IsSynthetic).
type SourceOffset = uint32

// MaxOffset is the sentinel SourceOffset used by synthetic cursors.
const MaxOffset SourceOffset = math.MaxUint32

// Cursor names a single token's position within a Stream. It is a value
// type: copying a Cursor is O(1) and copies are never invalidated by
// further reading of the Stream, matching the 12-byte Cursor hdx_lexer
// asserts the size of.
type Cursor struct {
	Offset SourceOffset
	Tok    csslexer.Token
}

// IsSynthetic reports whether this Cursor was fabricated by the parser
// (for example, an inserted CloseBrace to recover from an unterminated
// block) instead of being read from the source token stream.
func (c Cursor) IsSynthetic() bool { return c.Offset == MaxOffset }

// Synthetic builds a Cursor for a token the parser invents rather than
// reads, such as an error-recovery placeholder.
func Synthetic(tok csslexer.Token) Cursor {
	return Cursor{Offset: MaxOffset, Tok: tok}
}

// Kind bitmask used to classify which token kinds belong to the "skip set"
// (trivia silently passed over, such as whitespace and comments folded into
// whitespace tokens) versus the "stop set" (tokens that end the current
// scope, such as the closing brace of the block being parsed).
type KindSet uint64

// Contains reports whether k's Kind bit is set in the KindSet.
func (s KindSet) Contains(k csslexer.Kind) bool {
	if k >= 64 {
		return false
	}
	return s&(1<<uint(k)) != 0
}

// KindSetOf builds a KindSet out of the given token kinds.
func KindSetOf(kinds ...csslexer.Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		if k < 64 {
			s |= 1 << uint(k)
		}
	}
	return s
}

// DefaultSkipSet skips whitespace only; most grammar productions that care
// about trivia placement only care about whitespace, not comments (comments
// are folded into adjacent whitespace by the lexer already).
var DefaultSkipSet = KindSetOf(csslexer.KindWhitespace)

// Mark is an O(1) snapshot of a Stream's read position, used by the parser
// to back out of a speculative parse (see the Parseable/Parse generic
// constraint pattern in internal/cssparser) without re-lexing.
type Mark struct {
	index int
}

// Index exposes the raw token-array index a Mark points at, for callers
// (like internal/cssast's Span bookkeeping) that want to record "how far
// into the stream" a node's text ends without a full Cursor.
func (m Mark) Index() int { return m.index }

// Stream walks a fixed token array produced by a single Tokenize call. It
// never mutates the array; position is tracked purely via an index, which
// is what makes Checkpoint/Rewind O(1).
type Stream struct {
	tokens []csslexer.Token
	index  int
}

// NewStream wraps a token array for cursor-based reading.
func NewStream(tokens []csslexer.Token) *Stream {
	return &Stream{tokens: tokens}
}

// Checkpoint snapshots the current read position.
func (s *Stream) Checkpoint() Mark { return Mark{index: s.index} }

// Rewind restores a previously taken Mark.
func (s *Stream) Rewind(m Mark) { s.index = m.index }

// AtEnd reports whether the stream has been fully consumed.
func (s *Stream) AtEnd() bool { return s.index >= len(s.tokens) }

// current returns the token at the stream's read position, or a synthetic
// end-of-file token past the end of the array.
func (s *Stream) current() csslexer.Token {
	if s.index >= len(s.tokens) {
		return csslexer.Token{Kind: csslexer.KindEndOfFile}
	}
	return s.tokens[s.index]
}

// Peek returns the Cursor at the read position without advancing, skipping
// over any token kinds in skip that doesn't belong in stop. A token kind
// present in both skip and stop is treated as a stop token: callers use
// stop to force scope-ending tokens (like a block's closing brace) to be
// visible even if they'd otherwise be treated as trivia.
func (s *Stream) Peek(skip, stop KindSet) Cursor {
	i := s.index
	for i < len(s.tokens) {
		k := s.tokens[i].Kind
		if stop.Contains(k) || !skip.Contains(k) {
			return Cursor{Offset: SourceOffset(i), Tok: s.tokens[i]}
		}
		i++
	}
	return Cursor{Offset: SourceOffset(len(s.tokens)), Tok: csslexer.Token{Kind: csslexer.KindEndOfFile}}
}

// Next behaves like Peek but also advances the stream past the returned
// Cursor, consuming any skipped trivia along the way.
func (s *Stream) Next(skip, stop KindSet) Cursor {
	for s.index < len(s.tokens) {
		k := s.tokens[s.index].Kind
		if stop.Contains(k) || !skip.Contains(k) {
			c := Cursor{Offset: SourceOffset(s.index), Tok: s.tokens[s.index]}
			s.index++
			return c
		}
		s.index++
	}
	c := Cursor{Offset: SourceOffset(len(s.tokens)), Tok: csslexer.Token{Kind: csslexer.KindEndOfFile}}
	return c
}

// Tokens exposes the underlying array for callers (notably internal/csswriter)
// that need to reconstruct exact source text, including the trivia gaps a
// skip-set-driven Next would otherwise hide.
func (s *Stream) Tokens() []csslexer.Token { return s.tokens }
