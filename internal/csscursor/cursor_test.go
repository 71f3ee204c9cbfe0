package csscursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssdx/csscore/internal/csslexer"
)

func tok(k csslexer.Kind) csslexer.Token { return csslexer.Token{Kind: k} }

func TestNextSkipsWhitespaceByDefault(t *testing.T) {
	s := NewStream([]csslexer.Token{
		tok(csslexer.KindIdent),
		tok(csslexer.KindWhitespace),
		tok(csslexer.KindColon),
	})
	c1 := s.Next(DefaultSkipSet, 0)
	assert.Equal(t, csslexer.KindIdent, c1.Tok.Kind)
	c2 := s.Next(DefaultSkipSet, 0)
	assert.Equal(t, csslexer.KindColon, c2.Tok.Kind, "whitespace between ident and colon must be skipped")
}

func TestStopSetOverridesSkipSet(t *testing.T) {
	s := NewStream([]csslexer.Token{
		tok(csslexer.KindWhitespace),
		tok(csslexer.KindCloseBrace),
	})
	stop := KindSetOf(csslexer.KindCloseBrace)
	skip := KindSetOf(csslexer.KindWhitespace, csslexer.KindCloseBrace)
	c := s.Peek(skip, stop)
	assert.Equal(t, csslexer.KindCloseBrace, c.Tok.Kind, "stop-set token must be visible even though it's also in skip-set")

	c2 := s.Next(skip, stop)
	assert.Equal(t, csslexer.KindCloseBrace, c2.Tok.Kind, "whitespace still skipped when not in stop")
}

func TestCheckpointRewind(t *testing.T) {
	s := NewStream([]csslexer.Token{tok(csslexer.KindIdent), tok(csslexer.KindColon), tok(csslexer.KindIdent)})
	mark := s.Checkpoint()
	s.Next(0, 0)
	s.Next(0, 0)
	require.False(t, s.AtEnd())
	s.Rewind(mark)
	c := s.Next(0, 0)
	assert.Equal(t, csslexer.KindIdent, c.Tok.Kind)
	assert.Equal(t, SourceOffset(0), c.Offset)
}

func TestPeekDoesNotAdvance(t *testing.T) {
	s := NewStream([]csslexer.Token{tok(csslexer.KindIdent)})
	p1 := s.Peek(0, 0)
	p2 := s.Peek(0, 0)
	assert.Equal(t, p1, p2)
	n := s.Next(0, 0)
	assert.Equal(t, p1, n)
	assert.True(t, s.AtEnd())
}

func TestAtEndPastArrayYieldsEndOfFile(t *testing.T) {
	s := NewStream(nil)
	c := s.Next(DefaultSkipSet, 0)
	assert.Equal(t, csslexer.KindEndOfFile, c.Tok.Kind)
}

func TestSyntheticCursor(t *testing.T) {
	c := Synthetic(tok(csslexer.KindCloseBrace))
	assert.True(t, c.IsSynthetic())
	assert.Equal(t, MaxOffset, c.Offset)
}
