package cssprops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/csscursor"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

func tokenize(t *testing.T, text string) ([]csslexer.Token, logger.Source) {
	t.Helper()
	log := logger.NewDeferLog()
	source := logger.Source{Contents: text}
	result := csslexer.Tokenize(log, source)
	return result.Tokens, source
}

func preserved(tree *cssast.Tree, tok csslexer.Token, offset csscursor.SourceOffset) *cssast.PreservedToken {
	cur := csscursor.Cursor{Offset: offset, Tok: tok}
	return tree.NewPreservedToken(cssast.Span{Start: offset, End: offset + 1}, cur)
}

func TestDispatchWideKeyword(t *testing.T) {
	table, err := LoadDefaultTable()
	require.NoError(t, err)

	tokens, source := tokenize(t, "inherit")
	tree := cssast.NewTree()
	value := []cssast.ComponentValue{preserved(tree, tokens[0], 0)}

	sv := Dispatch(table, "color", value, source.Contents)
	require.Equal(t, KindInherit, sv.Kind)
}

func TestDispatchTypedLength(t *testing.T) {
	table, err := LoadDefaultTable()
	require.NoError(t, err)

	tokens, source := tokenize(t, "10px")
	tree := cssast.NewTree()
	value := []cssast.ComponentValue{preserved(tree, tokens[0], 0)}

	sv := Dispatch(table, "width", value, source.Contents)
	require.Equal(t, KindLength, sv.Kind)
	require.Equal(t, 10.0, sv.Length.Value)
	require.Equal(t, "px", sv.Length.Unit)
}

func TestDispatchFallsBackToComputedForMathFunction(t *testing.T) {
	table, err := LoadDefaultTable()
	require.NoError(t, err)

	tokens, source := tokenize(t, "calc(1px + 2px)")
	tree := cssast.NewTree()
	fn := tree.NewFunction(cssast.Span{}, atom.Intern("calc"), nil)
	value := []cssast.ComponentValue{fn}
	_ = tokens

	sv := Dispatch(table, "width", value, source.Contents)
	require.Equal(t, KindComputed, sv.Kind)
}

func TestDispatchUnknownForUnrecognizedValue(t *testing.T) {
	table, err := LoadDefaultTable()
	require.NoError(t, err)

	tokens, source := tokenize(t, "bogus-value")
	tree := cssast.NewTree()
	value := []cssast.ComponentValue{preserved(tree, tokens[0], 0)}

	sv := Dispatch(table, "display", value, source.Contents)
	require.Equal(t, KindUnknown, sv.Kind)
}

func TestDispatchCustomPropertyIsRawCapture(t *testing.T) {
	table, err := LoadDefaultTable()
	require.NoError(t, err)

	tokens, source := tokenize(t, "10px")
	tree := cssast.NewTree()
	value := []cssast.ComponentValue{preserved(tree, tokens[0], 0)}

	sv := Dispatch(table, "--my-var", value, source.Contents)
	require.Equal(t, KindCustom, sv.Kind)
	require.Equal(t, value, sv.Raw)
}

func TestDispatchColorHex(t *testing.T) {
	table, err := LoadDefaultTable()
	require.NoError(t, err)

	tokens, source := tokenize(t, "#ff0000")
	tree := cssast.NewTree()
	value := []cssast.ComponentValue{preserved(tree, tokens[0], 0)}

	sv := Dispatch(table, "color", value, source.Contents)
	require.Equal(t, KindColor, sv.Kind)
	require.EqualValues(t, 255, sv.Color.R)
	require.EqualValues(t, 0, sv.Color.G)
}

func TestTableSuggestsTypoCorrection(t *testing.T) {
	table, err := LoadDefaultTable()
	require.NoError(t, err)

	_, ok := table.Lookup("colr")
	require.False(t, ok)

	suggestion, ok := table.Suggest("colr")
	require.True(t, ok)
	require.Equal(t, "color", suggestion)
}
