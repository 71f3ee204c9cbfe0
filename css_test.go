package css

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/csscontainer"
	"github.com/cssdx/csscore/internal/csskeyframes"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/csspage"
	"github.com/cssdx/csscore/internal/cssparser"
	"github.com/cssdx/csscore/internal/csssupports"
	"github.com/cssdx/csscore/internal/logger"
)

// reparsePrelude re-tokenizes the exact source substring a prelude's
// component values came from and returns a fresh parser over it, sharing
// the original result's atom table. The condition-tree grammars
// (csssupports, csscontainer) plug into cssparser.ConditionList via a live
// *cssparser.Parser rather than an already-split component-value slice, so
// a caller applying one to an at-rule found by Parse needs to re-lex that
// at-rule's prelude text first.
func reparsePrelude(result *Result, prelude []cssast.ComponentValue) *cssparser.Parser {
	start := prelude[0].ComponentSpan().Start
	end := prelude[len(prelude)-1].ComponentSpan().End
	text := result.source[start:end]

	log := logger.NewDeferLog()
	source := logger.Source{Contents: text}
	tokens := csslexer.Tokenize(log, source)
	return cssparser.New(log, source, tokens.Tokens, result.Atoms)
}

func firstNonWhitespaceIdent(t *testing.T, prelude []cssast.ComponentValue, source string) string {
	t.Helper()
	for _, cv := range prelude {
		tok, ok := cv.(*cssast.PreservedToken)
		if !ok || tok.Cur.Tok.Kind == csslexer.KindWhitespace {
			continue
		}
		return tok.Cur.Tok.DecodedText(source)
	}
	t.Fatal("expected an identifier in the prelude")
	return ""
}

func TestParseAndWriteRoundTrips(t *testing.T) {
	text := "div, .a /* note */ {\n  color: red;\n  margin: 0 1px;\n}\n"
	result := Parse(text, Options{})
	require.Empty(t, result.Diagnostics)
	require.Equal(t, text, result.Write())
}

func TestParseReportsRecoverableSyntaxError(t *testing.T) {
	text := "div {"
	result := Parse(text, Options{})
	require.NotEmpty(t, result.Diagnostics)
	// The tree still covers every byte read, even though the block never closed.
	require.Equal(t, text, result.Write())
}

// These at-rule grammars (csssupports, csscontainer, csspage,
// csskeyframes) are standalone reinterpretation layers over the generic
// AtRule/QualifiedRule nodes Parse already produces; Parse itself never
// dispatches to them. The following tests exercise the pattern a caller
// uses to apply one: find the at-rule by name, then hand its prelude (or,
// for the condition-tree grammars, the prelude's own source text) to the
// matching package.

func TestParseThenInterpretPageSelector(t *testing.T) {
	result := Parse("@page wide:left { margin: 1in; }", Options{})
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Stylesheet.Rules, 1)

	atRule := result.Stylesheet.Rules[0].(*cssast.AtRule)
	require.Equal(t, "page", result.Atoms.String(atRule.Name))

	selectors, errs := csspage.ParseSelectorList(atRule.Prelude, result.Atoms, result.source)
	require.Empty(t, errs)
	require.Len(t, selectors, 1)
	require.Equal(t, "wide", result.Atoms.String(selectors[0].PageType))
	require.Equal(t, []csspage.PseudoClass{csspage.PseudoLeft}, selectors[0].Pseudos)
}

func TestParseThenInterpretKeyframeSelectors(t *testing.T) {
	result := Parse("@keyframes spin { from { opacity: 0; } 50% { opacity: .5; } to { opacity: 1; } }", Options{})
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Stylesheet.Rules, 1)

	atRule := result.Stylesheet.Rules[0].(*cssast.AtRule)
	require.Equal(t, "keyframes", result.Atoms.String(atRule.Name))
	ok, _ := csskeyframes.ValidateName(firstNonWhitespaceIdent(t, atRule.Prelude, result.source))
	require.True(t, ok)

	require.Len(t, atRule.Block, 3)
	var percents []float64
	for _, rule := range atRule.Block {
		qr := rule.(*cssast.QualifiedRule)
		selectors, errs := csskeyframes.ParseSelectorList(qr.Prelude, result.source)
		require.Empty(t, errs)
		require.Len(t, selectors, 1)
		percents = append(percents, selectors[0].Percent)
	}
	require.Equal(t, []float64{0, 50, 100}, percents)
}

func TestParseThenInterpretContainerCondition(t *testing.T) {
	result := Parse("@container sidebar (min-width: 400px) { p { font-size: 1.2em; } }", Options{})
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Stylesheet.Rules, 1)

	atRule := result.Stylesheet.Rules[0].(*cssast.AtRule)
	require.Equal(t, "container", result.Atoms.String(atRule.Name))
	require.NotEmpty(t, atRule.Prelude)

	p := reparsePrelude(result, atRule.Prelude)
	condition := csscontainer.ParseCondition(p)
	require.False(t, p.Log.HasErrors())
	require.True(t, condition.HasName)
	require.Equal(t, "sidebar", p.Atoms.String(condition.Name))
	require.NotNil(t, condition.Condition)
}

func TestParseThenInterpretSupportsCondition(t *testing.T) {
	result := Parse("@supports (display: grid) { main { display: grid; } }", Options{})
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Stylesheet.Rules, 1)

	atRule := result.Stylesheet.Rules[0].(*cssast.AtRule)
	require.Equal(t, "supports", result.Atoms.String(atRule.Name))
	require.NotEmpty(t, atRule.Prelude)

	p := reparsePrelude(result, atRule.Prelude)
	condition := csssupports.ParseCondition(p)
	require.False(t, p.Log.HasErrors())
	require.NotNil(t, condition)
}

func TestParseShareableAtomTable(t *testing.T) {
	atoms := atom.NewTable()
	r1 := Parse("a { color: red; }", Options{Atoms: atoms})
	r2 := Parse("b { color: red; }", Options{Atoms: atoms})
	require.Same(t, atoms, r1.Atoms)
	require.Same(t, atoms, r2.Atoms)
}
