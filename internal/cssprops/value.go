// Package cssprops implements the property value dispatcher: given a
// declaration's name and its raw component-value list, produce a typed
// StyleValue. This generalizes esbuild's internal/css_parser's per-property
// "lower and minify" functions (css_decls*.go) — those exist to rewrite a
// value for smaller output, not to classify it into a typed representation
// a downstream consumer (a layout engine, a style-diff tool) could switch
// on without re-parsing raw tokens.
package cssprops

import (
	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
)

// Kind discriminates StyleValue's variants. The five CSS-wide keyword
// variants plus Custom/Computed/Unknown are always present, per spec; Kind
// values above KindUnknown are the per-property typed variants this
// package's grammars produce.
type Kind int

const (
	KindInitial Kind = iota
	KindInherit
	KindUnset
	KindRevert
	KindRevertLayer
	KindCustom
	KindComputed
	KindUnknown

	KindKeyword
	KindLength
	KindPercentage
	KindInteger
	KindColor
)

// Length is a `<number><unit>` dimension, keeping the unit as text (rather
// than resolving it against a reference size) since resolving lengths is a
// layout concern outside a syntax toolkit's scope.
type Length struct {
	Value float64
	Unit  string
}

// Color is a parsed `<color>` value. Functional forms (rgb(), hsl(), and
// friends) are kept as their raw Function component value in Raw rather
// than having their channels numerically resolved, since relative-color
// syntax and color-space conversion are a rendering concern, not a syntax
// one; HasRGBA is false in that case.
type Color struct {
	R, G, B, A uint8
	HasRGBA    bool
	Raw        *cssast.Function
}

// StyleValue is the property dispatcher's tagged-union result for one
// declaration's value.
type StyleValue struct {
	Kind Kind

	// Raw holds the original component-value list for Custom, Computed,
	// and Unknown, so a caller can still inspect or re-serialize the
	// source tokens even though they weren't interpreted.
	Raw []cssast.ComponentValue

	Keyword    atom.Atom
	Length     Length
	Percentage float64
	Integer    int64
	Color      Color
}
