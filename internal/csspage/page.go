// Package csspage implements @page's page-selector grammar: an optional
// page-type ident followed by zero or more `:left`/`:right`/`:first`/
// `:blank` pseudo-classes, comma-separated into a PageSelectorList, plus
// recognizing which at-rule names are valid margin boxes
// (`@top-right { ... }` and its fifteen siblings) inside a page rule's
// block.
//
// Grounded in original_source/crates/css_ast/src/rules/page.rs. The
// teacher (evanw-esbuild) has no page-selector concept at all — it passes
// @page through as an opaque at-rule — so this package's shape comes from
// original_source and https://drafts.csswg.org/css-page-3/ directly, in
// the same "interpret an already-parsed prelude's component values"
// style internal/cssdocument uses, since a page selector (unlike
// @supports/@container's recursive and/or/not condition grammar) is a
// flat, comma-separated list with no need for the live-parser
// checkpoint/rewind machinery.
package csspage

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/cssselector"
	"github.com/cssdx/csscore/internal/csslexer"
)

// PseudoClass is one of @page's four page-selector pseudo-classes.
type PseudoClass int

const (
	PseudoLeft PseudoClass = iota
	PseudoRight
	PseudoFirst
	PseudoBlank
)

func (p PseudoClass) String() string {
	switch p {
	case PseudoLeft:
		return "left"
	case PseudoRight:
		return "right"
	case PseudoFirst:
		return "first"
	case PseudoBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Specificity returns the pseudo-class's contribution to its selector's
// specificity: :first/:blank count as a class (B), :left/:right count as a
// type selector (C), per
// https://drafts.csswg.org/css-page-3/#cascading-and-scecificity.
func (p PseudoClass) Specificity() cssselector.Specificity {
	switch p {
	case PseudoFirst, PseudoBlank:
		return cssselector.Specificity{B: 1}
	default:
		return cssselector.Specificity{C: 1}
	}
}

var pseudoClassKeywords = map[string]PseudoClass{
	"left":  PseudoLeft,
	"right": PseudoRight,
	"first": PseudoFirst,
	"blank": PseudoBlank,
}

// Selector is one comma-separated item of a PageSelectorList: an optional
// named page type (e.g. `@page wide { ... }`) followed by any number of
// pseudo-classes (`@page wide:left:blank { ... }`).
type Selector struct {
	PageType    atom.Atom
	HasPageType bool
	Pseudos     []PseudoClass
}

// Specificity sums the selector's pseudo-classes' contributions, adding
// one ID-level (A) count if a page type is named.
func (s Selector) Specificity() cssselector.Specificity {
	var sp cssselector.Specificity
	for _, pc := range s.Pseudos {
		sp = sp.Add(pc.Specificity())
	}
	if s.HasPageType {
		sp = sp.Add(cssselector.Specificity{A: 1})
	}
	return sp
}

// ParseSelectorList interprets an @page prelude (already split into
// component values by internal/cssparser) as a comma-separated list of
// page selectors.
func ParseSelectorList(prelude []cssast.ComponentValue, atoms *atom.Table, source string) ([]Selector, []error) {
	var selectors []Selector
	var errs []error

	for _, group := range splitOnCommas(prelude) {
		group = trimWhitespace(group)
		if len(group) == 0 {
			continue
		}
		sel, err := parseOneSelector(group, atoms, source)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		selectors = append(selectors, sel)
	}
	return selectors, errs
}

func parseOneSelector(group []cssast.ComponentValue, atoms *atom.Table, source string) (Selector, error) {
	var sel Selector
	i := 0

	if tok, ok := group[0].(*cssast.PreservedToken); ok && tok.Cur.Tok.Kind == csslexer.KindIdent {
		sel.PageType = atoms.Fold(tok.Cur.Tok.DecodedText(source))
		sel.HasPageType = true
		i = 1
	}

	for i < len(group) {
		colon, ok := group[i].(*cssast.PreservedToken)
		if !ok || colon.Cur.Tok.Kind != csslexer.KindColon {
			return Selector{}, errors.New("expected \":\" before a page pseudo-class")
		}
		i++
		if i >= len(group) {
			return Selector{}, errors.New("expected a pseudo-class name after \":\"")
		}
		ident, ok := group[i].(*cssast.PreservedToken)
		if !ok || ident.Cur.Tok.Kind != csslexer.KindIdent {
			return Selector{}, errors.New("expected a pseudo-class name after \":\"")
		}
		name := strings.ToLower(ident.Cur.Tok.DecodedText(source))
		pc, ok := pseudoClassKeywords[name]
		if !ok {
			return Selector{}, errors.Errorf("unrecognized page pseudo-class %q", name)
		}
		sel.Pseudos = append(sel.Pseudos, pc)
		i++
	}

	return sel, nil
}

func splitOnCommas(values []cssast.ComponentValue) [][]cssast.ComponentValue {
	var groups [][]cssast.ComponentValue
	var current []cssast.ComponentValue
	for _, cv := range values {
		if tok, ok := cv.(*cssast.PreservedToken); ok && tok.Cur.Tok.Kind == csslexer.KindComma {
			groups = append(groups, current)
			current = nil
			continue
		}
		current = append(current, cv)
	}
	groups = append(groups, current)
	return groups
}

func trimWhitespace(values []cssast.ComponentValue) []cssast.ComponentValue {
	start := 0
	for start < len(values) && isWhitespace(values[start]) {
		start++
	}
	end := len(values)
	for end > start && isWhitespace(values[end-1]) {
		end--
	}
	return values[start:end]
}

func isWhitespace(cv cssast.ComponentValue) bool {
	tok, ok := cv.(*cssast.PreservedToken)
	return ok && tok.Cur.Tok.Kind == csslexer.KindWhitespace
}

// marginBoxNames is the complete set of CSS Paged Media's margin-box
// at-rule names, from https://drafts.csswg.org/css-page-3/#margin-at-rules.
var marginBoxNames = map[string]bool{
	"top-left-corner":     true,
	"top-left":            true,
	"top-center":          true,
	"top-right":           true,
	"top-right-corner":    true,
	"right-top":           true,
	"right-middle":        true,
	"right-bottom":        true,
	"bottom-right-corner": true,
	"bottom-right":        true,
	"bottom-center":       true,
	"bottom-left":         true,
	"bottom-left-corner":  true,
	"left-bottom":         true,
	"left-middle":         true,
	"left-top":            true,
}

// IsMarginBoxName reports whether name, compared case-insensitively, names
// one of the sixteen margin-box at-rules @page's block may contain. A caller
// walking an @page rule's already-parsed block (internal/cssparser emits
// each margin rule as an ordinary *cssast.AtRule, since the core grammar
// treats every at-rule name opaquely) uses this to flag an unrecognized
// at-rule inside a page block as a diagnostic rather than silently
// accepting it.
func IsMarginBoxName(name string) bool {
	return marginBoxNames[strings.ToLower(name)]
}
