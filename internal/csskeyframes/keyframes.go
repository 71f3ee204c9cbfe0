// Package csskeyframes implements @keyframes's two supplemental grammars
// the generic at-rule/qualified-rule machinery leaves opaque: the
// reserved-keyword check on the rule's own name (CSS Animations forbids
// `@keyframes none { ... }` and friends, since "none" is also a valid
// animation-name value and the ambiguity would be unresolvable), and each
// nested qualified rule's comma-separated keyframe-selector list
// (`from`, `to`, or a percentage in [0, 100]).
//
// Grounded in original_source/crates/css_ast/src/rules/keyframes.rs, whose
// KeyframesName::valid_ident and KeyframeSelector::parse are followed
// directly, and on the teacher's own (evanw-esbuild) keyframe handling in
// internal/css_parser/css_parser.go, which parses the same from/to/
// percentage selector shape (though as an inline special case inside its
// own at-rule switch, rather than a standalone package) and rejects a
// non-percentage, non-from/to selector the same way.
package csskeyframes

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/csslexer"
)

// reservedNames are the keyframes-name idents CSS Animations forbids,
// since each already has a conflicting meaning as an animation-name
// keyword value.
var reservedNames = map[string]bool{
	"default": true,
	"initial": true,
	"inherit": true,
	"unset":   true,
	"none":    true,
}

// ValidateName reports whether name (the @keyframes rule's own name,
// already decoded) is usable as a keyframes name, and the reserved word it
// collides with when it isn't.
func ValidateName(name string) (ok bool, reserved string) {
	folded := strings.ToLower(name)
	if reservedNames[folded] {
		return false, folded
	}
	return true, ""
}

// Selector is one comma-separated item of a keyframe rule's prelude: a
// percentage in [0, 100], where `from` and `to` are shorthand for 0 and
// 100 respectively.
type Selector struct {
	Percent float64
}

// ParseSelectorList interprets a keyframe (qualified) rule's prelude
// (already split into component values by internal/cssparser) as a
// comma-separated KeyframeSelectors list.
func ParseSelectorList(prelude []cssast.ComponentValue, source string) ([]Selector, []error) {
	var selectors []Selector
	var errs []error

	for _, group := range splitOnCommas(prelude) {
		group = trimWhitespace(group)
		if len(group) != 1 {
			errs = append(errs, errors.New("expected a single keyframe selector between commas"))
			continue
		}
		sel, err := parseOneSelector(group[0], source)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		selectors = append(selectors, sel)
	}
	return selectors, errs
}

func parseOneSelector(cv cssast.ComponentValue, source string) (Selector, error) {
	tok, ok := cv.(*cssast.PreservedToken)
	if !ok {
		return Selector{}, errors.New("expected \"from\", \"to\", or a percentage")
	}

	switch tok.Cur.Tok.Kind {
	case csslexer.KindIdent:
		switch strings.ToLower(tok.Cur.Tok.DecodedText(source)) {
		case "from":
			return Selector{Percent: 0}, nil
		case "to":
			return Selector{Percent: 100}, nil
		default:
			return Selector{}, errors.Errorf("unexpected keyframe selector %q, expected \"from\", \"to\", or a percentage", tok.Cur.Tok.DecodedText(source))
		}
	case csslexer.KindPercentage:
		v := tok.Cur.Tok.Value
		if v < 0 || v > 100 {
			return Selector{}, errors.Errorf("keyframe percentage %g%% is out of the 0%%-100%% range", v)
		}
		return Selector{Percent: v}, nil
	default:
		return Selector{}, errors.New("expected \"from\", \"to\", or a percentage")
	}
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
