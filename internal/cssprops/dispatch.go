package cssprops

import (
	"strings"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/csslexer"
)

// mathFunctions is the set of variable/math function names that always
// produce a Computed value regardless of which property they appear in,
// per the dispatcher contract's step 3.
var mathFunctions = map[string]bool{
	"var": true, "calc": true, "min": true, "max": true, "clamp": true,
	"round": true, "mod": true, "rem": true, "sin": true, "cos": true,
	"tan": true, "asin": true, "atan": true, "atan2": true, "pow": true,
	"sqrt": true, "hypot": true, "log": true, "exp": true, "abs": true,
	"sign": true,
}

var wideKeywords = map[string]Kind{
	"initial":      KindInitial,
	"inherit":      KindInherit,
	"unset":        KindUnset,
	"revert":       KindRevert,
	"revert-layer": KindRevertLayer,
}

// reader walks a []cssast.ComponentValue with the same O(1)
// checkpoint/rewind shape internal/cssparser gives the token-level cursor,
// so the typed-grammar attempt in step 4 below can speculatively consume
// values and cleanly back out on failure. source is the original source
// text each leaf PreservedToken's Range was computed against, needed to
// decode escapes in idents/strings/dimensions.
type reader struct {
	values []cssast.ComponentValue
	index  int
	source string
}

func (r *reader) checkpoint() int { return r.index }
func (r *reader) rewind(i int)    { r.index = i }
func (r *reader) atEnd() bool     { return r.index >= len(r.values) }

func (r *reader) peek() cssast.ComponentValue {
	if r.atEnd() {
		return nil
	}
	return r.values[r.index]
}

func (r *reader) next() cssast.ComponentValue {
	v := r.peek()
	if v != nil {
		r.index++
	}
	return v
}

// Dispatch implements the property dispatcher contract: given a
// declaration's name and its already-collected value (a list of component
// values, with any trailing "!important" and surrounding whitespace
// already stripped by internal/cssparser), produce a typed StyleValue.
// source is the logger.Source.Contents the declaration's tokens were
// lexed from, needed to decode leaf token text.
func Dispatch(table *Table, nameText string, value []cssast.ComponentValue, source string) StyleValue {
	r := &reader{values: value, source: source}

	if strings.HasPrefix(nameText, "--") {
		return StyleValue{Kind: KindCustom, Raw: value}
	}

	if kw, ok := peekIdent(r); ok && len(r.values) == 1 {
		if kind, ok := wideKeywords[strings.ToLower(kw)]; ok {
			return StyleValue{Kind: kind}
		}
	}

	if isMathFunction(r.peek()) {
		return StyleValue{Kind: KindComputed, Raw: value}
	}

	if entry, ok := table.Lookup(nameText); ok {
		cp := r.checkpoint()
		if sv, ok := entry.Grammar(r); ok && atEndOfValue(r) {
			return sv
		}
		r.rewind(cp)
	}

	if isMathFunction(r.peek()) {
		return StyleValue{Kind: KindComputed, Raw: value}
	}
	return StyleValue{Kind: KindUnknown, Raw: value}
}

// atEndOfValue reports whether the reader has consumed the declaration's
// entire value, which the dispatcher contract requires of a successful
// typed-grammar attempt (steps 4-5: "Success requires that upon completion
// the next token is end-of-value").
func atEndOfValue(r *reader) bool { return r.atEnd() }

func peekIdent(r *reader) (string, bool) {
	pt, ok := r.peek().(*cssast.PreservedToken)
	if !ok || pt.Cur.Tok.Kind != csslexer.KindIdent {
		return "", false
	}
	return pt.Cur.Tok.DecodedText(r.source), true
}

func isMathFunction(v cssast.ComponentValue) bool {
	fn, ok := v.(*cssast.Function)
	return ok && mathFunctions[strings.ToLower(atom.String(fn.Name))]
}
