package cssparser

// Parseable is the constraint the generic Parse function requires: *T must
// implement a Parse method that reads from p and reports whether the
// grammar it knows about matched. This is how internal/cssselector and
// internal/cssprops plug a concrete grammar (a selector, a property value)
// into the parser core without this package importing either of them.
type Parseable[T any] interface {
	*T
	Parse(p *Parser) bool
}

// Parse runs T's Parse method over a speculative Checkpoint: if it returns
// false, the Stream and Tree are rewound as if nothing had been read, so a
// caller can try several candidate productions in sequence (as
// internal/cssselector's SelectorComponent alternatives do) without any of
// the failed attempts leaving partial nodes behind.
func Parse[T any, PT Parseable[T]](p *Parser) (T, bool) {
	var zero T
	cp := p.Checkpoint()
	node := PT(&zero)
	if !node.Parse(p) {
		p.Rewind(cp)
		return zero, false
	}
	return zero, true
}

// TryParse is Parse's explicit-pointer-receiver counterpart, for callers
// that already have a concrete *T (typically one field of a larger node
// being filled in) instead of wanting Parse to allocate one on the stack.
func TryParse[T any, PT Parseable[T]](p *Parser, node PT) bool {
	cp := p.Checkpoint()
	if !node.Parse(p) {
		p.Rewind(cp)
		return false
	}
	return true
}
