// Package atom implements the process-wide string interner used for CSS
// identifiers, property names, at-rule keywords, and similar short
// recurring strings. Interning gives the rest of the toolkit O(1) identity
// comparison and lets the property dispatcher (internal/cssprops) key its
// grammar table by a cheap integer instead of re-hashing strings on every
// lookup.
//
// CSS identifiers compare ASCII case-insensitively (`COLOR` and `color`
// name the same property), which is a different equivalence than byte
// equality, so a second, fold-keyed index resolves an identifier to its
// canonical Atom regardless of the case it was written in.
package atom

import (
	"sync"

	"golang.org/x/text/cases"
)

// Atom is an interned-string handle. The zero value, Empty, denotes the
// empty string and is never produced by Intern for a non-empty input.
type Atom uint32

// Empty is the Atom for "".
const Empty Atom = 0

var foldCaser = cases.Fold()

// Table is a thread-safe string-to-Atom interner. The zero Table is ready
// to use. A process typically shares one Table (see the package-level
// Intern/String/EqualFold helpers) across every concurrently running parse,
// since atoms are the one piece of global mutable state the toolkit keeps.
type Table struct {
	mu      sync.RWMutex
	strings []string // index by Atom
	byExact map[string]Atom
	byFold  map[string]Atom // fold-cased key -> canonical (first-seen) Atom
}

// NewTable creates an empty interner.
func NewTable() *Table {
	t := &Table{}
	t.strings = append(t.strings, "") // reserve index 0 for Empty
	return t
}

// Intern returns the Atom for s, allocating a new one if s has not been
// seen before. Interning is case-preserving: two differently-cased spellings
// of the same identifier receive distinct Atoms, but both resolve to the
// same canonical Atom through Fold.
func (t *Table) Intern(s string) Atom {
	if s == "" {
		return Empty
	}

	t.mu.RLock()
	if a, ok := t.byExact[s]; ok {
		t.mu.RUnlock()
		return a
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()

	if a, ok := t.byExact[s]; ok {
		return a
	}
	if t.byExact == nil {
		t.byExact = make(map[string]Atom)
		t.byFold = make(map[string]Atom)
	}
	if len(t.strings) == 0 {
		t.strings = append(t.strings, "") // reserve index 0 for Empty
	}

	a := Atom(len(t.strings))
	t.strings = append(t.strings, s)
	t.byExact[s] = a

	fold := foldCaser.String(s)
	if _, ok := t.byFold[fold]; !ok {
		t.byFold[fold] = a
	}
	return a
}

// String returns the text an Atom was interned from.
func (t *Table) String(a Atom) string {
	if a == Empty {
		return ""
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(a) >= len(t.strings) {
		return ""
	}
	return t.strings[a]
}

// Fold returns the canonical Atom for s under ASCII/Unicode case folding,
// interning s first if necessary. Two calls to Fold with differently-cased
// spellings of the same identifier return the same Atom.
func (t *Table) Fold(s string) Atom {
	a := t.Intern(s)
	if a == Empty {
		return Empty
	}
	fold := foldCaser.String(s)
	t.mu.RLock()
	canonical, ok := t.byFold[fold]
	t.mu.RUnlock()
	if ok {
		return canonical
	}
	return a
}

// FoldKnownLower is Fold for a caller that has already verified s consists
// only of ASCII lowercase letters, digits, '-', and '_' — the CSS lexer
// tracks exactly this per identifier token (csslexer.FlagIsLowerCase), set
// whenever the raw token text contained no escape and no byte outside that
// alphabet. Unicode case folding is the identity function on that alphabet,
// so s is already its own fold key and the golang.org/x/text/cases pass
// Fold would otherwise run is redundant. Real-world CSS is overwhelmingly
// written in lowercase, so this sidesteps the more general folding
// machinery on what is by far the hottest path through Fold.
func (t *Table) FoldKnownLower(s string) Atom {
	a := t.Intern(s)
	if a == Empty {
		return Empty
	}
	t.mu.RLock()
	canonical, ok := t.byFold[s]
	t.mu.RUnlock()
	if ok {
		return canonical
	}
	return a
}

// EqualFold reports whether a's interned text case-insensitively equals s,
// without allocating when a is already s's exact spelling.
func (t *Table) EqualFold(a Atom, s string) bool {
	if a == Empty {
		return s == ""
	}
	t.mu.RLock()
	idx := int(a)
	if idx >= len(t.strings) {
		t.mu.RUnlock()
		return false
	}
	text := t.strings[idx]
	t.mu.RUnlock()
	if text == s {
		return true
	}
	return foldCaser.String(text) == foldCaser.String(s)
}

// Len reports how many distinct (case-sensitive) strings have been interned,
// not counting Empty.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.strings) == 0 {
		return 0
	}
	return len(t.strings) - 1
}

// default is the shared, process-wide table used by the package-level
// helpers below. Parses running concurrently on separate arenas (see
// internal/arena) all intern into this one table, which is the single piece
// of global mutable state the toolkit carries, per the concurrency model.
var defaultTable = NewTable()

// Default returns the process-wide shared Table.
func Default() *Table { return defaultTable }

// Intern interns s into the process-wide table.
func Intern(s string) Atom { return defaultTable.Intern(s) }

// String returns the text for a, looked up in the process-wide table.
func String(a Atom) string { return defaultTable.String(a) }

// Fold returns the canonical case-folded Atom for s in the process-wide
// table.
func Fold(s string) Atom { return defaultTable.Fold(s) }

// FoldKnownLower is FoldKnownLower on the process-wide table.
func FoldKnownLower(s string) Atom { return defaultTable.FoldKnownLower(s) }

// EqualFold reports case-insensitive equality against the process-wide
// table.
func EqualFold(a Atom, s string) bool { return defaultTable.EqualFold(a, s) }
