// Package cssast defines the component-value tree the parser builds: the
// generic "preserved tokens, functions, and simple blocks" scaffolding from
// CSS Syntax Module Level 3 (https://www.w3.org/TR/css-syntax-3/#component-value),
// plus the rule and declaration shapes layered on top of it. Every node is
// allocated out of an internal/arena Arena so a whole parse tree is freed in
// one step when its Arena is dropped, and the parser's checkpoint/rewind
// during a speculative parse never leaves partially-built nodes reachable
// from the final tree.
//
// The shape here is esbuild's css_ast.go generalized: esbuild's Token
// embeds an AST-shaped Children slice directly inside its lexer token and
// dispatches on a single Rule.Data any field switched over in a giant type
// switch. This package instead keeps the lexer's Token (internal/csslexer)
// separate from the tree's ComponentValue, and gives Rule and
// ComponentValue each a small closed interface, which is what lets the
// parser core (internal/cssparser) express AtRule/QualifiedRule/Block as
// generic traits instead of one big switch.
package cssast

import (
	"github.com/cssdx/csscore/internal/arena"
	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/csscursor"
	"github.com/cssdx/csscore/internal/csslexer"
)

// Span is a half-open range of token indices (csscursor.SourceOffset) into
// the token array a node was parsed from, not a range of source bytes;
// internal/csswriter maps the indices to bytes through that array. Nodes
// built by error recovery (see BadDeclaration) may have a zero-length Span
// at the point recovery gave up.
type Span struct {
	Start csscursor.SourceOffset
	End   csscursor.SourceOffset
}

// ComponentValue is CSS Syntax's "component value": a preserved token, a
// function, or a simple block. Property values and at-rule preludes are
// both sequences of ComponentValue before the property dispatcher
// (internal/cssprops) interprets them against a specific grammar.
type ComponentValue interface {
	isComponentValue()
	ComponentSpan() Span
}

// PreservedToken wraps a single lexer token that carries no further
// structure of its own (an ident, a number, a delimiter, and so on).
type PreservedToken struct {
	Span Span
	Cur  csscursor.Cursor
}

func (*PreservedToken) isComponentValue()        {}
func (t *PreservedToken) ComponentSpan() Span     { return t.Span }

// Function is a `name(...)` component value. Name is interned so the
// property dispatcher can switch on an Atom instead of re-comparing
// strings (e.g. recognizing `var(`, `calc(`, `min(`).
type Function struct {
	Span   Span
	Name   atom.Atom
	Values []ComponentValue
}

func (*Function) isComponentValue()    {}
func (f *Function) ComponentSpan() Span { return f.Span }

// SimpleBlock is a `{...}`, `[...]`, or `(...)` component value that is not
// a function call. Open names which of the three bracket kinds it is.
type SimpleBlock struct {
	Span   Span
	Open   csslexer.Kind // one of KindOpenBrace, KindOpenBracket, KindOpenParen
	Values []ComponentValue
}

func (*SimpleBlock) isComponentValue()     {}
func (b *SimpleBlock) ComponentSpan() Span { return b.Span }

// Declaration is a `name: value [!important]` pair found inside a
// declaration list (a style rule's block, an at-rule's block, or an inline
// style attribute's worth of declarations).
type Declaration struct {
	Span      Span
	Name      atom.Atom
	Value     []ComponentValue
	Important bool
}

// BadDeclaration is what the parser keeps instead of a Declaration when a
// declaration fails to parse: the CSS Syntax spec requires that a syntax
// error inside one declaration not abort the rest of the stylesheet, so the
// offending tokens are kept verbatim for diagnostics and round-tripping
// rather than dropped.
type BadDeclaration struct {
	Span   Span
	Tokens []csscursor.Cursor
}

// Rule is the sum type for anything that can appear in a list of rules: a
// qualified rule (selector + declaration block), an at-rule, or — inside a
// style rule's own block — a nested declaration.
type Rule interface {
	isRule()
	RuleSpan() Span
}

// QualifiedRule is `prelude { block }` where prelude did not start with `@`.
// At the top level and inside most at-rules this is a style rule (prelude
// is a selector list); inside @keyframes it's a keyframe rule (prelude is a
// list of percentages/"from"/"to").
type QualifiedRule struct {
	Span    Span
	Prelude []ComponentValue
	Block   []Rule
}

func (*QualifiedRule) isRule()          {}
func (r *QualifiedRule) RuleSpan() Span { return r.Span }

// AtRule is `@name prelude [{ block }]` — the block is absent for
// statement-form at-rules like `@import` and `@charset`.
type AtRule struct {
	Span    Span
	Name    atom.Atom
	Prelude []ComponentValue
	Block   []Rule // nil for a statement at-rule
	HasBlock bool
}

func (*AtRule) isRule()          {}
func (r *AtRule) RuleSpan() Span { return r.Span }

// StyleDeclaration adapts a Declaration to Rule so it can sit directly in a
// style rule's own block (CSS Nesting allows a style rule's block to mix
// declarations and nested rules).
type StyleDeclaration struct {
	Decl *Declaration
}

func (*StyleDeclaration) isRule()          {}
func (d *StyleDeclaration) RuleSpan() Span { return d.Decl.Span }

// BadRule adapts a BadDeclaration or any other recovery artifact to Rule so
// parse errors inside a block don't need a separate "maybe rule, maybe
// error" return type at every call site. Tokens keeps whatever was consumed
// during recovery so a writer can still round-trip the original bytes.
type BadRule struct {
	Span   Span
	Tokens []csscursor.Cursor
}

func (*BadRule) isRule()          {}
func (r *BadRule) RuleSpan() Span { return r.Span }

// Stylesheet is the root of a parse tree: an ordered list of top-level
// rules, plus the Arena every node in the tree (including Stylesheet
// itself) was allocated from.
type Stylesheet struct {
	Rules []Rule
	Arena *arena.Arena
}

// Tree is the per-parse allocator bundle: one Slab per concrete node type,
// registered with a shared Arena so a single Arena.Checkpoint/Rewind pair
// (driven by the parser's own checkpoint/rewind, see internal/cssparser)
// undoes allocations from every node type at once.
type Tree struct {
	A                *arena.Arena
	tokens           *arena.Slab[PreservedToken]
	functions        *arena.Slab[Function]
	blocks           *arena.Slab[SimpleBlock]
	declarations     *arena.Slab[Declaration]
	badDeclarations  *arena.Slab[BadDeclaration]
	qualifiedRules   *arena.Slab[QualifiedRule]
	atRules          *arena.Slab[AtRule]
	styleDecls       *arena.Slab[StyleDeclaration]
	badRules         *arena.Slab[BadRule]
	stylesheets      *arena.Slab[Stylesheet]
}

// NewTree creates a Tree backed by a fresh Arena.
func NewTree() *Tree {
	a := arena.New()
	return &Tree{
		A:               a,
		tokens:          arena.Of[PreservedToken](a, "cssast.PreservedToken", 128),
		functions:       arena.Of[Function](a, "cssast.Function", 32),
		blocks:          arena.Of[SimpleBlock](a, "cssast.SimpleBlock", 32),
		declarations:    arena.Of[Declaration](a, "cssast.Declaration", 64),
		badDeclarations: arena.Of[BadDeclaration](a, "cssast.BadDeclaration", 8),
		qualifiedRules:  arena.Of[QualifiedRule](a, "cssast.QualifiedRule", 32),
		atRules:         arena.Of[AtRule](a, "cssast.AtRule", 16),
		styleDecls:      arena.Of[StyleDeclaration](a, "cssast.StyleDeclaration", 64),
		badRules:        arena.Of[BadRule](a, "cssast.BadRule", 8),
		stylesheets:     arena.Of[Stylesheet](a, "cssast.Stylesheet", 1),
	}
}

func (t *Tree) NewStylesheet() *Stylesheet {
	s := t.stylesheets.Alloc()
	s.Arena = t.A
	return s
}

func (t *Tree) NewPreservedToken(span Span, cur csscursor.Cursor) *PreservedToken {
	n := t.tokens.Alloc()
	n.Span, n.Cur = span, cur
	return n
}

func (t *Tree) NewFunction(span Span, name atom.Atom, values []ComponentValue) *Function {
	n := t.functions.Alloc()
	n.Span, n.Name, n.Values = span, name, values
	return n
}

func (t *Tree) NewSimpleBlock(span Span, open csslexer.Kind, values []ComponentValue) *SimpleBlock {
	n := t.blocks.Alloc()
	n.Span, n.Open, n.Values = span, open, values
	return n
}

func (t *Tree) NewDeclaration(span Span, name atom.Atom, value []ComponentValue, important bool) *Declaration {
	n := t.declarations.Alloc()
	n.Span, n.Name, n.Value, n.Important = span, name, value, important
	return n
}

func (t *Tree) NewBadDeclaration(span Span, tokens []csscursor.Cursor) *BadDeclaration {
	n := t.badDeclarations.Alloc()
	n.Span, n.Tokens = span, tokens
	return n
}

func (t *Tree) NewQualifiedRule(span Span, prelude []ComponentValue, block []Rule) *QualifiedRule {
	n := t.qualifiedRules.Alloc()
	n.Span, n.Prelude, n.Block = span, prelude, block
	return n
}

func (t *Tree) NewAtRule(span Span, name atom.Atom, prelude []ComponentValue, block []Rule, hasBlock bool) *AtRule {
	n := t.atRules.Alloc()
	n.Span, n.Name, n.Prelude, n.Block, n.HasBlock = span, name, prelude, block, hasBlock
	return n
}

func (t *Tree) NewStyleDeclaration(decl *Declaration) *StyleDeclaration {
	n := t.styleDecls.Alloc()
	n.Decl = decl
	return n
}

func (t *Tree) NewBadRule(span Span, tokens []csscursor.Cursor) *BadRule {
	n := t.badRules.Alloc()
	n.Span, n.Tokens = span, tokens
	return n
}
