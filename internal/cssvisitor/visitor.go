// Package cssvisitor implements a read-only tree traversal: Walk switches
// on each cssast node's concrete type, calls the matching Visit* hook and
// then descends into the node's children. The cssast node types have no
// Accept method of their own; all dispatch happens in Walk. Visitors may
// stop descending into a subtree by returning false, but nothing here lets
// a visitor mutate the tree — each hook returns only whether to descend,
// never a replacement node.
//
// Nothing in the teacher's internal/css_ast has an accept/visit pair of its
// own (esbuild walks its AST with hand-written recursive functions local to
// each pass, e.g. css_parser.go's mangleRules), so this package's shape is
// grounded directly in spec.md §4.6 rather than adapted teacher code.
package cssvisitor

import "github.com/cssdx/csscore/internal/cssast"

// Visitor is the set of hooks Walk invokes for each node kind it
// encounters. Every hook returns whether to descend into that node's
// children; returning false prunes the subtree without stopping the walk
// over the rest of the tree.
type Visitor interface {
	VisitStylesheet(s *cssast.Stylesheet) bool
	VisitQualifiedRule(r *cssast.QualifiedRule) bool
	VisitAtRule(r *cssast.AtRule) bool
	VisitStyleDeclaration(d *cssast.StyleDeclaration) bool
	VisitBadRule(r *cssast.BadRule) bool
	VisitDeclaration(d *cssast.Declaration) bool
	VisitFunction(f *cssast.Function) bool
	VisitSimpleBlock(b *cssast.SimpleBlock) bool
	VisitPreservedToken(t *cssast.PreservedToken) bool
}

// BaseVisitor is embeddable by a Visitor implementation that only cares
// about a few node kinds: every hook defaults to "descend", so an embedder
// only needs to override the hooks it actually uses.
type BaseVisitor struct{}

func (BaseVisitor) VisitStylesheet(*cssast.Stylesheet) bool             { return true }
func (BaseVisitor) VisitQualifiedRule(*cssast.QualifiedRule) bool       { return true }
func (BaseVisitor) VisitAtRule(*cssast.AtRule) bool                     { return true }
func (BaseVisitor) VisitStyleDeclaration(*cssast.StyleDeclaration) bool { return true }
func (BaseVisitor) VisitBadRule(*cssast.BadRule) bool                   { return true }
func (BaseVisitor) VisitDeclaration(*cssast.Declaration) bool           { return true }
func (BaseVisitor) VisitFunction(*cssast.Function) bool                 { return true }
func (BaseVisitor) VisitSimpleBlock(*cssast.SimpleBlock) bool           { return true }
func (BaseVisitor) VisitPreservedToken(*cssast.PreservedToken) bool     { return true }

// Walk runs v over a whole stylesheet.
func Walk(v Visitor, s *cssast.Stylesheet) {
	if !v.VisitStylesheet(s) {
		return
	}
	walkRules(v, s.Rules)
}

func walkRules(v Visitor, rules []cssast.Rule) {
	for _, r := range rules {
		walkRule(v, r)
	}
}

func walkRule(v Visitor, r cssast.Rule) {
	switch r := r.(type) {
	case *cssast.QualifiedRule:
		if v.VisitQualifiedRule(r) {
			walkComponentValues(v, r.Prelude)
			walkRules(v, r.Block)
		}
	case *cssast.AtRule:
		if v.VisitAtRule(r) {
			walkComponentValues(v, r.Prelude)
			walkRules(v, r.Block)
		}
	case *cssast.StyleDeclaration:
		if v.VisitStyleDeclaration(r) {
			walkDeclaration(v, r.Decl)
		}
	case *cssast.BadRule:
		v.VisitBadRule(r)
	}
}

func walkDeclaration(v Visitor, d *cssast.Declaration) {
	if v.VisitDeclaration(d) {
		walkComponentValues(v, d.Value)
	}
}

func walkComponentValues(v Visitor, values []cssast.ComponentValue) {
	for _, cv := range values {
		walkComponentValue(v, cv)
	}
}

func walkComponentValue(v Visitor, cv cssast.ComponentValue) {
	switch cv := cv.(type) {
	case *cssast.Function:
		if v.VisitFunction(cv) {
			walkComponentValues(v, cv.Values)
		}
	case *cssast.SimpleBlock:
		if v.VisitSimpleBlock(cv) {
			walkComponentValues(v, cv.Values)
		}
	case *cssast.PreservedToken:
		v.VisitPreservedToken(cv)
	}
}
