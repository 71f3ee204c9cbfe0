package cssparser

import (
	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/csscursor"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

// ParseStylesheet runs the top-level "consume a list of rules" algorithm
// (https://www.w3.org/TR/css-syntax-3/#consume-list-of-rules) over the
// parser's whole token stream and returns the resulting Stylesheet. This is
// the toolkit's main entry point; internal/cssparser's other list/block
// productions are what it calls into.
func (p *Parser) ParseStylesheet() *cssast.Stylesheet {
	sheet := p.Tree.NewStylesheet()
	sheet.Rules = p.parseRuleList(true)
	return sheet
}

// parseRuleList implements "consume a list of rules", shared between the
// top level (topLevel true, where CDO/CDC tokens are silently dropped) and
// the body of an at-rule like @media (topLevel false, where CDO/CDC are
// just ordinary delimiters with no special meaning).
func (p *Parser) parseRuleList(topLevel bool) []cssast.Rule {
	restore := p.PushStop(csslexer.KindCloseBrace)
	defer restore()

	var rules []cssast.Rule
	for {
		c := p.Peek()
		switch c.Tok.Kind {
		case csslexer.KindEndOfFile, csslexer.KindCloseBrace:
			return rules
		case csslexer.KindWhitespace:
			p.Next()
		case csslexer.KindCDO, csslexer.KindCDC:
			if topLevel {
				p.Next()
				continue
			}
			if r := p.parseQualifiedRule(); r != nil {
				rules = append(rules, r)
			}
		case csslexer.KindAtKeyword:
			if r := p.parseAtRule(); r != nil {
				rules = append(rules, r)
			}
		default:
			if r := p.parseQualifiedRule(); r != nil {
				rules = append(rules, r)
			}
		}
	}
}

// parseAtRule implements "consume an at-rule": collect a prelude of
// component values up to the next `{`, `;`, or EOF, then either consume a
// block or end the statement there.
func (p *Parser) parseAtRule() *cssast.AtRule {
	start := p.Next() // the at-keyword itself
	name := p.FoldIdent(start)

	restore := p.PushStop(csslexer.KindOpenBrace, csslexer.KindSemicolon)
	prelude := p.parseComponentValueList()
	restore()

	switch p.Peek().Tok.Kind {
	case csslexer.KindSemicolon:
		p.Next()
		return p.Tree.NewAtRule(p.span(start.Offset), name, prelude, nil, false)
	case csslexer.KindOpenBrace:
		p.Next()
		block := p.parseRuleOrDeclarationBlock(name)
		p.expectCloseBrace()
		return p.Tree.NewAtRule(p.span(start.Offset), name, prelude, block, true)
	default: // EOF
		return p.Tree.NewAtRule(p.span(start.Offset), name, prelude, nil, false)
	}
}

// parseQualifiedRule implements "consume a qualified rule": collect a
// prelude up to the next `{` and then consume its block, or report and
// discard a malformed rule on EOF.
func (p *Parser) parseQualifiedRule() cssast.Rule {
	start := p.Peek()

	restore := p.PushStop(csslexer.KindOpenBrace)
	prelude := p.parseComponentValueList()
	restore()

	if p.Peek().Tok.Kind == csslexer.KindEndOfFile {
		p.Errorf(logger.MsgID_CSS_CSSSyntaxError, start, "Unexpected end of file while parsing a rule")
		return p.Tree.NewBadRule(p.span(start.Offset), nil)
	}

	p.Next() // the open brace
	block := p.parseRuleOrDeclarationBlock(atom.Empty)
	p.expectCloseBrace()
	return p.Tree.NewQualifiedRule(p.span(start.Offset), prelude, block)
}

// parseRuleOrDeclarationBlock consumes a `{ ... }` block's contents as a
// mix of declarations and nested rules, which is what every style rule's
// block and most at-rule blocks actually are once CSS Nesting is accounted
// for. containerName selects which State bit governs the rules nested
// inside this block: a plain style rule's block (containerName empty) sets
// StateNestingAllowed, so a nested rule's selector may open with "&";
// @keyframes' block (containerName "keyframes") sets StateInKeyframesBlock
// instead, which gates each nested rule's prelude to the percentage/
// from/to shape rather than letting it through as an ordinary selector
// list. Either way the generic toolkit core still only builds the
// grammar-agnostic rule tree — interpreting a keyframe selector's actual
// percentage values stays internal/csskeyframes' job.
func (p *Parser) parseRuleOrDeclarationBlock(containerName atom.Atom) []cssast.Rule {
	restore := p.PushStop(csslexer.KindCloseBrace)
	defer restore()

	prevState := p.State
	if containerName != atom.Empty && p.Atoms.EqualFold(containerName, "keyframes") {
		p.State |= StateInKeyframesBlock
	} else {
		p.State |= StateNestingAllowed
	}
	defer func() { p.State = prevState }()

	var rules []cssast.Rule
	for {
		c := p.Peek()
		switch c.Tok.Kind {
		case csslexer.KindEndOfFile, csslexer.KindCloseBrace:
			return rules
		case csslexer.KindWhitespace, csslexer.KindSemicolon:
			p.Next()
		case csslexer.KindAtKeyword:
			if r := p.parseAtRule(); r != nil {
				rules = append(rules, r)
			}
		default:
			if p.State.Has(StateInKeyframesBlock) {
				if !looksLikeKeyframeSelectorStart(c) {
					p.Errorf(logger.MsgID_CSS_CSSSyntaxError, c, "Expected a keyframe selector (a percentage, \"from\", or \"to\")")
				}
				if r := p.parseQualifiedRule(); r != nil {
					rules = append(rules, r)
				}
				continue
			}
			if looksLikeDeclaration(p) {
				rules = append(rules, p.parseStyleDeclarationOrBad())
			} else if r := p.parseQualifiedRule(); r != nil {
				rules = append(rules, r)
			}
		}
	}
}

// looksLikeKeyframeSelectorStart is a cheap lookahead-free check (it only
// inspects the token already peeked by the caller) used to flag a
// @keyframes block rule whose prelude can't possibly be a percentage/
// from/to selector. It doesn't validate the whole prelude — that grammar
// belongs to internal/csskeyframes, which a caller applies to the prelude
// this function's caller already captured — just the single token that
// would otherwise silently start an ordinary (and here meaningless)
// selector parse.
func looksLikeKeyframeSelectorStart(c csscursor.Cursor) bool {
	return c.Tok.Kind == csslexer.KindIdent || c.Tok.Kind == csslexer.KindPercentage
}

// looksLikeDeclaration peeks far enough ahead (without consuming) to tell a
// declaration (`ident :`) apart from a nested style rule (anything else,
// including a bare ident that starts a selector).
func looksLikeDeclaration(p *Parser) bool {
	c := p.Peek()
	if c.Tok.Kind != csslexer.KindIdent {
		return false
	}
	cp := p.Checkpoint()
	p.Next()
	isColon := p.Peek().Tok.Kind == csslexer.KindColon
	p.Rewind(cp)
	return isColon
}

// ParseDeclarationList implements "consume a list of declarations": a flat
// list, with no nested rules, used by contexts where CSS Nesting does not
// apply (the historical declaration-only contexts, such as an inline style
// attribute or @font-face's block).
func (p *Parser) ParseDeclarationList() []*cssast.Declaration {
	restore := p.PushStop(csslexer.KindCloseBrace)
	defer restore()

	var decls []*cssast.Declaration
	for {
		c := p.Peek()
		switch c.Tok.Kind {
		case csslexer.KindEndOfFile, csslexer.KindCloseBrace:
			return decls
		case csslexer.KindWhitespace, csslexer.KindSemicolon:
			p.Next()
		default:
			if d := p.parseDeclaration(); d != nil {
				decls = append(decls, d)
			} else {
				p.consumeRemnantsOfBadDeclaration()
			}
		}
	}
}

func (p *Parser) parseStyleDeclarationOrBad() cssast.Rule {
	start := p.Peek()
	if d := p.parseDeclaration(); d != nil {
		return p.Tree.NewStyleDeclaration(d)
	}
	tokens := p.consumeRemnantsOfBadDeclaration()
	return p.Tree.NewBadRule(p.span(start.Offset), tokens)
}

// ParseDeclaration parses a single `name: value` pair at the current
// position, or returns nil without consuming anything if one isn't there.
// Exported for grammar packages that need a standalone declaration outside
// a declaration list, such as internal/csssupports' `(prop: value)`
// feature test.
func (p *Parser) ParseDeclaration() *cssast.Declaration { return p.parseDeclaration() }

// parseDeclaration implements "consume a declaration". It returns nil,
// having consumed nothing, when the input does not start with `ident :`,
// leaving the caller to recover via consumeRemnantsOfBadDeclaration. Once
// the colon is read it always returns a Declaration, whose value may be
// empty.
func (p *Parser) parseDeclaration() *cssast.Declaration {
	cp := p.Checkpoint()

	start := p.Next()
	if start.Tok.Kind != csslexer.KindIdent {
		p.Rewind(cp)
		return nil
	}
	name := p.FoldIdent(start)

	if p.Peek().Tok.Kind != csslexer.KindColon {
		p.Rewind(cp)
		return nil
	}
	p.Next() // colon

	restore := p.PushStop(csslexer.KindSemicolon)
	values := p.parseComponentValueList()
	restore()

	important := false
	if n := len(values); n >= 2 {
		if bang, ok := values[n-2].(*cssast.PreservedToken); ok && bang.Cur.Tok.Kind == csslexer.KindDelimExclamation {
			if ident, ok := values[n-1].(*cssast.PreservedToken); ok && ident.Cur.Tok.Kind == csslexer.KindIdent &&
				p.Atoms.EqualFold(p.FoldIdent(ident.Cur), "important") {
				important = true
				values = values[:n-2]
			}
		}
	}
	values = trimTrailingWhitespace(values)

	return p.Tree.NewDeclaration(p.span(start.Offset), name, values, important)
}

func trimTrailingWhitespace(values []cssast.ComponentValue) []cssast.ComponentValue {
	for len(values) > 0 {
		pt, ok := values[len(values)-1].(*cssast.PreservedToken)
		if !ok || pt.Cur.Tok.Kind != csslexer.KindWhitespace {
			break
		}
		values = values[:len(values)-1]
	}
	return values
}

// consumeRemnantsOfBadDeclaration implements the CSS Syntax spec's "consume
// the remnants of a bad declaration": it consumes tokens up to the next
// `;`, `}`, or end of file and returns them. parseStyleDeclarationOrBad
// wraps them in a BadRule so the writer still reproduces their bytes;
// ParseDeclarationList drops them.
func (p *Parser) consumeRemnantsOfBadDeclaration() []csscursor.Cursor {
	var tokens []csscursor.Cursor
	for {
		c := p.Peek()
		if c.Tok.Kind == csslexer.KindEndOfFile || c.Tok.Kind == csslexer.KindSemicolon || c.Tok.Kind == csslexer.KindCloseBrace {
			return tokens
		}
		tokens = append(tokens, p.Next())
	}
}

func (p *Parser) expectCloseBrace() {
	c := p.Peek()
	if c.Tok.Kind == csslexer.KindCloseBrace {
		p.Next()
		return
	}
	// Unterminated block: only a diagnostic is reported. No closing-brace
	// token is synthesized, so the enclosing rule's span ends where the
	// input did.
	p.Errorf(logger.MsgID_CSS_MissingAtRuleBlock, c, "Expected \"}\" to end block")
}
