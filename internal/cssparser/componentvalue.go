package cssparser

import (
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/csscursor"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

// closeKindOf maps an opening bracket token to the closing one that ends
// its simple block, per "consume a simple block"
// (https://www.w3.org/TR/css-syntax-3/#consume-simple-block).
func closeKindOf(open csslexer.Kind) csslexer.Kind {
	switch open {
	case csslexer.KindOpenBrace:
		return csslexer.KindCloseBrace
	case csslexer.KindOpenBracket:
		return csslexer.KindCloseBracket
	default:
		return csslexer.KindCloseParen
	}
}

// parseComponentValueList implements "consume a list of component values":
// read component values until the active stop set (set up by the caller via
// PushStop) or end-of-file is reached.
func (p *Parser) parseComponentValueList() []cssast.ComponentValue {
	var values []cssast.ComponentValue
	for {
		if p.AtEndOfScope() {
			return values
		}
		values = append(values, p.parseComponentValue())
	}
}

// parseComponentValue implements "consume a component value": a function,
// a simple block, or a single preserved token.
func (p *Parser) parseComponentValue() cssast.ComponentValue {
	start := p.Next()
	switch start.Tok.Kind {
	case csslexer.KindFunction:
		return p.parseFunction(start)
	case csslexer.KindOpenBrace, csslexer.KindOpenBracket, csslexer.KindOpenParen:
		return p.parseSimpleBlock(start)
	default:
		return p.Tree.NewPreservedToken(cssast.Span{Start: start.Offset, End: start.Offset + 1}, start)
	}
}

// parseFunction implements "consume a function": start is the already
// consumed KindFunction token (the name plus its opening "(").
func (p *Parser) parseFunction(start csscursor.Cursor) *cssast.Function {
	name := p.FoldIdent(start)

	restore := p.PushStop(csslexer.KindCloseParen)
	var values []cssast.ComponentValue
	for {
		if p.Peek().Tok.Kind == csslexer.KindEndOfFile {
			p.Errorf(logger.MsgID_CSS_CSSSyntaxError, p.Peek(), "Unexpected end of file inside function")
			break
		}
		if p.Peek().Tok.Kind == csslexer.KindCloseParen {
			p.Next()
			break
		}
		values = append(values, p.parseComponentValue())
	}
	restore()

	return p.Tree.NewFunction(p.span(start.Offset), name, values)
}

// parseSimpleBlock implements "consume a simple block": start is the
// already consumed opening bracket token.
func (p *Parser) parseSimpleBlock(start csscursor.Cursor) *cssast.SimpleBlock {
	closeKind := closeKindOf(start.Tok.Kind)

	restore := p.PushStop(closeKind)
	var values []cssast.ComponentValue
	for {
		if p.Peek().Tok.Kind == csslexer.KindEndOfFile {
			p.Errorf(logger.MsgID_CSS_CSSSyntaxError, p.Peek(), "Unexpected end of file inside block")
			break
		}
		if p.Peek().Tok.Kind == closeKind {
			p.Next()
			break
		}
		values = append(values, p.parseComponentValue())
	}
	restore()

	return p.Tree.NewSimpleBlock(p.span(start.Offset), start.Tok.Kind, values)
}
