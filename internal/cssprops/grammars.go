package cssprops

import (
	"strconv"
	"strings"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/csslexer"
)

// GrammarFunc attempts to parse a property's typed value out of r. It
// returns ok=false (having consumed whatever it likes) to signal the
// dispatcher should rewind and fall back, per the dispatcher contract.
type GrammarFunc func(r *reader) (StyleValue, bool)

func grammarKeyword(keywords []string) GrammarFunc {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		set[k] = true
	}
	return func(r *reader) (StyleValue, bool) {
		pt, ok := r.peek().(*cssast.PreservedToken)
		if !ok || pt.Cur.Tok.Kind != csslexer.KindIdent {
			return StyleValue{}, false
		}
		text := strings.ToLower(pt.Cur.Tok.DecodedText(r.source))
		if !set[text] {
			return StyleValue{}, false
		}
		r.next()
		return StyleValue{Kind: KindKeyword, Keyword: atom.Intern(text)}, true
	}
}

func grammarLength(r *reader) (StyleValue, bool) {
	pt, ok := r.peek().(*cssast.PreservedToken)
	if !ok {
		return StyleValue{}, false
	}
	switch pt.Cur.Tok.Kind {
	case csslexer.KindDimension:
		r.next()
		return StyleValue{Kind: KindLength, Length: Length{Value: pt.Cur.Tok.Value, Unit: pt.Cur.Tok.Unit.String()}}, true
	case csslexer.KindNumber:
		// Unitless zero is the one bare-number length CSS permits.
		if pt.Cur.Tok.Value == 0 {
			r.next()
			return StyleValue{Kind: KindLength, Length: Length{Value: 0, Unit: ""}}, true
		}
		return StyleValue{}, false
	case csslexer.KindIdent:
		if strings.EqualFold(pt.Cur.Tok.DecodedText(r.source), "auto") {
			r.next()
			return StyleValue{Kind: KindKeyword, Keyword: atom.Intern("auto")}, true
		}
		return StyleValue{}, false
	default:
		return StyleValue{}, false
	}
}

func grammarPercentage(r *reader) (StyleValue, bool) {
	pt, ok := r.peek().(*cssast.PreservedToken)
	if !ok {
		return StyleValue{}, false
	}
	switch pt.Cur.Tok.Kind {
	case csslexer.KindPercentage:
		r.next()
		return StyleValue{Kind: KindPercentage, Percentage: pt.Cur.Tok.Value / 100}, true
	case csslexer.KindNumber:
		r.next()
		return StyleValue{Kind: KindPercentage, Percentage: pt.Cur.Tok.Value}, true
	default:
		return StyleValue{}, false
	}
}

func grammarInteger(r *reader) (StyleValue, bool) {
	pt, ok := r.peek().(*cssast.PreservedToken)
	if !ok || pt.Cur.Tok.Kind != csslexer.KindNumber || !pt.Cur.Tok.Flags.Has(csslexer.FlagIsInteger) {
		return StyleValue{}, false
	}
	text := pt.Cur.Tok.DecodedText(r.source)
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return StyleValue{}, false
	}
	r.next()
	return StyleValue{Kind: KindInteger, Integer: n}, true
}

func grammarColor(r *reader) (StyleValue, bool) {
	switch v := r.peek().(type) {
	case *cssast.PreservedToken:
		switch v.Cur.Tok.Kind {
		case csslexer.KindHash:
			hex := strings.TrimPrefix(v.Cur.Tok.DecodedText(r.source), "#")
			c, ok := parseHexColor(hex)
			if !ok {
				return StyleValue{}, false
			}
			r.next()
			return StyleValue{Kind: KindColor, Color: c}, true
		case csslexer.KindIdent:
			name := strings.ToLower(v.Cur.Tok.DecodedText(r.source))
			if name == "transparent" {
				r.next()
				return StyleValue{Kind: KindColor, Color: Color{HasRGBA: true}}, true
			}
			if rgb, ok := namedColors[name]; ok {
				r.next()
				return StyleValue{Kind: KindColor, Color: Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 255, HasRGBA: true}}, true
			}
			return StyleValue{}, false
		default:
			return StyleValue{}, false
		}
	case *cssast.Function:
		switch strings.ToLower(atom.String(v.Name)) {
		case "rgb", "rgba", "hsl", "hsla", "hwb", "lab", "lch", "oklab", "oklch", "color":
			r.next()
			return StyleValue{Kind: KindColor, Color: Color{Raw: v}}, true
		default:
			return StyleValue{}, false
		}
	default:
		return StyleValue{}, false
	}
}

// parseHexColor implements the #RGB / #RGBA / #RRGGBB / #RRGGBBAA forms
// from https://www.w3.org/TR/css-color-4/#typedef-hex-color.
func parseHexColor(hex string) (Color, bool) {
	expand := func(c byte) (byte, bool) {
		v, ok := hexDigit(c)
		if !ok {
			return 0, false
		}
		return v<<4 | v, true
	}
	byte2 := func(a, b byte) (byte, bool) {
		hi, ok1 := hexDigit(a)
		lo, ok2 := hexDigit(b)
		if !ok1 || !ok2 {
			return 0, false
		}
		return hi<<4 | lo, true
	}

	switch len(hex) {
	case 3, 4:
		r, ok1 := expand(hex[0])
		g, ok2 := expand(hex[1])
		b, ok3 := expand(hex[2])
		a := byte(255)
		ok4 := true
		if len(hex) == 4 {
			a, ok4 = expand(hex[3])
		}
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return Color{}, false
		}
		return Color{R: r, G: g, B: b, A: a, HasRGBA: true}, true
	case 6, 8:
		r, ok1 := byte2(hex[0], hex[1])
		g, ok2 := byte2(hex[2], hex[3])
		b, ok3 := byte2(hex[4], hex[5])
		a := byte(255)
		ok4 := true
		if len(hex) == 8 {
			a, ok4 = byte2(hex[6], hex[7])
		}
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return Color{}, false
		}
		return Color{R: r, G: g, B: b, A: a, HasRGBA: true}, true
	default:
		return Color{}, false
	}
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// namedColors is a representative subset of CSS's 148 named colors
// (https://www.w3.org/TR/css-color-4/#named-colors), enough to exercise the
// Color grammar's keyword path; the full table is mechanical to extend.
var namedColors = map[string][3]byte{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"silver":  {192, 192, 192},
	"maroon":  {128, 0, 0},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"olive":   {128, 128, 0},
	"lime":    {0, 255, 0},
	"aqua":    {0, 255, 255},
	"fuchsia": {255, 0, 255},
	"pink":    {255, 192, 203},
	"brown":   {165, 42, 42},
}
