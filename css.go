// Package css is csscore's public surface: Parse a stylesheet into a tree,
// inspect or transform it with internal/cssvisitor, internal/cssselector,
// and internal/cssprops, then Write it back out to exact or edited source
// text. It sits above internal/* the way esbuild's pkg/api sits above
// esbuild's internal packages — a thin, stable entry point that wires the
// lower-level pieces together and never reaches back into them from a
// caller's perspective.
package css

import (
	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/cssparser"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/csswriter"
	"github.com/cssdx/csscore/internal/logger"
)

// Options configures a Parse call. The zero value is the toolkit's default
// behavior: parse every rule, recover from syntax errors per CSS Syntax
// Module Level 3 rather than aborting, and intern atoms into the
// process-wide atom.Default() table.
type Options struct {
	// Atoms lets a caller choose the atom.Table a Parse call interns into
	// (for example, one table per project, shared across every stylesheet
	// in it). A nil Atoms uses atom.Default(), the process-wide table the
	// package-level atom helpers (atom.Intern, atom.String) also use.
	Atoms *atom.Table
}

// Severity distinguishes a fatal-to-that-one-construct syntax error (the
// construct was discarded or replaced with a recovery placeholder) from a
// warning about something that parsed but is likely a mistake.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one recoverable problem found while parsing. Parse always
// returns a usable tree even when Diagnostics is non-empty — CSS Syntax
// requires that a syntax error inside one rule or declaration not abort
// the rest of the stylesheet.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
}

// Result is the parsed form of one stylesheet: the tree itself, the
// diagnostics collected while building it, and enough of the original
// token stream to Write the tree back out losslessly.
type Result struct {
	Stylesheet  *cssast.Stylesheet
	Diagnostics []Diagnostic
	Atoms       *atom.Table

	source string
	tokens []csslexer.Token
}

// Parse lexes and parses source into a Result. It never returns an error
// of its own — a malformed stylesheet still produces a tree (with BadRule/
// BadDeclaration nodes standing in for what couldn't be parsed) plus
// Diagnostics describing what went wrong, matching the recovery behavior
// CSS Syntax Module Level 3 mandates for a conforming parser.
func Parse(source string, opts Options) *Result {
	atoms := opts.Atoms
	if atoms == nil {
		atoms = atom.Default()
	}

	log := logger.NewDeferLog()
	logSource := logger.Source{Contents: source}

	tokenizeResult := csslexer.Tokenize(log, logSource)
	p := cssparser.New(log, logSource, tokenizeResult.Tokens, atoms)
	sheet := p.ParseStylesheet()

	return &Result{
		Stylesheet:  sheet,
		Diagnostics: collectDiagnostics(log),
		Atoms:       atoms,
		source:      source,
		tokens:      tokenizeResult.Tokens,
	}
}

func collectDiagnostics(log logger.Log) []Diagnostic {
	msgs := log.Done()
	diags := make([]Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		d := Diagnostic{Message: m.Data.Text}
		if m.Kind == logger.Warning {
			d.Severity = SeverityWarning
		}
		if loc := m.Data.Location; loc != nil {
			d.Line = loc.Line
			d.Column = loc.Column
			d.Length = loc.Length
		}
		diags = append(diags, d)
	}
	return diags
}

// Write reconstructs source text from r.Stylesheet: every byte the parser
// read is reproduced exactly, including whitespace and comments the tree
// itself doesn't model as nodes, and any component value or rule a caller
// replaced in the tree (via internal/cssvisitor or direct field mutation)
// is rendered from its own cursors instead of the original bytes at that
// position. See internal/csswriter for how the two are told apart.
func (r *Result) Write() string {
	w := csswriter.New(r.source, r.tokens)
	return w.Write(r.Stylesheet)
}
