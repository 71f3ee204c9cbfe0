package cssprops

import (
	_ "embed"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/cssdx/csscore/internal/helpers"
)

//go:embed table.toml
var embeddedTable string

// tomlEntry is the TOML document's row shape; tomlDocument is its root.
type tomlEntry struct {
	Name     string   `toml:"name"`
	Grammar  string   `toml:"grammar"`
	Keywords []string `toml:"keywords"`
}

type tomlDocument struct {
	Property []tomlEntry `toml:"property"`
}

// Entry is one property's compiled dispatch rule: a name and the grammar
// function the dispatcher tries for it.
type Entry struct {
	Name    string
	Grammar GrammarFunc
}

// Table is the compiled property table the dispatcher consults, built once
// from the embedded TOML document at LoadDefaultTable and safe to share
// across concurrent Dispatch calls (it's read-only after construction).
type Table struct {
	byName map[string]Entry
	typos  helpers.TypoDetector
}

// Lookup returns the Entry for a property name, if the table has one.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.byName[name]
	return e, ok
}

// Suggest proposes a corrected property name for one that failed Lookup,
// the same one-character-typo heuristic esbuild's own config/target-name
// validation uses, so a caller building lint-style diagnostics can offer
// "unknown property 'colr' - did you mean 'color'?" instead of a bare
// unknown-property error.
func (t *Table) Suggest(name string) (string, bool) {
	return t.typos.MaybeCorrectTypo(name)
}

// LoadDefaultTable decodes the toolkit's built-in property table. It never
// fails in practice (the TOML document is embedded and checked in), but
// still returns an error rather than panicking: a malformed table is a
// build-time mistake this toolkit's own tests would catch, not something a
// caller should crash over.
func LoadDefaultTable() (*Table, error) {
	return LoadTable(embeddedTable)
}

// LoadTable decodes a property table from TOML text, for callers that want
// to extend or replace the built-in property set.
func LoadTable(doc string) (*Table, error) {
	var parsed tomlDocument
	if _, err := toml.Decode(doc, &parsed); err != nil {
		return nil, errors.Wrap(err, "cssprops: decoding property table")
	}

	t := &Table{byName: make(map[string]Entry, len(parsed.Property))}
	names := make([]string, 0, len(parsed.Property))
	for _, row := range parsed.Property {
		fn, err := grammarFor(row)
		if err != nil {
			return nil, errors.Wrapf(err, "cssprops: property %q", row.Name)
		}
		t.byName[row.Name] = Entry{Name: row.Name, Grammar: fn}
		names = append(names, row.Name)
	}
	t.typos = helpers.MakeTypoDetector(names)
	return t, nil
}

func grammarFor(row tomlEntry) (GrammarFunc, error) {
	switch row.Grammar {
	case "length":
		return grammarLength, nil
	case "percentage":
		return grammarPercentage, nil
	case "integer":
		return grammarInteger, nil
	case "color":
		return grammarColor, nil
	case "keyword":
		return grammarKeyword(row.Keywords), nil
	default:
		return nil, errors.Errorf("unknown grammar %q", row.Grammar)
	}
}
