// Command csscheck parses one or more CSS files and reports any syntax
// diagnostics found, in the same spirit as cmd/esbuild's own small
// flag-free diagnostic entry points — a minimal driver over the library's
// public package rather than a build tool of its own.
package main

import (
	"fmt"
	"os"

	"github.com/cssdx/csscore"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: csscheck <file.css> [file.css ...]")
		os.Exit(1)
	}

	hadErrors := false
	for _, path := range os.Args[1:] {
		if !checkFile(path) {
			hadErrors = true
		}
	}
	if hadErrors {
		os.Exit(1)
	}
}

func checkFile(path string) bool {
	contents, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
		return false
	}

	result := css.Parse(string(contents), css.Options{})
	ok := true
	for _, d := range result.Diagnostics {
		severity := "error"
		if d.Severity == css.SeverityWarning {
			severity = "warning"
		} else {
			ok = false
		}
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n", path, d.Line, d.Column, severity, d.Message)
	}
	return ok
}
