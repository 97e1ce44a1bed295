// Package printer formats validation results for text output.
package printer

import (
	"fmt"
	"io"

	"github.com/Saturn-DEX/distributions/internal/runner"
)

// ValidationResultPrinter renders one pass/fail line per file, with the
// error list indented underneath failing files.
type ValidationResultPrinter struct{}

func NewValidationResultPrinter() *ValidationResultPrinter {
	return &ValidationResultPrinter{}
}

func (p *ValidationResultPrinter) Header(w io.Writer, count int) {
	// No header; diagnostics start with the first file.
}

func (p *ValidationResultPrinter) Item(w io.Writer, res runner.FileResult) error {
	if res.Valid() {
		_, err := fmt.Fprintf(w, "✅ %s\n", res.Path)
		return err
	}

	if _, err := fmt.Fprintf(w, "❌ %s\n", res.Path); err != nil {
		return err
	}
	for _, msg := range res.Errors {
		if _, err := fmt.Fprintf(w, "   - %s\n", msg); err != nil {
			return err
		}
	}

	return nil
}

func (p *ValidationResultPrinter) Footer(w io.Writer, count int) {
	plural := ""
	if count != 1 {
		plural = "s"
	}
	_, _ = fmt.Fprintf(w, "\nChecked %d file%s\n", count, plural)
}
