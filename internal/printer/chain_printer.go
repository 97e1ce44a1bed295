package printer

import (
	"fmt"
	"io"

	"github.com/Saturn-DEX/distributions/internal/chains"
)

// ChainListPrinter renders the effective chain table as aligned text rows.
type ChainListPrinter struct{}

func NewChainListPrinter() *ChainListPrinter {
	return &ChainListPrinter{}
}

func (p *ChainListPrinter) Header(w io.Writer, count int) {
	_, _ = fmt.Fprintf(w, "%-16s %s\n", "CHAIN", "ID")
}

func (p *ChainListPrinter) Item(w io.Writer, entry chains.Entry) error {
	_, err := fmt.Fprintf(w, "%-16s %d\n", entry.Name, entry.ID)
	return err
}

func (p *ChainListPrinter) Footer(w io.Writer, count int) {
	plural := ""
	if count != 1 {
		plural = "s"
	}
	_, _ = fmt.Fprintf(w, "\n%d chain%s\n", count, plural)
}
