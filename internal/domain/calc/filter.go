package calc

import (
	"strings"

	"github.com/diillson/printer-tco-cli/internal/domain/entity"
)

// Predicate is a conjunction of field-level constraints for narrowing a printer list.
type Predicate struct {
	ModelContains string
	MinPrice      *float64
	MaxPrice      *float64
	ColorOnly     bool
}

// Matches informa se o registro satisfaz todas as restrições do predicado.
func (pr Predicate) Matches(p entity.Printer) bool {
	if pr.ModelContains != "" &&
		!strings.Contains(strings.ToLower(p.Model), strings.ToLower(pr.ModelContains)) {
		return false
	}
	if pr.MinPrice != nil && p.PurchasePrice < *pr.MinPrice {
		return false
	}
	if pr.MaxPrice != nil && p.PurchasePrice > *pr.MaxPrice {
		return false
	}
	if pr.ColorOnly && !p.IsColor {
		return false
	}
	return true
}

// Filter returns the printers matching the predicate, preserving input order.
// A função é pura: a lista original nunca é modificada.
func Filter(printers []entity.Printer, pr Predicate) []entity.Printer {
	out := make([]entity.Printer, 0, len(printers))
	for _, p := range printers {
		if pr.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
