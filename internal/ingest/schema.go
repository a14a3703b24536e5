package ingest

import (
	"fmt"
	"strings"
)

// Kind is the inferred logical category of an uploaded file. It determines
// which columns are mandatory during validation.
type Kind string

const (
	KindSales     Kind = "sales"
	KindInventory Kind = "inventory"
	KindCustomers Kind = "customers"
)

// Kinds lists all dataset kinds in inference priority order.
var Kinds = []Kind{KindSales, KindInventory, KindCustomers}

// requiredColumns maps each kind to its mandatory column set, in the
// declaration order validation errors are reported in.
var requiredColumns = map[Kind][]string{
	KindSales:     {"Date", "Product", "Amount"},
	KindInventory: {"Product", "Stock", "Price"},
	KindCustomers: {"Name", "Email"},
}

// RequiredColumns returns the mandatory columns for the kind.
// The returned slice is a copy; callers may modify it freely.
func (k Kind) RequiredColumns() []string {
	cols := requiredColumns[k]
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// Valid reports whether k is a known dataset kind.
func (k Kind) Valid() bool {
	_, ok := requiredColumns[k]
	return ok
}

// ParseKind converts a user-supplied string to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown dataset kind %q (expected sales, inventory, or customers)", s)
	}
	return k, nil
}

// InferKind guesses the dataset kind from a file name using case-insensitive
// substring matching, checked in fixed priority order. Files matching nothing
// default to sales.
//
// This is a name heuristic, not a content classifier; a sales file named
// "data.csv" is still treated as sales, and a mislabeled file produces
// missing-column errors rather than a kind mismatch. SuggestKind offers a
// content-based second opinion without changing this contract.
func InferKind(fileName string) Kind {
	name := strings.ToLower(fileName)
	switch {
	case strings.Contains(name, "sales"):
		return KindSales
	case strings.Contains(name, "inventory"):
		return KindInventory
	case strings.Contains(name, "customer"):
		return KindCustomers
	default:
		return KindSales
	}
}

// SuggestKind scores header overlap against each kind's required columns and
// returns the best match. Ties and zero-overlap headers fall back to sales,
// matching InferKind's default. The suggestion is advisory only; validation
// always runs against the kind InferKind chose.
func SuggestKind(headers []string) Kind {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.ToLower(h)] = true
	}

	best := KindSales
	bestScore := 0
	for _, k := range Kinds {
		score := 0
		for _, col := range requiredColumns[k] {
			if present[strings.ToLower(col)] {
				score++
			}
		}
		if score > bestScore {
			best = k
			bestScore = score
		}
	}
	return best
}
