// Package entry implements manual sales-entry drafts: field-level validation
// of a single record and the per-session pending list records move into once
// they validate.
package entry

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Categories is the fixed set a record's category must be chosen from.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Home & Garden",
	"Books",
	"Sports",
	"Beauty",
	"Others",
}

// Record is one manually entered sale observation. All fields are kept as
// strings because they mirror form inputs; Validate enforces their formats.
type Record struct {
	Date     string `json:"date"`
	Product  string `json:"product"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Customer string `json:"customer"`
	Quantity string `json:"quantity"`
}

// NewRecord returns a draft with defaults: today's date and quantity 1.
func NewRecord(now time.Time) Record {
	return Record{
		Date:     now.Format("2006-01-02"),
		Quantity: "1",
	}
}

// Validate checks every field of the draft and returns a map from field name
// to error message. An empty map means the record is valid. All six fields
// are checked unconditionally so the caller can show every problem at once.
func Validate(r Record) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Product) == "" {
		errs["product"] = "Product name is required"
	}

	if r.Category == "" {
		errs["category"] = "Category is required"
	}

	if r.Amount == "" {
		errs["amount"] = "Amount is required"
	} else if d, err := decimal.NewFromString(r.Amount); err != nil || !d.IsPositive() {
		errs["amount"] = "Amount must be a valid positive number"
	}

	if strings.TrimSpace(r.Customer) == "" {
		errs["customer"] = "Customer name is required"
	}

	if r.Quantity == "" {
		errs["quantity"] = "Quantity is required"
	} else if q, err := strconv.Atoi(r.Quantity); err != nil || q <= 0 {
		errs["quantity"] = "Quantity must be a valid positive number"
	}

	if r.Date == "" {
		errs["date"] = "Date is required"
	}

	return errs
}
