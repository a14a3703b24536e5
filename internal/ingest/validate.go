package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError describes a single validation failure.
// Row 0 signals a structural error (an entirely missing column); any other
// value is the 1-based file line of the offending data row.
type ValidationError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Row == 0 {
		return e.Message
	}
	return fmt.Sprintf("row %d, %s: %s", e.Row, e.Column, e.Message)
}

// emailPattern is deliberately loose: one or more non-space characters,
// an @, more non-space, a dot, more non-space.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate checks a parsed table against a required-column set and returns
// every validation error found, in append order: structural missing-column
// errors first, then per-row errors in row order with required columns in
// declaration order. Errors are never deduplicated.
//
// Validate is a pure function of its inputs; it never mutates the table and
// repeated calls yield identical results.
func Validate(table Table, required []string) []ValidationError {
	var errs []ValidationError

	headerSet := make(map[string]bool, len(table.Headers))
	for _, h := range table.Headers {
		headerSet[h] = true
	}

	for _, col := range required {
		if !headerSet[col] {
			errs = append(errs, ValidationError{
				Row:     0,
				Column:  col,
				Message: "Missing required column: " + col,
			})
		}
	}

	for _, row := range table.Rows {
		for _, col := range required {
			if strings.TrimSpace(row.Get(col)) == "" {
				errs = append(errs, ValidationError{
					Row:     row.Index,
					Column:  col,
					Message: col + " is required",
				})
			}
		}

		// Format checks apply to well-known columns whenever they are
		// present and non-empty, regardless of the required set.
		if v := row.Get("Email"); v != "" && !emailPattern.MatchString(v) {
			errs = append(errs, ValidationError{
				Row:     row.Index,
				Column:  "Email",
				Message: "Invalid email format",
			})
		}

		// Any parseable number passes, including zero and negatives.
		if v := row.Get("Amount"); v != "" {
			if _, err := decimal.NewFromString(v); err != nil {
				errs = append(errs, ValidationError{
					Row:     row.Index,
					Column:  "Amount",
					Message: "Amount must be a valid number",
				})
			}
		}

		if v := row.Get("Stock"); v != "" {
			if _, err := strconv.Atoi(v); err != nil {
				errs = append(errs, ValidationError{
					Row:     row.Index,
					Column:  "Stock",
					Message: "Stock must be a valid number",
				})
			}
		}
	}

	return errs
}

// ValidateFile runs the full pipeline for a named file: parse, infer the
// kind from the file name, and validate against that kind's required columns.
func ValidateFile(fileName, text string) (Table, Kind, []ValidationError) {
	table := Parse(text)
	kind := InferKind(fileName)
	return table, kind, Validate(table, kind.RequiredColumns())
}
