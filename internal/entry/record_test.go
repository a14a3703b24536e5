package entry

import (
	"testing"
	"time"
)

// validRecord returns a draft that passes every check.
func validRecord() Record {
	return Record{
		Date:     "2024-01-01",
		Product:  "iPhone 13",
		Category: "Electronics",
		Amount:   "999.00",
		Customer: "John Doe",
		Quantity: "1",
	}
}

func TestNewRecord_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	r := NewRecord(now)

	if r.Date != "2024-03-15" {
		t.Errorf("Date = %q, want %q", r.Date, "2024-03-15")
	}
	if r.Quantity != "1" {
		t.Errorf("Quantity = %q, want %q", r.Quantity, "1")
	}
	if r.Product != "" || r.Category != "" || r.Amount != "" || r.Customer != "" {
		t.Errorf("new record has non-empty fields: %+v", r)
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	if errs := Validate(validRecord()); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestValidate_SingleFieldFailures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Record)
		wantField string
	}{
		{"empty product", func(r *Record) { r.Product = "" }, "product"},
		{"whitespace product", func(r *Record) { r.Product = "   " }, "product"},
		{"unset category", func(r *Record) { r.Category = "" }, "category"},
		{"empty amount", func(r *Record) { r.Amount = "" }, "amount"},
		{"non-numeric amount", func(r *Record) { r.Amount = "abc" }, "amount"},
		{"negative amount", func(r *Record) { r.Amount = "-5" }, "amount"},
		{"zero amount", func(r *Record) { r.Amount = "0" }, "amount"},
		{"empty customer", func(r *Record) { r.Customer = "" }, "customer"},
		{"empty quantity", func(r *Record) { r.Quantity = "" }, "quantity"},
		{"fractional quantity", func(r *Record) { r.Quantity = "1.5" }, "quantity"},
		{"zero quantity", func(r *Record) { r.Quantity = "0" }, "quantity"},
		{"negative quantity", func(r *Record) { r.Quantity = "-2" }, "quantity"},
		{"empty date", func(r *Record) { r.Date = "" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			errs := Validate(r)
			if len(errs) != 1 {
				t.Fatalf("Validate() = %v, want exactly one error", errs)
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("Validate() = %v, want error on %q", errs, tt.wantField)
			}
		})
	}
}

func TestValidate_SmallPositiveAmountPasses(t *testing.T) {
	r := validRecord()
	r.Amount = "0.01"
	if errs := Validate(r); len(errs) != 0 {
		t.Errorf("Validate() = %v, want none for amount 0.01", errs)
	}
}

func TestValidate_AllFieldsCheckedAtOnce(t *testing.T) {
	// No short-circuit: an entirely empty draft reports all six fields.
	errs := Validate(Record{})
	if len(errs) != 6 {
		t.Fatalf("Validate(empty) = %v, want 6 errors", errs)
	}
	for _, field := range []string{"date", "product", "category", "amount", "customer", "quantity"} {
		if errs[field] == "" {
			t.Errorf("missing error for %q", field)
		}
	}
}
