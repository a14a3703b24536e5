package ingest

import (
	"reflect"
	"testing"
)

func TestValidate_MissingRequiredColumn(t *testing.T) {
	table := Parse("Name,Phone\nJohn,555-1234")

	errs := Validate(table, KindCustomers.RequiredColumns())

	// One structural error for Email, plus the per-row required error the
	// missing column produces in every data row.
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}

	structural := errs[0]
	if structural.Row != 0 {
		t.Errorf("structural error Row = %d, want 0", structural.Row)
	}
	if structural.Column != "Email" {
		t.Errorf("structural error Column = %q, want %q", structural.Column, "Email")
	}
	if structural.Message != "Missing required column: Email" {
		t.Errorf("structural error Message = %q", structural.Message)
	}

	if errs[1].Row != 2 || errs[1].Message != "Email is required" {
		t.Errorf("per-row error = %+v, want row 2 'Email is required'", errs[1])
	}
}

func TestValidate_EmptyRequiredField(t *testing.T) {
	table := Parse("Date,Product,Amount\n2024-01-15,iPhone 13,")

	errs := Validate(table, KindSales.RequiredColumns())

	want := []ValidationError{{Row: 2, Column: "Amount", Message: "Amount is required"}}
	if !reflect.DeepEqual(errs, want) {
		t.Errorf("Validate() = %v, want %v", errs, want)
	}
}

func TestValidate_WhitespaceOnlyIsEmpty(t *testing.T) {
	table := Table{
		Headers: []string{"Name", "Email"},
		Rows: []Row{
			{Index: 2, Cells: map[string]string{"Name": "   ", "Email": "a@b.co"}},
		},
	}

	errs := Validate(table, KindCustomers.RequiredColumns())

	if len(errs) != 1 || errs[0].Message != "Name is required" {
		t.Errorf("Validate() = %v, want single 'Name is required'", errs)
	}
}

func TestValidate_EmailFormat(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"a@b.co", false},
		{"john.doe@example.com", false},
		{"not-an-email", true},
		{"missing@dot", true},
		{"@example.com", true},
		{"user@.", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			table := Parse("Name,Email\nJohn," + tt.email)
			errs := Validate(table, KindCustomers.RequiredColumns())

			found := false
			for _, e := range errs {
				if e.Column == "Email" && e.Message == "Invalid email format" {
					found = true
					if e.Row != 2 {
						t.Errorf("email error Row = %d, want 2", e.Row)
					}
				}
			}
			if found != tt.wantErr {
				t.Errorf("email %q: format error = %v, want %v (errs: %v)", tt.email, found, tt.wantErr, errs)
			}
		})
	}
}

func TestValidate_AmountNumeric(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr bool
	}{
		{"999.00", false},
		{"0", false},     // zero passes: no positivity check on upload
		{"-5.25", false}, // negatives pass too
		{"1,000", true},  // comma split already ate this, but a literal comma-free bad value
		{"abc", true},
		{"12.5.6", true},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			table := Table{
				Headers: []string{"Date", "Product", "Amount"},
				Rows: []Row{
					{Index: 2, Cells: map[string]string{"Date": "2024-01-15", "Product": "X", "Amount": tt.amount}},
				},
			}
			errs := Validate(table, KindSales.RequiredColumns())

			found := false
			for _, e := range errs {
				if e.Message == "Amount must be a valid number" {
					found = true
				}
			}
			if found != tt.wantErr {
				t.Errorf("amount %q: numeric error = %v, want %v", tt.amount, found, tt.wantErr)
			}
		})
	}
}

func TestValidate_StockInteger(t *testing.T) {
	tests := []struct {
		stock   string
		wantErr bool
	}{
		{"50", false},
		{"0", false},
		{"-3", false},
		{"12.5", true},
		{"many", true},
	}

	for _, tt := range tests {
		t.Run(tt.stock, func(t *testing.T) {
			table := Parse("Product,Stock,Price\nWidget," + tt.stock + ",9.99")
			errs := Validate(table, KindInventory.RequiredColumns())

			found := false
			for _, e := range errs {
				if e.Message == "Stock must be a valid number" {
					found = true
				}
			}
			if found != tt.wantErr {
				t.Errorf("stock %q: integer error = %v, want %v", tt.stock, found, tt.wantErr)
			}
		})
	}
}

func TestValidate_FormatChecksSkipEmptyValues(t *testing.T) {
	// Empty Email/Amount/Stock never produce a format error; only the
	// required check fires, so "required" and "invalid format" cannot
	// co-occur for the same cell.
	table := Parse("Name,Email\nJohn,")
	errs := Validate(table, KindCustomers.RequiredColumns())

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Message != "Email is required" {
		t.Errorf("Message = %q, want 'Email is required'", errs[0].Message)
	}
}

func TestValidate_FormatChecksIgnoreRequiredSet(t *testing.T) {
	// An Email column in a sales file is still format-checked.
	table := Parse("Date,Product,Amount,Email\n2024-01-15,X,10,bogus")
	errs := Validate(table, KindSales.RequiredColumns())

	if len(errs) != 1 || errs[0].Message != "Invalid email format" {
		t.Errorf("Validate() = %v, want single email format error", errs)
	}
}

func TestValidate_ErrorOrdering(t *testing.T) {
	// Structural errors first, then rows in order, required columns in
	// declaration order within each row.
	table := Parse("Product\nWidget\n,")
	errs := Validate(table, KindInventory.RequiredColumns())

	var got []string
	for _, e := range errs {
		got = append(got, e.Column)
	}

	// Structural: Stock, Price missing. Row 2: Stock, Price empty.
	// Row 3: Product, Stock, Price all empty.
	want := []string{"Stock", "Price", "Stock", "Price", "Product", "Stock", "Price"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("error column order = %v, want %v", got, want)
	}
	for i, e := range errs[:2] {
		if e.Row != 0 {
			t.Errorf("errs[%d].Row = %d, want structural errors first", i, e.Row)
		}
	}
}

func TestValidate_Idempotent(t *testing.T) {
	table := Parse("Name,Email\n,bad-email\nJane,jane@example.com")
	required := KindCustomers.RequiredColumns()

	first := Validate(table, required)
	second := Validate(table, required)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated validation differs:\n%v\n%v", first, second)
	}
}

func TestValidate_CleanTableHasNoErrors(t *testing.T) {
	table := Parse("Date,Product,Amount\n2024-01-15,iPhone 13,999.00\n2024-01-16,MacBook Pro,2499.00")
	if errs := Validate(table, KindSales.RequiredColumns()); len(errs) != 0 {
		t.Errorf("Validate() = %v, want none", errs)
	}
}

func TestValidateFile(t *testing.T) {
	table, kind, errs := ValidateFile("inventory_2024.csv", "Product,Stock,Price\nWidget,50,9.99")

	if kind != KindInventory {
		t.Errorf("kind = %v, want inventory", kind)
	}
	if len(table.Rows) != 1 {
		t.Errorf("len(Rows) = %d, want 1", len(table.Rows))
	}
	if len(errs) != 0 {
		t.Errorf("errs = %v, want none", errs)
	}
}
