// Package report provides the static fixtures the dashboard ships with:
// downloadable sample CSV templates for each dataset kind and the demo
// dashboard dataset with its JSON export.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bizsight/bizsight/internal/ingest"
	"github.com/xuri/excelize/v2"
)

// sampleTables holds the fixed sample data offered as template downloads.
// These are static fixtures, never derived from uploaded data.
var sampleTables = map[ingest.Kind][][]string{
	ingest.KindSales: {
		{"Date", "Product", "Category", "Amount", "Customer", "Quantity"},
		{"2024-01-15", "iPhone 13", "Electronics", "999.00", "John Doe", "1"},
		{"2024-01-16", "MacBook Pro", "Electronics", "2499.00", "Jane Smith", "1"},
		{"2024-01-17", "AirPods", "Electronics", "199.00", "Bob Johnson", "2"},
	},
	ingest.KindInventory: {
		{"Product", "Category", "Stock", "Price", "Supplier", "SKU"},
		{"iPhone 13", "Electronics", "50", "999.00", "Apple Inc", "IP13-001"},
		{"MacBook Pro", "Electronics", "25", "2499.00", "Apple Inc", "MBP-001"},
		{"AirPods", "Electronics", "100", "199.00", "Apple Inc", "AP-001"},
	},
	ingest.KindCustomers: {
		{"Name", "Email", "Phone", "City", "Total Orders", "Last Purchase"},
		{"John Doe", "john@example.com", "+1234567890", "New York", "5", "2024-01-15"},
		{"Jane Smith", "jane@example.com", "+1234567891", "Los Angeles", "3", "2024-01-16"},
		{"Bob Johnson", "bob@example.com", "+1234567892", "Chicago", "8", "2024-01-17"},
	},
}

// TemplateCSV serializes the sample table for a kind as comma-joined lines.
func TemplateCSV(kind ingest.Kind) string {
	rows := sampleTables[kind]
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, ",")
	}
	return strings.Join(lines, "\n")
}

// TemplateXLSX writes the sample table for a kind as a spreadsheet.
func TemplateXLSX(kind ingest.Kind, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for r, row := range sampleTables[kind] {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// TemplateFileName returns the download name for a kind's sample template.
func TemplateFileName(kind ingest.Kind, format string) string {
	return fmt.Sprintf("sample_%s_data.%s", kind, format)
}
