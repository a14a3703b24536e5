// Package ingest provides the CSV ingestion pipeline: parsing raw delimited
// text into a table, inferring the dataset kind a file belongs to, and
// validating rows against that kind's required columns.
//
// The pipeline is deliberately simple and forgiving: it splits on commas and
// line breaks without handling quoted commas, embedded newlines, or escaped
// quotes. Uploaded data is previewed and discarded, never persisted, so the
// parser favors predictable behavior over RFC 4180 completeness.
package ingest

import "strings"

// Table is the parsed form of an uploaded CSV file.
// Headers preserve their original order; duplicates are not deduplicated,
// so a later duplicate header wins on lookup by name.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Row is a single data record keyed by header name.
// Every row carries exactly the keys in Table.Headers.
type Row struct {
	// Index is the 1-based line position in the file, counting the header
	// line as 1. The first data row is therefore 2. Used for error reporting.
	Index int `json:"rowIndex"`

	Cells map[string]string `json:"cells"`
}

// Get returns the cell value for a column, or the empty string if the
// column does not exist.
func (r Row) Get(column string) string {
	return r.Cells[column]
}

// Parse splits raw text into a header row and data rows.
//
// Lines that are empty after trimming are discarded, including blank lines
// between data rows. The first non-blank line is the header line. Data rows
// shorter than the header are padded with empty strings; extra trailing
// fields beyond the header width are dropped. Empty input yields an empty
// table, not an error.
func Parse(text string) Table {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return Table{Headers: []string{}, Rows: []Row{}}
	}

	headers := splitFields(lines[0])

	rows := make([]Row, 0, len(lines)-1)
	for i, line := range lines[1:] {
		values := splitFields(line)
		cells := make(map[string]string, len(headers))
		for pos, header := range headers {
			if pos < len(values) {
				cells[header] = values[pos]
			} else {
				cells[header] = ""
			}
		}
		rows = append(rows, Row{Index: i + 2, Cells: cells})
	}

	return Table{Headers: headers, Rows: rows}
}

// splitFields splits a line on commas, trimming each field and stripping
// surrounding double quotes.
func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	fields := make([]string, len(parts))
	for i, p := range parts {
		fields[i] = cleanField(p)
	}
	return fields
}

// cleanField trims whitespace and strips one surrounding pair of double
// quotes, then trims again so `" value "` becomes `value`.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}
