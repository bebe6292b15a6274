package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is a header row plus string cells, as read from an uploaded file.
// Blank rows are dropped; Line keeps the 1-based data row number each
// remaining row had in the source.
type Table struct {
	Columns []string
	Rows    [][]string
	lines   []int
	index   map[string]int
}

// NewTable trims the header names and pads short rows.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{Columns: make([]string, len(columns)), index: make(map[string]int, len(columns))}
	for i, c := range columns {
		c = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		t.Columns[i] = c
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
	t.Rows = make([][]string, 0, len(rows))
	for i, r := range rows {
		if isBlankRow(r) {
			continue
		}
		row := make([]string, len(columns))
		copy(row, r)
		t.Rows = append(t.Rows, row)
		t.lines = append(t.lines, i+1)
	}
	return t
}

// Line returns the source data row number of row.
func (t *Table) Line(row int) int {
	if row < 0 || row >= len(t.lines) {
		return row + 1
	}
	return t.lines[row]
}

// Has reports whether the table carries column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Value returns the trimmed cell of row under column, or "" when absent.
func (t *Table) Value(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][i])
}

// Rename maps header names through columnMap, ignoring case. Unmapped names
// are kept.
func (t *Table) Rename(columnMap map[string]string) *Table {
	lookup := make(map[string]string, len(columnMap))
	for from, to := range columnMap {
		lookup[strings.ToLower(strings.TrimSpace(from))] = to
	}
	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if mapped, ok := lookup[strings.ToLower(c)]; ok {
			columns[i] = mapped
		} else {
			columns[i] = c
		}
	}
	renamed := NewTable(columns, t.Rows)
	renamed.lines = t.lines
	return renamed
}

// ReadCSV reads a comma separated table whose first record is the header.
func ReadCSV(reader io.Reader) (*Table, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read the file: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("file is empty")
	}
	return NewTable(records[0], records[1:]), nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
