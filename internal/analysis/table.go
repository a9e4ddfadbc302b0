package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Options controls how a tabular source is loaded.
type Options struct {
	// MaxRows limits rows loaded; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, picks '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// SheetName selects the XLSX sheet to load; empty means the first sheet.
	SheetName string
}

// DefaultOptions returns reasonable defaults for loading a table.
func DefaultOptions() Options {
	return Options{}
}

// Kind is the closed set of cell value kinds.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "numeric"
	case KindBool:
		return "boolean"
	default:
		return "null"
	}
}

// Cell is a single normalized table value.
type Cell struct {
	Kind Kind
	Text string // source text for non-null cells
	Num  float64
	Bool bool
}

// NullCell is the missing value.
var NullCell = Cell{}

// TextCell returns a text cell.
func TextCell(s string) Cell { return Cell{Kind: KindText, Text: s} }

// NumberCell returns a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{Kind: KindNumber, Text: strconv.FormatFloat(f, 'f', -1, 64), Num: f}
}

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell {
	if b {
		return Cell{Kind: KindBool, Text: "True", Bool: true}
	}
	return Cell{Kind: KindBool, Text: "False"}
}

func (c Cell) IsNull() bool { return c.Kind == KindNull }

// Float returns the numeric value of number and boolean cells.
func (c Cell) Float() (float64, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Num, true
	case KindBool:
		if c.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// String renders the cell for display. Null renders as "".
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case KindBool:
		if c.Bool {
			return "True"
		}
		return "False"
	case KindText:
		return c.Text
	}
	return ""
}

// Value returns the cell as a plain Go value suitable for a spreadsheet writer.
func (c Cell) Value() any {
	switch c.Kind {
	case KindNumber:
		return c.Num
	case KindBool:
		return c.Bool
	case KindText:
		return c.Text
	}
	return nil
}

// key identifies equal cells for grouping and distinct counts.
func (c Cell) key() string {
	switch c.Kind {
	case KindNumber:
		if math.IsNaN(c.Num) {
			return "n:NaN"
		}
		n := c.Num
		if n == 0 {
			n = 0 // fold -0 into 0
		}
		return "n:" + strconv.FormatFloat(n, 'g', -1, 64)
	case KindBool:
		return "b:" + strconv.FormatBool(c.Bool)
	case KindText:
		return "t:" + c.Text
	}
	return "null"
}

// Column describes one table column.
type Column struct {
	Name string
	Kind Kind
}

// Table is an immutable, column-typed set of rows.
type Table struct {
	Name     string
	Columns  []Column
	Rows     [][]Cell
	Warnings []string

	index map[string]int
}

// NewTable builds a table and its column index. Rows must have len(columns) cells.
func NewTable(name string, columns []Column, rows [][]Cell) *Table {
	t := &Table{Name: name, Columns: columns, Rows: rows, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, dup := t.index[c.Name]; !dup {
			t.index[c.Name] = i
		}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnNames returns the header in source order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Index resolves a column name to its position.
func (t *Table) Index(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return -1, &ColumnNotFoundError{Column: name, Table: t.Name}
	}
	return i, nil
}

// Values returns the table rows as plain Go values.
func (t *Table) Values() [][]any {
	out := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		vals := make([]any, len(row))
		for j, c := range row {
			vals[j] = c.Value()
		}
		out[i] = vals
	}
	return out
}

// naValues mirrors the common spreadsheet/dataframe spellings of a missing value.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

var boolLiterals = map[string]bool{
	"True": true, "TRUE": true, "true": true,
	"False": false, "FALSE": false, "false": false,
}

func isNA(s string) bool {
	_, ok := naValues[strings.TrimSpace(s)]
	return ok
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// inferKind picks the column kind from every non-missing value.
func inferKind(vals []string) Kind {
	kind := KindNull
	allNum, allBool := true, true
	for _, v := range vals {
		if isNA(v) {
			continue
		}
		kind = KindText
		if allNum {
			if _, ok := parseNumber(v); !ok {
				allNum = false
			}
		}
		if allBool {
			if _, ok := boolLiterals[strings.TrimSpace(v)]; !ok {
				allBool = false
			}
		}
		if !allNum && !allBool {
			return KindText
		}
	}
	switch {
	case kind == KindNull:
		return KindNull
	case allNum:
		return KindNumber
	case allBool:
		return KindBool
	}
	return KindText
}

func toCell(v string, kind Kind) Cell {
	if isNA(v) {
		return NullCell
	}
	switch kind {
	case KindNumber:
		f, _ := parseNumber(v)
		return Cell{Kind: KindNumber, Text: strings.TrimSpace(v), Num: f}
	case KindBool:
		return BoolCell(boolLiterals[strings.TrimSpace(v)])
	}
	return TextCell(v)
}

// FromRecords normalizes raw string records into a typed table. Short rows are
// padded with nulls and long rows are cut to the header width.
func FromRecords(name string, header []string, records [][]string, opt Options) *Table {
	ncol := len(header)
	total := len(records)
	if opt.MaxRows > 0 && len(records) > opt.MaxRows {
		records = records[:opt.MaxRows]
	}
	raw := make([][]string, ncol)
	for j := range raw {
		raw[j] = make([]string, len(records))
		for i, rec := range records {
			if j < len(rec) {
				raw[j][i] = rec[j]
			}
		}
	}
	cols := make([]Column, ncol)
	for j, h := range header {
		cols[j] = Column{Name: strings.TrimSpace(h), Kind: inferKind(raw[j])}
	}
	rows := make([][]Cell, len(records))
	for i := range records {
		row := make([]Cell, ncol)
		for j := 0; j < ncol; j++ {
			row[j] = toCell(raw[j][i], cols[j].Kind)
		}
		rows[i] = row
	}
	t := NewTable(name, cols, rows)
	if len(records) < total {
		t.Warnings = append(t.Warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", len(records), total))
	}
	return t
}

// ReadCSV loads a delimited text file with a header row.
func ReadCSV(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrEmptySource, filepath.Base(path))
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	// UTF-8 exports from spreadsheet tools start with a byte order mark.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return FromRecords(filepath.Base(path), header, records, opt), nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
