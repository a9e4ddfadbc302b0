// Package workbook writes styled .xlsx workbooks with embedded column charts.
package workbook

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KaramelBytes/sheetloom-cli/internal/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Theme holds workbook-wide presentation settings.
type Theme struct {
	HeaderFontColor string
	Creator         string
	Title           string
	Description     string
}

// DefaultTheme returns white header text and a generic creator.
func DefaultTheme() Theme {
	return Theme{HeaderFontColor: "FFFFFF", Creator: "sheetloom"}
}

// SheetStyle controls how a sheet's header row looks.
type SheetStyle struct {
	HeaderFill   string // hex RGB, e.g. "4472C4"
	CenterHeader bool
}

// ChartSpec describes a clustered column chart over two columns of a sheet.
// Row 1 of the sheet holds the header; data occupies rows 2..Rows+1.
type ChartSpec struct {
	Title       string
	XAxisTitle  string
	YAxisTitle  string
	Anchor      string // top-left cell, e.g. "E5"
	StyleID     int
	CategoryCol int // 1-based
	ValueCol    int // 1-based
	Rows        int
}

// stylePalette maps chart style ids onto a series fill colour.
var stylePalette = map[int]string{
	2:  "4472C4",
	10: "4472C4",
	11: "70AD47",
	12: "ED7D31",
	13: "FFC000",
}

// ChartStyles lists the chart style ids with a known fill colour, ascending.
func ChartStyles() []int {
	ids := make([]int, 0, len(stylePalette))
	for id := range stylePalette {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// KnownChartStyle reports whether id maps to a fill colour.
func KnownChartStyle(id int) bool {
	_, ok := stylePalette[id]
	return ok
}

// ErrNoChartData is returned when a chart would reference no data rows.
var ErrNoChartData = errors.New("chart has no data rows")

// WriteError reports a failure to write the workbook to its destination.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write workbook %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Writer builds a workbook in memory. Call Save to write it and Close to
// release it.
type Writer struct {
	f      *excelize.File
	theme  Theme
	sheets []string
	widths map[string][]int
	styles map[SheetStyle]int
	runID  string
}

// New returns an empty workbook writer.
func New(theme Theme) *Writer {
	if theme.HeaderFontColor == "" {
		theme.HeaderFontColor = DefaultTheme().HeaderFontColor
	}
	return &Writer{
		f:      excelize.NewFile(),
		theme:  theme,
		widths: map[string][]int{},
		styles: map[SheetStyle]int{},
		runID:  uuid.NewString(),
	}
}

// RunID identifies this workbook; it is stored in the document properties.
func (w *Writer) RunID() string { return w.runID }

// Sheets lists the sheets added so far, in order.
func (w *Writer) Sheets() []string { return append([]string(nil), w.sheets...) }

// AddSheet writes header and rows to a new sheet named name. Nil values are
// left as empty cells.
func (w *Writer) AddSheet(name string, header []string, rows [][]any, style SheetStyle) error {
	if err := w.newSheet(name); err != nil {
		return err
	}
	widths := make([]int, len(header))
	track := func(j int, v any) {
		if v == nil {
			return
		}
		for len(widths) <= j {
			widths = append(widths, 0)
		}
		if n := utf8.RuneCountInString(render(v)); n > widths[j] {
			widths[j] = n
		}
	}
	hdr := make([]any, len(header))
	for j, h := range header {
		hdr[j] = h
		track(j, h)
	}
	if err := w.f.SetSheetRow(name, "A1", &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := make([]any, len(row))
		copy(vals, row)
		for j, v := range vals {
			track(j, v)
		}
		if err := w.f.SetSheetRow(name, cell, &vals); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.widths[name] = widths
	if len(header) == 0 {
		return nil
	}
	sid, err := w.headerStyle(style)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(name, "A1", last, sid); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

func (w *Writer) newSheet(name string) error {
	if len(w.sheets) == 0 {
		// excelize starts with a default sheet; reuse it for the first one.
		if err := w.f.SetSheetName(w.f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	w.sheets = append(w.sheets, name)
	return nil
}

func (w *Writer) headerStyle(style SheetStyle) (int, error) {
	if id, ok := w.styles[style]; ok {
		return id, nil
	}
	s := &excelize.Style{
		Font: &excelize.Font{Bold: true, Color: w.theme.HeaderFontColor},
	}
	if style.HeaderFill != "" {
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{style.HeaderFill}}
	}
	if style.CenterHeader {
		s.Alignment = &excelize.Alignment{Horizontal: "center"}
	}
	id, err := w.f.NewStyle(s)
	if err != nil {
		return 0, fmt.Errorf("new style: %w", err)
	}
	w.styles[style] = id
	return id, nil
}

// AutoFit sizes each column of sheet to its longest value plus two, capped at limit.
func (w *Writer) AutoFit(sheet string, limit float64) error {
	widths, ok := w.widths[sheet]
	if !ok {
		return fmt.Errorf("unknown sheet %q", sheet)
	}
	for j, n := range widths {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return err
		}
		width := float64(n + 2)
		if limit > 0 && width > limit {
			width = limit
		}
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("set width %s: %w", col, err)
		}
	}
	return nil
}

// SetWidths assigns fixed widths to the leading columns of sheet, starting at A.
func (w *Writer) SetWidths(sheet string, widths ...float64) error {
	for j, width := range widths {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("set width %s: %w", col, err)
		}
	}
	return nil
}

// AddChart embeds a column chart in sheet. The series takes its name from the
// value column header and its points from the data rows below it.
func (w *Writer) AddChart(sheet string, spec ChartSpec) error {
	if spec.Rows < 1 {
		return ErrNoChartData
	}
	catCol, err := excelize.ColumnNumberToName(spec.CategoryCol)
	if err != nil {
		return err
	}
	valCol, err := excelize.ColumnNumberToName(spec.ValueCol)
	if err != nil {
		return err
	}
	ref := quoteSheet(sheet)
	last := spec.Rows + 1
	color, ok := stylePalette[spec.StyleID]
	if !ok {
		color = stylePalette[10]
	}
	anchor := spec.Anchor
	if anchor == "" {
		anchor = "E5"
	}
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$%s$1", ref, valCol),
			Categories: fmt.Sprintf("%s!$%s$2:$%s$%d", ref, catCol, catCol, last),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", ref, valCol, valCol, last),
			Fill:       excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		}},
		Title:     []excelize.RichTextRun{{Text: spec.Title}},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.XAxisTitle}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.YAxisTitle}}},
		Legend:    excelize.ChartLegend{Position: "right"},
		Dimension: excelize.ChartDimension{Width: 480, Height: 290},
	}
	if err := w.f.AddChart(sheet, anchor, chart); err != nil {
		return fmt.Errorf("add chart: %w", err)
	}
	return nil
}

// Save writes the workbook to path. The file is written to a temporary name
// and renamed, so a failed save leaves no partial file behind.
func (w *Writer) Save(path string) error {
	if len(w.sheets) > 0 {
		w.f.SetActiveSheet(0)
	}
	props := &excelize.DocProperties{
		Creator:     w.theme.Creator,
		Title:       w.theme.Title,
		Description: w.theme.Description,
		Identifier:  w.runID,
		Created:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := w.f.SetDocProps(props); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Close releases the in-memory workbook.
func (w *Writer) Close() error {
	return w.f.Close()
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func render(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}
