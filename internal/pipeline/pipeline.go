// Package pipeline turns a tabular source into an analysis or chart workbook.
package pipeline

import (
	"fmt"
	"io"
	"log"

	"github.com/KaramelBytes/sheetloom-cli/internal/analysis"
	"github.com/KaramelBytes/sheetloom-cli/internal/parser"
	"github.com/KaramelBytes/sheetloom-cli/internal/workbook"
)

const (
	StatusSuccess = "success"

	DataSheet    = "Data"
	SummarySheet = "Summary"
	ChartSheet   = "Chart Data"
	PivotSheet   = "Pivot"
)

// Options controls loading and presentation for every pipeline.
type Options struct {
	Source             analysis.Options
	Theme              workbook.Theme
	DataHeaderColor    string
	SummaryHeaderColor string
	WidthCap           float64
	ChartAnchor        string
	BarChartStyle      int
	PivotChartStyle    int
	// Logger receives debug lines; nil discards them.
	Logger *log.Logger
}

// DefaultOptions returns the stock colours, widths and chart placement.
func DefaultOptions() Options {
	return Options{
		Source:             analysis.DefaultOptions(),
		Theme:              workbook.DefaultTheme(),
		DataHeaderColor:    "4472C4",
		SummaryHeaderColor: "70AD47",
		WidthCap:           50,
		ChartAnchor:        "E5",
		BarChartStyle:      10,
		PivotChartStyle:    11,
	}
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard, "", 0)
}

// AnalyzeResult is returned by AnalyzeCSV.
type AnalyzeResult struct {
	Status   string   `json:"status"`
	Output   string   `json:"output"`
	Rows     int      `json:"rows"`
	Columns  int      `json:"columns"`
	Warnings []string `json:"warnings,omitempty"`
}

// BarResult is returned by CreateBarChart.
type BarResult struct {
	Status     string   `json:"status"`
	Output     string   `json:"output"`
	ChartType  string   `json:"chart_type"`
	DataPoints int      `json:"data_points"`
	Warnings   []string `json:"warnings,omitempty"`
}

// PivotResult is returned by CreatePivotChart.
type PivotResult struct {
	Status   string   `json:"status"`
	Output   string   `json:"output"`
	Groups   int      `json:"groups"`
	Warnings []string `json:"warnings,omitempty"`
}

var summaryHeader = []string{"Column", "Count", "Unique Values", "Most Common", "Mean", "Min", "Max"}

// AnalyzeCSV writes every source row to a Data sheet and per-column statistics
// to a Summary sheet.
func AnalyzeCSV(src, out string, opt Options) (*AnalyzeResult, error) {
	lg := opt.logger()
	tbl, err := parser.ParseFile(src, opt.Source)
	if err != nil {
		return nil, err
	}
	lg.Printf("loaded %s: %d rows, %d columns", tbl.Name, tbl.Len(), len(tbl.Columns))

	w := workbook.New(opt.Theme)
	defer w.Close()

	if err := w.AddSheet(DataSheet, tbl.ColumnNames(), tbl.Values(), workbook.SheetStyle{HeaderFill: opt.DataHeaderColor, CenterHeader: true}); err != nil {
		return nil, err
	}
	if err := w.AddSheet(SummarySheet, summaryHeader, summaryRows(analysis.Summarize(tbl)), workbook.SheetStyle{HeaderFill: opt.SummaryHeaderColor}); err != nil {
		return nil, err
	}
	for _, s := range w.Sheets() {
		if err := w.AutoFit(s, opt.WidthCap); err != nil {
			return nil, err
		}
	}
	if err := w.Save(out); err != nil {
		return nil, err
	}
	lg.Printf("saved %s (run %s)", out, w.RunID())
	return &AnalyzeResult{
		Status:   StatusSuccess,
		Output:   out,
		Rows:     tbl.Len(),
		Columns:  len(tbl.Columns),
		Warnings: tbl.Warnings,
	}, nil
}

func summaryRows(sums []analysis.ColumnSummary) [][]any {
	rows := make([][]any, 0, len(sums))
	for _, s := range sums {
		row := []any{s.Name, s.NonNull, s.Unique, nil, nil, nil, nil}
		if s.Kind == analysis.KindText {
			row[3] = "N/A"
			if s.HasMostCommon {
				row[3] = s.MostCommon
			}
		}
		if s.HasStats {
			row[4], row[5], row[6] = s.Mean, s.Min, s.Max
		}
		rows = append(rows, row)
	}
	return rows
}

// CreateBarChart charts x against y. Without y it counts rows per x value;
// with y it charts every source row's (x, y) pair sorted by y.
func CreateBarChart(src, out, x, y string, opt Options) (*BarResult, error) {
	lg := opt.logger()
	tbl, err := parser.ParseFile(src, opt.Source)
	if err != nil {
		return nil, err
	}
	lg.Printf("loaded %s: %d rows, %d columns", tbl.Name, tbl.Len(), len(tbl.Columns))
	var data *analysis.Table
	if y == "" {
		data, err = analysis.CountBy(tbl, x)
	} else {
		data, err = analysis.Project(tbl, x, y)
	}
	if err != nil {
		return nil, err
	}
	lg.Printf("bar data for %s: %d points", x, data.Len())

	warnings, err := writeChartBook(out, data, chartLayout{
		sheet:  ChartSheet,
		fill:   opt.DataHeaderColor,
		widths: []float64{30, 15},
		style:  opt.BarChartStyle,
	}, opt)
	if err != nil {
		return nil, err
	}
	return &BarResult{
		Status:     StatusSuccess,
		Output:     out,
		ChartType:  "bar",
		DataPoints: data.Len(),
		Warnings:   append(tbl.Warnings, warnings...),
	}, nil
}

// CreatePivotChart groups by index and reduces value with agg. Unrecognized
// agg names count distinct values.
func CreatePivotChart(src, out, index, value, agg string, opt Options) (*PivotResult, error) {
	lg := opt.logger()
	tbl, err := parser.ParseFile(src, opt.Source)
	if err != nil {
		return nil, err
	}
	lg.Printf("loaded %s: %d rows, %d columns", tbl.Name, tbl.Len(), len(tbl.Columns))
	r := analysis.ParseReducer(agg)
	lg.Printf("pivot %s by %s using %s", value, index, r)
	data, err := analysis.Pivot(tbl, index, value, r)
	if err != nil {
		return nil, err
	}

	warnings, err := writeChartBook(out, data, chartLayout{
		sheet:  PivotSheet,
		fill:   opt.SummaryHeaderColor,
		widths: []float64{25, 15},
		style:  opt.PivotChartStyle,
	}, opt)
	if err != nil {
		return nil, err
	}
	return &PivotResult{
		Status:   StatusSuccess,
		Output:   out,
		Groups:   data.Len(),
		Warnings: append(tbl.Warnings, warnings...),
	}, nil
}

type chartLayout struct {
	sheet  string
	fill   string
	widths []float64
	style  int
}

// writeChartBook writes a two-column derived table and a column chart over it.
func writeChartBook(out string, data *analysis.Table, l chartLayout, opt Options) ([]string, error) {
	w := workbook.New(opt.Theme)
	defer w.Close()

	if err := w.AddSheet(l.sheet, data.ColumnNames(), data.Values(), workbook.SheetStyle{HeaderFill: l.fill}); err != nil {
		return nil, err
	}
	if err := w.SetWidths(l.sheet, l.widths...); err != nil {
		return nil, err
	}
	key, metric := data.Columns[0].Name, data.Columns[1].Name

	var warnings []string
	if data.Len() == 0 {
		warnings = append(warnings, fmt.Sprintf("no data rows; chart for %s by %s skipped", metric, key))
	} else {
		err := w.AddChart(l.sheet, workbook.ChartSpec{
			Title:       fmt.Sprintf("%s by %s", metric, key),
			XAxisTitle:  key,
			YAxisTitle:  metric,
			Anchor:      opt.ChartAnchor,
			StyleID:     l.style,
			CategoryCol: 1,
			ValueCol:    2,
			Rows:        data.Len(),
		})
		if err != nil {
			return nil, err
		}
	}
	if err := w.Save(out); err != nil {
		return nil, err
	}
	opt.logger().Printf("saved %s (run %s)", out, w.RunID())
	return warnings, nil
}
