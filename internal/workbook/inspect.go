package workbook

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetInfo describes one worksheet.
type SheetInfo struct {
	Name string     `json:"name"`
	Rows int        `json:"rows"`
	Cols int        `json:"cols"`
	Head [][]string `json:"head,omitempty"`
}

// SeriesInfo holds the cell-range references of a chart series.
type SeriesInfo struct {
	Name       string `json:"name"`
	Categories string `json:"categories"`
	Values     string `json:"values"`
}

// ChartInfo describes an embedded chart part.
type ChartInfo struct {
	Part      string       `json:"part"`
	Type      string       `json:"type"`
	Direction string       `json:"direction,omitempty"`
	Title     string       `json:"title,omitempty"`
	Series    []SeriesInfo `json:"series"`
}

// Info summarizes a workbook on disk.
type Info struct {
	Sheets []SheetInfo `json:"sheets"`
	Charts []ChartInfo `json:"charts"`
	RunID  string      `json:"run_id,omitempty"`
}

// Inspect reads the sheets, up to headRows leading rows of each, and the
// charts of the workbook at p.
func Inspect(p string, headRows int) (*Info, error) {
	f, err := excelize.OpenFile(p)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	info := &Info{}
	if props, err := f.GetDocProps(); err == nil {
		info.RunID = props.Identifier
	}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		si := SheetInfo{Name: name, Rows: len(rows)}
		for i, r := range rows {
			if len(r) > si.Cols {
				si.Cols = len(r)
			}
			if i < headRows {
				si.Head = append(si.Head, r)
			}
		}
		info.Sheets = append(info.Sheets, si)
	}
	charts, err := readCharts(p)
	if err != nil {
		return nil, err
	}
	info.Charts = charts
	return info, nil
}

type xRun struct {
	T string `xml:"t"`
}

type xChartSpace struct {
	Chart struct {
		Title struct {
			P []struct {
				R []xRun `xml:"r"`
			} `xml:"tx>rich>p"`
		} `xml:"title"`
		PlotArea struct {
			Bar []struct {
				Dir struct {
					Val string `xml:"val,attr"`
				} `xml:"barDir"`
				Ser []struct {
					Name   string `xml:"tx>strRef>f"`
					CatStr string `xml:"cat>strRef>f"`
					CatNum string `xml:"cat>numRef>f"`
					Val    string `xml:"val>numRef>f"`
				} `xml:"ser"`
			} `xml:"barChart"`
		} `xml:"plotArea"`
	} `xml:"chart"`
}

func readCharts(p string) ([]ChartInfo, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer zr.Close()

	var out []ChartInfo
	for _, zf := range zr.File {
		if path.Dir(zf.Name) != "xl/charts" || !strings.HasPrefix(path.Base(zf.Name), "chart") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", zf.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", zf.Name, err)
		}
		var cs xChartSpace
		if err := xml.Unmarshal(b, &cs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", zf.Name, err)
		}
		ci := ChartInfo{Part: zf.Name}
		var title strings.Builder
		for _, para := range cs.Chart.Title.P {
			for _, r := range para.R {
				title.WriteString(r.T)
			}
		}
		ci.Title = title.String()
		for _, bar := range cs.Chart.PlotArea.Bar {
			ci.Type = "bar"
			ci.Direction = bar.Dir.Val
			for _, s := range bar.Ser {
				cat := s.CatStr
				if cat == "" {
					cat = s.CatNum
				}
				ci.Series = append(ci.Series, SeriesInfo{Name: s.Name, Categories: cat, Values: s.Val})
			}
		}
		out = append(out, ci)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Part < out[j].Part })
	return out, nil
}
