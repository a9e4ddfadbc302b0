package parser

import (
	"strings"

	"github.com/KaramelBytes/sheetloom-cli/internal/analysis"
)

type xlsxParser struct{}

func (xlsxParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (xlsxParser) Parse(path string, opt analysis.Options) (*analysis.Table, error) {
	return analysis.ReadXLSX(path, opt)
}
