package parser

import (
	"strings"

	"github.com/KaramelBytes/sheetloom-cli/internal/analysis"
)

type csvParser struct{}

func (csvParser) CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

func (csvParser) Parse(path string, opt analysis.Options) (*analysis.Table, error) {
	return analysis.ReadCSV(path, opt)
}
