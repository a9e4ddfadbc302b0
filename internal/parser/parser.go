// Package parser maps source files onto table loaders by extension.
package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/KaramelBytes/sheetloom-cli/internal/analysis"
)

// Parser loads a tabular source file.
type Parser interface {
	CanParse(filename string) bool
	Parse(path string, opt analysis.Options) (*analysis.Table, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ParseFile selects a parser based on filename and returns the loaded table.
// A missing file is reported as analysis.ErrFileNotFound before any parsing.
func ParseFile(path string, opt analysis.Options) (*analysis.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", analysis.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat source: %w", err)
	}
	for _, p := range registry {
		if p.CanParse(path) {
			return p.Parse(path, opt)
		}
	}
	// Fallback to delimited text
	return csvParser{}.Parse(path, opt)
}

func init() {
	Register(csvParser{})
	Register(xlsxParser{})
}
