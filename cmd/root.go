package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	cfgpkg "github.com/KaramelBytes/sheetloom-cli/internal/config"
	"github.com/KaramelBytes/sheetloom-cli/internal/pipeline"
	"github.com/KaramelBytes/sheetloom-cli/internal/utils"
	"github.com/KaramelBytes/sheetloom-cli/internal/workbook"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
	// Source flags (override config if set)
	flagDelimiter string
	flagMaxRows   int
	flagSheetName string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "sheetloom",
	Short: "sheetloom CLI: turn CSV and XLSX tables into styled Excel reports and charts",
	Long: `sheetloom reads tabular files and writes .xlsx workbooks: a data sheet with
per-column summary statistics, or aggregated chart data with an embedded column
chart. It also formats single process values for display (read-node).`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var missing *MissingArgumentsError
		if !errors.As(err, &missing) {
			fmt.Fprintln(os.Stderr, "✗ Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.sheetloom/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagMaxRows, "max-rows", 0, "maximum source rows to process, 0 = unlimited (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagSheetName, "sheet-name", "", "XLSX input: sheet to read (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
	if f.Changed("max-rows") && flagMaxRows >= 0 {
		cfg.MaxRows = flagMaxRows
	}
	if f.Changed("sheet-name") {
		cfg.SheetName = flagSheetName
	}
	newLogger("config").Printf("loaded (file=%q)", cfgFile)
}

// newLogger returns a stderr logger tagged with component when --debug is set.
func newLogger(component string) *log.Logger {
	if !debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "["+component+"] ", log.LstdFlags)
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s (use ','|';'|'tab')", s)
	}
}

// pipelineOptions maps the effective configuration onto pipeline options.
func pipelineOptions() (pipeline.Options, error) {
	c := cfg
	if c == nil {
		c = cfgpkg.Defaults()
	}
	opt := pipeline.DefaultOptions()
	delim, err := parseDelimiter(c.Delimiter)
	if err != nil {
		return opt, err
	}
	opt.Source.Delimiter = delim
	opt.Source.MaxRows = c.MaxRows
	opt.Source.SheetName = c.SheetName
	opt.Theme = workbook.Theme{HeaderFontColor: c.HeaderFontColor, Creator: c.Creator}
	if c.DataHeaderColor != "" {
		opt.DataHeaderColor = c.DataHeaderColor
	}
	if c.SummaryHeaderColor != "" {
		opt.SummaryHeaderColor = c.SummaryHeaderColor
	}
	if c.WidthCap > 0 {
		opt.WidthCap = c.WidthCap
	}
	if c.ChartAnchor != "" {
		opt.ChartAnchor = c.ChartAnchor
	}
	if c.BarChartStyle > 0 {
		opt.BarChartStyle = c.BarChartStyle
	}
	if c.PivotChartStyle > 0 {
		opt.PivotChartStyle = c.PivotChartStyle
	}
	opt.Logger = newLogger("pipeline")
	return opt, nil
}

// printResult writes warnings to stderr, then the saved line and the result
// record as JSON to stdout.
func printResult(cmd *cobra.Command, label, path string, res any, warnings []string) error {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", w)
	}
	b, err := utils.CompactJSON(res)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s saved to %s\n", label, path)
	fmt.Fprintf(out, "Result: %s\n", b)
	return nil
}
