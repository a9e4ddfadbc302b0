package cmd

import (
	"fmt"
	"regexp"
	"strconv"

	cfgpkg "github.com/KaramelBytes/sheetloom-cli/internal/config"
	"github.com/KaramelBytes/sheetloom-cli/internal/workbook"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set sheetloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		delim := cfg.Delimiter
		if delim == "" {
			delim = "auto"
		}
		fmt.Fprintf(out, "delimiter: %s\n", delim)
		fmt.Fprintf(out, "max_rows: %d\n", cfg.MaxRows)
		if cfg.SheetName != "" {
			fmt.Fprintf(out, "sheet_name: %s\n", cfg.SheetName)
		}
		fmt.Fprintf(out, "width_cap: %.0f\n", cfg.WidthCap)
		fmt.Fprintf(out, "chart_anchor: %s\n", cfg.ChartAnchor)
		fmt.Fprintf(out, "data_header_color: %s\n", cfg.DataHeaderColor)
		fmt.Fprintf(out, "summary_header_color: %s\n", cfg.SummaryHeaderColor)
		fmt.Fprintf(out, "header_font_color: %s\n", cfg.HeaderFontColor)
		fmt.Fprintf(out, "bar_chart_style: %d\n", cfg.BarChartStyle)
		fmt.Fprintf(out, "pivot_chart_style: %d\n", cfg.PivotChartStyle)
		fmt.Fprintf(out, "creator: %s\n", cfg.Creator)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			cfg.Delimiter = val
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "sheet_name":
			cfg.SheetName = val
		case "width_cap":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for width_cap: %v", val)
			}
			cfg.WidthCap = f
		case "chart_anchor":
			if _, _, err := excelize.CellNameToCoordinates(val); err != nil {
				return fmt.Errorf("invalid chart_anchor: %s (use a cell like E5)", val)
			}
			cfg.ChartAnchor = val
		case "data_header_color", "summary_header_color", "header_font_color":
			if !hexColor.MatchString(val) {
				return fmt.Errorf("invalid %s: %s (use RRGGBB hex)", key, val)
			}
			switch key {
			case "data_header_color":
				cfg.DataHeaderColor = val
			case "summary_header_color":
				cfg.SummaryHeaderColor = val
			default:
				cfg.HeaderFontColor = val
			}
		case "bar_chart_style", "pivot_chart_style":
			i, err := strconv.Atoi(val)
			if err != nil || !workbook.KnownChartStyle(i) {
				return fmt.Errorf("invalid chart style for %s: %v (use one of %v)", key, val, workbook.ChartStyles())
			}
			if key == "bar_chart_style" {
				cfg.BarChartStyle = i
			} else {
				cfg.PivotChartStyle = i
			}
		case "creator":
			cfg.Creator = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
