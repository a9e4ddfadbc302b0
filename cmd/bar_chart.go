package cmd

import (
	"github.com/KaramelBytes/sheetloom-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var barChartCmd = &cobra.Command{
	Use:     "bar-chart <source> <output.xlsx> <x_column> [y_column]",
	Aliases: []string{"create_bar_chart"},
	Short:   "Write chart data and a column chart of x against y",
	Long: `Write chart data and a column chart.

Without y_column each distinct x value is counted. With y_column the two
columns are charted row by row, sorted by y descending.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := pipelineOptions()
		if err != nil {
			return err
		}
		var y string
		if len(args) > 3 {
			y = args[3]
		}
		res, err := pipeline.CreateBarChart(args[0], args[1], args[2], y, opt)
		if err != nil {
			return err
		}
		return printResult(cmd, "Bar chart", res.Output, res, res.Warnings)
	},
}

func init() {
	rootCmd.AddCommand(barChartCmd)
}
