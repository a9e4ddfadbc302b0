package cmd

import (
	"github.com/KaramelBytes/sheetloom-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var pivotChartCmd = &cobra.Command{
	Use:     "pivot-chart <source> <output.xlsx> <index_col> <value_col> <agg_func>",
	Aliases: []string{"create_pivot_chart"},
	Short:   "Group by a column, aggregate another and chart the result",
	Long: `Group by index_col, reduce value_col within each group and chart the result.

agg_func: count, sum, mean, unique. Any other name counts distinct values.`,
	Args: cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := pipelineOptions()
		if err != nil {
			return err
		}
		res, err := pipeline.CreatePivotChart(args[0], args[1], args[2], args[3], args[4], opt)
		if err != nil {
			return err
		}
		return printResult(cmd, "Pivot chart", res.Output, res, res.Warnings)
	},
}

func init() {
	rootCmd.AddCommand(pivotChartCmd)
}
