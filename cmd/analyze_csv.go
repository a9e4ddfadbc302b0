package cmd

import (
	"github.com/KaramelBytes/sheetloom-cli/internal/pipeline"
	"github.com/spf13/cobra"
)

var analyzeCSVCmd = &cobra.Command{
	Use:     "analyze-csv <source> <output.xlsx>",
	Aliases: []string{"analyze_csv"},
	Short:   "Write a workbook with the source rows and per-column summary statistics",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := pipelineOptions()
		if err != nil {
			return err
		}
		res, err := pipeline.AnalyzeCSV(args[0], args[1], opt)
		if err != nil {
			return err
		}
		return printResult(cmd, "Analysis", res.Output, res, res.Warnings)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCSVCmd)
}
