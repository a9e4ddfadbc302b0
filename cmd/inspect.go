package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KaramelBytes/sheetloom-cli/internal/workbook"
	"github.com/spf13/cobra"
)

var (
	inspHead int
	inspJSON bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <workbook.xlsx>",
	Short: "List the sheets and charts of a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := workbook.Inspect(args[0], inspHead)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if inspJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}
		for _, s := range info.Sheets {
			fmt.Fprintf(out, "Sheet %s: %d rows x %d cols\n", s.Name, s.Rows, s.Cols)
			for _, r := range s.Head {
				fmt.Fprintf(out, "  | %s\n", strings.Join(r, " | "))
			}
		}
		for _, c := range info.Charts {
			fmt.Fprintf(out, "Chart %s (%s", c.Title, c.Type)
			if c.Direction != "" {
				fmt.Fprintf(out, ", %s", c.Direction)
			}
			fmt.Fprintln(out, ")")
			for _, s := range c.Series {
				fmt.Fprintf(out, "  series %s: categories %s, values %s\n", s.Name, s.Categories, s.Values)
			}
		}
		if len(info.Charts) == 0 {
			fmt.Fprintln(out, "No charts")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspHead, "head", 3, "number of leading rows to show per sheet")
	inspectCmd.Flags().BoolVar(&inspJSON, "json", false, "print as JSON")
}
