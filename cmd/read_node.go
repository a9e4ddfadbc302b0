package cmd

import (
	"fmt"

	"github.com/KaramelBytes/sheetloom-cli/internal/nodefmt"
	"github.com/KaramelBytes/sheetloom-cli/internal/utils"
	"github.com/spf13/cobra"
)

const readNodeUsage = "Usage: read-node <nodeId> <value> <dataType> [unit]"

// MissingArgumentsError is returned when a command gets too few positional
// arguments. The command has already reported it on stdout.
type MissingArgumentsError struct {
	Usage string
}

func (e *MissingArgumentsError) Error() string { return e.Usage }

var readNodeCmd = &cobra.Command{
	Use:     "read-node <nodeId> <value> <dataType> [unit]",
	Aliases: []string{"read_node"},
	Short:   "Format a raw node value for display and print it as JSON",
	Long: `Format a raw process value by its data type and optional engineering unit.

Double/Float values use one decimal for temperature, pressure and flow units,
truncate to an integer for '%', and use two decimals otherwise. Integer types
truncate. Boolean accepts true/1/yes. Values that fail to parse are printed
unchanged, without the unit.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) < 3 {
			b, err := utils.CompactJSON(map[string]string{"error": readNodeUsage})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return &MissingArgumentsError{Usage: readNodeUsage}
		}
		req := nodefmt.Request{NodeID: args[0], Value: args[1], DataType: args[2]}
		if len(args) > 3 {
			req.Unit = args[3]
		}
		b, err := utils.CompactJSON(req.Do())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readNodeCmd)
}
