package cli

import (
	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run convert, index and process in sequence",
	RunE:  runAll,
}

func init() {
	rootCmd.AddCommand(allCmd)
}

func runAll(cmd *cobra.Command, args []string) error {
	if err := runConvert(cmd, args); err != nil {
		return err
	}
	if err := runIndex(cmd, args); err != nil {
		return err
	}
	return runProcess(cmd, args)
}
