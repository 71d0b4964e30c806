package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"docsum/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index over the converted markdown",
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	stats, err := index.Build(cfg, log)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"documents": stats.Documents,
		"chunks":    stats.Chunks,
		"dimension": stats.Dimension,
	}).Info("index built")
	return nil
}
