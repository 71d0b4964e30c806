package cli

import (
	"github.com/spf13/cobra"

	"docsum/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert PDFs in the input directory to markdown",
	RunE:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	conv := convert.NewConverter(cfg, log)
	outputs, err := conv.ConvertAll(cmd.Context())
	if err != nil {
		return err
	}
	log.WithField("files", len(outputs)).Info("conversion complete")
	return nil
}
