package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"docsum/internal/provider"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration and provider availability",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	cmd.Printf("# %s\n%s\n", cfgPath, data)

	registry := provider.NewRegistry()
	printProviderStatus(cmd, registry.Configured())
	return nil
}
