// Package cli wires the docsum commands: PDF conversion, index building,
// the LLM summarization pipeline and the interactive query browser.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"docsum/internal/config"
	"docsum/internal/logging"
)

var (
	flagConfig  string
	flagVerbose bool
	flagNoTimer bool

	cfg     *config.AppConfig
	cfgPath string
	log     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docsum",
	Short: "Convert PDFs to markdown and produce bilingual LLM summaries",
	Long: `docsum converts a directory of PDFs into markdown, indexes the result
into a vector store and runs a multi-question LLM pipeline that writes a
comprehensive English summary plus its Chinese counterpart.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environments export the keys directly.
		_ = godotenv.Load()

		log = logging.New(flagVerbose)

		var err error
		if flagConfig != "" {
			cfg, err = config.Load(flagConfig)
			cfgPath = flagConfig
		} else {
			cfg, cfgPath, err = config.LoadDefault()
		}
		if err != nil {
			return err
		}
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
		if err := logging.AttachErrorFile(log, cfg.ErrorLogFile()); err != nil {
			log.WithError(err).Warn("error log file unavailable")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoTimer, "no-timer", false, "disable periodic runtime reports")
}

// Execute runs the root command. Errors have already been logged.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && log != nil {
		log.WithError(err).Error("command failed")
	}
	return err
}
