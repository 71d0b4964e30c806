package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"docsum/internal/index"
	"docsum/internal/llm"
	"docsum/internal/pipeline"
	"docsum/internal/provider"
	"docsum/internal/timer"
	"docsum/internal/tui"
)

var flagProvider string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the LLM pipeline and write the bilingual summaries",
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&flagProvider, "provider", "p", "", "LLM provider to use (OpenAI, Grok, Anthropic)")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	registry := provider.NewRegistry()
	// No provider means no pipeline; fail before touching the index.
	if err := registry.Validate(); err != nil {
		return err
	}

	settings, err := chooseProvider(cmd, registry)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"provider": string(settings.Provider),
		"model":    settings.Model,
	}).Info("using LLM provider")

	client, err := llm.New(settings)
	if err != nil {
		return err
	}
	searcher, err := index.OpenSearcher(cfg)
	if err != nil {
		return err
	}

	rt := timer.New(log, timer.DefaultInterval)
	if !flagNoTimer {
		rt.Start()
	}

	orch := pipeline.NewOrchestrator(searcher, client, cfg.Pipeline.Questions, cfg.Pipeline.TopK, log)
	results, err := orch.Run(cmd.Context())
	if err != nil {
		rt.Stop()
		return err
	}
	if err := pipeline.WriteSummaries(results, cfg.EnglishSummaryFile(), cfg.ChineseSummaryFile()); err != nil {
		rt.Stop()
		return err
	}

	if elapsed := rt.Stop(); elapsed > 0 {
		log.WithField("elapsed", timer.Format(elapsed)).Info("pipeline finished")
	}
	log.WithFields(logrus.Fields{
		"english": cfg.EnglishSummaryFile(),
		"chinese": cfg.ChineseSummaryFile(),
	}).Info("summaries written")
	return nil
}

// chooseProvider resolves which backend to run with: an explicit flag wins,
// a single configured provider is taken silently, otherwise the interactive
// picker decides.
func chooseProvider(cmd *cobra.Command, registry *provider.Registry) (provider.Settings, error) {
	configured := registry.Configured()
	printProviderStatus(cmd, configured)

	if flagProvider != "" {
		if err := registry.Select(provider.Name(flagProvider)); err != nil {
			return provider.Settings{}, err
		}
	} else if len(configured) > 1 {
		options := make([]tui.PickerOption, 0, len(provider.Priority))
		for _, name := range provider.Priority {
			s, ok := configured[name]
			opt := tui.PickerOption{Name: name, Configured: ok}
			if ok {
				opt.Model = s.Model
			}
			options = append(options, opt)
		}
		chosen, err := tui.PickProvider(options)
		if err != nil {
			return provider.Settings{}, err
		}
		if err := registry.Select(chosen); err != nil {
			return provider.Settings{}, err
		}
	}

	settings, ok := registry.ResolveActive()
	if !ok {
		return provider.Settings{}, provider.ErrNoProvider
	}
	return settings, nil
}

func printProviderStatus(cmd *cobra.Command, configured map[provider.Name]provider.Settings) {
	cmd.Println("LLM providers:")
	for _, name := range provider.Priority {
		if s, ok := configured[name]; ok {
			cmd.Printf("  %-10s configured (%s)\n", string(name), s.Model)
		} else {
			cmd.Printf("  %-10s not configured\n", string(name))
		}
	}
	fmt.Fprintln(cmd.OutOrStdout())
}
