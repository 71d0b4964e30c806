package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docsum/internal/index"
	"docsum/internal/tui"
)

var flagQueryTopK int

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Browse the index interactively without spending LLM calls",
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&flagQueryTopK, "top-k", "k", 10, "results per query")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	searcher, err := index.OpenSearcher(cfg)
	if err != nil {
		return err
	}
	subtitle := fmt.Sprintf("index: %s", cfg.IndexFile())
	model := tui.New(searcher, subtitle, flagQueryTopK)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	_, err = prog.Run()
	return err
}
