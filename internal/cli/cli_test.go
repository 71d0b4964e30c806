package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsum/internal/provider"
)

func TestRootCmdMetadata(t *testing.T) {
	assert.Equal(t, "docsum", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "bilingual")
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"convert", "index", "process", "all", "config", "query"}
	have := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		assert.True(t, have[name], "missing subcommand %s", name)
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "verbose", "no-timer"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}

func TestProcessProviderFlag(t *testing.T) {
	flag := processCmd.Flags().Lookup("provider")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
}

func TestQueryTopKFlagDefault(t *testing.T) {
	flag := queryCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag)
	assert.Equal(t, "10", flag.DefValue)
}

func TestPrintProviderStatus(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	configured := map[provider.Name]provider.Settings{
		provider.Grok: {Provider: provider.Grok, Model: "grok-3-latest"},
	}
	printProviderStatus(rootCmd, configured)

	out := buf.String()
	assert.Contains(t, out, "Grok")
	assert.Contains(t, out, "configured (grok-3-latest)")
	assert.Contains(t, out, "OpenAI")
	assert.Contains(t, out, "not configured")
	assert.Contains(t, out, "Anthropic")
}
