package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsum/internal/provider"
)

func pickerOptions() []PickerOption {
	return []PickerOption{
		{Name: provider.OpenAI, Model: "o3-mini", Configured: false},
		{Name: provider.Grok, Model: "grok-3-latest", Configured: true},
		{Name: provider.Anthropic, Model: "claude-3-opus-20240229", Configured: true},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPickerEnterChoosesConfigured(t *testing.T) {
	m := pickerModel{options: pickerOptions(), cursor: 1}
	out, cmd := m.Update(key("enter"))
	final := out.(pickerModel)

	assert.True(t, final.chosen)
	require.NotNil(t, cmd)
	assert.Equal(t, provider.Grok, final.options[final.cursor].Name)
}

func TestPickerEnterIgnoredOnUnconfigured(t *testing.T) {
	m := pickerModel{options: pickerOptions(), cursor: 0}
	out, cmd := m.Update(key("enter"))
	final := out.(pickerModel)

	assert.False(t, final.chosen)
	assert.Nil(t, cmd)
}

func TestPickerNavigationClamps(t *testing.T) {
	m := pickerModel{options: pickerOptions(), cursor: 0}
	out, _ := m.Update(key("up"))
	assert.Equal(t, 0, out.(pickerModel).cursor)

	m = pickerModel{options: pickerOptions(), cursor: 2}
	out, _ = m.Update(key("down"))
	assert.Equal(t, 2, out.(pickerModel).cursor)

	m = pickerModel{options: pickerOptions(), cursor: 1}
	out, _ = m.Update(key("down"))
	assert.Equal(t, 2, out.(pickerModel).cursor)
}

func TestPickerQuitMarksCancelled(t *testing.T) {
	m := pickerModel{options: pickerOptions()}
	out, cmd := m.Update(key("q"))
	final := out.(pickerModel)

	assert.True(t, final.quit)
	assert.False(t, final.chosen)
	require.NotNil(t, cmd)
}

func TestPickerViewMarksUnconfigured(t *testing.T) {
	m := pickerModel{options: pickerOptions(), cursor: 1}
	view := m.View()

	assert.Contains(t, view, "Select LLM provider")
	assert.Contains(t, view, "no API key")
	assert.Contains(t, view, "grok-3-latest")
}

func TestPickProviderNoOptions(t *testing.T) {
	_, err := PickProvider(nil)
	assert.ErrorIs(t, err, provider.ErrNoProvider)
}
