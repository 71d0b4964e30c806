package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docsum/internal/provider"
)

// ErrPickerCancelled is returned when the user quits the picker without
// choosing a provider.
var ErrPickerCancelled = errors.New("provider selection cancelled")

// PickerOption is one selectable provider row.
type PickerOption struct {
	Name       provider.Name
	Model      string
	Configured bool
}

type pickerModel struct {
	options []PickerOption
	cursor  int
	chosen  bool
	quit    bool
}

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true)
	pickerCursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	pickerDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.quit = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		if m.options[m.cursor].Configured {
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("Select LLM provider") + "\n\n")
	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = pickerCursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s (%s)", opt.Name, opt.Model)
		if !opt.Configured {
			line = pickerDisabledStyle.Render(line + "  [no API key]")
		} else if i == m.cursor {
			line = pickerCursorStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\nenter select · q quit\n")
	return b.String()
}

// PickProvider runs the interactive picker and returns the chosen provider.
func PickProvider(options []PickerOption) (provider.Name, error) {
	if len(options) == 0 {
		return "", provider.ErrNoProvider
	}
	start := 0
	for i, opt := range options {
		if opt.Configured {
			start = i
			break
		}
	}
	prog := tea.NewProgram(pickerModel{options: options, cursor: start})
	out, err := prog.Run()
	if err != nil {
		return "", err
	}
	final := out.(pickerModel)
	if !final.chosen {
		return "", ErrPickerCancelled
	}
	return final.options[final.cursor].Name, nil
}
