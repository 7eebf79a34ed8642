package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Laisky/vigi-tools/internal/news"
)

// textModel reads one line of text. Blank input takes the default value;
// the validator runs on Enter and a rejection keeps the prompt open.
type textModel struct {
	message      string
	defaultValue string
	validate     news.Validator
	input        textinput.Model

	value   string
	err     error
	done    bool
	aborted bool
}

func newTextModel(message, defaultValue string, validate news.Validator) textModel {
	input := textinput.New()
	input.Placeholder = defaultValue
	input.CharLimit = 512
	input.Width = 48
	input.Prompt = "> "
	input.PromptStyle = inputPromptStyle
	input.Focus()

	return textModel{
		message:      message,
		defaultValue: defaultValue,
		validate:     validate,
		input:        input,
	}
}

// Init implements tea.Model
func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, keys.Submit):
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				value = m.defaultValue
			}
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.err = err
					return m, nil
				}
			}

			m.value = value
			m.err = nil
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
	}
	return m, cmd
}

// View implements tea.Model
func (m textModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", questionStyle.Render(m.message), answerStyle.Render(m.value))
	}
	if m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(questionStyle.Render(m.message))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter confirm • esc cancel"))
	b.WriteString("\n")

	return b.String()
}
