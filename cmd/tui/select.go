package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const selectWidth = 48

// optionItem is one selectable value (implements list.DefaultItem)
type optionItem string

// Title returns the option text
func (o optionItem) Title() string { return string(o) }

// Description is empty; options are self-describing
func (o optionItem) Description() string { return "" }

// FilterValue returns the filter value
func (o optionItem) FilterValue() string { return string(o) }

// selectModel lets the user pick one option with the arrow keys.
type selectModel struct {
	message string
	list    list.Model

	choice  string
	done    bool
	aborted bool
}

func newSelectModel(message string, options []string, defaultOption string) selectModel {
	items := make([]list.Item, 0, len(options))
	selected := 0
	for i, opt := range options {
		items = append(items, optionItem(opt))
		if opt == defaultOption {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(primaryColor).
		BorderForeground(primaryColor)

	// title, items, help and some slack
	height := len(options) + 6
	l := list.New(items, delegate, selectWidth, height)
	l.Title = message
	l.Styles.Title = questionStyle
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Select(selected)

	return selectModel{
		message: message,
		list:    l,
	}
}

// Init implements tea.Model
func (m selectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 && msg.Width < selectWidth {
			m.list.SetWidth(msg.Width)
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, keys.Submit):
			if item, ok := m.list.SelectedItem().(optionItem); ok {
				m.choice = string(item)
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m selectModel) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", questionStyle.Render(m.message), answerStyle.Render(m.choice))
	}
	if m.aborted {
		return ""
	}

	return m.list.View() + "\n"
}
