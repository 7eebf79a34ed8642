// Package tui provides the terminal prompts used by the interactive tools.
// It uses the Charm Bubble Tea framework; each prompt is a short-lived program.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the prompts
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Violet
	secondaryColor = lipgloss.Color("#10B981") // Emerald
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6C7086") // Muted text
)

// questionStyle renders the prompt message
var questionStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(primaryColor)

// inputPromptStyle renders the input cursor prompt
var inputPromptStyle = lipgloss.NewStyle().
	Foreground(accentColor).
	Bold(true)

// answerStyle renders an accepted answer once the prompt is done
var answerStyle = lipgloss.NewStyle().
	Foreground(secondaryColor)

// helpStyle renders key hints below a prompt
var helpStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	MarginTop(1)

// errorStyle renders validation errors
var errorStyle = lipgloss.NewStyle().
	Foreground(errorColor).
	Bold(true)
