package tui

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/Laisky/errors/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Laisky/vigi-tools/internal/news"
)

// Option configures a Prompter.
type Option func(*Prompter)

// WithInput reads key presses from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(p *Prompter) {
		if r != nil {
			p.input = r
		}
	}
}

// WithOutput renders prompts to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(p *Prompter) {
		if w != nil {
			p.output = w
		}
	}
}

// Prompter implements news.Prompter on the terminal. Prompts render to
// stderr so stdout carries only tool output.
type Prompter struct {
	input  io.Reader
	output io.Writer
}

var _ news.Prompter = (*Prompter)(nil)

// NewPrompter creates a terminal Prompter.
func NewPrompter(opts ...Option) *Prompter {
	p := &Prompter{
		input:  os.Stdin,
		output: os.Stderr,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// SelectOne shows options as a menu with defaultOption preselected.
func (p *Prompter) SelectOne(ctx context.Context, message string, options []string, defaultOption string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options to select from")
	}

	final, err := p.run(ctx, newSelectModel(message, options, defaultOption))
	if err != nil {
		return "", err
	}

	m, ok := final.(selectModel)
	if !ok {
		return "", errors.Errorf("unexpected select model %T", final)
	}
	if !m.done {
		return "", news.ErrPromptAborted
	}

	return m.choice, nil
}

// ReadText reads one line; blank input yields defaultValue. Values the
// validator rejects are reported inline and the prompt stays open.
func (p *Prompter) ReadText(ctx context.Context, message, defaultValue string, validate news.Validator) (string, error) {
	final, err := p.run(ctx, newTextModel(message, defaultValue, validate))
	if err != nil {
		return "", err
	}

	m, ok := final.(textModel)
	if !ok {
		return "", errors.Errorf("unexpected text model %T", final)
	}
	if !m.done {
		return "", news.ErrPromptAborted
	}

	return m.value, nil
}

// ReadRequiredText reads one line that must not be blank.
func (p *Prompter) ReadRequiredText(ctx context.Context, message string) (string, error) {
	return p.ReadText(ctx, message, "", requireNonBlank)
}

func requireNonBlank(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("this field is required")
	}

	return nil
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithInput(p.input),
		tea.WithOutput(p.output),
	)

	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(news.ErrPromptAborted, ctx.Err().Error())
		}
		return nil, errors.Wrap(err, "run prompt")
	}

	return final, nil
}
