package ui

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/rileyhilliard/gitstrap/internal/errors"
)

// Prompter asks the operator for values using huh forms.
//
// In non-interactive mode every prompt that has no usable initial value is
// an error instead of a hang, so unattended runs fail fast with the manual
// command to run.
type Prompter struct {
	NonInteractive bool
}

// NewPrompter creates a prompter. Non-interactive is forced when stdin is
// not a terminal.
func NewPrompter(nonInteractive bool) *Prompter {
	if !nonInteractive && !IsTerminal() {
		nonInteractive = true
	}
	return &Prompter{NonInteractive: nonInteractive}
}

// IsTerminal reports whether stdin is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Input collects a single line of text. The initial value is returned
// unchanged in non-interactive mode; an empty initial value in that mode is
// an error.
func (p *Prompter) Input(title, description, placeholder, initial string) (string, error) {
	if p.NonInteractive {
		if initial == "" {
			return "", errors.New(errors.ErrConfig,
				"'"+title+"' has no value and prompts are disabled",
				"Re-run interactively, or set the value up front.")
		}
		return initial, nil
	}

	value := initial
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Placeholder(placeholder).
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read input",
			"")
	}
	return value, nil
}

// Confirm blocks on a yes/no question. Non-interactive mode answers with
// the provided default.
func (p *Prompter) Confirm(title, description string, defaultYes bool) (bool, error) {
	if p.NonInteractive {
		return defaultYes, nil
	}

	answer := defaultYes
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&answer),
		),
	)

	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read input",
			"")
	}
	return answer, nil
}
