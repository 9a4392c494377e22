package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/bolso/internal/validation"
)

// PromptDescription prompts for a description text
func PromptDescription(message string, defaultValue string, required bool) (string, error) {
	desc := defaultValue

	input := huh.NewInput().
		Title(message).
		Value(&desc)

	if required {
		input.Validate(validation.Required("description"))
	}

	err := input.Run()
	return strings.TrimSpace(desc), err
}

// PromptAmount prompts for an amount with custom validation
func PromptAmount(message string, helpText string, defaultValue string, validator func(string) error) (string, error) {
	amount := defaultValue

	input := huh.NewInput().
		Title(message).
		Description(helpText).
		Value(&amount)

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	return strings.TrimSpace(amount), err
}

// PromptDate prompts for a date in YYYY-MM-DD format
func PromptDate(message string, defaultDate string, helpText string) (string, error) {
	var date string

	err := huh.NewInput().
		Title(message).
		Description(helpText).
		Placeholder(defaultDate).
		Value(&date).
		Validate(validation.Date).
		Run()

	if err != nil {
		return "", err
	}

	// If user pressed enter without typing, use the placeholder/default
	if strings.TrimSpace(date) == "" {
		return defaultDate, nil
	}
	return strings.TrimSpace(date), nil
}

// Option is a select entry: Label is shown, Value is returned.
type Option struct {
	Label string
	Value string
}

// PromptSelect prompts for a selection from a list of options
func PromptSelect(message string, options []Option, defaultValue string) (string, error) {
	selected := defaultValue

	var opts []huh.Option[string]
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}

	err := huh.NewSelect[string]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(min(len(options)+2, 15)).
		Run()

	return selected, err
}
