package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/bolso/internal/money"
)

// PromptInitCurrency asks for the display currency on first run.
func PromptInitCurrency(currDefault string) (string, error) {
	selection := currDefault

	err := huh.NewSelect[string]().
		Title("Welcome to bolso! Choose the currency used to display amounts:").
		Description("Amounts are stored in cents; the currency only changes how they are shown.").
		Options(
			huh.NewOption("BRL - Real", "BRL"),
			huh.NewOption("USD - US Dollar", "USD"),
			huh.NewOption("EUR - Euro", "EUR"),
			huh.NewOption("GBP - British Pound", "GBP"),
			huh.NewOption("Other", "Other"),
		).
		Value(&selection).
		Run()
	if err != nil {
		return "", err
	}

	if selection != "Other" {
		return selection, nil
	}

	var customInput string
	err = huh.NewInput().
		Title("Please enter the currency code:").
		Description("ISO 4217 three-letter code of a currency with cents.").
		Value(&customInput).
		Validate(func(s string) error {
			_, err := money.NewFormatter(s)
			return err
		}).
		Run()
	if err != nil {
		return "", err
	}

	return strings.ToUpper(strings.TrimSpace(customInput)), nil
}
