package prompts

import (
	"github.com/charmbracelet/huh"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/service"
	"github.com/hance08/bolso/internal/validation"
)

// PromptAccount runs the account form. Fields already set in initial are
// offered as defaults.
func PromptAccount(initial service.AccountInput) (service.AccountInput, error) {
	input := initial
	if input.Type == "" {
		input.Type = string(ledger.Asset)
	}

	typeOptions := make([]huh.Option[string], 0, len(ledger.AccountTypes))
	for _, t := range ledger.AccountTypes {
		typeOptions = append(typeOptions, huh.NewOption(t.Label(), string(t)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Account Name:").
				Value(&input.Name).
				Validate(validation.AccountName),
			huh.NewSelect[string]().
				Title("Account Type:").
				Description("Assets grow with income, liabilities grow with expenses.").
				Options(typeOptions...).
				Value(&input.Type),
			huh.NewInput().
				Title("Initial Balance:").
				Description("e.g. 1500 or 1500,50 (leave empty for 0)").
				Value(&input.InitialBalance).
				Validate(validation.InitialBalance),
		),
	)

	if err := form.Run(); err != nil {
		return service.AccountInput{}, err
	}
	return input, nil
}
