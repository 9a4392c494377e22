// Package cmdutil holds helpers shared by the command packages.
package cmdutil

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hance08/bolso/internal/app"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/hance08/bolso/internal/validation"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// PeriodFlags selects the period a balance is computed for.
type PeriodFlags struct {
	Month string
	From  string
	To    string
	All   bool
}

func (f *PeriodFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Month, "month", "m", "", "Balance as of the end of this month (YYYY-MM, default: current month)")
	cmd.Flags().StringVar(&f.From, "from", "", "Start of the period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.To, "to", "", "End of the period (YYYY-MM-DD, default: today)")
	cmd.Flags().BoolVar(&f.All, "all", false, "Include every transaction, whatever its date")
	cmd.MarkFlagsMutuallyExclusive("month", "from")
	cmd.MarkFlagsMutuallyExclusive("month", "to")
	cmd.MarkFlagsMutuallyExclusive("all", "month")
	cmd.MarkFlagsMutuallyExclusive("all", "from")
	cmd.MarkFlagsMutuallyExclusive("all", "to")
}

// Period resolves the flags against today.
func (f *PeriodFlags) Period(today ledger.Date) (ledger.Period, error) {
	switch {
	case f.All:
		return ledger.AllTime(), nil
	case f.Month != "":
		if err := validation.Month(f.Month); err != nil {
			return ledger.Period{}, fmt.Errorf("--month: %w", err)
		}
		return ledger.ParseMonth(strings.TrimSpace(f.Month))
	case f.From != "" || f.To != "":
		end := today
		if f.To != "" {
			d, err := ledger.ParseDate(strings.TrimSpace(f.To))
			if err != nil {
				return ledger.Period{}, fmt.Errorf("--to: %w", err)
			}
			end = d
		}
		start := end.StartOfMonth()
		if f.From != "" {
			d, err := ledger.ParseDate(strings.TrimSpace(f.From))
			if err != nil {
				return ledger.Period{}, fmt.Errorf("--from: %w", err)
			}
			start = d
		}
		return ledger.NewPeriod(start, end)
	default:
		return ledger.MonthOf(today), nil
	}
}

// Window resolves the flags as a listing range: with none of them set it
// covers every date instead of the current month.
func (f *PeriodFlags) Window(today ledger.Date) (ledger.Period, error) {
	if !f.All && f.Month == "" && f.From == "" && f.To == "" {
		return ledger.AllTime(), nil
	}
	return f.Period(today)
}

// Formatter returns the money formatter for the configured currency.
func Formatter(a *app.App) (*money.Formatter, error) {
	return money.NewFormatter(a.Config.Defaults.Currency)
}

// AccountsByID loads every account keyed by id.
func AccountsByID(ctx context.Context, a *app.App) (map[string]ledger.Account, []ledger.Account, error) {
	accounts, err := a.Service.Account.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	byID := make(map[string]ledger.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}
	return byID, accounts, nil
}

// FormattedBalances computes every account's current balance through the
// balance workers and formats it for prompts. Failed accounts are left out.
func FormattedBalances(ctx context.Context, a *app.App, accounts []ledger.Account, format *money.Formatter) map[string]string {
	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		ids = append(ids, acc.ID)
	}

	results, err := a.Service.Balance.Balances(ctx, ids, ledger.MonthOf(ledger.Today()))
	if err != nil {
		a.Logger.Debug("balances unavailable", "err", err)
		return nil
	}

	out := make(map[string]string, len(results))
	for id, r := range results {
		if r.Err == nil {
			out[id] = format.Format(r.Balance, true)
		}
	}
	return out
}

// Interactive reports whether prompts can be shown.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
