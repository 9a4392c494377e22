package ledger

import (
	"slices"

	"github.com/hance08/bolso/internal/money"
)

// Effect returns the signed change that t applies to account's balance.
//
//	            Asset   Liability
//	income       +v        -v
//	expense      -v        +v
//	transfer out -v        +v
//	transfer in  +v        -v
//
// A transfer whose source and destination are the same account nets to zero.
func Effect(account Account, t Transaction) money.Amount {
	delta := money.Zero

	switch t.Kind {
	case Transfer:
		if t.FromAccountID == account.ID {
			delta = delta.Add(outflow(account.Type, t.Value))
		}
		if t.ToAccountID == account.ID {
			delta = delta.Add(inflow(account.Type, t.Value))
		}
	case External:
		if t.AccountID != account.ID {
			return money.Zero
		}
		switch t.ExternalKind {
		case Income:
			delta = inflow(account.Type, t.Value)
		case Expense:
			delta = outflow(account.Type, t.Value)
		}
	}

	return delta
}

func inflow(accType AccountType, v money.Amount) money.Amount {
	if accType == Liability {
		return v.Neg()
	}
	return v
}

func outflow(accType AccountType, v money.Amount) money.Amount {
	if accType == Liability {
		return v
	}
	return v.Neg()
}

// ComputeBalance returns account's balance as of the end of period: the
// initial balance plus every transaction dated on or before period.End.
// Transactions before period.Start are included.
//
// Transactions are visited by ascending date; ties keep their input order.
// The input slice is not modified.
func ComputeBalance(account Account, transactions []Transaction, period Period) money.Amount {
	ordered := slices.Clone(transactions)
	slices.SortStableFunc(ordered, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})

	balance := account.InitialBalance
	for _, t := range ordered {
		if !period.Includes(t.Date) {
			continue
		}
		balance = balance.Add(Effect(account, t))
	}

	return balance
}
