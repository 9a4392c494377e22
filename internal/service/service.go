package service

import (
	"github.com/charmbracelet/log"
	"github.com/hance08/bolso/internal/config"
	"github.com/hance08/bolso/internal/store"
)

type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Balance     *BalanceService
}

// NewService wires the use cases over repo. changes may be nil, in which case
// balance subscriptions are not refreshed on storage writes.
func NewService(repo store.Repository, changes ChangeSource, cfg *config.Config, logger *log.Logger) *Service {
	return &Service{
		Account:     NewAccountService(repo),
		Transaction: NewTransactionService(repo),
		Balance: NewBalanceService(repo, changes, logger, BalanceOptions{
			Workers:   cfg.Balance.Workers,
			QueueSize: cfg.Balance.QueueSize,
		}),
	}
}
