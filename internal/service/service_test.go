package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hance08/bolso/internal/apperr"
	"github.com/hance08/bolso/internal/config"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	logger := log.New(io.Discard)
	st, err := store.NewStore(filepath.Join(t.TempDir(), "bolso.db"), os.DirFS("../.."), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := NewService(st, st.Changes(), config.NewDefault(), logger)
	require.NoError(t, svc.Balance.Start(context.Background()))
	t.Cleanup(svc.Balance.Close)
	return svc
}

func mustAccount(t *testing.T, svc *Service, name, accType, initial string) *ledger.Account {
	t.Helper()

	acc, err := svc.Account.Create(context.Background(), AccountInput{Name: name, Type: accType, InitialBalance: initial})
	require.NoError(t, err)
	return acc
}

func TestAccountService_Create(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acc, err := svc.Account.Create(ctx, AccountInput{Name: "  Checking ", Type: "Ativo", InitialBalance: "1.000"})
	require.Error(t, err, "thousands separators are not part of the input format")
	assert.Nil(t, acc)

	acc, err = svc.Account.Create(ctx, AccountInput{Name: "  Checking ", Type: "Ativo", InitialBalance: "1000,5"})
	require.NoError(t, err)
	assert.NotEmpty(t, acc.ID)
	assert.Equal(t, "Checking", acc.Name)
	assert.Equal(t, ledger.Asset, acc.Type)
	assert.Equal(t, "100050", acc.InitialBalance.String())

	got, err := svc.Account.Get(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, *acc, *got)
}

func TestAccountService_CreateEmptyBalance(t *testing.T) {
	svc := newTestService(t)

	acc := mustAccount(t, svc, "Wallet", "asset", "")
	assert.True(t, acc.InitialBalance.IsZero())
}

func TestAccountService_CreateReportsEveryField(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Account.Create(context.Background(), AccountInput{Name: " ", Type: "equity", InitialBalance: "abc"})
	require.Error(t, err)

	fields := map[string]bool{}
	for _, fe := range apperr.FieldErrors(err) {
		fields[fe.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["type"])
	assert.ErrorIs(t, err, apperr.ErrParse)
}

func TestAccountService_UpdateAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acc := mustAccount(t, svc, "Card", "liability", "0")

	updated, err := svc.Account.Update(ctx, acc.ID, AccountInput{Name: "Visa", Type: "liability", InitialBalance: "50"})
	require.NoError(t, err)
	assert.Equal(t, acc.ID, updated.ID)
	assert.Equal(t, "Visa", updated.Name)
	assert.Equal(t, "5000", updated.InitialBalance.String())

	_, err = svc.Account.Update(ctx, "ghost", AccountInput{Name: "x", Type: "asset"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.Account.Delete(ctx, acc.ID))
	_, err = svc.Account.Get(ctx, acc.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, svc.Account.Delete(ctx, acc.ID), apperr.ErrNotFound)
}

func TestAccountService_DeleteReferencedAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	acc := mustAccount(t, svc, "Checking", "asset", "0")
	_, err := svc.Transaction.CreateExternal(ctx, "2024-01-01", "salary", "100", acc.ID, "income")
	require.NoError(t, err)

	err = svc.Account.Delete(ctx, acc.ID)
	require.ErrorIs(t, err, apperr.ErrValidation)

	fes := apperr.FieldErrors(err)
	require.Len(t, fes, 1)
	assert.Equal(t, "account", fes[0].Field)
}

func TestAccountService_ListAndNames(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	b := mustAccount(t, svc, "Savings", "asset", "")
	a := mustAccount(t, svc, "Card", "liability", "")

	accounts, err := svc.Account.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Card", accounts[0].Name)
	assert.Equal(t, "Savings", accounts[1].Name)

	names, err := svc.Account.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{a.ID: "Card", b.ID: "Savings"}, names)
}

func TestTransactionService_CreateExternal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	acc := mustAccount(t, svc, "Checking", "asset", "100")

	tx, err := svc.Transaction.CreateExternal(ctx, "2024-03-02", " groceries ", "42,9", acc.ID, "despesa")
	require.NoError(t, err)
	assert.Equal(t, ledger.External, tx.Kind)
	assert.Equal(t, ledger.Expense, tx.ExternalKind)
	assert.Equal(t, "groceries", tx.Description)
	assert.Equal(t, "4290", tx.Value.String())
	assert.Equal(t, "2024-03-02", tx.Date.String())

	got, err := svc.Transaction.Get(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, *tx, *got)
}

func TestTransactionService_CreateDefaultsToToday(t *testing.T) {
	svc := newTestService(t)
	acc := mustAccount(t, svc, "Checking", "asset", "")

	tx, err := svc.Transaction.CreateExternal(context.Background(), "", "", "1", acc.ID, "income")
	require.NoError(t, err)
	assert.Equal(t, ledger.Today(), tx.Date)
}

func TestTransactionService_CreateRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := mustAccount(t, svc, "A", "asset", "")
	b := mustAccount(t, svc, "B", "asset", "")

	tests := []struct {
		name  string
		input TransactionInput
		is    error
	}{
		{
			name:  "bad amount",
			input: TransactionInput{Kind: ledger.External, Amount: "10.50", AccountID: a.ID, ExternalKind: "income"},
			is:    apperr.ErrParse,
		},
		{
			name:  "zero amount",
			input: TransactionInput{Kind: ledger.External, Amount: "0", AccountID: a.ID, ExternalKind: "income"},
			is:    apperr.ErrValidation,
		},
		{
			name:  "bad date",
			input: TransactionInput{Kind: ledger.External, Date: "02/03/2024", Amount: "1", AccountID: a.ID, ExternalKind: "income"},
			is:    apperr.ErrParse,
		},
		{
			name:  "bad external kind",
			input: TransactionInput{Kind: ledger.External, Amount: "1", AccountID: a.ID, ExternalKind: "gift"},
			is:    apperr.ErrValidation,
		},
		{
			name:  "transfer to itself",
			input: TransactionInput{Kind: ledger.Transfer, Amount: "1", FromAccountID: a.ID, ToAccountID: a.ID},
			is:    apperr.ErrValidation,
		},
		{
			name:  "unknown kind",
			input: TransactionInput{Kind: "refund", Amount: "1"},
			is:    apperr.ErrValidation,
		},
		{
			name:  "unknown account",
			input: TransactionInput{Kind: ledger.Transfer, Amount: "1", FromAccountID: b.ID, ToAccountID: "ghost"},
			is:    apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transaction.Create(ctx, tt.input)
			assert.ErrorIs(t, err, tt.is)
		})
	}

	all, err := svc.Transaction.List(ctx, ledger.AllTime(), 0)
	require.NoError(t, err)
	assert.Empty(t, all, "rejected input must not be stored")
}

func TestTransactionService_UpdateAndDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := mustAccount(t, svc, "A", "asset", "")
	b := mustAccount(t, svc, "B", "asset", "")

	tx, err := svc.Transaction.CreateExternal(ctx, "2024-01-01", "first", "10", a.ID, "income")
	require.NoError(t, err)

	input := ToInput(*tx)
	assert.Equal(t, "10,00", input.Amount)

	input.Kind = ledger.Transfer
	input.FromAccountID = a.ID
	input.ToAccountID = b.ID
	updated, err := svc.Transaction.Update(ctx, tx.ID, input)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, updated.ID)
	assert.True(t, updated.IsTransfer())
	assert.Empty(t, updated.AccountID)

	detail, err := svc.Transaction.GetDetail(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", detail.FromAccountName)
	assert.Equal(t, "B", detail.ToAccountName)

	_, err = svc.Transaction.Update(ctx, "ghost", input)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.Transaction.Delete(ctx, tx.ID))
	assert.ErrorIs(t, svc.Transaction.Delete(ctx, tx.ID), apperr.ErrNotFound)
}

func TestTransactionService_ListNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := mustAccount(t, svc, "A", "asset", "")
	b := mustAccount(t, svc, "B", "asset", "")

	for _, date := range []string{"2024-01-03", "2024-01-01", "2024-01-02"} {
		_, err := svc.Transaction.CreateExternal(ctx, date, date, "1", a.ID, "income")
		require.NoError(t, err)
	}
	_, err := svc.Transaction.CreateExternal(ctx, "2024-01-05", "other", "1", b.ID, "income")
	require.NoError(t, err)

	all, err := svc.Transaction.List(ctx, ledger.AllTime(), 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2024-01-05", all[0].Date.String())

	limited, err := svc.Transaction.ListByAccount(ctx, a.ID, ledger.AllTime(), 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "2024-01-03", limited[0].Description)
	assert.Equal(t, "2024-01-02", limited[1].Description)

	_, err = svc.Transaction.ListByAccount(ctx, "ghost", ledger.AllTime(), 0)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTransactionService_ListWithinPeriod(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := mustAccount(t, svc, "A", "asset", "")
	b := mustAccount(t, svc, "B", "asset", "")

	for _, date := range []string{"2023-12-31", "2024-01-01", "2024-01-31", "2024-02-01"} {
		_, err := svc.Transaction.CreateExternal(ctx, date, date, "1", a.ID, "income")
		require.NoError(t, err)
	}
	_, err := svc.Transaction.CreateTransfer(ctx, "2024-01-15", "move", "1", b.ID, a.ID)
	require.NoError(t, err)

	jan := ledger.MonthOf(ledger.NewDate(2024, time.January, 1))

	all, err := svc.Transaction.List(ctx, jan, 0)
	require.NoError(t, err)
	var dates []string
	for _, tx := range all {
		dates = append(dates, tx.Date.String())
	}
	assert.Equal(t, []string{"2024-01-31", "2024-01-15", "2024-01-01"}, dates)

	ofB, err := svc.Transaction.ListByAccount(ctx, b.ID, jan, 0)
	require.NoError(t, err)
	require.Len(t, ofB, 1)
	assert.Equal(t, "move", ofB[0].Description)

	none, err := svc.Transaction.ListByAccount(ctx, b.ID, ledger.MonthOf(ledger.NewDate(2024, time.March, 1)), 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_BalanceFollowsWrites(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	checking := mustAccount(t, svc, "Checking", "asset", "1000")
	card := mustAccount(t, svc, "Card", "liability", "")

	sub := svc.Balance.Subscribe(8)
	defer sub.Unsubscribe()

	_, err := sub.Request(ctx, card.ID, ledger.AllTime())
	require.NoError(t, err)
	awaitBalance(t, sub, "0")

	_, err = svc.Transaction.CreateExternal(ctx, "2024-02-01", "dinner", "80", card.ID, "expense")
	require.NoError(t, err)
	awaitBalance(t, sub, "8000")

	_, err = svc.Transaction.CreateTransfer(ctx, "2024-02-10", "pay card", "50", checking.ID, card.ID)
	require.NoError(t, err)
	awaitBalance(t, sub, "3000")

	bal, err := svc.Balance.Balance(ctx, checking.ID, ledger.AllTime())
	require.NoError(t, err)
	assert.Equal(t, "95000", bal.String())
}

// awaitBalance reads results until one carries want. Refreshes triggered by
// earlier writes may deliver intermediate balances first.
func awaitBalance(t *testing.T, sub *Subscription, want string) {
	t.Helper()

	for {
		r := receive(t, sub)
		require.NoError(t, r.Err)
		if r.Balance.String() == want {
			return
		}
	}
}

func TestResolveByPrefix(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	acc := mustAccount(t, svc, "Checking", "asset", "")

	got, err := svc.Account.Resolve(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	got, err = svc.Account.Resolve(ctx, acc.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	_, err = svc.Account.Resolve(ctx, "zzzz")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Account.Resolve(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	tx, err := svc.Transaction.CreateExternal(ctx, "2024-01-01", "", "1", acc.ID, "income")
	require.NoError(t, err)
	gotTx, err := svc.Transaction.Resolve(ctx, tx.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, tx.ID, gotTx.ID)
}

func TestUniquePrefixAmbiguous(t *testing.T) {
	ids := []string{"abc1", "abc2", "xyz"}

	_, err := uniquePrefix(ids, "abc", "account", func(s string) string { return s })
	assert.ErrorIs(t, err, apperr.ErrValidation)

	got, err := uniquePrefix(ids, "x", "account", func(s string) string { return s })
	require.NoError(t, err)
	assert.Equal(t, "xyz", got)
}
