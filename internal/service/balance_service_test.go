package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hance08/bolso/internal/apperr"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/hance08/bolso/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	accounts map[string]ledger.Account
	txs      []ledger.Transaction
	gate     chan struct{}
	fail     error
	scans    int
}

func newFakeSource(accounts ...ledger.Account) *fakeSource {
	src := &fakeSource{accounts: make(map[string]ledger.Account)}
	for _, acc := range accounts {
		src.accounts[acc.ID] = acc
	}
	return src
}

func (f *fakeSource) add(tx ledger.Transaction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs = append(f.txs, tx)
}

func (f *fakeSource) scanCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scans
}

func (f *fakeSource) FindAccountByID(_ context.Context, id string) (*ledger.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	acc, ok := f.accounts[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return &acc, nil
}

func (f *fakeSource) FindAllTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	f.mu.Lock()
	gate, fail := f.gate, f.fail
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail != nil {
		return nil, fail
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans++
	return append([]ledger.Transaction(nil), f.txs...), nil
}

var (
	checking = ledger.Account{ID: "checking", Name: "Checking", Type: ledger.Asset, InitialBalance: money.FromMinor(10000)}
	card     = ledger.Account{ID: "card", Name: "Card", Type: ledger.Liability, InitialBalance: money.Zero}

	january  = ledger.MonthOf(ledger.NewDate(2024, time.January, 1))
	february = ledger.MonthOf(ledger.NewDate(2024, time.February, 1))
)

func income(id string, date ledger.Date, cents int64, accountID string) ledger.Transaction {
	return ledger.NewExternal(id, date, "", money.FromMinor(cents), accountID, ledger.Income)
}

func expense(id string, date ledger.Date, cents int64, accountID string) ledger.Transaction {
	return ledger.NewExternal(id, date, "", money.FromMinor(cents), accountID, ledger.Expense)
}

func newBalanceService(t *testing.T, src BalanceSource, changes ChangeSource) *BalanceService {
	t.Helper()

	svc := NewBalanceService(src, changes, log.New(io.Discard), BalanceOptions{Workers: 2, QueueSize: 8})
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(svc.Close)
	return svc
}

func receive(t *testing.T, sub *Subscription) BalanceResult {
	t.Helper()

	select {
	case r, ok := <-sub.Results():
		require.True(t, ok, "results closed")
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a balance result")
		return BalanceResult{}
	}
}

func TestBalanceService_Balance(t *testing.T) {
	src := newFakeSource(checking)
	src.add(income("t1", ledger.NewDate(2024, time.January, 5), 500, "checking"))
	src.add(expense("t2", ledger.NewDate(2024, time.February, 5), 200, "checking"))

	svc := NewBalanceService(src, nil, nil, BalanceOptions{})

	bal, err := svc.Balance(context.Background(), "checking", january)
	require.NoError(t, err)
	assert.Equal(t, "10500", bal.String())

	bal, err = svc.Balance(context.Background(), "checking", february)
	require.NoError(t, err)
	assert.Equal(t, "10300", bal.String())
}

func TestBalanceService_BalanceNotFound(t *testing.T) {
	svc := NewBalanceService(newFakeSource(), nil, nil, BalanceOptions{})

	_, err := svc.Balance(context.Background(), "ghost", january)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ghost", nf.ID)
}

func TestBalanceService_BalanceSourceFailure(t *testing.T) {
	src := newFakeSource(checking)
	src.fail = errors.New("disk on fire")
	svc := NewBalanceService(src, nil, nil, BalanceOptions{})

	_, err := svc.Balance(context.Background(), "checking", january)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestSubscription_RequestEchoesKey(t *testing.T) {
	src := newFakeSource(checking, card)
	src.add(expense("t1", ledger.NewDate(2024, time.January, 5), 700, "card"))
	svc := newBalanceService(t, src, nil)

	sub := svc.Subscribe(4)
	defer sub.Unsubscribe()

	token, err := sub.Request(context.Background(), "card", january)
	require.NoError(t, err)

	r := receive(t, sub)
	require.NoError(t, r.Err)
	assert.Equal(t, token, r.Token)
	assert.Equal(t, "card", r.AccountID)
	assert.Equal(t, january, r.Period)
	assert.Equal(t, "700", r.Balance.String())
	assert.True(t, sub.IsCurrent(r))
}

func TestSubscription_MissingAccountIsAnError(t *testing.T) {
	svc := newBalanceService(t, newFakeSource(checking), nil)

	sub := svc.Subscribe(1)
	defer sub.Unsubscribe()

	_, err := sub.Request(context.Background(), "ghost", january)
	require.NoError(t, err)

	r := receive(t, sub)
	require.ErrorIs(t, r.Err, apperr.ErrNotFound)
	assert.True(t, r.Balance.IsZero())
}

func TestSubscription_NewerRequestSupersedesOlder(t *testing.T) {
	src := newFakeSource(checking)
	src.add(income("t1", ledger.NewDate(2024, time.February, 5), 500, "checking"))
	src.gate = make(chan struct{})
	svc := newBalanceService(t, src, nil)

	sub := svc.Subscribe(4)
	defer sub.Unsubscribe()

	older, err := sub.Request(context.Background(), "checking", january)
	require.NoError(t, err)
	newer, err := sub.Request(context.Background(), "checking", february)
	require.NoError(t, err)
	require.Greater(t, newer, older)

	close(src.gate)

	r := receive(t, sub)
	assert.Equal(t, newer, r.Token)
	assert.Equal(t, february, r.Period)
	assert.Equal(t, "10500", r.Balance.String())

	select {
	case r := <-sub.Results():
		t.Fatalf("unexpected result for token %d", r.Token)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscription_IndependentAccountsInterleave(t *testing.T) {
	src := newFakeSource(checking, card)
	svc := newBalanceService(t, src, nil)

	sub := svc.Subscribe(4)
	defer sub.Unsubscribe()

	_, err := sub.Request(context.Background(), "checking", january)
	require.NoError(t, err)
	_, err = sub.Request(context.Background(), "card", january)
	require.NoError(t, err)

	got := map[string]string{}
	for range 2 {
		r := receive(t, sub)
		require.NoError(t, r.Err)
		got[r.AccountID] = r.Balance.String()
	}
	assert.Equal(t, map[string]string{"checking": "10000", "card": "0"}, got)
}

func TestSubscription_RefreshesOnChange(t *testing.T) {
	src := newFakeSource(checking)
	changes := store.NewChanges()
	svc := newBalanceService(t, src, changes)

	sub := svc.Subscribe(4)
	defer sub.Unsubscribe()

	first, err := sub.Request(context.Background(), "checking", january)
	require.NoError(t, err)
	r := receive(t, sub)
	require.Equal(t, first, r.Token)
	require.Equal(t, "10000", r.Balance.String())

	src.add(expense("t1", ledger.NewDate(2024, time.January, 20), 2500, "checking"))
	changes.Publish()

	r = receive(t, sub)
	require.NoError(t, r.Err)
	assert.Greater(t, r.Token, first)
	assert.Equal(t, january, r.Period)
	assert.Equal(t, "7500", r.Balance.String())
	assert.True(t, sub.IsCurrent(r))
}

func TestSubscription_Unsubscribe(t *testing.T) {
	svc := newBalanceService(t, newFakeSource(checking), nil)
	sub := svc.Subscribe(0)

	sub.Unsubscribe()
	sub.Unsubscribe()

	_, ok := <-sub.Results()
	assert.False(t, ok)

	_, err := sub.Request(context.Background(), "checking", january)
	assert.ErrorIs(t, err, ErrSubscriptionClosed)
}

func TestSubscription_UnreadResultsDoNotBlockUnsubscribe(t *testing.T) {
	src := newFakeSource(checking, card)
	svc := newBalanceService(t, src, nil)
	sub := svc.Subscribe(0)

	_, err := sub.Request(context.Background(), "checking", january)
	require.NoError(t, err)
	_, err = sub.Request(context.Background(), "card", january)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		sub.Unsubscribe()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("unsubscribe blocked on undelivered results")
	}
}

func TestSubscription_IdleReaderDoesNotStallWorkers(t *testing.T) {
	savings := ledger.Account{ID: "savings", Name: "Savings", Type: ledger.Asset, InitialBalance: money.FromMinor(50)}
	loan := ledger.Account{ID: "loan", Name: "Loan", Type: ledger.Liability, InitialBalance: money.FromMinor(900)}
	src := newFakeSource(checking, card, savings, loan)
	svc := newBalanceService(t, src, nil)

	idle := svc.Subscribe(0)
	defer idle.Unsubscribe()
	for _, id := range []string{"checking", "card", "savings", "loan"} {
		_, err := idle.Request(context.Background(), id, january)
		require.NoError(t, err)
	}

	active := svc.Subscribe(1)
	defer active.Unsubscribe()
	_, err := active.Request(context.Background(), "checking", january)
	require.NoError(t, err)

	r := receive(t, active)
	require.NoError(t, r.Err)
	assert.Equal(t, "10000", r.Balance.String())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	results, err := svc.Balances(ctx, []string{"savings", "loan"}, january)
	require.NoError(t, err)
	assert.Equal(t, "50", results["savings"].Balance.String())
	assert.Equal(t, "900", results["loan"].Balance.String())

	// the idle reader still gets one result per account once it reads
	got := map[string]string{}
	for range 4 {
		r := receive(t, idle)
		got[r.AccountID] = r.Balance.String()
	}
	assert.Equal(t, map[string]string{"checking": "10000", "card": "0", "savings": "50", "loan": "900"}, got)
}

func TestSubscription_UnreadResultIsReplacedByNewer(t *testing.T) {
	src := newFakeSource(checking)
	svc := newBalanceService(t, src, nil)

	sub := svc.Subscribe(0)
	defer sub.Unsubscribe()

	_, err := sub.Request(context.Background(), "checking", january)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		if src.scanCount() == 0 {
			return false
		}
		sub.mu.Lock()
		defer sub.mu.Unlock()
		return len(sub.ready) == 0
	}, 2*time.Second, 5*time.Millisecond, "first balance was never computed")

	src.add(income("t1", ledger.NewDate(2024, time.January, 9), 250, "checking"))
	newer, err := sub.Request(context.Background(), "checking", january)
	require.NoError(t, err)

	r := receive(t, sub)
	if r.Token != newer {
		// the first result was already in hand; it is stale now
		assert.False(t, sub.IsCurrent(r))
		r = receive(t, sub)
	}
	assert.Equal(t, newer, r.Token)
	assert.Equal(t, "10250", r.Balance.String())
}

func TestSubscription_RequestRacingUnsubscribeLeavesNothingLive(t *testing.T) {
	// never started: jobs only sit in the queue
	svc := NewBalanceService(newFakeSource(checking), nil, nil, BalanceOptions{QueueSize: 512})
	defer svc.Close()

	for range 20 {
		sub := svc.Subscribe(1)

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = sub.Request(context.Background(), fmt.Sprintf("acc-%d", i), january)
			}()
		}
		sub.Unsubscribe()
		wg.Wait()

		sub.mu.Lock()
		for id, req := range sub.latest {
			assert.Error(t, req.ctx.Err(), "request for %s still live after unsubscribe", id)
		}
		sub.mu.Unlock()
	}
}

func TestSubscription_RequestHonoursContext(t *testing.T) {
	src := newFakeSource(checking)
	// never started: the queue fills and stays full
	svc := NewBalanceService(src, nil, nil, BalanceOptions{Workers: 1, QueueSize: 1})
	defer svc.Close()

	sub := svc.Subscribe(1)
	_, err := sub.Request(context.Background(), "checking", january)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = sub.Request(ctx, "checking", february)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBalanceService_Balances(t *testing.T) {
	src := newFakeSource(checking, card)
	src.add(ledger.NewTransfer("t1", ledger.NewDate(2024, time.January, 3), "pay card", money.FromMinor(300), "checking", "card"))
	src.add(expense("t2", ledger.NewDate(2024, time.January, 2), 1000, "card"))
	svc := newBalanceService(t, src, nil)

	results, err := svc.Balances(context.Background(), []string{"checking", "card", "ghost", "card"}, january)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NoError(t, results["checking"].Err)
	assert.Equal(t, "9700", results["checking"].Balance.String())
	require.NoError(t, results["card"].Err)
	assert.Equal(t, "700", results["card"].Balance.String())
	assert.ErrorIs(t, results["ghost"].Err, apperr.ErrNotFound)
}

func TestBalanceService_BalancesWithoutWorkers(t *testing.T) {
	svc := NewBalanceService(newFakeSource(checking), nil, nil, BalanceOptions{})

	results, err := svc.Balances(context.Background(), []string{"checking"}, january)
	require.NoError(t, err)
	assert.Equal(t, "10000", results["checking"].Balance.String())
}

func TestBalanceService_Lifecycle(t *testing.T) {
	svc := NewBalanceService(newFakeSource(checking), nil, nil, BalanceOptions{})
	require.NoError(t, svc.Start(context.Background()))
	assert.ErrorIs(t, svc.Start(context.Background()), ErrServiceStarted)

	sub := svc.Subscribe(1)
	svc.Close()
	svc.Close()

	_, ok := <-sub.Results()
	assert.False(t, ok)
	assert.ErrorIs(t, svc.Start(context.Background()), ErrServiceClosed)

	late := svc.Subscribe(1)
	_, err := late.Request(context.Background(), "checking", january)
	assert.ErrorIs(t, err, ErrSubscriptionClosed)
}

func TestBalanceService_ClosesWithStartContext(t *testing.T) {
	svc := NewBalanceService(newFakeSource(checking), nil, nil, BalanceOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.Start(ctx))

	sub := svc.Subscribe(1)
	cancel()

	select {
	case _, ok := <-sub.Results():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("service did not close when its context ended")
	}
}
