package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hance08/bolso/internal/apperr"
	"github.com/hance08/bolso/internal/ledger"
	"github.com/hance08/bolso/internal/money"
	"github.com/hance08/bolso/internal/store"
	"golang.org/x/sync/errgroup"
)

var (
	ErrServiceClosed      = errors.New("balance service closed")
	ErrSubscriptionClosed = errors.New("balance subscription closed")
	ErrServiceStarted     = errors.New("balance service already started")
)

// BalanceSource is the read side of storage needed to compute a balance.
type BalanceSource interface {
	FindAccountByID(ctx context.Context, id string) (*ledger.Account, error)
	FindAllTransactions(ctx context.Context) ([]ledger.Transaction, error)
}

// ChangeSource announces that stored accounts or transactions changed.
type ChangeSource interface {
	Subscribe() (<-chan struct{}, func())
}

// Token identifies one balance request. Tokens grow monotonically per service.
type Token uint64

type BalanceResult struct {
	Token     Token
	AccountID string
	Period    ledger.Period
	Balance   money.Amount
	Err       error
}

type BalanceOptions struct {
	Workers   int
	QueueSize int
}

const (
	defaultBalanceWorkers   = 4
	defaultBalanceQueueSize = 64
)

// BalanceService computes balances off the caller's goroutine. Requests go
// through a bounded queue to a fixed pool of workers, and results come back on
// the requesting Subscription.
type BalanceService struct {
	source  BalanceSource
	changes ChangeSource
	logger  *log.Logger
	opts    BalanceOptions

	ctx    context.Context
	cancel context.CancelFunc
	jobs   chan balanceJob
	tokens atomic.Uint64
	wg     sync.WaitGroup

	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	started bool
	closed  bool
}

type balanceJob struct {
	ctx       context.Context
	sub       *Subscription
	token     Token
	accountID string
	period    ledger.Period
}

// NewBalanceService builds a stopped service. changes may be nil.
func NewBalanceService(source BalanceSource, changes ChangeSource, logger *log.Logger, opts BalanceOptions) *BalanceService {
	if opts.Workers <= 0 {
		opts.Workers = defaultBalanceWorkers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultBalanceQueueSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &BalanceService{
		source:  source,
		changes: changes,
		logger:  logger,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		jobs:    make(chan balanceJob, opts.QueueSize),
		subs:    make(map[*Subscription]struct{}),
	}
}

// Start launches the workers and, when a ChangeSource was given, the refresh
// loop. The service closes itself when ctx is done.
func (s *BalanceService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrServiceClosed
	}
	if s.started {
		return ErrServiceStarted
	}
	s.started = true

	for range s.opts.Workers {
		s.wg.Add(1)
		go s.worker()
	}

	if s.changes != nil {
		updates, unsubscribe := s.changes.Subscribe()
		s.wg.Add(1)
		go s.watch(updates, unsubscribe)
	}

	context.AfterFunc(ctx, s.Close)
	s.logger.Debug("balance service started", "workers", s.opts.Workers, "queue", s.opts.QueueSize)
	return nil
}

// Close stops the workers, ends every subscription and waits for in-flight
// jobs to return. It is safe to call more than once.
func (s *BalanceService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := make([]*Subscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	s.cancel()
	for _, sub := range subs {
		sub.Unsubscribe()
	}
	s.wg.Wait()
	s.logger.Debug("balance service stopped")
}

func (s *BalanceService) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && !s.closed
}

// Subscribe opens a result stream whose channel holds up to buffer results.
func (s *BalanceService) Subscribe(buffer int) *Subscription {
	if buffer < 0 {
		buffer = 0
	}
	sub := &Subscription{
		svc:     s,
		results: make(chan BalanceResult, buffer),
		done:    make(chan struct{}),
		wake:    make(chan struct{}, 1),
		latest:  make(map[string]pendingRequest),
		ready:   make(map[string]BalanceResult),
	}
	go sub.forward()

	s.mu.Lock()
	closed := s.closed
	if !closed {
		s.subs[sub] = struct{}{}
	}
	s.mu.Unlock()

	if closed {
		sub.Unsubscribe()
	}
	return sub
}

// Balance computes one balance in the caller's goroutine.
func (s *BalanceService) Balance(ctx context.Context, accountID string, period ledger.Period) (money.Amount, error) {
	return s.compute(ctx, accountID, period)
}

// Balances fans the accounts out to the workers and collects one result per
// account. Per-account failures are reported in the result's Err; the error
// return is reserved for cancellation and shutdown.
func (s *BalanceService) Balances(ctx context.Context, accountIDs []string, period ledger.Period) (map[string]BalanceResult, error) {
	out := make(map[string]BalanceResult, len(accountIDs))

	if !s.running() {
		for _, id := range accountIDs {
			bal, err := s.compute(ctx, id, period)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			out[id] = BalanceResult{AccountID: id, Period: period, Balance: bal, Err: err}
		}
		return out, nil
	}

	sub := s.Subscribe(len(accountIDs))
	defer sub.Unsubscribe()

	pending := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		if _, dup := pending[id]; dup {
			continue
		}
		if _, err := sub.Request(ctx, id, period); err != nil {
			return nil, err
		}
		pending[id] = struct{}{}
	}

	for len(pending) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r, ok := <-sub.Results():
			if !ok {
				return nil, ErrServiceClosed
			}
			if _, want := pending[r.AccountID]; !want || !sub.IsCurrent(r) {
				continue
			}
			delete(pending, r.AccountID)
			out[r.AccountID] = r
		}
	}

	return out, nil
}

func (s *BalanceService) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case job := <-s.jobs:
			s.run(job)
		}
	}
}

func (s *BalanceService) run(job balanceJob) {
	if job.ctx.Err() != nil {
		s.logger.Debug("balance request superseded", "account", job.accountID, "token", job.token)
		return
	}

	start := time.Now()
	bal, err := s.compute(job.ctx, job.accountID, job.period)
	if job.ctx.Err() != nil {
		return
	}
	s.logger.Debug("balance computed",
		"account", job.accountID,
		"token", job.token,
		"period", job.period,
		"elapsed", time.Since(start),
	)

	job.sub.deliver(BalanceResult{
		Token:     job.token,
		AccountID: job.accountID,
		Period:    job.period,
		Balance:   bal,
		Err:       err,
	})
}

// compute loads the account and the transaction set concurrently, then runs
// the balance engine over them.
func (s *BalanceService) compute(ctx context.Context, accountID string, period ledger.Period) (money.Amount, error) {
	var (
		account      *ledger.Account
		transactions []ledger.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		acc, err := s.source.FindAccountByID(gctx, accountID)
		if errors.Is(err, store.ErrRecordNotFound) || errors.Is(err, apperr.ErrNotFound) || (err == nil && acc == nil) {
			return apperr.NewNotFound("account", accountID)
		}
		if err != nil {
			return fmt.Errorf("failed to load account: %w", err)
		}
		account = acc
		return nil
	})
	g.Go(func() error {
		txs, err := s.source.FindAllTransactions(gctx)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		transactions = txs
		return nil
	})
	if err := g.Wait(); err != nil {
		return money.Zero, err
	}

	return ledger.ComputeBalance(*account, transactions, period), nil
}

// watch re-issues every subscription's latest requests when storage changes.
func (s *BalanceService) watch(updates <-chan struct{}, unsubscribe func()) {
	defer s.wg.Done()
	defer unsubscribe()

	for {
		select {
		case <-s.ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			s.refresh()
		}
	}
}

func (s *BalanceService) refresh() {
	s.mu.Lock()
	subs := make([]*Subscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		for accountID, period := range sub.requested() {
			if _, err := sub.Request(s.ctx, accountID, period); err != nil {
				s.logger.Debug("balance refresh skipped", "account", accountID, "err", err)
			}
		}
	}
}

func (s *BalanceService) forget(sub *Subscription) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()
}

// Subscription is one consumer's request/result channel pair.
//
// A newer Request for an account cancels the older one, whose result is then
// dropped. A result already handed to the channel when the newer Request was
// made can still arrive; IsCurrent tells the two apart.
//
// Workers never wait on the reader: each account keeps only its latest
// unread result, and a per-subscription goroutine feeds them to Results.
type Subscription struct {
	svc     *BalanceService
	results chan BalanceResult
	done    chan struct{}
	wake    chan struct{}
	once    sync.Once

	mu     sync.Mutex
	latest map[string]pendingRequest
	ready  map[string]BalanceResult
	order  []string
}

type pendingRequest struct {
	ctx    context.Context
	token  Token
	period ledger.Period
	cancel context.CancelFunc
}

// Request enqueues a balance computation for accountID as of the end of
// period. It blocks while the queue is full, until ctx is done.
func (sub *Subscription) Request(ctx context.Context, accountID string, period ledger.Period) (Token, error) {
	if sub.isClosed() {
		return 0, ErrSubscriptionClosed
	}

	svc := sub.svc
	token := Token(svc.tokens.Add(1))
	jobCtx, cancel := context.WithCancel(svc.ctx)

	sub.mu.Lock()
	// Unsubscribe closes done before it cancels latest under mu
	if sub.isClosed() {
		sub.mu.Unlock()
		cancel()
		return 0, ErrSubscriptionClosed
	}
	if prev, ok := sub.latest[accountID]; ok {
		prev.cancel()
	}
	sub.latest[accountID] = pendingRequest{ctx: jobCtx, token: token, period: period, cancel: cancel}
	sub.mu.Unlock()

	job := balanceJob{
		ctx:       jobCtx,
		sub:       sub,
		token:     token,
		accountID: accountID,
		period:    period,
	}

	select {
	case svc.jobs <- job:
		return token, nil
	case <-ctx.Done():
		cancel()
		return 0, ctx.Err()
	case <-svc.ctx.Done():
		cancel()
		return 0, ErrServiceClosed
	case <-sub.done:
		cancel()
		return 0, ErrSubscriptionClosed
	}
}

// Results is closed shortly after Unsubscribe or when the service closes.
func (sub *Subscription) Results() <-chan BalanceResult { return sub.results }

// IsCurrent reports whether r answers the latest request for its account.
func (sub *Subscription) IsCurrent(r BalanceResult) bool {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.current(r)
}

func (sub *Subscription) current(r BalanceResult) bool {
	req, ok := sub.latest[r.AccountID]
	return ok && req.token == r.Token
}

// Unsubscribe cancels outstanding requests and ends Results.
func (sub *Subscription) Unsubscribe() {
	sub.once.Do(func() {
		close(sub.done)

		sub.mu.Lock()
		for _, req := range sub.latest {
			req.cancel()
		}
		clear(sub.ready)
		sub.order = nil
		sub.mu.Unlock()

		sub.svc.forget(sub)
	})
}

func (sub *Subscription) isClosed() bool {
	select {
	case <-sub.done:
		return true
	default:
		return false
	}
}

func (sub *Subscription) requested() map[string]ledger.Period {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	out := make(map[string]ledger.Period, len(sub.latest))
	for id, req := range sub.latest {
		out[id] = req.period
	}
	return out
}

// deliver parks r in its account's slot, replacing an unread older result,
// and never blocks.
func (sub *Subscription) deliver(r BalanceResult) {
	sub.mu.Lock()
	if sub.isClosed() || !sub.current(r) {
		sub.mu.Unlock()
		return
	}
	if _, queued := sub.ready[r.AccountID]; !queued {
		sub.order = append(sub.order, r.AccountID)
	}
	sub.ready[r.AccountID] = r
	sub.mu.Unlock()

	select {
	case sub.wake <- struct{}{}:
	default:
	}
}

// next pops the oldest parked result that still answers a current request.
func (sub *Subscription) next() (BalanceResult, bool) {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	for len(sub.order) > 0 {
		id := sub.order[0]
		sub.order = sub.order[1:]
		r, ok := sub.ready[id]
		delete(sub.ready, id)
		if ok && sub.current(r) {
			return r, true
		}
	}
	return BalanceResult{}, false
}

// forward is the only sender on results and closes it once done is closed.
func (sub *Subscription) forward() {
	defer close(sub.results)

	var (
		r    BalanceResult
		have bool
	)
	for {
		if !have {
			r, have = sub.next()
		}
		if !have {
			select {
			case <-sub.wake:
				continue
			case <-sub.done:
				return
			}
		}

		select {
		case sub.results <- r:
			have = false
		case <-sub.wake:
			// a newer result for the same account replaces the one in hand
			if !sub.IsCurrent(r) {
				have = false
			}
		case <-sub.done:
			return
		}
	}
}
