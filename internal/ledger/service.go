package ledger

import (
	"context"
	"strconv"
	"sync"

	"github.com/qaz17899/game-hub/internal/event"
	"github.com/qaz17899/game-hub/internal/logger"
	"github.com/qaz17899/game-hub/internal/storage"
)

// Service defines the interface for wallet balance operations
type Service interface {
	Balance(ctx context.Context) int64
	SetBalance(ctx context.Context, amount int64) int64
	Deduct(ctx context.Context, amount int64) bool
	Award(ctx context.Context, amount int64) int64
	Reset(ctx context.Context) int64
	CanAfford(ctx context.Context, amount int64) bool
	Degraded() bool
}

type service struct {
	store    storage.Store
	eventBus event.Bus
	starting int64

	mu       sync.Mutex
	balance  int64
	loaded   bool
	degraded bool
}

// NewService creates a new ledger service backed by the given store.
// The balance is loaded lazily on first access so a cold store does not
// delay startup.
func NewService(store storage.Store, eventBus event.Bus, startingBalance int64) Service {
	return &service{
		store:    store,
		eventBus: eventBus,
		starting: startingBalance,
	}
}

// Balance returns the current balance, initializing it to the starting
// value on first access.
func (s *service) Balance(ctx context.Context) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// SetBalance clamps amount to be non-negative, persists it, and publishes
// a balance changed event carrying the stored value.
func (s *service) SetBalance(ctx context.Context, amount int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(ctx)
	return s.set(ctx, amount, ReasonSet)
}

// Deduct subtracts amount when affordable. Negative amounts and amounts
// exceeding the balance are rejected without mutation or notification.
func (s *service) Deduct(ctx context.Context, amount int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.load(ctx)
	if amount < 0 || amount > balance {
		return false
	}

	s.set(ctx, balance-amount, ReasonWager)
	return true
}

// Award adds amount and returns the new balance
func (s *service) Award(ctx context.Context, amount int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance := s.load(ctx)
	return s.set(ctx, balance+amount, ReasonPayout)
}

// Reset restores the starting balance
func (s *service) Reset(ctx context.Context) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.load(ctx)
	return s.set(ctx, s.starting, ReasonReset)
}

// CanAfford reports whether the balance covers amount, with no side effect
// beyond the first-access initialization.
func (s *service) CanAfford(ctx context.Context, amount int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx) >= amount
}

// Degraded reports whether the store is currently failing and the ledger
// is operating from its in-memory value.
func (s *service) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// load returns the cached balance, reading from the store on first use.
// Caller must hold s.mu.
func (s *service) load(ctx context.Context) int64 {
	if s.loaded {
		return s.balance
	}

	value, ok, err := s.store.Read(ctx, storage.KeyWalletBalance)
	if err != nil {
		s.markDegraded(ctx, err)
		s.balance = s.starting
		s.loaded = true
		return s.balance
	}

	if !ok {
		// First run: initialize the wallet with the starting value
		s.loaded = true
		s.set(ctx, s.starting, ReasonInit)
		return s.balance
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed < 0 {
		logger.FromContext(ctx).Warn(LogMsgCorruptBalance, "value", value)
		parsed = s.starting
	}

	s.balance = parsed
	s.loaded = true
	return s.balance
}

// set clamps, stores, persists, and notifies. Caller must hold s.mu.
// Exactly one balance changed event is published per mutation.
func (s *service) set(ctx context.Context, amount int64, reason string) int64 {
	if amount < 0 {
		amount = 0
	}

	delta := amount - s.balance
	s.balance = amount
	s.loaded = true

	if err := s.store.Write(ctx, storage.KeyWalletBalance, strconv.FormatInt(amount, 10)); err != nil {
		s.markDegraded(ctx, err)
	} else if s.degraded {
		s.degraded = false
		logger.FromContext(ctx).Info(LogMsgStoreRecovered)
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, event.NewBalanceChangedEvent(amount, delta, reason)); err != nil {
			logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "error", err)
		}
	}

	return amount
}

// markDegraded flips to in-memory operation, logging only on transition.
// Caller must hold s.mu.
func (s *service) markDegraded(ctx context.Context, err error) {
	if !s.degraded {
		logger.FromContext(ctx).Error(LogMsgStoreDegraded, "error", err)
	}
	s.degraded = true
}
