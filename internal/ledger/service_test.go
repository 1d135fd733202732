package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaz17899/game-hub/internal/domain"
	"github.com/qaz17899/game-hub/internal/event"
	"github.com/qaz17899/game-hub/internal/storage"
)

const testStartingBalance int64 = 10000

// failingStore wraps a MemoryStore and fails on demand
type failingStore struct {
	inner      *storage.MemoryStore
	failReads  bool
	failWrites bool
}

func (f *failingStore) Read(ctx context.Context, key string) (string, bool, error) {
	if f.failReads {
		return "", false, errors.New("store unavailable")
	}
	return f.inner.Read(ctx, key)
}

func (f *failingStore) Write(ctx context.Context, key, value string) error {
	if f.failWrites {
		return errors.New("store unavailable")
	}
	return f.inner.Write(ctx, key, value)
}

func (f *failingStore) Ping(ctx context.Context) error { return nil }
func (f *failingStore) Close()                         {}

// collectEvents subscribes to balance changed events and records payloads
func collectEvents(bus event.Bus) *[]domain.BalanceChangedPayload {
	events := &[]domain.BalanceChangedPayload{}
	bus.Subscribe(event.BalanceChanged, func(ctx context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[domain.BalanceChangedPayload](evt.Payload)
		if err != nil {
			return err
		}
		*events = append(*events, payload)
		return nil
	})
	return events
}

func newTestService() (Service, *storage.MemoryStore, event.Bus) {
	store := storage.NewMemoryStore()
	bus := event.NewMemoryBus()
	return NewService(store, bus, testStartingBalance), store, bus
}

func TestBalance_InitializesOnFirstAccess(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	assert.Equal(t, testStartingBalance, svc.Balance(ctx))

	// Initialization writes through to the store
	value, ok, err := store.Read(ctx, storage.KeyWalletBalance)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "10000", value)
}

func TestBalance_LoadsPersistedValue(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, storage.KeyWalletBalance, "4321"))

	svc := NewService(store, event.NewMemoryBus(), testStartingBalance)
	assert.Equal(t, int64(4321), svc.Balance(ctx))
}

func TestBalance_CorruptValueFallsBackToStarting(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, storage.KeyWalletBalance, "not-a-number"))

	svc := NewService(store, event.NewMemoryBus(), testStartingBalance)
	assert.Equal(t, testStartingBalance, svc.Balance(ctx))
}

func TestSetBalance_ClampsNegativeToZero(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	assert.Equal(t, int64(0), svc.SetBalance(ctx, -500))
	assert.Equal(t, int64(0), svc.Balance(ctx))
}

func TestDeduct_RoundTripRestoresBalance(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	before := svc.Balance(ctx)
	require.True(t, svc.Deduct(ctx, 250))
	svc.Award(ctx, 250)
	assert.Equal(t, before, svc.Balance(ctx))
}

func TestDeduct_InsufficientFundsLeavesBalanceUnchanged(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	svc.SetBalance(ctx, 500)
	assert.False(t, svc.Deduct(ctx, 1000))
	assert.Equal(t, int64(500), svc.Balance(ctx))
}

func TestDeduct_NegativeAmountRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	before := svc.Balance(ctx)
	assert.False(t, svc.Deduct(ctx, -1))
	assert.Equal(t, before, svc.Balance(ctx))
}

func TestDeduct_ExactBalanceAllowed(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	svc.SetBalance(ctx, 100)
	assert.True(t, svc.Deduct(ctx, 100))
	assert.Equal(t, int64(0), svc.Balance(ctx))
}

func TestCanAfford_NoSideEffect(t *testing.T) {
	svc, _, bus := newTestService()
	ctx := context.Background()

	svc.Balance(ctx) // trigger initialization first
	events := collectEvents(bus)

	assert.True(t, svc.CanAfford(ctx, testStartingBalance))
	assert.False(t, svc.CanAfford(ctx, testStartingBalance+1))
	assert.Empty(t, *events)
}

func TestReset_RestoresStartingBalance(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	svc.SetBalance(ctx, 42)
	assert.Equal(t, testStartingBalance, svc.Reset(ctx))
}

func TestMutations_PublishExactlyOneEventEach(t *testing.T) {
	svc, _, bus := newTestService()
	ctx := context.Background()

	svc.Balance(ctx) // initialization event happens here
	events := collectEvents(bus)

	require.True(t, svc.Deduct(ctx, 100))
	svc.Award(ctx, 30)

	require.Len(t, *events, 2)
	assert.Equal(t, int64(9900), (*events)[0].Balance)
	assert.Equal(t, int64(-100), (*events)[0].Delta)
	assert.Equal(t, ReasonWager, (*events)[0].Reason)
	assert.Equal(t, int64(9930), (*events)[1].Balance)
	assert.Equal(t, int64(30), (*events)[1].Delta)
	assert.Equal(t, ReasonPayout, (*events)[1].Reason)
}

func TestDegraded_WriteFailureSwitchesToMemory(t *testing.T) {
	store := &failingStore{inner: storage.NewMemoryStore()}
	svc := NewService(store, event.NewMemoryBus(), testStartingBalance)
	ctx := context.Background()

	svc.Balance(ctx)
	assert.False(t, svc.Degraded())

	store.failWrites = true
	require.True(t, svc.Deduct(ctx, 100))
	assert.True(t, svc.Degraded())

	// Operations keep working from the in-memory value
	assert.Equal(t, testStartingBalance-100, svc.Balance(ctx))
	svc.Award(ctx, 50)
	assert.Equal(t, testStartingBalance-50, svc.Balance(ctx))
}

func TestDegraded_RecoversOnSuccessfulWrite(t *testing.T) {
	store := &failingStore{inner: storage.NewMemoryStore()}
	svc := NewService(store, event.NewMemoryBus(), testStartingBalance)
	ctx := context.Background()

	store.failWrites = true
	svc.SetBalance(ctx, 5000)
	require.True(t, svc.Degraded())

	store.failWrites = false
	svc.Award(ctx, 1)
	assert.False(t, svc.Degraded())

	// The recovered write persisted the current value
	value, ok, err := store.inner.Read(ctx, storage.KeyWalletBalance)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "5001", value)
}

func TestDegraded_ReadFailureUsesStartingValue(t *testing.T) {
	store := &failingStore{inner: storage.NewMemoryStore(), failReads: true}
	svc := NewService(store, event.NewMemoryBus(), testStartingBalance)
	ctx := context.Background()

	assert.Equal(t, testStartingBalance, svc.Balance(ctx))
	assert.True(t, svc.Degraded())
}
