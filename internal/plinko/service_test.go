package plinko

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaz17899/game-hub/internal/board"
	"github.com/qaz17899/game-hub/internal/config"
	"github.com/qaz17899/game-hub/internal/domain"
	"github.com/qaz17899/game-hub/internal/event"
	"github.com/qaz17899/game-hub/internal/ledger"
	"github.com/qaz17899/game-hub/internal/storage"
)

const waitFor = 2 * time.Second
const pollEvery = 5 * time.Millisecond

func testConfig() config.PlinkoConfig {
	return config.PlinkoConfig{
		RowCount:         config.DefaultRowCount,
		BasePegCount:     config.DefaultBasePegCount,
		PegGap:           config.DefaultPegGap,
		RowGap:           config.DefaultRowGap,
		StartY:           config.DefaultStartY,
		BoardWidth:       config.DefaultBoardWidth,
		BoardHeight:      config.DefaultBoardHeight,
		SpawnVariance:    config.DefaultSpawnVariance,
		Multipliers:      testMultipliers,
		MinWager:         config.DefaultMinWager,
		MaxWager:         config.DefaultMaxWager,
		MaxBallsInFlight: config.DefaultMaxBallsInFlight,
		SettleCooldown:   config.DefaultSettleCooldown,
		MaxFlightTime:    config.DefaultMaxFlightTime,
		TickInterval:     config.DefaultTickInterval,
	}
}

// eventRecorder captures round events published on the bus
type eventRecorder struct {
	mu      sync.Mutex
	settled []domain.RoundSettledPayload
	voided  []domain.RoundVoidedPayload
}

func recordEvents(bus event.Bus) *eventRecorder {
	rec := &eventRecorder{}
	bus.Subscribe(event.RoundSettled, func(ctx context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[domain.RoundSettledPayload](evt.Payload)
		if err != nil {
			return err
		}
		rec.mu.Lock()
		rec.settled = append(rec.settled, payload)
		rec.mu.Unlock()
		return nil
	})
	bus.Subscribe(event.RoundVoided, func(ctx context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[domain.RoundVoidedPayload](evt.Payload)
		if err != nil {
			return err
		}
		rec.mu.Lock()
		rec.voided = append(rec.voided, payload)
		rec.mu.Unlock()
		return nil
	})
	return rec
}

func (r *eventRecorder) settledCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.settled)
}

func (r *eventRecorder) lastSettled() domain.RoundSettledPayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settled[len(r.settled)-1]
}

func (r *eventRecorder) voidedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.voided)
}

type testFixture struct {
	svc        Service
	ledger     ledger.Service
	integrator *fakeIntegrator
	clock      *clockwork.FakeClock
	layout     *board.Layout
	events     *eventRecorder
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	cfg := testConfig()
	layout := testLayout(t, cfg.Multipliers)
	bus := event.NewMemoryBus()
	events := recordEvents(bus)
	ledgerSvc := ledger.NewService(storage.NewMemoryStore(), bus, 10000)
	integrator := newFakeIntegrator()
	clock := clockwork.NewFakeClock()

	svc := NewService(cfg, layout, ledgerSvc, integrator, bus,
		WithClock(clock),
		WithRNG(func() float64 { return 0.5 }), // spawn dead center
	)
	t.Cleanup(func() {
		_ = integrator.Stop(context.Background())
	})

	return &testFixture{
		svc:        svc,
		ledger:     ledgerSvc,
		integrator: integrator,
		clock:      clock,
		layout:     layout,
		events:     events,
	}
}

// bucketX returns an x position inside the given bucket
func (f *testFixture) bucketX(i int) float64 {
	b := f.layout.Bucket(i)
	return (b.Left + b.Right) / 2
}

func TestDrop_DebitsWagerAndSpawnsBall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := f.svc.Drop(ctx, 100)
	require.NoError(t, err)

	assert.Equal(t, int64(100), receipt.Wager)
	assert.Equal(t, int64(9900), receipt.Balance)
	assert.InDelta(t, f.layout.Width()/2, receipt.SpawnX, config.DefaultSpawnVariance)
	assert.Equal(t, 1, f.integrator.spawnCount())
	assert.Equal(t, 1, f.svc.InFlightCount())
}

func TestDrop_ValidationRejections(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		wager   int64
		wantErr error
	}{
		{"below minimum", 10000, config.DefaultMinWager - 1, domain.ErrWagerBelowMinimum},
		{"above maximum", 10000, config.DefaultMaxWager + 1, domain.ErrWagerAboveMaximum},
		{"insufficient funds", 500, 1000, domain.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			f.ledger.SetBalance(ctx, tt.balance)

			_, err := f.svc.Drop(ctx, tt.wager)
			assert.ErrorIs(t, err, tt.wantErr)

			// No mutation, no ball
			assert.Equal(t, tt.balance, f.ledger.Balance(ctx))
			assert.Equal(t, 0, f.integrator.spawnCount())
			assert.Equal(t, 0, f.svc.InFlightCount())
		})
	}
}

func TestDrop_SpawnFailureRefundsStake(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.integrator.failSpawn = true

	_, err := f.svc.Drop(ctx, 100)
	require.Error(t, err)

	assert.Equal(t, int64(10000), f.ledger.Balance(ctx), "no partial debit on spawn failure")
	assert.Equal(t, 0, f.svc.InFlightCount())
}

func TestSettle_JackpotScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := f.svc.Drop(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, int64(9900), receipt.Balance)

	// Land in the leftmost bucket (multiplier 10)
	f.integrator.land(1, f.bucketX(0))

	require.Eventually(t, func() bool { return f.events.settledCount() == 1 }, waitFor, pollEvery)

	result := f.events.lastSettled()
	assert.Equal(t, 0, result.Bucket)
	assert.Equal(t, 10.0, result.Multiplier)
	assert.Equal(t, int64(1000), result.WinAmount)
	assert.Equal(t, int64(900), result.Profit)
	assert.Equal(t, int64(10900), result.Balance)
	assert.Equal(t, int64(10900), f.ledger.Balance(ctx))
}

func TestSettle_LosingBucketScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Drop(ctx, 100)
	require.NoError(t, err)

	// Bucket 5 pays 0.3: win 30, net change -70
	f.integrator.land(1, f.bucketX(5))

	require.Eventually(t, func() bool { return f.events.settledCount() == 1 }, waitFor, pollEvery)

	result := f.events.lastSettled()
	assert.Equal(t, 5, result.Bucket)
	assert.Equal(t, int64(30), result.WinAmount)
	assert.Equal(t, int64(-70), result.Profit)
	assert.Equal(t, int64(9930), f.ledger.Balance(ctx))
}

func TestSettle_IdempotentUnderDuplicateSensorEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Drop(ctx, 100)
	require.NoError(t, err)

	// The integrator re-reports sensor contact every tick; only the first
	// qualifying event may settle
	for i := 0; i < 5; i++ {
		f.integrator.land(1, f.bucketX(0))
	}

	require.Eventually(t, func() bool { return f.events.settledCount() >= 1 }, waitFor, pollEvery)

	// Give duplicate events a chance to be (wrongly) processed
	assert.Never(t, func() bool { return f.events.settledCount() > 1 }, 100*time.Millisecond, pollEvery)
	assert.Equal(t, int64(10900), f.ledger.Balance(ctx), "payout credited exactly once")
}

func TestSettle_PegCollisionsHaveNoEffect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Drop(ctx, 100)
	require.NoError(t, err)

	f.integrator.pegHit(1, 300)
	f.integrator.pegHit(1, 320)

	assert.Never(t, func() bool { return f.events.settledCount() > 0 }, 100*time.Millisecond, pollEvery)
	assert.Equal(t, int64(9900), f.ledger.Balance(ctx))
}

func TestConcurrencyCap_SixthDropRejectedUntilRetire(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < config.DefaultMaxBallsInFlight; i++ {
		_, err := f.svc.Drop(ctx, 100)
		require.NoError(t, err)
	}

	_, err := f.svc.Drop(ctx, 100)
	assert.ErrorIs(t, err, domain.ErrTooManyBallsInFlight)

	// Settle one ball and let its cooldown elapse
	f.integrator.land(1, f.bucketX(6))
	require.Eventually(t, func() bool { return f.events.settledCount() == 1 }, waitFor, pollEvery)

	f.clock.Advance(config.DefaultSettleCooldown)
	require.Eventually(t, func() bool {
		return f.svc.InFlightCount() == config.DefaultMaxBallsInFlight-1
	}, waitFor, pollEvery)

	_, err = f.svc.Drop(ctx, 100)
	assert.NoError(t, err, "slot freed after retire")
}

func TestRetire_RemovesBodyFromIntegrator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Drop(ctx, 100)
	require.NoError(t, err)

	f.integrator.land(1, f.bucketX(6))
	require.Eventually(t, func() bool { return f.events.settledCount() == 1 }, waitFor, pollEvery)

	f.clock.Advance(config.DefaultSettleCooldown)
	require.Eventually(t, func() bool { return f.integrator.removedCount() == 1 }, waitFor, pollEvery)
	assert.Equal(t, 0, f.svc.InFlightCount())
}

func TestWatchdog_VoidsStuckBallWithRefund(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Drop(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, int64(9900), f.ledger.Balance(ctx))

	f.clock.Advance(config.DefaultMaxFlightTime)

	require.Eventually(t, func() bool { return f.events.voidedCount() == 1 }, waitFor, pollEvery)
	assert.Equal(t, int64(10000), f.ledger.Balance(ctx), "net balance change of a voided round is zero")
	assert.Equal(t, 0, f.svc.InFlightCount())
	assert.Equal(t, 1, f.integrator.removedCount())
}

func TestWatchdog_DoesNotFireForSettledBall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Drop(ctx, 100)
	require.NoError(t, err)

	f.integrator.land(1, f.bucketX(6))
	require.Eventually(t, func() bool { return f.events.settledCount() == 1 }, waitFor, pollEvery)

	balance := f.ledger.Balance(ctx)
	f.clock.Advance(config.DefaultMaxFlightTime)

	assert.Never(t, func() bool { return f.events.voidedCount() > 0 }, 100*time.Millisecond, pollEvery)
	assert.Equal(t, balance, f.ledger.Balance(ctx), "no spurious refund after settlement")
}

func TestShutdown_RejectsNewDropsAndDrains(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Drop(ctx, 100)
	require.NoError(t, err)

	shutdownDone := make(chan error, 1)
	go func() {
		sctx, cancel := context.WithTimeout(context.Background(), waitFor)
		defer cancel()
		shutdownDone <- f.svc.Shutdown(sctx)
	}()

	// Admissions stop immediately
	require.Eventually(t, func() bool {
		_, err := f.svc.Drop(ctx, 100)
		return err == domain.ErrShuttingDown
	}, waitFor, pollEvery)

	// Land the in-flight ball and let the cooldown elapse so it retires
	f.integrator.land(1, f.bucketX(6))
	require.Eventually(t, func() bool { return f.events.settledCount() == 1 }, waitFor, pollEvery)
	f.clock.Advance(config.DefaultSettleCooldown)

	require.NoError(t, <-shutdownDone)
	assert.Equal(t, 0, f.svc.InFlightCount())
}

func TestShutdown_TimesOutWithBallsStillInFlight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Drop(ctx, 100)
	require.NoError(t, err)

	sctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.svc.Shutdown(sctx), context.DeadlineExceeded)
}
