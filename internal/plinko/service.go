package plinko

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/qaz17899/game-hub/internal/board"
	"github.com/qaz17899/game-hub/internal/config"
	"github.com/qaz17899/game-hub/internal/domain"
	"github.com/qaz17899/game-hub/internal/event"
	"github.com/qaz17899/game-hub/internal/ledger"
	"github.com/qaz17899/game-hub/internal/logger"
	"github.com/qaz17899/game-hub/internal/physics"
	"github.com/qaz17899/game-hub/internal/utils"
)

// Service defines the interface for plinko round operations
type Service interface {
	Drop(ctx context.Context, wager int64) (*domain.DropReceipt, error)
	InFlight() []domain.BallSummary
	InFlightCount() int
	Cap() int
	MinWager() int64
	MaxWager() int64
	Layout() *board.Layout
	Shutdown(ctx context.Context) error
}

// ball is one in-flight wager. The landed flag is the idempotency guard:
// it transitions false to true exactly once no matter how many sensor
// contacts the integrator reports.
type ball struct {
	id        uuid.UUID
	bodyID    physics.BodyID
	wager     int64
	spawnX    float64
	landed    bool
	state     domain.BallState
	droppedAt time.Time
	watchdog  clockwork.Timer
}

type service struct {
	cfg        config.PlinkoConfig
	layout     *board.Layout
	resolver   *Resolver
	ledger     ledger.Service
	integrator physics.Integrator
	publisher  event.Bus
	clock      clockwork.Clock
	rng        func() float64 // spawn offset randomness, injectable for testing

	mu           sync.Mutex
	balls        map[uuid.UUID]*ball
	byBody       map[physics.BodyID]*ball
	shuttingDown bool

	consumerDone chan struct{}
}

// Option configures the service
type Option func(*service)

// WithClock injects a clock for cooldown and watchdog timers
func WithClock(clock clockwork.Clock) Option {
	return func(s *service) { s.clock = clock }
}

// WithRNG injects the spawn offset RNG
func WithRNG(rng func() float64) Option {
	return func(s *service) { s.rng = rng }
}

// NewService creates the round controller and starts its collision consumer.
// A single goroutine drains the integrator's collision stream, so settlements
// happen sequentially in the order the integrator reported them and each
// settlement is complete before the next drop's validation observes the
// balance.
func NewService(
	cfg config.PlinkoConfig,
	layout *board.Layout,
	ledgerSvc ledger.Service,
	integrator physics.Integrator,
	publisher event.Bus,
	opts ...Option,
) Service {
	s := &service{
		cfg:          cfg,
		layout:       layout,
		resolver:     NewResolver(layout),
		ledger:       ledgerSvc,
		integrator:   integrator,
		publisher:    publisher,
		clock:        clockwork.NewRealClock(),
		rng:          utils.RandomFloat,
		balls:        make(map[uuid.UUID]*ball),
		byBody:       make(map[physics.BodyID]*ball),
		consumerDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if layout.MultiplierMismatch() {
		logger.Warn(LogMsgMultiplierMismatch,
			"multipliers", layout.MultiplierCount(),
			"buckets", layout.BucketCount())
	}

	go s.consume()

	return s
}

// Drop validates a wager, reserves the stake, and launches a ball.
// The mutex spans validation through registration so a later drop's
// validation observes the balance after every earlier settlement.
func (s *service) Drop(ctx context.Context, wager int64) (*domain.DropReceipt, error) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shuttingDown {
		return nil, domain.ErrShuttingDown
	}
	if wager < s.cfg.MinWager {
		return nil, domain.ErrWagerBelowMinimum
	}
	if wager > s.cfg.MaxWager {
		return nil, domain.ErrWagerAboveMaximum
	}
	if len(s.balls) >= s.cfg.MaxBallsInFlight {
		return nil, domain.ErrTooManyBallsInFlight
	}

	// Reserve the stake before any outcome is known
	if !s.ledger.Deduct(ctx, wager) {
		return nil, domain.ErrInsufficientFunds
	}
	balance := s.ledger.Balance(ctx)

	spawnX := s.layout.Width()/2 + (s.rng()*2-1)*s.cfg.SpawnVariance

	bodyID, err := s.integrator.SpawnBody(
		physics.Vec{X: spawnX, Y: 0},
		physics.Shape{Radius: physics.DefaultBallRadius},
		physics.Material{},
		physics.LabelBall,
	)
	if err != nil {
		// No partial debit: the reservation is undone before surfacing
		s.ledger.Award(ctx, wager)
		log.Error(LogMsgSpawnFailed, "error", err)
		return nil, err
	}

	b := &ball{
		id:        uuid.New(),
		bodyID:    bodyID,
		wager:     wager,
		spawnX:    spawnX,
		state:     domain.BallStateInFlight,
		droppedAt: s.clock.Now(),
	}
	s.balls[b.id] = b
	s.byBody[bodyID] = b

	// Defensive watchdog: a ball that never reaches the sensor is voided
	// and its stake refunded
	id := b.id
	b.watchdog = s.clock.AfterFunc(s.cfg.MaxFlightTime, func() {
		s.void(id, VoidReasonFlightTimeout)
	})

	if err := s.publisher.Publish(ctx, event.NewBallDroppedEvent(b.id, wager, spawnX, balance)); err != nil {
		log.Warn(LogMsgEventPublishFailed, "error", err)
	}

	log.Info(LogMsgBallDropped,
		"ball_id", b.id,
		"wager", wager,
		"spawn_x", spawnX,
		"in_flight", len(s.balls))

	return &domain.DropReceipt{
		BallID:    b.id,
		Wager:     wager,
		SpawnX:    spawnX,
		Balance:   balance,
		DroppedAt: b.droppedAt,
	}, nil
}

// InFlight returns summaries of active balls, oldest first
func (s *service) InFlight() []domain.BallSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]domain.BallSummary, 0, len(s.balls))
	for _, b := range s.balls {
		summaries = append(summaries, domain.BallSummary{
			BallID:    b.id,
			Wager:     b.wager,
			State:     b.state,
			DroppedAt: b.droppedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].DroppedAt.Before(summaries[j].DroppedAt)
	})
	return summaries
}

// InFlightCount returns the number of active balls
func (s *service) InFlightCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.balls)
}

// Cap returns the concurrency cap on simultaneous balls
func (s *service) Cap() int {
	return s.cfg.MaxBallsInFlight
}

// MinWager returns the smallest accepted wager
func (s *service) MinWager() int64 {
	return s.cfg.MinWager
}

// MaxWager returns the largest accepted wager
func (s *service) MaxWager() int64 {
	return s.cfg.MaxWager
}

// Layout returns the board geometry
func (s *service) Layout() *board.Layout {
	return s.layout
}

// consume drains the collision stream until the integrator closes it
func (s *service) consume() {
	defer close(s.consumerDone)
	logger.Info(LogMsgConsumerStarted)

	for collision := range s.integrator.Collisions() {
		s.handleCollision(collision)
	}

	logger.Info(LogMsgConsumerStopped)
}

// handleCollision dispatches on the body labels. Only ball to bucket sensor
// contact has monetary effect; peg and wall contact is visual-only.
func (s *service) handleCollision(collision physics.Collision) {
	ballContact, other, ok := ballSide(collision)
	if !ok {
		return
	}

	switch other.Label {
	case physics.LabelBucketSensor:
		s.settle(ballContact)
	case physics.LabelPeg, physics.LabelWall, physics.LabelBall:
		// no effect on the round
	}
}

// ballSide extracts the ball contact from a collision
func ballSide(collision physics.Collision) (ballContact, other physics.Contact, ok bool) {
	switch {
	case collision.A.Label == physics.LabelBall:
		return collision.A, collision.B, true
	case collision.B.Label == physics.LabelBall:
		return collision.B, collision.A, true
	default:
		return physics.Contact{}, physics.Contact{}, false
	}
}

// settle resolves a landing and credits the payout. The landed flag gates
// everything: duplicate sensor contacts for the same ball are dropped here.
func (s *service) settle(contact physics.Contact) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	s.mu.Lock()

	b, found := s.byBody[contact.Body]
	if !found {
		s.mu.Unlock()
		log.Debug(LogMsgCollisionUnknownBall, "body_id", contact.Body)
		return
	}
	if b.landed {
		s.mu.Unlock()
		return
	}
	b.landed = true
	b.state = domain.BallStateSettling
	if b.watchdog != nil {
		b.watchdog.Stop()
	}

	bucket, multiplier := s.resolver.Resolve(contact.Pos.X)
	win := WinAmount(b.wager, multiplier)
	balance := s.ledger.Award(ctx, win)

	mult, _ := multiplier.Float64()
	result := domain.RoundResult{
		BallID:     b.id,
		Wager:      b.wager,
		Bucket:     bucket,
		Multiplier: mult,
		WinAmount:  win,
		Profit:     win - b.wager,
		Balance:    balance,
		SettledAt:  s.clock.Now(),
	}

	// Retire after the cooldown so the client can animate the settle
	id := b.id
	s.clock.AfterFunc(s.cfg.SettleCooldown, func() {
		s.retire(id)
	})

	s.mu.Unlock()

	if err := s.publisher.Publish(ctx, event.NewRoundSettledEvent(result)); err != nil {
		log.Warn(LogMsgEventPublishFailed, "error", err)
	}

	log.Info(LogMsgRoundSettled,
		"ball_id", result.BallID,
		"bucket", result.Bucket,
		"multiplier", result.Multiplier,
		"win", result.WinAmount,
		"profit", result.Profit)
}

// retire removes a settled ball from the in-flight set and the world
func (s *service) retire(id uuid.UUID) {
	s.mu.Lock()
	b, found := s.balls[id]
	if !found {
		s.mu.Unlock()
		return
	}
	delete(s.balls, id)
	delete(s.byBody, b.bodyID)
	s.mu.Unlock()

	s.integrator.RemoveBody(b.bodyID)
	logger.Debug(LogMsgBallRetired, "ball_id", id)
}

// void refunds a stuck ball's stake and removes it. Gated by the same
// landed flag as settle, so a ball that lands just as its watchdog fires is
// settled or voided, never both.
func (s *service) void(id uuid.UUID, reason string) {
	ctx := context.Background()

	s.mu.Lock()
	b, found := s.balls[id]
	if !found || b.landed {
		s.mu.Unlock()
		return
	}
	b.landed = true

	balance := s.ledger.Award(ctx, b.wager)

	delete(s.balls, id)
	delete(s.byBody, b.bodyID)
	s.mu.Unlock()

	s.integrator.RemoveBody(b.bodyID)

	if err := s.publisher.Publish(ctx, event.NewRoundVoidedEvent(b.id, b.wager, balance, reason)); err != nil {
		logger.Warn(LogMsgEventPublishFailed, "error", err)
	}

	logger.Warn(LogMsgRoundVoided, "ball_id", id, "wager", b.wager, "reason", reason)
}

// Shutdown stops admitting drops and waits for in-flight balls to settle
// and retire, bounded by ctx. The collision consumer exits when the
// integrator closes its stream during its own shutdown.
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shuttingDown = true
	s.mu.Unlock()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.InFlightCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
