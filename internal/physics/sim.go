package physics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/qaz17899/game-hub/internal/board"
	"github.com/qaz17899/game-hub/internal/logger"
	"github.com/qaz17899/game-hub/internal/utils"
)

// body is a dynamic ball in the simulated world
type body struct {
	id      BodyID
	pos     Vec
	vel     Vec
	radius  float64
	nextRow int // index of the next peg row this ball will cross
}

// Sim is a simulated rigid-body integrator. It is not a faithful physics
// engine: a ball falls under gravity, deflects half a peg gap left or right
// at each peg row, clamps to the walls, and reports bucket sensor contact
// every tick once at or below the sensor line. That contact re-reporting is
// deliberate: the round controller's landed flag must tolerate overlapping
// collision events for the same ball.
type Sim struct {
	layout   *board.Layout
	interval time.Duration
	clock    clockwork.Clock
	rng      func() float64 // uniform [0,1), injectable for determinism

	collisions chan Collision

	mu     sync.Mutex
	bodies map[BodyID]*body
	nextID BodyID

	shutdown chan struct{}
	wg       sync.WaitGroup
	started  bool
}

// Option configures a Sim
type Option func(*Sim)

// WithClock injects a clock (fake clocks in tests)
func WithClock(clock clockwork.Clock) Option {
	return func(s *Sim) { s.clock = clock }
}

// WithRNG injects the deflection RNG
func WithRNG(rng func() float64) Option {
	return func(s *Sim) { s.rng = rng }
}

// NewSim creates a simulated integrator for the given board
func NewSim(layout *board.Layout, tickInterval time.Duration, opts ...Option) *Sim {
	s := &Sim{
		layout:     layout,
		interval:   tickInterval,
		clock:      clockwork.NewRealClock(),
		rng:        utils.RandomFloat,
		collisions: make(chan Collision, CollisionBufferSize),
		bodies:     make(map[BodyID]*body),
		shutdown:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SpawnBody introduces a new ball into the world. The simulated world only
// accepts dynamic balls; pegs, walls, and the sensor exist implicitly in the
// board geometry.
func (s *Sim) SpawnBody(pos Vec, shape Shape, _ Material, label Label) (BodyID, error) {
	if label != LabelBall {
		return 0, fmt.Errorf("simulated world only spawns balls, got %s", label)
	}

	radius := shape.Radius
	if radius <= 0 {
		radius = DefaultBallRadius
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.bodies[id] = &body{
		id:     id,
		pos:    pos,
		radius: radius,
	}
	return id, nil
}

// RemoveBody removes a ball from the world. Unknown IDs are ignored.
func (s *Sim) RemoveBody(id BodyID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bodies, id)
}

// Collisions returns the stream of collision events in detection order
func (s *Sim) Collisions() <-chan Collision {
	return s.collisions
}

// Start begins the tick loop
func (s *Sim) Start() {
	if s.started {
		return
	}
	s.started = true
	s.wg.Add(1)
	go s.run()
	logger.Info(LogMsgSimStarted, "tick_interval", s.interval)
}

// Stop halts the tick loop and closes the collision stream
func (s *Sim) Stop(ctx context.Context) error {
	close(s.shutdown)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		close(s.collisions)
		logger.Info(LogMsgSimStopped)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sim) run() {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			s.step()
		case <-s.shutdown:
			return
		}
	}
}

// step advances every ball by one tick and reports collisions.
// Bodies are iterated in ID order so a seeded RNG yields an identical
// collision sequence across runs.
func (s *Sim) step() {
	dt := s.interval.Seconds()

	s.mu.Lock()
	ids := make([]BodyID, 0, len(s.bodies))
	for id := range s.bodies {
		ids = append(ids, id)
	}
	// insertion sort; the in-flight cap keeps this tiny
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}

	var events []Collision
	for _, id := range ids {
		b := s.bodies[id]
		events = append(events, s.advance(b, dt)...)
	}
	s.mu.Unlock()

	for _, evt := range events {
		s.emit(evt)
	}
}

// advance moves one ball through dt seconds. Caller holds s.mu.
func (s *Sim) advance(b *body, dt float64) []Collision {
	var events []Collision

	b.vel.Y += Gravity * dt
	if b.vel.Y > TerminalVelocity {
		b.vel.Y = TerminalVelocity
	}
	b.pos.Y += b.vel.Y * dt
	b.pos.X += b.vel.X * dt
	// Horizontal motion decays quickly after a deflection
	b.vel.X *= 0.8

	// Peg row crossings deflect the ball half a gap left or right
	for b.nextRow < s.layout.RowCount() && b.pos.Y >= s.layout.RowY(b.nextRow) {
		row := s.layout.Pegs()[b.nextRow]
		gap := s.layout.Width()
		if len(row) > 1 {
			gap = row[1].X - row[0].X
		}

		direction := 1.0
		if s.rng() < 0.5 {
			direction = -1.0
		}
		b.pos.X += direction * gap / 2

		events = append(events, Collision{
			A: Contact{Body: b.id, Label: LabelBall, Pos: b.pos},
			B: Contact{Label: LabelPeg, Pos: Vec{X: b.pos.X, Y: s.layout.RowY(b.nextRow)}},
		})
		b.nextRow++
	}

	// Wall clamp
	if b.pos.X < b.radius {
		b.pos.X = b.radius
		events = append(events, Collision{
			A: Contact{Body: b.id, Label: LabelBall, Pos: b.pos},
			B: Contact{Label: LabelWall, Pos: Vec{X: 0, Y: b.pos.Y}},
		})
	} else if b.pos.X > s.layout.Width()-b.radius {
		b.pos.X = s.layout.Width() - b.radius
		events = append(events, Collision{
			A: Contact{Body: b.id, Label: LabelBall, Pos: b.pos},
			B: Contact{Label: LabelWall, Pos: Vec{X: s.layout.Width(), Y: b.pos.Y}},
		})
	}

	// At or below the sensor the ball stops falling and re-reports contact
	// every tick until it is removed from the world
	if b.pos.Y >= s.layout.SensorY() {
		b.pos.Y = s.layout.SensorY()
		b.vel = Vec{}
		events = append(events, Collision{
			A: Contact{Body: b.id, Label: LabelBall, Pos: b.pos},
			B: Contact{Label: LabelBucketSensor, Pos: Vec{X: b.pos.X, Y: s.layout.SensorY()}},
		})
	}

	return events
}

// emit sends without blocking the tick loop; the sensor re-reports dropped
// contacts on the next tick
func (s *Sim) emit(evt Collision) {
	select {
	case s.collisions <- evt:
	default:
		logger.Warn(LogMsgCollisionDropped, "label_a", evt.A.Label.String(), "label_b", evt.B.Label.String())
	}
}

// BodyCount returns the number of balls currently in the world
func (s *Sim) BodyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bodies)
}
