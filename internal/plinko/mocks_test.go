package plinko

import (
	"context"
	"errors"
	"sync"

	"github.com/qaz17899/game-hub/internal/physics"
)

// fakeIntegrator is a hand-rolled physics collaborator double. Tests push
// collision events into it to simulate landings.
type fakeIntegrator struct {
	mu         sync.Mutex
	nextID     physics.BodyID
	spawned    map[physics.BodyID]physics.Vec
	removed    []physics.BodyID
	failSpawn  bool
	collisions chan physics.Collision
}

func newFakeIntegrator() *fakeIntegrator {
	return &fakeIntegrator{
		spawned:    make(map[physics.BodyID]physics.Vec),
		collisions: make(chan physics.Collision, 64),
	}
}

func (f *fakeIntegrator) SpawnBody(pos physics.Vec, _ physics.Shape, _ physics.Material, label physics.Label) (physics.BodyID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSpawn {
		return 0, errors.New("spawn failed")
	}
	if label != physics.LabelBall {
		return 0, errors.New("unexpected label")
	}

	f.nextID++
	f.spawned[f.nextID] = pos
	return f.nextID, nil
}

func (f *fakeIntegrator) RemoveBody(id physics.BodyID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, id)
}

func (f *fakeIntegrator) Collisions() <-chan physics.Collision {
	return f.collisions
}

func (f *fakeIntegrator) Start() {}

func (f *fakeIntegrator) Stop(_ context.Context) error {
	close(f.collisions)
	return nil
}

// land pushes a ball-to-sensor collision at the given x position
func (f *fakeIntegrator) land(body physics.BodyID, x float64) {
	f.collisions <- physics.Collision{
		A: physics.Contact{Body: body, Label: physics.LabelBall, Pos: physics.Vec{X: x}},
		B: physics.Contact{Label: physics.LabelBucketSensor, Pos: physics.Vec{X: x}},
	}
}

// pegHit pushes a ball-to-peg collision, which must have no monetary effect
func (f *fakeIntegrator) pegHit(body physics.BodyID, x float64) {
	f.collisions <- physics.Collision{
		A: physics.Contact{Body: body, Label: physics.LabelBall, Pos: physics.Vec{X: x}},
		B: physics.Contact{Label: physics.LabelPeg, Pos: physics.Vec{X: x}},
	}
}

func (f *fakeIntegrator) spawnCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.spawned)
}

func (f *fakeIntegrator) removedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.removed)
}
