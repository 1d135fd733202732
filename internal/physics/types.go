package physics

import "context"

// Vec is a 2D position or velocity
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Label identifies what kind of body participated in a collision.
// It is a closed enum dispatched with exhaustive switches, never string tags.
type Label int

const (
	LabelBall Label = iota
	LabelPeg
	LabelBucketSensor
	LabelWall
)

// String returns the label name for logging
func (l Label) String() string {
	switch l {
	case LabelBall:
		return "ball"
	case LabelPeg:
		return "peg"
	case LabelBucketSensor:
		return "bucket_sensor"
	case LabelWall:
		return "wall"
	default:
		return "unknown"
	}
}

// BodyID is an opaque handle to a body in the integrator's world
type BodyID int64

// Shape describes a body's collision shape (circles only)
type Shape struct {
	Radius float64
}

// Material describes a body's physical response
type Material struct {
	Restitution float64
	Friction    float64
}

// Contact is one side of a collision: which body, what kind, and where it
// was at impact
type Contact struct {
	Body  BodyID
	Label Label
	Pos   Vec
}

// Collision is a contact event between two labeled bodies, reported in the
// order the integrator detected them
type Collision struct {
	A Contact
	B Contact
}

// Integrator is the physics collaborator contract consumed by the round
// controller. The integrator advances itself each tick; the core only spawns
// and removes bodies and drains the collision stream.
type Integrator interface {
	SpawnBody(pos Vec, shape Shape, mat Material, label Label) (BodyID, error)
	RemoveBody(id BodyID)
	Collisions() <-chan Collision
	Start()
	Stop(ctx context.Context) error
}
