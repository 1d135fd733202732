package physics

// Simulation tuning. Positions are in board pixels, matching the layout
// geometry the client renders.
const (
	// Gravity is the downward acceleration in pixels per second squared
	Gravity = 900.0

	// TerminalVelocity caps the downward speed in pixels per second
	TerminalVelocity = 650.0

	// DefaultBallRadius is the radius used when a spawn passes a zero shape
	DefaultBallRadius = 8.0

	// CollisionBufferSize is the buffer of the collision event channel.
	// The sensor re-reports contact every tick, so a dropped event is
	// recovered on the next tick.
	CollisionBufferSize = 256
)

// Log messages
const (
	LogMsgSimStarted       = "Physics simulation started"
	LogMsgSimStopped       = "Physics simulation stopped"
	LogMsgCollisionDropped = "Collision buffer full, event dropped"
)
