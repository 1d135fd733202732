package domain

import (
	"time"

	"github.com/google/uuid"
)

// BallState represents the lifecycle state of a dropped ball
type BallState string

const (
	// BallStateInFlight means the ball is falling through the peg field
	BallStateInFlight BallState = "in_flight"

	// BallStateSettling means the ball has landed and is waiting to be retired
	BallStateSettling BallState = "settling"
)

// DropReceipt is returned to the caller when a drop is accepted.
// The wager has already been debited from the balance at this point.
type DropReceipt struct {
	BallID    uuid.UUID `json:"ball_id"`
	Wager     int64     `json:"wager"`
	SpawnX    float64   `json:"spawn_x"`
	Balance   int64     `json:"balance"`
	DroppedAt time.Time `json:"dropped_at"`
}

// RoundResult records the outcome of a settled (or voided) round.
// Profit is WinAmount minus Wager; for voided rounds the wager is
// refunded so Profit is zero.
type RoundResult struct {
	BallID     uuid.UUID `json:"ball_id"`
	Wager      int64     `json:"wager"`
	Bucket     int       `json:"bucket"`
	Multiplier float64   `json:"multiplier"`
	WinAmount  int64     `json:"win_amount"`
	Profit     int64     `json:"profit"`
	Balance    int64     `json:"balance"`
	Voided     bool      `json:"voided,omitempty"`
	SettledAt  time.Time `json:"settled_at"`
}

// BallSummary is the public view of an in-flight ball
type BallSummary struct {
	BallID    uuid.UUID `json:"ball_id"`
	Wager     int64     `json:"wager"`
	State     BallState `json:"state"`
	DroppedAt time.Time `json:"dropped_at"`
}
