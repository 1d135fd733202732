package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking. These represent domain events that can be published
// and consumed by multiple modules.
//
// Event types follow the pattern: <entity>.<action> (e.g., "plinko.ball_dropped")
const (
	// EventTypeBallDropped is published when a drop is accepted and a ball enters the board
	EventTypeBallDropped = "plinko.ball_dropped"

	// EventTypeRoundSettled is published when a ball lands and its payout is applied
	EventTypeRoundSettled = "plinko.round_settled"

	// EventTypeRoundVoided is published when a stuck ball is voided and its wager refunded
	EventTypeRoundVoided = "plinko.round_voided"

	// EventTypeBalanceChanged is published on every balance mutation
	EventTypeBalanceChanged = "wallet.balance_changed"
)
