package plinko

// Void reasons carried on round voided events
const (
	VoidReasonFlightTimeout = "flight_timeout"
	VoidReasonShutdown      = "shutdown"
)

// Log messages
const (
	LogMsgBallDropped          = "Ball dropped"
	LogMsgRoundSettled         = "Round settled"
	LogMsgRoundVoided          = "Round voided, wager refunded"
	LogMsgBallRetired          = "Ball retired"
	LogMsgSpawnFailed          = "Physics spawn failed, refunding wager"
	LogMsgMultiplierMismatch   = "Multiplier table length does not match bucket count"
	LogMsgEventPublishFailed   = "Failed to publish round event"
	LogMsgCollisionUnknownBall = "Collision for unknown ball, ignoring"
	LogMsgConsumerStarted      = "Collision consumer started"
	LogMsgConsumerStopped      = "Collision consumer stopped"
)
