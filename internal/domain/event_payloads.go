package domain

// BallDroppedPayload is the event payload for plinko.ball_dropped events
type BallDroppedPayload struct {
	BallID    string  `json:"ball_id"`
	Wager     int64   `json:"wager"`
	SpawnX    float64 `json:"spawn_x"`
	Balance   int64   `json:"balance"`
	Timestamp int64   `json:"timestamp"`
}

// RoundSettledPayload is the event payload for plinko.round_settled events
type RoundSettledPayload struct {
	BallID     string  `json:"ball_id"`
	Wager      int64   `json:"wager"`
	Bucket     int     `json:"bucket"`
	Multiplier float64 `json:"multiplier"`
	WinAmount  int64   `json:"win_amount"`
	Profit     int64   `json:"profit"`
	Balance    int64   `json:"balance"`
	Timestamp  int64   `json:"timestamp"`
}

// RoundVoidedPayload is the event payload for plinko.round_voided events
type RoundVoidedPayload struct {
	BallID    string `json:"ball_id"`
	Wager     int64  `json:"wager"`
	Refunded  int64  `json:"refunded"`
	Balance   int64  `json:"balance"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// BalanceChangedPayload is the event payload for wallet.balance_changed events
type BalanceChangedPayload struct {
	Balance   int64  `json:"balance"`
	Delta     int64  `json:"delta"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}
