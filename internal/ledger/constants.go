package ledger

// Balance change reasons carried on balance changed events
const (
	ReasonInit   = "init"
	ReasonWager  = "wager"
	ReasonPayout = "payout"
	ReasonReset  = "reset"
	ReasonSet    = "set"
)

// Log messages
const (
	LogMsgStoreDegraded      = "Wallet store unavailable, switching to in-memory balance"
	LogMsgStoreRecovered     = "Wallet store recovered, persistence resumed"
	LogMsgCorruptBalance     = "Stored balance is not a valid non-negative integer, using starting value"
	LogMsgEventPublishFailed = "Failed to publish balance changed event"
)
