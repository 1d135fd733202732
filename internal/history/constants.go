package history

// DefaultSize is the number of finished rounds retained in memory
const DefaultSize = 512

// Log messages
const (
	LogMsgDecodeFailed = "History: failed to decode round event payload"
	LogMsgBadBallID    = "History: round event carried an unparseable ball ID"
)
