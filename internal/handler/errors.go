package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Parameter validation error messages
	ErrMsgInvalidLimit   = "Invalid limit parameter"
	ErrMsgInvalidRoundID = "Invalid round ID"

	// Wallet error messages
	ErrMsgResetWalletFailed = "Failed to reset wallet"

	// Auth error messages
	ErrMsgUnauthorized = "Unauthorized"
)

// Success messages for API responses
const (
	MsgWalletResetSuccess = "Wallet reset successfully"
)
