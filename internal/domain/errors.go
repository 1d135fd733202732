package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Wager validation errors
	ErrMsgWagerBelowMinimum = "wager below minimum"
	ErrMsgWagerAboveMaximum = "wager above maximum"

	// Balance errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Round errors
	ErrMsgTooManyBallsInFlight = "too many balls in flight"
	ErrMsgRoundNotFound        = "round not found"
	ErrMsgUnknownBall          = "unknown ball"

	// Lifecycle errors
	ErrMsgShuttingDown = "service is shutting down"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Wager validation errors
	ErrWagerBelowMinimum = errors.New(ErrMsgWagerBelowMinimum)
	ErrWagerAboveMaximum = errors.New(ErrMsgWagerAboveMaximum)

	// Balance errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Round errors
	ErrTooManyBallsInFlight = errors.New(ErrMsgTooManyBallsInFlight)
	ErrRoundNotFound        = errors.New(ErrMsgRoundNotFound)
	ErrUnknownBall          = errors.New(ErrMsgUnknownBall)

	// Lifecycle errors
	ErrShuttingDown = errors.New(ErrMsgShuttingDown)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
