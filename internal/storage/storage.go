package storage

import "context"

// Store is the persistence collaborator contract consumed by the ledger.
// Read reports ok=false when the key has never been written; any error from
// either method is treated by callers as a degraded (but non-fatal) store.
type Store interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close()
}

// Well-known keys
const (
	// KeyWalletBalance holds the player's persisted balance
	KeyWalletBalance = "wallet:balance"
)
