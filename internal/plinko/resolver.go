package plinko

import (
	"github.com/shopspring/decimal"

	"github.com/qaz17899/game-hub/internal/board"
)

// Resolver maps a ball's terminal horizontal position to a bucket index and
// payout multiplier
type Resolver struct {
	layout *board.Layout
}

// NewResolver creates a resolver bound to a board layout
func NewResolver(layout *board.Layout) *Resolver {
	return &Resolver{layout: layout}
}

// Resolve returns the bucket containing x and its multiplier.
// Buckets are scanned left to right; x outside every interval (floating point
// drift at the rails) clamps to the first or last bucket. The multiplier
// lookup clamps the index against the table length so a misconfigured payout
// table degrades a round's payout instead of failing it.
func (r *Resolver) Resolve(x float64) (int, decimal.Decimal) {
	bucket := -1
	for i := 0; i < r.layout.BucketCount(); i++ {
		if r.layout.Bucket(i).Contains(x) {
			bucket = i
			break
		}
	}
	if bucket < 0 {
		if x < 0 {
			bucket = 0
		} else {
			bucket = r.layout.BucketCount() - 1
		}
	}

	idx := bucket
	if idx >= r.layout.MultiplierCount() {
		idx = r.layout.MultiplierCount() - 1
	}

	return bucket, decimal.NewFromFloat(r.layout.Multiplier(idx))
}

// WinAmount computes floor(wager × multiplier). Truncation only: the payout
// never rounds up in the player's favor.
func WinAmount(wager int64, multiplier decimal.Decimal) int64 {
	return decimal.NewFromInt(wager).Mul(multiplier).Floor().IntPart()
}
