package board

import (
	"fmt"

	"github.com/qaz17899/game-hub/internal/config"
)

// Peg is a single peg position on the board
type Peg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bucket is a half-open horizontal interval [Left, Right)
type Bucket struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// Contains reports whether x falls inside the bucket
func (b Bucket) Contains(x float64) bool {
	return x >= b.Left && x < b.Right
}

// Layout is the immutable board geometry derived from configuration.
// Identical configuration always yields identical geometry; there is no
// randomness anywhere in this package.
type Layout struct {
	pegs        [][]Peg
	buckets     []Bucket
	multipliers []float64
	width       float64
	height      float64
	sensorY     float64
	mismatch    bool
}

// New computes the layout for the given configuration.
// Errors are returned only for structurally impossible configurations; a
// multiplier table whose length disagrees with the bucket count is tolerated
// and reported through MultiplierMismatch.
func New(cfg config.PlinkoConfig) (*Layout, error) {
	if cfg.RowCount < 1 {
		return nil, fmt.Errorf("row count must be at least 1, got %d", cfg.RowCount)
	}
	if cfg.BasePegCount < 1 {
		return nil, fmt.Errorf("base peg count must be at least 1, got %d", cfg.BasePegCount)
	}
	if cfg.PegGap <= 0 || cfg.RowGap <= 0 {
		return nil, fmt.Errorf("peg gap and row gap must be positive, got %v and %v", cfg.PegGap, cfg.RowGap)
	}
	if cfg.BoardWidth <= 0 || cfg.BoardHeight <= 0 {
		return nil, fmt.Errorf("board dimensions must be positive, got %vx%v", cfg.BoardWidth, cfg.BoardHeight)
	}

	l := &Layout{
		multipliers: append([]float64(nil), cfg.Multipliers...),
		width:       cfg.BoardWidth,
		height:      cfg.BoardHeight,
	}

	// Row r holds BasePegCount+r pegs, horizontally centered
	center := cfg.BoardWidth / 2
	l.pegs = make([][]Peg, cfg.RowCount)
	for r := 0; r < cfg.RowCount; r++ {
		count := cfg.BasePegCount + r
		row := make([]Peg, count)
		left := center - float64(count-1)*cfg.PegGap/2
		y := cfg.StartY + float64(r)*cfg.RowGap
		for i := 0; i < count; i++ {
			row[i] = Peg{X: left + float64(i)*cfg.PegGap, Y: y}
		}
		l.pegs[r] = row
	}

	// The bucket sensor sits one row gap below the final peg row, clamped
	// to the board
	l.sensorY = cfg.StartY + float64(cfg.RowCount)*cfg.RowGap
	if l.sensorY > cfg.BoardHeight {
		l.sensorY = cfg.BoardHeight
	}

	// Internal bucket boundaries are the final row's peg x positions; the
	// outer bounds clamp to the board edges. This partitions [0, width)
	// exactly: no gaps, no overlaps.
	finalRow := l.pegs[cfg.RowCount-1]
	bucketCount := len(finalRow) + 1
	l.buckets = make([]Bucket, bucketCount)
	for i := 0; i < bucketCount; i++ {
		left := 0.0
		if i > 0 {
			left = finalRow[i-1].X
		}
		right := cfg.BoardWidth
		if i < bucketCount-1 {
			right = finalRow[i].X
		}
		l.buckets[i] = Bucket{Left: left, Right: right}
	}

	l.mismatch = len(l.multipliers) != bucketCount

	return l, nil
}

// BucketCount returns the number of buckets
func (l *Layout) BucketCount() int {
	return len(l.buckets)
}

// Bucket returns the interval for bucket i
func (l *Layout) Bucket(i int) Bucket {
	return l.buckets[i]
}

// Buckets returns a copy of the bucket intervals in left-to-right order
func (l *Layout) Buckets() []Bucket {
	return append([]Bucket(nil), l.buckets...)
}

// Multipliers returns a copy of the configured payout table
func (l *Layout) Multipliers() []float64 {
	return append([]float64(nil), l.multipliers...)
}

// MultiplierCount returns the length of the payout table
func (l *Layout) MultiplierCount() int {
	return len(l.multipliers)
}

// Multiplier returns the payout factor at index i without bounds checking;
// callers needing the defensive clamp use the landing resolver.
func (l *Layout) Multiplier(i int) float64 {
	return l.multipliers[i]
}

// MultiplierMismatch reports a payout table whose length disagrees with the
// bucket count. A latent configuration bug: log it at startup, never fail
// a round over it.
func (l *Layout) MultiplierMismatch() bool {
	return l.mismatch
}

// Pegs returns a copy of the peg rows
func (l *Layout) Pegs() [][]Peg {
	rows := make([][]Peg, len(l.pegs))
	for i, row := range l.pegs {
		rows[i] = append([]Peg(nil), row...)
	}
	return rows
}

// RowCount returns the number of peg rows
func (l *Layout) RowCount() int {
	return len(l.pegs)
}

// RowY returns the vertical position of peg row r
func (l *Layout) RowY(r int) float64 {
	return l.pegs[r][0].Y
}

// Width returns the horizontal extent of the board
func (l *Layout) Width() float64 {
	return l.width
}

// Height returns the vertical extent of the board
func (l *Layout) Height() float64 {
	return l.height
}

// SensorY returns the height of the bucket sensor consumed by the integrator
func (l *Layout) SensorY() float64 {
	return l.sensorY
}
