package config

import "time"

// Storage backend names accepted in STORAGE_BACKEND
const (
	StorageBackendMemory   = "memory"
	StorageBackendRedis    = "redis"
	StorageBackendPostgres = "postgres"
)

// Server defaults
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
)

// Wallet defaults
const (
	DefaultStartingBalance int64 = 10000
)

// Board geometry defaults. The first peg row holds DefaultBasePegCount pegs
// and each subsequent row adds one, so the final row of a DefaultRowCount
// board holds DefaultBasePegCount+DefaultRowCount-1 pegs.
const (
	DefaultRowCount      = 10
	DefaultBasePegCount  = 3
	DefaultPegGap        = 52.0
	DefaultRowGap        = 55.0
	DefaultStartY        = 120.0
	DefaultBoardWidth    = 720.0
	DefaultBoardHeight   = 900.0
	DefaultSpawnVariance = 20.0
)

// DefaultMultipliers is the payout table for the default 13-bucket board,
// edge-weighted with the jackpot buckets at the rails.
const DefaultMultipliers = "10,5,2,1.5,0.6,0.3,0.2,0.3,0.6,1.5,2,5,10"

// Round defaults
const (
	DefaultMinWager         int64 = 10
	DefaultMaxWager         int64 = 10000
	DefaultMaxBallsInFlight       = 5
	DefaultSettleCooldown         = 1500 * time.Millisecond
	DefaultMaxFlightTime          = 30 * time.Second
	DefaultTickInterval           = 16 * time.Millisecond
)
