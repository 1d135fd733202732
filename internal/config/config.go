package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	APIKey      string // API key for admin endpoints
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string

	CORSAllowedOrigins []string
	TrustedProxies     []string

	// Storage backend selection: "memory", "redis" or "postgres"
	StorageBackend string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	StartingBalance int64

	Plinko PlinkoConfig
}

// PlinkoConfig holds the board geometry and round rules.
// All values are startup constants; they are never mutated at runtime.
type PlinkoConfig struct {
	RowCount      int
	BasePegCount  int
	PegGap        float64
	RowGap        float64
	StartY        float64
	BoardWidth    float64
	BoardHeight   float64
	SpawnVariance float64

	// Multipliers is the authoritative payout table, one entry per bucket.
	Multipliers []float64

	MinWager         int64
	MaxWager         int64
	MaxBallsInFlight int
	SettleCooldown   time.Duration
	MaxFlightTime    time.Duration
	TickInterval     time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      getEnv("API_KEY", ""),
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", "dev"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES", nil),

		StorageBackend: getEnv("STORAGE_BACKEND", StorageBackendMemory),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "gamehub"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}
	cfg.RedisDB = redisDB

	startingBalance, err := getEnvInt64("WALLET_STARTING_BALANCE", DefaultStartingBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid WALLET_STARTING_BALANCE value: %w", err)
	}
	cfg.StartingBalance = startingBalance

	plinko, err := loadPlinkoConfig()
	if err != nil {
		return nil, err
	}
	cfg.Plinko = plinko

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// loadPlinkoConfig reads the board geometry and round rules from the environment
func loadPlinkoConfig() (PlinkoConfig, error) {
	p := PlinkoConfig{}

	var err error
	if p.RowCount, err = getEnvInt("PLINKO_ROWS", DefaultRowCount); err != nil {
		return p, fmt.Errorf("invalid PLINKO_ROWS value: %w", err)
	}
	if p.BasePegCount, err = getEnvInt("PLINKO_BASE_PEGS", DefaultBasePegCount); err != nil {
		return p, fmt.Errorf("invalid PLINKO_BASE_PEGS value: %w", err)
	}
	if p.PegGap, err = getEnvFloat("PLINKO_PEG_GAP", DefaultPegGap); err != nil {
		return p, fmt.Errorf("invalid PLINKO_PEG_GAP value: %w", err)
	}
	if p.RowGap, err = getEnvFloat("PLINKO_ROW_GAP", DefaultRowGap); err != nil {
		return p, fmt.Errorf("invalid PLINKO_ROW_GAP value: %w", err)
	}
	if p.StartY, err = getEnvFloat("PLINKO_START_Y", DefaultStartY); err != nil {
		return p, fmt.Errorf("invalid PLINKO_START_Y value: %w", err)
	}
	if p.BoardWidth, err = getEnvFloat("PLINKO_BOARD_WIDTH", DefaultBoardWidth); err != nil {
		return p, fmt.Errorf("invalid PLINKO_BOARD_WIDTH value: %w", err)
	}
	if p.BoardHeight, err = getEnvFloat("PLINKO_BOARD_HEIGHT", DefaultBoardHeight); err != nil {
		return p, fmt.Errorf("invalid PLINKO_BOARD_HEIGHT value: %w", err)
	}
	if p.SpawnVariance, err = getEnvFloat("PLINKO_SPAWN_VARIANCE", DefaultSpawnVariance); err != nil {
		return p, fmt.Errorf("invalid PLINKO_SPAWN_VARIANCE value: %w", err)
	}
	if p.Multipliers, err = getEnvFloatList("PLINKO_MULTIPLIERS", DefaultMultipliers); err != nil {
		return p, fmt.Errorf("invalid PLINKO_MULTIPLIERS value: %w", err)
	}
	if p.MinWager, err = getEnvInt64("PLINKO_MIN_WAGER", DefaultMinWager); err != nil {
		return p, fmt.Errorf("invalid PLINKO_MIN_WAGER value: %w", err)
	}
	if p.MaxWager, err = getEnvInt64("PLINKO_MAX_WAGER", DefaultMaxWager); err != nil {
		return p, fmt.Errorf("invalid PLINKO_MAX_WAGER value: %w", err)
	}
	if p.MaxBallsInFlight, err = getEnvInt("PLINKO_MAX_IN_FLIGHT", DefaultMaxBallsInFlight); err != nil {
		return p, fmt.Errorf("invalid PLINKO_MAX_IN_FLIGHT value: %w", err)
	}
	if p.SettleCooldown, err = getEnvDuration("PLINKO_SETTLE_COOLDOWN", DefaultSettleCooldown); err != nil {
		return p, fmt.Errorf("invalid PLINKO_SETTLE_COOLDOWN value: %w", err)
	}
	if p.MaxFlightTime, err = getEnvDuration("PLINKO_MAX_FLIGHT_TIME", DefaultMaxFlightTime); err != nil {
		return p, fmt.Errorf("invalid PLINKO_MAX_FLIGHT_TIME value: %w", err)
	}
	if p.TickInterval, err = getEnvDuration("PLINKO_TICK_INTERVAL", DefaultTickInterval); err != nil {
		return p, fmt.Errorf("invalid PLINKO_TICK_INTERVAL value: %w", err)
	}

	return p, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

// getEnvInt64 retrieves an int64 environment variable or returns a default value
func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	return strconv.ParseInt(value, 10, 64)
}

// getEnvFloat retrieves a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	return strconv.ParseFloat(value, 64)
}

// getEnvDuration retrieves a duration environment variable (e.g. "1500ms", "30s")
// or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	return time.ParseDuration(value)
}

// getEnvList retrieves a comma-separated environment variable as a slice
func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// getEnvFloatList parses a comma-separated list of floats from the environment,
// falling back to parsing the provided default string
func getEnvFloatList(key string, defaultValue string) ([]float64, error) {
	value := getEnv(key, defaultValue)
	parts := strings.Split(value, ",")
	result := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
