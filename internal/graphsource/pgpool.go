package graphsource

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool     *pgxpool.Pool
	poolOnce sync.Once
	poolErr  error
)

// PoolConfig holds the Postgres connection pool configuration for the
// graph source. Grounded on internal/db/connection.go's Config /
// LoadConfigFromEnv — the teacher's env-var-with-default idiom, carried
// over verbatim since config-file parsing (TOML) is out of scope but
// ambient env-based config is not.
type PoolConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MinConns int32
	MaxConns int32
}

// LoadPoolConfigFromEnv loads PoolConfig from environment variables with
// the same defaults shape as the teacher's db.LoadConfigFromEnv.
func LoadPoolConfigFromEnv() *PoolConfig {
	port, _ := strconv.Atoi(getEnv("COMPASS_DB_PORT", "5432"))
	minConns, _ := strconv.Atoi(getEnv("COMPASS_DB_MIN_CONNS", "2"))
	maxConns, _ := strconv.Atoi(getEnv("COMPASS_DB_MAX_CONNS", "10"))

	return &PoolConfig{
		Host:     getEnv("COMPASS_DB_HOST", "localhost"),
		Port:     port,
		Database: getEnv("COMPASS_DB_NAME", "compass"),
		User:     getEnv("COMPASS_DB_USER", "postgres"),
		Password: getEnv("COMPASS_DB_PASSWORD", ""),
		SSLMode:  getEnv("COMPASS_DB_SSLMODE", "disable"),
		MinConns: int32(minConns),
		MaxConns: int32(maxConns),
	}
}

// GetPool returns the global connection pool (singleton pattern), built
// from LoadPoolConfigFromEnv on first use.
func GetPool() (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		pool, poolErr = initPool(LoadPoolConfigFromEnv())
	})
	return pool, poolErr
}

// InitPoolWithConfig initializes the pool with a custom config, useful
// for tests that point at a throwaway database.
func InitPoolWithConfig(config *PoolConfig) (*pgxpool.Pool, error) {
	return initPool(config)
}

func initPool(config *PoolConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		config.Host, config.Port, config.Database, config.User, config.Password, config.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("graphsource: unable to parse connection string: %w", err)
	}

	poolConfig.MinConns = config.MinConns
	poolConfig.MaxConns = config.MaxConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("graphsource: unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("graphsource: unable to ping database: %w", err)
	}

	return pool, nil
}

// ClosePool closes the global connection pool.
func ClosePool() {
	if pool != nil {
		pool.Close()
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
