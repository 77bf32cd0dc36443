// Package resultcache is an optional distributed cache sitting in front
// of the batch driver (SPEC_FULL.md §3): a cache hit returns a stored
// queryrecord.Result without running the search kernel at all. Grounded
// on the teacher's internal/cache/redis.go — same singleton
// sync.Once client, same SHA-256 key hashing, same distributed-lock
// "wait for result" pattern to avoid a thundering herd of identical
// queries — generalized from route/strategy keys to the normalized
// query fields this domain actually varies on (origin, destination,
// model name, weights, road classes, algorithm, k, vias).
package resultcache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/routee-compass/compass-core/internal/queryrecord"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

// Config holds Redis connection and TTL configuration.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
	TTL      time.Duration
	LockTTL  time.Duration
}

// LoadConfigFromEnv loads Config from the environment, matching the
// teacher's getEnv-with-default pattern.
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(getEnv("REDIS_PORT", "6379"))
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, _ := time.ParseDuration(getEnv("RESULT_CACHE_TTL", "10m"))
	lockTTL, _ := time.ParseDuration(getEnv("RESULT_CACHE_LOCK_TTL", "5s"))

	return &Config{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     port,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
		TLS:      getEnv("REDIS_TLS_ENABLED", "false") == "true",
		TTL:      ttl,
		LockTTL:  lockTTL,
	}
}

// GetClient returns the process-wide Redis client, constructing it from
// LoadConfigFromEnv on first use.
func GetClient() (*redis.Client, error) {
	clientOnce.Do(func() {
		config := LoadConfigFromEnv()

		opts := &redis.Options{
			Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
			Password:     config.Password,
			DB:           config.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MinIdleConns: 2,
		}
		if config.TLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}

		client = redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			clientErr = fmt.Errorf("resultcache: connect to redis: %w", err)
		}
	})
	return client, clientErr
}

// Close releases the process-wide client's connections.
func Close() {
	if client != nil {
		client.Close()
	}
}

// QueryKey derives a deterministic cache key from the parts of a Query
// that affect the search outcome: the origin/destination specification,
// the selected model, the effective cost weights, the road-class
// restriction, the algorithm, K and the via vertices. Two Query values
// differing only in PassThrough keys or field ordering hash identically.
func QueryKey(q queryrecord.Query) string {
	data := normalize(q)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("result:%x", hash[:16])
}

func normalize(q queryrecord.Query) string {
	weightKeys := make([]string, 0, len(q.Weights))
	for k := range q.Weights {
		weightKeys = append(weightKeys, k)
	}
	sort.Strings(weightKeys)

	s := fmt.Sprintf("model=%s", q.ModelName)
	switch {
	case q.OriginVertex != nil:
		s += fmt.Sprintf("|ov=%d", *q.OriginVertex)
	case q.OriginX != nil && q.OriginY != nil:
		s += fmt.Sprintf("|ox=%.6f|oy=%.6f", *q.OriginX, *q.OriginY)
	}
	switch {
	case q.DestinationVertex != nil:
		s += fmt.Sprintf("|dv=%d", *q.DestinationVertex)
	case q.DestinationX != nil && q.DestinationY != nil:
		s += fmt.Sprintf("|dx=%.6f|dy=%.6f", *q.DestinationX, *q.DestinationY)
	}
	for _, k := range weightKeys {
		s += fmt.Sprintf("|w.%s=%.6f", k, q.Weights[k])
	}
	roadClasses := append([]string(nil), q.RoadClasses...)
	sort.Strings(roadClasses)
	for _, rc := range roadClasses {
		s += fmt.Sprintf("|rc=%s", rc)
	}
	s += fmt.Sprintf("|alg=%s|k=%d", q.Algorithm, q.K)
	for _, v := range q.Vias {
		s += fmt.Sprintf("|via=%d", v)
	}
	return s
}

// LockKey derives the distributed-lock key guarding computation of key.
func LockKey(key string) string {
	return fmt.Sprintf("lock:%s", key)
}

// Get retrieves a cached Result, returning (nil, nil) on a cache miss.
func Get(ctx context.Context, key string) (*queryrecord.Result, error) {
	c, err := GetClient()
	if err != nil {
		return nil, err
	}

	data, err := c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result queryrecord.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("resultcache: unmarshal cached result: %w", err)
	}
	return &result, nil
}

// Set stores a Result under key for ttl.
func Set(ctx context.Context, key string, result *queryrecord.Result, ttl time.Duration) error {
	c, err := GetClient()
	if err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("resultcache: marshal result: %w", err)
	}
	return c.Set(ctx, key, data, ttl).Err()
}

// AcquireLock attempts to become the single computing goroutine for key
// across the process (and, if Redis is shared, across processes).
func AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	c, err := GetClient()
	if err != nil {
		return false, err
	}
	return c.SetNX(ctx, key, "1", ttl).Result()
}

// ReleaseLock releases a lock acquired with AcquireLock.
func ReleaseLock(ctx context.Context, key string) error {
	c, err := GetClient()
	if err != nil {
		return err
	}
	return c.Del(ctx, key).Err()
}

// WaitForResult polls for a lock's release and then returns the result
// its holder computed, avoiding a thundering herd of identical in-flight
// queries (mirrors the teacher's WaitForLock).
func WaitForResult(ctx context.Context, key string, maxWait time.Duration) (*queryrecord.Result, error) {
	c, err := GetClient()
	if err != nil {
		return nil, err
	}

	lockKey := LockKey(key)
	deadline := time.Now().Add(maxWait)

	for time.Now().Before(deadline) {
		exists, err := c.Exists(ctx, lockKey).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			return Get(ctx, key)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return nil, fmt.Errorf("resultcache: timed out waiting for %q", key)
}

// HealthCheck pings Redis, for the app's readiness probe.
func HealthCheck(ctx context.Context) error {
	c, err := GetClient()
	if err != nil {
		return fmt.Errorf("resultcache: client not initialized: %w", err)
	}
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("resultcache: ping failed: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
