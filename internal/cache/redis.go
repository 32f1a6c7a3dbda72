package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skyquery/flightlookup/internal/types"
)

const redisKeyPrefix = "flight:"

// RedisClientInterface defines the Redis operations used by the cache
type RedisClientInterface interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Close() error
}

// Redis is a Store backend for multi-process deployments. Expiry is
// delegated to the server, so Stats never reports expired entries.
type Redis struct {
	client RedisClientInterface
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(addr string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: client}, nil
}

// NewRedisWithClient creates a Redis cache with a custom RedisClientInterface (useful for testing)
func NewRedisWithClient(client RedisClientInterface) *Redis {
	return &Redis{client: client}
}

// Get returns the cached record for key, absent on miss or any Redis
// error. A degraded cache must never fail a lookup.
func (r *Redis) Get(ctx context.Context, key string) (*types.FlightRecord, bool) {
	data, err := r.client.Get(ctx, redisKeyPrefix+normalizeKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Warning: Failed to get flight record from Redis: %v", err)
		return nil, false
	}

	var rec types.FlightRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Printf("Warning: Failed to unmarshal cached flight record: %v", err)
		return nil, false
	}
	return &rec, true
}

// Put stores a record under key with the cache TTL.
func (r *Redis) Put(ctx context.Context, key string, rec *types.FlightRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		log.Printf("Warning: Failed to marshal flight record: %v", err)
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+normalizeKey(key), data, TTL).Err(); err != nil {
		log.Printf("Warning: Failed to cache flight record in Redis: %v", err)
	}
}

// Clear removes all cached flight records and returns how many were removed.
func (r *Redis) Clear(ctx context.Context) int {
	removed := 0
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			log.Printf("Warning: Failed to scan Redis cache keys: %v", err)
			return removed
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				log.Printf("Warning: Failed to delete Redis cache keys: %v", err)
			} else {
				removed += len(keys)
			}
		}
		cursor = next
		if cursor == 0 {
			return removed
		}
	}
}

// Stats counts cached records. Redis expires entries server-side, so
// everything still present is valid.
func (r *Redis) Stats(ctx context.Context) Stats {
	s := Stats{}
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			log.Printf("Warning: Failed to scan Redis cache keys: %v", err)
			return s
		}
		s.Total += len(keys)
		s.Valid += len(keys)
		cursor = next
		if cursor == 0 {
			return s
		}
	}
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
