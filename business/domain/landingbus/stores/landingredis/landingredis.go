// Package landingredis provides a Redis backed key-value store for the
// landing page configuration.
package landingredis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jcpaschoal/agenda/business/domain/landingbus"
	"github.com/jcpaschoal/agenda/foundation/logger"
	"github.com/redis/go-redis/v9"
)

// Config holds the settings required to reach Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store manages the set of APIs for landing configuration access in Redis.
type Store struct {
	log    *logger.Logger
	client *redis.Client
	prefix string
}

// Open creates a Redis client and verifies the connection.
func Open(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return client, nil
}

// NewStore constructs the api for data access. Every key is stored under
// the specified prefix.
func NewStore(log *logger.Logger, client *redis.Client, prefix string) *Store {
	return &Store{
		log:    log,
		client: client,
		prefix: prefix,
	}
}

// Get retrieves the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, landingbus.ErrNotFound
		}
		return nil, fmt.Errorf("get: key[%s]: %w", key, err)
	}

	return val, nil
}

// Set stores value under key with no expiration.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set: key[%s]: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("delete: key[%s]: %w", key, err)
	}

	return nil
}
