package cached

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/on-the-ground/modelhelpers/internal/helper"
	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a redis backed store.
type RedisOptions struct {
	// Redis server address.
	Address string `yaml:"address"`
	// Password required when connecting to the Redis server.
	Password string `yaml:"password"`
	// DB to connect to.
	DB int `yaml:"db"`
	// TLS config.
	TLSConfig *tls.Config `yaml:"-"`
	// KeyPrefix is prepended to every key.
	KeyPrefix string `yaml:"key_prefix"`
	// DefaultTTL applies when Set gets no ttl. Zero keeps values until evicted.
	DefaultTTL time.Duration `yaml:"-"`
}

func DefaultRedisOptions() RedisOptions {
	return RedisOptions{
		Address:   "localhost:6379",
		Password:  "", // no password set
		DB:        0,  // use default DB
		KeyPrefix: "modelhelpers:",
	}
}

// RedisStore is a Store over a redis client.
type RedisStore struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, keyPrefix string, defaultTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: keyPrefix, defaultTTL: defaultTTL}
}

// OpenRedisStore connects with options and checks the server answers.
func OpenRedisStore(ctx context.Context, options RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		TLSConfig: options.TLSConfig,
		Addr:      options.Address,
		Password:  options.Password,
		DB:        options.DB,
	})
	s := NewRedisStore(client, options.KeyPrefix, options.DefaultTTL)
	err := helper.Retry(3, func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis store %s: %w", options.Address, err)
	}
	return s, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	return r.client.Set(ctx, r.prefix+key, value, ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
