package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStateRepository stores each key as a plain string value under prefix+key.
type RedisStateRepository struct { // implements StateRepository
	client *redis.Client
	prefix string
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedisStateRepository(opts RedisOptions) *RedisStateRepository {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisStateRepositoryWithClient(client, opts.Prefix)
}

func NewRedisStateRepositoryWithClient(client *redis.Client, prefix string) *RedisStateRepository {
	return &RedisStateRepository{client: client, prefix: prefix}
}

// Ping checks that the server is reachable.
func (r *RedisStateRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("error connecting to redis: %w", err)
	}
	return nil
}

func (r *RedisStateRepository) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s from redis: %w", r.prefix+key, err)
	}
	return data, nil
}

func (r *RedisStateRepository) Write(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("error writing %s to redis: %w", r.prefix+key, err)
	}
	repoLogger.Debug().Str("key", r.prefix+key).Int("bytes", len(value)).Msg("State written")
	return nil
}

func (r *RedisStateRepository) Name() string { return "redis" }

func (r *RedisStateRepository) Close() error {
	return r.client.Close()
}
