package repository

import (
	"context"
	"slices"

	"github.com/debemdeboas/folio/internal/cache"
)

type MemoryStateRepository struct { // implements StateRepository
	values *cache.Cache[string, []byte]
}

func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{
		values: cache.NewCache[string, []byte](),
	}
}

func (r *MemoryStateRepository) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, ok := r.values.Get(key)
	if !ok {
		return nil, ErrAbsent
	}
	return slices.Clone(value), nil
}

func (r *MemoryStateRepository) Write(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.values.Set(key, slices.Clone(value))
	return nil
}

func (r *MemoryStateRepository) Name() string { return "memory" }

func (r *MemoryStateRepository) Close() error { return nil }
