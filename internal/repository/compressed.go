package repository

import (
	"context"
	"fmt"

	"github.com/debemdeboas/folio/internal/util/compression"
)

// Compressed wraps another repository, compressing values on the way in
// and decompressing them on the way out.
type Compressed struct { // implements StateRepository
	inner StateRepository
	codec compression.Compressor
	name  string
}

func NewCompressed(inner StateRepository, codec compression.Compressor, name string) *Compressed {
	return &Compressed{inner: inner, codec: codec, name: name}
}

func (c *Compressed) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := c.inner.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	out, err := c.codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("error decompressing %s (%s): %w", key, c.name, err)
	}
	return out, nil
}

func (c *Compressed) Write(ctx context.Context, key string, value []byte) error {
	data, err := c.codec.Compress(value)
	if err != nil {
		return fmt.Errorf("error compressing %s (%s): %w", key, c.name, err)
	}
	return c.inner.Write(ctx, key, data)
}

func (c *Compressed) Name() string { return c.inner.Name() + "+" + c.name }

func (c *Compressed) Close() error { return c.inner.Close() }

// Unwrap returns the repository holding the compressed bytes.
func (c *Compressed) Unwrap() StateRepository { return c.inner }
