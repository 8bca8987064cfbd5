// Package compression provides the codecs that may wrap persisted values.
package compression

import "fmt"

type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Noop passes data through unchanged.
type Noop struct{}

func (Noop) Compress(data []byte) ([]byte, error)   { return data, nil }
func (Noop) Decompress(data []byte) ([]byte, error) { return data, nil }

// ForName resolves a configured compression name ("none", "gzip", "zstd").
func ForName(name string) (Compressor, error) {
	switch name {
	case "", "none":
		return Noop{}, nil
	case "gzip":
		return GzipCompressor{}, nil
	case "zstd":
		return ZstdCompressor{}, nil
	}
	return nil, fmt.Errorf("unknown compression %q", name)
}
