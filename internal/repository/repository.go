// Package repository holds the key/value backends that persist the blog state.
//
// Every backend stores one opaque value per key and overwrites it wholesale
// on each write. Last writer wins; there is no versioning.
package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// ErrAbsent is returned by Read when nothing has been written under a key.
var ErrAbsent = errors.New("no persisted state")

type StateRepository interface {
	// Read returns the value stored under key, or ErrAbsent.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write replaces the value stored under key.
	Write(ctx context.Context, key string, value []byte) error

	Name() string
	Close() error
}

var repoLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}
