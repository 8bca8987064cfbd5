package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/debemdeboas/folio/internal/config"
	"github.com/debemdeboas/folio/internal/db"
	"github.com/debemdeboas/folio/internal/util/compression"
)

const pingTimeout = 5 * time.Second

// New builds the repository selected by cfg.Storage, wrapped in the
// configured compression.
func New(ctx context.Context, cfg *config.Config) (StateRepository, error) {
	var repo StateRepository

	s := cfg.Storage
	switch s.Backend {
	case config.BackendMemory:
		repo = NewMemoryStateRepository()
	case config.BackendFile:
		repo = NewFSStateRepository(s.File.Dir)
	case config.BackendSQLite:
		sqlite := db.NewSQLite(s.SQLite.Path)
		if err := sqlite.InitDB(); err != nil {
			return nil, err
		}
		repo = NewDBStateRepository(sqlite)
	case config.BackendS3:
		r, err := NewS3StateRepository(ctx, S3Options{
			Bucket:          s.S3.Bucket,
			Prefix:          s.S3.Prefix,
			Region:          s.S3.Region,
			Endpoint:        s.S3.Endpoint,
			AccessKeyID:     s.S3.AccessKeyID,
			SecretAccessKey: s.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		repo = r
	case config.BackendRedis:
		r := NewRedisStateRepository(RedisOptions{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
			Prefix:   s.Redis.Prefix,
		})
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := r.Ping(pingCtx)
		cancel()
		if err != nil {
			r.Close()
			return nil, err
		}
		repo = r
	default:
		return nil, fmt.Errorf("unknown storage backend %q", s.Backend)
	}

	if s.Compression == "" || s.Compression == config.CompressionNone {
		repoLogger.Info().Str("backend", repo.Name()).Msg("State repository ready")
		return repo, nil
	}

	codec, err := compression.ForName(s.Compression)
	if err != nil {
		repo.Close()
		return nil, err
	}
	wrapped := NewCompressed(repo, codec, s.Compression)
	repoLogger.Info().Str("backend", wrapped.Name()).Msg("State repository ready")
	return wrapped, nil
}
