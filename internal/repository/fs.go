package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var safeKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FSStateRepository stores each key as <dir>/<key>.json.
type FSStateRepository struct { // implements StateRepository
	dir string
}

func NewFSStateRepository(dir string) *FSStateRepository {
	return &FSStateRepository{dir: dir}
}

func (r *FSStateRepository) path(key string) (string, error) {
	if !safeKey.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid state key %q", key)
	}
	return filepath.Join(r.dir, key+".json"), nil
}

func (r *FSStateRepository) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := r.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, nil
}

func (r *FSStateRepository) Write(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.path(key)
	if err != nil {
		return err
	}

	if err := atomicWriteFile(path, value, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	repoLogger.Debug().Str("path", path).Int("bytes", len(value)).Msg("State written")
	return nil
}

func (r *FSStateRepository) Name() string { return "file" }

func (r *FSStateRepository) Close() error { return nil }

// atomicWriteFile writes to a temporary file in the target directory and
// renames it over filename, so readers never observe a partial value.
func atomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(filename)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	committed = true
	return nil
}
