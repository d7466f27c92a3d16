// Package filestorage persists key-value documents as files on the local disk.
package filestorage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/logger"
	"github.com/google/uuid"
)

const fileExt = ".json"

// LocalStorage stores one file per key under basePath
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the base directory if needed
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// pathFor maps a key to a file name that cannot escape basePath
func (ls *LocalStorage) pathFor(key string) string {
	return filepath.Join(ls.basePath, url.PathEscape(key)+fileExt)
}

// Get returns the stored bytes for key
func (ls *LocalStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(ls.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return data, true, nil
}

// Set writes value to a temporary file and renames it over the key's file,
// so a crash mid-write never leaves a truncated document behind.
func (ls *LocalStorage) Set(_ context.Context, key string, value []byte) error {
	tmpPath := filepath.Join(ls.basePath, ".tmp-"+uuid.New().String())
	if err := os.WriteFile(tmpPath, value, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}

	if err := os.Rename(tmpPath, ls.pathFor(key)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %q: %w", key, err)
	}
	return nil
}

// Delete removes the key's file. Deleting an absent key succeeds.
func (ls *LocalStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(ls.pathFor(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Error().Err(err).Str("key", key).Msg("Failed to delete stored key")
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}
