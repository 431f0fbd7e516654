package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/campusgate/gatepass/internal/pkg/logger"
)

// LocalStore keeps blobs on the local filesystem and serves them through the
// API server's static file route. It satisfies the Store interface used by
// the gate pass approval flow.
type LocalStore struct {
	basePath string // Root directory where blobs are written
	baseURL  string // Base URL prepended to keys to form public URLs
}

// NewLocalStore creates a LocalStore rooted at basePath. baseURL must match
// the static route the server mounts for that directory.
func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create blob store directory")
		return nil, fmt.Errorf("failed to create blob store directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Blob store directory ensured")

	return &LocalStore{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// Put writes data under key. Keys are flattened to their base name so a
// crafted key cannot escape the store directory.
func (s *LocalStore) Put(ctx context.Context, key string, data []byte, opts PutOptions) error {
	name := filepath.Base(key)
	if name == "" || name == "." || name == "/" {
		return fmt.Errorf("invalid blob key: %q", key)
	}

	path := filepath.Join(s.basePath, name)

	if !opts.Upsert {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrBlobExists, name)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to write blob")
		return fmt.Errorf("failed to write blob %s: %w", name, err)
	}

	logger.Info().Str("key", name).Int("bytes", len(data)).Str("cacheControl", opts.CacheControl).Msg("Blob stored")
	return nil
}

// PublicURL returns the URL under which a stored key is served.
func (s *LocalStore) PublicURL(key string) string {
	return strings.TrimRight(s.baseURL, "/") + "/" + filepath.Base(key)
}
