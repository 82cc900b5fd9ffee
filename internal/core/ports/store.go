package ports

import (
	"context"

	"go.trai.ch/solcache/internal/core/domain"
)

// CacheReadResult is the outcome of an async index read.
type CacheReadResult struct {
	Cache *domain.CompilerCache
	Err   error
}

// CacheStore persists the compiler cache index and reads the artifact and
// build-info files it references.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Read deserializes the index at path. Returns domain.ErrCacheNotFound if
	// the file is absent and domain.ErrMalformedCache if it cannot be parsed;
	// callers treat both as "no cache available".
	Read(path string) (*domain.CompilerCache, error)

	// Write serializes the whole index to path.
	Write(cache *domain.CompilerCache, path string) error

	// ReadAsync offloads Read to a background goroutine. The returned channel
	// delivers exactly one result and is closed afterwards.
	ReadAsync(ctx context.Context, path string) <-chan CacheReadResult

	// WriteAsync offloads Write to a background goroutine.
	WriteAsync(ctx context.Context, cache *domain.CompilerCache, path string) <-chan error

	// ReadArtifacts deserializes every artifact referenced by the cache,
	// in parallel across files, merged by file path. Artifact paths must be
	// absolute. A single unreadable artifact file fails the whole call.
	ReadArtifacts(cache *domain.CompilerCache) (domain.Artifacts, error)

	// ReadBuilds deserializes the build-info blobs recorded in the cache from
	// the given directory.
	ReadBuilds(cache *domain.CompilerCache, buildInfoDir string) (domain.Builds, error)
}
