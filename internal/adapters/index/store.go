// Package index implements the persisted compiler cache store: one JSON
// document for the whole index, plus bulk reads of the artifact and build-info
// files it references.
package index

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Store implements ports.CacheStore on the local filesystem.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Read deserializes the whole index from path.
func (s *Store) Read(path string) (*domain.CompilerCache, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from project config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Wrap keeps the sentinel in the cause chain for errors.Is.
			return nil, zerr.With(zerr.Wrap(domain.ErrCacheNotFound, "no cache index"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read cache file"), "path", path)
	}

	var cache domain.CompilerCache
	if err := json.Unmarshal(data, &cache); err != nil {
		parseErr := zerr.With(zerr.Wrap(domain.ErrMalformedCache, "failed to parse cache file"), "path", path)
		return nil, zerr.With(parseErr, "parse_error", err.Error())
	}
	if cache.Files == nil {
		cache.Files = make(map[string]*domain.CacheEntry)
	}
	if cache.Profiles == nil {
		cache.Profiles = make(map[string]domain.Settings)
	}
	return &cache, nil
}

// Write serializes the whole index to path. The write goes through a sibling
// temp file and a rename so a crashed run never leaves a truncated index.
func (s *Store) Write(cache *domain.CompilerCache, path string) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create cache directory"), "path", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".solcache-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temp cache file"), "path", path)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, "failed to write cache file"), "path", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, "failed to close cache file"), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, "failed to replace cache file"), "path", path)
	}
	return nil
}

// ReadArtifacts deserializes every artifact referenced by the cache. Each
// file's artifacts are independent, so files are read in parallel and merged
// by path key. One unreadable artifact file fails the whole call.
func (s *Store) ReadArtifacts(cache *domain.CompilerCache) (domain.Artifacts, error) {
	var (
		mu        sync.Mutex
		artifacts = make(domain.Artifacts, len(cache.Files))
	)

	var g errgroup.Group
	g.SetLimit(maxParallelReads)

	for file, entry := range cache.Files {
		g.Go(func() error {
			contracts, err := readArtifactFiles(entry)
			if err != nil {
				return err
			}
			mu.Lock()
			artifacts[file] = contracts
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

const maxParallelReads = 16

// readArtifactFiles reads all artifact files recorded in one entry. Artifact
// paths must be absolute.
func readArtifactFiles(entry *domain.CacheEntry) (map[string][]domain.ArtifactFile, error) {
	contracts := make(map[string][]domain.ArtifactFile, len(entry.Artifacts))
	for contract, byVersion := range entry.Artifacts {
		files := make([]domain.ArtifactFile, 0, len(byVersion))
		for versionStr, byProfile := range byVersion {
			version, err := semver.NewVersion(versionStr)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "invalid version key in cache entry"), "version", versionStr)
			}
			for profile, cached := range byProfile {
				raw, err := os.ReadFile(cached.Path) //nolint:gosec // Paths come from the cache index
				if err != nil {
					return nil, zerr.With(zerr.Wrap(err, "failed to read artifact file"), "path", cached.Path)
				}
				files = append(files, domain.ArtifactFile{
					Artifact: raw,
					File:     cached.Path,
					Version:  version,
					BuildID:  cached.BuildID,
					Profile:  profile,
				})
			}
		}
		contracts[contract] = files
	}
	return contracts, nil
}

// ReadBuilds deserializes the build-info blobs recorded in the cache from the
// given directory, in parallel.
func (s *Store) ReadBuilds(cache *domain.CompilerCache, buildInfoDir string) (domain.Builds, error) {
	var (
		mu     sync.Mutex
		builds = make(domain.Builds, len(cache.Builds))
	)

	var g errgroup.Group
	g.SetLimit(maxParallelReads)

	for _, id := range cache.Builds {
		g.Go(func() error {
			path := filepath.Join(buildInfoDir, id+".json")
			raw, err := os.ReadFile(path) //nolint:gosec // Path is derived from the cache index
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to read build info"), "path", path)
			}
			if !json.Valid(raw) {
				return zerr.With(zerr.New("malformed build info"), "path", path)
			}
			mu.Lock()
			builds[id] = domain.BuildInfo{ID: id, Content: raw}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return builds, nil
}

// ReadArtifact deserializes the artifact recorded for the (file, contract)
// pair into out. A pair that was never recorded is a hard error, never a
// silent default.
func (s *Store) ReadArtifact(cache *domain.CompilerCache, file, contract string, out any) error {
	path, ok := cache.FindArtifactPath(file, contract)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "no artifact recorded"), "file", file)
		return zerr.With(err, "contract", contract)
	}
	raw, err := os.ReadFile(path) //nolint:gosec // Path comes from the cache index
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read artifact file"), "path", path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse artifact file"), "path", path)
	}
	return nil
}
