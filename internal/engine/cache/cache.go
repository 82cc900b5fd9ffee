// Package cache implements the working engine of one incremental build: dirty
// detection over the persisted index, per-pass source filtering, and the
// end-of-build reconciliation that merges freshly produced artifacts back into
// the index.
package cache

import (
	"os"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/solcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// ArtifactsCache is the façade the build pipeline talks to. It is either
// ephemeral (caching disabled for the project, every operation a no-op) or
// backed by a loaded index.
type ArtifactsCache struct {
	project *domain.Project
	edges   ports.ImportGraph
	// inner is nil for the ephemeral variant.
	inner *inner
}

// inner wraps the loaded index together with everything already materialized
// on disk and the per-build working state. It is exclusively owned by the
// calling build goroutine for the whole build.
type inner struct {
	cache           *domain.CompilerCache
	cachedArtifacts domain.Artifacts
	cachedBuilds    domain.Builds
	edges           ports.ImportGraph
	project         *domain.Project

	// dirtySources are the files invalidated this run, purged from the index
	// across all versions.
	dirtySources map[string]struct{}
	// sourcesInScope records the (file, version) pairs of the current build;
	// only those survive Consume.
	sourcesInScope *domain.GroupedSources
	// contentHashes memoizes freshly computed hashes of cached files.
	contentHashes map[string]string

	store    ports.CacheStore
	output   ports.ArtifactOutput
	settings ports.SettingsComparator
	resolver ports.GraphResolver
	reader   ports.SourceReader
	log      ports.Logger
}

// New constructs the cache for one build. If caching is disabled for the
// project the ephemeral variant is returned. Otherwise the persisted index is
// loaded (a missing, foreign or layout-mismatching cache file degrades to an
// empty index), entries for deleted files are pruned, and all previously
// produced artifacts and build infos are read back.
func New(
	project *domain.Project,
	edges ports.ImportGraph,
	store ports.CacheStore,
	output ports.ArtifactOutput,
	settings ports.SettingsComparator,
	resolver ports.GraphResolver,
	reader ports.SourceReader,
	log ports.Logger,
) (*ArtifactsCache, error) {
	if !project.Cached {
		return &ArtifactsCache{project: project, edges: edges}, nil
	}

	// If the build's own graph has unresolved imports the cached state cannot
	// be validated against it, so start from an empty index rather than risk
	// false positives.
	invalidate := len(edges.UnresolvedImports()) > 0

	cc := loadIndex(project, store, invalidate, log)
	cc.RemoveMissingFiles()

	cachedArtifacts := domain.Artifacts{}
	if _, err := os.Stat(project.Paths.Artifacts); err == nil {
		artifacts, err := store.ReadArtifacts(cc)
		if err != nil {
			// One corrupted artifact file fails the bulk read; fall back to an
			// empty set, which only costs recompilation.
			log.Debug("failed to read cached artifacts", "error", err)
		} else {
			cachedArtifacts = artifacts
		}
	}

	cachedBuilds, err := store.ReadBuilds(cc, project.Paths.BuildInfos)
	if err != nil {
		log.Debug("failed to read cached build infos", "error", err)
		cachedBuilds = domain.Builds{}
	}

	// Repair after a partially written previous run: an artifact whose
	// build info is gone cannot be trusted.
	for file, contracts := range cachedArtifacts {
		for contract, files := range contracts {
			kept := files[:0]
			for _, artifact := range files {
				if _, ok := cachedBuilds[artifact.BuildID]; ok {
					kept = append(kept, artifact)
				}
			}
			if len(kept) == 0 {
				delete(contracts, contract)
			} else {
				contracts[contract] = kept
			}
		}
		if len(contracts) == 0 {
			delete(cachedArtifacts, file)
		}
	}

	return &ArtifactsCache{
		project: project,
		edges:   edges,
		inner: &inner{
			cache:           cc,
			cachedArtifacts: cachedArtifacts,
			cachedBuilds:    cachedBuilds,
			edges:           edges,
			project:         project,
			dirtySources:    make(map[string]struct{}),
			sourcesInScope:  domain.NewGroupedSources(),
			contentHashes:   make(map[string]string),
			store:           store,
			output:          output,
			settings:        settings,
			resolver:        resolver,
			reader:          reader,
			log:             log,
		},
	}, nil
}

// loadIndex reads the persisted index, or returns a fresh empty one when there
// is no usable cache file.
func loadIndex(project *domain.Project, store ports.CacheStore, invalidate bool, log ports.Logger) *domain.CompilerCache {
	relative := project.PathsRelative()

	if !invalidate {
		cc, err := store.Read(project.CacheFile)
		switch {
		case err != nil:
			log.Debug("no usable cache file", "error", err)
		case cc.Format != domain.FormatVersion:
			log.Debug("foreign cache format", "format", cc.Format)
		case !cc.Paths.Equal(relative):
			// The project layout moved; recorded relative paths no longer
			// resolve to the same files.
			log.Debug("project layout changed, invalidating cache")
		default:
			cc.JoinEntries(project.Root).JoinArtifactFiles(project.Paths.Artifacts)
			return cc
		}
	}

	return domain.NewCompilerCache(domain.FormatVersion, relative)
}

// Graph returns the import graph of the current build.
func (c *ArtifactsCache) Graph() ports.ImportGraph { return c.edges }

// Project returns the project this cache operates on.
func (c *ArtifactsCache) Project() *domain.Project { return c.project }

// Cached reports whether the cache is backed by a persisted index.
func (c *ArtifactsCache) Cached() bool { return c.inner != nil }

// RemoveDirtySources runs dirty detection once per build, before any
// compilation: settings drift, content drift, and transitive invalidation over
// importers. Every dirty file is evicted from the index outright.
func (c *ArtifactsCache) RemoveDirtySources() {
	if c.inner != nil {
		c.inner.findAndRemoveDirty()
	}
}

// Filter classifies the candidate sources of one (version, profile) compiler
// pass in place and drops the files the compiler does not need to see at all.
func (c *ArtifactsCache) Filter(sources domain.Sources, version *semver.Version, profile string) {
	if c.inner != nil {
		c.inner.filter(sources, version, profile)
	}
}

// CompilerSeen marks the file's entry as having been fed to the compiler.
func (c *ArtifactsCache) CompilerSeen(file string) {
	if c.inner == nil {
		return
	}
	if entry, ok := c.inner.cache.Entry(file); ok {
		entry.SeenByCompiler = true
	}
}

// DirtySources returns the files invalidated by the last RemoveDirtySources
// run.
func (c *ArtifactsCache) DirtySources() []string {
	if c.inner == nil {
		return nil
	}
	dirty := make([]string, 0, len(c.inner.dirtySources))
	for file := range c.inner.dirtySources {
		dirty = append(dirty, file)
	}
	return dirty
}

// Consume reconciles everything the compiler produced with the cached state:
// superseded or out-of-scope cached artifacts are evicted, fresh artifacts and
// build infos are merged into the index, and the index is persisted when
// requested. It returns the surviving cached artifacts and build infos for the
// pipeline to use without a re-read from disk.
func (c *ArtifactsCache) Consume(
	written domain.Artifacts,
	writtenBuildInfos []domain.BuildInfo,
	writeToDisk bool,
) (domain.Artifacts, domain.Builds, error) {
	if c.inner == nil {
		return domain.Artifacts{}, domain.Builds{}, nil
	}

	in := c.inner
	in.retainCachedArtifacts(written)

	// Merge freshly written artifacts. Entries are expected to exist for all
	// in-scope files by now; a miss here is a logic error upstream.
	for file, contracts := range written {
		entry, ok := in.cache.Entry(file)
		if !ok {
			in.log.Warn("no cache entry for compiled file, artifacts not recorded: " + file)
			continue
		}
		entry.MergeArtifacts(contracts)
	}

	for _, info := range writtenBuildInfos {
		in.cache.AddBuild(info.ID)
	}

	if writeToDisk {
		in.cache.RemoveOutdatedBuilds(c.project.Paths.BuildInfos)
		in.cache.
			StripEntriesPrefix(c.project.Root).
			StripArtifactFilePrefixes(c.project.Paths.Artifacts)
		if err := in.store.Write(in.cache, c.project.CacheFile); err != nil {
			return nil, nil, zerr.With(zerr.Wrap(err, "failed to write cache file"), "path", c.project.CacheFile)
		}
	}

	return in.cachedArtifacts, in.cachedBuilds, nil
}

// retainCachedArtifacts keeps a previously cached artifact only if its file is
// still in scope for its version, is not dirty, and was not superseded by a
// freshly written artifact. All three checks fail open toward eviction.
func (in *inner) retainCachedArtifacts(written domain.Artifacts) {
	for file, contracts := range in.cachedArtifacts {
		for contract, files := range contracts {
			kept := files[:0]
			for _, artifact := range files {
				if !in.sourcesInScope.Contains(file, artifact.Version) {
					continue
				}
				if _, dirty := in.dirtySources[file]; dirty {
					continue
				}
				if _, superseded := written.FindArtifact(file, contract, artifact.Version); superseded {
					continue
				}
				kept = append(kept, artifact)
			}
			if len(kept) == 0 {
				delete(contracts, contract)
			} else {
				contracts[contract] = kept
			}
		}
		if len(contracts) == 0 {
			delete(in.cachedArtifacts, file)
		}
	}
}
