package cache

import (
	"slices"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/solcache/internal/core/domain"
)

// createCacheEntry records a first-seen source file. Artifacts stay empty and
// SeenByCompiler false until the compiler output for it is consumed.
func (in *inner) createCacheEntry(file string, source *domain.Source) {
	imports := in.edges.Imports(file)
	relative := make([]string, 0, len(imports))
	for _, imp := range imports {
		relative = append(relative, domain.StripPrefix(imp, in.project.Root))
	}
	slices.Sort(relative)

	in.cache.Files[file] = &domain.CacheEntry{
		LastModificationDate: source.LastModified,
		ContentHash:          source.Hash,
		SourceName:           domain.SourceName(file, in.project.Root),
		Imports:              relative,
		VersionRequirement:   in.edges.VersionRequirement(file),
		Artifacts:            make(domain.CachedArtifacts),
		SeenByCompiler:       false,
	}
}

// filter classifies the sources of one compiler pass:
//
//  1. Complete - artifacts for (version, profile) are missing, the compiler
//     must produce full output.
//  2. Optimized - the file's own cached output is valid, but a Complete file
//     imports it, so it must still be fed to the compiler for resolution and
//     linking. Output extraction for it can be skipped.
//
// Everything else is removed from the candidate set entirely.
func (in *inner) filter(sources domain.Sources, version *semver.Version, profile string) {
	complete := make(map[string]struct{})

	for file, source := range sources {
		in.sourcesInScope.Insert(file, version)

		if in.isMissingArtifacts(file, version, profile) {
			complete[file] = struct{}{}
		}

		// Every in-scope source gets an entry, dirty or not.
		if _, ok := in.cache.Entry(file); !ok {
			in.createCacheEntry(file, source)
		}
	}

	optimized := make(map[string]struct{})
	for file := range complete {
		for _, imported := range in.edges.Imports(file) {
			if _, ok := complete[imported]; !ok {
				optimized[imported] = struct{}{}
			}
		}
	}

	for file, source := range sources {
		if _, ok := complete[file]; ok {
			source.Kind = domain.KindComplete
		} else if _, ok := optimized[file]; ok {
			source.Kind = domain.KindOptimized
		} else {
			delete(sources, file)
		}
	}
}

// isMissingArtifacts reports whether the cache cannot serve the file for the
// given (version, profile) pair.
func (in *inner) isMissingArtifacts(file string, version *semver.Version, profile string) bool {
	entry, ok := in.cache.Entry(file)
	if !ok {
		return true
	}

	// A file the compiler has seen but that produced nothing (e.g. a pure
	// re-export) is not missing anything.
	if entry.SeenByCompiler && len(entry.Artifacts) == 0 {
		return false
	}

	if !entry.Contains(version.String(), profile) {
		return true
	}

	// Each referenced artifact must also be materialized on disk.
	for _, artifact := range entry.ArtifactsForVersion(version.String()) {
		if !in.cachedArtifacts.HasArtifact(artifact.Path) {
			in.log.Debug("missing artifact", "path", artifact.Path)
			return true
		}
	}

	return false
}
