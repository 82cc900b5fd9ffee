package cache

import (
	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/solcache/internal/core/ports"
)

// findAndRemoveDirty walks all cache entries, detects dirty files and evicts
// them from the index. Order matters: settings drift first (it invalidates
// artifacts independent of content), then content hashing, then transitive
// propagation over importers.
func (in *inner) findAndRemoveDirty() {
	in.removeDirtyProfiles()

	files := make([]string, 0, len(in.cache.Files))
	for file := range in.cache.Files {
		files = append(files, file)
	}

	// Read all cached files, marking entries dirty on I/O errors: a file that
	// cannot be read cannot be proven unchanged.
	sources := make(domain.Sources, len(files))
	for _, file := range files {
		source, err := in.reader.Read(file)
		if err != nil {
			in.dirtySources[file] = struct{}{}
			continue
		}
		sources[file] = source
	}

	// Resolve the import graph over exactly this file set. The build's own
	// edges only cover in-scope sources, but cache entries may reference files
	// outside the current invocation.
	edges, err := in.resolver.ResolveSources(in.project.Paths, sources)
	if err != nil {
		// Fail safe: without a graph nothing can be proven clean.
		for _, file := range files {
			in.dirtySources[file] = struct{}{}
		}
	} else {
		in.fillHashes(sources)

		for file := range sources {
			if in.isDirty(file) {
				in.dirtySources[file] = struct{}{}
			}
		}

		PropagateDirty(in.dirtySources, edges)
	}

	for file := range in.dirtySources {
		in.log.Debug("removing dirty file from cache", "file", file)
		in.cache.Remove(file)
	}
}

// PropagateDirty marks every direct and indirect importer of a dirty file as
// dirty. The walk is a worklist, not call-stack recursion, so diamonds are
// visited once and cycles terminate.
func PropagateDirty(dirty map[string]struct{}, edges ports.ImportGraph) {
	queue := make([]string, 0, len(dirty))
	for file := range dirty {
		queue = append(queue, file)
	}

	for len(queue) > 0 {
		file := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		for _, importer := range edges.Importers(file) {
			if _, seen := dirty[importer]; seen {
				continue
			}
			dirty[importer] = struct{}{}
			queue = append(queue, importer)
		}
	}
}

// removeDirtyProfiles drops index profiles whose recorded settings can no
// longer serve the currently configured ones, strips every artifact recorded
// under them, and (re)records the current profile snapshots.
func (in *inner) removeDirtyProfiles() {
	dirtyProfiles := make(map[string]struct{})
	for profile, stored := range in.cache.Profiles {
		current, exists := in.project.Profiles[profile]
		if !exists || !in.settings.CanUseCached(current, stored) {
			in.log.Debug("dirty profile", "profile", profile)
			dirtyProfiles[profile] = struct{}{}
		}
	}

	for profile := range dirtyProfiles {
		delete(in.cache.Profiles, profile)
	}

	if len(dirtyProfiles) > 0 {
		for file, entry := range in.cache.Files {
			// Entries that already had no artifacts carry no per-profile state
			// and stay untouched.
			if len(entry.Artifacts) == 0 {
				continue
			}
			empty := entry.RetainProfiles(func(profile string) bool {
				_, dirty := dirtyProfiles[profile]
				return !dirty
			})
			if empty {
				delete(in.cache.Files, file)
			}
		}
	}

	for profile, settings := range in.project.Profiles {
		if _, ok := in.cache.Profiles[profile]; !ok {
			in.cache.Profiles[profile] = settings
		}
	}
}

// isDirty seeds dirtiness for one file: changed content hash, missing entry,
// or staleness reported by the artifact-output collaborator for any of the
// file's own cached artifacts.
func (in *inner) isDirty(file string) bool {
	hash, ok := in.contentHashes[file]
	if !ok {
		return true
	}

	entry, ok := in.cache.Entry(file)
	if !ok {
		return true
	}

	if entry.ContentHash != hash {
		in.log.Debug("content hash changed", "file", file, "cached_mtime", entry.LastModified())
		return true
	}

	// Extra output requirements may have appeared since the artifact was
	// written; delegate that judgment to the artifact output handler. Errors
	// count as dirty.
	for contract := range in.cachedArtifacts[file] {
		files := in.cachedArtifacts[file][contract]
		for i := range files {
			dirty, err := in.output.IsDirty(&files[i])
			if err != nil || dirty {
				return true
			}
		}
	}

	return false
}

// fillHashes memoizes the content hash of each read source.
func (in *inner) fillHashes(sources domain.Sources) {
	for file, source := range sources {
		if _, ok := in.contentHashes[file]; !ok {
			in.contentHashes[file] = source.Hash
		}
	}
}
