package domain

import (
	"os"
	"path/filepath"
	"slices"
	"time"
)

// CachedArtifact points at one artifact file on disk together with the id of
// the build-info blob produced by the compiler invocation that emitted it.
type CachedArtifact struct {
	Path    string `json:"path"`
	BuildID string `json:"build_id"`
}

// CachedArtifacts tracks artifacts by contract name -> compiler version ->
// settings profile. A file can legitimately be compiled by several compiler
// versions and under several profiles, producing distinct artifacts for each
// combination. Plain maps keep the persisted form diff-stable: encoding/json
// serializes map keys in sorted order.
type CachedArtifacts map[string]map[string]map[string]CachedArtifact

// CacheEntry is the cached compiled state of one source file.
type CacheEntry struct {
	// LastModificationDate is the file mtime in milliseconds since the epoch.
	LastModificationDate uint64 `json:"lastModificationDate"`
	// ContentHash identifies whether the content of the file changed.
	ContentHash string `json:"contentHash"`
	// SourceName is the path relative to the project root.
	SourceName string `json:"sourceName"`
	// Imports are the fully resolved imports of the file, relative to the
	// project root and sorted.
	Imports []string `json:"imports"`
	// VersionRequirement is the version pragma of the file, if any.
	VersionRequirement string `json:"versionRequirement,omitempty"`
	// Artifacts produced for this file so far.
	Artifacts CachedArtifacts `json:"artifacts"`
	// SeenByCompiler records that the file was compiled at least once. If true
	// while Artifacts is empty the file is known to produce no output (e.g. a
	// pure re-export) and must not be recompiled for that reason alone. If
	// false, empty Artifacts is inconclusive.
	SeenByCompiler bool `json:"seenByCompiler"`
}

// LastModified returns the recorded modification time.
func (e *CacheEntry) LastModified() time.Time {
	return time.UnixMilli(int64(e.LastModificationDate))
}

// Contains reports whether any contract of this entry has an artifact recorded
// for exactly the given (version, profile) pair.
func (e *CacheEntry) Contains(version, profile string) bool {
	for _, byVersion := range e.Artifacts {
		if byProfile, ok := byVersion[version]; ok {
			if _, ok := byProfile[profile]; ok {
				return true
			}
		}
	}
	return false
}

// FindArtifact returns the artifact recorded for the (contract, version,
// profile) triple.
func (e *CacheEntry) FindArtifact(contract, version, profile string) (CachedArtifact, bool) {
	byVersion, ok := e.Artifacts[contract]
	if !ok {
		return CachedArtifact{}, false
	}
	byProfile, ok := byVersion[version]
	if !ok {
		return CachedArtifact{}, false
	}
	artifact, ok := byProfile[profile]
	return artifact, ok
}

// FindArtifactPath returns the path of any artifact recorded for the contract
// name. Keys are visited in sorted order so the result is deterministic.
func (e *CacheEntry) FindArtifactPath(contract string) (string, bool) {
	byVersion, ok := e.Artifacts[contract]
	if !ok {
		return "", false
	}
	for _, version := range sortedKeys(byVersion) {
		byProfile := byVersion[version]
		for _, profile := range sortedKeys(byProfile) {
			return byProfile[profile].Path, true
		}
	}
	return "", false
}

// ArtifactsForVersion returns all artifacts recorded for the given compiler
// version across contracts and profiles.
func (e *CacheEntry) ArtifactsForVersion(version string) []CachedArtifact {
	var out []CachedArtifact
	for _, byVersion := range e.Artifacts {
		for _, artifact := range byVersion[version] {
			out = append(out, artifact)
		}
	}
	return out
}

// EachArtifact calls fn for every recorded artifact.
func (e *CacheEntry) EachArtifact(fn func(artifact CachedArtifact)) {
	for _, byVersion := range e.Artifacts {
		for _, byProfile := range byVersion {
			for _, artifact := range byProfile {
				fn(artifact)
			}
		}
	}
}

// MergeArtifacts upserts the freshly written artifact files for this entry's
// source file. For every (contract, version, profile) triple present in the
// input the previously recorded artifact is overwritten whole.
func (e *CacheEntry) MergeArtifacts(written map[string][]ArtifactFile) {
	if e.Artifacts == nil {
		e.Artifacts = make(CachedArtifacts)
	}
	for contract, files := range written {
		for i := range files {
			file := &files[i]
			byVersion, ok := e.Artifacts[contract]
			if !ok {
				byVersion = make(map[string]map[string]CachedArtifact)
				e.Artifacts[contract] = byVersion
			}
			byProfile, ok := byVersion[file.Version.String()]
			if !ok {
				byProfile = make(map[string]CachedArtifact)
				byVersion[file.Version.String()] = byProfile
			}
			byProfile[file.Profile] = CachedArtifact{
				Path:    file.File,
				BuildID: file.BuildID,
			}
		}
	}
}

// RetainProfiles drops every artifact recorded under a profile for which keep
// returns false and reports whether the artifact map became empty as a result.
func (e *CacheEntry) RetainProfiles(keep func(profile string) bool) bool {
	for contract, byVersion := range e.Artifacts {
		for version, byProfile := range byVersion {
			for profile := range byProfile {
				if !keep(profile) {
					delete(byProfile, profile)
				}
			}
			if len(byProfile) == 0 {
				delete(byVersion, version)
			}
		}
		if len(byVersion) == 0 {
			delete(e.Artifacts, contract)
		}
	}
	return len(e.Artifacts) == 0
}

// AllArtifactsExist reports whether every recorded artifact file exists on
// disk. Artifact paths must be absolute.
func (e *CacheEntry) AllArtifactsExist() bool {
	exist := true
	e.EachArtifact(func(artifact CachedArtifact) {
		if _, err := os.Stat(artifact.Path); err != nil {
			exist = false
		}
	})
	return exist
}

// JoinArtifactFiles makes all artifact paths absolute by joining base.
func (e *CacheEntry) JoinArtifactFiles(base string) {
	e.mapArtifacts(func(a CachedArtifact) CachedArtifact {
		a.Path = filepath.Join(base, a.Path)
		return a
	})
}

// StripArtifactFilePrefixes makes all artifact paths relative to base.
func (e *CacheEntry) StripArtifactFilePrefixes(base string) {
	e.mapArtifacts(func(a CachedArtifact) CachedArtifact {
		a.Path = StripPrefix(a.Path, base)
		return a
	})
}

func (e *CacheEntry) mapArtifacts(fn func(CachedArtifact) CachedArtifact) {
	for _, byVersion := range e.Artifacts {
		for _, byProfile := range byVersion {
			for profile, artifact := range byProfile {
				byProfile[profile] = fn(artifact)
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
