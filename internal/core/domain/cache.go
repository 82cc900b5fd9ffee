package domain

import (
	"os"
	"path/filepath"
	"slices"
)

// FormatVersion tags cache files written by this tool. A file carrying a
// different tag is treated as no cache at all.
const FormatVersion = "solcache-format-1"

// CacheFileName is the default file name of the persisted index.
const CacheFileName = "solidity-files-cache.json"

// CompilerCache is the persisted index: one entry per source file plus global
// bookkeeping. Entry keys and artifact paths are stored relative (to the
// project root and the artifacts directory respectively) and joined to
// absolute form after loading.
type CompilerCache struct {
	Format   string                 `json:"_format"`
	Paths    ProjectPaths           `json:"paths"`
	Files    map[string]*CacheEntry `json:"files"`
	Builds   []string               `json:"builds"`
	Profiles map[string]Settings    `json:"profiles"`
}

// NewCompilerCache creates an empty cache for the given layout.
func NewCompilerCache(format string, paths ProjectPaths) *CompilerCache {
	if format == "" {
		format = FormatVersion
	}
	return &CompilerCache{
		Format:   format,
		Paths:    paths,
		Files:    make(map[string]*CacheEntry),
		Profiles: make(map[string]Settings),
	}
}

// IsEmpty reports whether the cache has no file entries.
func (c *CompilerCache) IsEmpty() bool { return len(c.Files) == 0 }

// Len returns the number of file entries.
func (c *CompilerCache) Len() int { return len(c.Files) }

// ArtifactsLen returns the number of artifacts referenced across all entries.
func (c *CompilerCache) ArtifactsLen() int {
	n := 0
	for _, entry := range c.Files {
		entry.EachArtifact(func(CachedArtifact) { n++ })
	}
	return n
}

// Entry returns the cache entry for the file if it exists.
func (c *CompilerCache) Entry(file string) (*CacheEntry, bool) {
	entry, ok := c.Files[file]
	return entry, ok
}

// Remove drops the entry for the given file.
func (c *CompilerCache) Remove(file string) (*CacheEntry, bool) {
	entry, ok := c.Files[file]
	if ok {
		delete(c.Files, file)
	}
	return entry, ok
}

// AddBuild records a build-info id.
func (c *CompilerCache) AddBuild(id string) {
	if idx, found := slices.BinarySearch(c.Builds, id); !found {
		c.Builds = slices.Insert(c.Builds, idx, id)
	}
}

// HasBuild reports whether the build-info id is known.
func (c *CompilerCache) HasBuild(id string) bool {
	_, found := slices.BinarySearch(c.Builds, id)
	return found
}

// RemoveMissingFiles drops entries whose source file no longer exists on disk.
// Entry keys must be absolute. This must run before dirty analysis so stale
// entries cannot mask genuine removals.
func (c *CompilerCache) RemoveMissingFiles() {
	for file := range c.Files {
		if _, err := os.Stat(file); err != nil {
			delete(c.Files, file)
		}
	}
}

// RemoveOutdatedBuilds garbage-collects build infos. A build-info id survives
// only if at least one entry still references it through a cached artifact;
// the backing file of a swept id is deleted best-effort.
func (c *CompilerCache) RemoveOutdatedBuilds(buildInfoDir string) {
	referenced := make(map[string]struct{})
	for _, entry := range c.Files {
		entry.EachArtifact(func(artifact CachedArtifact) {
			referenced[artifact.BuildID] = struct{}{}
		})
	}

	kept := c.Builds[:0]
	for _, id := range c.Builds {
		if _, ok := referenced[id]; ok {
			kept = append(kept, id)
			continue
		}
		_ = os.Remove(filepath.Join(buildInfoDir, id+".json"))
	}
	c.Builds = kept
}

// JoinEntries joins root to every entry key.
func (c *CompilerCache) JoinEntries(root string) *CompilerCache {
	files := make(map[string]*CacheEntry, len(c.Files))
	for file, entry := range c.Files {
		files[filepath.Join(root, file)] = entry
	}
	c.Files = files
	return c
}

// StripEntriesPrefix makes every entry key relative to root.
func (c *CompilerCache) StripEntriesPrefix(root string) *CompilerCache {
	files := make(map[string]*CacheEntry, len(c.Files))
	for file, entry := range c.Files {
		files[StripPrefix(file, root)] = entry
	}
	c.Files = files
	return c
}

// JoinArtifactFiles joins base to every artifact path.
func (c *CompilerCache) JoinArtifactFiles(base string) *CompilerCache {
	for _, entry := range c.Files {
		entry.JoinArtifactFiles(base)
	}
	return c
}

// StripArtifactFilePrefixes makes every artifact path relative to base.
func (c *CompilerCache) StripArtifactFilePrefixes(base string) *CompilerCache {
	for _, entry := range c.Files {
		entry.StripArtifactFilePrefixes(base)
	}
	return c
}

// AllArtifactsExist reports whether every artifact referenced by any entry
// exists on disk.
func (c *CompilerCache) AllArtifactsExist() bool {
	for _, entry := range c.Files {
		if !entry.AllArtifactsExist() {
			return false
		}
	}
	return true
}

// FindArtifactPath returns the path to an artifact of the given (file,
// contract) pair if one is recorded.
func (c *CompilerCache) FindArtifactPath(file, contract string) (string, bool) {
	entry, ok := c.Entry(file)
	if !ok {
		return "", false
	}
	return entry.FindArtifactPath(contract)
}
