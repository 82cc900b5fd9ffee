// Package domain contains the core domain model for the compiler artifact cache:
// the persisted index, per-file cache entries, and the transient per-build
// bookkeeping types.
package domain

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
)

// Settings is an opaque snapshot of one named compiler settings profile. The
// cache persists and compares snapshots but never interprets them.
type Settings = json.RawMessage

// ProjectPaths is the directory layout snapshot stored in the cache file. All
// paths are relative to the project root when persisted and absolute while the
// cache is in memory.
type ProjectPaths struct {
	Artifacts  string   `json:"artifacts"`
	BuildInfos string   `json:"buildInfos"`
	Sources    string   `json:"sources"`
	Tests      string   `json:"tests"`
	Scripts    string   `json:"scripts"`
	Libraries  []string `json:"libraries"`
}

// Equal reports whether two layouts describe the same directories. A layout
// change invalidates the cache wholesale.
func (p ProjectPaths) Equal(other ProjectPaths) bool {
	return p.Artifacts == other.Artifacts &&
		p.BuildInfos == other.BuildInfos &&
		p.Sources == other.Sources &&
		p.Tests == other.Tests &&
		p.Scripts == other.Scripts &&
		slices.Equal(p.Libraries, other.Libraries)
}

// Relative returns the layout with the root prefix stripped from every path.
func (p ProjectPaths) Relative(root string) ProjectPaths {
	rel := ProjectPaths{
		Artifacts:  StripPrefix(p.Artifacts, root),
		BuildInfos: StripPrefix(p.BuildInfos, root),
		Sources:    StripPrefix(p.Sources, root),
		Scripts:    StripPrefix(p.Scripts, root),
		Tests:      StripPrefix(p.Tests, root),
	}
	for _, lib := range p.Libraries {
		rel.Libraries = append(rel.Libraries, StripPrefix(lib, root))
	}
	return rel
}

// Project describes the build tool's view of one project: where things live,
// whether caching is requested, and the named settings profiles configured for
// it. Profile settings are opaque snapshots; judging whether a stored snapshot
// is still usable is a collaborator concern.
type Project struct {
	Root      string
	CacheFile string
	Paths     ProjectPaths
	Cached    bool
	Profiles  map[string]Settings
}

// PathsRelative returns the layout snapshot as it is persisted in the cache.
func (p *Project) PathsRelative() ProjectPaths {
	return p.Paths.Relative(p.Root)
}

// StripPrefix removes base from path if path is inside base; otherwise the
// path is returned unchanged.
func StripPrefix(path, base string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// SourceName returns the path relative to the project root, the identity under
// which a source file is recorded in the cache.
func SourceName(file, root string) string {
	return StripPrefix(file, root)
}
