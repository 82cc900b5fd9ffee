package domain

import "github.com/Masterminds/semver/v3"

// CompilationKind is the per-pass classification of a source file.
type CompilationKind string

const (
	// KindComplete means the compiler must produce full output for the file.
	KindComplete CompilationKind = "complete"
	// KindOptimized means the file is only fed to the compiler for correct
	// resolution and linking; its own cached output is still valid, so output
	// extraction can be skipped.
	KindOptimized CompilationKind = "optimized"
)

// Source is one candidate source file of a compiler pass.
type Source struct {
	Content string
	// Hash is the content hash of Content.
	Hash string
	// LastModified is the file mtime in milliseconds since the epoch.
	LastModified uint64
	// Kind is set by the cache filter step.
	Kind CompilationKind
}

// Sources maps absolute file paths to their source records.
type Sources map[string]*Source

// GroupedSources records which (file, compiler version) pairs are in scope for
// the current build. It is rebuilt every build and never persisted.
type GroupedSources struct {
	inner map[string]map[string]struct{}
}

// NewGroupedSources creates an empty scope record.
func NewGroupedSources() *GroupedSources {
	return &GroupedSources{inner: make(map[string]map[string]struct{})}
}

// Insert marks the (file, version) pair as in scope.
func (g *GroupedSources) Insert(file string, version *semver.Version) {
	versions, ok := g.inner[file]
	if !ok {
		versions = make(map[string]struct{})
		g.inner[file] = versions
	}
	versions[version.String()] = struct{}{}
}

// Contains reports whether the file was included with the given version.
func (g *GroupedSources) Contains(file string, version *semver.Version) bool {
	_, ok := g.inner[file][version.String()]
	return ok
}
