// Package ports defines the collaborator interfaces the cache engine consumes.
// The engine stays unaware of concrete compiler and artifact types beyond
// these capabilities.
package ports

import "go.trai.ch/solcache/internal/core/domain"

// ImportGraph exposes the resolved import relationships of a set of source
// files.
//
//go:generate mockgen -source=graph.go -destination=mocks/mock_graph.go -package=mocks
type ImportGraph interface {
	// Imports returns all files imported by the given file, directly or
	// transitively.
	Imports(file string) []string

	// Importers returns the files that directly import the given file.
	Importers(file string) []string

	// VersionRequirement returns the compiler version pragma of the file, or
	// an empty string if the file has none.
	VersionRequirement(file string) string

	// UnresolvedImports returns the imports that could not be resolved to a
	// file. A non-empty result means the graph is incomplete and cached state
	// derived from it cannot be trusted.
	UnresolvedImports() []string
}

// GraphResolver builds an import graph over an explicit set of sources. Dirty
// detection resolves the cached file set rather than the build's in-scope set,
// because cache entries may reference files outside the current invocation.
type GraphResolver interface {
	ResolveSources(paths domain.ProjectPaths, sources domain.Sources) (ImportGraph, error)
}
