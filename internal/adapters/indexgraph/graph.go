// Package indexgraph reconstructs an import graph from the imports recorded in
// cache entries. It lets read-only consumers of the persisted index, like the
// outdated command, walk importer relationships without parsing any source.
package indexgraph

import (
	"path/filepath"

	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/solcache/internal/core/ports"
)

var _ ports.ImportGraph = (*Graph)(nil)

// Graph is an import graph derived from a compiler cache. Edges cover exactly
// the files the index knows about; imports pointing outside the index are
// reported as unresolved.
type Graph struct {
	imports    map[string][]string
	importers  map[string][]string
	pragmas    map[string]string
	unresolved []string
}

// FromCache builds the graph from the recorded entry imports. Entry keys and
// imports must be in the same form (both joined to the project root, or both
// relative).
func FromCache(cache *domain.CompilerCache, root string) *Graph {
	g := &Graph{
		imports:   make(map[string][]string, len(cache.Files)),
		importers: make(map[string][]string, len(cache.Files)),
		pragmas:   make(map[string]string, len(cache.Files)),
	}

	known := make(map[string]struct{}, len(cache.Files))
	for file := range cache.Files {
		known[file] = struct{}{}
	}

	seenUnresolved := make(map[string]struct{})
	for file, entry := range cache.Files {
		if entry.VersionRequirement != "" {
			g.pragmas[file] = entry.VersionRequirement
		}
		for _, imp := range entry.Imports {
			imported := joinRoot(imp, root)
			if _, ok := known[imported]; !ok {
				if _, seen := seenUnresolved[imported]; !seen {
					seenUnresolved[imported] = struct{}{}
					g.unresolved = append(g.unresolved, imported)
				}
				continue
			}
			g.imports[file] = append(g.imports[file], imported)
			g.importers[imported] = append(g.importers[imported], file)
		}
	}

	return g
}

// Imports returns all files reachable from file over import edges.
func (g *Graph) Imports(file string) []string {
	var (
		out     []string
		visited = map[string]struct{}{file: {}}
		queue   = []string{file}
	)
	for len(queue) > 0 {
		current := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		for _, imported := range g.imports[current] {
			if _, ok := visited[imported]; ok {
				continue
			}
			visited[imported] = struct{}{}
			out = append(out, imported)
			queue = append(queue, imported)
		}
	}
	return out
}

// Importers returns the direct importers of file.
func (g *Graph) Importers(file string) []string {
	return g.importers[file]
}

// VersionRequirement returns the recorded version pragma of file, if any.
func (g *Graph) VersionRequirement(file string) string {
	return g.pragmas[file]
}

// UnresolvedImports returns recorded imports that point outside the index.
func (g *Graph) UnresolvedImports() []string {
	return g.unresolved
}

// joinRoot resolves a recorded root-relative import against the form the
// entry keys are in.
func joinRoot(path, root string) string {
	if root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
