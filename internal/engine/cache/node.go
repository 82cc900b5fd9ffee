package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solcache/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solcache/internal/adapters/index"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solcache/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solcache/internal/adapters/settings" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/solcache/internal/core/ports"
)

// NodeID is the unique identifier for the cache factory Graft node.
const NodeID graft.ID = "engine.cache"

// Factory builds an ArtifactsCache per build from the long-lived
// collaborators. The per-build collaborators (import graph, artifact output,
// graph resolver) come from the compiler driver at Open time.
type Factory struct {
	store    ports.CacheStore
	settings ports.SettingsComparator
	reader   ports.SourceReader
	log      ports.Logger
}

// NewFactory creates a Factory.
func NewFactory(
	store ports.CacheStore,
	settings ports.SettingsComparator,
	reader ports.SourceReader,
	log ports.Logger,
) *Factory {
	return &Factory{
		store:    store,
		settings: settings,
		reader:   reader,
		log:      log,
	}
}

// Open constructs the cache for one build.
func (f *Factory) Open(
	project *domain.Project,
	edges ports.ImportGraph,
	output ports.ArtifactOutput,
	resolver ports.GraphResolver,
) (*ArtifactsCache, error) {
	return New(project, edges, f.store, output, f.settings, resolver, f.reader, f.log)
}

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			index.NodeID,
			settings.NodeID,
			fs.ReaderNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}
			comparator, err := graft.Dep[ports.SettingsComparator](ctx)
			if err != nil {
				return nil, err
			}
			reader, err := graft.Dep[ports.SourceReader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(store, comparator, reader, log), nil
		},
	})
}
