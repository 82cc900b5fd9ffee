package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solcache/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/solcache/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/solcache/internal/adapters/index"    //nolint:depguard // Wired in app layer
	"go.trai.ch/solcache/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/solcache/internal/adapters/settings" //nolint:depguard // Wired in app layer
	"go.trai.ch/solcache/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/solcache/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			index.NodeID,
			fs.ReaderNodeID,
			settings.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}

			reader, err := graft.Dep[ports.SourceReader](ctx)
			if err != nil {
				return nil, err
			}

			comparator, err := graft.Dep[ports.SettingsComparator](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, store, reader, comparator, log, tracer), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
