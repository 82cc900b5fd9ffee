// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/solcache/internal/adapters/config"
	_ "go.trai.ch/solcache/internal/adapters/fs"
	_ "go.trai.ch/solcache/internal/adapters/index"
	_ "go.trai.ch/solcache/internal/adapters/logger"
	_ "go.trai.ch/solcache/internal/adapters/settings"
	_ "go.trai.ch/solcache/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/solcache/internal/app"
	_ "go.trai.ch/solcache/internal/engine/cache"
)
