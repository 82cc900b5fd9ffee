package ports

import "go.trai.ch/solcache/internal/core/domain"

// ArtifactOutput is the artifact-shape capability of the surrounding build
// tool: extra staleness checks beyond the content hash, e.g. requested output
// selections that an existing artifact file does not contain.
//
//go:generate mockgen -source=artifacts.go -destination=mocks/mock_artifacts.go -package=mocks
type ArtifactOutput interface {
	// IsDirty reports whether the cached artifact is stale despite an
	// unchanged source file. Errors are treated as dirty.
	IsDirty(artifact *domain.ArtifactFile) (bool, error)
}

// SettingsComparator judges settings drift between the currently configured
// snapshot of a profile and the snapshot recorded in the cache.
type SettingsComparator interface {
	// CanUseCached reports whether artifacts compiled under stored are still
	// valid under current.
	CanUseCached(current, stored domain.Settings) bool
}
