package domain

import "go.trai.ch/zerr"

var (
	// ErrArtifactNotFound is returned when a requested (file, contract) pair has
	// no artifact recorded in the cache.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrCacheNotFound is returned when the cache file does not exist on disk.
	ErrCacheNotFound = zerr.New("cache file not found")

	// ErrMalformedCache is returned when the cache file exists but cannot be
	// parsed as a compiler cache document.
	ErrMalformedCache = zerr.New("malformed cache file")

	// ErrBackgroundTask is returned when an async store operation terminated
	// before producing a result.
	ErrBackgroundTask = zerr.New("background task failed")

	// ErrConfigNotFound is returned when the project configuration file is
	// missing.
	ErrConfigNotFound = zerr.New("config file not found")
)
