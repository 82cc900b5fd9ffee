// Package app implements the application layer for the solcache CLI: the
// read-only operations over the persisted index.
package app

import (
	"context"
	"errors"
	"os"
	"slices"

	"go.trai.ch/solcache/internal/adapters/indexgraph"
	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/solcache/internal/core/ports"
	enginecache "go.trai.ch/solcache/internal/engine/cache"
	"go.trai.ch/zerr"
)

// App exposes the cache maintenance operations behind the CLI.
type App struct {
	loader   ports.ConfigLoader
	store    ports.CacheStore
	reader   ports.SourceReader
	settings ports.SettingsComparator
	logger   ports.Logger
	tracer   ports.Tracer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.CacheStore,
	reader ports.SourceReader,
	settings ports.SettingsComparator,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		loader:   loader,
		store:    store,
		reader:   reader,
		settings: settings,
		logger:   log,
		tracer:   tracer,
	}
}

// Components aggregates the wired application parts handed to the CLI.
type Components struct {
	App    *App
	Logger ports.Logger
}

// Outdated returns the source names of the files a build would recompile:
// files whose content no longer matches the index, files whose profile
// settings drifted, and every direct or transitive importer of those. The
// index itself is never modified.
func (a *App) Outdated(ctx context.Context, cwd string) ([]string, error) {
	_, span := a.tracer.Start(ctx, "cache.outdated")
	defer span.End()

	project, err := a.loader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load project configuration")
	}

	cc, err := a.store.Read(project.CacheFile)
	if err != nil {
		if errors.Is(err, domain.ErrCacheNotFound) || errors.Is(err, domain.ErrMalformedCache) {
			a.logger.Info("no usable cache, a build would recompile everything")
			return nil, nil
		}
		return nil, err
	}
	if cc.Format != domain.FormatVersion || !cc.Paths.Equal(project.PathsRelative()) {
		a.logger.Info("cache does not match the project layout, a build would recompile everything")
		return nil, nil
	}
	if cc.IsEmpty() {
		a.logger.Info("cache has no entries, a build would recompile everything")
		return nil, nil
	}
	cc.JoinEntries(project.Root).JoinArtifactFiles(project.Paths.Artifacts)

	dirtyProfiles := make(map[string]struct{})
	for profile, stored := range cc.Profiles {
		current, exists := project.Profiles[profile]
		if !exists || !a.settings.CanUseCached(current, stored) {
			dirtyProfiles[profile] = struct{}{}
		}
	}

	dirty := make(map[string]struct{})
	for file, entry := range cc.Files {
		source, err := a.reader.Read(file)
		if err != nil {
			dirty[file] = struct{}{}
			continue
		}
		if source.Hash != entry.ContentHash {
			dirty[file] = struct{}{}
			continue
		}
		if hasProfileArtifacts(entry, dirtyProfiles) {
			dirty[file] = struct{}{}
		}
	}

	edges := indexgraph.FromCache(cc, project.Root)
	enginecache.PropagateDirty(dirty, edges)

	outdated := make([]string, 0, len(dirty))
	for file := range dirty {
		if entry, ok := cc.Entry(file); ok {
			outdated = append(outdated, entry.SourceName)
		} else {
			outdated = append(outdated, domain.SourceName(file, project.Root))
		}
	}
	slices.Sort(outdated)

	span.SetAttribute("outdated", len(outdated))
	return outdated, nil
}

func hasProfileArtifacts(entry *domain.CacheEntry, dirtyProfiles map[string]struct{}) bool {
	for _, byVersion := range entry.Artifacts {
		for _, byProfile := range byVersion {
			for profile := range byProfile {
				if _, ok := dirtyProfiles[profile]; ok {
					return true
				}
			}
		}
	}
	return false
}

// Clean removes the cache file and the artifacts directory.
func (a *App) Clean(ctx context.Context, cwd string) error {
	_, span := a.tracer.Start(ctx, "cache.clean")
	defer span.End()

	project, err := a.loader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load project configuration")
	}

	if err := os.Remove(project.CacheFile); err != nil && !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to remove cache file"), "path", project.CacheFile)
	}
	if err := os.RemoveAll(project.Paths.Artifacts); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove artifacts"), "path", project.Paths.Artifacts)
	}

	a.logger.Info("cache cleaned")
	return nil
}

// GC removes build infos no cache entry references anymore and rewrites the
// index.
func (a *App) GC(ctx context.Context, cwd string) error {
	_, span := a.tracer.Start(ctx, "cache.gc")
	defer span.End()

	project, err := a.loader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load project configuration")
	}

	cc, err := a.store.Read(project.CacheFile)
	if err != nil {
		if errors.Is(err, domain.ErrCacheNotFound) {
			a.logger.Info("no cache file, nothing to collect")
			return nil
		}
		return err
	}

	before := len(cc.Builds)
	a.logger.Debug("collecting build infos", "builds", before, "artifacts", cc.ArtifactsLen())
	// Entries stay in their persisted relative form: the mark phase only
	// follows build ids, and the sweep needs the absolute build-info dir.
	cc.RemoveOutdatedBuilds(project.Paths.BuildInfos)
	span.SetAttribute("removed", before-len(cc.Builds))

	if err := a.store.Write(cc, project.CacheFile); err != nil {
		return err
	}

	a.logger.Info("removed unreferenced build infos")
	return nil
}
