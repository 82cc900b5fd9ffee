// Package config provides the configuration loader for solcache.
package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/solcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the default name of the project configuration file.
const DefaultFilename = "solcache.yaml"

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.Project, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	root, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project root")
	}
	return Load(filepath.Join(root, name), root)
}

// Load reads a configuration file and returns the project description with
// all paths joined to root.
func Load(path, root string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no configuration file"), "path", path)
		}
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	project := &domain.Project{
		Root:      root,
		CacheFile: join(root, file.Paths.Cache, filepath.Join("cache", domain.CacheFileName)),
		Paths: domain.ProjectPaths{
			Artifacts:  join(root, file.Paths.Artifacts, "out"),
			BuildInfos: join(root, file.Paths.BuildInfos, filepath.Join("out", "build-info")),
			Sources:    join(root, file.Paths.Sources, "src"),
			Tests:      join(root, file.Paths.Tests, "test"),
			Scripts:    join(root, file.Paths.Scripts, "script"),
		},
		Cached:   file.Cached == nil || *file.Cached,
		Profiles: make(map[string]domain.Settings, len(file.Profiles)),
	}

	libraries := file.Paths.Libraries
	if len(libraries) == 0 {
		libraries = []string{"lib"}
	}
	for _, lib := range libraries {
		project.Paths.Libraries = append(project.Paths.Libraries, join(root, lib, ""))
	}

	// Profile settings are free-form YAML; snapshot them as canonical JSON so
	// the comparator and the persisted index share one representation.
	for name, value := range file.Profiles {
		snapshot, err := json.Marshal(value)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to snapshot profile settings"), "profile", name)
		}
		project.Profiles[name] = snapshot
	}
	if len(project.Profiles) == 0 {
		project.Profiles["default"] = domain.Settings(`{}`)
	}

	return project, nil
}

func join(root, configured, fallback string) string {
	if configured == "" {
		configured = fallback
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(root, configured)
}
