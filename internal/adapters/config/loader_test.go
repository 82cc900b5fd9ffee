package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solcache/internal/adapters/config"
	"go.trai.ch/solcache/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return tmpDir
}

func TestLoad_Defaults(t *testing.T) {
	root := writeConfig(t, "")

	loader := &config.FileConfigLoader{}
	project, err := loader.Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, project.Root)
	assert.Equal(t, filepath.Join(root, "cache", domain.CacheFileName), project.CacheFile)
	assert.Equal(t, filepath.Join(root, "out"), project.Paths.Artifacts)
	assert.Equal(t, filepath.Join(root, "out", "build-info"), project.Paths.BuildInfos)
	assert.Equal(t, filepath.Join(root, "src"), project.Paths.Sources)
	assert.Equal(t, filepath.Join(root, "test"), project.Paths.Tests)
	assert.Equal(t, filepath.Join(root, "script"), project.Paths.Scripts)
	assert.Equal(t, []string{filepath.Join(root, "lib")}, project.Paths.Libraries)
	assert.True(t, project.Cached)

	// An empty config still yields a usable default profile.
	require.Contains(t, project.Profiles, "default")
	assert.JSONEq(t, `{}`, string(project.Profiles["default"]))
}

func TestLoad_Overrides(t *testing.T) {
	root := writeConfig(t, `
cached: false
paths:
  artifacts: artifacts
  sources: contracts
  libraries:
    - node_modules
    - lib
profiles:
  default:
    optimizer: true
    runs: 200
  via-ir:
    viaIR: true
`)

	loader := &config.FileConfigLoader{}
	project, err := loader.Load(root)
	require.NoError(t, err)

	assert.False(t, project.Cached)
	assert.Equal(t, filepath.Join(root, "artifacts"), project.Paths.Artifacts)
	assert.Equal(t, filepath.Join(root, "contracts"), project.Paths.Sources)
	assert.Equal(t, []string{
		filepath.Join(root, "node_modules"),
		filepath.Join(root, "lib"),
	}, project.Paths.Libraries)

	require.Len(t, project.Profiles, 2)
	assert.JSONEq(t, `{"optimizer":true,"runs":200}`, string(project.Profiles["default"]))
	assert.JSONEq(t, `{"viaIR":true}`, string(project.Profiles["via-ir"]))
}

func TestLoad_Missing(t *testing.T) {
	loader := &config.FileConfigLoader{}
	_, err := loader.Load(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoad_Invalid(t *testing.T) {
	root := writeConfig(t, "paths: [not, a, mapping]")

	loader := &config.FileConfigLoader{}
	_, err := loader.Load(root)
	assert.Error(t, err)
}

func TestLoad_CustomFilename(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "custom.yaml"), []byte("cached: true"), 0o600))

	loader := &config.FileConfigLoader{Filename: "custom.yaml"}
	project, err := loader.Load(tmpDir)
	require.NoError(t, err)
	assert.True(t, project.Cached)
}
