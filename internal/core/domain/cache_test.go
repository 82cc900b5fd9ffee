package domain_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solcache/internal/core/domain"
)

func TestCompilerCache_Builds(t *testing.T) {
	cc := domain.NewCompilerCache(domain.FormatVersion, domain.ProjectPaths{})

	cc.AddBuild("charlie")
	cc.AddBuild("alpha")
	cc.AddBuild("bravo")
	cc.AddBuild("alpha") // duplicate

	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, cc.Builds)
	assert.True(t, cc.HasBuild("bravo"))
	assert.False(t, cc.HasBuild("delta"))
}

func TestCompilerCache_Counters(t *testing.T) {
	cc := domain.NewCompilerCache(domain.FormatVersion, domain.ProjectPaths{})
	assert.True(t, cc.IsEmpty())
	assert.Zero(t, cc.ArtifactsLen())

	cc.Files["src/a.sol"] = &domain.CacheEntry{
		Artifacts: domain.CachedArtifacts{
			"A": {"0.8.23": {
				"default": {Path: "A.json", BuildID: "b1"},
				"via-ir":  {Path: "via-ir/A.json", BuildID: "b1"},
			}},
		},
	}
	cc.Files["src/b.sol"] = &domain.CacheEntry{}

	assert.False(t, cc.IsEmpty())
	assert.Equal(t, 2, cc.Len())
	assert.Equal(t, 2, cc.ArtifactsLen())
}

func TestCompilerCache_RemoveMissingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "Counter.sol")
	require.NoError(t, os.WriteFile(existing, []byte("contract Counter {}"), 0o600))

	cc := domain.NewCompilerCache(domain.FormatVersion, domain.ProjectPaths{})
	cc.Files[existing] = &domain.CacheEntry{SourceName: "Counter.sol"}
	cc.Files[filepath.Join(tmpDir, "Gone.sol")] = &domain.CacheEntry{SourceName: "Gone.sol"}

	cc.RemoveMissingFiles()

	assert.Equal(t, 1, cc.Len())
	_, ok := cc.Entry(existing)
	assert.True(t, ok)
}

func TestCompilerCache_RemoveOutdatedBuilds(t *testing.T) {
	tmpDir := t.TempDir()
	for _, id := range []string{"live", "stale"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, id+".json"), []byte("{}"), 0o600))
	}

	cc := domain.NewCompilerCache(domain.FormatVersion, domain.ProjectPaths{})
	cc.AddBuild("live")
	cc.AddBuild("stale")
	cc.Files["a.sol"] = &domain.CacheEntry{
		Artifacts: domain.CachedArtifacts{
			"A": {"0.8.23": {"default": {Path: "A.json", BuildID: "live"}}},
		},
	}

	cc.RemoveOutdatedBuilds(tmpDir)

	assert.Equal(t, []string{"live"}, cc.Builds)
	_, err := os.Stat(filepath.Join(tmpDir, "live.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(tmpDir, "stale.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestCompilerCache_JoinStripEntries(t *testing.T) {
	root := filepath.Join("/work", "project")
	cc := domain.NewCompilerCache(domain.FormatVersion, domain.ProjectPaths{})
	cc.Files[filepath.Join("src", "Counter.sol")] = &domain.CacheEntry{SourceName: filepath.Join("src", "Counter.sol")}

	cc.JoinEntries(root)
	_, ok := cc.Entry(filepath.Join(root, "src", "Counter.sol"))
	require.True(t, ok)

	cc.StripEntriesPrefix(root)
	_, ok = cc.Entry(filepath.Join("src", "Counter.sol"))
	assert.True(t, ok)
}

func TestCompilerCache_SerializationIsStable(t *testing.T) {
	cc := domain.NewCompilerCache(domain.FormatVersion, domain.ProjectPaths{
		Artifacts:  "out",
		BuildInfos: filepath.Join("out", "build-info"),
		Sources:    "src",
		Libraries:  []string{"lib"},
	})
	cc.Files["src/Counter.sol"] = &domain.CacheEntry{
		ContentHash: "abc",
		SourceName:  "src/Counter.sol",
		Imports:     []string{},
		Artifacts: domain.CachedArtifacts{
			"Counter": {"0.8.23": {"default": {Path: "Counter.sol/Counter.json", BuildID: "b1"}}},
		},
	}
	cc.AddBuild("b1")

	first, err := json.Marshal(cc)
	require.NoError(t, err)
	second, err := json.Marshal(cc)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var decoded domain.CompilerCache
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Equal(t, domain.FormatVersion, decoded.Format)
	assert.True(t, decoded.Paths.Equal(cc.Paths))
	assert.Equal(t, 1, decoded.Len())
	assert.Equal(t, []string{"b1"}, decoded.Builds)
}

func TestCompilerCache_FindArtifactPath(t *testing.T) {
	cc := domain.NewCompilerCache(domain.FormatVersion, domain.ProjectPaths{})
	cc.Files["src/Counter.sol"] = &domain.CacheEntry{
		Artifacts: domain.CachedArtifacts{
			"Counter": {"0.8.23": {"default": {Path: "Counter.sol/Counter.json", BuildID: "b1"}}},
		},
	}

	path, ok := cc.FindArtifactPath("src/Counter.sol", "Counter")
	require.True(t, ok)
	assert.Equal(t, "Counter.sol/Counter.json", path)

	_, ok = cc.FindArtifactPath("src/Counter.sol", "Missing")
	assert.False(t, ok)
	_, ok = cc.FindArtifactPath("src/Missing.sol", "Counter")
	assert.False(t, ok)
}
