package cache_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solcache/internal/adapters/fs"
	"go.trai.ch/solcache/internal/adapters/index"
	"go.trai.ch/solcache/internal/adapters/settings"
	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/solcache/internal/core/ports"
	"go.trai.ch/solcache/internal/core/ports/mocks"
	"go.trai.ch/solcache/internal/engine/cache"
	"go.uber.org/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string)          {}
func (noopLogger) Warn(string)          {}
func (noopLogger) Error(error)          {}

type fakeGraph struct {
	imports    map[string][]string
	importers  map[string][]string
	unresolved []string
}

func (g *fakeGraph) Imports(file string) []string   { return g.imports[file] }
func (g *fakeGraph) Importers(file string) []string { return g.importers[file] }
func (g *fakeGraph) VersionRequirement(string) string {
	return ""
}
func (g *fakeGraph) UnresolvedImports() []string { return g.unresolved }

type fakeResolver struct {
	graph ports.ImportGraph
	err   error
}

func (r *fakeResolver) ResolveSources(domain.ProjectPaths, domain.Sources) (ports.ImportGraph, error) {
	return r.graph, r.err
}

type fixture struct {
	project  *domain.Project
	graph    *fakeGraph
	resolver *fakeResolver
	store    *index.Store
	reader   *fs.Reader
	output   *mocks.MockArtifactOutput
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	for _, dir := range []string{"src", filepath.Join("out", "build-info"), "test", "script", "lib"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o750))
	}

	ctrl := gomock.NewController(t)
	output := mocks.NewMockArtifactOutput(ctrl)
	output.EXPECT().IsDirty(gomock.Any()).Return(false, nil).AnyTimes()

	graph := &fakeGraph{
		imports:   make(map[string][]string),
		importers: make(map[string][]string),
	}

	return &fixture{
		project: &domain.Project{
			Root:      root,
			CacheFile: filepath.Join(root, "cache", domain.CacheFileName),
			Paths: domain.ProjectPaths{
				Artifacts:  filepath.Join(root, "out"),
				BuildInfos: filepath.Join(root, "out", "build-info"),
				Sources:    filepath.Join(root, "src"),
				Tests:      filepath.Join(root, "test"),
				Scripts:    filepath.Join(root, "script"),
				Libraries:  []string{filepath.Join(root, "lib")},
			},
			Cached:   true,
			Profiles: map[string]domain.Settings{"default": domain.Settings(`{"optimizer":false}`)},
		},
		graph:    graph,
		resolver: &fakeResolver{graph: graph},
		store:    index.NewStore(),
		reader:   fs.NewReader(),
		output:   output,
	}
}

func (f *fixture) open(t *testing.T) *cache.ArtifactsCache {
	t.Helper()
	c, err := cache.New(f.project, f.graph, f.store, f.output, settings.NewStrictComparator(), f.resolver, f.reader, noopLogger{})
	require.NoError(t, err)
	return c
}

func (f *fixture) writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.project.Paths.Sources, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (f *fixture) loadSources(t *testing.T, files ...string) domain.Sources {
	t.Helper()
	sources := make(domain.Sources, len(files))
	for _, file := range files {
		source, err := f.reader.Read(file)
		require.NoError(t, err)
		sources[file] = source
	}
	return sources
}

// compiled fabricates one compiler output: the artifact file on disk, the
// build-info blob next to it, and the ArtifactFile record to consume.
func (f *fixture) compiled(t *testing.T, relPath string, version *semver.Version, buildID, profile string) domain.ArtifactFile {
	t.Helper()

	path := filepath.Join(f.project.Paths.Artifacts, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(`{"abi":[]}`), 0o600))

	infoPath := filepath.Join(f.project.Paths.BuildInfos, buildID+".json")
	require.NoError(t, os.WriteFile(infoPath, []byte(`{"id":"`+buildID+`"}`), 0o600))

	return domain.ArtifactFile{
		Artifact: json.RawMessage(`{"abi":[]}`),
		File:     path,
		Version:  version,
		BuildID:  buildID,
		Profile:  profile,
	}
}

func TestArtifactsCache_Ephemeral(t *testing.T) {
	f := newFixture(t)
	f.project.Cached = false
	aFile := f.writeSource(t, "a.sol", "contract A {}")

	c := f.open(t)
	assert.False(t, c.Cached())

	c.RemoveDirtySources()
	assert.Empty(t, c.DirtySources())

	sources := f.loadSources(t, aFile)
	c.Filter(sources, semver.MustParse("0.8.23"), "default")
	// Ephemeral caches never filter anything out.
	assert.Len(t, sources, 1)

	artifacts, builds, err := c.Consume(domain.Artifacts{}, nil, true)
	require.NoError(t, err)
	assert.Empty(t, artifacts)
	assert.Empty(t, builds)

	_, err = os.Stat(f.project.CacheFile)
	assert.True(t, os.IsNotExist(err), "ephemeral cache must not write an index")
}

func TestArtifactsCache_FirstBuildCompilesEverything(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	require.True(t, c.Cached())
	c.RemoveDirtySources()

	sources := f.loadSources(t, aFile)
	c.Filter(sources, version, "default")

	require.Len(t, sources, 1)
	assert.Equal(t, domain.KindComplete, sources[aFile].Kind)
}

func TestArtifactsCache_SecondBuildIsClean(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	c.RemoveDirtySources()
	sources := f.loadSources(t, aFile)
	c.Filter(sources, version, "default")
	require.Len(t, sources, 1)

	artifact := f.compiled(t, filepath.Join("a.sol", "A.json"), version, "build1", "default")
	c.CompilerSeen(aFile)
	_, _, err := c.Consume(
		domain.Artifacts{aFile: {"A": {artifact}}},
		[]domain.BuildInfo{{ID: "build1"}},
		true,
	)
	require.NoError(t, err)

	c2 := f.open(t)
	c2.RemoveDirtySources()
	assert.Empty(t, c2.DirtySources())

	sources2 := f.loadSources(t, aFile)
	c2.Filter(sources2, version, "default")
	assert.Empty(t, sources2, "an unchanged file must not be recompiled")
}

func TestArtifactsCache_FilterIsIdempotent(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	c.RemoveDirtySources()

	first := f.loadSources(t, aFile)
	c.Filter(first, version, "default")
	second := f.loadSources(t, aFile)
	c.Filter(second, version, "default")

	require.Len(t, second, 1)
	assert.Equal(t, domain.KindComplete, second[aFile].Kind)
}

func TestArtifactsCache_ContentChangeInvalidates(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	c.RemoveDirtySources()
	sources := f.loadSources(t, aFile)
	c.Filter(sources, version, "default")
	artifact := f.compiled(t, filepath.Join("a.sol", "A.json"), version, "build1", "default")
	c.CompilerSeen(aFile)
	_, _, err := c.Consume(domain.Artifacts{aFile: {"A": {artifact}}}, []domain.BuildInfo{{ID: "build1"}}, true)
	require.NoError(t, err)

	f.writeSource(t, "a.sol", "contract A { uint256 x; }")

	c2 := f.open(t)
	c2.RemoveDirtySources()
	assert.Contains(t, c2.DirtySources(), aFile)

	sources2 := f.loadSources(t, aFile)
	c2.Filter(sources2, version, "default")
	require.Len(t, sources2, 1)
	assert.Equal(t, domain.KindComplete, sources2[aFile].Kind)
}

func TestArtifactsCache_TransitiveInvalidation(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	bFile := f.writeSource(t, "b.sol", `import "./a.sol"; contract B {}`)
	f.graph.imports[bFile] = []string{aFile}
	f.graph.importers[aFile] = []string{bFile}
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	c.RemoveDirtySources()
	sources := f.loadSources(t, aFile, bFile)
	c.Filter(sources, version, "default")
	require.Len(t, sources, 2)

	aArtifact := f.compiled(t, filepath.Join("a.sol", "A.json"), version, "build1", "default")
	bArtifact := f.compiled(t, filepath.Join("b.sol", "B.json"), version, "build1", "default")
	c.CompilerSeen(aFile)
	c.CompilerSeen(bFile)
	_, _, err := c.Consume(
		domain.Artifacts{aFile: {"A": {aArtifact}}, bFile: {"B": {bArtifact}}},
		[]domain.BuildInfo{{ID: "build1"}},
		true,
	)
	require.NoError(t, err)

	// Touch only the imported file; the importer must be invalidated too.
	f.writeSource(t, "a.sol", "contract A { uint256 x; }")

	c2 := f.open(t)
	c2.RemoveDirtySources()
	dirty := c2.DirtySources()
	assert.Contains(t, dirty, aFile)
	assert.Contains(t, dirty, bFile)

	sources2 := f.loadSources(t, aFile, bFile)
	c2.Filter(sources2, version, "default")
	require.Len(t, sources2, 2)
	assert.Equal(t, domain.KindComplete, sources2[aFile].Kind)
	assert.Equal(t, domain.KindComplete, sources2[bFile].Kind)
}

func TestArtifactsCache_CleanImportOfNewFileIsOptimized(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	c.RemoveDirtySources()
	sources := f.loadSources(t, aFile)
	c.Filter(sources, version, "default")
	artifact := f.compiled(t, filepath.Join("a.sol", "A.json"), version, "build1", "default")
	c.CompilerSeen(aFile)
	_, _, err := c.Consume(domain.Artifacts{aFile: {"A": {artifact}}}, []domain.BuildInfo{{ID: "build1"}}, true)
	require.NoError(t, err)

	// A new file importing the cached one appears.
	cFile := f.writeSource(t, "c.sol", `import "./a.sol"; contract C {}`)
	f.graph.imports[cFile] = []string{aFile}
	f.graph.importers[aFile] = []string{cFile}

	c2 := f.open(t)
	c2.RemoveDirtySources()
	assert.Empty(t, c2.DirtySources())

	sources2 := f.loadSources(t, aFile, cFile)
	c2.Filter(sources2, version, "default")
	require.Len(t, sources2, 2)
	assert.Equal(t, domain.KindComplete, sources2[cFile].Kind)
	assert.Equal(t, domain.KindOptimized, sources2[aFile].Kind)
}

func TestArtifactsCache_SettingsDriftEvictsOnlyDirtyProfile(t *testing.T) {
	f := newFixture(t)
	f.project.Profiles["via-ir"] = domain.Settings(`{"viaIR":true}`)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	c.RemoveDirtySources()

	defaultSources := f.loadSources(t, aFile)
	c.Filter(defaultSources, version, "default")
	viaIRSources := f.loadSources(t, aFile)
	c.Filter(viaIRSources, version, "via-ir")

	defaultArtifact := f.compiled(t, filepath.Join("a.sol", "A.json"), version, "build1", "default")
	viaIRArtifact := f.compiled(t, filepath.Join("via-ir", "a.sol", "A.json"), version, "build1", "via-ir")
	c.CompilerSeen(aFile)
	_, _, err := c.Consume(
		domain.Artifacts{aFile: {"A": {defaultArtifact, viaIRArtifact}}},
		[]domain.BuildInfo{{ID: "build1"}},
		true,
	)
	require.NoError(t, err)

	// Only the via-ir profile changes its settings.
	f.project.Profiles["via-ir"] = domain.Settings(`{"viaIR":true,"optimizerRuns":200}`)

	c2 := f.open(t)
	c2.RemoveDirtySources()

	defaultSources2 := f.loadSources(t, aFile)
	c2.Filter(defaultSources2, version, "default")
	assert.Empty(t, defaultSources2, "unchanged profile must stay cached")

	viaIRSources2 := f.loadSources(t, aFile)
	c2.Filter(viaIRSources2, version, "via-ir")
	require.Len(t, viaIRSources2, 1)
	assert.Equal(t, domain.KindComplete, viaIRSources2[aFile].Kind)
}

func TestArtifactsCache_ResolverFailureMarksEverythingDirty(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	c.RemoveDirtySources()
	sources := f.loadSources(t, aFile)
	c.Filter(sources, version, "default")
	artifact := f.compiled(t, filepath.Join("a.sol", "A.json"), version, "build1", "default")
	c.CompilerSeen(aFile)
	_, _, err := c.Consume(domain.Artifacts{aFile: {"A": {artifact}}}, []domain.BuildInfo{{ID: "build1"}}, true)
	require.NoError(t, err)

	f.resolver.err = os.ErrInvalid

	c2 := f.open(t)
	c2.RemoveDirtySources()
	assert.Contains(t, c2.DirtySources(), aFile)
}

func TestArtifactsCache_UnresolvedImportsInvalidateIndex(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	c.RemoveDirtySources()
	sources := f.loadSources(t, aFile)
	c.Filter(sources, version, "default")
	artifact := f.compiled(t, filepath.Join("a.sol", "A.json"), version, "build1", "default")
	c.CompilerSeen(aFile)
	_, _, err := c.Consume(domain.Artifacts{aFile: {"A": {artifact}}}, []domain.BuildInfo{{ID: "build1"}}, true)
	require.NoError(t, err)

	f.graph.unresolved = []string{"./missing.sol"}

	c2 := f.open(t)
	c2.RemoveDirtySources()

	sources2 := f.loadSources(t, aFile)
	c2.Filter(sources2, version, "default")
	require.Len(t, sources2, 1)
	assert.Equal(t, domain.KindComplete, sources2[aFile].Kind)
}

func TestArtifactsCache_ConsumeEvictsOutOfScopeArtifacts(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	v23 := semver.MustParse("0.8.23")
	v19 := semver.MustParse("0.8.19")

	c := f.open(t)
	c.RemoveDirtySources()
	sources := f.loadSources(t, aFile)
	c.Filter(sources, v23, "default")
	artifact := f.compiled(t, filepath.Join("a.sol", "A.json"), v23, "build1", "default")
	c.CompilerSeen(aFile)
	_, _, err := c.Consume(domain.Artifacts{aFile: {"A": {artifact}}}, []domain.BuildInfo{{ID: "build1"}}, true)
	require.NoError(t, err)

	// Next build only requests 0.8.19; the 0.8.23 artifact is out of scope.
	c2 := f.open(t)
	c2.RemoveDirtySources()
	sources2 := f.loadSources(t, aFile)
	c2.Filter(sources2, v19, "default")
	require.Len(t, sources2, 1)

	newArtifact := f.compiled(t, filepath.Join("0.8.19", "a.sol", "A.json"), v19, "build2", "default")
	surviving, _, err := c2.Consume(domain.Artifacts{aFile: {"A": {newArtifact}}}, []domain.BuildInfo{{ID: "build2"}}, false)
	require.NoError(t, err)
	assert.Equal(t, 0, surviving.Count())
}

func TestArtifactsCache_MissingArtifactFileForcesRecompile(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", "contract A {}")
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	c.RemoveDirtySources()
	sources := f.loadSources(t, aFile)
	c.Filter(sources, version, "default")
	artifact := f.compiled(t, filepath.Join("a.sol", "A.json"), version, "build1", "default")
	c.CompilerSeen(aFile)
	_, _, err := c.Consume(domain.Artifacts{aFile: {"A": {artifact}}}, []domain.BuildInfo{{ID: "build1"}}, true)
	require.NoError(t, err)

	// The index still references the artifact, but the file is gone.
	require.NoError(t, os.Remove(artifact.File))

	c2 := f.open(t)
	c2.RemoveDirtySources()
	sources2 := f.loadSources(t, aFile)
	c2.Filter(sources2, version, "default")
	require.Len(t, sources2, 1)
	assert.Equal(t, domain.KindComplete, sources2[aFile].Kind)
}

func TestArtifactsCache_SeenByCompilerWithoutOutput(t *testing.T) {
	f := newFixture(t)
	aFile := f.writeSource(t, "a.sol", `import "./lib.sol";`)
	version := semver.MustParse("0.8.23")

	c := f.open(t)
	c.RemoveDirtySources()
	sources := f.loadSources(t, aFile)
	c.Filter(sources, version, "default")
	require.Len(t, sources, 1)

	// The compiler processed the file but emitted nothing for it.
	c.CompilerSeen(aFile)
	_, _, err := c.Consume(domain.Artifacts{}, []domain.BuildInfo{{ID: "build1"}}, true)
	require.NoError(t, err)

	c2 := f.open(t)
	c2.RemoveDirtySources()
	sources2 := f.loadSources(t, aFile)
	c2.Filter(sources2, version, "default")
	assert.Empty(t, sources2, "a file known to produce no output must not recompile")
}

func TestPropagateDirty_Diamond(t *testing.T) {
	// d <- b <- a, d <- c <- a: marking d dirties everything exactly once.
	edges := &fakeGraph{
		importers: map[string][]string{
			"d": {"b", "c"},
			"b": {"a"},
			"c": {"a"},
		},
	}

	dirty := map[string]struct{}{"d": {}}
	cache.PropagateDirty(dirty, edges)

	assert.Len(t, dirty, 4)
	for _, file := range []string{"a", "b", "c", "d"} {
		assert.Contains(t, dirty, file)
	}
}

func TestPropagateDirty_Cycle(t *testing.T) {
	edges := &fakeGraph{
		importers: map[string][]string{
			"a": {"b"},
			"b": {"a"},
		},
	}

	dirty := map[string]struct{}{"a": {}}
	cache.PropagateDirty(dirty, edges)

	assert.Len(t, dirty, 2)
}
