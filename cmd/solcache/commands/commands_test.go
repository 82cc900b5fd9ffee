package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solcache/cmd/solcache/commands"
)

type fakeApp struct {
	outdated    []string
	outdatedErr error

	cleanedRoot string
	gcRoot      string
}

func (a *fakeApp) Outdated(_ context.Context, _ string) ([]string, error) {
	return a.outdated, a.outdatedErr
}

func (a *fakeApp) Clean(_ context.Context, cwd string) error {
	a.cleanedRoot = cwd
	return nil
}

func (a *fakeApp) GC(_ context.Context, cwd string) error {
	a.gcRoot = cwd
	return nil
}

func execute(t *testing.T, app commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(app)
	var out, errOut bytes.Buffer
	cli.SetOutput(&out, &errOut)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestOutdatedCmd(t *testing.T) {
	app := &fakeApp{outdated: []string{"src/a.sol", "src/b.sol"}}

	out, err := execute(t, app, "outdated")
	require.NoError(t, err)
	assert.Equal(t, "src/a.sol\nsrc/b.sol\n", out)
}

func TestOutdatedCmd_Error(t *testing.T) {
	app := &fakeApp{outdatedErr: errors.New("boom")}

	_, err := execute(t, app, "outdated")
	assert.Error(t, err)
}

func TestCleanCmd_RootFlag(t *testing.T) {
	app := &fakeApp{}

	_, err := execute(t, app, "clean", "--root", "/work/project")
	require.NoError(t, err)
	assert.Equal(t, "/work/project", app.cleanedRoot)
}

func TestGCCmd_DefaultRoot(t *testing.T) {
	app := &fakeApp{}

	_, err := execute(t, app, "gc")
	require.NoError(t, err)
	assert.Equal(t, ".", app.gcRoot)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, &fakeApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "solcache version")
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, &fakeApp{}, "bogus")
	assert.Error(t, err)
}
