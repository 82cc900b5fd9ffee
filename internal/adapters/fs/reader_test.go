package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solcache/internal/adapters/fs"
)

func TestReader_Read(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "Counter.sol")
	content := "contract Counter {}"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	reader := fs.NewReader()
	source, err := reader.Read(path)
	require.NoError(t, err)

	assert.Equal(t, content, source.Content)
	assert.Equal(t, fs.ContentHash([]byte(content)), source.Hash)
	assert.NotZero(t, source.LastModified)
}

func TestReader_Read_Missing(t *testing.T) {
	reader := fs.NewReader()
	_, err := reader.Read(filepath.Join(t.TempDir(), "missing.sol"))
	assert.Error(t, err)
}

func TestContentHash(t *testing.T) {
	a := fs.ContentHash([]byte("contract A {}"))
	b := fs.ContentHash([]byte("contract B {}"))

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, fs.ContentHash([]byte("contract A {}")))
}
