// Package fs implements filesystem-backed source reading and content hashing.
package fs

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/solcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceReader = (*Reader)(nil)

// Reader reads source files and computes XXHash content hashes.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the source record for the file.
func (r *Reader) Read(file string) (*domain.Source, error) {
	data, err := os.ReadFile(file) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read source file"), "path", file)
	}

	info, err := os.Stat(file)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", file)
	}

	return &domain.Source{
		Content:      string(data),
		Hash:         ContentHash(data),
		LastModified: uint64(info.ModTime().UnixMilli()), //nolint:gosec // mtimes are past the epoch
	}, nil
}

// ContentHash computes the XXHash of the given content, formatted as a fixed
// width hex string.
func ContentHash(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}
