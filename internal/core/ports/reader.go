package ports

import "go.trai.ch/solcache/internal/core/domain"

// SourceReader reads source files and computes their content hashes.
//
//go:generate mockgen -source=reader.go -destination=mocks/mock_reader.go -package=mocks
type SourceReader interface {
	// Read returns the source record for the file, with Content, Hash and
	// LastModified populated.
	Read(file string) (*domain.Source, error)
}
