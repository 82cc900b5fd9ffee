package domain

import (
	"encoding/json"

	"github.com/Masterminds/semver/v3"
)

// ArtifactFile is one materialized artifact: the opaque compiled output for a
// single contract, produced by one compiler version under one settings
// profile.
type ArtifactFile struct {
	// Artifact is the raw artifact document. Its schema belongs to the
	// artifact-output collaborator.
	Artifact json.RawMessage
	// File is the path of the artifact on disk.
	File string
	// Version of the compiler that produced the artifact.
	Version *semver.Version
	// BuildID of the compiler invocation that produced the artifact.
	BuildID string
	// Profile is the settings profile the artifact was compiled under.
	Profile string
}

// Artifacts collects artifact files by source file path and contract name.
type Artifacts map[string]map[string][]ArtifactFile

// HasArtifact reports whether some artifact file with the given path is
// present.
func (a Artifacts) HasArtifact(path string) bool {
	for _, contracts := range a {
		for _, files := range contracts {
			for i := range files {
				if files[i].File == path {
					return true
				}
			}
		}
	}
	return false
}

// FindArtifact returns the artifact for the (file, contract, version) triple.
func (a Artifacts) FindArtifact(file, contract string, version *semver.Version) (*ArtifactFile, bool) {
	for i, artifact := range a[file][contract] {
		if artifact.Version.Equal(version) {
			return &a[file][contract][i], true
		}
	}
	return nil, false
}

// Count returns the total number of artifact files.
func (a Artifacts) Count() int {
	n := 0
	for _, contracts := range a {
		for _, files := range contracts {
			n += len(files)
		}
	}
	return n
}

// BuildInfo is the metadata blob emitted once per compiler invocation. The
// cache owns the lifecycle of the persisted blobs but treats their content as
// opaque beyond the id.
type BuildInfo struct {
	ID string `json:"id"`
	// Content is the raw build-info document as read from disk.
	Content json.RawMessage `json:"-"`
}

// Builds collects the known build infos by id.
type Builds map[string]BuildInfo
