// Package settings implements settings-profile comparison for cache reuse.
package settings

import (
	"bytes"
	"encoding/json"

	"go.trai.ch/solcache/internal/core/domain"
	"go.trai.ch/solcache/internal/core/ports"
)

var _ ports.SettingsComparator = (*StrictComparator)(nil)

// StrictComparator allows cache reuse only when the stored settings snapshot
// is byte-equal to the current one after JSON canonicalization. Compilers with
// laxer compatibility rules (e.g. output-selection supersets) can provide
// their own comparator.
type StrictComparator struct{}

// NewStrictComparator creates a StrictComparator.
func NewStrictComparator() *StrictComparator {
	return &StrictComparator{}
}

// CanUseCached reports whether artifacts compiled under stored are still valid
// under current. Snapshots that fail to canonicalize are never reusable.
func (c *StrictComparator) CanUseCached(current, stored domain.Settings) bool {
	a, err := canonicalize(current)
	if err != nil {
		return false
	}
	b, err := canonicalize(stored)
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// canonicalize round-trips the snapshot through encoding/json, which sorts
// object keys and normalizes whitespace.
func canonicalize(s domain.Settings) ([]byte, error) {
	var value any
	if err := json.Unmarshal(s, &value); err != nil {
		return nil, err
	}
	return json.Marshal(value)
}
