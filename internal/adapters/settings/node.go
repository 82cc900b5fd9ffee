package settings

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/solcache/internal/core/ports"
)

// NodeID is the unique identifier for the settings comparator Graft node.
const NodeID graft.ID = "adapter.settings"

func init() {
	graft.Register(graft.Node[ports.SettingsComparator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsComparator, error) {
			return NewStrictComparator(), nil
		},
	})
}
