package config

import (
	"context"

	"github.com/grindlemire/graft"
)

// MergerNodeID is the unique identifier for the configuration merger Graft node.
const MergerNodeID graft.ID = "adapter.config_merger"

func init() {
	graft.Register(graft.Node[*Merger]{
		ID:        MergerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Merger, error) {
			return NewMerger(), nil
		},
	})
}
