package paths

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nest/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nest/internal/core/ports"
)

// NodeID is the unique identifier for the path resolver Graft node.
const NodeID graft.ID = "engine.paths"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			fileSystem, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(fileSystem), nil
		},
	})
}
