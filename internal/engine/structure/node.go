package structure

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nest/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nest/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nest/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/nest/internal/engine/paths"
)

// NodeID is the unique identifier for the build structure initializer Graft node.
const NodeID graft.ID = "engine.structure"

func init() {
	graft.Register(graft.Node[*Initializer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID, paths.NodeID, logger.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (*Initializer, error) {
			fileSystem, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[*paths.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewInitializer(fileSystem, resolver, log, tracer), nil
		},
	})
}
