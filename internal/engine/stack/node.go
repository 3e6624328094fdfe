package stack

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nest/internal/adapters/config"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nest/internal/adapters/detector" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nest/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the context stack Graft node.
	NodeID graft.ID = "engine.stack"
	// CacheNodeID is the unique identifier for the context cache Graft node.
	CacheNodeID graft.ID = "engine.stack.cache"
	// DefinitionsNodeID is the unique identifier for the definition table Graft node.
	DefinitionsNodeID graft.ID = "engine.stack.definitions"
)

func init() {
	graft.Register(graft.Node[*Stack]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.MergerNodeID, detector.NodeID},
		Run: func(ctx context.Context) (*Stack, error) {
			merger, err := graft.Dep[*config.Merger](ctx)
			if err != nil {
				return nil, err
			}

			env, err := graft.Dep[ports.EnvironmentProvider](ctx)
			if err != nil {
				return nil, err
			}

			return New(merger, env), nil
		},
	})

	graft.Register(graft.Node[*Cache]{
		ID:        CacheNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Cache, error) {
			return NewCache(), nil
		},
	})

	graft.Register(graft.Node[*Definitions]{
		ID:        DefinitionsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Definitions, error) {
			return NewDefinitions(), nil
		},
	})
}
