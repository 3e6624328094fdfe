package detector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nest/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the environment provider Graft node.
	NodeID graft.ID = "adapter.detector"
	// EnvironmentNodeID is the unique identifier for the settable environment Graft node.
	EnvironmentNodeID graft.ID = "adapter.detector.environment"
)

func init() {
	graft.Register(graft.Node[*Environment]{
		ID:        EnvironmentNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Environment, error) {
			return NewEnvironment(), nil
		},
	})

	graft.Register(graft.Node[ports.EnvironmentProvider]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{EnvironmentNodeID},
		Run: func(ctx context.Context) (ports.EnvironmentProvider, error) {
			env, err := graft.Dep[*Environment](ctx)
			if err != nil {
				return nil, err
			}
			return env, nil
		},
	})
}
