package starlark

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nest/internal/adapters/detector"
	"go.trai.ch/nest/internal/adapters/logger"
	"go.trai.ch/nest/internal/core/ports"
)

// NodeID is the unique identifier for the definition evaluator Graft node.
const NodeID graft.ID = "adapter.starlark"

func init() {
	graft.Register(graft.Node[ports.DefinitionEvaluator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{detector.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.DefinitionEvaluator, error) {
			env, err := graft.Dep[ports.EnvironmentProvider](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewEvaluator(env, log), nil
		},
	})
}
