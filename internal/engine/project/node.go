package project

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nest/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nest/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nest/internal/adapters/starlark"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nest/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/nest/internal/engine/paths"
	"go.trai.ch/nest/internal/engine/stack"
)

// NodeID is the unique identifier for the project service Graft node.
const NodeID graft.ID = "engine.project"

func init() {
	graft.Register(graft.Node[*Service]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			stack.NodeID,
			stack.CacheNodeID,
			stack.DefinitionsNodeID,
			paths.NodeID,
			starlark.NodeID,
			fs.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Service, error) {
			st, err := graft.Dep[*stack.Stack](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[*stack.Cache](ctx)
			if err != nil {
				return nil, err
			}

			definitions, err := graft.Dep[*stack.Definitions](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[*paths.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			evaluator, err := graft.Dep[ports.DefinitionEvaluator](ctx)
			if err != nil {
				return nil, err
			}

			fileSystem, err := graft.Dep[ports.FileSystem](ctx)
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

			return NewService(st, cache, definitions, resolver, evaluator, fileSystem, log, tracer), nil
		},
	})
}
