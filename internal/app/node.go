package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nest/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/nest/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/nest/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/nest/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/nest/internal/core/ports"
	"go.trai.ch/nest/internal/engine/project"
	"go.trai.ch/nest/internal/engine/structure"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			project.NodeID,
			structure.NodeID,
			detector.EnvironmentNodeID,
			logger.NodeID,
			fs.NodeID,
			fs.WalkerNodeID,
			watcher.WatcherNodeID,
			watcher.FingerprintsNodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			svc, err := graft.Dep[*project.Service](ctx)
			if err != nil {
				return nil, err
			}

			initializer, err := graft.Dep[*structure.Initializer](ctx)
			if err != nil {
				return nil, err
			}

			env, err := graft.Dep[*detector.Environment](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			fileSystem, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			walker, err := graft.Dep[ports.DirWalker](ctx)
			if err != nil {
				return nil, err
			}

			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			fingerprints, err := graft.Dep[*watcher.Fingerprints](ctx)
			if err != nil {
				return nil, err
			}

			return New(svc, initializer, env, log, fileSystem, walker, w, fingerprints), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}
