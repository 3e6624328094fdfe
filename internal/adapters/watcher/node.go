package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nest/internal/adapters/fs"
	"go.trai.ch/nest/internal/adapters/logger"
	"go.trai.ch/nest/internal/core/ports"
)

const (
	// WatcherNodeID is the unique identifier for the file watcher Graft node.
	WatcherNodeID graft.ID = "adapter.watcher"
	// FingerprintsNodeID is the unique identifier for the definition fingerprints Graft node.
	FingerprintsNodeID graft.ID = "adapter.watcher.fingerprints"
)

func init() {
	graft.Register(graft.Node[ports.Watcher]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Watcher, error) {
			walker, err := graft.Dep[ports.DirWalker](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			w, err := NewWatcher(walker, log)
			if err != nil {
				return nil, err
			}
			return w, nil
		},
	})

	graft.Register(graft.Node[*Fingerprints]{
		ID:        FingerprintsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (*Fingerprints, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewFingerprints(hasher), nil
		},
	})
}
