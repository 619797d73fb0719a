package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scrwatch/internal/adapters/blockfile" //nolint:depguard // Wired in app layer
	"go.trai.ch/scrwatch/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/scrwatch/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/scrwatch/internal/adapters/sysproc"   //nolint:depguard // Wired in app layer
	"go.trai.ch/scrwatch/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/scrwatch/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/scrwatch/internal/core/ports"
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
			config.NodeID,
			sysproc.NodeID,
			blockfile.NodeID,
			watcher.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
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

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	processes, err := graft.Dep[ports.ProcessTable](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.SnapshotReader](ctx)
	if err != nil {
		return nil, err
	}

	files, err := graft.Dep[ports.FileWatcher](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, processes, reader, files, tracer, log), nil
}
