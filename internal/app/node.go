package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/brokenpkg/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/brokenpkg/internal/adapters/python"  //nolint:depguard // Wired in app layer
	"go.trai.ch/brokenpkg/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/brokenpkg/internal/adapters/systemd" //nolint:depguard // Wired in app layer
	"go.trai.ch/brokenpkg/internal/core/ports"
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
			shell.NodeID,
			logger.NodeID,
			python.NodeID,
			systemd.NodeID,
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
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	runner, err := graft.Dep[ports.CommandRunner](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	interpreter, err := graft.Dep[ports.InterpreterChecker](ctx)
	if err != nil {
		return nil, err
	}

	services, err := graft.Dep[ports.ServiceLinkChecker](ctx)
	if err != nil {
		return nil, err
	}

	return New(runner, log, interpreter, services), nil
}
