// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/brokenpkg/internal/adapters/logger"
	_ "go.trai.ch/brokenpkg/internal/adapters/python"
	_ "go.trai.ch/brokenpkg/internal/adapters/shell"
	_ "go.trai.ch/brokenpkg/internal/adapters/systemd"
	// Register app nodes.
	_ "go.trai.ch/brokenpkg/internal/app"
)
