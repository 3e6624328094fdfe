// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/nest/internal/adapters/config"
	_ "go.trai.ch/nest/internal/adapters/detector"
	_ "go.trai.ch/nest/internal/adapters/fs"
	_ "go.trai.ch/nest/internal/adapters/logger"
	_ "go.trai.ch/nest/internal/adapters/starlark"
	_ "go.trai.ch/nest/internal/adapters/telemetry"
	_ "go.trai.ch/nest/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/nest/internal/app"
	_ "go.trai.ch/nest/internal/engine/paths"
	_ "go.trai.ch/nest/internal/engine/project"
	_ "go.trai.ch/nest/internal/engine/stack"
	_ "go.trai.ch/nest/internal/engine/structure"
)
