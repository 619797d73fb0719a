// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/scrwatch/internal/adapters/blockfile"
	_ "go.trai.ch/scrwatch/internal/adapters/config"
	_ "go.trai.ch/scrwatch/internal/adapters/logger"
	_ "go.trai.ch/scrwatch/internal/adapters/sysproc"
	_ "go.trai.ch/scrwatch/internal/adapters/telemetry"
	_ "go.trai.ch/scrwatch/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/scrwatch/internal/app"
)
