// Package procwatch polls the process table for the game client and reports
// whether its local web API is listening.
package procwatch

import (
	"context"
	"strconv"
	"time"

	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports"
)

// Watcher emits ServiceUp or ServiceDown on every tick, whether or not
// anything changed since the previous one.
type Watcher struct {
	table    ports.ProcessTable
	logger   ports.Logger
	name     string
	interval time.Duration
}

// New creates a Watcher for the process named in cfg.
func New(table ports.ProcessTable, logger ports.Logger, cfg domain.ProcessConfig) *Watcher {
	return &Watcher{
		table:    table,
		logger:   logger,
		name:     cfg.Name,
		interval: cfg.PollInterval,
	}
}

// Run polls until ctx is done. The first probe happens one interval after start.
func (w *Watcher) Run(ctx context.Context, emit func(domain.Event)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			emit(w.Probe(ctx))
		}
	}
}

// Probe performs a single lookup. Enumeration failures count as the service being down.
func (w *Watcher) Probe(ctx context.Context) domain.Event {
	pid, found, err := w.table.FindProcess(ctx, w.name)
	if err != nil {
		w.logger.Warn("process lookup failed: " + err.Error())
		return domain.ServiceDown{}
	}
	if !found {
		return domain.ServiceDown{}
	}

	listening, err := w.table.ListeningPorts(ctx, pid)
	if err != nil {
		w.logger.Warn("socket lookup for pid " + strconv.Itoa(int(pid)) + " failed: " + err.Error())
		return domain.ServiceDown{}
	}
	if len(listening) == 0 {
		return domain.ServiceDown{}
	}

	// The first port in enumeration order wins; the client is not known to open more than one.
	return domain.ServiceUp{Port: listening[0]}
}
