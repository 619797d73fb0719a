// Package app implements the application layer for scrwatch.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"go.trai.ch/scrwatch/internal/adapters/console"
	"go.trai.ch/scrwatch/internal/adapters/detector"
	"go.trai.ch/scrwatch/internal/adapters/telemetry"
	"go.trai.ch/scrwatch/internal/core/domain"
	"go.trai.ch/scrwatch/internal/core/ports"
	"go.trai.ch/scrwatch/internal/engine/cachewatch"
	"go.trai.ch/scrwatch/internal/engine/classifier"
	"go.trai.ch/scrwatch/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	processes    ports.ProcessTable
	reader       ports.SnapshotReader
	files        ports.FileWatcher
	tracer       ports.Tracer
	logger       ports.Logger
	stdout       io.Writer
	detect       func() detector.OutputMode
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	processes ports.ProcessTable,
	reader ports.SnapshotReader,
	files ports.FileWatcher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		processes:    processes,
		reader:       reader,
		files:        files,
		tracer:       tracer,
		logger:       log,
		stdout:       os.Stdout,
		detect:       detector.DetectEnvironment,
	}
}

// WithStdout redirects event output. This is primarily used for testing.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithDetector replaces terminal detection for the auto output mode.
// This is primarily used for testing.
func (a *App) WithDetector(detect func() detector.OutputMode) *App {
	a.detect = detect
	return a
}

// ConfigOptions select the config file and flag overrides shared by commands.
type ConfigOptions struct {
	ConfigPath string
	CacheDir   string
	Process    string
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	ConfigOptions
	OutputMode string
	Requests   bool
	Trace      bool
}

// Watch runs the pipeline until ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	cfg, err := a.loadConfig(opts.ConfigOptions)
	if err != nil {
		return err
	}

	sink, err := a.newSink(opts.OutputMode)
	if err != nil {
		return err
	}

	if opts.Trace {
		shutdown := telemetry.Install(telemetry.NewBridge(a.logger))
		defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()
	}

	deps := pipeline.Deps{
		Processes: a.processes,
		Reader:    a.reader,
		Files:     a.files,
		Tracer:    a.tracer,
		Logger:    a.logger,
		Events:    sink,
	}
	if opts.Requests {
		deps.Requests = sink
	}

	a.logger.Info(fmt.Sprintf("waiting for %s", cfg.Process.Name))
	h := pipeline.Start(ctx, *cfg, deps)
	return h.Wait()
}

// ClassifyOptions configuration for the Classify method.
type ClassifyOptions struct {
	OutputMode string
}

// Classify prints the request category of each URL.
func (a *App) Classify(ctx context.Context, urls []string, opts ClassifyOptions) error {
	if len(urls) == 0 {
		return domain.ErrNoURLs
	}

	sink, err := a.newSink(opts.OutputMode)
	if err != nil {
		return err
	}

	for _, raw := range urls {
		if err := sink.Observe(ctx, classifier.Classify(raw)); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrDeliveryFailed, "output write failed"), "reason", err.Error())
		}
	}
	return nil
}

// SnapshotOptions configuration for the Snapshot method.
type SnapshotOptions struct {
	ConfigOptions
	OutputMode string
}

// Snapshot reads the cache until two reads agree and prints every entry,
// oldest first.
func (a *App) Snapshot(ctx context.Context, opts SnapshotOptions) error {
	cfg, err := a.loadConfig(opts.ConfigOptions)
	if err != nil {
		return err
	}

	sink, err := a.newSink(opts.OutputMode)
	if err != nil {
		return err
	}

	w := cachewatch.New(a.reader, a.files, a.tracer, a.logger, cfg.Cache)
	snap, attempts, err := w.StableSnapshot(ctx)
	if err != nil {
		return err
	}

	entries := slices.Clone(snap.Entries)
	slices.SortStableFunc(entries, func(x, y domain.CacheEntry) int {
		return x.LastUsed.Compare(y.LastUsed)
	})
	for _, e := range entries {
		if err := sink.Entry(e, classifier.Classify(e.URL)); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrDeliveryFailed, "output write failed"), "reason", err.Error())
		}
	}

	a.logger.Info(fmt.Sprintf("%d entries in %s, stable after %d reads", len(entries), cfg.Cache.Dir, attempts))
	return nil
}

// loadConfig loads the config file and applies command-line overrides.
func (a *App) loadConfig(opts ConfigOptions) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.CacheDir != "" {
		cfg.Cache.Dir = opts.CacheDir
	}
	if opts.Process != "" {
		cfg.Process.Name = opts.Process
	}
	return cfg, nil
}

// jsonLogger is implemented by loggers that can switch to JSON lines.
type jsonLogger interface {
	SetJSON(enable bool)
}

// newSink resolves the output mode and switches the logger to match it.
func (a *App) newSink(flag string) (*console.Sink, error) {
	mode, err := detector.ResolveMode(a.detect(), flag)
	if err != nil {
		return nil, err
	}
	if l, ok := a.logger.(jsonLogger); ok {
		l.SetJSON(mode == detector.ModeJSON)
	}
	return console.NewSink(a.stdout, mode), nil
}
