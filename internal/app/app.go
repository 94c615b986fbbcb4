// Package app implements the application layer for ape.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rsnakamura/theape/internal/adapters/config"
	"github.com/rsnakamura/theape/internal/adapters/detector"
	"github.com/rsnakamura/theape/internal/adapters/report"
	"github.com/rsnakamura/theape/internal/adapters/telemetry"
	"github.com/rsnakamura/theape/internal/core/ports"
	"github.com/rsnakamura/theape/internal/engine/countdown"
	"github.com/rsnakamura/theape/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultHelpWidth is the wrap width used when none is given.
const DefaultHelpWidth = 80

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	catalog      ports.PluginCatalog
	logger       ports.Logger
	clock        clockwork.Clock
	out          io.Writer
	env          *detector.Environment
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, catalog ports.PluginCatalog, log ports.Logger) *App {
	return &App{
		configLoader: loader,
		catalog:      catalog,
		logger:       log,
		clock:        clockwork.NewRealClock(),
		out:          os.Stdout,
	}
}

// WithOutput sets the writer for reports and listings.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithClock sets the clock driving countdowns and event times.
// This is primarily used for testing.
func (a *App) WithClock(clock clockwork.Clock) *App {
	a.clock = clock
	return a
}

// WithEnvironment overrides terminal detection.
// This is primarily used for testing.
func (a *App) WithEnvironment(env detector.Environment) *App {
	a.env = &env
	return a
}

// LogOptions configures the logger from command line flags.
type LogOptions struct {
	Debug  bool
	Silent bool
	JSON   bool
}

// ConfigureLogging applies opts to the logger when it supports them.
// Silent wins over Debug.
func (a *App) ConfigureLogging(opts LogOptions) {
	if l, ok := a.logger.(interface{ SetLevel(slog.Level) }); ok {
		switch {
		case opts.Silent:
			l.SetLevel(slog.LevelError)
		case opts.Debug:
			l.SetLevel(slog.LevelDebug)
		default:
			l.SetLevel(slog.LevelInfo)
		}
	}
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(opts.JSON)
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// MetricsAddr serves Prometheus metrics while the run lasts. Empty disables it.
	MetricsAddr string
	// OutputMode is auto, pretty or plain.
	OutputMode string
}

// Run loads the run files, builds the run tree and invokes it. The tree is
// always closed before Run returns.
func (a *App) Run(ctx context.Context, paths []string, opts RunOptions) error {
	// 1. Load the configuration
	cfg, err := a.configLoader.Load(paths)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	mode, err := output.ParseMode(opts.OutputMode)
	if err != nil {
		return err
	}
	env := detector.DetectEnvironment()
	if a.env != nil {
		env = *a.env
	}
	mode = detector.ResolveMode(env, mode)

	runID := uuid.NewString()
	a.logger.Info(fmt.Sprintf("run %s from %s (config %s)", runID, strings.Join(cfg.Sources, ", "), cfg.Fingerprint))

	// 2. Initialize reporting
	metrics := telemetry.NewMetrics()
	provider := telemetry.NewProvider(telemetry.NewBridge(a.logger))
	defer func() {
		_ = provider.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewTraceReporter(ctx, provider.Tracer(telemetry.InstrumentationName))

	reporter := report.Multi{
		report.NewLinear(a.out, mode),
		tracer,
		metrics,
	}

	// 3. Build the run tree
	tree, err := buildTree(cfg, "ape "+runID, treeDeps{
		catalog:  a.catalog,
		reporter: reporter,
		logger:   a.logger,
		clock:    a.clock,
	})
	if err != nil {
		return zerr.Wrap(err, "failed to build run tree")
	}
	a.logger.Debug(tree.String())

	// 4. Run the tree and the metrics server concurrently
	g, gctx := errgroup.WithContext(ctx)
	serverCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()

	if opts.MetricsAddr != "" {
		server := telemetry.NewServer(opts.MetricsAddr, metrics.Registry(), a.logger)
		g.Go(func() error {
			return server.Run(serverCtx)
		})
	}

	g.Go(func() error {
		defer stopServer()

		runErr := tree.Invoke(gctx)
		tracer.Finish(runErr)

		if closeErr := tree.Close(); closeErr != nil {
			closeErr = zerr.Wrap(closeErr, "failed to close run tree")
			if runErr == nil {
				return closeErr
			}
			a.logger.Error(closeErr)
		}
		if runErr != nil {
			return zerr.Wrap(runErr, "run failed")
		}
		return nil
	})

	return g.Wait()
}

// Check loads the run files, builds the run tree and validates it without
// invoking anything. A summary of the tree is written to the output.
func (a *App) Check(_ context.Context, paths []string) error {
	cfg, err := a.configLoader.Load(paths)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	tree, err := buildTree(cfg, "ape check", treeDeps{
		catalog:  a.catalog,
		reporter: report.Nop{},
		logger:   a.logger,
		clock:    a.clock,
	})
	if err != nil {
		return zerr.Wrap(err, "failed to build run tree")
	}

	validateErr := tree.Validate()

	_, _ = fmt.Fprintf(a.out, "Fingerprint: %s\n", cfg.Fingerprint)
	_, _ = fmt.Fprintf(a.out, "Sources: %s\n", strings.Join(cfg.Sources, ", "))
	_, _ = fmt.Fprintf(a.out, "%s\n", countdown.NewTimer(cfg.Countdown, a.clock))
	_, _ = fmt.Fprintf(a.out, "%s\n", tree)
	for i, op := range cfg.Operations {
		_, _ = fmt.Fprintf(a.out, "  %d. %s\n", i+1, op.Name)
		for _, section := range op.Plugins {
			_, _ = fmt.Fprintf(a.out, "     - %s (%s)\n", section.Name, section.Plugin)
		}
	}

	closeErr := tree.Close()
	if validateErr != nil {
		return errors.Join(zerr.Wrap(validateErr, "configuration check failed"), closeErr)
	}
	if closeErr != nil {
		return zerr.Wrap(closeErr, "failed to close run tree")
	}

	a.logger.Info("configuration is valid")
	return nil
}

// List writes the name and summary of every plugin.
func (a *App) List() error {
	plugins := a.catalog.List()
	width := 0
	for _, p := range plugins {
		width = max(width, len(p.Name()))
	}
	for _, p := range plugins {
		if _, err := fmt.Fprintf(a.out, "%-*s  %s\n", width, p.Name(), p.Summary()); err != nil {
			return zerr.Wrap(err, "failed to write plugin list")
		}
	}
	return nil
}

// Fetch writes a run file containing a sample section for each named
// plugin. With no names the dummy plugin is used.
func (a *App) Fetch(names []string) error {
	if len(names) == 0 {
		names = []string{"dummy"}
	}

	var b strings.Builder
	b.WriteString(config.Sample)
	for _, name := range names {
		p, err := a.catalog.Get(name)
		if err != nil {
			return err
		}
		b.WriteString(p.Sample())
	}

	if _, err := io.WriteString(a.out, b.String()); err != nil {
		return zerr.Wrap(err, "failed to write sample")
	}
	return nil
}

// Help writes the documentation of the named plugin wrapped at width.
// An empty name lists the plugins instead.
func (a *App) Help(name string, width int) error {
	if width <= 0 {
		width = DefaultHelpWidth
	}

	var text string
	if name == "" {
		var b strings.Builder
		b.WriteString("ape runs operations built from plugins. Use \"ape help <plugin>\" for the options of a plugin.\n\nPlugins:\n")
		for _, p := range a.catalog.List() {
			fmt.Fprintf(&b, "  %s: %s\n", p.Name(), p.Summary())
		}
		text = b.String()
	} else {
		p, err := a.catalog.Get(name)
		if err != nil {
			return err
		}
		text = fmt.Sprintf("%s: %s\n\n%s\n", p.Name(), p.Summary(), p.Help())
	}

	if _, err := io.WriteString(a.out, wordwrap.String(text, width)); err != nil {
		return zerr.Wrap(err, "failed to write help")
	}
	return nil
}
