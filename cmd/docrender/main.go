package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docrender/internal/config"
	"git.home.luguber.info/inful/docrender/internal/daemon"
	"git.home.luguber.info/inful/docrender/internal/diagnostics"
	"git.home.luguber.info/inful/docrender/internal/generator"
	"git.home.luguber.info/inful/docrender/internal/logfields"
	"git.home.luguber.info/inful/docrender/internal/metrics"
	"git.home.luguber.info/inful/docrender/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Input       string `help:"Input bundle directory, overrides the configured one"`
		Output      string `short:"o" help:"Output directory, overrides the configured one"`
		Incremental bool   `short:"i" help:"Skip re-rendering documents unchanged since the last run"`
		Concurrency int    `short:"j" help:"Render worker count (0 = number of CPUs)"`
	} `cmd:"" help:"Render the documentation site once"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Watch struct {
		Incremental bool `short:"i" help:"Skip re-rendering documents unchanged since the last run"`
	} `cmd:"" help:"Rebuild whenever input files change"`

	Daemon struct {
		Interval    time.Duration `short:"n" help:"Rebuild interval" default:"10m"`
		Incremental bool          `short:"i" help:"Skip re-rendering documents unchanged since the last run"`
	} `cmd:"" help:"Rebuild periodically on a fixed interval"`
}

func main() {
	kctx := kong.Parse(&CLI)

	level := slog.LevelInfo
	if CLI.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch kctx.Command() {
	case "build":
		err = runBuild(ctx)
	case "init":
		err = config.Init(CLI.Config, CLI.Init.Force)
	case "watch":
		err = runWatch(ctx)
	case "daemon":
		err = runDaemon(ctx)
	}
	if err != nil {
		slog.Error("command failed", logfields.Error(err))
		os.Exit(1)
	}
}

func runBuild(ctx context.Context) error {
	g, _, cleanup, err := newGenerator()
	if err != nil {
		return err
	}
	defer cleanup()
	g.SetIncremental(CLI.Build.Incremental).SetConcurrency(CLI.Build.Concurrency)

	report, err := g.Build(ctx)
	if err != nil {
		return err
	}
	slog.Info("build finished", slog.String("summary", report.Summary()))
	return nil
}

func runWatch(ctx context.Context) error {
	g, cfg, cleanup, err := newGenerator()
	if err != nil {
		return err
	}
	defer cleanup()
	g.SetIncremental(CLI.Watch.Incremental)

	w, err := watch.New(cfg.Input.Dir, func(ctx context.Context) error {
		_, err := g.Build(ctx)
		return err
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func runDaemon(ctx context.Context) error {
	g, _, cleanup, err := newGenerator()
	if err != nil {
		return err
	}
	defer cleanup()
	g.SetIncremental(CLI.Daemon.Incremental)

	d, err := daemon.New(CLI.Daemon.Interval, func(ctx context.Context) error {
		_, err := g.Build(ctx)
		return err
	})
	if err != nil {
		return err
	}
	return d.Run(ctx)
}

// newGenerator loads the configuration once and wires the optional metrics
// recorder and NATS diagnostics sink. The loaded config is returned so
// callers never re-load and drift from what the generator builds with. The
// returned cleanup closes the sink.
func newGenerator() (*generator.Generator, *config.Config, func(), error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, nil, nil, err
	}
	if CLI.Build.Input != "" {
		cfg.SetInputDir(CLI.Build.Input)
	}
	if CLI.Build.Output != "" {
		cfg.Output.Directory = CLI.Build.Output
	}

	g := generator.New(cfg)
	if cfg.Metrics.TextfilePath != "" {
		g.SetRecorder(metrics.NewPrometheusRecorder(prometheus.NewRegistry()))
	}

	cleanup := func() {}
	if cfg.Diagnostics.NATS.Enabled {
		sink, err := diagnostics.NewNATSSink(diagnostics.NATSSinkConfig{
			URL:     cfg.Diagnostics.NATS.URL,
			Subject: cfg.Diagnostics.NATS.Subject,
		})
		if err != nil {
			slog.Warn("NATS diagnostics unavailable, logging locally instead", logfields.Error(err))
		} else {
			g.SetSink(diagnostics.Multi{diagnostics.SlogSink{}, sink})
			cleanup = sink.Close
		}
	}
	return g, cfg, cleanup, nil
}
