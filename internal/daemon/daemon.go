// Package daemon runs periodic site rebuilds on a fixed interval. It is the
// mode used on hosts where the input tree is synced from elsewhere and no
// file events fire.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docrender/internal/logfields"
)

// Build is the rebuild function scheduled by the daemon.
type Build func(ctx context.Context) error

// Daemon owns the scheduler and the rebuild task.
type Daemon struct {
	scheduler gocron.Scheduler
	build     Build
	interval  time.Duration
}

// New creates a daemon that rebuilds every interval.
func New(interval time.Duration, build Build) (*Daemon, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("rebuild interval must be positive, got %s", interval)
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Daemon{scheduler: s, build: build, interval: interval}, nil
}

// Run builds once immediately, then on every tick until ctx is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.build(ctx); err != nil {
		slog.Error("initial scheduled build failed", logfields.Error(err))
	}

	_, err := d.scheduler.NewJob(
		gocron.DurationJob(d.interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			if err := d.build(ctx); err != nil {
				slog.Error("scheduled build failed", logfields.Error(err))
			}
		}),
		gocron.WithName("site-rebuild"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule rebuild job: %w", err)
	}

	slog.Info("daemon started", slog.Duration("interval", d.interval))
	d.scheduler.Start()
	<-ctx.Done()

	slog.Info("daemon stopping")
	if err := d.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shut down scheduler: %w", err)
	}
	return nil
}
