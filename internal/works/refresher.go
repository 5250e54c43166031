package works

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ehsanpg/mazzehabi/pkg/logger"
)

const (
	DefaultRefreshSchedule = "@every 10m"
	refreshTimeout         = 30 * time.Second
)

var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// RefreshInterval returns the gap between two consecutive runs of
// schedule. An empty schedule means DefaultRefreshSchedule.
func RefreshInterval(schedule string) (time.Duration, error) {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}
	sched, err := scheduleParser.Parse(schedule)
	if err != nil {
		return 0, fmt.Errorf("works: invalid refresh schedule %q: %w", schedule, err)
	}
	first := sched.Next(time.Now())
	return sched.Next(first).Sub(first), nil
}

// Refresher reloads a Catalog on a cron schedule.
type Refresher struct {
	catalog *Catalog
	cron    *cron.Cron
	logger  *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewRefresher validates schedule, a five-field cron expression or a
// descriptor such as "@every 10m" or "@hourly".
func NewRefresher(catalog *Catalog, schedule string, log *slog.Logger) (*Refresher, error) {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}
	sched, err := scheduleParser.Parse(schedule)
	if err != nil {
		return nil, fmt.Errorf("works: invalid refresh schedule %q: %w", schedule, err)
	}
	if log == nil {
		log = logger.Discard()
	}

	r := &Refresher{
		catalog: catalog,
		cron:    cron.New(cron.WithParser(scheduleParser)),
		logger:  log,
	}
	r.cron.Schedule(sched, cron.FuncJob(r.run))
	return r, nil
}

// Start warms the catalog once and starts the schedule. A failed warm-up
// is logged, not returned, so the site still starts while the source is down.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	r.started = true

	if err := r.catalog.Refresh(ctx); err != nil {
		r.logger.WarnContext(ctx, "initial works load failed", slog.Any("error", err))
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running refresh, bounded by ctx.
func (r *Refresher) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = false
	r.mu.Unlock()

	select {
	case <-r.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartFunc adapts Start to a startup hook.
func (r *Refresher) StartFunc() func(context.Context) error {
	return r.Start
}

// Shutdown adapts Stop to a shutdown hook.
func (r *Refresher) Shutdown() func(context.Context) error {
	return r.Stop
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := r.catalog.Refresh(ctx); err != nil {
		r.logger.WarnContext(ctx, "works refresh failed, keeping previous list",
			slog.String("source", r.catalog.Source().String()),
			slog.Any("error", err),
		)
	}
}
