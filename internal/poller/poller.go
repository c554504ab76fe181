// Package poller reloads the analysis dataset on an interval.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/pl-spend-service/internal/logging"
	"github.com/preston-bernstein/pl-spend-service/internal/metrics"
)

const (
	defaultInterval = 5 * time.Minute
	stageReload     = "reload"
)

// Loader loads a dataset file. Implementations skip work when the file is unchanged.
type Loader interface {
	LoadFile(ctx context.Context, path string) error
}

// Poller reloads a dataset file on an interval.
type Poller struct {
	loader   Loader
	path     string
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the reload loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether a load has succeeded and reloads are not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(loader Loader, path string, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		loader:   loader,
		path:     path,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start loads immediately, then reloads until the context is cancelled or Stop is called.
// Later calls are no-ops.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return
	}
	p.started = true
	go p.loop(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logging.Info(p.logger, "reloader started",
		logging.FieldFile, p.path,
		slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()),
	)
	defer logging.Info(p.logger, "reloader stopped")

	p.reloadOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-ticker.C:
			p.reloadOnce(ctx)
		}
	}
}

// Stop halts the reload loop. It never blocks and always returns nil.
func (p *Poller) Stop(context.Context) error {
	p.stopOnce.Do(func() { close(p.done) })
	return nil
}

func (p *Poller) reloadOnce(ctx context.Context) {
	start := p.now()
	p.update(func(s *Status) { s.LastAttempt = start })

	err := p.loader.LoadFile(ctx, p.path)
	elapsed := time.Since(start)
	p.metrics.RecordStage(stageReload, elapsed, err)

	if err != nil {
		logging.Error(p.logger, "dataset reload failed", err,
			logging.FieldFile, p.path,
			logging.FieldDurationMS, elapsed.Milliseconds(),
		)
		p.update(func(s *Status) {
			s.ConsecutiveFailures++
			s.LastError = err.Error()
		})
		return
	}

	p.update(func(s *Status) {
		s.ConsecutiveFailures = 0
		s.LastError = ""
		s.LastSuccess = start
	})
	logging.Info(p.logger, "dataset reload checked",
		logging.FieldFile, p.path,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) update(fn func(*Status)) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	fn(&p.status)
}

// Status returns a snapshot of the reloader's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
