package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sirwalterjones/sessionremind/internal/dispatch"
	"github.com/sirwalterjones/sessionremind/pkg/logger"
	"github.com/sirwalterjones/sessionremind/pkg/metrics"
)

type DispatcherConfig struct {
	PollInterval time.Duration
}

// Dispatcher is the periodic trigger for the dispatch cycle. One
// invocation is active at a time per lease; instances that lose the
// acquire race skip the tick.
type Dispatcher struct {
	cycle   *dispatch.Cycle
	lease   *Lease
	config  DispatcherConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewDispatcher(cycle *dispatch.Cycle, lease *Lease, config DispatcherConfig, lgr *logger.Logger, m *metrics.Metrics) *Dispatcher {
	if config.PollInterval <= 0 {
		panic("PollInterval must be greater than 0")
	}
	return &Dispatcher{
		cycle:   cycle,
		lease:   lease,
		config:  config,
		logger:  lgr,
		metrics: m,
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.config.PollInterval)
	defer ticker.Stop()

	d.logger.Info("starting dispatcher", "interval", d.config.PollInterval.String())

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("shutting down dispatcher")
			return
		case <-ticker.C:
			if _, err := d.RunOnce(ctx); err != nil {
				d.logger.Error(err, "dispatch cycle failed")
			}
		}
	}
}

// RunOnce executes a single lease-guarded cycle. It is also the body of
// the HTTP trigger surface, so an external cron can drive it directly.
func (d *Dispatcher) RunOnce(ctx context.Context) (*dispatch.Result, error) {
	if d.lease != nil {
		ok, err := d.lease.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			d.logger.Info("dispatch lease held elsewhere, skipping cycle")
			d.metrics.CyclesSkippedLocked.Inc()
			return &dispatch.Result{Reason: "another dispatch cycle is in progress"}, nil
		}
		defer func() {
			if err := d.lease.Release(ctx); err != nil {
				d.logger.Error(err, "failed to release dispatch lease")
			}
		}()
	}

	timer := prometheus.NewTimer(d.metrics.CycleLatency)
	defer timer.ObserveDuration()

	res, err := d.cycle.Run(ctx)
	if err != nil {
		return nil, err
	}

	d.metrics.DueSetSize.Set(float64(res.DueTotal))
	d.metrics.MessagesSent.Add(float64(res.SentCount))
	d.metrics.MessagesFailed.Add(float64(res.FailedCount))
	if res.Reason != "" {
		d.metrics.CyclesSkippedEmbargo.Inc()
	}

	d.logger.Info("dispatch cycle completed",
		"due_total", res.DueTotal,
		"sent", res.SentCount,
		"failed", res.FailedCount,
		"skipped", res.SkippedCount)

	return res, nil
}
