package audit

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/namuve/frontdesk/internal/domain/ticket"
	"github.com/namuve/frontdesk/internal/shared/config"
	"github.com/namuve/frontdesk/internal/shared/goroutine"
	"github.com/namuve/frontdesk/internal/shared/logger"
	"github.com/namuve/frontdesk/internal/shared/metrics"
)

// Fanout delivers every entry to each sink in its own background task.
// Delivery is retried with exponential backoff up to MaxAttempts; an entry
// that still fails is dead-lettered to the error log and a counter.
type Fanout struct {
	sinks          []Sink
	group          *goroutine.Group
	maxAttempts    uint
	initial        time.Duration
	maxInterval    time.Duration
	attemptTimeout time.Duration
	logger         logger.Interface
	metrics        *metrics.Metrics
}

func NewFanout(cfg *config.AuditConfig, log logger.Interface, m *metrics.Metrics, sinks ...Sink) *Fanout {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 1
	}
	return &Fanout{
		sinks:          sinks,
		group:          goroutine.NewGroup(log),
		maxAttempts:    maxAttempts,
		initial:        cfg.GetInitialInterval(),
		maxInterval:    cfg.GetMaxInterval(),
		attemptTimeout: cfg.GetAttemptTimeout(),
		logger:         log,
		metrics:        m,
	}
}

// Emit schedules delivery and returns immediately. Cancelling ctx does not
// stop delivery.
func (f *Fanout) Emit(ctx context.Context, entry ticket.AuditEntry) {
	detached := context.WithoutCancel(ctx)
	for _, sink := range f.sinks {
		sink := sink
		f.group.Go("audit-"+sink.Name(), func() {
			f.deliver(detached, sink, entry)
		})
	}
}

// Wait blocks until scheduled deliveries have finished or ctx is done.
func (f *Fanout) Wait(ctx context.Context) error {
	return f.group.Wait(ctx)
}

func (f *Fanout) deliver(ctx context.Context, sink Sink, entry ticket.AuditEntry) {
	b := backoff.NewExponentialBackOff()
	if f.initial > 0 {
		b.InitialInterval = f.initial
	}
	if f.maxInterval > 0 {
		b.MaxInterval = f.maxInterval
	}

	var attempts uint
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		actx := ctx
		if f.attemptTimeout > 0 {
			var cancel context.CancelFunc
			actx, cancel = context.WithTimeout(ctx, f.attemptTimeout)
			defer cancel()
		}
		return struct{}{}, sink.Deliver(actx, entry)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(f.maxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			f.logger.Warnw("audit delivery failed, retrying",
				"sink", sink.Name(),
				"attempt", attempts,
				"retry_in", next,
				"error", err,
			)
		}),
	)
	if err != nil {
		f.logger.Errorw("audit event dead-lettered",
			"sink", sink.Name(),
			"attempts", attempts,
			"error", err,
			"action", entry.Action,
			"status", entry.Status.String(),
			"apartment", entry.Apartment,
			"business_id", entry.BusinessID,
			"username", entry.Username,
			"request_id", entry.RequestID,
		)
		f.metrics.IncAuditDeadLettered(sink.Name())
		return
	}
	f.metrics.IncAuditDelivered(sink.Name())
}
