// Package reminders delivers upcoming-appointment reminders on a fixed cadence.
package reminders

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/caredesk/clinic-portal/internal/core"
	"github.com/caredesk/clinic-portal/internal/domain/model"
)

// Notifier delivers a single reminder. Implementations decide the channel
// (email, SMS, log).
type Notifier interface {
	Send(ctx context.Context, appt *model.Appointment) error
}

// LogNotifier writes reminders to the log. Used when no real channel is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Send(ctx context.Context, appt *model.Appointment) error {
	n.Logger.InfoContext(ctx, "appointment reminder",
		"appointment_id", appt.ID,
		"patient_id", appt.PatientID,
		"scheduled_at", appt.ScheduledAt,
	)
	return nil
}

type RunnerOptions struct {
	Appointments core.AppointmentRepository
	Notifier     Notifier
	Logger       *slog.Logger
	Interval     time.Duration // default 5m
	Lookahead    time.Duration // default 24h
	Concurrency  int           // default 4
}

// Runner periodically finds appointments starting inside the lookahead
// window and fans reminder delivery out across a bounded worker group.
type Runner struct {
	appointments core.AppointmentRepository
	notifier     Notifier
	log          *slog.Logger
	interval     time.Duration
	lookahead    time.Duration
	concurrency  int
	now          func() time.Time
}

func NewRunner(opts RunnerOptions) *Runner {
	r := &Runner{
		appointments: opts.Appointments,
		notifier:     opts.Notifier,
		log:          opts.Logger,
		interval:     opts.Interval,
		lookahead:    opts.Lookahead,
		concurrency:  opts.Concurrency,
		now:          time.Now,
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	if r.interval <= 0 {
		r.interval = 5 * time.Minute
	}
	if r.lookahead <= 0 {
		r.lookahead = 24 * time.Hour
	}
	if r.concurrency <= 0 {
		r.concurrency = 4
	}
	return r
}

// Run blocks until the context is cancelled, sweeping once per interval.
// A failed sweep is logged and retried on the next tick.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.Sweep(ctx); err != nil && ctx.Err() == nil {
			r.log.ErrorContext(ctx, "reminder sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Sweep delivers reminders for appointments starting inside the lookahead
// window. One failed delivery does not stop the others; the first error is
// returned after the group drains.
func (r *Runner) Sweep(ctx context.Context) error {
	now := r.now().UTC()
	upcoming, err := r.appointments.FindUpcoming(ctx, now, now.Add(r.lookahead))
	if err != nil {
		return fmt.Errorf("find upcoming appointments: %w", err)
	}
	if len(upcoming) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	var (
		mu       sync.Mutex
		firstErr error
	)
	for _, appt := range upcoming {
		g.Go(func() error {
			if sendErr := r.notifier.Send(gctx, appt); sendErr != nil {
				r.log.WarnContext(gctx, "reminder delivery failed",
					"appointment_id", appt.ID, "error", sendErr)
				mu.Lock()
				if firstErr == nil {
					firstErr = sendErr
				}
				mu.Unlock()
			}
			return nil
		})
	}
	if waitErr := g.Wait(); waitErr != nil {
		return waitErr
	}
	return firstErr
}
