package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Watcher is one poll cycle plus its failure handling.
type Watcher interface {
	Cycle(ctx context.Context) error
	Report(ctx context.Context, err error)
}

// Poller runs watcher cycles serially with a fixed delay between the end of one cycle and the start of the next.
type Poller struct {
	watcher  Watcher
	schedule cron.Schedule
	logger   *logrus.Entry
	now      func() time.Time
	wait     func(ctx context.Context, d time.Duration) error
}

func NewPoller(watcher Watcher, interval time.Duration, logger *logrus.Entry) *Poller {
	return &Poller{
		watcher:  watcher,
		schedule: cron.Every(interval), // ConstantDelaySchedule, rounded to whole seconds
		logger:   logger,
		now:      time.Now,
		wait:     sleepContext,
	}
}

// Run polls until ctx is cancelled. No cycle failure stops the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Starting homework status poller...")
	for {
		p.runCycle(ctx)

		now := p.now()
		next := p.schedule.Next(now)
		p.logger.WithField("next_run", next.Format(time.RFC3339)).Debug("Poller sleeping")
		if err := p.wait(ctx, next.Sub(now)); err != nil {
			p.logger.Info("Homework status poller stopped.")
			return nil
		}
	}
}

// runCycle is the loop's error boundary: errors and panics are handed to Report.
func (p *Poller) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			p.watcher.Report(ctx, fmt.Errorf("poll cycle panicked: %v", r))
		}
	}()

	if err := p.watcher.Cycle(ctx); err != nil {
		p.watcher.Report(ctx, err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
