package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/veriscan/casedesk/internal/clock"
	escalationdomain "github.com/veriscan/casedesk/internal/escalation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

type Params struct {
	fx.In

	Log           *zap.Logger
	EscalationSvc escalationdomain.Service
	Clock         clock.Clock
	Config        Config `optional:"true"`
}

type Scheduler struct {
	log           *zap.Logger
	cfg           Config
	clock         clock.Clock
	escalationSvc escalationdomain.Service
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.EscalationSvc == nil || p.Clock == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:           p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:           p.Config.withDefaults(),
		clock:         p.Clock,
		escalationSvc: p.EscalationSvc,
	}, nil
}

// RunOnce executes one escalation pass under the configured timeout.
func (s *Scheduler) RunOnce(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, s.cfg.RunTimeout)
	defer cancel()

	start := s.clock.Now()
	report, err := s.escalationSvc.Run(ctx)
	if err != nil {
		return err
	}
	s.log.Info("escalation pass completed",
		zap.Duration("elapsed", s.clock.Now().Sub(start)),
		zap.Int("checked", report.Checked),
		zap.Int("sent", report.Sent),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", report.Errors),
	)
	return nil
}

// RunForever loops RunOnce on the configured interval until ctx is done.
// The first pass fires immediately so a restart does not wait a full
// interval to catch up on overdue cases.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
