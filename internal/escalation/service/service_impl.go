package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/veriscan/casedesk/internal/clock"
	"github.com/veriscan/casedesk/internal/config"
	"github.com/veriscan/casedesk/internal/escalation/domain"
	obsmetrics "github.com/veriscan/casedesk/internal/observability/metrics"
	orgdomain "github.com/veriscan/casedesk/internal/organization/domain"
	"github.com/veriscan/casedesk/internal/providers/telegram"
	submissiondomain "github.com/veriscan/casedesk/internal/submission/domain"
	dbpkg "github.com/veriscan/casedesk/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PageLimit bounds one escalation pass. Under sustained backlog older
// submissions win (oldest-first ordering) and the rest wait for the next
// scheduled run.
const PageLimit = 200

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Orgs     orgdomain.Repository
	Notifier telegram.Provider
	Clock    clock.Clock
	Cfg      config.Config
	Metrics  *obsmetrics.EscalationMetrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	orgs     orgdomain.Repository
	notifier telegram.Provider
	clock    clock.Clock
	chatID   string
	metrics  *obsmetrics.EscalationMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("escalation.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		orgs:     p.Orgs,
		notifier: p.Notifier,
		clock:    p.Clock,
		chatID:   p.Cfg.TelegramChatID,
		metrics:  p.Metrics,
	}
}

// Run performs one escalation pass: page of aged submissions still in
// status new, ledger-insert gate per threshold, one notification per
// newly crossed threshold. Per-row failures are tallied, never fatal,
// so the report always comes back with a nil error.
func (s *Service) Run(ctx context.Context) (domain.RunReport, error) {
	start := s.clock.Now()
	report := domain.RunReport{}
	orgNames := map[snowflake.ID]string{}

	submissions, err := s.repo.ListNewSubmissions(ctx, s.db, PageLimit)
	if err != nil {
		// Nothing fetched, nothing to tally; this is the one hard failure.
		return report, err
	}

	now := s.clock.Now()
	for _, submission := range submissions {
		if submission == nil {
			continue
		}
		report.Checked++
		elapsed := int(now.Sub(submission.CreatedAt) / time.Minute)

		for _, threshold := range domain.Thresholds() {
			if elapsed < threshold.Minutes {
				break
			}
			s.fireThreshold(ctx, submission, threshold, orgNames, &report)
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveRun(s.clock.Now().Sub(start), report.Checked, report.Sent, report.Skipped, report.Errors)
	}

	s.log.Info("escalation run finished",
		zap.Int("checked", report.Checked),
		zap.Int("sent", report.Sent),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", report.Errors),
	)
	return report, nil
}

func (s *Service) fireThreshold(
	ctx context.Context,
	submission *submissiondomain.Submission,
	threshold domain.Threshold,
	orgNames map[snowflake.ID]string,
	report *domain.RunReport,
) {
	alert := domain.AlertLog{
		ID:         s.genID.Generate(),
		OrgID:      submission.OrgID,
		EntityType: domain.EntityTypeSubmission,
		EntityID:   submission.ID,
		EventType:  threshold.EventType,
		CreatedAt:  s.clock.Now(),
	}

	if err := s.repo.InsertAlert(ctx, s.db, &alert); err != nil {
		if dbpkg.IsDuplicateKeyErr(err) {
			// Already fired on an earlier run; not a fault.
			report.Skipped++
			return
		}
		report.Errors++
		s.log.Warn("alert ledger insert failed",
			zap.String("submission_id", submission.ID.String()),
			zap.String("event_type", threshold.EventType),
			zap.Error(err),
		)
		return
	}

	text := s.alertText(ctx, submission, threshold, orgNames)
	if err := s.notifier.SendMessage(ctx, s.chatID, text); err != nil {
		report.Errors++
		s.log.Warn("alert dispatch failed",
			zap.String("submission_id", submission.ID.String()),
			zap.String("event_type", threshold.EventType),
			zap.Error(err),
		)
		return
	}
	report.Sent++
}

func (s *Service) alertText(
	ctx context.Context,
	submission *submissiondomain.Submission,
	threshold domain.Threshold,
	orgNames map[snowflake.ID]string,
) string {
	name, ok := orgNames[submission.OrgID]
	if !ok {
		name = submission.OrgID.String()
		if org, err := s.orgs.FindByID(ctx, s.db, submission.OrgID); err == nil && org != nil {
			name = org.Name
		}
		orgNames[submission.OrgID] = name
	}

	return fmt.Sprintf(
		"⚠️ Case %s (%s) has been waiting over %d minutes without review.",
		submission.ID.String(),
		name,
		threshold.Minutes,
	)
}
