package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/veriscan/casedesk/internal/clock"
	"github.com/veriscan/casedesk/internal/config"
	"github.com/veriscan/casedesk/internal/orgcontext"
	"github.com/veriscan/casedesk/internal/reviewerctx"
	"github.com/veriscan/casedesk/internal/submission/domain"
	"github.com/veriscan/casedesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Clock clock.Clock
	Cfg   config.Config
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	clock clock.Clock
	cfg   config.Config
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("submission.service"),
		genID: p.GenID,
		repo:  p.Repo,
		clock: p.Clock,
		cfg:   p.Cfg,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSubmissionRequest) (domain.Submission, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Submission{}, domain.ErrInvalidOrganization
	}

	name := strings.TrimSpace(req.ReporterName)
	if name == "" {
		return domain.Submission{}, domain.ErrReporterRequired
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.Submission{}, domain.ErrMessageRequired
	}
	channel := strings.TrimSpace(req.Channel)
	if channel == "" {
		channel = "web"
	}

	metadata := datatypes.JSONMap{}
	for key, value := range req.Metadata {
		if key == "" {
			continue
		}
		metadata[key] = value
	}

	now := s.clock.Now()
	submission := domain.Submission{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		ReporterName:  name,
		ReporterEmail: strings.TrimSpace(req.ReporterEmail),
		ReporterPhone: strings.TrimSpace(req.ReporterPhone),
		Message:       message,
		ImageURL:      optString(req.ImageURL),
		Channel:       channel,
		Status:        domain.StatusNew,
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &submission); err != nil {
		return domain.Submission{}, err
	}

	s.log.Info("submission created",
		zap.String("submission_id", submission.ID.String()),
		zap.String("channel", submission.Channel),
	)
	return submission, nil
}

func (s *Service) SaveReview(ctx context.Context, req domain.ReviewRequest) (domain.Submission, error) {
	return s.applyReview(ctx, req, domain.StatusInReview)
}

func (s *Service) CloseCase(ctx context.Context, req domain.ReviewRequest) (domain.Submission, error) {
	// Closing without a decision fails before any store call is made.
	if strings.TrimSpace(req.Decision) == "" {
		return domain.Submission{}, domain.ErrDecisionRequired
	}
	return s.applyReview(ctx, req, domain.StatusClosed)
}

// applyReview performs the snapshot-then-update pair for SaveReview and
// CloseCase. The CaseReview insert is ordered strictly before the
// submission update; both run inside one transaction so a failed update
// never leaves a snapshot without its matching state change.
func (s *Service) applyReview(ctx context.Context, req domain.ReviewRequest, target domain.Status) (domain.Submission, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Submission{}, domain.ErrInvalidOrganization
	}

	reviewer, ok := reviewerctx.FromContext(ctx)
	if !ok {
		return domain.Submission{}, domain.ErrReviewerRequired
	}
	if !s.cfg.IsReviewerRole(reviewer.Role) {
		return domain.Submission{}, domain.ErrForbiddenRole
	}

	id, err := parseID(req.SubmissionID)
	if err != nil {
		return domain.Submission{}, err
	}

	submission, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Submission{}, err
	}
	if submission == nil {
		return domain.Submission{}, domain.ErrNotFound
	}

	if !domain.CanTransition(submission.Status, target) {
		return domain.Submission{}, domain.ErrInvalidTransition
	}

	now := s.clock.Now()
	review := domain.CaseReview{
		ID:            s.genID.Generate(),
		OrgID:         orgID,
		SubmissionID:  submission.ID,
		ReviewerID:    reviewer.ID,
		Category:      optString(req.Category),
		RiskLevel:     optString(req.RiskLevel),
		Decision:      optString(req.Decision),
		Outcome:       optString(req.Outcome),
		ReviewerNotes: optString(req.Notes),
		ReviewedAt:    now,
	}

	updated := *submission
	updated.Status = target
	updated.Category = review.Category
	updated.RiskLevel = review.RiskLevel
	updated.Decision = review.Decision
	updated.Outcome = review.Outcome
	updated.ReviewerNotes = review.ReviewerNotes
	updated.UpdatedAt = now
	if updated.ReviewedAt == nil {
		reviewedAt := now
		updated.ReviewedAt = &reviewedAt
	}
	if target == domain.StatusClosed {
		closedAt := now
		updated.ClosedAt = &closedAt
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertReview(ctx, tx, &review); err != nil {
			return err
		}
		return s.repo.UpdateReviewFields(ctx, tx, &updated)
	})
	if err != nil {
		return domain.Submission{}, err
	}

	s.log.Info("case reviewed",
		zap.String("submission_id", submission.ID.String()),
		zap.String("reviewer_id", reviewer.ID),
		zap.String("status", string(target)),
	)
	return updated, nil
}

func (s *Service) LogAction(ctx context.Context, req domain.ActionRequest) (domain.CaseAction, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.CaseAction{}, domain.ErrInvalidOrganization
	}

	reviewer, ok := reviewerctx.FromContext(ctx)
	if !ok {
		return domain.CaseAction{}, domain.ErrReviewerRequired
	}

	actionType := strings.TrimSpace(req.ActionType)
	if actionType == "" {
		return domain.CaseAction{}, domain.ErrActionTypeRequired
	}

	id, err := parseID(req.SubmissionID)
	if err != nil {
		return domain.CaseAction{}, err
	}

	submission, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.CaseAction{}, err
	}
	if submission == nil {
		return domain.CaseAction{}, domain.ErrNotFound
	}

	action := domain.CaseAction{
		ID:           s.genID.Generate(),
		OrgID:        orgID,
		SubmissionID: submission.ID,
		ReviewerID:   reviewer.ID,
		ActionType:   actionType,
		ActionNotes:  optString(req.ActionNotes),
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.InsertAction(ctx, s.db, &action); err != nil {
		return domain.CaseAction{}, err
	}
	return action, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Submission, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.Submission{}, domain.ErrInvalidOrganization
	}

	id, err := parseID(rawID)
	if err != nil {
		return domain.Submission{}, err
	}

	submission, err := s.repo.FindByID(ctx, s.db, orgID, id)
	if err != nil {
		return domain.Submission{}, err
	}
	if submission == nil {
		return domain.Submission{}, domain.ErrNotFound
	}
	return *submission, nil
}

func (s *Service) List(ctx context.Context, req domain.ListSubmissionRequest) (domain.ListSubmissionResponse, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ListSubmissionResponse{}, domain.ErrInvalidOrganization
	}

	filter := domain.ListFilter{
		Status:    domain.Status(strings.TrimSpace(req.Status)),
		Channel:   strings.TrimSpace(req.Channel),
		RiskLevel: strings.TrimSpace(req.RiskLevel),
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, orgID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListSubmissionResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(submission *domain.Submission) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        submission.ID.String(),
			CreatedAt: submission.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	submissions := make([]domain.Submission, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		submissions = append(submissions, *item)
	}

	resp := domain.ListSubmissionResponse{Submissions: submissions}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) ListReviews(ctx context.Context, rawID string) ([]domain.CaseReview, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListReviews(ctx, s.db, orgID, id)
	if err != nil {
		return nil, err
	}

	reviews := make([]domain.CaseReview, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		reviews = append(reviews, *item)
	}
	return reviews, nil
}

func (s *Service) ListActions(ctx context.Context, rawID string) ([]domain.CaseAction, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return nil, domain.ErrInvalidOrganization
	}

	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListActions(ctx, s.db, orgID, id)
	if err != nil {
		return nil, err
	}

	actions := make([]domain.CaseAction, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		actions = append(actions, *item)
	}
	return actions, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func optString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
