package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/veriscan/casedesk/internal/submission/domain"
	"github.com/veriscan/casedesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, submission *domain.Submission) error {
	return db.WithContext(ctx).Create(submission).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Submission, error) {
	var submission domain.Submission
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Take(&submission).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Submission, error) {
	var submissions []*domain.Submission
	stmt := db.WithContext(ctx).
		Model(&domain.Submission{}).
		Where("org_id = ?", orgID)
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Channel != "" {
		stmt = stmt.Where("channel = ?", filter.Channel)
	}
	if filter.RiskLevel != "" {
		stmt = stmt.Where("risk_level = ?", filter.RiskLevel)
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err == nil && cursor != nil {
			stmt = stmt.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
				cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
		}
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *repo) UpdateReviewFields(ctx context.Context, db *gorm.DB, submission *domain.Submission) error {
	return db.WithContext(ctx).
		Model(&domain.Submission{}).
		Where("org_id = ? AND id = ?", submission.OrgID, submission.ID).
		Updates(map[string]any{
			"status":         submission.Status,
			"category":       submission.Category,
			"risk_level":     submission.RiskLevel,
			"decision":       submission.Decision,
			"outcome":        submission.Outcome,
			"reviewer_notes": submission.ReviewerNotes,
			"reviewed_at":    submission.ReviewedAt,
			"closed_at":      submission.ClosedAt,
			"updated_at":     submission.UpdatedAt,
		}).Error
}

func (r *repo) InsertReview(ctx context.Context, db *gorm.DB, review *domain.CaseReview) error {
	return db.WithContext(ctx).Create(review).Error
}

func (r *repo) ListReviews(ctx context.Context, db *gorm.DB, orgID, submissionID snowflake.ID) ([]*domain.CaseReview, error) {
	var reviews []*domain.CaseReview
	err := db.WithContext(ctx).
		Where("org_id = ? AND submission_id = ?", orgID, submissionID).
		Order("reviewed_at asc, id asc").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repo) InsertAction(ctx context.Context, db *gorm.DB, action *domain.CaseAction) error {
	return db.WithContext(ctx).Create(action).Error
}

func (r *repo) ListActions(ctx context.Context, db *gorm.DB, orgID, submissionID snowflake.ID) ([]*domain.CaseAction, error) {
	var actions []*domain.CaseAction
	err := db.WithContext(ctx).
		Where("org_id = ? AND submission_id = ?", orgID, submissionID).
		Order("created_at asc, id asc").
		Find(&actions).Error
	if err != nil {
		return nil, err
	}
	return actions, nil
}
