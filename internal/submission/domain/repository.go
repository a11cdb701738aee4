package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/veriscan/casedesk/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, submission *Submission) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Submission, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter, page pagination.Pagination) ([]*Submission, error)

	// UpdateReviewFields overwrites the mutable review fields of a
	// submission. Origin fields are never touched.
	UpdateReviewFields(ctx context.Context, db *gorm.DB, submission *Submission) error

	InsertReview(ctx context.Context, db *gorm.DB, review *CaseReview) error
	ListReviews(ctx context.Context, db *gorm.DB, orgID, submissionID snowflake.ID) ([]*CaseReview, error)

	InsertAction(ctx context.Context, db *gorm.DB, action *CaseAction) error
	ListActions(ctx context.Context, db *gorm.DB, orgID, submissionID snowflake.ID) ([]*CaseAction, error)
}

type ListFilter struct {
	Status    Status
	Channel   string
	RiskLevel string
}
