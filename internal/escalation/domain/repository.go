package domain

import (
	"context"

	submissiondomain "github.com/veriscan/casedesk/internal/submission/domain"
	"gorm.io/gorm"
)

type Repository interface {
	// InsertAlert writes one ledger row. Callers distinguish a duplicate
	// key error (already fired) from other failures via db.IsDuplicateKeyErr.
	InsertAlert(ctx context.Context, db *gorm.DB, alert *AlertLog) error

	// ListNewSubmissions returns up to limit submissions still in status
	// new, oldest first, across all organizations.
	ListNewSubmissions(ctx context.Context, db *gorm.DB, limit int) ([]*submissiondomain.Submission, error)
}

type Service interface {
	Run(ctx context.Context) (RunReport, error)
}
