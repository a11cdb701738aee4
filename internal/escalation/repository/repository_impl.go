package repository

import (
	"context"

	"github.com/veriscan/casedesk/internal/escalation/domain"
	submissiondomain "github.com/veriscan/casedesk/internal/submission/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertAlert(ctx context.Context, db *gorm.DB, alert *domain.AlertLog) error {
	return db.WithContext(ctx).Create(alert).Error
}

func (r *repo) ListNewSubmissions(ctx context.Context, db *gorm.DB, limit int) ([]*submissiondomain.Submission, error) {
	var submissions []*submissiondomain.Submission
	err := db.WithContext(ctx).
		Model(&submissiondomain.Submission{}).
		Where("status = ?", submissiondomain.StatusNew).
		Order("created_at asc, id asc").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
