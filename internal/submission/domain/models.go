package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusNew      Status = "new"
	StatusInReview Status = "in_review"
	StatusClosed   Status = "closed"
)

// CanTransition reports whether a case may move from one status to another.
// The progression is one-way; closing an already-closed case is allowed so
// a reviewer can re-stamp closed_at, but a closed case never re-opens.
func CanTransition(from, to Status) bool {
	switch to {
	case StatusInReview:
		return from == StatusNew || from == StatusInReview
	case StatusClosed:
		return from == StatusNew || from == StatusInReview || from == StatusClosed
	default:
		return false
	}
}

// Submission is the persisted record of a reported concern. Origin fields
// are immutable after intake; review fields change only through
// SaveReview/CloseCase. Rows are never deleted, closure is a status change.
type Submission struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID snowflake.ID `gorm:"not null;index" json:"organization_id"`

	ReporterName  string  `gorm:"not null" json:"reporter_name"`
	ReporterEmail string  `json:"reporter_email,omitempty"`
	ReporterPhone string  `json:"reporter_phone,omitempty"`
	Message       string  `gorm:"not null" json:"message"`
	ImageURL      *string `json:"image_url,omitempty"`
	Channel       string  `gorm:"not null;default:web" json:"channel"`

	Status        Status  `gorm:"not null;index;default:new" json:"status"`
	Category      *string `json:"category,omitempty"`
	RiskLevel     *string `json:"risk_level,omitempty"`
	Decision      *string `json:"decision,omitempty"`
	Outcome       *string `json:"outcome,omitempty"`
	ReviewerNotes *string `json:"reviewer_notes,omitempty"`

	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null" json:"updated_at"`
}

// CaseReview is one reviewer's assessment at a point in time. Immutable
// once inserted; a submission accumulates one row per save or close.
type CaseReview struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID `gorm:"not null;index" json:"organization_id"`
	SubmissionID snowflake.ID `gorm:"not null;index" json:"submission_id"`
	ReviewerID   string       `gorm:"not null" json:"reviewer_id"`

	Category      *string `json:"category,omitempty"`
	RiskLevel     *string `json:"risk_level,omitempty"`
	Decision      *string `json:"decision,omitempty"`
	Outcome       *string `json:"outcome,omitempty"`
	ReviewerNotes *string `json:"reviewer_notes,omitempty"`

	ReviewedAt time.Time `gorm:"not null" json:"reviewed_at"`
}

// CaseAction is a discrete follow-up taken on a case (family notified,
// police reported, ...). Append-only, independent of the classification.
type CaseAction struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID `gorm:"not null;index" json:"organization_id"`
	SubmissionID snowflake.ID `gorm:"not null;index" json:"submission_id"`
	ReviewerID   string       `gorm:"not null" json:"reviewer_id"`

	ActionType  string            `gorm:"not null" json:"action_type"`
	ActionNotes *string           `json:"action_notes,omitempty"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
}
