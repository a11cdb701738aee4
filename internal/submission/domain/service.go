package domain

import (
	"context"
	"errors"

	"github.com/veriscan/casedesk/pkg/db/pagination"
)

type CreateSubmissionRequest struct {
	ReporterName  string
	ReporterEmail string
	ReporterPhone string
	Message       string
	ImageURL      string
	Channel       string
	Metadata      map[string]any
}

// ReviewRequest carries the classification fields a reviewer supplies.
// Every field is optional on SaveReview; CloseCase requires Decision.
type ReviewRequest struct {
	SubmissionID string
	Category     string
	RiskLevel    string
	Decision     string
	Outcome      string
	Notes        string
}

type ActionRequest struct {
	SubmissionID string
	ActionType   string
	ActionNotes  string
}

type ListSubmissionRequest struct {
	PageToken string
	PageSize  int
	Status    string
	Channel   string
	RiskLevel string
}

type ListSubmissionResponse struct {
	pagination.PageInfo
	Submissions []Submission `json:"submissions"`
}

type Service interface {
	Create(ctx context.Context, req CreateSubmissionRequest) (Submission, error)
	SaveReview(ctx context.Context, req ReviewRequest) (Submission, error)
	CloseCase(ctx context.Context, req ReviewRequest) (Submission, error)
	LogAction(ctx context.Context, req ActionRequest) (CaseAction, error)

	GetByID(ctx context.Context, id string) (Submission, error)
	List(ctx context.Context, req ListSubmissionRequest) (ListSubmissionResponse, error)
	ListReviews(ctx context.Context, submissionID string) ([]CaseReview, error)
	ListActions(ctx context.Context, submissionID string) ([]CaseAction, error)
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidID           = errors.New("invalid_id")
	ErrNotFound            = errors.New("not_found")
	ErrReporterRequired    = errors.New("reporter_required")
	ErrMessageRequired     = errors.New("message_required")
	ErrDecisionRequired    = errors.New("decision_required")
	ErrActionTypeRequired  = errors.New("action_type_required")
	ErrReviewerRequired    = errors.New("reviewer_required")
	ErrForbiddenRole       = errors.New("forbidden_role")
	ErrInvalidTransition   = errors.New("invalid_transition")
)
