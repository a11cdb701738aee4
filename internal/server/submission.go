package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/veriscan/casedesk/internal/intake"
	submissiondomain "github.com/veriscan/casedesk/internal/submission/domain"
	"github.com/veriscan/casedesk/pkg/db/pagination"
)

// CreateSubmission accepts a raw intake payload. Partner forms disagree on
// field names, so the body is normalized rather than bound to a struct.
func (s *Server) CreateSubmission(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req, err := intake.Normalize(payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.submissionSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListSubmissions(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status    string `form:"status"`
		Channel   string `form:"channel"`
		RiskLevel string `form:"risk_level"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.submissionSvc.List(c.Request.Context(), submissiondomain.ListSubmissionRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Status:    strings.TrimSpace(query.Status),
		Channel:   strings.TrimSpace(query.Channel),
		RiskLevel: strings.TrimSpace(query.RiskLevel),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSubmissionByID(c *gin.Context) {
	resp, err := s.submissionSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type reviewRequest struct {
	Category  string `json:"category"`
	RiskLevel string `json:"risk_level"`
	Decision  string `json:"decision"`
	Outcome   string `json:"outcome"`
	Notes     string `json:"notes"`
}

func (r reviewRequest) toDomain(id string) submissiondomain.ReviewRequest {
	return submissiondomain.ReviewRequest{
		SubmissionID: id,
		Category:     strings.TrimSpace(r.Category),
		RiskLevel:    strings.TrimSpace(r.RiskLevel),
		Decision:     strings.TrimSpace(r.Decision),
		Outcome:      strings.TrimSpace(r.Outcome),
		Notes:        strings.TrimSpace(r.Notes),
	}
}

func (s *Server) SaveReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.submissionSvc.SaveReview(c.Request.Context(), req.toDomain(strings.TrimSpace(c.Param("id"))))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CloseCase(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.submissionSvc.CloseCase(c.Request.Context(), req.toDomain(strings.TrimSpace(c.Param("id"))))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type actionRequest struct {
	ActionType  string `json:"action_type"`
	ActionNotes string `json:"action_notes"`
}

func (s *Server) LogAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.submissionSvc.LogAction(c.Request.Context(), submissiondomain.ActionRequest{
		SubmissionID: strings.TrimSpace(c.Param("id")),
		ActionType:   strings.TrimSpace(req.ActionType),
		ActionNotes:  strings.TrimSpace(req.ActionNotes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListCaseReviews(c *gin.Context) {
	resp, err := s.submissionSvc.ListReviews(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCaseActions(c *gin.Context) {
	resp, err := s.submissionSvc.ListActions(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
