package server

import (
	"crypto/subtle"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/veriscan/casedesk/internal/orgcontext"
	"github.com/veriscan/casedesk/internal/reviewerctx"
)

const (
	HeaderOrg          = "X-Org-ID"
	HeaderReviewer     = "X-Reviewer-ID"
	HeaderReviewerRole = "X-Reviewer-Role"
	HeaderCronSecret   = "X-Cron-Secret"
)

// OrgContext resolves the tenant from the request header, falling back to
// the configured default organization for single-tenant installs.
func (s *Server) OrgContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderOrg))
		orgID := s.cfg.DefaultOrgID
		if raw != "" {
			parsed, err := snowflake.ParseString(raw)
			if err != nil || parsed == 0 {
				AbortWithError(c, newValidationError("org_id", "invalid_organization", "invalid organization"))
				return
			}
			orgID = int64(parsed)
		}

		ctx := orgcontext.WithOrgID(c.Request.Context(), orgID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ReviewerContext attaches the acting reviewer's identity. Routes behind
// it still rely on the service layer for role checks; missing identity is
// rejected here so handlers never see an anonymous mutation.
func (s *Server) ReviewerContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderReviewer))
		if id == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		role := strings.TrimSpace(c.GetHeader(HeaderReviewerRole))

		ctx := reviewerctx.WithReviewer(c.Request.Context(), reviewerctx.Reviewer{ID: id, Role: role})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CronSecret guards internal trigger endpoints. Comparison is constant
// time so the secret cannot be probed byte by byte.
func (s *Server) CronSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := s.cfg.CronSecret
		provided := c.GetHeader(HeaderCronSecret)
		if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}
