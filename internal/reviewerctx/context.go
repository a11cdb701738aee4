package reviewerctx

import (
	"context"
	"strings"
)

// Reviewer identifies the dashboard user performing a case mutation.
// Authentication happens upstream; the service only carries identity.
type Reviewer struct {
	ID   string
	Role string
}

type reviewerKey struct{}

// WithReviewer stores the reviewer identity in the context.
func WithReviewer(ctx context.Context, r Reviewer) context.Context {
	r.ID = strings.TrimSpace(r.ID)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	return context.WithValue(ctx, reviewerKey{}, r)
}

// FromContext returns the reviewer identity, if present.
func FromContext(ctx context.Context) (Reviewer, bool) {
	if ctx == nil {
		return Reviewer{}, false
	}
	r, ok := ctx.Value(reviewerKey{}).(Reviewer)
	if !ok || r.ID == "" {
		return Reviewer{}, false
	}
	return r, true
}
