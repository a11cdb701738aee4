// Package intake maps heterogeneous external form payloads onto the fixed
// submission schema. Partner forms and older widget versions disagree on
// field names, so the aliasing lives here and nowhere else.
package intake

import (
	"fmt"
	"strings"

	"github.com/veriscan/casedesk/internal/submission/domain"
)

var fieldAliases = map[string][]string{
	"reporter_name":  {"reporter_name", "name", "full_name", "sender_name"},
	"reporter_email": {"reporter_email", "email", "contact_email"},
	"reporter_phone": {"reporter_phone", "phone", "phone_number", "msisdn"},
	"message":        {"message", "text", "content", "description"},
	"image_url":      {"image_url", "image", "photo", "screenshot_url"},
	"channel":        {"channel", "source", "origin"},
}

// Normalize maps a raw intake payload onto CreateSubmissionRequest. The
// first matching alias wins; unrecognized keys are preserved as metadata so
// nothing a partner sends is silently dropped.
func Normalize(payload map[string]any) (domain.CreateSubmissionRequest, error) {
	if payload == nil {
		return domain.CreateSubmissionRequest{}, domain.ErrMessageRequired
	}

	consumed := map[string]bool{}
	pick := func(canonical string) string {
		for _, alias := range fieldAliases[canonical] {
			value, ok := payload[alias]
			if !ok {
				continue
			}
			consumed[alias] = true
			if s := asString(value); s != "" {
				return s
			}
		}
		return ""
	}

	req := domain.CreateSubmissionRequest{
		ReporterName:  pick("reporter_name"),
		ReporterEmail: pick("reporter_email"),
		ReporterPhone: pick("reporter_phone"),
		Message:       pick("message"),
		ImageURL:      pick("image_url"),
		Channel:       pick("channel"),
	}

	if req.ReporterName == "" {
		return domain.CreateSubmissionRequest{}, domain.ErrReporterRequired
	}
	if req.Message == "" {
		return domain.CreateSubmissionRequest{}, domain.ErrMessageRequired
	}

	metadata := map[string]any{}
	for key, value := range payload {
		if consumed[key] {
			continue
		}
		metadata[key] = value
	}
	if len(metadata) > 0 {
		req.Metadata = metadata
	}

	return req, nil
}

func asString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	case float64:
		// JSON numbers arrive as float64; phone fields sometimes do.
		return strings.TrimSpace(strings.TrimSuffix(fmt.Sprintf("%.0f", typed), ".0"))
	default:
		return ""
	}
}
