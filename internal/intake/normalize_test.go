package intake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veriscan/casedesk/internal/submission/domain"
)

func TestNormalizeAliases(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
		want    domain.CreateSubmissionRequest
	}{
		{
			name: "canonical names",
			payload: map[string]any{
				"reporter_name":  "Jane",
				"reporter_email": "jane@example.com",
				"message":        "got a weird SMS",
				"channel":        "web",
			},
			want: domain.CreateSubmissionRequest{
				ReporterName:  "Jane",
				ReporterEmail: "jane@example.com",
				Message:       "got a weird SMS",
				Channel:       "web",
			},
		},
		{
			name: "legacy widget names",
			payload: map[string]any{
				"full_name": "Bob",
				"text":      "is this site legit?",
				"photo":     "https://cdn.example.com/x.png",
				"source":    "whatsapp",
			},
			want: domain.CreateSubmissionRequest{
				ReporterName: "Bob",
				Message:      "is this site legit?",
				ImageURL:     "https://cdn.example.com/x.png",
				Channel:      "whatsapp",
			},
		},
		{
			name: "numeric phone",
			payload: map[string]any{
				"name":         "Ana",
				"description":  "fake bank call",
				"phone_number": float64(31612345678),
			},
			want: domain.CreateSubmissionRequest{
				ReporterName:  "Ana",
				Message:       "fake bank call",
				ReporterPhone: "31612345678",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.payload)
			require.NoError(t, err)
			assert.Equal(t, tc.want.ReporterName, got.ReporterName)
			assert.Equal(t, tc.want.ReporterEmail, got.ReporterEmail)
			assert.Equal(t, tc.want.ReporterPhone, got.ReporterPhone)
			assert.Equal(t, tc.want.Message, got.Message)
			assert.Equal(t, tc.want.ImageURL, got.ImageURL)
			assert.Equal(t, tc.want.Channel, got.Channel)
		})
	}
}

func TestNormalizeKeepsUnknownKeysAsMetadata(t *testing.T) {
	got, err := Normalize(map[string]any{
		"name":       "Jane",
		"message":    "scam?",
		"utm_source": "newsletter",
		"widget_ver": "2.3",
	})
	require.NoError(t, err)
	require.NotNil(t, got.Metadata)
	assert.Equal(t, "newsletter", got.Metadata["utm_source"])
	assert.Equal(t, "2.3", got.Metadata["widget_ver"])
	assert.NotContains(t, got.Metadata, "name")
	assert.NotContains(t, got.Metadata, "message")
}

func TestNormalizeRequiredFields(t *testing.T) {
	_, err := Normalize(map[string]any{"message": "no name"})
	if !errors.Is(err, domain.ErrReporterRequired) {
		t.Fatalf("expected reporter_required, got %v", err)
	}

	_, err = Normalize(map[string]any{"name": "Jane"})
	if !errors.Is(err, domain.ErrMessageRequired) {
		t.Fatalf("expected message_required, got %v", err)
	}

	_, err = Normalize(nil)
	if !errors.Is(err, domain.ErrMessageRequired) {
		t.Fatalf("expected message_required for nil payload, got %v", err)
	}
}
