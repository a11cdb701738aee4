package telegram

import "context"

// Provider sends a plain-text message to a chat. Failures surface to the
// caller; the escalation run tallies them instead of retrying.
type Provider interface {
	SendMessage(ctx context.Context, chatID string, text string) error
}

type NoOpProvider struct{}

func (p *NoOpProvider) SendMessage(ctx context.Context, chatID string, text string) error {
	return nil
}
