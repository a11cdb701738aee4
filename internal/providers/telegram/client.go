package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

type BotClient struct {
	token   string
	apiBase string
	client  *http.Client
}

func NewBotClient(token string) *BotClient {
	return &BotClient{
		token:   strings.TrimSpace(token),
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *BotClient) SendMessage(ctx context.Context, chatID string, text string) error {
	payload, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}

	var decoded sendMessageResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("telegram response status %d: %w", resp.StatusCode, err)
	}
	if !decoded.OK {
		msg := strings.TrimSpace(decoded.Description)
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("telegram sendMessage failed: %s", msg)
	}
	return nil
}
