package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
	}))
	defer server.Close()

	client := NewBotClient("test-token")
	client.apiBase = server.URL

	if err := client.SendMessage(context.Background(), "-100123", "case overdue"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotBody.ChatID != "-100123" || gotBody.Text != "case overdue" {
		t.Fatalf("unexpected body %+v", gotBody)
	}
}

func TestSendMessageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(sendMessageResponse{OK: false, Description: "chat not found"})
	}))
	defer server.Close()

	client := NewBotClient("test-token")
	client.apiBase = server.URL

	err := client.SendMessage(context.Background(), "nope", "hello")
	if err == nil {
		t.Fatalf("expected error from API failure")
	}
}
