package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/marketcms/internal/db"
)

type fakeHTTPClient struct {
	handler func(r *http.Request) (*http.Response, error)
}

func (c fakeHTTPClient) Do(r *http.Request) (*http.Response, error) {
	return c.handler(r)
}

func jsonResponse(status int, body interface{}) *http.Response {
	buf, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(buf)),
		Header:     make(http.Header),
	}
}

func seedChatBot(t *testing.T, token, preset string) {
	t.Helper()
	if err := db.DB.Create(&db.ChatBotSettings{Token: token, Preset: preset}).Error; err != nil {
		t.Fatalf("failed to seed chat bot settings: %v", err)
	}
}

func TestChatSendMessageRequiresToken(t *testing.T) {
	cleanup := setupServiceTestDB(t, "chat_no_token", &db.ChatBotSettings{})
	defer cleanup()

	svc := NewChatService(db.DB)
	if _, err := svc.SendMessage(context.Background(), "Привет"); !errors.Is(err, ErrChatTokenMissing) {
		t.Fatalf("expected ErrChatTokenMissing, got %v", err)
	}
}

func TestChatSendMessageForwardsPreset(t *testing.T) {
	cleanup := setupServiceTestDB(t, "chat_preset", &db.ChatBotSettings{})
	defer cleanup()

	seedChatBot(t, "sk-test", "Ты вежливый помощник")

	svc := NewChatService(db.DB)
	svc.SetBaseURL("https://openai.test/v1")
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("unexpected authorization header %s", got)
		}

		var payload chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if payload.Model != chatModel {
			t.Fatalf("unexpected model %s", payload.Model)
		}
		if payload.MaxTokens != chatMaxTokens || payload.Temperature != chatTemperature {
			t.Fatalf("unexpected sampling params: %+v", payload)
		}
		if len(payload.Messages) != 2 {
			t.Fatalf("expected system+user messages, got %#v", payload.Messages)
		}
		if payload.Messages[0].Role != "system" || payload.Messages[0].Content != "Ты вежливый помощник" {
			t.Fatalf("unexpected system message: %#v", payload.Messages[0])
		}
		if payload.Messages[1].Content != "Привет" {
			t.Fatalf("unexpected user message: %#v", payload.Messages[1])
		}

		return jsonResponse(http.StatusOK, map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Здравствуйте!"}},
			},
		}), nil
	}})

	response, err := svc.SendMessage(context.Background(), "Привет")
	if err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}
	if response != "Здравствуйте!" {
		t.Fatalf("unexpected response: %q", response)
	}
}

func TestChatSendMessageSkipsEmptyPreset(t *testing.T) {
	cleanup := setupServiceTestDB(t, "chat_no_preset", &db.ChatBotSettings{})
	defer cleanup()

	seedChatBot(t, "sk-test", "")

	svc := NewChatService(db.DB)
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		var payload chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(payload.Messages) != 1 || payload.Messages[0].Role != "user" {
			t.Fatalf("expected single user message, got %#v", payload.Messages)
		}
		return jsonResponse(http.StatusOK, map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		}), nil
	}})

	if _, err := svc.SendMessage(context.Background(), "Привет"); err != nil {
		t.Fatalf("SendMessage returned error: %v", err)
	}
}

func TestChatSendMessageMapsUpstreamErrors(t *testing.T) {
	cleanup := setupServiceTestDB(t, "chat_errors", &db.ChatBotSettings{})
	defer cleanup()

	seedChatBot(t, "sk-bad", "")

	svc := NewChatService(db.DB)

	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, map[string]interface{}{"error": map[string]string{"message": "bad key"}}), nil
	}})
	if _, err := svc.SendMessage(context.Background(), "Привет"); !errors.Is(err, ErrChatUnauthorized) {
		t.Fatalf("expected ErrChatUnauthorized, got %v", err)
	}

	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, map[string]interface{}{"error": map[string]string{"message": "slow down"}}), nil
	}})
	if _, err := svc.SendMessage(context.Background(), "Привет"); !errors.Is(err, ErrChatRateLimited) {
		t.Fatalf("expected ErrChatRateLimited, got %v", err)
	}
}
