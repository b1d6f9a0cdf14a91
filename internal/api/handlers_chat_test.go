package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heartlogai/heartlog/internal/generation"
	"github.com/heartlogai/heartlog/internal/models"
)

func TestSendChatMessage(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubGenerator{reply: generation.Reply{Text: "I hear you."}})

	payload := strings.NewReader(`{"text":"feeling good"}`)
	request := httptest.NewRequest(http.MethodPost, "/api/chat/send", payload)
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("send request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	result := struct {
		UserMessage models.ChatMessage `json:"userMessage"`
		Reply       models.ChatMessage `json:"reply"`
	}{}
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		t.Fatalf("decode send response: %v", err)
	}
	if result.UserMessage.Text != "feeling good" || !result.UserMessage.IsUser {
		t.Fatalf("unexpected user message: %+v", result.UserMessage)
	}
	if result.Reply.Text != "I hear you." || result.Reply.IsError {
		t.Fatalf("unexpected reply: %+v", result.Reply)
	}
}

func TestSendChatMessageValidation(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubGenerator{})

	payload := strings.NewReader(`{"text":"   "}`)
	request := httptest.NewRequest(http.MethodPost, "/api/chat/send", payload)
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("send request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestSendChatMessageGenerationFailure(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubGenerator{err: &generation.GenerationError{StatusCode: 500, Body: "boom"}})

	payload := strings.NewReader(`{"text":"hello"}`)
	request := httptest.NewRequest(http.MethodPost, "/api/chat/send", payload)
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("send request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("a generation failure still answers 200, got %d", response.StatusCode)
	}

	result := struct {
		Reply models.ChatMessage `json:"reply"`
	}{}
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		t.Fatalf("decode send response: %v", err)
	}
	if !result.Reply.IsError {
		t.Fatalf("expected the reply flagged as error, got %+v", result.Reply)
	}
}

func TestClearChatReseedsWelcome(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, &stubGenerator{reply: generation.Reply{Text: "ok"}})

	payload := strings.NewReader(`{"text":"hello"}`)
	request := httptest.NewRequest(http.MethodPost, "/api/chat/send", payload)
	request.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(request, -1); err != nil {
		t.Fatalf("send request failed: %v", err)
	}

	response, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/chat", nil), -1)
	if err != nil {
		t.Fatalf("clear request failed: %v", err)
	}
	defer response.Body.Close()

	messages := []models.ChatMessage{}
	if err := json.NewDecoder(response.Body).Decode(&messages); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(messages) != 1 || messages[0].IsUser {
		t.Fatalf("expected only the welcome message after clear, got %+v", messages)
	}
}

func TestSendGuardSingleFlight(t *testing.T) {
	t.Parallel()

	guard := sendGuard{}
	if !guard.acquire() {
		t.Fatalf("expected the first acquire to succeed")
	}
	if guard.acquire() {
		t.Fatalf("a second acquire while busy must fail")
	}
	guard.release()
	if !guard.acquire() {
		t.Fatalf("expected acquire to succeed after release")
	}
}
