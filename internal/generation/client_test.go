package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: serverURL,
	})
}

func TestGenerateTopLevelText(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"text":"  hello there  "}`))
	}))
	defer server.Close()

	reply, err := newTestClient(server.URL).Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply.Text != "hello there" {
		t.Fatalf("expected trimmed top-level text, got %q", reply.Text)
	}
	if reply.FallbackUsed {
		t.Fatalf("fallback must not be flagged for a real reply")
	}

	if captured.Model != defaultModel {
		t.Fatalf("expected default model, got %q", captured.Model)
	}
	if captured.Message != "hi" {
		t.Fatalf("expected the utterance in the request, got %q", captured.Message)
	}
	if captured.Preamble != systemPreamble {
		t.Fatalf("expected the system preamble in the request")
	}
	if captured.MaxTokens != defaultMaxTokens {
		t.Fatalf("expected default max_tokens, got %d", captured.MaxTokens)
	}
}

func TestGenerateContentBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{"content":[{"type":"text","text":"first"},{"type":"text","text":"second"}]}}`))
	}))
	defer server.Close()

	reply, err := newTestClient(server.URL).Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply.Text != "first\nsecond" {
		t.Fatalf("expected content blocks joined with newline, got %q", reply.Text)
	}
}

func TestGenerateLegacyGenerations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"generations":[{"text":"legacy reply"},{"text":"ignored"}]}`))
	}))
	defer server.Close()

	reply, err := newTestClient(server.URL).Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply.Text != "legacy reply" {
		t.Fatalf("expected the first generation, got %q", reply.Text)
	}
}

func TestGenerateEmptyResponseUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	reply, err := newTestClient(server.URL).Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("an empty response is not an error, got %v", err)
	}
	if reply.Text != FallbackReply || !reply.FallbackUsed {
		t.Fatalf("expected the fallback reply, got %+v", reply)
	}
}

func TestGenerateUnparseableBodyUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	reply, err := newTestClient(server.URL).Generate(context.Background(), "hi")
	if err != nil {
		t.Fatalf("an unparseable 2xx body is not an error, got %v", err)
	}
	if reply.Text != FallbackReply || !reply.FallbackUsed {
		t.Fatalf("expected the fallback reply, got %+v", reply)
	}
}

func TestGenerateNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"rate limited"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Generate(context.Background(), "hi")
	var generationErr *GenerationError
	if !errors.As(err, &generationErr) {
		t.Fatalf("expected a GenerationError, got %v", err)
	}
	if generationErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", generationErr.StatusCode)
	}
	if generationErr.Body == "" {
		t.Fatalf("expected the response body to be carried for diagnostics")
	}
}

func TestGenerateContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server.URL).Generate(ctx, "hi")
	var generationErr *GenerationError
	if !errors.As(err, &generationErr) {
		t.Fatalf("expected a GenerationError for a cancelled context, got %v", err)
	}
	if generationErr.StatusCode != 0 {
		t.Fatalf("a request that never completed must carry no status, got %d", generationErr.StatusCode)
	}
}
