// Package generation wraps the external text-generation service. One
// network attempt per call, no internal retry; the caller decides what
// a failure means for the chat stream.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	defaultBaseURL     = "https://api.cohere.ai/v1/chat"
	defaultModel       = "command-r"
	defaultTemperature = 0.2
	defaultMaxTokens   = 300
	defaultTimeout     = 30 * time.Second
)

const systemPreamble = "You are a helpful, concise AI assistant. Always reply in the same language as the user's message (Hindi, English, Marathi, etc.). For factual questions, answer directly and briefly without translating the user's question. Keep responses under 3 sentences unless the user asks for more detail."

// FallbackReply is returned when the upstream answers successfully but
// no usable text can be extracted from the body. An empty reply is a
// UX condition, not an error.
const FallbackReply = "मुझे स्पष्ट उत्तर नहीं मिला। कृपया अपना सवाल दोबारा, थोड़ा और स्पष्ट लिखें।"

// GenerationError reports a network failure or a non-2xx status from
// the generation service. StatusCode is zero when the request never
// reached the service.
type GenerationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (err *GenerationError) Error() string {
	if err.StatusCode != 0 {
		return fmt.Sprintf("generation service returned %d: %s", err.StatusCode, err.Body)
	}
	return fmt.Sprintf("generation request failed: %v", err.Err)
}

func (err *GenerationError) Unwrap() error {
	return err.Err
}

// Reply carries the generated text. FallbackUsed marks replies where
// the fixed fallback string was substituted for an empty upstream
// response, so callers and tests can tell the two apart.
type Reply struct {
	Text         string
	FallbackUsed bool
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	HTTPClient  *http.Client
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

func NewClient(config Config) *Client {
	client := &Client{
		httpClient:  config.HTTPClient,
		baseURL:     config.BaseURL,
		apiKey:      config.APIKey,
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.model == "" {
		client.model = defaultModel
	}
	if client.temperature == 0 {
		client.temperature = defaultTemperature
	}
	if client.maxTokens == 0 {
		client.maxTokens = defaultMaxTokens
	}
	return client
}

type chatRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Preamble    string  `json:"preamble"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type contentBlock struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

// chatResponse covers the response shapes the service has been seen to
// produce: a top-level text field, a content-block list, and the
// legacy generations list.
type chatResponse struct {
	Text    string `json:"text,omitempty"`
	Message *struct {
		Content []contentBlock `json:"content,omitempty"`
	} `json:"message,omitempty"`
	Generations []struct {
		Text string `json:"text,omitempty"`
	} `json:"generations,omitempty"`
}

// Generate sends one utterance and returns the reply text. The call
// suspends until the service responds, the transport times out, or ctx
// is cancelled.
func (client *Client) Generate(ctx context.Context, utterance string) (Reply, error) {
	payload := chatRequest{
		Model:       client.model,
		Message:     utterance,
		Preamble:    systemPreamble,
		Temperature: client.temperature,
		MaxTokens:   client.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Reply{}, &GenerationError{Err: err}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL, bytes.NewReader(body))
	if err != nil {
		return Reply{}, &GenerationError{Err: err}
	}
	request.Header.Set("Authorization", "Bearer "+client.apiKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return Reply{}, &GenerationError{Err: err}
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return Reply{}, &GenerationError{StatusCode: response.StatusCode, Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return Reply{}, &GenerationError{StatusCode: response.StatusCode, Body: string(responseBody)}
	}

	parsed := chatResponse{}
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		log.Printf("generation: unparseable response body, using fallback reply: %v", err)
		return Reply{Text: FallbackReply, FallbackUsed: true}, nil
	}

	text, found := extractText(parsed)
	if !found {
		log.Printf("generation: empty response, using fallback reply")
		return Reply{Text: FallbackReply, FallbackUsed: true}, nil
	}
	return Reply{Text: text}, nil
}
