package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"opioid-chatbot/models"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	LlamaModel       = "llama2"
	LlamaMaxTokens   = 2048
	LlamaTemperature = 0.7

	// FallbackResponse is returned when the endpoint replies without a "response" field.
	FallbackResponse = "Sorry, I couldn't generate a valid response."

	maxErrorBody = 512
)

// CallRecorder receives one observation per model endpoint call.
type CallRecorder interface {
	RecordLlamaCall(ctx context.Context, duration float64, promptTokens int, success bool)
}

// LlamaClient talks to a Llama 2 generate endpoint over HTTP.
// It makes exactly one request per Generate call; there are no retries.
type LlamaClient struct {
	endpoint   string
	httpClient *http.Client
	tokens     *TokenCounter
	recorder   CallRecorder
}

type LlamaOption func(*LlamaClient)

// WithTokenCounter sets the counter used for prompt token estimates.
func WithTokenCounter(tc *TokenCounter) LlamaOption {
	return func(c *LlamaClient) { c.tokens = tc }
}

// WithCallRecorder reports call duration and outcome to r.
func WithCallRecorder(r CallRecorder) LlamaOption {
	return func(c *LlamaClient) { c.recorder = r }
}

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(hc *http.Client) LlamaOption {
	return func(c *LlamaClient) { c.httpClient = hc }
}

func NewLlamaClient(endpoint string, timeout time.Duration, opts ...LlamaOption) *LlamaClient {
	c := &LlamaClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Generator = (*LlamaClient)(nil)

// Generate posts the prompt and returns the endpoint's "response" text.
func (lc *LlamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	tracer := otel.Tracer("llama-client")
	ctx, span := tracer.Start(ctx, "llama.generate")
	defer span.End()

	promptTokens := lc.tokens.Count(prompt)
	span.SetAttributes(
		attribute.String("llama.model", LlamaModel),
		attribute.Int("llama.prompt_tokens", promptTokens),
		attribute.String("llama.token_encoding", lc.tokens.Name()),
	)

	start := time.Now()
	text, err := lc.do(ctx, prompt)
	if lc.recorder != nil {
		lc.recorder.RecordLlamaCall(ctx, time.Since(start).Seconds(), promptTokens, err == nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(attribute.Int("llama.response_chars", len(text)))
	return text, nil
}

func (lc *LlamaClient) do(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(models.GenerateRequest{
		Model:       LlamaModel,
		Prompt:      prompt,
		MaxTokens:   LlamaMaxTokens,
		Temperature: LlamaTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lc.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := lc.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", lc.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: %d %s: %s", ErrUpstreamStatus, resp.StatusCode,
			http.StatusText(resp.StatusCode), bytes.TrimSpace(snippet))
	}

	var out models.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if out.Response == nil {
		return FallbackResponse, nil
	}
	return *out.Response, nil
}
