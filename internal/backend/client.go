package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"aitoolkit-web/internal/contextutil"
)

// NoContentSentinel is returned as the result content when the backend
// answers successfully but omits the completion text. This is a degraded
// success, not an error.
const NoContentSentinel = "No response content received from backend"

// Defaults applied when a Params field is zero-valued.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2000
)

// Client is a client for the inference backend's chat completions API.
// It performs exactly one request per call; retry policy belongs to callers.
type Client struct {
	BaseURL string
	Model   string
	client  *http.Client
}

// NewClient creates a new backend client. model is the default model used
// when a request does not name one. timeout bounds each request end to end;
// expiry is reported as a transport failure.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Complete sends one non-streamed completion request and folds the outcome
// into a Result. It never returns a Go error: backend failures, transport
// failures, and malformed responses all surface as Success=false envelopes,
// classified by Result.Failure.
func (c *Client) Complete(ctx context.Context, messages []Message, params Params) Result {
	logger := contextutil.LoggerFromContext(ctx)

	if params.Model == "" {
		params.Model = c.Model
	}
	if params.Temperature == 0 {
		params.Temperature = DefaultTemperature
	}
	if params.MaxTokens == 0 {
		params.MaxTokens = DefaultMaxTokens
	}

	payload := completionRequest{
		Messages:    messages,
		Model:       params.Model,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		Stream:      false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return transportFailure(ctx, logger, err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return transportFailure(ctx, logger, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return transportFailure(ctx, logger, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		logger.ErrorContext(ctx, "backend returned error status",
			"status", resp.StatusCode, "body", string(raw))
		return Result{
			Success: false,
			Error:   fmt.Sprintf("Backend server error: %d", resp.StatusCode),
			Failure: FailureRemote,
		}
	}

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return transportFailure(ctx, logger, err)
	}

	content := NoContentSentinel
	if len(decoded.Choices) > 0 && decoded.Choices[0].Message.Content != "" {
		content = decoded.Choices[0].Message.Content
	}

	// Usage fields are individually optional; absent ones decode to zero,
	// which is exactly the advertised default.
	metrics := &Metrics{
		TotalTime:          decoded.Usage.TotalDuration,
		TokensPerSecond:    decoded.Usage.TokensPerSecond,
		PromptTokens:       decoded.Usage.PromptTokens,
		CompletionTokens:   decoded.Usage.CompletionTokens,
		TotalTokens:        decoded.Usage.TotalTokens,
		PromptEvalDuration: decoded.Usage.PromptEvalDuration,
		EvalDuration:       decoded.Usage.EvalDuration,
	}

	return Result{
		Success: true,
		Content: content,
		Metrics: metrics,
	}
}

// Ping checks whether the backend is reachable. Used by health checks only.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// transportFailure logs err and wraps it in a transport-class failure Result.
func transportFailure(ctx context.Context, logger *slog.Logger, err error) Result {
	logger.ErrorContext(ctx, "backend request failed", "error", err)
	return Result{
		Success: false,
		Error:   fmt.Sprintf("Failed to connect to backend server: %v", err),
		Failure: FailureTransport,
	}
}
