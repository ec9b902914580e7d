package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// GenerateRequest holds the parameters for one chat completion call.
type GenerateRequest struct {
	Type         GenerationType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses the configured default
}

// GenerateResponse holds the result of one chat completion call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client provides access to a chat-completion API for text-to-structure
// generation.
type Client interface {
	// Generate sends a prompt pair and returns the raw assistant text.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// chatClient implements Client against an OpenAI-compatible HTTP API.
type chatClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// retryBackoff is the pause before each retry attempt.
const retryBackoff = 500 * time.Millisecond

// NewChatClient creates a Client that talks to the configured endpoint.
func NewChatClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &chatClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the JSON body sent to POST /chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the subset of the completion response the service reads.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *chatClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	temperature := c.cfg.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: temperature,
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(retryBackoff):
			}
		}
		if ctx.Err() != nil {
			break
		}

		resp, err := c.postCompletion(ctx, body)
		if err != nil {
			lastErr = err
			continue
		}

		latency := time.Since(start).Milliseconds()
		c.emit(req.Type, latency, nil)
		var text string
		if len(resp.Choices) > 0 {
			text = resp.Choices[0].Message.Content
		}
		return &GenerateResponse{Text: text, Model: resp.Model, LatencyMs: latency}, nil
	}

	if ctx.Err() != nil {
		lastErr = ErrTimeout
	} else if isNetworkError(lastErr) {
		lastErr = ErrUnavailable
	} else {
		lastErr = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
	c.emit(req.Type, time.Since(start).Milliseconds(), lastErr)
	return nil, lastErr
}

func (c *chatClient) emit(genType GenerationType, latencyMs int64, err error) {
	c.observer.OnCallComplete(CallEvent{
		Type:      genType,
		Model:     c.cfg.Model,
		LatencyMs: latencyMs,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

func (c *chatClient) postCompletion(ctx context.Context, body chatRequest) (*chatResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("chat API returned status %d: %s", httpResp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		if resp.Error != nil && resp.Error.Message != "" {
			return nil, fmt.Errorf("chat API returned status %d: %s", httpResp.StatusCode, resp.Error.Message)
		}
		return nil, fmt.Errorf("chat API returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	return &resp, nil
}

func isNetworkError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
