// Package speak implements the client for the synthesis backend.
package speak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the synthesis endpoint used when none is configured.
const DefaultBaseURL = "https://api.deepgram.com/v1/speak"

// DefaultModel is the voice model used when the caller specifies none.
const DefaultModel = "aura-2-thalia-en"

// Config holds configuration for the synthesis client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string // default voice model, e.g. "aura-2-thalia-en"
}

// Client calls the synthesis backend: POST {base_url}?model={model} with a
// JSON body {"text": "..."}. A successful response body is raw audio bytes;
// failures carry a JSON body {"error": {"message": "..."}}.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a synthesis client, filling unset fields with defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{},
	}
}

// Model returns the client's default voice model.
func (c *Client) Model() string {
	return c.model
}

// Result holds a completed synthesis response.
type Result struct {
	Audio       []byte
	Model       string
	RequestID   string // backend request id header, if provided
	ContentType string
}

// Meta returns the auxiliary response data recorded alongside the audio.
func (r *Result) Meta() map[string]any {
	meta := map[string]any{"model": r.Model}
	if r.RequestID != "" {
		meta["request_id"] = r.RequestID
	}
	if r.ContentType != "" {
		meta["content_type"] = r.ContentType
	}
	return meta
}

// speakRequest is the JSON body of a synthesis request.
type speakRequest struct {
	Text string `json:"text"`
}

// apiError is the JSON body of a failed synthesis response.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Synthesize converts text to speech using the given voice model, falling
// back to the client default when model is empty.
func (c *Client) Synthesize(ctx context.Context, text, model string) (*Result, error) {
	if model == "" {
		model = c.model
	}

	endpoint := c.baseURL + "?model=" + url.QueryEscape(model)

	body, err := json.Marshal(speakRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Token "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.responseError(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis returned no audio")
	}

	return &Result{
		Audio:       audio,
		Model:       model,
		RequestID:   resp.Header.Get("dg-request-id"),
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// responseError extracts the server-provided message from a failed response,
// falling back to a status-derived message when the body is not parseable.
func (c *Client) responseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("synthesis failed: %s", apiErr.Error.Message)
	}

	return fmt.Errorf("synthesis failed: %s", resp.Status)
}
