// Package webhook forwards payloads to the n8n automation endpoints and
// normalizes their replies.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jun/driverelay/internal/model"
)

var (
	// ErrInvalidURL is returned when the submitted URL carries no recognized
	// video-hosting domain marker.
	ErrInvalidURL = errors.New("URL must be a YouTube link")

	// ErrNoContent is returned when the pasted text is empty.
	ErrNoContent = errors.New("content is required")
)

// StatusError reports a non-2xx reply from the webhook endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.StatusCode)
}

// Client posts payloads to the two n8n webhook endpoints. Every payload is
// sent exactly once; the caller retries if it cares.
type Client struct {
	httpClient *http.Client
	youtubeURL string
	textURL    string
}

// NewClient creates a Client for the configured endpoint URLs.
func NewClient(youtubeURL, textURL string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		youtubeURL: youtubeURL,
		textURL:    textURL,
	}
}

// ForwardYouTube validates and forwards a video link.
func (c *Client) ForwardYouTube(ctx context.Context, url string) (interface{}, error) {
	if !strings.Contains(url, "youtube.com") && !strings.Contains(url, "youtu.be") {
		return nil, ErrInvalidURL
	}

	payload := model.YouTubePayload{
		Type:      "youtube",
		URL:       url,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	return c.post(ctx, c.youtubeURL, payload)
}

// ForwardText computes word and character counts for the pasted text and
// forwards it with its sanitized metadata.
func (c *Client) ForwardText(ctx context.Context, content string, meta *model.TextMetadata) (interface{}, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrNoContent
	}

	if meta != nil && meta.Tags == nil {
		meta.Tags = []string{}
	}

	payload := model.TextPayload{
		Type:           "text",
		Content:        content,
		WordCount:      len(strings.Fields(content)),
		CharacterCount: utf8.RuneCountInString(content),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Metadata:       meta,
	}
	return c.post(ctx, c.textURL, payload)
}

// post performs one POST to the endpoint and normalizes the reply.
func (c *Client) post(ctx context.Context, url string, payload interface{}) (interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	replyBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(replyBody)}
	}

	return Normalize(replyBody), nil
}

// Normalize converts a heterogeneous webhook reply body into a uniform shape.
// A body that is not valid JSON is wrapped rather than treated as an error;
// a JSON array is reduced to its first element.
func Normalize(body []byte) interface{} {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return map[string]interface{}{
			"raw":  string(body),
			"note": "Webhook responded with a non-JSON body",
		}
	}

	if arr, ok := v.([]interface{}); ok {
		if len(arr) == 0 {
			return nil
		}
		return arr[0]
	}

	return v
}
