package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client calls the detection API.
type Client struct {
	client *resty.Client
}

// NewClient creates a detection client for the given base URL.
func NewClient(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Client{client: c}
}

// Detect submits one photo for detection. A non-200 status is returned as
// an error so callers can decide whether to retry.
func (c *Client) Detect(ctx context.Context, photoDataURL string) (*Response, error) {
	reqBody := Request{PhotoDataURL: photoDataURL}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/api/detect")
	if err != nil {
		return nil, fmt.Errorf("detection request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("detection status %d: %s", resp.StatusCode(), resp.String())
	}

	var out Response
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
