package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client forwards requests to an external oracle service over HTTP. The
// service answers out of band by calling the engine's oracle-facing API,
// so a 2xx here only acknowledges the request.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) RequestReveal(ctx context.Context, req RevealRequest) error {
	return c.post(ctx, "/reveal", req)
}

func (c *Client) RequestShowdown(ctx context.Context, req ShowdownRequest) error {
	return c.post(ctx, "/showdown", req)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("oracle %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
