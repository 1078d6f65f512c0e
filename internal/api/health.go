package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Health is the backend health report.
type Health struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health checks backend availability. The endpoint is not enveloped.
func (c *Client) Health(ctx context.Context) (Health, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, pathHealth, nil)
	if err != nil {
		return Health{}, err
	}

	var h Health
	if len(resp.body) == 0 {
		return h, nil
	}
	if err := json.Unmarshal(resp.body, &h); err != nil {
		return Health{}, &Error{Kind: KindDecode, Status: resp.status, Err: err}
	}
	return h, nil
}
