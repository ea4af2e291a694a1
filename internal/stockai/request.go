package stockai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// getJSON performs a GET against baseURL+path and decodes the body into out.
// Failures map onto the error taxonomy: network errors become TransportError,
// non-success statuses and unparsable bodies become FetchError.
func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return &FetchError{Op: op, Status: res.StatusCode}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &FetchError{Op: op, Reason: fmt.Sprintf("decoding response: %v", err)}
	}
	return nil
}
