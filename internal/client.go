package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// QueryClient is the boundary to the backend/AI query service. The engine
// only consumes this interface; transport details stay behind it.
type QueryClient interface {
	// Query sends a free-text query. Transport failures surface as errors;
	// the caller converts them into a failed QueryResult so the conversation
	// log still records the outcome.
	Query(ctx context.Context, text string, mode Mode) (QueryResult, error)

	// Capabilities fetches the session-start introduction, capability list
	// and example queries.
	Capabilities(ctx context.Context) (Capabilities, error)
}

// HTTPClient talks JSON over HTTP to the ERP assistant backend.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type queryRequest struct {
	Query string `json:"query"`
	Mode  Mode   `json:"mode"`
}

// Query posts the query to /api/assistant/query and decodes the result.
func (c *HTTPClient) Query(ctx context.Context, text string, mode Mode) (QueryResult, error) {
	body, err := json.Marshal(queryRequest{Query: text, Mode: mode})
	if err != nil {
		return QueryResult{}, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/assistant/query", bytes.NewReader(body))
	if err != nil {
		return QueryResult{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return QueryResult{}, &QueryError{Query: text, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return QueryResult{}, &QueryError{Query: text, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return QueryResult{}, &QueryError{Query: text, Err: fmt.Errorf("backend returned %s", resp.Status)}
	}

	var result QueryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return QueryResult{}, &QueryError{Query: text, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return result, nil
}

// Capabilities fetches /api/assistant/capabilities.
func (c *HTTPClient) Capabilities(ctx context.Context) (Capabilities, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/assistant/capabilities", nil)
	if err != nil {
		return Capabilities{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Capabilities{}, fmt.Errorf("capabilities request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Capabilities{}, fmt.Errorf("backend returned %s", resp.Status)
	}

	var caps Capabilities
	if err := json.NewDecoder(resp.Body).Decode(&caps); err != nil {
		return Capabilities{}, fmt.Errorf("failed to decode capabilities: %w", err)
	}
	return caps, nil
}

// FailedResult converts a transport error into the terminal failed result
// appended to the conversation log. Nothing is retried automatically.
func FailedResult(err error) QueryResult {
	return QueryResult{Success: false, Error: err.Error()}
}
