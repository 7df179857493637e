package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"oneshot/internal/model"
)

// Fetcher loads one metrics snapshot
type Fetcher interface {
	Fetch(ctx context.Context, siteID string, q model.MetricsQuery) (*model.MetricsSnapshot, error)
}

// APIError is a non-2xx answer of the metrics endpoint
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("metrics endpoint returned %d: %s", e.Status, e.Message)
}

// HTTPFetcher reads snapshots from the gateway's metrics endpoint
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher creates a fetcher for the gateway at baseURL
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    *model.MetricsSnapshot `json:"data"`
}

// Fetch issues GET /api/v1/sites/:id/metrics for q
func (f *HTTPFetcher) Fetch(ctx context.Context, siteID string, q model.MetricsQuery) (*model.MetricsSnapshot, error) {
	params := url.Values{}
	if q.Start != nil && q.End != nil {
		params.Set("start", q.Start.Format(time.RFC3339))
		params.Set("end", q.End.Format(time.RFC3339))
	} else if q.Period != "" {
		params.Set("period", q.Period)
	}

	endpoint := fmt.Sprintf("%s/api/v1/sites/%s/metrics", f.baseURL, url.PathEscape(siteID))
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metrics: %w", err)
	}
	defer resp.Body.Close()

	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if resp.StatusCode >= 300 {
			return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("failed to decode metrics: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: body.Message}
	}
	if body.Data == nil {
		return nil, fmt.Errorf("metrics response has no data")
	}
	return body.Data, nil
}
