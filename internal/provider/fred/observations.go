package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"

	"tickerfeed/internal/provider"
	"tickerfeed/internal/retry"
)

// observationsResponse is the envelope of series/observations.
type observationsResponse struct {
	Observations []observation `json:"observations"`
}

type observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// Observations retrieves the observation series for seriesID, ordered by
// date ascending as FRED returns it. Dates without data come back with the
// value "." and are passed through untouched; skipping them is the
// transform's job, not the fetcher's.
func (c *Client) Observations(ctx context.Context, seriesID string) ([]provider.Observation, error) {
	query := maps.Clone(c.query)
	query.Set("series_id", seriesID)
	if c.observationStart != "" {
		query.Set("observation_start", c.observationStart)
	}
	url := fmt.Sprintf("%s/series/observations?%s", c.baseURL, query.Encode())

	var out []provider.Observation
	err := retry.Do(ctx, c.retryPolicy, func(ctx context.Context) error {
		obs, err := c.fetchObservations(ctx, url)
		if err != nil {
			return err
		}
		out = obs
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("series %s: %w", seriesID, err)
	}
	return out, nil
}

func (c *Client) fetchObservations(ctx context.Context, url string) ([]provider.Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusBadRequest:
		// FRED reports a missing or bad api_key here; keep the body, it
		// names the offending parameter.
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return nil, fmt.Errorf("bad request: %s", string(snippet))

	case http.StatusForbidden:
		return nil, fmt.Errorf("unauthorized")

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited")

	default:
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}

	var body observationsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding observations response: %w", err)
	}

	out := make([]provider.Observation, 0, len(body.Observations))
	for _, o := range body.Observations {
		out = append(out, provider.Observation{Date: o.Date, Value: o.Value})
	}
	return out, nil
}

var _ provider.SeriesSource = (*Client)(nil)
