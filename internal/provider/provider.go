package provider

import "context"

// Missing is the sentinel value the observations API uses for dates
// without data.
const Missing = "."

// Observation is one dated data point of a price series, exactly as the
// observations API returns it. Value stays a string because missing dates
// carry the sentinel "." instead of being omitted.
type Observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// SeriesSource fetches the observation series for one series ID, ordered by
// date ascending as the source returns it.
type SeriesSource interface {
	Observations(ctx context.Context, seriesID string) ([]Observation, error)
}

// RateSource fetches the current exchange rate into the target currency.
type RateSource interface {
	Rate(ctx context.Context) (float64, error)
}
