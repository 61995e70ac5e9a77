package pipeline

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"

	"tickerfeed/internal/config"
	"tickerfeed/internal/provider"
)

type fakeSeries struct {
	byID map[string][]provider.Observation
	err  error
}

func (f fakeSeries) Observations(_ context.Context, seriesID string) ([]provider.Observation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[seriesID], nil
}

type fakeRates struct {
	rate float64
	err  error
}

func (f fakeRates) Rate(context.Context) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.rate, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Commodities: config.DefaultCommodities(),
		AverageYear: "2024",
		Rates:       config.Rates{Symbol: "EUR"},
	}
}

func TestRun_OneItemPerCommodityPlusAttribution(t *testing.T) {
	cfg := testConfig()
	byID := make(map[string][]provider.Observation)
	for _, c := range cfg.Commodities {
		byID[c.SeriesID] = []provider.Observation{{Date: "2025-07-01", Value: "100"}}
	}

	doc, err := Run(t.Context(), cfg, Sources{
		Series: fakeSeries{byID: byID},
		Rates:  fakeRates{rate: 1},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(doc.Items) != len(cfg.Commodities)+1 {
		t.Fatalf("items = %d, want %d", len(doc.Items), len(cfg.Commodities)+1)
	}
	for i, c := range cfg.Commodities {
		item := doc.Items[i]
		if item.Text != c.Label {
			t.Fatalf("items[%d].Text = %q, want %q", i, item.Text, c.Label)
		}
		// One observation, nothing in the average year: no delta fragments.
		if item.Extra != "EUR/t • Juli 2025" {
			t.Fatalf("items[%d].Extra = %q, want unit and date label only", i, item.Extra)
		}
	}
	last := doc.Items[len(doc.Items)-1]
	if last.Text == "" || last.Value != nil || last.Extra != "" {
		t.Fatalf("unexpected trailing item: %+v", last)
	}
}

func TestRun_KeepsConfiguredOrder(t *testing.T) {
	cfg := testConfig()
	byID := make(map[string][]provider.Observation)
	for i, c := range cfg.Commodities {
		byID[c.SeriesID] = []provider.Observation{{Date: "2025-07-01", Value: strconv.Itoa(100 + 10*i)}}
	}

	doc, err := Run(t.Context(), cfg, Sources{
		Series: fakeSeries{byID: byID},
		Rates:  fakeRates{rate: 1},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i, c := range cfg.Commodities {
		raw := float64(100 + 10*i)
		if c.CentsPerPound {
			raw *= 22.04622
		}
		want := int(math.Round(raw))
		got := doc.Items[i]
		if got.Text != c.Label || got.Value == nil || *got.Value != want {
			t.Fatalf("items[%d] = %+v, want %s with value %d", i, got, c.Label, want)
		}
	}
}

func TestRun_FailsWhenAnySeriesFetchFails(t *testing.T) {
	fetchErr := errors.New("boom")

	_, err := Run(t.Context(), testConfig(), Sources{
		Series: fakeSeries{err: fetchErr},
		Rates:  fakeRates{rate: 1},
	})
	if !errors.Is(err, fetchErr) {
		t.Fatalf("err = %v, want the fetch error", err)
	}
}

func TestRun_FailsWhenRateFetchFails(t *testing.T) {
	cfg := testConfig()
	byID := make(map[string][]provider.Observation)
	for _, c := range cfg.Commodities {
		byID[c.SeriesID] = []provider.Observation{{Date: "2025-07-01", Value: "100"}}
	}
	rateErr := errors.New("rate down")

	_, err := Run(t.Context(), cfg, Sources{
		Series: fakeSeries{byID: byID},
		Rates:  fakeRates{err: rateErr},
	})
	if !errors.Is(err, rateErr) {
		t.Fatalf("err = %v, want the rate error", err)
	}
}

func TestRun_NoItemsIsAnError(t *testing.T) {
	cfg := testConfig()
	byID := make(map[string][]provider.Observation)
	for _, c := range cfg.Commodities {
		byID[c.SeriesID] = []provider.Observation{{Date: "2025-07-01", Value: "."}}
	}

	_, err := Run(t.Context(), cfg, Sources{
		Series: fakeSeries{byID: byID},
		Rates:  fakeRates{rate: 1},
	})
	if !errors.Is(err, ErrNoItems) {
		t.Fatalf("err = %v, want ErrNoItems", err)
	}
}
