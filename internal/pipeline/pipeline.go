// Package pipeline runs one generation: fan out all fetches, fan in the
// results, assemble the output document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"tickerfeed/internal/config"
	"tickerfeed/internal/provider"
	"tickerfeed/internal/ticker"
)

// ErrNoItems reports a run whose document would contain no commodity
// entries. An empty ticker is unusable, so this counts as a failure.
var ErrNoItems = errors.New("document contains no commodity items")

// Sources bundles the two upstream clients a run needs.
type Sources struct {
	Series provider.SeriesSource
	Rates  provider.RateSource
}

// Run fetches the exchange rate and every commodity series concurrently,
// then builds the document. It fails when any fetch fails after its
// retries or when no commodity yields a valid item.
func Run(ctx context.Context, cfg *config.Config, src Sources) (ticker.Document, error) {
	seriesByIdx := make([][]provider.Observation, len(cfg.Commodities))
	var rate float64

	// No errgroup.WithContext here: a failed fetch must not cancel its
	// siblings. Each goroutine owns one result slot, so no locking either.
	var g errgroup.Group
	g.Go(func() error {
		r, err := src.Rates.Rate(ctx)
		if err != nil {
			return fmt.Errorf("exchange rate: %w", err)
		}
		rate = r
		return nil
	})
	for i, c := range cfg.Commodities {
		g.Go(func() error {
			series, err := src.Series.Observations(ctx, c.SeriesID)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Key, err)
			}
			seriesByIdx[i] = series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ticker.Document{}, err
	}

	b := ticker.Builder{
		Rate:        rate,
		AverageYear: cfg.AverageYear,
		Unit:        cfg.Rates.Symbol + "/t",
	}

	items := make([]ticker.Item, 0, len(cfg.Commodities)+1)
	for i, c := range cfg.Commodities {
		item, ok := b.Item(c.Label, c.CentsPerPound, seriesByIdx[i])
		if !ok {
			// Not an error: the commodity is simply left off the ticker.
			log.Printf("%s: no valid observations, skipping", c.Key)
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return ticker.Document{}, ErrNoItems
	}
	items = append(items, ticker.AttributionItem())

	return ticker.Document{Items: items}, nil
}
