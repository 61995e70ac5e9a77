// Command fred_dump fetches raw observations for the configured series and
// prints them, for inspecting upstream data when a ticker value looks off.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"tickerfeed/internal/config"
	"tickerfeed/internal/httpx"
	"tickerfeed/internal/provider"
	"tickerfeed/internal/provider/fred"
	"tickerfeed/internal/retry"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
}

func main() {
	var (
		commodity string
		start     string
		outPath   string
	)
	flag.StringVar(&commodity, "commodity", "", "commodity key to dump (empty = all)")
	flag.StringVar(&start, "start", "", "override the observation start date (YYYY-MM-DD)")
	flag.StringVar(&outPath, "out", "", "output file path (empty = stdout)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.FRED.APIKey == "" {
		log.Fatal("TICKER_FRED_API_KEY missing (set in .env or env)")
	}
	if start == "" {
		start = cfg.ObservationStart
	}

	httpClient := httpx.New(cfg.Fetch.Timeout())
	client, err := fred.New(cfg.FRED.APIKey,
		fred.WithBaseURL(cfg.FRED.BaseURL),
		fred.WithHTTPClient(httpClient.HTTP),
		fred.WithHeader(http.Header{
			"User-Agent": []string{httpClient.UserAgent},
		}),
		fred.WithObservationStart(start),
		fred.WithRetry(retry.Policy{Retries: cfg.Fetch.Retries, Delay: cfg.Fetch.RetryDelay()}),
	)
	if err != nil {
		log.Fatalf("fred client: %v", err)
	}

	ctx := context.Background()
	dump := make(map[string][]provider.Observation)
	for _, c := range cfg.Commodities {
		if commodity != "" && c.Key != commodity {
			continue
		}
		series, err := client.Observations(ctx, c.SeriesID)
		if err != nil {
			log.Printf("%s: %v", c.Key, err)
			continue
		}
		log.Printf("%s (%s): %d observations", c.Key, c.SeriesID, len(series))
		dump[c.Key] = series
	}
	if len(dump) == 0 {
		log.Fatal("nothing fetched")
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("create out: %v", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		log.Fatalf("encode: %v", err)
	}
	if outPath != "" {
		log.Printf("done: wrote %s", outPath)
	}
}
