// Command generate runs the ticker pipeline once: fetch every commodity
// series and the exchange rate, build the document, write it. Meant to be
// invoked from a scheduled job whose next step commits the output file.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"tickerfeed/internal/config"
	"tickerfeed/internal/httpx"
	"tickerfeed/internal/pipeline"
	"tickerfeed/internal/provider/exchangerate"
	"tickerfeed/internal/provider/fred"
	"tickerfeed/internal/retry"
	"tickerfeed/internal/ticker"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	os.Exit(run(context.Background(), cfg, nil))
}

// run executes one generation and returns the process exit code. src may be
// nil, in which case the real HTTP clients are built from cfg.
func run(ctx context.Context, cfg *config.Config, src *pipeline.Sources) int {
	// Under the fail policy a missing credential is fatal before any fetch.
	// Under fallback it is deferred: the fetches fail and the fallback
	// document gets written.
	if cfg.OnFailure == config.OnFailureFail && cfg.FRED.APIKey == "" {
		log.Print("missing TICKER_FRED_API_KEY")
		return 1
	}

	if src == nil {
		built, err := buildSources(cfg)
		if err != nil {
			log.Printf("sources: %v", err)
			return 1
		}
		src = built
	}

	doc, err := pipeline.Run(ctx, cfg, *src)
	if err != nil {
		if cfg.OnFailure == config.OnFailureFallback {
			log.Printf("pipeline: %v; writing fallback document", err)
			if werr := ticker.WriteFile(cfg.OutputPath, ticker.Fallback(labels(cfg))); werr != nil {
				log.Printf("write: %v", werr)
				return 1
			}
			return 0
		}
		log.Printf("pipeline: %v", err)
		return 1
	}

	if err := ticker.WriteFile(cfg.OutputPath, doc); err != nil {
		log.Printf("write: %v", err)
		return 1
	}
	log.Printf("wrote %s (%d items)", cfg.OutputPath, len(doc.Items))
	return 0
}

func buildSources(cfg *config.Config) (*pipeline.Sources, error) {
	httpClient := httpx.New(cfg.Fetch.Timeout())
	policy := retry.Policy{Retries: cfg.Fetch.Retries, Delay: cfg.Fetch.RetryDelay()}

	fredClient, err := fred.New(cfg.FRED.APIKey,
		fred.WithBaseURL(cfg.FRED.BaseURL),
		fred.WithHTTPClient(httpClient.HTTP),
		fred.WithHeader(http.Header{
			"User-Agent": []string{httpClient.UserAgent},
		}),
		fred.WithObservationStart(cfg.ObservationStart),
		fred.WithRetry(policy),
	)
	if err != nil {
		return nil, err
	}

	rateClient := exchangerate.New(exchangerate.Config{
		BaseURL:  cfg.Rates.BaseURL,
		Base:     cfg.Rates.Base,
		Symbol:   cfg.Rates.Symbol,
		Fallback: cfg.Rates.FallbackRate,
		Retry:    policy,
	}, httpClient)

	return &pipeline.Sources{Series: fredClient, Rates: rateClient}, nil
}

func labels(cfg *config.Config) []string {
	out := make([]string, 0, len(cfg.Commodities))
	for _, c := range cfg.Commodities {
		out = append(out, c.Label)
	}
	return out
}
