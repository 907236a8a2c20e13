// Package forecast wraps the external price-forecast model: given a seed
// window of recent market features, it predicts a trajectory of future
// monthly prices. Per spec.md §6 contract 4, failures fall back to
// geometric Brownian motion rather than surfacing an error — this mirrors
// the teacher's entropy.Client, which falls back to crypto/rand rather
// than blocking on random.org.
package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/market"
)

// SeedPoint is one row of the 60x5 feature window the forecast model
// expects: close price plus a handful of technical indicators.
type SeedPoint struct {
	Close      float64 `json:"close"`
	RSI        float64 `json:"rsi"`
	MACD       float64 `json:"macd"`
	Signal     float64 `json:"signal"`
	DailyReturn float64 `json:"daily_return"`
}

// Provider calls an external forecast endpoint with a bounded timeout and
// falls back to a GBM trajectory on any failure.
type Provider struct {
	url        string
	httpClient *http.Client
}

// NewProvider builds a provider. An empty url means the provider is
// disabled and every call falls back immediately.
func NewProvider(url string) *Provider {
	return &Provider{
		url:        url,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

// Enabled reports whether an endpoint is configured.
func (p *Provider) Enabled() bool {
	return p != nil && p.url != ""
}

type forecastRequest struct {
	Seed   []SeedPoint `json:"seed"`
	Months int         `json:"months"`
}

type forecastResponse struct {
	Prices []float64 `json:"prices"`
}

// Forecast returns `months` predicted prices for the given seed window.
// On any error it falls back to a GBM walk from the named sector's
// configured start price and parameters; the seed window is not used.
func (p *Provider) Forecast(ctx context.Context, sector config.Sector, cfg *config.Config, seed []SeedPoint, months int, rng *rand.Rand) []float64 {
	if p.Enabled() {
		ctx, cancel := context.WithTimeout(ctx, 8*time.Second)
		defer cancel()
		if prices, err := p.call(ctx, seed, months); err == nil && len(prices) == months {
			return prices
		} else if err != nil {
			slog.Debug("forecast provider failed, using GBM fallback", "sector", sector, "error", err)
		}
	}
	return market.GenerateTrajectory(sector, cfg, months, rng)
}

func (p *Provider) call(ctx context.Context, seed []SeedPoint, months int) ([]float64, error) {
	body, err := json.Marshal(forecastRequest{Seed: seed, Months: months})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call forecast endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast endpoint error %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed forecastResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return parsed.Prices, nil
}
