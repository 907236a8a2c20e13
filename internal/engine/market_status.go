package engine

import (
	"context"

	"github.com/arthneeti/engine/internal/config"
)

// MarketStatus is the read-only market snapshot returned by
// GetMarketStatus, per spec.md §6.
type MarketStatus struct {
	Sectors    map[config.Sector]float64
	Trends     map[config.Sector]int
	Funds      map[string]float64
	OpenIPO    *config.IPOListing
}

// GetMarketStatus returns the current sector prices, trend signals, fund
// NAVs, and the IPO open for application this month, if any.
func (e *Engine) GetMarketStatus(ctx context.Context, sessionID, actorID string) (*MarketStatus, error) {
	agg, err := e.load(ctx, sessionID, actorID)
	if err != nil {
		return nil, err
	}
	sess := agg.Session

	status := &MarketStatus{
		Sectors: sess.MarketPrices.Sectors,
		Trends:  sess.MarketTrends,
		Funds:   sess.MarketPrices.Funds,
	}
	if listing, ok := e.cfg.IPOSchedule[sess.CurrentMonth]; ok {
		l := listing
		status.OpenIPO = &l
	}
	return status, nil
}
