package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/forecast"
	"github.com/arthneeti/engine/internal/market"
	"github.com/arthneeti/engine/internal/model"
	"github.com/google/uuid"
)

// StartNewSession creates a fresh game session for a user: starting
// stats, seeded default expenses, zero market trends, and a pre-generated
// price trajectory per sector for the configured game duration (GBM, or the
// forecast provider's for tech when one is configured).
func (e *Engine) StartNewSession(ctx context.Context, userID string) (*model.Result, error) {
	sess := model.NewSession(uuid.NewString(), userID, e.cfg)

	var expenses []*model.RecurringExpense
	for _, d := range e.cfg.DefaultExpenses {
		expenses = append(expenses, &model.RecurringExpense{
			Name:          d.Name,
			Amount:        d.Amount,
			Category:      d.Category,
			IsEssential:   d.IsEssential,
			InflationRate: d.InflationRate,
			StartedMonth:  sess.CurrentMonth,
		})
	}

	seed := e.rng.Intn(1 << 30)
	trajectories := e.generateTrajectories(ctx, newLocalRand(seed))

	for _, sector := range config.Sectors {
		if p := firstPriceForSector(trajectories, sector); p > 0 {
			sess.MarketPrices.Sectors[sector] = p
		}
	}
	for _, key := range e.cfg.FundOrder {
		sess.MarketPrices.Funds[key] = 100
	}

	if err := e.store.CreateSession(ctx, sess, expenses, trajectories); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &model.Result{Session: sess, Message: "New game started."}, nil
}

// generateTrajectories builds the session's 60-month price table. The tech
// sector is the one this engine would have enough daily-tick history to
// feed a forecast model for, so it's the only one offered to the forecast
// provider; gold and real_estate always walk GBM. Since this core doesn't
// ingest real daily ticks, the seed window handed to the provider is a
// short synthetic walk off the sector's configured GBM parameters — good
// enough to exercise the provider contract end to end, with the provider's
// own GBM fallback covering a failed call. With no endpoint configured the
// provider is not called and tech walks GBM like the other sectors.
func (e *Engine) generateTrajectories(ctx context.Context, rng *rand.Rand) []*model.StockHistory {
	var out []*model.StockHistory
	for _, sector := range config.Sectors {
		var prices []float64
		if sector == config.SectorTech && e.forecast.Enabled() {
			seed := syntheticSeedWindow(e.cfg, sector, rng)
			prices = e.forecast.Forecast(ctx, sector, e.cfg, seed, e.cfg.DurationMonths, rng)
		} else {
			prices = market.GenerateTrajectory(sector, e.cfg, e.cfg.DurationMonths, rng)
		}
		for i, p := range prices {
			out = append(out, &model.StockHistory{Sector: sector, Month: i + 1, Price: p})
		}
	}
	return out
}

// syntheticSeedWindow builds a 60-point feature window for the forecast
// provider out of a short GBM bootstrap, since this core has no real
// daily-tick ingestion pipeline of its own.
func syntheticSeedWindow(cfg *config.Config, sector config.Sector, rng *rand.Rand) []forecast.SeedPoint {
	closes := market.GenerateTrajectory(sector, cfg, 60, rng)
	seed := make([]forecast.SeedPoint, len(closes))
	prev := closes[0]
	for i, c := range closes {
		dailyReturn := 0.0
		if prev != 0 {
			dailyReturn = (c - prev) / prev
		}
		seed[i] = forecast.SeedPoint{Close: c, DailyReturn: dailyReturn}
		prev = c
	}
	return seed
}

// GetNextCard selects the next scenario card for a session, or nil if the
// deck is exhausted and no generation is available.
func (e *Engine) GetNextCard(ctx context.Context, sessionID, actorID string) (*model.ScenarioCard, error) {
	agg, err := e.load(ctx, sessionID, actorID)
	if err != nil {
		return nil, err
	}
	if !agg.Session.IsActive {
		return nil, model.NewError(model.ErrValidation, "session has already ended")
	}

	seen, err := e.store.SeenCardIDs(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return e.selector.Next(ctx, agg.Session, e.cfg, seen), nil
}

func firstPriceForSector(hist []*model.StockHistory, sector config.Sector) float64 {
	for _, h := range hist {
		if h.Sector == sector && h.Month == 1 {
			return h.Price
		}
	}
	return 0
}
