// Package market simulates sector stock prices, mutual fund NAVs and IPO
// outcomes. Trajectories are pre-generated at session creation using
// geometric Brownian motion and replayed month by month; this keeps a
// session's market history deterministic once generated. When the
// forecast collaborator (internal/forecast) is configured, the engine uses
// its model-backed tech trajectory in place of the GBM walk.
package market

import (
	"fmt"
	"math/rand"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// GenerateTrajectory produces `months` monthly prices for a sector starting
// from its configured seed, stepping curr *= 1 + N(mu, sigma) each month.
// This is the same legacy GBM fallback the original game used whenever a
// richer forecast wasn't available, grounded on the teacher's use of
// gonum distributions for stochastic sampling.
func GenerateTrajectory(sector config.Sector, cfg *config.Config, months int, rng *rand.Rand) []float64 {
	params, ok := cfg.GBM[sector]
	if !ok {
		params = config.GBMParams{Mu: 0.005, Sigma: 0.05, Start: 100}
	}
	step := distuv.Normal{Mu: params.Mu, Sigma: params.Sigma, Src: rng}

	prices := make([]float64, months)
	curr := params.Start
	for i := 0; i < months; i++ {
		curr = curr * (1 + step.Rand())
		if curr < 1 {
			curr = 1
		}
		prices[i] = curr
	}
	return prices
}

// GenerateAllTrajectories builds the full (sector, month) -> price table a
// new session needs, one GBM walk per configured sector.
func GenerateAllTrajectories(cfg *config.Config, months int, rng *rand.Rand) []*model.StockHistory {
	var out []*model.StockHistory
	for _, sector := range config.Sectors {
		prices := GenerateTrajectory(sector, cfg, months, rng)
		for i, p := range prices {
			out = append(out, &model.StockHistory{Sector: sector, Month: i + 1, Price: p})
		}
	}
	return out
}

// RollForward applies the pre-generated price for the session's current
// month to MarketPrices.Sectors and steps every mutual fund's NAV by an
// independent Gaussian draw, returning human-readable descriptions of any
// move large enough to be newsworthy (> 5% for stocks, < -5% for funds).
func RollForward(sess *model.Session, cfg *config.Config, monthPrices map[config.Sector]float64, rng *rand.Rand) []string {
	var changes []string

	for sector, newPrice := range monthPrices {
		oldPrice := sess.MarketPrices.Sectors[sector]
		sess.MarketPrices.Sectors[sector] = newPrice

		if oldPrice > 0 {
			pct := (newPrice - oldPrice) / oldPrice * 100
			if pct > 0.01 {
				sess.MarketTrends[sector] = 1
			} else if pct < -0.01 {
				sess.MarketTrends[sector] = -1
			} else {
				sess.MarketTrends[sector] = 0
			}
			if abs(pct) > 5 {
				direction := "surged"
				if pct < 0 {
					direction = "tanked"
				}
				changes = append(changes, fmt.Sprintf("%s %s %.1f%%", titleCase(string(sector)), direction, abs(pct)))
			}
		}
	}

	for _, key := range cfg.FundOrder {
		fund := cfg.MutualFunds[key]
		step := distuv.Normal{Mu: 0.008, Sigma: fund.Volatility, Src: rng}
		changePct := step.Rand()

		oldNAV := sess.MarketPrices.Funds[key]
		if oldNAV == 0 {
			oldNAV = 100
		}
		newNAV := oldNAV * (1 + changePct)
		if newNAV < 10 {
			newNAV = 10
		}
		sess.MarketPrices.Funds[key] = newNAV

		if changePct < -0.05 {
			changes = append(changes, fmt.Sprintf("%s dropped %.1f%%", fund.Name, abs(changePct*100)))
		}
	}

	return changes
}

// ProcessIPOListings lists every applied IPO whose application month has
// passed, sampling an allotment ratio and a listing-day gain or loss, and
// crediting the refund plus listed value back to the player's wealth. It
// returns report lines describing each outcome; listed applications stay in
// the session's IPO list, marked PROCESSED, next to the still-open ones.
func ProcessIPOListings(sess *model.Session, cfg *config.Config, rng *rand.Rand) []string {
	var lines []string
	var remaining []model.IPOApplication

	for _, app := range sess.ActiveIPOs {
		if app.Status != model.IPOStatusApplied || app.Month >= sess.CurrentMonth {
			remaining = append(remaining, app)
			continue
		}

		listing, ok := findIPOByName(cfg, app.Name)
		listingGainPct := 0.1
		if ok {
			if rng.Float64() < listing.ListingGainProb {
				listingGainPct = 0.1 + rng.Float64()*0.7 // +10% to +80%
			} else {
				listingGainPct = -0.3 + rng.Float64()*0.25 // -30% to -5%
			}
		}

		allotmentRatio := []float64{0.0, 0.5, 1.0}[rng.Intn(3)]
		invested := float64(app.Amount)
		allotted := invested * allotmentRatio
		refund := invested - allotted
		finalValue := allotted * (1 + listingGainPct)
		totalCredit := refund + finalValue
		profit := totalCredit - invested

		sess.Wealth += int(totalCredit)

		var status string
		switch {
		case allotmentRatio == 0:
			status = "No allotment (refunded)."
		case profit > 0:
			status = fmt.Sprintf("Listed with gains! Profit: ₹%d", int(profit))
		default:
			status = fmt.Sprintf("Discount listing. Loss: ₹%d", int(-profit))
		}
		lines = append(lines, fmt.Sprintf("IPO %s: %s", app.Name, status))

		app.Status = model.IPOStatusProcessed
		remaining = append(remaining, app)
	}

	sess.ActiveIPOs = remaining
	return lines
}

func findIPOByName(cfg *config.Config, name string) (config.IPOListing, bool) {
	for _, l := range cfg.IPOSchedule {
		if l.Name == name {
			return l, true
		}
	}
	return config.IPOListing{}, false
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	for i := 1; i < len(b); i++ {
		if b[i] == '_' {
			b[i] = ' '
			if i+1 < len(b) && b[i+1] >= 'a' && b[i+1] <= 'z' {
				b[i+1] -= 'a' - 'A'
			}
		}
	}
	return string(b)
}
