package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arthneeti/engine/internal/model"
)

// ReportGenerator writes the end-of-game report handed to a finishing
// player: a model-written narrative when available, a deterministic
// Markdown template otherwise.
type ReportGenerator struct {
	client *Client
}

// NewReportGenerator builds a generator. client may be nil.
func NewReportGenerator(client *Client) *ReportGenerator {
	return &ReportGenerator{client: client}
}

// Generate returns Markdown summarising a finished session.
func (g *ReportGenerator) Generate(ctx context.Context, sess *model.Session, reason model.GameOverReason) string {
	portfolioValue, breakdown := portfolioBreakdown(sess)

	if g.client.Enabled() {
		ctx, cancel := context.WithTimeout(ctx, 6*time.Second)
		defer cancel()
		if text, err := g.askModel(ctx, sess, reason, portfolioValue, breakdown); err == nil {
			return strings.TrimSpace(text)
		}
	}
	return g.fallback(sess, reason, portfolioValue, breakdown)
}

func portfolioBreakdown(sess *model.Session) (int, string) {
	total := 0
	var lines []string
	for sector, units := range sess.Portfolio {
		if units <= 0 {
			continue
		}
		price := sess.MarketPrices.Sectors[sector]
		value := int(units * price)
		total += value
		lines = append(lines, fmt.Sprintf("%s: %.2f units @ ₹%.0f (₹%d)", sector, units, price, value))
	}
	if len(lines) == 0 {
		return 0, "No active holdings."
	}
	return total, strings.Join(lines, "; ")
}

func (g *ReportGenerator) askModel(ctx context.Context, sess *model.Session, reason model.GameOverReason, portfolioValue int, breakdown string) (string, error) {
	system := "You are an expert financial coach writing a concise Markdown report for a finished financial-literacy game session."
	log := sess.GameplayLog
	if log == "" {
		log = "No gameplay log recorded."
	}
	prompt := fmt.Sprintf(`Use the sections: Summary, Highlights, Risks, Recommendations. Be supportive, specific, and keep it under 400 words.

Game outcome reason: %s
Final month: %d
Final wealth: ₹%d
Final happiness: %d
Final credit score: %d
Financial literacy: %d
Recurring expenses: ₹%d
Portfolio value: ₹%d
Portfolio breakdown: %s

Gameplay log:
%s
`, reason, sess.CurrentMonth, sess.Wealth, sess.Happiness, sess.CreditScore, sess.FinancialLiteracy,
		sess.RecurringExpenseTotal, portfolioValue, breakdown, log)

	return g.client.Complete(ctx, system, prompt, 600)
}

func (g *ReportGenerator) fallback(sess *model.Session, reason model.GameOverReason, portfolioValue int, breakdown string) string {
	return fmt.Sprintf(`## Summary
- Outcome: **%s** after month **%d**.
- Final cash: **₹%d**. Portfolio value: **₹%d**.
- Happiness: **%d**. Credit score: **%d**.

## Highlights
- Portfolio: %s
- Recurring expenses: ₹%d

## Risks
- Watch cash flow relative to recurring bills.
- Keep credit score healthy by avoiding high-interest debt.

## Recommendations
- Build a 3-6 month emergency fund.
- Automate savings with a monthly SIP.
- Review recurring expenses and cancel low-value subscriptions.
`, reason, sess.CurrentMonth, sess.Wealth, portfolioValue, sess.Happiness, sess.CreditScore,
		breakdown, sess.RecurringExpenseTotal)
}

// Persona summarises a finished session into one of six archetypes, matching
// the original rule tree exactly (wealth/happiness/literacy thresholds). The
// rule tree itself runs on raw cash (services_legacy.py:1366 uses
// session.wealth, not wealth + portfolio value) — a player sitting on a
// large stock position but little cash should still read as broke.
func Persona(sess *model.Session) *model.Persona {
	w, h, lit := sess.Wealth, sess.Happiness, sess.FinancialLiteracy

	var persona, desc string
	switch {
	case w > 100000 && h > 80:
		persona, desc = "The Financial Guru", "Mastered wealth AND happiness."
	case w > 100000 && h < 40:
		persona, desc = "The Miser", "Rich but miserable."
	case w < 10000 && h > 80:
		persona, desc = "The Happy-Go-Lucky", "Broke but smiling."
	case lit >= 80:
		persona, desc = "The Warren Buffett", "Strategic genius."
	case lit >= 50:
		persona, desc = "The Balanced Spender", "Good balance."
	default:
		persona, desc = "The FOMO Victim", "Driven by trends."
	}

	return &model.Persona{Persona: persona, Description: desc, FinalScore: lit, NetWorth: sess.NetWorth()}
}
