package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/market"
	"github.com/arthneeti/engine/internal/model"
	"github.com/arthneeti/engine/internal/store"
)

// advanceMonth is the master time step: it advances the clock, credits
// income, drains recurring expenses (applying annual inflation), rolls the
// market forward, lists any matured IPOs, applies stat decay, checks for
// game over, and finally evaluates the contextual-character trigger policy.
// Grounded on advance_month in the original engine.
func (e *Engine) advanceMonth(ctx context.Context, agg *store.Aggregate) (string, *model.CharacterMessage, bool, model.GameOverReason, error) {
	sess := agg.Session
	sess.CurrentMonth++
	sess.CurrentLevel = e.cfg.LevelForMonthAndLiteracy(sess.CurrentMonth, sess.FinancialLiteracy)

	var report []string
	report = append(report, fmt.Sprintf("Month %d started!", sess.CurrentMonth))

	report = append(report, creditIncome(sess, agg.IncomeSources, e.cfg, e.rng)...)
	report = append(report, drainExpenses(sess, agg.Expenses)...)

	monthPrices, err := e.store.StockPricesForMonth(ctx, sess.ID, sess.CurrentMonth)
	if err != nil {
		return "", nil, false, "", err
	}
	seed := e.rng.Intn(1 << 30)
	marketChanges := market.RollForward(sess, e.cfg, monthPrices, newLocalRand(seed))
	if len(marketChanges) > 0 {
		report = append(report, fmt.Sprintf("Market update: %s", strings.Join(marketChanges, ", ")))
	}

	ipoSeed := e.rng.Intn(1 << 30)
	ipoLines := market.ProcessIPOListings(sess, e.cfg, newLocalRand(ipoSeed))
	report = append(report, ipoLines...)

	if sess.Wealth < 10000 {
		sess.Happiness = clampHappiness(e.cfg, sess.Happiness-2)
		report = append(report, "Financial stress is affecting your happiness (-2).")
	}
	if sess.Happiness > 90 {
		sess.Happiness = clampHappiness(e.cfg, sess.Happiness-1)
	}

	gameOver, reason := checkGameOver(e.cfg, sess)
	if gameOver {
		report = append(report, fmt.Sprintf("GAME OVER: %s", reason))
	}

	var chatbot *model.CharacterMessage
	if !gameOver {
		chatbot = e.checkCharacterTriggers(sess, agg.Expenses)
		if chatbot != nil {
			report = append(report, fmt.Sprintf("%s: %s", strings.ToUpper(chatbot.Character), chatbot.Message))
		} else if msg := e.checkAdvisorTriggers(ctx, sess); msg != "" {
			report = append(report, fmt.Sprintf("Advisor: %s", msg))
		}
	}

	appendLog(sess, strings.Join(report, " "))
	return strings.Join(report, " "), chatbot, gameOver, reason, nil
}

// creditIncome pays every configured IncomeSource (with freelance
// variability), falling back to the flat monthly salary when a session has
// no income sources defined.
func creditIncome(sess *model.Session, sources []*model.IncomeSource, cfg *config.Config, rng *safeRand) []string {
	var lines []string
	total := 0

	for _, src := range sources {
		amount := src.AmountBase
		if src.SourceType == model.IncomeFreelance {
			if rng.Float64() < 0.3 {
				amount = 0
				lines = append(lines, "No freelance gig this month.")
			} else {
				amount = int(float64(src.AmountBase) * (0.8 + rng.Float64()*0.4))
			}
		}
		if amount > 0 {
			total += amount
			lines = append(lines, fmt.Sprintf("+₹%d from %s", amount, src.SourceType))
		}
	}

	if len(sources) == 0 {
		total = cfg.MonthlySalary
		lines = append(lines, fmt.Sprintf("+₹%d salary credited.", total))
	}

	sess.Wealth += total
	return lines
}

// drainExpenses deducts every active recurring expense from wealth,
// applying annual inflation every 12 months starting month 13.
func drainExpenses(sess *model.Session, expenses []*model.RecurringExpense) []string {
	applyInflation := sess.CurrentMonth > 1 && sess.CurrentMonth%12 == 1

	var bills []string
	total := 0
	for _, exp := range expenses {
		if exp.IsCancelled {
			continue
		}
		if applyInflation && exp.InflationRate > 0 {
			old := exp.Amount
			exp.Amount = int(float64(old) * (1 + exp.InflationRate))
			bills = append(bills, fmt.Sprintf("%s rose to ₹%d (+%.0f%%)", exp.Name, exp.Amount, exp.InflationRate*100))
		}
		total += exp.Amount
	}

	sess.Wealth -= total
	sess.RecurringExpenseTotal = total

	report := []string{fmt.Sprintf("-₹%d total bills paid.", total)}
	if len(bills) > 0 {
		report = append(report, strings.Join(bills, " "))
	}
	return report
}

// checkGameOver evaluates the terminal conditions, in priority order:
// bankruptcy, burnout, then the fixed-duration completion.
func checkGameOver(cfg *config.Config, sess *model.Session) (bool, model.GameOverReason) {
	if sess.Wealth <= 0 {
		return true, model.ReasonBankruptcy
	}
	if sess.Happiness <= cfg.MinHappiness {
		return true, model.ReasonBurnout
	}
	if sess.CurrentMonth > cfg.DurationMonths {
		return true, model.ReasonCompleted
	}
	return false, ""
}
