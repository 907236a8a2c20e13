package engine

import (
	"context"
	"fmt"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
)

// checkCharacterTriggers evaluates the contextual-character trigger policy,
// in strict priority order (spec.md §4.8):
//  1. Vasooli Bhai — a debt crisis (EMI load over half of net worth)
//  2. Sundar — a random scam offer (10% chance, only once cash is flush)
//  3. Harshad — idle cash sitting outside any position
//  4. Jetta Bhai — a business-owner profile, or a sustained wealth drop
//
// Returns nil when no character has anything to say this month.
func (e *Engine) checkCharacterTriggers(sess *model.Session, expenses []*model.RecurringExpense) *model.CharacterMessage {
	netWorth := sess.NetWorth()

	debtEMI := 0
	for _, exp := range expenses {
		if !exp.IsCancelled && exp.Category == config.ExpenseDebt {
			debtEMI += exp.Amount
		}
	}
	debtRatio := 1.0
	if netWorth > 0 {
		debtRatio = float64(debtEMI) / float64(netWorth)
	}
	if debtRatio > 0.5 || float64(debtEMI) > float64(sess.Wealth)*0.4 {
		return vasooliMessage(debtEMI, debtRatio)
	}

	if sess.Wealth > 10000 && e.rng.Float64() < 0.10 {
		return sundarMessage(sess.Wealth)
	}

	if sess.Wealth > 50000 && sess.PortfolioEmpty() {
		return harshadMessage(sess.Wealth)
	}

	wealthDropPct := float64(e.cfg.StartingWealth-sess.Wealth) / float64(e.cfg.StartingWealth)
	if sess.CareerStage == "BUSINESS_OWNER" || wealthDropPct > 0.10 {
		return jettaMessage(sess.CareerStage == "BUSINESS_OWNER", wealthDropPct)
	}

	return nil
}

func vasooliMessage(debtEMI int, debtRatio float64) *model.CharacterMessage {
	return &model.CharacterMessage{
		Character: "vasooli",
		Message: fmt.Sprintf(
			"Arre bhai! Your EMIs are eating ₹%d a month — that's %.0f%% of what you're worth. Pay on time or I'll be at your door.",
			debtEMI, debtRatio*100),
		Choices: []string{"I'll sort it out", "Can you give me more time?"},
	}
}

func sundarMessage(wealth int) *model.CharacterMessage {
	scamLoss := wealth / 2
	if scamLoss < 5000 {
		scamLoss = 5000
	}
	return &model.CharacterMessage{
		Character: "sundar",
		Message: fmt.Sprintf(
			"Bhaiya, I have a guaranteed scheme — double your ₹%d in 30 days, no risk at all! Invest now before the slots fill up.",
			scamLoss),
		Choices:        []string{"Invest", "Ignore"},
		IsScam:         true,
		ScamLossAmount: scamLoss,
	}
}

func harshadMessage(wealth int) *model.CharacterMessage {
	return &model.CharacterMessage{
		Character: "harshad",
		Message: fmt.Sprintf(
			"Why is ₹%d just sitting in your account? Cash doesn't grow sitting idle — put it to work in the market!",
			wealth),
		Choices: []string{"Show me stocks", "I'll think about it"},
	}
}

func jettaMessage(isBusiness bool, wealthDropPct float64) *model.CharacterMessage {
	reason := fmt.Sprintf("your wealth is down %.0f%% from where you started", wealthDropPct*100)
	if isBusiness {
		reason = "running a business means margins need watching"
	}
	return &model.CharacterMessage{
		Character: "jetta",
		Message:   fmt.Sprintf("Listen, %s. Let's go over the books before things get worse.", reason),
		Choices:   []string{"Walk me through it", "Not now"},
	}
}

// checkAdvisorTriggers is the proactive-advisor fallback used when no
// contextual character fired this month: a deterministic, keyword-free
// nudge keyed to wealth/happiness/expense thresholds (spec.md §4.8,
// matching the original's CRISIS/MILESTONE/WARNING/DANGER ladder).
func (e *Engine) checkAdvisorTriggers(_ context.Context, sess *model.Session) string {
	switch {
	case sess.Wealth < 5000:
		return "Your cash reserves are critically low. Cut discretionary spending this month."
	case sess.Wealth > 100000 && sess.CurrentMonth%6 == 0:
		return "Nice cushion you've built — have you thought about putting some of it to work in a mutual fund?"
	case sess.Happiness < 30:
		return "Burnout creeps up fast. A small guilt-free treat this month won't wreck your plan."
	case float64(sess.RecurringExpenseTotal) > float64(e.cfg.MonthlySalary)*0.6:
		return "Your fixed bills are eating over 60% of a typical month's income. Worth a budget review."
	default:
		return ""
	}
}
