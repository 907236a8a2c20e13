package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
	"github.com/arthneeti/engine/internal/scenario"
)

// SubmitChoice resolves a player's pick on a card: applies the choice's
// stat impacts, any recurring-expense add/cancel, any attached market
// event, logs the choice, and — once three cards have been resolved —
// advances the month. A game-over detected either by the choice itself or
// by the month advance finalizes the session before returning.
func (e *Engine) SubmitChoice(ctx context.Context, sessionID, actorID string, card *model.ScenarioCard, choiceID string) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session
		if !sess.IsActive {
			return model.NewError(model.ErrValidation, "session has already ended")
		}

		choice := card.ChoiceByID(choiceID)
		if choice == nil {
			return model.NewErrorf(model.ErrNotFound, "choice not found", "choice=%s", choiceID)
		}

		appendLog(sess, fmt.Sprintf("Month %d: %s — %s. Impact: wealth %+d, happiness %+d, credit %+d, literacy %+d.",
			sess.CurrentMonth, card.Title, choice.Text, choice.WealthImpact, choice.HappinessImpact, choice.CreditImpact, choice.LiteracyImpact))

		sess.Wealth += choice.WealthImpact
		sess.Happiness = clampHappiness(e.cfg, sess.Happiness+choice.HappinessImpact)
		sess.CreditScore = clampCredit(e.cfg, sess.CreditScore+choice.CreditImpact)
		sess.FinancialLiteracy += choice.LiteracyImpact
		if sess.FinancialLiteracy < 0 {
			sess.FinancialLiteracy = 0
		}

		var feedback []string
		if choice.Feedback != "" {
			feedback = append(feedback, choice.Feedback)
		}

		if choice.AddsRecurringExpense > 0 {
			name := choice.ExpenseName
			if name == "" {
				name = fmt.Sprintf("Expense from '%s'", card.Title)
			}
			exp := &model.RecurringExpense{
				Name:          name,
				Amount:        choice.AddsRecurringExpense,
				Category:      config.ExpenseLifestyle,
				IsEssential:   false,
				InflationRate: 0.04,
				StartedMonth:  sess.CurrentMonth,
			}
			agg.Expenses = append(agg.Expenses, exp)
		}

		if choice.CancelsExpenseName != "" {
			cancelled := 0
			for _, exp := range agg.Expenses {
				if exp.Name == choice.CancelsExpenseName && !exp.IsCancelled {
					exp.IsCancelled = true
					exp.CancelledMonth = sess.CurrentMonth
					cancelled++
				}
			}
			if cancelled > 0 {
				feedback = append(feedback, fmt.Sprintf("(Cancelled %d subscription(s)!)", cancelled))
			}
		}

		if card.MarketEvent != nil && card.MarketEvent.IsActive {
			var changes []string
			for sector, multiplier := range card.MarketEvent.SectorImpacts {
				old, ok := sess.MarketPrices.Sectors[sector]
				if !ok {
					continue
				}
				newPrice := old * multiplier
				sess.MarketPrices.Sectors[sector] = newPrice
				if multiplier > 1 {
					sess.MarketTrends[sector] = 3
				} else {
					sess.MarketTrends[sector] = -3
				}
				pct := int((multiplier - 1) * 100)
				direction := "surged"
				if pct < 0 {
					direction = "crashed"
				}
				if pct < 0 {
					pct = -pct
				}
				changes = append(changes, fmt.Sprintf("%s %s %d%%", sector, direction, pct))
			}
			if len(changes) > 0 {
				feedback = append(feedback, fmt.Sprintf("MARKET NEWS: %s!", strings.Join(changes, ", ")))
			}
		}

		agg.NewChoices = append(agg.NewChoices, &model.PlayerChoice{
			SessionID: sessionID, CardID: card.ID, ChoiceID: choice.ID, Timestamp: fixedNow(),
		})

		res := &model.Result{Session: sess}

		count, err := e.store.CountPlayerChoices(ctx, sessionID)
		if err != nil {
			return err
		}
		// The new choice hasn't committed yet; account for it directly.
		nextMonth := (count+1)/e.cfg.CardsPerMonth + 1

		if nextMonth > sess.CurrentMonth {
			monthReport, chatbot, gameOver, reason, err := e.advanceMonth(ctx, agg)
			if err != nil {
				return err
			}
			feedback = append(feedback, monthReport)
			res.MonthAdvanced = true
			res.Chatbot = chatbot
			if gameOver {
				e.finalize(agg, reason)
				res.GameOver = true
				res.GameOverReason = reason
				res.FinalPersona = personaFor(sess)
			}
		}

		if !res.GameOver {
			if over, reason := checkGameOver(e.cfg, sess); over {
				e.finalize(agg, reason)
				res.GameOver = true
				res.GameOverReason = reason
				res.FinalPersona = personaFor(sess)
			}
		}

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}

		res.Message = strings.Join(feedback, " ")
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SkipCard applies the skip penalty — heavier for EMERGENCY/NEEDS cards,
// a credit hit for missed INVESTMENT opportunities — and logs the skip.
func (e *Engine) SkipCard(ctx context.Context, sessionID, actorID string, card *model.ScenarioCard) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session
		if !sess.IsActive {
			return model.NewError(model.ErrValidation, "session has already ended")
		}

		happinessLoss, creditLoss := 5, 5
		switch card.Category {
		case config.CategoryEmergency, config.CategoryNeeds:
			happinessLoss, creditLoss = 15, 20
		case config.CategoryInvestment:
			creditLoss = 10
		}

		appendLog(sess, fmt.Sprintf("Month %d: Skipped %s. Penalty: happiness -%d, credit -%d.", sess.CurrentMonth, card.Title, happinessLoss, creditLoss))
		sess.Happiness = clampHappiness(e.cfg, sess.Happiness-happinessLoss)
		sess.CreditScore = clampCredit(e.cfg, sess.CreditScore-creditLoss)

		agg.NewChoices = append(agg.NewChoices, &model.PlayerChoice{
			SessionID: sessionID, CardID: card.ID, ChoiceID: "", Timestamp: fixedNow(),
		})

		res := &model.Result{Session: sess, Message: fmt.Sprintf("Skipped! Penalty: -%d Happiness, -%d Credit Score.", happinessLoss, creditLoss)}

		if over, reason := checkGameOver(e.cfg, sess); over {
			e.finalize(agg, reason)
			res.GameOver = true
			res.GameOverReason = reason
			res.FinalPersona = personaFor(sess)
		}

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UseLifeline spends one lifeline to reveal the recommended choice on a
// card.
func (e *Engine) UseLifeline(ctx context.Context, sessionID, actorID string, card *model.ScenarioCard) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session
		if sess.Lifelines <= 0 {
			return model.NewError(model.ErrValidation, "no lifelines remaining")
		}

		sess.Lifelines--
		best := scenario.BestChoice(card)
		hint := "No recommendation available."
		if best != nil {
			hint = fmt.Sprintf("Advisor suggests: %s", best.Text)
		}

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}
		result = &model.Result{Session: sess, Message: hint}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessScamChoice handles the player's response to a Sundar scam offer.
func (e *Engine) ProcessScamChoice(ctx context.Context, sessionID, actorID string, accepted bool, scamLossAmount int) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session

		if !accepted {
			sess.FinancialLiteracy += 5
			appendLog(sess, fmt.Sprintf("Month %d: Ignored Sundar's scam. Smart move!", sess.CurrentMonth))
			if err := e.store.Save(ctx, agg); err != nil {
				return err
			}
			result = &model.Result{Session: sess, Message: "Smart move! You avoided a scam. Remember: guaranteed high returns = guaranteed fraud!"}
			return nil
		}

		sess.Wealth -= scamLossAmount
		sess.Happiness = clampHappiness(e.cfg, sess.Happiness-15)
		sess.FinancialLiteracy -= 5
		if sess.FinancialLiteracy < 0 {
			sess.FinancialLiteracy = 0
		}
		appendLog(sess, fmt.Sprintf("Month %d: Fell for scam! Lost ₹%d to Sundar's scheme.", sess.CurrentMonth, scamLossAmount))

		res := &model.Result{Session: sess, Message: fmt.Sprintf("SCAM ALERT! Sundar vanished with your ₹%d! This is how Ponzi schemes work — if it's too good to be true, it is!", scamLossAmount)}

		if over, reason := checkGameOver(e.cfg, sess); over {
			e.finalize(agg, reason)
			res.GameOver = true
			res.GameOverReason = reason
			res.FinalPersona = personaFor(sess)
		}

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// fixedNow exists so call sites read naturally as "the current time" while
// staying in one place to swap for an injected clock in tests.
func fixedNow() time.Time {
	return time.Now()
}
