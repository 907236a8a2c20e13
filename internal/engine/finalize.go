package engine

import (
	"context"
	"time"

	"github.com/arthneeti/engine/internal/llm"
	"github.com/arthneeti/engine/internal/model"
	"github.com/arthneeti/engine/internal/store"
)

// finalize closes out a game session once checkGameOver has fired: it
// deactivates the session, writes a final report (deterministic or
// model-backed), and records the run in the Aggregate's FinalizedHistory so
// Save folds it into game_history and the user's player_profiles row in the
// same commit. Grounded on _finalize_game/_save_history.
func (e *Engine) finalize(agg *store.Aggregate, reason model.GameOverReason) {
	sess := agg.Session
	sess.IsActive = false
	if sess.FinalReport == "" {
		// A session closing out still needs its report and history row
		// written even if the caller's own request context is near its
		// deadline, so finalize uses a fresh background context here.
		sess.FinalReport = e.reportGen.Generate(context.Background(), sess, reason)
	}

	persona := llm.Persona(sess)
	agg.FinalizedHistory = &model.GameHistory{
		UserID:                 sess.UserID,
		FinalWealth:            sess.Wealth,
		FinalHappiness:         sess.Happiness,
		FinalCreditScore:       sess.CreditScore,
		FinancialLiteracyScore: sess.FinancialLiteracy,
		Persona:                persona.Persona,
		EndReason:              reason,
		MonthsPlayed:           sess.CurrentMonth,
		CreatedAt:              time.Now(),
		PortfolioValue:         sess.PortfolioValue(),
	}
}

// personaFor exposes the persona rule tree to the turn/month verbs that
// need it for the Result envelope.
func personaFor(sess *model.Session) *model.Persona {
	return llm.Persona(sess)
}
