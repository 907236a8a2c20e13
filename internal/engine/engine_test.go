package engine

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/forecast"
	"github.com/arthneeti/engine/internal/llm"
	"github.com/arthneeti/engine/internal/model"
	"github.com/arthneeti/engine/internal/scenario"
	"github.com/arthneeti/engine/internal/store"
)

// newTestEngine wires an Engine over a throwaway SQLite file with every
// external collaborator disabled, so tests exercise only deterministic
// fallback behavior.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	rng := rand.New(rand.NewSource(1))
	advisor := llm.NewAdvisor(nil, rng)
	reportGen := llm.NewReportGenerator(nil)
	scenarioGen := llm.NewScenarioGenerator(nil)
	selector := scenario.New(scenarioGen, rng)
	forecastProvider := forecast.NewProvider("")

	return New(config.Default(), st, selector, advisor, reportGen, forecastProvider, 42)
}

func TestStartNewSession_SeedsStartingState(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.StartNewSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("StartNewSession: %v", err)
	}
	if result.Session.Wealth != eng.cfg.StartingWealth {
		t.Errorf("Wealth = %d, want %d", result.Session.Wealth, eng.cfg.StartingWealth)
	}
	for _, sector := range config.Sectors {
		if result.Session.MarketPrices.Sectors[sector] <= 0 {
			t.Errorf("MarketPrices.Sectors[%s] not seeded", sector)
		}
	}
}

func TestGetNextCard_RejectsOtherActor(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.StartNewSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("StartNewSession: %v", err)
	}

	_, err = eng.GetNextCard(ctx, result.Session.ID, "someone-else")
	if err == nil {
		t.Fatal("GetNextCard with wrong actor: want error, got nil")
	}
	engErr, ok := err.(*model.EngineError)
	if !ok {
		t.Fatalf("error type = %T, want *model.EngineError", err)
	}
	if engErr.Kind != model.ErrPermissionDenied {
		t.Errorf("error kind = %s, want %s", engErr.Kind, model.ErrPermissionDenied)
	}
}

func TestSubmitChoice_AppliesImpactsAndLogsChoice(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.StartNewSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("StartNewSession: %v", err)
	}
	sessionID := result.Session.ID
	startWealth := result.Session.Wealth

	card, err := eng.GetNextCard(ctx, sessionID, "user-1")
	if err != nil {
		t.Fatalf("GetNextCard: %v", err)
	}
	if card == nil {
		t.Fatal("GetNextCard returned nil card for a fresh session")
	}
	choice := card.Choices[0]

	result, err = eng.SubmitChoice(ctx, sessionID, "user-1", card, choice.ID)
	if err != nil {
		t.Fatalf("SubmitChoice: %v", err)
	}
	if got, want := result.Session.Wealth, startWealth+choice.WealthImpact; got != want {
		t.Errorf("Wealth = %d, want %d", got, want)
	}

	seen, err := eng.store.SeenCardIDs(ctx, sessionID)
	if err != nil {
		t.Fatalf("SeenCardIDs: %v", err)
	}
	if !seen[card.ID] {
		t.Errorf("SeenCardIDs[%s] = false, want the submitted card logged", card.ID)
	}
}

func TestSubmitChoice_UnknownChoiceIsNotFound(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.StartNewSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("StartNewSession: %v", err)
	}
	card, err := eng.GetNextCard(ctx, result.Session.ID, "user-1")
	if err != nil || card == nil {
		t.Fatalf("GetNextCard: card=%v err=%v", card, err)
	}

	_, err = eng.SubmitChoice(ctx, result.Session.ID, "user-1", card, "no-such-choice")
	engErr, ok := err.(*model.EngineError)
	if !ok {
		t.Fatalf("error type = %T, want *model.EngineError", err)
	}
	if engErr.Kind != model.ErrNotFound {
		t.Errorf("error kind = %s, want %s", engErr.Kind, model.ErrNotFound)
	}
}

func TestBuyStock_GatedBelowInvestingLevel(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.StartNewSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("StartNewSession: %v", err)
	}

	_, err = eng.BuyStock(ctx, result.Session.ID, "user-1", config.SectorTech, 1000)
	engErr, ok := err.(*model.EngineError)
	if !ok {
		t.Fatalf("error type = %T, want *model.EngineError", err)
	}
	if engErr.Kind != model.ErrGated {
		t.Errorf("error kind = %s, want %s", engErr.Kind, model.ErrGated)
	}
}

func TestBuyStock_InsufficientFunds(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.StartNewSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("StartNewSession: %v", err)
	}
	sessionID := result.Session.ID

	agg, err := eng.load(ctx, sessionID, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	agg.Session.CurrentLevel = eng.cfg.LevelUnlocks.Investing
	agg.Session.Wealth = 100
	if err := eng.store.Save(ctx, agg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err = eng.BuyStock(ctx, sessionID, "user-1", config.SectorTech, 100000)
	engErr, ok := err.(*model.EngineError)
	if !ok {
		t.Fatalf("error type = %T, want *model.EngineError", err)
	}
	if engErr.Kind != model.ErrInsufficientFunds {
		t.Errorf("error kind = %s, want %s", engErr.Kind, model.ErrInsufficientFunds)
	}
}

func TestBuyStock_SuccessDeductsWealthAndAddsUnits(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.StartNewSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("StartNewSession: %v", err)
	}
	sessionID := result.Session.ID

	agg, err := eng.load(ctx, sessionID, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	agg.Session.CurrentLevel = eng.cfg.LevelUnlocks.Investing
	price := agg.Session.MarketPrices.Sectors[config.SectorTech]
	if err := eng.store.Save(ctx, agg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	res, err := eng.BuyStock(ctx, sessionID, "user-1", config.SectorTech, 1000)
	if err != nil {
		t.Fatalf("BuyStock: %v", err)
	}
	wantUnits := 1000 / price
	if got := res.Session.Portfolio[config.SectorTech]; got < wantUnits-0.001 || got > wantUnits+0.001 {
		t.Errorf("Portfolio[tech] = %v, want ~%v", got, wantUnits)
	}
	if got, want := res.Session.Wealth, eng.cfg.StartingWealth-1000; got != want {
		t.Errorf("Wealth = %d, want %d", got, want)
	}
}

func TestTakeLoan_FamilyLoanRefusedWhenWealthAlreadyHigh(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.StartNewSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("StartNewSession: %v", err)
	}
	sessionID := result.Session.ID

	agg, err := eng.load(ctx, sessionID, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	agg.Session.CurrentLevel = eng.cfg.LevelUnlocks.Loans
	agg.Session.Wealth = 60000
	if err := eng.store.Save(ctx, agg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err = eng.TakeLoan(ctx, sessionID, "user-1", LoanFamily)
	if err == nil {
		t.Fatal("TakeLoan(FAMILY) with high wealth: want error, got nil")
	}
}

func TestTakeLoan_InstantAppRejectedBeyondCreditLimit(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	result, err := eng.StartNewSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("StartNewSession: %v", err)
	}
	sessionID := result.Session.ID

	agg, err := eng.load(ctx, sessionID, "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	agg.Session.CurrentLevel = eng.cfg.LevelUnlocks.Loans
	agg.Session.CreditScore = 300 // limit = 300*30 = 9000 < 10000 requested
	if err := eng.store.Save(ctx, agg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err = eng.TakeLoan(ctx, sessionID, "user-1", LoanInstantApp)
	if err == nil {
		t.Fatal("TakeLoan(INSTANT_APP) beyond credit limit: want error, got nil")
	}
}

func TestCheckGameOver_PriorityOrder(t *testing.T) {
	cfg := config.Default()
	sess := model.NewSession("s1", "u1", cfg)

	sess.Wealth = 0
	sess.Happiness = 0
	if over, reason := checkGameOver(cfg, sess); !over || reason != model.ReasonBankruptcy {
		t.Errorf("checkGameOver with wealth<=0 and happiness<=0 = (%v, %s), want (true, %s)", over, reason, model.ReasonBankruptcy)
	}

	sess.Wealth = 1000
	sess.Happiness = 0
	if over, reason := checkGameOver(cfg, sess); !over || reason != model.ReasonBurnout {
		t.Errorf("checkGameOver with happiness<=0 = (%v, %s), want (true, %s)", over, reason, model.ReasonBurnout)
	}

	sess.Happiness = 50
	sess.CurrentMonth = cfg.DurationMonths + 1
	if over, reason := checkGameOver(cfg, sess); !over || reason != model.ReasonCompleted {
		t.Errorf("checkGameOver past duration = (%v, %s), want (true, %s)", over, reason, model.ReasonCompleted)
	}

	sess.CurrentMonth = 1
	if over, _ := checkGameOver(cfg, sess); over {
		t.Error("checkGameOver on a healthy mid-game session = true, want false")
	}
}
