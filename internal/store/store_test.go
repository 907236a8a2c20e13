package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestCreateSessionAndLoad_RoundTrips(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	cfg := config.Default()

	sess := model.NewSession("sess-1", "user-1", cfg)
	sess.MarketPrices.Sectors[config.SectorTech] = 500
	expenses := []*model.RecurringExpense{
		{Name: "Rent", Amount: 10000, Category: config.ExpenseHousing, IsEssential: true, StartedMonth: 1},
	}
	history := []*model.StockHistory{
		{Sector: config.SectorTech, Month: 1, Price: 500},
	}

	if err := st.CreateSession(ctx, sess, expenses, history); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	agg, err := st.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if agg.Session.UserID != "user-1" {
		t.Errorf("UserID = %s, want user-1", agg.Session.UserID)
	}
	if agg.Session.Wealth != cfg.StartingWealth {
		t.Errorf("Wealth = %d, want %d", agg.Session.Wealth, cfg.StartingWealth)
	}
	if len(agg.Expenses) != 1 || agg.Expenses[0].Name != "Rent" {
		t.Errorf("Expenses = %+v, want one Rent expense", agg.Expenses)
	}

	prices, err := st.StockPricesForMonth(ctx, "sess-1", 1)
	if err != nil {
		t.Fatalf("StockPricesForMonth: %v", err)
	}
	if prices[config.SectorTech] != 500 {
		t.Errorf("StockPricesForMonth[tech] = %v, want 500", prices[config.SectorTech])
	}
}

func TestSave_PersistsMutationsAndAppendedChoices(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	cfg := config.Default()

	sess := model.NewSession("sess-1", "user-1", cfg)
	if err := st.CreateSession(ctx, sess, nil, nil); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	agg, err := st.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	agg.Session.Wealth = 12345
	agg.NewChoices = append(agg.NewChoices, &model.PlayerChoice{
		SessionID: "sess-1", CardID: "rent-due", ChoiceID: "rent-due-pay",
	})

	if err := st.Save(ctx, agg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := st.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
	if reloaded.Session.Wealth != 12345 {
		t.Errorf("Wealth after Save = %d, want 12345", reloaded.Session.Wealth)
	}

	count, err := st.CountPlayerChoices(ctx, "sess-1")
	if err != nil {
		t.Fatalf("CountPlayerChoices: %v", err)
	}
	if count != 1 {
		t.Errorf("CountPlayerChoices = %d, want 1", count)
	}

	seen, err := st.SeenCardIDs(ctx, "sess-1")
	if err != nil {
		t.Fatalf("SeenCardIDs: %v", err)
	}
	if !seen["rent-due"] {
		t.Error(`SeenCardIDs["rent-due"] = false, want true`)
	}
}

func TestSave_FinalizedHistoryUpdatesPlayerProfile(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	cfg := config.Default()

	sess := model.NewSession("sess-1", "user-1", cfg)
	if err := st.CreateSession(ctx, sess, nil, nil); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	agg, err := st.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	agg.Session.IsActive = false
	agg.FinalizedHistory = &model.GameHistory{
		UserID:                 "user-1",
		FinalWealth:            99000,
		FinalHappiness:         70,
		FinancialLiteracyScore: 60,
		Persona:                "The Saver",
		EndReason:              model.ReasonCompleted,
		MonthsPlayed:           cfg.DurationMonths,
		PortfolioValue:         15000,
	}

	if err := st.Save(ctx, agg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	profile, err := st.LoadProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if profile.TotalGames != 1 {
		t.Errorf("TotalGames = %d, want 1", profile.TotalGames)
	}
	if profile.HighestWealth != 114000 {
		t.Errorf("HighestWealth = %d, want 114000 (wealth + portfolio value)", profile.HighestWealth)
	}
	if profile.HighestStockProfit != 15000 {
		t.Errorf("HighestStockProfit = %d, want 15000 (portfolio value)", profile.HighestStockProfit)
	}

	history, err := st.ListHistory(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if len(history) != 1 || history[0].Persona != "The Saver" {
		t.Errorf("ListHistory = %+v, want one row for The Saver", history)
	}
}
