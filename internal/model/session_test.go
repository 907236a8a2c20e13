package model

import (
	"testing"

	"github.com/arthneeti/engine/internal/config"
)

func TestNewSession_StartingValues_MatchConfig(t *testing.T) {
	cfg := config.Default()
	sess := NewSession("sess-1", "user-1", cfg)

	if sess.Wealth != cfg.StartingWealth {
		t.Errorf("Wealth = %d, want %d", sess.Wealth, cfg.StartingWealth)
	}
	if sess.Happiness != cfg.HappinessStart {
		t.Errorf("Happiness = %d, want %d", sess.Happiness, cfg.HappinessStart)
	}
	if sess.CreditScore != cfg.CreditScoreStart {
		t.Errorf("CreditScore = %d, want %d", sess.CreditScore, cfg.CreditScoreStart)
	}
	if sess.Lifelines != cfg.LifelinesStart {
		t.Errorf("Lifelines = %d, want %d", sess.Lifelines, cfg.LifelinesStart)
	}
	if !sess.IsActive {
		t.Error("IsActive = false, want true for a fresh session")
	}
	if sess.CurrentLevel != 1 {
		t.Errorf("CurrentLevel = %d, want 1 for a fresh session", sess.CurrentLevel)
	}
	for _, sector := range config.Sectors {
		if v := sess.Portfolio[sector]; v != 0 {
			t.Errorf("Portfolio[%s] = %v, want 0", sector, v)
		}
		if v := sess.MarketTrends[sector]; v != 0 {
			t.Errorf("MarketTrends[%s] = %v, want 0", sector, v)
		}
	}
}

func TestSession_PortfolioValue_SumsAcrossSectors(t *testing.T) {
	cfg := config.Default()
	sess := NewSession("sess-1", "user-1", cfg)
	sess.MarketPrices.Sectors[config.SectorTech] = 100
	sess.MarketPrices.Sectors[config.SectorGold] = 2000
	sess.Portfolio[config.SectorTech] = 10
	sess.Portfolio[config.SectorGold] = 1.5

	got := sess.PortfolioValue()
	want := int(10*100 + 1.5*2000)
	if got != want {
		t.Errorf("PortfolioValue() = %d, want %d", got, want)
	}
}

func TestSession_NetWorth_IsCashPlusPortfolio(t *testing.T) {
	cfg := config.Default()
	sess := NewSession("sess-1", "user-1", cfg)
	sess.Wealth = 5000
	sess.MarketPrices.Sectors[config.SectorTech] = 100
	sess.Portfolio[config.SectorTech] = 20

	if got, want := sess.NetWorth(), 5000+2000; got != want {
		t.Errorf("NetWorth() = %d, want %d", got, want)
	}
}

func TestSession_PortfolioEmpty(t *testing.T) {
	cfg := config.Default()
	sess := NewSession("sess-1", "user-1", cfg)

	if !sess.PortfolioEmpty() {
		t.Error("PortfolioEmpty() = false on a fresh session, want true")
	}

	sess.Portfolio[config.SectorGold] = 0.01
	if sess.PortfolioEmpty() {
		t.Error("PortfolioEmpty() = true with a nonzero gold holding, want false")
	}
}
