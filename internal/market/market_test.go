package market

import (
	"math/rand"
	"testing"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
)

func TestGenerateTrajectory_ProducesRequestedLength(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))

	prices := GenerateTrajectory(config.SectorTech, cfg, 60, rng)
	if len(prices) != 60 {
		t.Fatalf("len(prices) = %d, want 60", len(prices))
	}
	for i, p := range prices {
		if p < 1 {
			t.Errorf("prices[%d] = %v, want >= 1 (floor)", i, p)
		}
	}
}

func TestGenerateAllTrajectories_CoversEverySector(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))

	hist := GenerateAllTrajectories(cfg, 12, rng)
	counts := map[config.Sector]int{}
	for _, h := range hist {
		counts[h.Sector]++
	}
	for _, sector := range config.Sectors {
		if counts[sector] != 12 {
			t.Errorf("counts[%s] = %d, want 12", sector, counts[sector])
		}
	}
}

func TestRollForward_UpdatesPricesAndTrends(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))
	sess := model.NewSession("s1", "u1", cfg)
	sess.MarketPrices.Sectors[config.SectorTech] = 100

	monthPrices := map[config.Sector]float64{config.SectorTech: 120}
	RollForward(sess, cfg, monthPrices, rng)

	if sess.MarketPrices.Sectors[config.SectorTech] != 120 {
		t.Errorf("Sectors[tech] = %v, want 120", sess.MarketPrices.Sectors[config.SectorTech])
	}
	if sess.MarketTrends[config.SectorTech] != 1 {
		t.Errorf("MarketTrends[tech] = %d, want 1 (up)", sess.MarketTrends[config.SectorTech])
	}
	for _, key := range cfg.FundOrder {
		if sess.MarketPrices.Funds[key] <= 0 {
			t.Errorf("Funds[%s] = %v, want > 0", key, sess.MarketPrices.Funds[key])
		}
	}
}

func TestRollForward_FlagsLargeMoveAsNews(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))
	sess := model.NewSession("s1", "u1", cfg)
	sess.MarketPrices.Sectors[config.SectorGold] = 100

	changes := RollForward(sess, cfg, map[config.Sector]float64{config.SectorGold: 50}, rng)
	found := false
	for _, c := range changes {
		if c == "Gold tanked 50.0%" {
			found = true
		}
	}
	if !found {
		t.Errorf("changes = %v, want a tanked-50%% entry for gold", changes)
	}
}

func TestProcessIPOListings_MaturesPastMonthApplications(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))
	sess := model.NewSession("s1", "u1", cfg)
	sess.CurrentMonth = 7
	startWealth := sess.Wealth
	sess.ActiveIPOs = []model.IPOApplication{
		{Name: "Zomato", Amount: 20000, Status: model.IPOStatusApplied, Month: 6},
	}

	lines := ProcessIPOListings(sess, cfg, rng)
	if len(lines) != 1 {
		t.Fatalf("len(lines) = %d, want 1", len(lines))
	}
	if sess.ActiveIPOs[0].Status != model.IPOStatusProcessed {
		t.Errorf("ActiveIPOs[0].Status = %s, want PROCESSED", sess.ActiveIPOs[0].Status)
	}
	if sess.Wealth == startWealth {
		t.Error("Wealth unchanged after a matured IPO; expected a refund/gain credit")
	}
}

func TestProcessIPOListings_LeavesOpenApplicationsUntouched(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))
	sess := model.NewSession("s1", "u1", cfg)
	sess.CurrentMonth = 5
	sess.ActiveIPOs = []model.IPOApplication{
		{Name: "Zomato", Amount: 20000, Status: model.IPOStatusApplied, Month: 6},
	}

	lines := ProcessIPOListings(sess, cfg, rng)
	if len(lines) != 0 {
		t.Errorf("len(lines) = %d, want 0 for an application whose month hasn't arrived", len(lines))
	}
	if sess.ActiveIPOs[0].Status != model.IPOStatusApplied {
		t.Errorf("ActiveIPOs[0].Status = %s, want APPLIED (untouched)", sess.ActiveIPOs[0].Status)
	}
}
