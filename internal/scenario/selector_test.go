package scenario

import (
	"context"
	"math/rand"
	"testing"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
)

func TestBestChoice_PrefersRecommendedChoice(t *testing.T) {
	card := &model.ScenarioCard{
		Choices: []model.Choice{
			{ID: "a", Text: "a", HappinessImpact: 10},
			{ID: "b", Text: "b", HappinessImpact: -5, IsRecommended: true},
		},
	}
	best := BestChoice(card)
	if best == nil || best.ID != "b" {
		t.Errorf("BestChoice() = %v, want choice b (the recommended one)", best)
	}
}

func TestBestChoice_FallsBackToHighestHappinessImpact(t *testing.T) {
	card := &model.ScenarioCard{
		Choices: []model.Choice{
			{ID: "a", Text: "a", HappinessImpact: 10},
			{ID: "b", Text: "b", HappinessImpact: 25},
		},
	}
	best := BestChoice(card)
	if best == nil || best.ID != "b" {
		t.Errorf("BestChoice() = %v, want choice b (highest happiness impact)", best)
	}
}

func TestBestChoice_EmptyCardReturnsNil(t *testing.T) {
	if got := BestChoice(&model.ScenarioCard{}); got != nil {
		t.Errorf("BestChoice(empty card) = %v, want nil", got)
	}
}

func TestSelector_Next_SkipsAlreadySeenCards(t *testing.T) {
	cfg := config.Default()
	sess := model.NewSession("s1", "u1", cfg)
	sess.CurrentMonth = cfg.DurationMonths // clear every card's MinMonth gate
	rng := rand.New(rand.NewSource(1))
	sel := New(nil, rng)

	seen := map[string]bool{}
	for _, card := range sel.deck {
		seen[card.ID] = true
	}
	delete(seen, sel.deck[len(sel.deck)-1].ID)

	card := sel.Next(context.Background(), sess, cfg, seen)
	if card == nil {
		t.Fatal("Next() = nil, want the one unseen card")
	}
	if card.ID != sel.deck[len(sel.deck)-1].ID {
		t.Errorf("Next().ID = %s, want %s (the only unseen card)", card.ID, sel.deck[len(sel.deck)-1].ID)
	}
}

func TestSelector_Next_ReplaysDeckOnceEveryCardHasBeenSeen(t *testing.T) {
	// The third fallback pass in pickFromDeck drops the seen-exclusion
	// entirely, so a fully-seen deck still yields a card rather than nil —
	// the handcrafted deck is a renewable fallback, not a one-shot pool.
	cfg := config.Default()
	sess := model.NewSession("s1", "u1", cfg)
	sess.CurrentMonth = cfg.DurationMonths
	rng := rand.New(rand.NewSource(1))
	sel := New(nil, rng)

	seen := map[string]bool{}
	for _, card := range sel.deck {
		seen[card.ID] = true
	}

	if card := sel.Next(context.Background(), sess, cfg, seen); card == nil {
		t.Error("Next() with every card seen = nil, want a replayed deck card")
	}
}
