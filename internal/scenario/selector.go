// Package scenario selects the next card a player sees: a level-and-month
// filtered draw from the handcrafted deck, with an occasional attempt at
// an AI-generated card first.
package scenario

import (
	"context"
	"math/rand"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/llm"
	"github.com/arthneeti/engine/internal/model"
)

// Generator is the subset of llm.ScenarioGenerator the selector needs,
// narrowed for testability.
type Generator interface {
	Generate(ctx context.Context, filter config.LevelCardFilter, month int) (*model.ScenarioCard, error)
}

// Selector picks the next scenario card for a session.
type Selector struct {
	deck      []*model.ScenarioCard
	generator Generator
	rng       *rand.Rand
}

// New builds a selector over the handcrafted deck, with an optional AI
// generator (nil disables generation attempts).
func New(generator Generator, rng *rand.Rand) *Selector {
	return &Selector{deck: Deck(), generator: generator, rng: rng}
}

var _ Generator = (*llm.ScenarioGenerator)(nil)

// Next returns the next card for a session, given the set of card IDs it
// has already seen. It tries AI generation 30% of the time before falling
// back to the deck, matching the original's mix of latency and variety.
func (s *Selector) Next(ctx context.Context, sess *model.Session, cfg *config.Config, seen map[string]bool) *model.ScenarioCard {
	filter := cfg.FilterForLevel(sess.CurrentLevel)

	if s.generator != nil && s.rng.Float64() < 0.3 {
		if card, err := s.generator.Generate(ctx, filter, sess.CurrentMonth); err == nil && card != nil {
			return card
		}
	}

	return s.pickFromDeck(sess, filter, seen)
}

func (s *Selector) pickFromDeck(sess *model.Session, filter config.LevelCardFilter, seen map[string]bool) *model.ScenarioCard {
	candidates := s.filterDeck(sess, filter, seen, true)
	if len(candidates) == 0 {
		candidates = s.filterDeck(sess, config.LevelCardFilter{MaxDifficulty: 5}, seen, false)
	}
	if len(candidates) == 0 {
		candidates = s.filterDeck(sess, config.LevelCardFilter{MaxDifficulty: 5}, nil, false)
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[s.rng.Intn(len(candidates))]
}

// filterDeck returns active, handcrafted cards unlocked by month and
// difficulty, optionally restricted to a category set and excluding seen
// card IDs.
func (s *Selector) filterDeck(sess *model.Session, filter config.LevelCardFilter, seen map[string]bool, restrictCategory bool) []*model.ScenarioCard {
	var out []*model.ScenarioCard
	for _, card := range s.deck {
		if !card.IsActive || card.IsGenerated {
			continue
		}
		if card.MinMonth > sess.CurrentMonth {
			continue
		}
		if card.Difficulty > filter.MaxDifficulty {
			continue
		}
		if restrictCategory && len(filter.Categories) > 0 && !containsCategory(filter.Categories, card.Category) {
			continue
		}
		if seen != nil && seen[card.ID] {
			continue
		}
		out = append(out, card)
	}
	return out
}

func containsCategory(cats []config.Category, c config.Category) bool {
	for _, x := range cats {
		if x == c {
			return true
		}
	}
	return false
}

// BestChoice returns the card's recommended choice for the lifeline hint,
// falling back to the choice with the highest happiness impact.
func BestChoice(card *model.ScenarioCard) *model.Choice {
	for i := range card.Choices {
		if card.Choices[i].IsRecommended {
			return &card.Choices[i]
		}
	}
	if len(card.Choices) == 0 {
		return nil
	}
	best := &card.Choices[0]
	for i := 1; i < len(card.Choices); i++ {
		if card.Choices[i].HappinessImpact > best.HappinessImpact {
			best = &card.Choices[i]
		}
	}
	return best
}
