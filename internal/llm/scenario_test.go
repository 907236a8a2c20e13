package llm

import (
	"context"
	"testing"

	"github.com/arthneeti/engine/internal/config"
)

func TestScenarioGenerator_Generate_DisabledClientErrors(t *testing.T) {
	gen := NewScenarioGenerator(nil)

	_, err := gen.Generate(context.Background(), config.LevelCardFilter{MaxDifficulty: 3}, 5)
	if err == nil {
		t.Fatal("Generate() with a disabled client succeeded, want an error so the caller falls back to the deck")
	}
}

func TestParseGeneratedCard_ExtractsJSONObjectFromSurroundingText(t *testing.T) {
	response := `Sure, here you go:
{
  "title": "Surprise Medical Bill",
  "description": "Your doctor recommends an unplanned test.",
  "category": "expenses",
  "difficulty": 2,
  "choices": [
    {"text": "Pay from savings", "wealth_impact": -3000, "happiness_impact": -2, "is_recommended": true},
    {"text": "Skip the test", "wealth_impact": 0, "happiness_impact": -5}
  ]
}
Hope that helps!`

	card, err := parseGeneratedCard(response, 7)
	if err != nil {
		t.Fatalf("parseGeneratedCard: %v", err)
	}
	if card.Title != "Surprise Medical Bill" {
		t.Errorf("Title = %q, want Surprise Medical Bill", card.Title)
	}
	if card.MinMonth != 7 {
		t.Errorf("MinMonth = %d, want 7", card.MinMonth)
	}
	if !card.IsGenerated {
		t.Error("IsGenerated = false, want true")
	}
	if len(card.Choices) != 2 {
		t.Fatalf("len(Choices) = %d, want 2", len(card.Choices))
	}
	if card.Choices[0].WealthImpact != -3000 {
		t.Errorf("Choices[0].WealthImpact = %d, want -3000", card.Choices[0].WealthImpact)
	}
	if card.Choices[0].CardID != card.ID {
		t.Errorf("Choices[0].CardID = %q, want %q", card.Choices[0].CardID, card.ID)
	}
}

func TestParseGeneratedCard_NoJSONObjectErrors(t *testing.T) {
	if _, err := parseGeneratedCard("no json here at all", 1); err == nil {
		t.Error("parseGeneratedCard() with no JSON object succeeded, want an error")
	}
}

func TestParseGeneratedCard_MissingChoicesErrors(t *testing.T) {
	response := `{"title": "Empty", "description": "no choices", "category": "expenses", "difficulty": 1, "choices": []}`
	if _, err := parseGeneratedCard(response, 1); err == nil {
		t.Error("parseGeneratedCard() with zero choices succeeded, want an error")
	}
}

func TestSanitizeID_LowercasesAndHyphenatesSpaces(t *testing.T) {
	got := sanitizeID("Surprise Medical Bill!")
	if got != "surprise-medical-bill" {
		t.Errorf("sanitizeID() = %q, want surprise-medical-bill", got)
	}
}
