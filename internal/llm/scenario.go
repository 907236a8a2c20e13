package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
)

// ScenarioGenerator produces a fresh, AI-written scenario card when the
// model is available and returns an error when it isn't, so the caller
// falls back to its own deck — generation never blocks card selection for
// long.
type ScenarioGenerator struct {
	client *Client
}

// NewScenarioGenerator builds a generator. client may be nil.
func NewScenarioGenerator(client *Client) *ScenarioGenerator {
	return &ScenarioGenerator{client: client}
}

// generatedCard is the shape the model is asked to emit, parsed out of its
// response the way the teacher's oracle parser pulls a JSON object out of
// free-form model text.
type generatedCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  int    `json:"difficulty"`
	Choices     []struct {
		Text            string `json:"text"`
		WealthImpact    int    `json:"wealth_impact"`
		HappinessImpact int    `json:"happiness_impact"`
		CreditImpact    int    `json:"credit_impact"`
		LiteracyImpact  int    `json:"literacy_impact"`
		Feedback        string `json:"feedback"`
		IsRecommended   bool   `json:"is_recommended"`
	} `json:"choices"`
}

// Generate asks the model for a new card matching the level's filter. It
// returns an error (never a partial card) when generation or parsing fails,
// so the caller can fall back to the static deck.
func (g *ScenarioGenerator) Generate(ctx context.Context, filter config.LevelCardFilter, month int) (*model.ScenarioCard, error) {
	if !g.client.Enabled() {
		return nil, fmt.Errorf("llm client not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	system := "You write short financial-literacy scenario cards for an Indian personal-finance game. Respond ONLY with a single JSON object."
	prompt := g.buildPrompt(filter, month)

	response, err := g.client.Complete(ctx, system, prompt, 500)
	if err != nil {
		return nil, fmt.Errorf("generate card: %w", err)
	}
	return parseGeneratedCard(response, month)
}

func (g *ScenarioGenerator) buildPrompt(filter config.LevelCardFilter, month int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "It is month %d of a 60-month financial-literacy game. Max difficulty: %d.\n", month, filter.MaxDifficulty)
	if len(filter.Categories) > 0 {
		cats := make([]string, len(filter.Categories))
		for i, c := range filter.Categories {
			cats[i] = string(c)
		}
		fmt.Fprintf(&b, "Pick a category from: %s.\n", strings.Join(cats, ", "))
	}
	b.WriteString(`Respond with a JSON object:
{
  "title": "short scenario title",
  "description": "1-2 sentence scenario",
  "category": "one of the allowed categories",
  "difficulty": 1-5,
  "choices": [
    {"text": "...", "wealth_impact": int, "happiness_impact": int, "credit_impact": int, "literacy_impact": int, "feedback": "...", "is_recommended": bool}
  ]
}
Provide 2 to 4 choices. Exactly one choice should have is_recommended true.`)
	return b.String()
}

func parseGeneratedCard(response string, month int) (*model.ScenarioCard, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var gc generatedCard
	if err := json.Unmarshal([]byte(response[start:end+1]), &gc); err != nil {
		return nil, fmt.Errorf("parse generated card: %w", err)
	}
	if gc.Title == "" || len(gc.Choices) == 0 {
		return nil, fmt.Errorf("incomplete generated card")
	}

	card := &model.ScenarioCard{
		ID:          fmt.Sprintf("generated-m%d-%s", month, sanitizeID(gc.Title)),
		Title:       gc.Title,
		Description: gc.Description,
		Category:    config.Category(gc.Category),
		Difficulty:  gc.Difficulty,
		MinMonth:    month,
		IsActive:    true,
		IsGenerated: true,
	}
	for i, c := range gc.Choices {
		card.Choices = append(card.Choices, model.Choice{
			ID:              fmt.Sprintf("%s-c%d", card.ID, i),
			CardID:          card.ID,
			Text:            c.Text,
			WealthImpact:    c.WealthImpact,
			HappinessImpact: c.HappinessImpact,
			CreditImpact:    c.CreditImpact,
			LiteracyImpact:  c.LiteracyImpact,
			Feedback:        c.Feedback,
			IsRecommended:   c.IsRecommended,
		})
	}
	return card, nil
}

func sanitizeID(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}
