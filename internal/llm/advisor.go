package llm

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/arthneeti/engine/internal/model"
)

// Advisor gives a player short, actionable financial advice for the card
// they're facing, using the model when available and a curated
// keyword-matched catalogue otherwise.
type Advisor struct {
	client *Client
	rng    *rand.Rand
}

// NewAdvisor builds an advisor. client may be nil, in which case every call
// uses the curated fallback.
func NewAdvisor(client *Client, rng *rand.Rand) *Advisor {
	return &Advisor{client: client, rng: rng}
}

// Advice is the outcome of one advisor call.
type Advice struct {
	Text   string
	Source string // "ai" or "curated"
}

// Advise returns advice for the given card, never blocking longer than
// 4 seconds on the model before falling back.
func (a *Advisor) Advise(ctx context.Context, card *model.ScenarioCard, wealth, happiness int) Advice {
	if a.client.Enabled() {
		ctx, cancel := context.WithTimeout(ctx, 4*time.Second)
		defer cancel()
		if text, err := a.askModel(ctx, card, wealth, happiness); err == nil {
			return Advice{Text: text, Source: "ai"}
		}
	}
	return Advice{Text: a.curated(card), Source: "curated"}
}

func (a *Advisor) askModel(ctx context.Context, card *model.ScenarioCard, wealth, happiness int) (string, error) {
	var choices strings.Builder
	for _, c := range card.Choices {
		fmt.Fprintf(&choices, "- %s (Wealth: %+d, Happiness: %+d)\n", c.Text, c.WealthImpact, c.HappinessImpact)
	}

	system := "You are a friendly Indian financial advisor in a financial literacy game called Arth-Neeti."
	prompt := fmt.Sprintf(`A young professional earning ₹25,000/month is facing this situation:

Current Status:
- Wealth: ₹%d
- Happiness: %d/100

Scenario: %s
%s

Available Choices:
%s

Give brief, practical financial advice (2-3 sentences max) in a friendly tone.
Consider the 50-30-20 rule (50%% needs, 30%% wants, 20%% savings).
Don't explicitly say which option to pick, but guide them toward smart financial thinking.`,
		wealth, happiness, card.Title, card.Description, choices.String())

	return a.client.Complete(ctx, system, prompt, 200)
}

var curatedAdvice = []struct {
	keywords []string
	lines    []string
}{
	{
		keywords: []string{"friend", "party", "wedding", "festival", "celebration"},
		lines: []string{
			"Social events are important, but set a budget before attending. It's okay to say 'I'll catch the next one' if your finances are tight!",
			"Before spending on social events, ask yourself: 'Is this a need or a want?' Your future self will thank you for wise choices.",
			"Consider the 50-30-20 rule: 50% for needs, 30% for wants (like social events), 20% for savings. Where does this fit?",
		},
	},
	{
		keywords: []string{"sale", "discount", "offer", "deal", "shopping"},
		lines: []string{
			"A discount on something you don't need isn't savings — it's still spending! Ask: 'Would I buy this at full price?'",
			"Impulse buying often leads to regret. Try the 24-hour rule: wait a day before making non-essential purchases.",
			"Just because something is on sale doesn't mean you can afford it. Check your budget first!",
		},
	},
	{
		keywords: []string{"investment", "mutual fund", "stock", "sip", "fd", "deposit"},
		lines: []string{
			"Start investing early, even small amounts! SIPs of ₹500/month can grow significantly over time thanks to compounding.",
			"Don't put all eggs in one basket. Diversify between safe options (FD, PPF) and growth options (mutual funds, stocks).",
			"Before investing, build an emergency fund first — 3-6 months of expenses. Then invest consistently.",
		},
	},
	{
		keywords: []string{"loan", "emi", "credit", "borrow", "debt"},
		lines: []string{
			"Avoid high-interest loans like credit cards (36-48% p.a.) and instant loan apps. They create a debt trap!",
			"The EMI rule: total EMIs shouldn't exceed 40% of your monthly income. Beyond this, you risk financial stress.",
			"Good debt (education, home) vs bad debt (gadgets, vacations). Know the difference before borrowing.",
		},
	},
	{
		keywords: []string{"emergency", "hospital", "accident", "repair", "urgent"},
		lines: []string{
			"This is exactly why an emergency fund matters! Always keep 3-6 months of expenses saved for unexpected situations.",
			"For true emergencies, prioritize health and safety. Money can be earned back, but time and health cannot.",
			"Consider getting health insurance if you don't have one. ₹500-1000/month can save you lakhs later!",
		},
	},
	{
		keywords: []string{"phone", "gadget", "laptop", "electronics", "upgrade"},
		lines: []string{
			"Gadgets depreciate fast! Ask yourself: is this an upgrade you need, or just want? Last year's model often works just as well.",
			"Before buying electronics on EMI, calculate the total cost with interest. That ₹50k phone might cost ₹60k!",
			"The best phone is the one you can afford without stress. Function over fashion saves money.",
		},
	},
	{
		keywords: []string{"insurance", "policy", "term", "health"},
		lines: []string{
			"Insurance is for protection, not investment! Buy term insurance for life cover — cheap and high coverage.",
			"Health insurance is a must — medical inflation in India is 15% per year. Get covered before you need it.",
			"Review insurance policies before buying. Traditional endowment policies often give poor returns compared to mutual funds.",
		},
	},
}

var generalAdvice = []string{
	"Track every rupee you spend for a month. You'll be surprised where your money goes!",
	"Remember the 50-30-20 rule: 50% needs, 30% wants, 20% savings. Small discipline leads to big wealth!",
	"Pay yourself first! Set up auto-transfers to savings as soon as salary arrives, before spending on anything else.",
	"Your financial decisions today shape your tomorrow. Think long-term, but don't forget to enjoy life responsibly!",
	"Before any purchase, ask: is this a need, a want, or a 'nice to have'? Prioritize accordingly.",
}

// curated returns keyword-matched advice for a card, or a general tip.
func (a *Advisor) curated(card *model.ScenarioCard) string {
	haystack := strings.ToLower(card.Title + " " + card.Description)

	for _, bucket := range curatedAdvice {
		for _, kw := range bucket.keywords {
			if strings.Contains(haystack, kw) {
				return bucket.lines[a.rng.Intn(len(bucket.lines))]
			}
		}
	}
	return generalAdvice[a.rng.Intn(len(generalAdvice))]
}
