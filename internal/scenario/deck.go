package scenario

import (
	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
)

// Deck is the handcrafted scenario-card catalogue. The selector prefers
// these over AI-generated cards so the base game always has a coherent,
// playtested fallback.
func Deck() []*model.ScenarioCard {
	return []*model.ScenarioCard{
		{
			ID:          "rent-due",
			Title:       "Rent Is Due",
			Description: "Your landlord reminds you rent is due tomorrow. You also spotted a flash sale on a new phone.",
			Category:    config.CategoryNeeds,
			Difficulty:  1,
			MinMonth:    1,
			IsActive:    true,
			Choices: []model.Choice{
				{ID: "rent-due-pay", CardID: "rent-due", Text: "Pay rent first, skip the sale.", WealthImpact: 0, HappinessImpact: -2, CreditImpact: 2, LiteracyImpact: 3, Feedback: "Prioritizing needs over wants keeps you out of trouble.", IsRecommended: true},
				{ID: "rent-due-phone", CardID: "rent-due", Text: "Buy the phone, pay rent late.", WealthImpact: -15000, HappinessImpact: 5, CreditImpact: -15, LiteracyImpact: -2, Feedback: "Late rent dents your credit score and stresses your landlord relationship."},
			},
		},
		{
			ID:          "friend-wedding",
			Title:       "Friend's Wedding",
			Description: "A close friend is getting married and expects a generous gift.",
			Category:    config.CategorySocial,
			Difficulty:  2,
			MinMonth:    1,
			IsActive:    true,
			Choices: []model.Choice{
				{ID: "friend-wedding-budget", CardID: "friend-wedding", Text: "Give a thoughtful gift within budget.", WealthImpact: -2000, HappinessImpact: 5, CreditImpact: 0, LiteracyImpact: 2, Feedback: "Budgeting for social obligations protects both your wallet and your friendships.", IsRecommended: true},
				{ID: "friend-wedding-splurge", CardID: "friend-wedding", Text: "Splurge to impress.", WealthImpact: -8000, HappinessImpact: 8, CreditImpact: 0, LiteracyImpact: -3, Feedback: "Overspending to impress others rarely pays off financially."},
			},
		},
		{
			ID:          "flash-sale",
			Title:       "Flash Sale Notification",
			Description: "Your phone buzzes: 70% off electronics, ends in one hour.",
			Category:    config.CategoryShopping,
			Difficulty:  1,
			MinMonth:    1,
			IsActive:    true,
			Choices: []model.Choice{
				{ID: "flash-sale-wait", CardID: "flash-sale", Text: "Wait 24 hours before deciding.", WealthImpact: 0, HappinessImpact: 0, CreditImpact: 0, LiteracyImpact: 3, Feedback: "The 24-hour rule kills most impulse buys.", IsRecommended: true},
				{ID: "flash-sale-buy", CardID: "flash-sale", Text: "Buy it now before it's gone.", WealthImpact: -3000, HappinessImpact: 4, CreditImpact: 0, LiteracyImpact: -2, Feedback: "A discount on something you don't need is still spending."},
			},
		},
		{
			ID:          "medical-emergency",
			Title:       "Medical Emergency",
			Description: "A family member needs urgent, unplanned medical care.",
			Category:    config.CategoryEmergency,
			Difficulty:  2,
			MinMonth:    2,
			IsActive:    true,
			Choices: []model.Choice{
				{ID: "medical-emergency-fund", CardID: "medical-emergency", Text: "Use your emergency fund.", WealthImpact: -6000, HappinessImpact: -3, CreditImpact: 0, LiteracyImpact: 5, Feedback: "This is exactly why an emergency fund exists.", IsRecommended: true},
				{ID: "medical-emergency-loan", CardID: "medical-emergency", Text: "Take a high-interest instant loan.", WealthImpact: 6000, HappinessImpact: -1, CreditImpact: -20, LiteracyImpact: -3, Feedback: "Instant loans solve today's problem but create tomorrow's debt trap.", AddsRecurringExpense: 500, ExpenseName: "Emergency Loan EMI"},
			},
		},
		{
			ID:          "first-sip",
			Title:       "A Colleague Mentions SIPs",
			Description: "A coworker raves about starting a SIP in a mutual fund.",
			Category:    config.CategoryInvestment,
			Difficulty:  3,
			MinMonth:    6,
			IsActive:    true,
			Choices: []model.Choice{
				{ID: "first-sip-start", CardID: "first-sip", Text: "Start a small monthly SIP.", WealthImpact: -1000, HappinessImpact: 1, CreditImpact: 0, LiteracyImpact: 6, Feedback: "Starting early, even small, harnesses compounding.", IsRecommended: true},
				{ID: "first-sip-skip", CardID: "first-sip", Text: "Skip it, investing feels risky.", WealthImpact: 0, HappinessImpact: 0, CreditImpact: 0, LiteracyImpact: -1, Feedback: "Avoiding all risk has its own cost: inflation erodes idle cash."},
			},
		},
		{
			ID:          "market-crash-news",
			Title:       "Market Crash Headlines",
			Description: "News channels are screaming about a stock market crash.",
			Category:    config.CategoryNews,
			Difficulty:  3,
			MinMonth:    8,
			IsActive:    true,
			MarketEvent: &model.MarketEvent{
				Title:         "Market Crash",
				Description:   "Panic selling hits tech stocks hardest.",
				SectorImpacts: map[config.Sector]float64{config.SectorTech: 0.85},
				IsActive:      true,
			},
			Choices: []model.Choice{
				{ID: "market-crash-news-hold", CardID: "market-crash-news", Text: "Hold your positions.", WealthImpact: 0, HappinessImpact: -2, CreditImpact: 0, LiteracyImpact: 6, Feedback: "Panic selling locks in losses; markets historically recover.", IsRecommended: true},
				{ID: "market-crash-news-sellall", CardID: "market-crash-news", Text: "Sell everything now.", WealthImpact: 0, HappinessImpact: 3, CreditImpact: 0, LiteracyImpact: -4, Feedback: "Selling in a panic is one of the costliest investor mistakes."},
			},
		},
		{
			ID:          "trap-guaranteed-returns",
			Title:       "Guaranteed 3x Returns in 30 Days",
			Description: "A message promises a 'guaranteed' investment scheme tripling your money in a month.",
			Category:    config.CategoryTrap,
			Difficulty:  4,
			MinMonth:    10,
			IsActive:    true,
			Choices: []model.Choice{
				{ID: "trap-guaranteed-returns-ignore", CardID: "trap-guaranteed-returns", Text: "Ignore it — if it sounds too good to be true, it is.", WealthImpact: 0, HappinessImpact: 0, CreditImpact: 0, LiteracyImpact: 8, Feedback: "No legitimate investment guarantees returns like this.", IsRecommended: true},
				{ID: "trap-guaranteed-returns-invest", CardID: "trap-guaranteed-returns", Text: "Invest your savings.", WealthImpact: -10000, HappinessImpact: -10, CreditImpact: 0, LiteracyImpact: -5, Feedback: "This was a scam; the money is gone."},
			},
		},
		{
			ID:          "credit-quiz",
			Title:       "Pop Quiz: What Hurts Your Credit Score?",
			Description: "Test your knowledge: which habit damages your credit score the most?",
			Category:    config.CategoryQuiz,
			Difficulty:  2,
			MinMonth:    5,
			IsActive:    true,
			Choices: []model.Choice{
				{ID: "credit-quiz-ontime", CardID: "credit-quiz", Text: "Paying bills on time, every time.", WealthImpact: 0, HappinessImpact: 0, CreditImpact: 5, LiteracyImpact: 4, Feedback: "Correct framing: on-time payments build your score.", IsRecommended: true},
				{ID: "credit-quiz-maxcard", CardID: "credit-quiz", Text: "Maxing out a credit card repeatedly.", WealthImpact: 0, HappinessImpact: 0, CreditImpact: -10, LiteracyImpact: -3, Feedback: "High credit utilization is one of the biggest score killers."},
			},
		},
	}
}
