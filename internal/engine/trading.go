package engine

import (
	"context"
	"fmt"

	"github.com/arthneeti/engine/internal/config"
	"github.com/arthneeti/engine/internal/model"
)

// BuyStock purchases `amount` rupees of a sector at its current price,
// gated by the investing/diversification level unlocks. Grounded on
// MarketService.buy_stock.
func (e *Engine) BuyStock(ctx context.Context, sessionID, actorID string, sector config.Sector, amount int) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session

		if sess.CurrentLevel < e.cfg.LevelUnlocks.Investing {
			return model.NewError(model.ErrGated, "investing unlocks at a higher level")
		}
		if sess.CurrentLevel < e.cfg.LevelUnlocks.Diversification && holdsOtherSector(sess, sector) {
			return model.NewError(model.ErrGated, "diversification unlocks at a higher level; stick to one sector for now")
		}
		if !isValidSector(sector) {
			return model.NewError(model.ErrValidation, "invalid sector")
		}
		if amount <= 0 {
			return model.NewError(model.ErrValidation, "amount must be positive")
		}
		if sess.Wealth < amount {
			return model.NewError(model.ErrInsufficientFunds, "insufficient funds")
		}

		price := sess.MarketPrices.Sectors[sector]
		if price <= 0 {
			price = 100
		}
		units := float64(amount) / price

		sess.Wealth -= amount
		sess.Portfolio[sector] += units
		sess.PurchaseHistory = append(sess.PurchaseHistory, model.PurchaseRecord{
			Sector: sector, Units: units, Price: price, Month: sess.CurrentMonth,
		})

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}
		result = &model.Result{Session: sess, Message: fmt.Sprintf("Bought %.2f units of %s at ₹%.0f.", units, sector, price)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SellStock liquidates `units` of a sector's holding at its current price.
func (e *Engine) SellStock(ctx context.Context, sessionID, actorID string, sector config.Sector, units float64) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session

		if !isValidSector(sector) {
			return model.NewError(model.ErrValidation, "invalid sector")
		}
		if units <= 0 {
			return model.NewError(model.ErrValidation, "invalid units")
		}
		owned := sess.Portfolio[sector]
		if owned < units {
			return model.NewErrorf(model.ErrInsufficientUnits, "insufficient units", "owned=%.2f requested=%.2f", owned, units)
		}

		price := sess.MarketPrices.Sectors[sector]
		if price <= 0 {
			price = 100
		}
		cash := units * price

		sess.Wealth += int(cash)
		sess.Portfolio[sector] = owned - units

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}
		result = &model.Result{Session: sess, Message: fmt.Sprintf("Sold %.2f units for ₹%d.", units, int(cash))}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SellFutures writes a short futures contract against an existing holding,
// paying out the full contract value immediately (no expiry settlement in
// this core — Open Question c). Grounded on MarketService.sell_futures.
func (e *Engine) SellFutures(ctx context.Context, sessionID, actorID string, sector config.Sector, units float64, durationMonths int) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session

		if sess.CurrentLevel < e.cfg.LevelUnlocks.Mastery {
			return model.NewError(model.ErrGated, "futures unlock at a higher level")
		}
		price, ok := sess.MarketPrices.Sectors[sector]
		if !ok {
			return model.NewError(model.ErrValidation, "invalid sector")
		}
		owned := sess.Portfolio[sector]
		if owned < units {
			return model.NewErrorf(model.ErrInsufficientUnits, "insufficient units", "owned=%.2f requested=%.2f", owned, units)
		}

		contractPrice := price * (1 + 0.02*float64(durationMonths))
		payout := contractPrice * units

		sess.Wealth += int(payout)
		sess.Portfolio[sector] = owned - units

		contract := &model.FuturesContract{
			SessionID:       sess.ID,
			Sector:          sector,
			Units:           units,
			StrikePrice:     contractPrice,
			SpotPriceAtSale: price,
			DurationMonths:  durationMonths,
			CreatedMonth:    sess.CurrentMonth,
		}
		agg.Futures = append(agg.Futures, contract)
		agg.NewFutures = append(agg.NewFutures, contract)

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}
		result = &model.Result{Session: sess, Message: fmt.Sprintf("Contract sold! %.2f %s units @ ₹%.0f/unit. +₹%d", units, sector, contractPrice, int(payout))}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BuyMutualFund invests `amount` rupees into a fund at its current NAV.
func (e *Engine) BuyMutualFund(ctx context.Context, sessionID, actorID, fundKey string, amount int) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session

		if sess.CurrentLevel < e.cfg.LevelUnlocks.Investing {
			return model.NewError(model.ErrGated, "mutual funds unlock at a higher level")
		}
		fund, ok := e.cfg.MutualFunds[fundKey]
		if !ok {
			return model.NewError(model.ErrValidation, "invalid fund type")
		}
		if amount < 500 {
			return model.NewError(model.ErrValidation, "minimum investment is ₹500")
		}
		if sess.Wealth < amount {
			return model.NewError(model.ErrInsufficientFunds, "insufficient funds")
		}

		nav := sess.MarketPrices.Funds[fundKey]
		if nav <= 0 {
			nav = 100
		}
		units := float64(amount) / nav

		holding := sess.MutualFunds[fundKey]
		holding.Units += units
		holding.Invested += float64(amount)
		sess.MutualFunds[fundKey] = holding
		sess.Wealth -= amount

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}
		result = &model.Result{Session: sess, Message: fmt.Sprintf("Invested ₹%d in %s.", amount, fund.Name)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SellMutualFund redeems `units` of a fund holding at its current NAV,
// scaling down the cost basis proportionally and dropping the holding
// entirely once it's dust.
func (e *Engine) SellMutualFund(ctx context.Context, sessionID, actorID, fundKey string, units float64) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session

		holding, ok := sess.MutualFunds[fundKey]
		if !ok {
			return model.NewError(model.ErrValidation, "you don't own this fund")
		}
		if holding.Units < units {
			return model.NewError(model.ErrInsufficientUnits, "insufficient units")
		}

		nav := sess.MarketPrices.Funds[fundKey]
		if nav <= 0 {
			nav = 100
		}
		redemption := units * nav

		sess.Wealth += int(redemption)
		originalUnits := holding.Units
		holding.Units -= units
		if originalUnits > 0 {
			holding.Invested = holding.Invested * (holding.Units / originalUnits)
		}
		if holding.Units < 0.01 {
			delete(sess.MutualFunds, fundKey)
		} else {
			sess.MutualFunds[fundKey] = holding
		}

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}
		result = &model.Result{Session: sess, Message: fmt.Sprintf("Redeemed %.2f units for ₹%d.", units, int(redemption))}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyForIPO applies for a scheduled IPO during its open month.
func (e *Engine) ApplyForIPO(ctx context.Context, sessionID, actorID, ipoName string, amount int) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session

		openMonth, listing, found := findIPOListingByName(e.cfg, ipoName)
		if !found {
			return model.NewError(model.ErrValidation, "invalid IPO")
		}
		if sess.CurrentMonth > openMonth {
			return model.NewError(model.ErrValidation, "IPO closed")
		}
		if sess.CurrentMonth < openMonth {
			return model.NewErrorf(model.ErrValidation, "IPO not yet open", "opens_month=%d", openMonth)
		}
		if amount < 10000 || amount > 200000 {
			return model.NewError(model.ErrValidation, "investment must be between ₹10,000 and ₹2,00,000")
		}
		if sess.Wealth < amount {
			return model.NewError(model.ErrInsufficientFunds, "insufficient funds")
		}
		for _, app := range sess.ActiveIPOs {
			if app.Name == listing.Name {
				return model.NewError(model.ErrDuplicateApplication, "already applied for this IPO")
			}
		}

		sess.Wealth -= amount
		sess.ActiveIPOs = append(sess.ActiveIPOs, model.IPOApplication{
			Name: listing.Name, Amount: amount, Status: model.IPOStatusApplied, Month: sess.CurrentMonth,
		})

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}
		result = &model.Result{Session: sess, Message: fmt.Sprintf("Applied for %s IPO (₹%d). Allocation next month.", listing.Name, amount)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LoanType enumerates the two loan products the game offers.
type LoanType string

const (
	LoanFamily     LoanType = "FAMILY"
	LoanInstantApp LoanType = "INSTANT_APP"
)

// TakeLoan grants one of the two loan products, gated by the loans-level
// unlock. FAMILY is an interest-free anti-exploit favor; INSTANT_APP is a
// credit-gated high-interest loan that installs a recurring DEBT expense.
func (e *Engine) TakeLoan(ctx context.Context, sessionID, actorID string, loanType LoanType) (*model.Result, error) {
	var result *model.Result
	err := e.store.WithLock(sessionID, func() error {
		agg, err := e.load(ctx, sessionID, actorID)
		if err != nil {
			return err
		}
		sess := agg.Session

		if sess.CurrentLevel < e.cfg.LevelUnlocks.Loans {
			return model.NewError(model.ErrGated, "loans unlock at a higher level")
		}

		var msg string
		switch loanType {
		case LoanFamily:
			const amount = 5000
			if sess.Wealth+amount > 50000 {
				return model.NewError(model.ErrValidation, "you don't need a loan right now")
			}
			sess.Wealth += amount
			sess.Happiness = clampHappiness(e.cfg, sess.Happiness-5)
			msg = "Family helped with ₹5,000. Pay them back later!"

		case LoanInstantApp:
			const amount = 10000
			creditLimit := sess.CreditScore * 30
			if amount > creditLimit {
				return model.NewErrorf(model.ErrValidation, "loan rejected", "credit_limit=%d", creditLimit)
			}
			sess.Wealth += amount
			sess.CreditScore = clampCredit(e.cfg, sess.CreditScore-50)
			sess.Happiness = clampHappiness(e.cfg, sess.Happiness+5)
			agg.Expenses = append(agg.Expenses, &model.RecurringExpense{
				Name: "High Interest Loan", Amount: 500, Category: config.ExpenseDebt,
				IsEssential: true, InflationRate: 0, StartedMonth: sess.CurrentMonth,
			})
			msg = "Instant loan approved: ₹10,000 credited, with a ₹500/month repayment."

		default:
			return model.NewErrorf(model.ErrValidation, "unknown loan type", "type=%s", loanType)
		}

		if err := e.store.Save(ctx, agg); err != nil {
			return err
		}
		result = &model.Result{Session: sess, Message: msg}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func holdsOtherSector(sess *model.Session, sector config.Sector) bool {
	for s, units := range sess.Portfolio {
		if s != sector && units > 0 {
			return true
		}
	}
	return false
}

func isValidSector(sector config.Sector) bool {
	for _, s := range config.Sectors {
		if s == sector {
			return true
		}
	}
	return false
}

func findIPOListingByName(cfg *config.Config, name string) (int, config.IPOListing, bool) {
	for month, listing := range cfg.IPOSchedule {
		if listing.Name == name {
			return month, listing, true
		}
	}
	return 0, config.IPOListing{}, false
}
