package models

import "github.com/shopspring/decimal"

// Wallet holds a user's starting balance and money goals.
// There is at most one wallet per user; it is created during onboarding.
type Wallet struct {
	// UserID is the owner of the wallet and its primary key.
	UserID string `json:"user_id"`

	// Balance is the starting balance entered at onboarding. The live balance is
	// derived from it and the user's transactions.
	Balance decimal.Decimal `json:"balance"`

	// SavingsGoal is the amount the user wants to save.
	SavingsGoal decimal.Decimal `json:"savings_goal"`

	// DailyBudget is the amount the user plans to spend per day.
	DailyBudget decimal.Decimal `json:"daily_budget"`

	// Currency is the ISO 4217 code of the wallet. Empty means the user's currency.
	Currency string `json:"currency"`
}

// Validate checks the wallet invariants.
func (w *Wallet) Validate() error {
	if w.UserID == "" {
		return invalidf("wallet user_id is required")
	}
	if w.SavingsGoal.IsNegative() {
		return invalidf("savings_goal must not be negative")
	}
	if w.DailyBudget.IsNegative() {
		return invalidf("daily_budget must not be negative")
	}
	return nil
}
