// Package calculator holds the pure derived-metric functions computed over cached
// records: wallet balance, daily and weekly spending, activity intensity, date
// grouping and progress percentages.
package calculator

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/mmynk/stride/internal/models"
)

// Sum returns the total amount of txs.
func Sum(txs []*models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// Balance computes the live wallet balance.
//
//	balance = wallet.balance - sum(debits) + sum(credits)
//
// A missing wallet yields zero regardless of the transactions.
func Balance(wallet *models.Wallet, debits, credits []*models.Transaction) decimal.Decimal {
	if wallet == nil {
		return decimal.Zero
	}
	return wallet.Balance.Sub(Sum(debits)).Add(Sum(credits))
}

// SpentToday sums the debits logged on the civil date today, as seen in loc.
// This is calendar-date equality: a debit from 23:59 yesterday is excluded even
// if it happened a minute ago.
func SpentToday(debits []*models.Transaction, today civil.Date, loc *time.Location) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debits {
		if DateOf(d.LoggedAt, loc) == today {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// WeeklySavings is the progress of the rolling seven-day budget.
type WeeklySavings struct {
	// Current is what is left of the weekly budget, never negative.
	Current decimal.Decimal
	// Max is dailyBudget * 7.
	Max decimal.Decimal
	// Spent is the total of the debits inside the window.
	Spent decimal.Decimal
}

// CalculateWeeklySavings computes the rolling weekly budget.
//
// The window starts at midnight (in loc) seven days before today and has no upper
// bound, so debits logged later today are included. A zero budget yields a zero
// result, matching the progress bar that hides itself without a budget.
func CalculateWeeklySavings(dailyBudget decimal.Decimal, debits []*models.Transaction, today civil.Date, loc *time.Location) WeeklySavings {
	if dailyBudget.IsZero() {
		return WeeklySavings{Current: decimal.Zero, Max: decimal.Zero, Spent: decimal.Zero}
	}
	since := StartOfDay(today.AddDays(-7), loc)
	spent := decimal.Zero
	for _, d := range debits {
		if !d.LoggedAt.Before(since) {
			spent = spent.Add(d.Amount)
		}
	}
	target := dailyBudget.Mul(decimal.NewFromInt(7))
	return WeeklySavings{
		Current: decimal.Max(decimal.Zero, target.Sub(spent)),
		Max:     target,
		Spent:   spent,
	}
}

// WeeklySavingsRemaining returns max(0, dailyBudget*7 - spent in the last week).
func WeeklySavingsRemaining(dailyBudget decimal.Decimal, debits []*models.Transaction, today civil.Date, loc *time.Location) decimal.Decimal {
	return CalculateWeeklySavings(dailyBudget, debits, today, loc).Current
}
