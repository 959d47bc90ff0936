package calculator

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/mmynk/stride/internal/models"
)

func debit(amount string, at time.Time) *models.Transaction {
	return &models.Transaction{Amount: decimal.RequireFromString(amount), Type: models.Debit, LoggedAt: at}
}

func credit(amount string, at time.Time) *models.Transaction {
	return &models.Transaction{Amount: decimal.RequireFromString(amount), Type: models.Credit, LoggedAt: at}
}

func TestBalance(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		wallet  *models.Wallet
		debits  []*models.Transaction
		credits []*models.Transaction
		want    string
	}{
		{
			name:   "no transactions",
			wallet: &models.Wallet{Balance: decimal.NewFromInt(100)},
			want:   "100",
		},
		{
			name:    "debits and credits",
			wallet:  &models.Wallet{Balance: decimal.NewFromInt(100)},
			debits:  []*models.Transaction{debit("12.50", now), debit("7.25", now)},
			credits: []*models.Transaction{credit("50", now)},
			want:    "130.25",
		},
		{
			name:   "overspending goes negative",
			wallet: &models.Wallet{Balance: decimal.NewFromInt(10)},
			debits: []*models.Transaction{debit("25", now)},
			want:   "-15",
		},
		{
			name:    "missing wallet is zero",
			wallet:  nil,
			debits:  []*models.Transaction{debit("25", now)},
			credits: []*models.Transaction{credit("99", now)},
			want:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Balance(tt.wallet, tt.debits, tt.credits)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Balance() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSpentToday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	today := civil.Date{Year: 2024, Month: time.March, Day: 15}

	debits := []*models.Transaction{
		debit("10", time.Date(2024, 3, 15, 0, 5, 0, 0, loc)),
		debit("4.50", time.Date(2024, 3, 15, 23, 30, 0, 0, loc)),
		// 30 minutes before midnight yesterday: inside 24h but a different date
		debit("100", time.Date(2024, 3, 14, 23, 30, 0, 0, loc)),
		// 03:00 UTC on the 16th is still the 15th in loc
		debit("1", time.Date(2024, 3, 16, 3, 0, 0, 0, time.UTC)),
	}

	got := SpentToday(debits, today, loc)
	if want := decimal.RequireFromString("15.50"); !got.Equal(want) {
		t.Errorf("SpentToday() = %s, want %s", got, want)
	}

	if got := SpentToday(nil, today, loc); !got.IsZero() {
		t.Errorf("SpentToday(nil) = %s, want 0", got)
	}
}

func TestSpentToday_ExcludesYesterdayWithin24Hours(t *testing.T) {
	today := civil.Date{Year: 2024, Month: time.January, Day: 2}
	justBeforeMidnight := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)

	got := SpentToday([]*models.Transaction{debit("42", justBeforeMidnight)}, today, time.UTC)
	if !got.IsZero() {
		t.Errorf("expected yesterday's debit to be excluded, got %s", got)
	}
}

func TestCalculateWeeklySavings(t *testing.T) {
	today := civil.Date{Year: 2024, Month: time.May, Day: 20}
	at := func(day, hour int) time.Time { return time.Date(2024, 5, day, hour, 0, 0, 0, time.UTC) }

	tests := []struct {
		name        string
		dailyBudget string
		debits      []*models.Transaction
		wantCurrent string
		wantMax     string
	}{
		{
			name:        "under budget",
			dailyBudget: "20",
			debits:      []*models.Transaction{debit("30", at(18, 9)), debit("10", at(20, 8))},
			wantCurrent: "100",
			wantMax:     "140",
		},
		{
			name:        "window starts at midnight seven days ago",
			dailyBudget: "10",
			debits:      []*models.Transaction{debit("5", at(13, 0)), debit("50", at(12, 23))},
			wantCurrent: "65",
			wantMax:     "70",
		},
		{
			name:        "overspending floors at zero",
			dailyBudget: "5",
			debits:      []*models.Transaction{debit("500", at(19, 12))},
			wantCurrent: "0",
			wantMax:     "35",
		},
		{
			name:        "no budget",
			dailyBudget: "0",
			debits:      []*models.Transaction{debit("5", at(19, 12))},
			wantCurrent: "0",
			wantMax:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateWeeklySavings(decimal.RequireFromString(tt.dailyBudget), tt.debits, today, time.UTC)
			if !got.Current.Equal(decimal.RequireFromString(tt.wantCurrent)) {
				t.Errorf("Current = %s, want %s", got.Current, tt.wantCurrent)
			}
			if !got.Max.Equal(decimal.RequireFromString(tt.wantMax)) {
				t.Errorf("Max = %s, want %s", got.Max, tt.wantMax)
			}
		})
	}
}

func TestWeeklySavingsRemaining_NeverNegative(t *testing.T) {
	today := civil.Date{Year: 2024, Month: time.May, Day: 20}
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

	for _, budget := range []int64{0, 1, 7, 20, 1000} {
		for _, spent := range []string{"0", "0.01", "49", "140", "100000"} {
			got := WeeklySavingsRemaining(decimal.NewFromInt(budget), []*models.Transaction{debit(spent, now)}, today, time.UTC)
			if got.IsNegative() {
				t.Errorf("budget=%d spent=%s: got negative %s", budget, spent, got)
			}
			if budget == 0 {
				continue
			}
			want := decimal.Max(decimal.Zero, decimal.NewFromInt(budget*7).Sub(decimal.RequireFromString(spent)))
			if !got.Equal(want) {
				t.Errorf("budget=%d spent=%s: got %s, want %s", budget, spent, got, want)
			}
		}
	}
}
