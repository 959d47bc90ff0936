package calculator

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/mmynk/stride/internal/models"
)

func exerciseAt(ex *models.Exercise) time.Time { return ex.LoggedAt }

func TestGroupByDate(t *testing.T) {
	a := exercise(models.Weights, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
	b := exercise(models.Cardio, time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC))
	c := exercise(models.Mobility, time.Date(2024, 1, 3, 7, 0, 0, 0, time.UTC))

	groups := GroupByDate([]*models.Exercise{a, c, b}, exerciseAt, time.UTC)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if want := (civil.Date{Year: 2024, Month: time.January, Day: 3}); groups[0].Date != want {
		t.Errorf("first group date = %s, want %s", groups[0].Date, want)
	}
	if want := (civil.Date{Year: 2024, Month: time.January, Day: 1}); groups[1].Date != want {
		t.Errorf("second group date = %s, want %s", groups[1].Date, want)
	}
	if len(groups[0].Items) != 1 || groups[0].Items[0] != c {
		t.Errorf("first group items = %v, want [c]", groups[0].Items)
	}
	if len(groups[1].Items) != 2 || groups[1].Items[0] != b || groups[1].Items[1] != a {
		t.Errorf("second group should be sorted by timestamp descending")
	}
}

func TestGroupByDate_Empty(t *testing.T) {
	if groups := GroupByDate(nil, exerciseAt, time.UTC); groups != nil {
		t.Errorf("expected nil groups, got %v", groups)
	}
}

func TestGroupByDate_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 20:00 UTC on the 1st is the 2nd in Tokyo
	ex := exercise(models.Cardio, time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC))

	groups := GroupByDate([]*models.Exercise{ex}, exerciseAt, tokyo)
	if want := (civil.Date{Year: 2024, Month: time.January, Day: 2}); groups[0].Date != want {
		t.Errorf("group date = %s, want %s", groups[0].Date, want)
	}
}

func TestRecent(t *testing.T) {
	var txs []*models.Transaction
	for day := 1; day <= 3; day++ {
		for hour := 0; hour < 3; hour++ {
			txs = append(txs, debit("1", time.Date(2024, 1, day, 9+hour, 0, 0, 0, time.UTC)))
		}
	}
	groups := GroupByDate(txs, func(tx *models.Transaction) time.Time { return tx.LoggedAt }, time.UTC)

	recent := Recent(groups, 5)
	if len(recent) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(recent))
	}
	if len(recent[0].Items) != 3 || len(recent[1].Items) != 2 {
		t.Errorf("group sizes = %d, %d; want 3, 2", len(recent[0].Items), len(recent[1].Items))
	}
	if recent[0].Date.Day != 3 || recent[1].Date.Day != 2 {
		t.Errorf("recent should start from the newest day")
	}
	// the input groups are not truncated
	if len(groups[1].Items) != 3 {
		t.Errorf("Recent must not modify its input")
	}
}

func TestCurrencySymbol(t *testing.T) {
	tests := map[string]string{"USD": "$", "eur": "€", "": "$", "XYZ": "XYZ"}
	for code, want := range tests {
		if got := CurrencySymbol(code); got != want {
			t.Errorf("CurrencySymbol(%q) = %q, want %q", code, got, want)
		}
	}
}
