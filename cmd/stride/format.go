package main

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/mmynk/stride/internal/calculator"
)

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"}

// parseWhen accepts RFC 3339, a local date and time, or a bare date (midnight).
// An empty string means now.
func parseWhen(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339)", s)
}

// parseDate accepts YYYY-MM-DD; empty means today.
func parseDate(s string, today civil.Date) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return today, nil
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return d, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

func money(symbol string, d decimal.Decimal) string {
	return symbol + calculator.FormatAmount(d)
}

var heatCells = [...]string{".", "-", "+", "#"}

// renderHeatmap prints one week per line, oldest first.
func renderHeatmap(days []calculator.DayActivity) string {
	var b strings.Builder
	for i := 0; i < len(days); i += 7 {
		week := days[i:min(i+7, len(days))]
		fmt.Fprintf(&b, "%s ", week[0].Date)
		for _, d := range week {
			b.WriteString(heatCells[min(max(d.Level, 0), len(heatCells)-1)])
		}
		b.WriteByte('\n')
	}
	b.WriteString("legend: . rest  - 1 type  + 2 types  # 3+ types\n")
	return b.String()
}
