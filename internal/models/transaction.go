package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes expenses from income.
// The numeric values match the stored flag: 1 = debit, 0 = credit.
type TransactionType int

const (
	Credit TransactionType = 0
	Debit  TransactionType = 1
)

func (t TransactionType) String() string {
	if t == Debit {
		return "debit"
	}
	return "credit"
}

// ParseTransactionType accepts "debit"/"expense" and "credit"/"income".
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit", "expense":
		return Debit, nil
	case "credit", "income":
		return Credit, nil
	}
	return Credit, fmt.Errorf("unknown transaction type %q", s)
}

// Transaction is a single debit or credit against a user's wallet.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	// Assigned by the store on insert.
	ID string `json:"transaction_id"`

	// UserID is the owner of the transaction.
	UserID string `json:"user_id"`

	// Category is free text (e.g. "Food", "Salary").
	Category string `json:"category"`

	// Description is a short label (e.g. "Lunch").
	Description string `json:"description"`

	// Amount is always non-negative; its effect on the balance comes from Type.
	Amount decimal.Decimal `json:"amount"`

	// Type marks the transaction as a debit or a credit.
	Type TransactionType `json:"type"`

	// LoggedAt is when the transaction happened. Defaults to insert time.
	LoggedAt time.Time `json:"logged_at"`
}

// Validate checks the transaction invariants.
func (t *Transaction) Validate() error {
	if t.UserID == "" {
		return invalidf("transaction user_id is required")
	}
	if strings.TrimSpace(t.Description) == "" {
		return invalidf("transaction description is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return invalidf("transaction category is required")
	}
	if t.Amount.IsNegative() {
		return invalidf("transaction amount must not be negative")
	}
	if t.Type != Debit && t.Type != Credit {
		return invalidf("unknown transaction type %d", t.Type)
	}
	return nil
}

// TransactionPatch is a partial update of a transaction.
type TransactionPatch struct {
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Type        *TransactionType `json:"type,omitempty"`
	LoggedAt    *time.Time       `json:"logged_at,omitempty"`
}

// Validate checks the fields present in the patch.
func (p *TransactionPatch) Validate() error {
	if p.Amount != nil && p.Amount.IsNegative() {
		return invalidf("transaction amount must not be negative")
	}
	if p.Type != nil && *p.Type != Debit && *p.Type != Credit {
		return invalidf("unknown transaction type %d", *p.Type)
	}
	return nil
}

// Apply copies the patch fields onto t.
func (p *TransactionPatch) Apply(t *Transaction) {
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.LoggedAt != nil {
		t.LoggedAt = *p.LoggedAt
	}
}
