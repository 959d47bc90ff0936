package repo

import (
	"context"
	"log/slog"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

// WalletStore is the store surface the wallet service needs.
type WalletStore interface {
	storage.WalletStore
	storage.TransactionStore
}

// Wallet is the domain service for the wallet and its transactions.
type Wallet struct {
	store  WalletStore
	logger *slog.Logger
}

// NewWallet creates a wallet service over store.
func NewWallet(store WalletStore, logger *slog.Logger) *Wallet {
	return &Wallet{store: store, logger: logger}
}

// FetchWallet returns the user's wallet, or (nil, nil) before onboarding.
func (s *Wallet) FetchWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	return fetchOne(ctx, s.logger, "fetch wallet", userID, s.store.GetWallet)
}

// SaveWallet creates or replaces the user's wallet.
func (s *Wallet) SaveWallet(ctx context.Context, w *models.Wallet) (*models.Wallet, error) {
	const op = "save wallet"
	if err := w.Validate(); err != nil {
		return nil, invalid(op, err)
	}
	saved := *w
	if err := mutate(s.logger, op, w.UserID, s.store.SaveWallet(ctx, &saved)); err != nil {
		return nil, err
	}
	return &saved, nil
}

// FetchDebits returns the user's expenses.
func (s *Wallet) FetchDebits(ctx context.Context, userID string) ([]*models.Transaction, error) {
	return fetchAll(ctx, s.logger, "fetch debits", userID, func(ctx context.Context, userID string) ([]*models.Transaction, error) {
		return s.store.ListTransactions(ctx, userID, models.Debit)
	})
}

// FetchCredits returns the user's income.
func (s *Wallet) FetchCredits(ctx context.Context, userID string) ([]*models.Transaction, error) {
	return fetchAll(ctx, s.logger, "fetch credits", userID, func(ctx context.Context, userID string) ([]*models.Transaction, error) {
		return s.store.ListTransactions(ctx, userID, models.Credit)
	})
}

// AddTransaction inserts t and returns the stored row.
func (s *Wallet) AddTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	const op = "add transaction"
	if err := t.Validate(); err != nil {
		return nil, invalid(op, err)
	}
	stored := *t
	if err := mutate(s.logger, op, t.UserID, s.store.CreateTransaction(ctx, &stored)); err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateTransaction patches a transaction and returns the stored row.
func (s *Wallet) UpdateTransaction(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	const op = "update transaction"
	if err := requireUser(op, userID); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, invalid(op, err)
	}
	t, err := s.store.UpdateTransaction(ctx, userID, id, patch)
	if err := mutate(s.logger, op, userID, err); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTransaction removes a transaction.
func (s *Wallet) DeleteTransaction(ctx context.Context, userID, id string) error {
	const op = "delete transaction"
	if err := requireUser(op, userID); err != nil {
		return err
	}
	return mutate(s.logger, op, userID, s.store.DeleteTransaction(ctx, userID, id))
}
