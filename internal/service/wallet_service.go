package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/internal/storage"
	"github.com/mmynk/stride/pkg/api"
)

// WalletService implements the Connect WalletService.
type WalletService struct {
	wallets      storage.WalletStore
	transactions storage.TransactionStore
	logger       *slog.Logger
}

// NewWalletService creates a new WalletService with the given storage backend.
func NewWalletService(store storage.Records, logger *slog.Logger) *WalletService {
	return &WalletService{wallets: store, transactions: store, logger: logger}
}

// GetWallet returns the caller's wallet, or NotFound before onboarding.
func (s *WalletService) GetWallet(ctx context.Context, req *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	wallet, err := s.wallets.GetWallet(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.GetWalletResponse{Wallet: wallet}), nil
}

// SaveWallet creates or replaces the caller's wallet.
func (s *WalletService) SaveWallet(ctx context.Context, req *connect.Request[api.SaveWalletRequest]) (*connect.Response[api.SaveWalletResponse], error) {
	w := req.Msg.Wallet
	if w == nil {
		return nil, missing("wallet")
	}
	userID, err := owner(ctx, w.UserID)
	if err != nil {
		return nil, err
	}
	w.UserID = userID
	if err := w.Validate(); err != nil {
		return nil, storeError(err)
	}

	if err := s.wallets.SaveWallet(ctx, w); err != nil {
		s.logger.Error("SaveWallet failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}
	s.logger.Info("Wallet saved", "user_id", userID)
	return connect.NewResponse(&api.SaveWalletResponse{Wallet: w}), nil
}

// ListTransactions returns the caller's transactions of the requested type.
func (s *WalletService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.ListTransactions(ctx, userID, req.Msg.Type)
	if err != nil {
		s.logger.Error("ListTransactions failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: txs}), nil
}

// CreateTransaction logs a debit or credit for the caller.
func (s *WalletService) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	t := req.Msg.Transaction
	if t == nil {
		return nil, missing("transaction")
	}
	userID, err := owner(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	t.UserID = userID
	if err := t.Validate(); err != nil {
		return nil, storeError(err)
	}

	if err := s.transactions.CreateTransaction(ctx, t); err != nil {
		s.logger.Error("CreateTransaction failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}
	s.logger.Info("Transaction created", "user_id", userID, "transaction_id", t.ID, "type", t.Type)
	return connect.NewResponse(&api.CreateTransactionResponse{Transaction: t}), nil
}

// UpdateTransaction patches one of the caller's transactions.
func (s *WalletService) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	if req.Msg.TransactionID == "" {
		return nil, missing("transaction_id")
	}
	if err := req.Msg.Patch.Validate(); err != nil {
		return nil, storeError(err)
	}

	t, err := s.transactions.UpdateTransaction(ctx, userID, req.Msg.TransactionID, req.Msg.Patch)
	if err != nil {
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.UpdateTransactionResponse{Transaction: t}), nil
}

// DeleteTransaction removes one of the caller's transactions.
func (s *WalletService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	if req.Msg.TransactionID == "" {
		return nil, missing("transaction_id")
	}

	if err := s.transactions.DeleteTransaction(ctx, userID, req.Msg.TransactionID); err != nil {
		return nil, storeError(err)
	}
	s.logger.Info("Transaction deleted", "user_id", userID, "transaction_id", req.Msg.TransactionID)
	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}
