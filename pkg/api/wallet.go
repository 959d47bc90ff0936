package api

import "github.com/mmynk/stride/internal/models"

type GetWalletRequest struct {
	UserID string `json:"user_id"`
}

type GetWalletResponse struct {
	Wallet *models.Wallet `json:"wallet"`
}

type SaveWalletRequest struct {
	Wallet *models.Wallet `json:"wallet"`
}

type SaveWalletResponse struct {
	Wallet *models.Wallet `json:"wallet"`
}

type ListTransactionsRequest struct {
	UserID string                 `json:"user_id"`
	Type   models.TransactionType `json:"type"`
}

type ListTransactionsResponse struct {
	Transactions []*models.Transaction `json:"transactions"`
}

type CreateTransactionRequest struct {
	Transaction *models.Transaction `json:"transaction"`
}

type CreateTransactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
}

type UpdateTransactionRequest struct {
	UserID        string                  `json:"user_id"`
	TransactionID string                  `json:"transaction_id"`
	Patch         models.TransactionPatch `json:"patch"`
}

type UpdateTransactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	UserID        string `json:"user_id"`
	TransactionID string `json:"transaction_id"`
}

type DeleteTransactionResponse struct{}
