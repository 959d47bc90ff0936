package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/pkg/api"
)

// WalletServiceHandler is implemented by the backend wallet service.
type WalletServiceHandler interface {
	GetWallet(context.Context, *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error)
	SaveWallet(context.Context, *connect.Request[api.SaveWalletRequest]) (*connect.Response[api.SaveWalletResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
}

// NewWalletServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewWalletServiceHandler(svc WalletServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	getWallet := connect.NewUnaryHandler(api.WalletServiceGetWalletProcedure, svc.GetWallet, opt)
	saveWallet := connect.NewUnaryHandler(api.WalletServiceSaveWalletProcedure, svc.SaveWallet, opt)
	listTransactions := connect.NewUnaryHandler(api.WalletServiceListTransactionsProcedure, svc.ListTransactions, opt)
	createTransaction := connect.NewUnaryHandler(api.WalletServiceCreateTransactionProcedure, svc.CreateTransaction, opt)
	updateTransaction := connect.NewUnaryHandler(api.WalletServiceUpdateTransactionProcedure, svc.UpdateTransaction, opt)
	deleteTransaction := connect.NewUnaryHandler(api.WalletServiceDeleteTransactionProcedure, svc.DeleteTransaction, opt)

	return "/" + api.WalletServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.WalletServiceGetWalletProcedure:
			getWallet.ServeHTTP(w, r)
		case api.WalletServiceSaveWalletProcedure:
			saveWallet.ServeHTTP(w, r)
		case api.WalletServiceListTransactionsProcedure:
			listTransactions.ServeHTTP(w, r)
		case api.WalletServiceCreateTransactionProcedure:
			createTransaction.ServeHTTP(w, r)
		case api.WalletServiceUpdateTransactionProcedure:
			updateTransaction.ServeHTTP(w, r)
		case api.WalletServiceDeleteTransactionProcedure:
			deleteTransaction.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// WalletServiceClient is a client for the stride.v1.WalletService service.
type WalletServiceClient interface {
	GetWallet(context.Context, *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error)
	SaveWallet(context.Context, *connect.Request[api.SaveWalletRequest]) (*connect.Response[api.SaveWalletResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	CreateTransaction(context.Context, *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
}

// NewWalletServiceClient constructs a client for the stride.v1.WalletService service.
func NewWalletServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) WalletServiceClient {
	baseURL = trimBase(baseURL)
	opt := clientOptions(opts)
	return &walletServiceClient{
		getWallet:         connect.NewClient[api.GetWalletRequest, api.GetWalletResponse](httpClient, baseURL+api.WalletServiceGetWalletProcedure, opt),
		saveWallet:        connect.NewClient[api.SaveWalletRequest, api.SaveWalletResponse](httpClient, baseURL+api.WalletServiceSaveWalletProcedure, opt),
		listTransactions:  connect.NewClient[api.ListTransactionsRequest, api.ListTransactionsResponse](httpClient, baseURL+api.WalletServiceListTransactionsProcedure, opt),
		createTransaction: connect.NewClient[api.CreateTransactionRequest, api.CreateTransactionResponse](httpClient, baseURL+api.WalletServiceCreateTransactionProcedure, opt),
		updateTransaction: connect.NewClient[api.UpdateTransactionRequest, api.UpdateTransactionResponse](httpClient, baseURL+api.WalletServiceUpdateTransactionProcedure, opt),
		deleteTransaction: connect.NewClient[api.DeleteTransactionRequest, api.DeleteTransactionResponse](httpClient, baseURL+api.WalletServiceDeleteTransactionProcedure, opt),
	}
}

type walletServiceClient struct {
	getWallet         *connect.Client[api.GetWalletRequest, api.GetWalletResponse]
	saveWallet        *connect.Client[api.SaveWalletRequest, api.SaveWalletResponse]
	listTransactions  *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
	createTransaction *connect.Client[api.CreateTransactionRequest, api.CreateTransactionResponse]
	updateTransaction *connect.Client[api.UpdateTransactionRequest, api.UpdateTransactionResponse]
	deleteTransaction *connect.Client[api.DeleteTransactionRequest, api.DeleteTransactionResponse]
}

func (c *walletServiceClient) GetWallet(ctx context.Context, req *connect.Request[api.GetWalletRequest]) (*connect.Response[api.GetWalletResponse], error) {
	return c.getWallet.CallUnary(ctx, req)
}

func (c *walletServiceClient) SaveWallet(ctx context.Context, req *connect.Request[api.SaveWalletRequest]) (*connect.Response[api.SaveWalletResponse], error) {
	return c.saveWallet.CallUnary(ctx, req)
}

func (c *walletServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *walletServiceClient) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	return c.createTransaction.CallUnary(ctx, req)
}

func (c *walletServiceClient) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	return c.updateTransaction.CallUnary(ctx, req)
}

func (c *walletServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}
