// Package remote is the device-side store client. It speaks Connect RPC to the hosted
// backend and implements the same storage.Records interface as the SQL store.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
	"github.com/mmynk/stride/pkg/api"
	"github.com/mmynk/stride/pkg/api/apiconnect"
)

// ErrUnauthenticated is returned (wrapped) when the backend rejects the session token.
var ErrUnauthenticated = errors.New("not authenticated")

// Ensure Client implements storage.Records
var _ storage.Records = (*Client)(nil)

// Client is a connection to the Stride backend.
type Client struct {
	auth     apiconnect.AuthServiceClient
	wallet   apiconnect.WalletServiceClient
	health   apiconnect.HealthServiceClient
	todo     apiconnect.TodoServiceClient
	calendar apiconnect.CalendarServiceClient

	mu    sync.RWMutex
	token string
}

// New creates a client for the backend at baseURL. A nil httpClient uses
// http.DefaultClient.
func New(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{}
	opts = append([]connect.ClientOption{connect.WithInterceptors(c.bearer())}, opts...)
	c.auth = apiconnect.NewAuthServiceClient(httpClient, baseURL, opts...)
	c.wallet = apiconnect.NewWalletServiceClient(httpClient, baseURL, opts...)
	c.health = apiconnect.NewHealthServiceClient(httpClient, baseURL, opts...)
	c.todo = apiconnect.NewTodoServiceClient(httpClient, baseURL, opts...)
	c.calendar = apiconnect.NewCalendarServiceClient(httpClient, baseURL, opts...)
	return c
}

// SetToken sets the session token sent with every call. An empty token sends none.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// bearer attaches the session token to outgoing requests.
func (c *Client) bearer() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token := c.Token(); req.Spec().IsClient && token != "" {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}

// translate maps Connect codes back onto the storage and models sentinels.
func translate(op string, err error) error {
	switch connect.CodeOf(err) {
	case connect.CodeNotFound:
		return fmt.Errorf("%s: %w", op, errors.Join(storage.ErrNotFound, err))
	case connect.CodeInvalidArgument:
		return fmt.Errorf("%s: %w", op, errors.Join(models.ErrInvalid, err))
	case connect.CodeUnauthenticated:
		return fmt.Errorf("%s: %w", op, errors.Join(ErrUnauthenticated, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Register creates an account and stores the returned session token on the client.
func (c *Client) Register(ctx context.Context, email, name, password string) (*models.User, string, error) {
	resp, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:    email,
		Name:     name,
		Password: password,
	}))
	if err != nil {
		return nil, "", translate("register", err)
	}
	c.SetToken(resp.Msg.Token)
	return resp.Msg.User, resp.Msg.Token, nil
}

// Login authenticates and stores the returned session token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	resp, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    email,
		Password: password,
	}))
	if err != nil {
		return nil, "", translate("login", err)
	}
	c.SetToken(resp.Msg.Token)
	return resp.Msg.User, resp.Msg.Token, nil
}

// Logout revokes the session token. The local token is dropped either way.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	if _, err := c.auth.Logout(ctx, connect.NewRequest(&api.LogoutRequest{})); err != nil {
		return translate("logout", err)
	}
	return nil
}

// CurrentUser loads the record of the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	resp, err := c.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	if err != nil {
		return nil, translate("current user", err)
	}
	return resp.Msg.User, nil
}
