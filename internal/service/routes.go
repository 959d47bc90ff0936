package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/internal/auth"
	"github.com/mmynk/stride/internal/middleware"
	"github.com/mmynk/stride/internal/storage"
	"github.com/mmynk/stride/pkg/api"
	"github.com/mmynk/stride/pkg/api/apiconnect"
)

// Deps are the collaborators every service handler is built from.
type Deps struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	Tokens        *auth.Tokens
	Logger        *slog.Logger
	// Metrics is optional.
	Metrics *middleware.Metrics
}

// Route is a Connect service mounted under a path prefix.
type Route struct {
	Path    string
	Handler http.Handler
}

// Routes builds every Connect service handler with the shared interceptor chain:
// metrics, authentication, then logging.
func Routes(d Deps) []Route {
	var interceptors []connect.Interceptor
	if d.Metrics != nil {
		interceptors = append(interceptors, d.Metrics.Interceptor())
	}
	interceptors = append(interceptors,
		middleware.RequireAuth(d.Tokens, d.Store, d.Store, api.PublicProcedures...),
		middleware.LoggingInterceptor(d.Logger),
	)
	opts := connect.WithInterceptors(interceptors...)

	var routes []Route
	add := func(path string, h http.Handler) {
		routes = append(routes, Route{Path: path, Handler: h})
	}
	add(apiconnect.NewAuthServiceHandler(NewAuthService(d.Authenticator, d.Tokens, d.Store, d.Store, d.Logger), opts))
	add(apiconnect.NewWalletServiceHandler(NewWalletService(d.Store, d.Logger), opts))
	add(apiconnect.NewHealthServiceHandler(NewHealthService(d.Store, d.Logger), opts))
	add(apiconnect.NewTodoServiceHandler(NewTodoService(d.Store, d.Logger), opts))
	add(apiconnect.NewCalendarServiceHandler(NewCalendarService(d.Store, d.Logger), opts))
	return routes
}

// NewMux mounts Routes on a standard library mux.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	for _, r := range Routes(d) {
		mux.Handle(r.Path, r.Handler)
	}
	return mux
}
