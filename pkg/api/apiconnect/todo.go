package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/pkg/api"
)

// TodoServiceHandler is implemented by the backend todo service.
type TodoServiceHandler interface {
	ListTodos(context.Context, *connect.Request[api.ListTodosRequest]) (*connect.Response[api.ListTodosResponse], error)
	CreateTodo(context.Context, *connect.Request[api.CreateTodoRequest]) (*connect.Response[api.CreateTodoResponse], error)
	UpdateTodo(context.Context, *connect.Request[api.UpdateTodoRequest]) (*connect.Response[api.UpdateTodoResponse], error)
	DeleteTodo(context.Context, *connect.Request[api.DeleteTodoRequest]) (*connect.Response[api.DeleteTodoResponse], error)
}

// NewTodoServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTodoServiceHandler(svc TodoServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	listTodos := connect.NewUnaryHandler(api.TodoServiceListTodosProcedure, svc.ListTodos, opt)
	createTodo := connect.NewUnaryHandler(api.TodoServiceCreateTodoProcedure, svc.CreateTodo, opt)
	updateTodo := connect.NewUnaryHandler(api.TodoServiceUpdateTodoProcedure, svc.UpdateTodo, opt)
	deleteTodo := connect.NewUnaryHandler(api.TodoServiceDeleteTodoProcedure, svc.DeleteTodo, opt)

	return "/" + api.TodoServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case api.TodoServiceListTodosProcedure:
			listTodos.ServeHTTP(w, r)
		case api.TodoServiceCreateTodoProcedure:
			createTodo.ServeHTTP(w, r)
		case api.TodoServiceUpdateTodoProcedure:
			updateTodo.ServeHTTP(w, r)
		case api.TodoServiceDeleteTodoProcedure:
			deleteTodo.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// TodoServiceClient is a client for the stride.v1.TodoService service.
type TodoServiceClient interface {
	ListTodos(context.Context, *connect.Request[api.ListTodosRequest]) (*connect.Response[api.ListTodosResponse], error)
	CreateTodo(context.Context, *connect.Request[api.CreateTodoRequest]) (*connect.Response[api.CreateTodoResponse], error)
	UpdateTodo(context.Context, *connect.Request[api.UpdateTodoRequest]) (*connect.Response[api.UpdateTodoResponse], error)
	DeleteTodo(context.Context, *connect.Request[api.DeleteTodoRequest]) (*connect.Response[api.DeleteTodoResponse], error)
}

// NewTodoServiceClient constructs a client for the stride.v1.TodoService service.
func NewTodoServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TodoServiceClient {
	baseURL = trimBase(baseURL)
	opt := clientOptions(opts)
	return &todoServiceClient{
		listTodos:  connect.NewClient[api.ListTodosRequest, api.ListTodosResponse](httpClient, baseURL+api.TodoServiceListTodosProcedure, opt),
		createTodo: connect.NewClient[api.CreateTodoRequest, api.CreateTodoResponse](httpClient, baseURL+api.TodoServiceCreateTodoProcedure, opt),
		updateTodo: connect.NewClient[api.UpdateTodoRequest, api.UpdateTodoResponse](httpClient, baseURL+api.TodoServiceUpdateTodoProcedure, opt),
		deleteTodo: connect.NewClient[api.DeleteTodoRequest, api.DeleteTodoResponse](httpClient, baseURL+api.TodoServiceDeleteTodoProcedure, opt),
	}
}

type todoServiceClient struct {
	listTodos  *connect.Client[api.ListTodosRequest, api.ListTodosResponse]
	createTodo *connect.Client[api.CreateTodoRequest, api.CreateTodoResponse]
	updateTodo *connect.Client[api.UpdateTodoRequest, api.UpdateTodoResponse]
	deleteTodo *connect.Client[api.DeleteTodoRequest, api.DeleteTodoResponse]
}

func (c *todoServiceClient) ListTodos(ctx context.Context, req *connect.Request[api.ListTodosRequest]) (*connect.Response[api.ListTodosResponse], error) {
	return c.listTodos.CallUnary(ctx, req)
}

func (c *todoServiceClient) CreateTodo(ctx context.Context, req *connect.Request[api.CreateTodoRequest]) (*connect.Response[api.CreateTodoResponse], error) {
	return c.createTodo.CallUnary(ctx, req)
}

func (c *todoServiceClient) UpdateTodo(ctx context.Context, req *connect.Request[api.UpdateTodoRequest]) (*connect.Response[api.UpdateTodoResponse], error) {
	return c.updateTodo.CallUnary(ctx, req)
}

func (c *todoServiceClient) DeleteTodo(ctx context.Context, req *connect.Request[api.DeleteTodoRequest]) (*connect.Response[api.DeleteTodoResponse], error) {
	return c.deleteTodo.CallUnary(ctx, req)
}
