package remote

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/pkg/api"
)

func (c *Client) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	resp, err := c.wallet.GetWallet(ctx, connect.NewRequest(&api.GetWalletRequest{UserID: userID}))
	if err != nil {
		return nil, translate("get wallet", err)
	}
	return resp.Msg.Wallet, nil
}

func (c *Client) SaveWallet(ctx context.Context, w *models.Wallet) error {
	resp, err := c.wallet.SaveWallet(ctx, connect.NewRequest(&api.SaveWalletRequest{Wallet: w}))
	if err != nil {
		return translate("save wallet", err)
	}
	*w = *resp.Msg.Wallet
	return nil
}

func (c *Client) ListTransactions(ctx context.Context, userID string, typ models.TransactionType) ([]*models.Transaction, error) {
	resp, err := c.wallet.ListTransactions(ctx, connect.NewRequest(&api.ListTransactionsRequest{UserID: userID, Type: typ}))
	if err != nil {
		return nil, translate("list transactions", err)
	}
	return resp.Msg.Transactions, nil
}

// CreateTransaction inserts t and copies the stored row (id, timestamp) back into it.
func (c *Client) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	resp, err := c.wallet.CreateTransaction(ctx, connect.NewRequest(&api.CreateTransactionRequest{Transaction: t}))
	if err != nil {
		return translate("create transaction", err)
	}
	*t = *resp.Msg.Transaction
	return nil
}

func (c *Client) UpdateTransaction(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	resp, err := c.wallet.UpdateTransaction(ctx, connect.NewRequest(&api.UpdateTransactionRequest{
		UserID:        userID,
		TransactionID: id,
		Patch:         patch,
	}))
	if err != nil {
		return nil, translate("update transaction", err)
	}
	return resp.Msg.Transaction, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, userID, id string) error {
	_, err := c.wallet.DeleteTransaction(ctx, connect.NewRequest(&api.DeleteTransactionRequest{UserID: userID, TransactionID: id}))
	if err != nil {
		return translate("delete transaction", err)
	}
	return nil
}

func (c *Client) GetHealthProfile(ctx context.Context, userID string) (*models.HealthProfile, error) {
	resp, err := c.health.GetHealthProfile(ctx, connect.NewRequest(&api.GetHealthProfileRequest{UserID: userID}))
	if err != nil {
		return nil, translate("get health profile", err)
	}
	return resp.Msg.Profile, nil
}

func (c *Client) SaveHealthProfile(ctx context.Context, p *models.HealthProfile) error {
	resp, err := c.health.SaveHealthProfile(ctx, connect.NewRequest(&api.SaveHealthProfileRequest{Profile: p}))
	if err != nil {
		return translate("save health profile", err)
	}
	*p = *resp.Msg.Profile
	return nil
}

func (c *Client) ListExercises(ctx context.Context, userID string) ([]*models.Exercise, error) {
	resp, err := c.health.ListExercises(ctx, connect.NewRequest(&api.ListExercisesRequest{UserID: userID}))
	if err != nil {
		return nil, translate("list exercises", err)
	}
	return resp.Msg.Exercises, nil
}

func (c *Client) CreateExercise(ctx context.Context, e *models.Exercise) error {
	resp, err := c.health.CreateExercise(ctx, connect.NewRequest(&api.CreateExerciseRequest{Exercise: e}))
	if err != nil {
		return translate("create exercise", err)
	}
	*e = *resp.Msg.Exercise
	return nil
}

func (c *Client) UpdateExercise(ctx context.Context, userID, id string, patch models.ExercisePatch) (*models.Exercise, error) {
	resp, err := c.health.UpdateExercise(ctx, connect.NewRequest(&api.UpdateExerciseRequest{
		UserID:     userID,
		ExerciseID: id,
		Patch:      patch,
	}))
	if err != nil {
		return nil, translate("update exercise", err)
	}
	return resp.Msg.Exercise, nil
}

func (c *Client) DeleteExercise(ctx context.Context, userID, id string) error {
	_, err := c.health.DeleteExercise(ctx, connect.NewRequest(&api.DeleteExerciseRequest{UserID: userID, ExerciseID: id}))
	if err != nil {
		return translate("delete exercise", err)
	}
	return nil
}

func (c *Client) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	resp, err := c.todo.ListTodos(ctx, connect.NewRequest(&api.ListTodosRequest{UserID: userID}))
	if err != nil {
		return nil, translate("list todos", err)
	}
	return resp.Msg.Todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, t *models.Todo) error {
	resp, err := c.todo.CreateTodo(ctx, connect.NewRequest(&api.CreateTodoRequest{Todo: t}))
	if err != nil {
		return translate("create todo", err)
	}
	*t = *resp.Msg.Todo
	return nil
}

func (c *Client) UpdateTodo(ctx context.Context, userID, id string, patch models.TodoPatch) (*models.Todo, error) {
	resp, err := c.todo.UpdateTodo(ctx, connect.NewRequest(&api.UpdateTodoRequest{
		UserID: userID,
		TaskID: id,
		Patch:  patch,
	}))
	if err != nil {
		return nil, translate("update todo", err)
	}
	return resp.Msg.Todo, nil
}

func (c *Client) DeleteTodo(ctx context.Context, userID, id string) error {
	_, err := c.todo.DeleteTodo(ctx, connect.NewRequest(&api.DeleteTodoRequest{UserID: userID, TaskID: id}))
	if err != nil {
		return translate("delete todo", err)
	}
	return nil
}

func (c *Client) ListEvents(ctx context.Context, userID string) ([]*models.CalendarEvent, error) {
	resp, err := c.calendar.ListEvents(ctx, connect.NewRequest(&api.ListEventsRequest{UserID: userID}))
	if err != nil {
		return nil, translate("list events", err)
	}
	return resp.Msg.Events, nil
}

func (c *Client) CreateEvent(ctx context.Context, e *models.CalendarEvent) error {
	resp, err := c.calendar.CreateEvent(ctx, connect.NewRequest(&api.CreateEventRequest{Event: e}))
	if err != nil {
		return translate("create event", err)
	}
	*e = *resp.Msg.Event
	return nil
}

func (c *Client) UpdateEvent(ctx context.Context, userID, id string, patch models.EventPatch) (*models.CalendarEvent, error) {
	resp, err := c.calendar.UpdateEvent(ctx, connect.NewRequest(&api.UpdateEventRequest{
		UserID:  userID,
		EventID: id,
		Patch:   patch,
	}))
	if err != nil {
		return nil, translate("update event", err)
	}
	return resp.Msg.Event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, userID, id string) error {
	_, err := c.calendar.DeleteEvent(ctx, connect.NewRequest(&api.DeleteEventRequest{UserID: userID, EventID: id}))
	if err != nil {
		return translate("delete event", err)
	}
	return nil
}
