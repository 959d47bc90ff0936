package state

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/repo"
	"github.com/mmynk/stride/internal/storage/memstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	errOffline = errors.New("connection refused")
	noon       = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	testClock  = Clock{Now: func() time.Time { return noon }, Location: time.UTC}
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signedIn() string { return "u1" }

func failing(store *memstore.Store, op string, err error) {
	store.Hook = func(_ context.Context, name string) error {
		if name == op {
			return err
		}
		return nil
	}
}

func todoIDs(todos []models.Todo) []string {
	ids := make([]string, 0, len(todos))
	for _, t := range todos {
		ids = append(ids, t.ID)
	}
	return ids
}

// scriptedTodos overrides FetchTodos of a real service.
type scriptedTodos struct {
	TodoService
	fetch func(ctx context.Context, userID string) ([]*models.Todo, error)
}

func (s *scriptedTodos) FetchTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	return s.fetch(ctx, userID)
}

func seedTodos(t *testing.T, svc *repo.Todo, titles ...string) []*models.Todo {
	t.Helper()
	var out []*models.Todo
	for _, title := range titles {
		todo, err := svc.AddTodo(context.Background(), &models.Todo{UserID: "u1", Title: title})
		require.NoError(t, err)
		out = append(out, todo)
	}
	return out
}

func TestMountLoadsOnceAndBecomesReady(t *testing.T) {
	ms := memstore.New()
	svc := repo.NewTodo(ms, quietLogger())
	seedTodos(t, svc, "a", "b")

	h := NewTodos(NewStore(), svc, signedIn)
	assert.Equal(t, Uninitialized, h.Phase())

	require.NoError(t, h.Mount(context.Background()))
	assert.Equal(t, Ready, h.Phase())
	assert.False(t, h.Loading())
	assert.Len(t, h.Todos(), 2)

	seedTodos(t, svc, "c")
	require.NoError(t, h.Mount(context.Background()))
	assert.Len(t, h.Todos(), 2, "second mount must not reload")
}

func TestMountSignedOutIsNoop(t *testing.T) {
	h := NewTodos(NewStore(), repo.NewTodo(memstore.New(), quietLogger()), func() string { return "" })

	require.NoError(t, h.Mount(context.Background()))
	assert.Equal(t, Uninitialized, h.Phase())
	assert.ErrorIs(t, h.Refresh(context.Background()), ErrSignedOut)
}

func TestMountFailureStillReady(t *testing.T) {
	ms := memstore.New()
	failing(ms, "ListTodos", errOffline)
	h := NewTodos(NewStore(), repo.NewTodo(ms, quietLogger()), signedIn)

	err := h.Mount(context.Background())
	require.Error(t, err)
	assert.Equal(t, Ready, h.Phase())
	assert.Contains(t, h.Err(), "connection refused")
	assert.Empty(t, h.Todos())

	ms.Hook = nil
	require.NoError(t, h.Refresh(context.Background()))
	assert.Empty(t, h.Err(), "success clears the error")
}

func TestRefreshReplacesInsteadOfAppending(t *testing.T) {
	ms := memstore.New()
	svc := repo.NewTodo(ms, quietLogger())
	seedTodos(t, svc, "a", "b")
	h := NewTodos(NewStore(), svc, signedIn)

	for range 3 {
		require.NoError(t, h.Refresh(context.Background()))
	}
	assert.Len(t, h.Todos(), 2)
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	ms := memstore.New()
	svc := repo.NewTodo(ms, quietLogger())
	seedTodos(t, svc, "a")
	h := NewTodos(NewStore(), svc, signedIn)
	require.NoError(t, h.Refresh(context.Background()))

	failing(ms, "ListTodos", errOffline)
	require.Error(t, h.Refresh(context.Background()))
	assert.Len(t, h.Todos(), 1)
	assert.NotEmpty(t, h.Err())
}

func TestDelete(t *testing.T) {
	ms := memstore.New()
	svc := repo.NewTodo(ms, quietLogger())
	seeded := seedTodos(t, svc, "a", "b")
	h := NewTodos(NewStore(), svc, signedIn)
	require.NoError(t, h.Refresh(context.Background()))

	t.Run("success removes without refetch", func(t *testing.T) {
		failing(ms, "ListTodos", errOffline)
		require.NoError(t, h.Delete(context.Background(), seeded[0].ID))
		assert.Equal(t, []string{seeded[1].ID}, todoIDs(h.Todos()))
		assert.Empty(t, h.Err())
	})

	t.Run("failure keeps the record", func(t *testing.T) {
		failing(ms, "DeleteTodo", errOffline)
		err := h.Delete(context.Background(), seeded[1].ID)
		require.Error(t, err)
		assert.Equal(t, repo.KindRemote, repo.KindOf(err))
		assert.Equal(t, []string{seeded[1].ID}, todoIDs(h.Todos()))
		assert.NotEmpty(t, h.Err())
	})

	t.Run("unknown id", func(t *testing.T) {
		ms.Hook = nil
		err := h.Delete(context.Background(), "missing")
		assert.Equal(t, repo.KindNotFound, repo.KindOf(err))
		assert.Len(t, h.Todos(), 1)
	})
}

func TestStaleFetchDiscardedAfterMutation(t *testing.T) {
	svc := repo.NewTodo(memstore.New(), quietLogger())
	seeded := seedTodos(t, svc, "a", "b")

	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	scripted := &scriptedTodos{TodoService: svc, fetch: func(ctx context.Context, userID string) ([]*models.Todo, error) {
		if calls.Add(1) == 1 {
			return svc.FetchTodos(ctx, userID)
		}
		// Snapshot taken before the delete below.
		snapshot := []*models.Todo{seeded[0], seeded[1]}
		close(entered)
		<-release
		return snapshot, nil
	}}
	h := NewTodos(NewStore(), scripted, signedIn)
	require.NoError(t, h.Refresh(context.Background()))

	done := make(chan error, 1)
	go func() { done <- h.Refresh(context.Background()) }()
	<-entered

	require.NoError(t, h.Delete(context.Background(), seeded[1].ID))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []string{seeded[0].ID}, todoIDs(h.Todos()))
}

func TestConcurrentRefreshesShareOneFetch(t *testing.T) {
	svc := repo.NewTodo(memstore.New(), quietLogger())
	seedTodos(t, svc, "a")

	release := make(chan struct{})
	var calls atomic.Int32
	scripted := &scriptedTodos{TodoService: svc, fetch: func(ctx context.Context, userID string) ([]*models.Todo, error) {
		calls.Add(1)
		<-release
		return svc.FetchTodos(ctx, userID)
	}}
	h := NewTodos(NewStore(), scripted, signedIn)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, h.Refresh(context.Background()))
		}()
	}
	require.Eventually(t, func() bool {
		h.status.mu.Lock()
		defer h.status.mu.Unlock()
		return h.status.inflight == 2
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Len(t, h.Todos(), 1)
}

func TestToggleCompletePersists(t *testing.T) {
	ms := memstore.New()
	svc := repo.NewTodo(ms, quietLogger())
	seeded := seedTodos(t, svc, "a", "b")
	h := NewTodos(NewStore(), svc, signedIn)
	require.NoError(t, h.Refresh(context.Background()))

	got, err := h.ToggleComplete(context.Background(), seeded[0].ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, []string{seeded[0].ID}, todoIDs(h.Completed()))
	assert.Equal(t, []string{seeded[1].ID}, todoIDs(h.Pending()))

	stored, err := svc.FetchTodos(context.Background(), "u1")
	require.NoError(t, err)
	for _, todo := range stored {
		assert.Equal(t, todo.ID == seeded[0].ID, todo.Completed)
	}
}

func TestSubscribeAndReset(t *testing.T) {
	store := NewStore()
	svc := repo.NewTodo(memstore.New(), quietLogger())
	h := NewTodos(store, svc, signedIn)

	var mu sync.Mutex
	var seen []Family
	cancel := store.Subscribe(func(f Family) {
		mu.Lock()
		seen = append(seen, f)
		mu.Unlock()
	})

	_, err := h.Add(context.Background(), &models.Todo{UserID: "u1", Title: "a"})
	require.NoError(t, err)
	store.Reset()
	cancel()
	_, err = h.Add(context.Background(), &models.Todo{UserID: "u1", Title: "b"})
	require.NoError(t, err)

	want := []Family{FamilyTodos, FamilyWallet, FamilyDebits, FamilyCredits, FamilyHealth, FamilyExercises, FamilyTodos, FamilyEvents}
	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}
	assert.Len(t, h.Todos(), 1, "only the add after reset remains")
}

func TestAddValidationFailureLeavesCache(t *testing.T) {
	h := NewTodos(NewStore(), repo.NewTodo(memstore.New(), quietLogger()), signedIn)

	_, err := h.Add(context.Background(), &models.Todo{UserID: "u1"})
	require.Error(t, err)
	assert.Equal(t, repo.KindValidation, repo.KindOf(err))
	assert.Empty(t, h.Todos())
	assert.NotEmpty(t, h.Err())
}

func TestWalletHook(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	h := NewWallet(store, repo.NewWallet(memstore.New(), quietLogger()), signedIn, testClock)

	require.NoError(t, h.Mount(ctx))
	assert.False(t, h.HasWallet())
	assert.Equal(t, "0.00", h.FormattedBalance())

	_, err := h.SaveWallet(ctx, &models.Wallet{
		UserID:      "u1",
		Balance:     decimal.NewFromInt(100),
		DailyBudget: decimal.NewFromInt(20),
		Currency:    "USD",
	})
	require.NoError(t, err)
	assert.True(t, h.HasWallet())
	assert.Equal(t, "100.00", h.FormattedBalance())
	assert.Equal(t, "0.00", h.FormattedSpentToday())
	assert.Equal(t, "$", h.Symbol())

	lunch, err := h.AddTransaction(ctx, &models.Transaction{
		UserID: "u1", Category: "Food", Description: "Lunch",
		Amount: decimal.NewFromInt(12), Type: models.Debit, LoggedAt: noon.Add(-time.Hour),
	})
	require.NoError(t, err)
	_, err = h.AddTransaction(ctx, &models.Transaction{
		UserID: "u1", Category: "Food", Description: "Dinner",
		Amount: decimal.NewFromInt(5), Type: models.Debit, LoggedAt: noon.Add(-13 * time.Hour),
	})
	require.NoError(t, err)

	assert.Len(t, h.Debits(), 2)
	assert.Empty(t, h.Credits())
	assert.Equal(t, "83.00", h.FormattedBalance())
	assert.Equal(t, "12.00", h.FormattedSpentToday())
	assert.True(t, h.WeeklySavingsRemaining().Equal(decimal.NewFromInt(123)))

	t.Run("type change moves the record", func(t *testing.T) {
		credit := models.Credit
		_, err := h.UpdateTransaction(ctx, lunch.ID, models.TransactionPatch{Type: &credit})
		require.NoError(t, err)
		assert.Len(t, h.Debits(), 1)
		require.Len(t, h.Credits(), 1)
		assert.Equal(t, lunch.ID, h.Credits()[0].ID)
		assert.Equal(t, "107.00", h.FormattedBalance())
	})

	t.Run("history groups by date", func(t *testing.T) {
		groups := h.History(0)
		require.Len(t, groups, 2)
		assert.Equal(t, civil.Date{Year: 2026, Month: 3, Day: 10}, groups[0].Date)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, h.DeleteTransaction(ctx, lunch.ID))
		assert.Empty(t, h.Credits())
		assert.Equal(t, "95.00", h.FormattedBalance())
	})

	t.Run("refresh matches cache", func(t *testing.T) {
		before := h.Debits()
		require.NoError(t, h.Refresh(ctx))
		if diff := cmp.Diff(before, h.Debits()); diff != "" {
			t.Errorf("debits after refresh (-want +got):\n%s", diff)
		}
	})
}

func TestWalletMountPartialFailure(t *testing.T) {
	ms := memstore.New()
	svc := repo.NewWallet(ms, quietLogger())
	_, err := svc.SaveWallet(context.Background(), &models.Wallet{UserID: "u1", Balance: decimal.NewFromInt(50)})
	require.NoError(t, err)
	failing(ms, "ListTransactions", errOffline)

	h := NewWallet(NewStore(), svc, signedIn, testClock)
	require.Error(t, h.Mount(context.Background()))
	assert.Equal(t, Ready, h.Phase())
	assert.Empty(t, h.Debits())
}

func TestHealthHook(t *testing.T) {
	ctx := context.Background()
	h := NewHealth(NewStore(), repo.NewHealth(memstore.New(), quietLogger()), signedIn, testClock)
	require.NoError(t, h.Mount(ctx))
	assert.False(t, h.HasProfile())

	_, err := h.SaveProfile(ctx, models.DefaultHealthProfile("u1", models.MacroPercent))
	require.NoError(t, err)
	assert.True(t, h.HasProfile())

	run, err := h.AddExercise(ctx, &models.Exercise{
		UserID: "u1", WorkoutType: models.Cardio, Name: "Run", DurationMin: 15, LoggedAt: noon,
	})
	require.NoError(t, err)
	assert.Equal(t, models.Kilograms, run.WeightUnit)
	_, err = h.AddExercise(ctx, &models.Exercise{
		UserID: "u1", WorkoutType: models.Weights, Name: "Squat", Reps: 5, Weight: 100, LoggedAt: noon,
	})
	require.NoError(t, err)

	assert.Len(t, h.TodayExercises(), 2)
	assert.InDelta(t, 15, h.CardioMinutesToday(), 0.001)
	assert.InDelta(t, 50, h.CardioProgress(), 0.001)

	heatmap := h.Heatmap(7)
	require.Len(t, heatmap, 7)
	assert.Equal(t, 2, heatmap[6].Level)
	assert.Equal(t, 0, heatmap[0].Level)

	minutes := 30.0
	_, err = h.UpdateExercise(ctx, run.ID, models.ExercisePatch{DurationMin: &minutes})
	require.NoError(t, err)
	assert.InDelta(t, 30, h.CardioMinutesToday(), 0.001)
	assert.Len(t, h.Exercises(), 2)

	require.NoError(t, h.DeleteExercise(ctx, run.ID))
	assert.Len(t, h.Exercises(), 1)
	assert.Equal(t, 1, h.Heatmap(7)[6].Level)
}

func TestCalendarHook(t *testing.T) {
	ctx := context.Background()
	h := NewCalendar(NewStore(), repo.NewCalendar(memstore.New(), quietLogger()), signedIn, testClock)

	weekly, err := h.Add(ctx, &models.CalendarEvent{
		UserID: "u1", Title: "Standup", EventDate: noon, Recurrent: true, Recurrence: models.Weekly,
	})
	require.NoError(t, err)
	_, err = h.Add(ctx, &models.CalendarEvent{UserID: "u1", Title: "Dentist", EventDate: noon.AddDate(0, 0, 1)})
	require.NoError(t, err)

	assert.Len(t, h.Upcoming(), 1)
	nextWeek := civil.Date{Year: 2026, Month: 3, Day: 17}
	got := h.EventsOn(nextWeek)
	require.Len(t, got, 1)
	assert.Equal(t, weekly.ID, got[0].ID)

	title := "Team sync"
	_, err = h.Update(ctx, weekly.ID, models.EventPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Team sync", h.EventsOn(nextWeek)[0].Title)

	require.NoError(t, h.Delete(ctx, weekly.ID))
	assert.Empty(t, h.EventsOn(nextWeek))
	assert.Len(t, h.Events(), 1)
}

func TestFamilyAndPhaseStrings(t *testing.T) {
	assert.Equal(t, "debits", FamilyDebits.String())
	assert.Equal(t, "family(99)", Family(99).String())
	assert.Equal(t, "ready", Ready.String())
}

func TestHealthMountPartialFailure(t *testing.T) {
	ms := memstore.New()
	svc := repo.NewHealth(ms, quietLogger())
	_, err := svc.AddExercise(context.Background(), &models.Exercise{
		UserID: "u1", WorkoutType: models.Cardio, Name: "Run", DurationMin: 20, LoggedAt: noon,
	})
	require.NoError(t, err)
	failing(ms, "GetHealthProfile", errOffline)

	h := NewHealth(NewStore(), svc, signedIn, testClock)
	require.Error(t, h.Mount(context.Background()))
	assert.Equal(t, Ready, h.Phase())
	assert.False(t, h.HasProfile())
	assert.Len(t, h.Exercises(), 1, "exercises load even when the profile fails")
	assert.Equal(t, 1, h.Heatmap(7)[6].Level)
}

func TestRefreshCountsAsFirstLoad(t *testing.T) {
	ms := memstore.New()
	svc := repo.NewTodo(ms, quietLogger())
	seedTodos(t, svc, "a")
	h := NewTodos(NewStore(), svc, signedIn)

	require.NoError(t, h.Refresh(context.Background()))
	assert.Equal(t, Ready, h.Phase())

	seedTodos(t, svc, "b")
	require.NoError(t, h.Mount(context.Background()))
	assert.Len(t, h.Todos(), 1, "mount after a refresh must not fetch again")

	failing(ms, "ListTodos", errOffline)
	other := NewTodos(NewStore(), svc, signedIn)
	require.Error(t, other.Refresh(context.Background()))
	assert.Equal(t, Uninitialized, other.Phase(), "a failed refresh is not a load")
}

func TestMountReloadsForNewUserAndAfterReset(t *testing.T) {
	ctx := context.Background()
	svc := repo.NewTodo(memstore.New(), quietLogger())
	seedTodos(t, svc, "mine")
	_, err := svc.AddTodo(ctx, &models.Todo{UserID: "u2", Title: "theirs"})
	require.NoError(t, err)

	store := NewStore()
	user := "u1"
	h := NewTodos(store, svc, func() string { return user })

	require.NoError(t, h.Mount(ctx))
	require.Len(t, h.Todos(), 1)
	assert.Equal(t, "mine", h.Todos()[0].Title)

	store.Reset()
	user = "u2"
	require.NoError(t, h.Mount(ctx))
	require.Len(t, h.Todos(), 1)
	assert.Equal(t, "theirs", h.Todos()[0].Title)

	store.Reset()
	require.NoError(t, h.Mount(ctx))
	assert.Len(t, h.Todos(), 1, "same user reloads after a reset")
	assert.Equal(t, Ready, h.Phase())
}

func TestAddUsesSignedInUser(t *testing.T) {
	ctx := context.Background()
	ms := memstore.New()

	todos := NewTodos(NewStore(), repo.NewTodo(ms, quietLogger()), signedIn)
	todo, err := todos.Add(ctx, &models.Todo{Title: "stretch"})
	require.NoError(t, err)
	assert.Equal(t, "u1", todo.UserID)

	events := NewCalendar(NewStore(), repo.NewCalendar(ms, quietLogger()), signedIn, testClock)
	event, err := events.Add(ctx, &models.CalendarEvent{Title: "Dentist", EventDate: noon})
	require.NoError(t, err)
	assert.Equal(t, "u1", event.UserID)

	signedOut := func() string { return "" }
	tests := []struct {
		name string
		add  func() error
	}{
		{"todo", func() error {
			_, err := NewTodos(NewStore(), repo.NewTodo(ms, quietLogger()), signedOut).Add(ctx, &models.Todo{Title: "x"})
			return err
		}},
		{"event", func() error {
			_, err := NewCalendar(NewStore(), repo.NewCalendar(ms, quietLogger()), signedOut, testClock).Add(ctx, &models.CalendarEvent{Title: "x", EventDate: noon})
			return err
		}},
		{"transaction", func() error {
			_, err := NewWallet(NewStore(), repo.NewWallet(ms, quietLogger()), signedOut, testClock).AddTransaction(ctx, &models.Transaction{
				Amount: decimal.NewFromInt(1), Type: models.Debit, Category: "Food",
			})
			return err
		}},
		{"exercise", func() error {
			_, err := NewHealth(NewStore(), repo.NewHealth(ms, quietLogger()), signedOut, testClock).AddExercise(ctx, &models.Exercise{
				WorkoutType: models.Cardio, Name: "Run", DurationMin: 5,
			})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name+" signed out", func(t *testing.T) {
			assert.ErrorIs(t, tt.add(), ErrSignedOut)
		})
	}

	stored, err := ms.ListTodos(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, stored, "signed-out adds never reach the backend")
}

func TestTransactionTypeChangeIsOneWrite(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	h := NewWallet(store, repo.NewWallet(memstore.New(), quietLogger()), signedIn, testClock)

	lunch, err := h.AddTransaction(ctx, &models.Transaction{
		Category: "Food", Description: "Lunch", Amount: decimal.NewFromInt(12), Type: models.Debit, LoggedAt: noon,
	})
	require.NoError(t, err)

	var mu sync.Mutex
	var visible []int
	cancel := store.Subscribe(func(Family) {
		mu.Lock()
		defer mu.Unlock()
		visible = append(visible, len(h.Debits())+len(h.Credits()))
	})
	defer cancel()

	credit := models.Credit
	_, err = h.UpdateTransaction(ctx, lunch.ID, models.TransactionPatch{Type: &credit})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 1}, visible, "both families change together")
	assert.Empty(t, h.Debits())
	require.Len(t, h.Credits(), 1)
	assert.Equal(t, models.Credit, h.Credits()[0].Type)
}
