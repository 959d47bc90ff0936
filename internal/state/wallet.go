package state

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/stride/internal/calculator"
	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/repo"
)

// WalletService is the domain service the wallet hook drives.
type WalletService interface {
	FetchWallet(ctx context.Context, userID string) (*models.Wallet, error)
	SaveWallet(ctx context.Context, w *models.Wallet) (*models.Wallet, error)
	FetchDebits(ctx context.Context, userID string) ([]*models.Transaction, error)
	FetchCredits(ctx context.Context, userID string) ([]*models.Transaction, error)
	AddTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}

var _ WalletService = (*repo.Wallet)(nil)

// Wallet is the finance hook: wallet, debits and credits plus derived figures.
type Wallet struct {
	base
	svc   WalletService
	clock Clock
}

// NewWallet creates the wallet hook.
func NewWallet(store *Store, svc WalletService, userID UserFunc, clock Clock) *Wallet {
	return &Wallet{base: base{store: store, userID: userID}, svc: svc, clock: clock}
}

// Mount loads wallet, debits and credits concurrently on first use.
func (h *Wallet) Mount(ctx context.Context) error {
	return h.mount(ctx, h.load)
}

// Refresh reloads wallet, debits and credits.
func (h *Wallet) Refresh(ctx context.Context) error {
	return h.refresh(ctx, h.load)
}

// load fetches the three families concurrently. One failing family does not
// cancel the others.
func (h *Wallet) load(ctx context.Context, userID string) error {
	var g errgroup.Group
	g.Go(func() error {
		return refetch(ctx, &h.base, FamilyWallet, &h.store.wallet, func(ctx context.Context) (*models.Wallet, error) {
			return h.svc.FetchWallet(ctx, userID)
		})
	})
	g.Go(func() error {
		return refetch(ctx, &h.base, FamilyDebits, &h.store.debits, func(ctx context.Context) ([]models.Transaction, error) {
			txs, err := h.svc.FetchDebits(ctx, userID)
			return values(txs), err
		})
	})
	g.Go(func() error {
		return refetch(ctx, &h.base, FamilyCredits, &h.store.credits, func(ctx context.Context) ([]models.Transaction, error) {
			txs, err := h.svc.FetchCredits(ctx, userID)
			return values(txs), err
		})
	})
	return g.Wait()
}

// RefreshDebits reloads only the debits.
func (h *Wallet) RefreshDebits(ctx context.Context) error {
	userID := h.userID()
	if userID == "" {
		return ErrSignedOut
	}
	return h.run(func() error {
		return refetch(ctx, &h.base, FamilyDebits, &h.store.debits, func(ctx context.Context) ([]models.Transaction, error) {
			txs, err := h.svc.FetchDebits(ctx, userID)
			return values(txs), err
		})
	})
}

// Wallet returns the cached wallet, nil before onboarding.
func (h *Wallet) Wallet() *models.Wallet { return h.store.Wallet() }

func (h *Wallet) Debits() []models.Transaction { return h.store.Debits() }

func (h *Wallet) Credits() []models.Transaction { return h.store.Credits() }

// HasWallet reports whether the user has completed wallet onboarding.
func (h *Wallet) HasWallet() bool { return h.store.Wallet() != nil }

// Currency is the wallet currency code, or "" without a wallet.
func (h *Wallet) Currency() string { return walletCurrency(h.store.Wallet()) }

func (h *Wallet) Symbol() string { return calculator.CurrencySymbol(h.Currency()) }

// FormattedBalance is the balance rendered with two decimals.
func (h *Wallet) FormattedBalance() string { return calculator.FormatAmount(h.Balance()) }

func (h *Wallet) FormattedSpentToday() string { return calculator.FormatAmount(h.SpentToday()) }

func (h *Wallet) debitPointers() []*models.Transaction { return pointers(h.store.Debits()) }

func walletCurrency(w *models.Wallet) string {
	if w == nil {
		return ""
	}
	return w.Currency
}

func budgetOf(w *models.Wallet) decimal.Decimal {
	if w == nil {
		return decimal.Zero
	}
	return w.DailyBudget
}

// Balance is the starting balance minus debits plus credits, or zero without a wallet.
func (h *Wallet) Balance() decimal.Decimal {
	return calculator.Balance(h.store.Wallet(), h.debitPointers(), pointers(h.store.Credits()))
}

// SpentToday sums the debits logged on today's calendar date.
func (h *Wallet) SpentToday() decimal.Decimal {
	return calculator.SpentToday(h.debitPointers(), h.clock.Today(), h.clock.Location)
}

// WeeklySavings is the progress toward seven days of budget.
func (h *Wallet) WeeklySavings() calculator.WeeklySavings {
	return calculator.CalculateWeeklySavings(budgetOf(h.store.Wallet()), h.debitPointers(), h.clock.Today(), h.clock.Location)
}

// WeeklySavingsRemaining is what is left of seven days of budget, never negative.
func (h *Wallet) WeeklySavingsRemaining() decimal.Decimal {
	return calculator.WeeklySavingsRemaining(budgetOf(h.store.Wallet()), h.debitPointers(), h.clock.Today(), h.clock.Location)
}

// History groups debits and credits together by calendar date, newest first.
// n > 0 keeps only the n most recent records.
func (h *Wallet) History(n int) []calculator.DateGroup[*models.Transaction] {
	all := append(h.debitPointers(), pointers(h.store.Credits())...)
	groups := calculator.GroupByDate(all, func(t *models.Transaction) time.Time { return t.LoggedAt }, h.clock.Location)
	if n > 0 {
		return calculator.Recent(groups, n)
	}
	return groups
}

// SaveWallet creates or replaces the signed-in user's wallet and caches the
// confirmed row.
func (h *Wallet) SaveWallet(ctx context.Context, w *models.Wallet) (*models.Wallet, error) {
	userID, err := h.requireUser()
	if err != nil {
		return nil, err
	}
	w.UserID = userID

	var saved *models.Wallet
	err = h.run(func() error {
		var err error
		saved, err = h.svc.SaveWallet(ctx, w)
		if err != nil {
			return err
		}
		update(h.store, FamilyWallet, &h.store.wallet, func(*models.Wallet) *models.Wallet { return clonePtr(saved) })
		return nil
	})
	return saved, err
}

// AddTransaction stores t for the signed-in user and caches the confirmed row under
// debits or credits by type.
func (h *Wallet) AddTransaction(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	userID, err := h.requireUser()
	if err != nil {
		return nil, err
	}
	t.UserID = userID

	var stored *models.Transaction
	err = h.run(func() error {
		var err error
		stored, err = h.svc.AddTransaction(ctx, t)
		if err != nil {
			return err
		}
		h.place(stored.ID, stored)
		return nil
	})
	return stored, err
}

// UpdateTransaction patches a transaction, moving it between debits and credits if
// its type changed.
func (h *Wallet) UpdateTransaction(ctx context.Context, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	userID, err := h.requireUser()
	if err != nil {
		return nil, err
	}
	var updated *models.Transaction
	err = h.run(func() error {
		var err error
		updated, err = h.svc.UpdateTransaction(ctx, userID, id, patch)
		if err != nil {
			return err
		}
		h.place(id, updated)
		return nil
	})
	return updated, err
}

// DeleteTransaction deletes a transaction and drops it from the cache without a
// refetch. On failure the cache keeps the record.
func (h *Wallet) DeleteTransaction(ctx context.Context, id string) error {
	userID, err := h.requireUser()
	if err != nil {
		return err
	}
	return h.run(func() error {
		if err := h.svc.DeleteTransaction(ctx, userID, id); err != nil {
			return err
		}
		h.place(id, nil)
		return nil
	})
}

func transactionID(t models.Transaction) string { return t.ID }

// place puts row in the family matching its type and drops id from the other, in a
// single write. A nil row only drops id. Subscribers are notified once the write is
// complete, so they never observe the record missing from both families.
func (h *Wallet) place(id string, row *models.Transaction) {
	s := h.store
	families := []struct {
		f Family
		c *cell[[]models.Transaction]
	}{
		{FamilyDebits, &s.debits},
		{FamilyCredits, &s.credits},
	}

	var changed []Family
	s.mu.Lock()
	for _, fam := range families {
		var next []models.Transaction
		if row != nil && (row.Type == models.Debit) == (fam.f == FamilyDebits) {
			next = replaceByID(fam.c.value, *row, transactionID)
		} else if next = removeByID(fam.c.value, id, transactionID); len(next) == len(fam.c.value) {
			continue
		}
		fam.c.value = next
		fam.c.version++
		changed = append(changed, fam.f)
	}
	s.mu.Unlock()

	s.notify(changed...)
}
