package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/storage"
)

func newTestStore(t *testing.T) *ledger.Store {
	t.Helper()
	store, result := ledger.Open(context.Background(), storage.NewMemoryStore(), nil)
	require.NoError(t, result.Err)
	return store
}

func template(store *ledger.Store, title string, interval core.RecurrenceInterval, startDate core.Date) core.Transaction {
	categories := store.Categories()
	methods := store.PaymentMethods()
	return store.Add(context.Background(), core.Transaction{
		Title:         title,
		Amount:        decimal.NewFromFloat(15.99),
		Type:          core.Expense,
		Category:      categories[3], // Entertainment
		PaymentMethod: methods[1],
		Date:          startDate,
		Recurring:     true,
		Interval:      interval,
		Currency:      "USD",
	})
}

func TestMaterializeDueCreatesOccurrence(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	tmpl := template(store, "Streaming Service", core.Monthly, core.NewDate(2026, 6, 15))

	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	p := NewRecurringProcessor(store, nil)

	created, err := p.MaterializeDue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	all := store.Query(ledger.Filter{})
	require.Len(t, all, 2)

	var occurrence core.Transaction
	found := false
	for _, tx := range all {
		if tx.ID != tmpl.ID {
			occurrence = tx
			found = true
		}
	}
	require.True(t, found)
	assert.False(t, occurrence.Recurring)
	assert.Empty(t, string(occurrence.Interval))
	assert.Equal(t, core.DateOf(now), occurrence.Date)
	assert.Equal(t, tmpl.Title, occurrence.Title)
	assert.True(t, tmpl.Amount.Equal(occurrence.Amount))
}

func TestMaterializeDueIsIdempotentWithinPeriod(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	template(store, "Streaming Service", core.Monthly, core.NewDate(2026, 6, 15))

	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	p := NewRecurringProcessor(store, nil)

	created, err := p.MaterializeDue(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	// Second run in the same month finds the fresh occurrence and does nothing.
	created, err = p.MaterializeDue(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Len(t, store.Query(ledger.Filter{}), 2)
}

func TestMaterializeDueSkipsNonTemplates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.Add(ctx, core.Transaction{
		Title:    "One-off purchase",
		Amount:   decimal.NewFromInt(50),
		Type:     core.Expense,
		Category: store.Categories()[0],
		Date:     core.NewDate(2026, 8, 1),
		Currency: "USD",
	})

	p := NewRecurringProcessor(store, nil)
	created, err := p.MaterializeDue(ctx, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Len(t, store.Query(ledger.Filter{}), 1)
}

func TestMaterializeDueSkipsUnknownInterval(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.Add(ctx, core.Transaction{
		Title:     "Weird cadence",
		Amount:    decimal.NewFromInt(10),
		Type:      core.Expense,
		Category:  store.Categories()[0],
		Date:      core.NewDate(2026, 7, 1),
		Recurring: true,
		Interval:  "fortnightly",
		Currency:  "USD",
	})

	p := NewRecurringProcessor(store, nil)
	created, err := p.MaterializeDue(ctx, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestMaterializeDueNotYetDue(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	template(store, "Gym Membership", core.Monthly, core.NewDate(2026, 8, 20))

	// Template dated the 20th, run on the 10th of the next month.
	p := NewRecurringProcessor(store, nil)
	created, err := p.MaterializeDue(ctx, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestMaterializeDueMultipleTemplates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	template(store, "Streaming Service", core.Monthly, core.NewDate(2026, 7, 1))
	template(store, "Daily Coffee", core.Daily, core.NewDate(2026, 8, 1))

	p := NewRecurringProcessor(store, nil)
	created, err := p.MaterializeDue(ctx, time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}
