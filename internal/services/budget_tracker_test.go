package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
	"tally/internal/ledger"
)

func addExpense(t *testing.T, store *ledger.Store, title string, amount float64, categoryIdx int, day core.Date) {
	t.Helper()
	store.Add(context.Background(), core.Transaction{
		Title:    title,
		Amount:   decimal.NewFromFloat(amount),
		Type:     core.Expense,
		Category: store.Categories()[categoryIdx],
		Date:     day,
		Currency: "USD",
	})
}

func augustBudget(categories []string, amount float64, threshold int) core.Budget {
	return core.Budget{
		Name:           "August groceries",
		Amount:         decimal.NewFromFloat(amount),
		Period:         core.PeriodMonthlyBudget,
		Categories:     categories,
		StartDate:      core.NewDate(2026, 8, 1),
		EndDate:        core.NewDate(2026, 8, 31),
		AlertThreshold: threshold,
		Active:         true,
	}
}

func TestBudgetReportsSumsMatchingExpenses(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	addExpense(t, store, "Groceries", 80, 0, core.NewDate(2026, 8, 5))  // Food, in window
	addExpense(t, store, "Takeaway", 20, 0, core.NewDate(2026, 8, 20))  // Food, in window
	addExpense(t, store, "Gas", 50, 1, core.NewDate(2026, 8, 10))       // Transportation, wrong category
	addExpense(t, store, "Old lunch", 30, 0, core.NewDate(2026, 7, 31)) // Food, before window
	store.Add(ctx, core.Transaction{ // income never counts
		Title:    "Salary",
		Amount:   decimal.NewFromInt(3500),
		Type:     core.Income,
		Category: store.Categories()[8],
		Date:     core.NewDate(2026, 8, 1),
		Currency: "USD",
	})

	store.SetBudget(ctx, augustBudget([]string{"1"}, 500, 80))

	reports := NewBudgetTracker(store, nil).Reports()
	require.Len(t, reports, 1)

	r := reports[0]
	assert.True(t, decimal.NewFromInt(100).Equal(r.Spent), "spent = %s", r.Spent)
	assert.InDelta(t, 20.0, r.Percent, 0.001)
	assert.Equal(t, BudgetOK, r.Status)
}

func TestBudgetStatusThresholds(t *testing.T) {
	tests := []struct {
		name      string
		spent     float64
		amount    float64
		threshold int
		want      BudgetStatus
	}{
		{"well under", 10, 100, 80, BudgetOK},
		{"just under threshold", 79, 100, 80, BudgetOK},
		{"at threshold", 80, 100, 80, BudgetWarning},
		{"over threshold", 95, 100, 80, BudgetWarning},
		{"at cap", 100, 100, 80, BudgetExceeded},
		{"over cap", 150, 100, 80, BudgetExceeded},
		{"no threshold set", 95, 100, 0, BudgetOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newTestStore(t)
			addExpense(t, store, "Spend", tt.spent, 0, core.NewDate(2026, 8, 10))
			store.SetBudget(ctx, augustBudget([]string{"1"}, tt.amount, tt.threshold))

			reports := NewBudgetTracker(store, nil).Reports()
			require.Len(t, reports, 1)
			assert.Equal(t, tt.want, reports[0].Status)
		})
	}
}

func TestBudgetZeroCapWithSpendIsExceeded(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	addExpense(t, store, "Anything", 1, 0, core.NewDate(2026, 8, 10))
	store.SetBudget(ctx, augustBudget([]string{"1"}, 0, 80))

	reports := NewBudgetTracker(store, nil).Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, BudgetExceeded, reports[0].Status)
}

func TestBudgetInactiveSkipped(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	b := augustBudget([]string{"1"}, 500, 80)
	b.Active = false
	store.SetBudget(ctx, b)

	assert.Empty(t, NewBudgetTracker(store, nil).Reports())
}

func TestBudgetRefreshPersistsSpent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	addExpense(t, store, "Groceries", 123.45, 0, core.NewDate(2026, 8, 5))
	saved := store.SetBudget(ctx, augustBudget([]string{"1"}, 500, 80))

	NewBudgetTracker(store, nil).Refresh(ctx)

	budgets := store.Budgets()
	require.Len(t, budgets, 1)
	assert.Equal(t, saved.ID, budgets[0].ID)
	assert.True(t, decimal.NewFromFloat(123.45).Equal(budgets[0].Spent), "spent = %s", budgets[0].Spent)
}

func TestBudgetMultipleCategories(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	addExpense(t, store, "Groceries", 60, 0, core.NewDate(2026, 8, 5)) // Food
	addExpense(t, store, "Gas", 40, 1, core.NewDate(2026, 8, 6))      // Transportation
	store.SetBudget(ctx, augustBudget([]string{"1", "2"}, 500, 80))

	reports := NewBudgetTracker(store, nil).Reports()
	require.Len(t, reports, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(reports[0].Spent))
}
