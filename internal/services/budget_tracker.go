package services

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/log"
)

// BudgetStatus classifies how far along a budget is.
type BudgetStatus string

const (
	BudgetOK       BudgetStatus = "ok"
	BudgetWarning  BudgetStatus = "warning"
	BudgetExceeded BudgetStatus = "exceeded"
)

// BudgetReport is one budget with its recomputed spend and derived status.
type BudgetReport struct {
	Budget  core.Budget
	Spent   decimal.Decimal
	Percent float64
	Status  BudgetStatus
}

// BudgetTracker recomputes budget spend from the transaction collection.
// The stored Spent field is a cache; the transactions are the truth.
type BudgetTracker struct {
	store  *ledger.Store
	logger *log.Logger
}

func NewBudgetTracker(store *ledger.Store, logger *log.Logger) *BudgetTracker {
	if logger == nil {
		logger = log.New(log.Config{})
	}
	return &BudgetTracker{
		store:  store,
		logger: logger.WithComponent(log.ComponentBudget),
	}
}

// Reports computes a report for every active budget: the sum of expense
// transactions in the budget's category set and date window, the percent
// of the cap consumed, and a status. A budget with a zero cap that has any
// spend at all is exceeded.
func (t *BudgetTracker) Reports() []BudgetReport {
	budgets := t.store.Budgets()
	transactions := t.store.Query(ledger.Filter{})

	reports := make([]BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		if !b.Active {
			continue
		}
		spent := spentFor(b, transactions)
		reports = append(reports, BudgetReport{
			Budget:  b,
			Spent:   spent,
			Percent: percentSpent(spent, b.Amount),
			Status:  statusFor(spent, b),
		})
	}
	return reports
}

// Refresh writes the recomputed spend back into each budget so snapshots
// carry up-to-date numbers.
func (t *BudgetTracker) Refresh(ctx context.Context) []BudgetReport {
	reports := t.Reports()
	for _, r := range reports {
		if !r.Budget.Spent.Equal(r.Spent) {
			b := r.Budget
			b.Spent = r.Spent
			t.store.SetBudget(ctx, b)
		}
	}

	t.logger.DebugContext(ctx, "Budgets refreshed",
		log.FieldOperation, log.OpUpdate,
		log.FieldCount, len(reports))
	return reports
}

func spentFor(b core.Budget, transactions []core.Transaction) decimal.Decimal {
	spent := decimal.Zero
	for _, tx := range transactions {
		if tx.Type != core.Expense {
			continue
		}
		if !slices.Contains(b.Categories, tx.Category.ID) {
			continue
		}
		if !tx.Date.Between(b.StartDate, b.EndDate) {
			continue
		}
		spent = spent.Add(tx.Amount)
	}
	return spent
}

func percentSpent(spent, limit decimal.Decimal) float64 {
	if limit.IsZero() {
		if spent.IsZero() {
			return 0
		}
		return 100
	}
	pct, _ := spent.Div(limit).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

func statusFor(spent decimal.Decimal, b core.Budget) BudgetStatus {
	pct := percentSpent(spent, b.Amount)
	switch {
	case pct >= 100:
		return BudgetExceeded
	case b.AlertThreshold > 0 && pct >= float64(b.AlertThreshold):
		return BudgetWarning
	default:
		return BudgetOK
	}
}
