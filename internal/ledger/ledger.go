// Package ledger holds the authoritative in-memory transaction collection
// and mirrors it to a storage medium after every mutation.
package ledger

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tally/internal/cache"
	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/storage"
)

// Period selects the rolling analytics window ending now.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func (p Period) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	default:
		return false
	}
}

const (
	analyticsCacheSize = 4
	analyticsCacheTTL  = 30 * time.Second
)

// Store owns the transaction collection and the category/payment-method
// reference lists for one session. There is exactly one writer; the mutex
// only makes concurrent readers (e.g. parallel report computation) safe.
type Store struct {
	mu     sync.Mutex
	kv     storage.KeyValue
	logger *log.Logger
	now    func() time.Time

	transactions   []core.Transaction
	categories     []core.Category
	budgets        []core.Budget
	goals          []core.Goal
	paymentMethods []core.PaymentMethod

	analytics *cache.LRU[core.Analytics]
}

// Open restores the store from the storage medium. It never fails: an
// absent or corrupt snapshot yields a defaulted store, and the LoadResult
// tells the caller which of the two happened.
func Open(ctx context.Context, kv storage.KeyValue, logger *log.Logger) (*Store, LoadResult) {
	if logger == nil {
		logger = log.New(log.Config{})
	}
	s := &Store{
		kv:        kv,
		logger:    logger.WithComponent(log.ComponentLedger),
		now:       time.Now,
		analytics: cache.NewLRU[core.Analytics](analyticsCacheSize, analyticsCacheTTL),
	}
	return s, s.restore(ctx)
}

// Add stores a new transaction: assigns a fresh id and timestamps, prepends
// it (most-recent-insertion-first, regardless of its date) and persists.
// The input's ID/CreatedAt/UpdatedAt are overwritten; referential validity
// of the embedded category and payment method is the caller's business.
func (s *Store) Add(ctx context.Context, tx core.Transaction) core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	tx.ID = uuid.NewString()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	if tx.Tags == nil {
		tx.Tags = []string{}
	}

	s.transactions = append([]core.Transaction{tx}, s.transactions...)
	s.afterMutation(ctx)

	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldOperation, log.OpAdd,
		log.FieldID, tx.ID,
		log.FieldTitle, tx.Title,
		log.FieldAmount, tx.Amount.String(),
		log.FieldCategory, tx.Category.Name)
	return tx
}

// Patch carries the fields an update may change. Nil pointers leave the
// stored value untouched; ID and CreatedAt cannot be patched.
type Patch struct {
	Title         *string
	Amount        *decimal.Decimal
	Type          *core.TransactionType
	Category      *core.Category
	PaymentMethod *core.PaymentMethod
	Date          *core.Date
	Description   *string
	Location      *string
	Tags          []string
	Recurring     *bool
	Interval      *core.RecurrenceInterval
	Currency      *string
}

// Update shallow-merges the patch over the stored record and refreshes
// UpdatedAt. A missing id reports ok=false; it is not an error.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return core.Transaction{}, false
	}

	tx := &s.transactions[idx]
	if patch.Title != nil {
		tx.Title = *patch.Title
	}
	if patch.Amount != nil {
		tx.Amount = *patch.Amount
	}
	if patch.Type != nil {
		tx.Type = *patch.Type
	}
	if patch.Category != nil {
		tx.Category = *patch.Category
	}
	if patch.PaymentMethod != nil {
		tx.PaymentMethod = *patch.PaymentMethod
	}
	if patch.Date != nil {
		tx.Date = *patch.Date
	}
	if patch.Description != nil {
		tx.Description = *patch.Description
	}
	if patch.Location != nil {
		tx.Location = *patch.Location
	}
	if patch.Tags != nil {
		tx.Tags = patch.Tags
	}
	if patch.Recurring != nil {
		tx.Recurring = *patch.Recurring
	}
	if patch.Interval != nil {
		tx.Interval = *patch.Interval
	}
	if patch.Currency != nil {
		tx.Currency = *patch.Currency
	}

	// UpdatedAt must move strictly forward even on coarse clocks.
	now := s.now()
	if !now.After(tx.UpdatedAt) {
		now = tx.UpdatedAt.Add(time.Nanosecond)
	}
	tx.UpdatedAt = now

	s.afterMutation(ctx)

	s.logger.InfoContext(ctx, "Transaction updated",
		log.FieldOperation, log.OpUpdate, log.FieldID, id)
	return *tx, true
}

// Delete removes a transaction by id. Hard delete, no tombstone; false
// when the id is unknown.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	s.afterMutation(ctx)

	s.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete, log.FieldID, id)
	return true
}

// Query returns a filtered copy of the collection sorted by date
// descending. Ties keep insertion order (most recent insertion first).
// The store is not mutated.
func (s *Store) Query(filter Filter) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if filter.matches(t) {
			result = append(result, t)
		}
	}

	slices.SortStableFunc(result, func(a, b core.Transaction) int {
		return b.Date.Time.Compare(a.Date.Time)
	})
	return result
}

// Analytics computes the derived summary for a rolling window ending now:
// 7 days, 1 calendar month or 1 calendar year back. Unknown periods fall
// back to month, matching the original's default. Results are memoized per
// period until the next mutation (or a short TTL); semantics stay
// recompute-on-demand.
func (s *Store) Analytics(period Period) core.Analytics {
	if result, ok := s.analytics.Get(string(period)); ok {
		return result
	}

	s.mu.Lock()
	now := s.now()
	var start time.Time
	switch period {
	case PeriodWeek:
		start = now.AddDate(0, 0, -7)
	case PeriodYear:
		start = now.AddDate(-1, 0, 0)
	default:
		start = now.AddDate(0, -1, 0)
	}

	window := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if !t.Date.Time.Before(start) && !t.Date.Time.After(now) {
			window = append(window, t)
		}
	}
	categories := append([]core.Category(nil), s.categories...)
	s.mu.Unlock()

	result := core.Compute(window, categories)
	s.analytics.Set(string(period), result)

	s.logger.Debug("Analytics computed",
		log.FieldOperation, log.OpAnalytics,
		log.FieldPeriod, string(period),
		log.FieldCount, len(window))
	return result
}

// SetBudget inserts or replaces a budget by id, assigning an id when empty.
func (s *Store) SetBudget(ctx context.Context, budget core.Budget) core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()

	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	replaced := false
	for i := range s.budgets {
		if s.budgets[i].ID == budget.ID {
			s.budgets[i] = budget
			replaced = true
			break
		}
	}
	if !replaced {
		s.budgets = append(s.budgets, budget)
	}

	s.afterMutation(ctx)
	return budget
}

// RemoveBudget deletes a budget by id; false when absent.
func (s *Store) RemoveBudget(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.budgets {
		if s.budgets[i].ID == id {
			s.budgets = append(s.budgets[:i], s.budgets[i+1:]...)
			s.afterMutation(ctx)
			return true
		}
	}
	return false
}

// SetGoal inserts or replaces a savings goal by id.
func (s *Store) SetGoal(ctx context.Context, goal core.Goal) core.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	replaced := false
	for i := range s.goals {
		if s.goals[i].ID == goal.ID {
			s.goals[i] = goal
			replaced = true
			break
		}
	}
	if !replaced {
		s.goals = append(s.goals, goal)
	}

	s.afterMutation(ctx)
	return goal
}

// RemoveGoal deletes a goal by id; false when absent.
func (s *Store) RemoveGoal(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			s.afterMutation(ctx)
			return true
		}
	}
	return false
}

// Categories returns a read-only snapshot of the category registry.
func (s *Store) Categories() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...)
}

// PaymentMethods returns a read-only snapshot of the payment-method registry.
func (s *Store) PaymentMethods() []core.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.PaymentMethod(nil), s.paymentMethods...)
}

// Budgets returns a read-only snapshot of the budget list.
func (s *Store) Budgets() []core.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Budget(nil), s.budgets...)
}

// Goals returns a read-only snapshot of the goal list.
func (s *Store) Goals() []core.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals...)
}

// CategoryByID resolves a category from the registry.
func (s *Store) CategoryByID(id string) (core.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return core.Category{}, false
}

// PaymentMethodByID resolves a payment method from the registry.
func (s *Store) PaymentMethodByID(id string) (core.PaymentMethod, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return core.PaymentMethod{}, false
}

// afterMutation invalidates memoized analytics and mirrors state. Must be
// called with the mutex held.
func (s *Store) afterMutation(ctx context.Context) {
	s.analytics.Purge()
	s.persist(ctx)
}

func (s *Store) indexOf(id string) int {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return i
		}
	}
	return -1
}
