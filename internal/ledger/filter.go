package ledger

import (
	"strings"

	"tally/internal/core"
)

// Filter narrows a query. All fields are optional and combine with AND.
type Filter struct {
	// Type matches transactions of exactly this type when set.
	Type core.TransactionType
	// CategoryID matches the embedded category's id.
	CategoryID string
	// From and To bound the transaction date, both inclusive.
	From *core.Date
	To   *core.Date
	// Search is a case-insensitive substring match against title,
	// description and category name.
	Search string
}

func (f Filter) matches(t core.Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && t.Category.ID != f.CategoryID {
		return false
	}
	if f.From != nil && t.Date.Time.Before(f.From.Time) {
		return false
	}
	if f.To != nil && t.Date.Time.After(f.To.Time) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) &&
			!strings.Contains(strings.ToLower(t.Category.Name), needle) {
			return false
		}
	}
	return true
}
