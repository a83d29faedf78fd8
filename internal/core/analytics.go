package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// topCategoryLimit caps the ranked category breakdown.
const topCategoryLimit = 5

// averageDailyDivisor is fixed at 30 for every analytics period. The
// original tracker divides by 30 regardless of window length and that
// behavior is part of the contract here.
var averageDailyDivisor = decimal.NewFromInt(30)

type (
	// CategoryShare is one slice of the expense breakdown: a category, the
	// absolute amount spent in it, and its share of total expenses.
	CategoryShare struct {
		Category   Category        `json:"category"`
		Amount     decimal.Decimal `json:"amount"`
		Percentage float64         `json:"percentage"`
	}

	// MonthlyPoint is one bucket of a month-by-month trend series.
	MonthlyPoint struct {
		Month    string          `json:"month"`
		Income   decimal.Decimal `json:"income"`
		Expenses decimal.Decimal `json:"expenses"`
	}

	// Analytics is the derived summary for a transaction set. It has no
	// identity or lifecycle of its own; it is recomputed on demand.
	Analytics struct {
		TotalIncome   decimal.Decimal `json:"totalIncome"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetBalance    decimal.Decimal `json:"netBalance"`
		TopCategories []CategoryShare `json:"topCategories"`
		MonthlyTrend  []MonthlyPoint  `json:"monthlyTrend"`
		AverageDaily  decimal.Decimal `json:"averageDaily"`
		SavingsRate   float64         `json:"savingsRate"`
	}
)

// Compute derives an Analytics result from a transaction list. It is pure
// and total: no input makes it panic or return an error, and an empty list
// yields the all-zero result.
//
// The categories registry is used to attach current category metadata to the
// breakdown; when a grouped id is not in the registry the copy embedded in
// the transactions is used instead.
func Compute(transactions []Transaction, categories []Category) Analytics {
	result := Analytics{
		TopCategories: []CategoryShare{},
		// Intentionally never populated: kept as an empty series for
		// interface compatibility with the snapshot consumers.
		MonthlyTrend: []MonthlyPoint{},
	}

	byCategory := make(map[string]decimal.Decimal)
	embedded := make(map[string]Category)

	for _, t := range transactions {
		switch t.Type {
		case Income:
			result.TotalIncome = result.TotalIncome.Add(t.Amount)
		case Expense:
			result.TotalExpenses = result.TotalExpenses.Add(t.Amount)
			byCategory[t.Category.ID] = byCategory[t.Category.ID].Add(t.Amount)
			embedded[t.Category.ID] = t.Category
		}
	}

	result.NetBalance = result.TotalIncome.Sub(result.TotalExpenses)

	for id, amount := range byCategory {
		result.TopCategories = append(result.TopCategories, CategoryShare{
			Category:   lookupCategory(id, categories, embedded),
			Amount:     amount,
			Percentage: percentOf(amount, result.TotalExpenses),
		})
	}

	// Rank by amount descending; equal amounts fall back to category id so
	// the output is deterministic across map iteration orders.
	sort.SliceStable(result.TopCategories, func(i, j int) bool {
		a, b := result.TopCategories[i], result.TopCategories[j]
		if cmp := a.Amount.Cmp(b.Amount); cmp != 0 {
			return cmp > 0
		}
		return a.Category.ID < b.Category.ID
	})
	if len(result.TopCategories) > topCategoryLimit {
		result.TopCategories = result.TopCategories[:topCategoryLimit]
	}

	result.AverageDaily = result.TotalExpenses.Div(averageDailyDivisor)

	if result.TotalIncome.IsPositive() {
		result.SavingsRate, _ = result.NetBalance.
			Mul(decimal.NewFromInt(100)).
			Div(result.TotalIncome).
			Float64()
	}

	return result
}

// percentOf returns part/whole*100, or 0 when the whole is zero. The zero
// guard is a deliberate choice: the original computed NaN here.
func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	f, _ := part.Mul(decimal.NewFromInt(100)).Div(whole).Float64()
	return f
}

func lookupCategory(id string, registry []Category, embedded map[string]Category) Category {
	for _, c := range registry {
		if c.ID == id {
			return c
		}
	}
	return embedded[id]
}
