package core

import (
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func expenseIn(category Category, amount float64) Transaction {
	return Transaction{
		Title:    "expense in " + category.Name,
		Amount:   decimal.NewFromFloat(amount),
		Type:     Expense,
		Category: category,
		Date:     NewDate(2025, 6, 15),
	}
}

func incomeOf(amount float64) Transaction {
	return Transaction{
		Title:    "income",
		Amount:   decimal.NewFromFloat(amount),
		Type:     Income,
		Category: Category{ID: "9", Name: "Income"},
		Date:     NewDate(2025, 6, 15),
	}
}

func TestComputeEmptyInput(t *testing.T) {
	a := Compute(nil, nil)

	if !a.TotalIncome.IsZero() || !a.TotalExpenses.IsZero() || !a.NetBalance.IsZero() {
		t.Fatalf("expected zero totals, got %+v", a)
	}
	if len(a.TopCategories) != 0 {
		t.Fatalf("expected empty breakdown, got %d entries", len(a.TopCategories))
	}
	if !a.AverageDaily.IsZero() {
		t.Fatalf("expected zero average daily, got %s", a.AverageDaily)
	}
	if a.SavingsRate != 0 {
		t.Fatalf("expected zero savings rate, got %f", a.SavingsRate)
	}
	if a.TopCategories == nil || a.MonthlyTrend == nil {
		t.Fatal("breakdown and trend must be empty slices, not nil")
	}
}

func TestComputeConcreteScenario(t *testing.T) {
	food := Category{ID: "1", Name: "Food & Dining"}
	transport := Category{ID: "2", Name: "Transportation"}

	txs := []Transaction{
		incomeOf(1000),
		expenseIn(food, 400),
		expenseIn(transport, 100),
	}

	a := Compute(txs, []Category{food, transport})

	if !a.TotalIncome.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("total income: got %s, want 1000", a.TotalIncome)
	}
	if !a.TotalExpenses.Equal(decimal.NewFromInt(500)) {
		t.Errorf("total expenses: got %s, want 500", a.TotalExpenses)
	}
	if !a.NetBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("net balance: got %s, want 500", a.NetBalance)
	}
	if a.SavingsRate != 50 {
		t.Errorf("savings rate: got %f, want 50", a.SavingsRate)
	}

	if len(a.TopCategories) != 2 {
		t.Fatalf("got %d categories, want 2", len(a.TopCategories))
	}
	if a.TopCategories[0].Category.ID != "1" || a.TopCategories[0].Percentage != 80 {
		t.Errorf("first share: got %s at %f%%, want Food at 80%%",
			a.TopCategories[0].Category.Name, a.TopCategories[0].Percentage)
	}
	if a.TopCategories[1].Category.ID != "2" || a.TopCategories[1].Percentage != 20 {
		t.Errorf("second share: got %s at %f%%, want Transportation at 20%%",
			a.TopCategories[1].Category.Name, a.TopCategories[1].Percentage)
	}
}

func TestComputePercentagesSumToHundred(t *testing.T) {
	categories := make([]Category, 0, 4)
	txs := make([]Transaction, 0, 4)
	for i, amount := range []float64{12.37, 250, 0.03, 99.60} {
		c := Category{ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("cat %d", i)}
		categories = append(categories, c)
		txs = append(txs, expenseIn(c, amount))
	}

	a := Compute(txs, categories)

	var sum float64
	for _, share := range a.TopCategories {
		sum += share.Percentage
		if share.Amount.GreaterThan(a.TotalExpenses) {
			t.Errorf("category %s amount %s exceeds total %s",
				share.Category.ID, share.Amount, a.TotalExpenses)
		}
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages sum to %f, want 100", sum)
	}
}

func TestComputeZeroExpensesGuard(t *testing.T) {
	// Income-only input: the breakdown is empty and nothing divides by zero.
	a := Compute([]Transaction{incomeOf(1000)}, nil)

	if len(a.TopCategories) != 0 {
		t.Fatalf("expected no expense categories, got %d", len(a.TopCategories))
	}
	if a.SavingsRate != 100 {
		t.Errorf("savings rate: got %f, want 100", a.SavingsRate)
	}
	if !a.AverageDaily.IsZero() {
		t.Errorf("average daily: got %s, want 0", a.AverageDaily)
	}
}

func TestComputeTopCategoriesCappedAtFive(t *testing.T) {
	var txs []Transaction
	var categories []Category
	for i := 0; i < 8; i++ {
		c := Category{ID: fmt.Sprintf("c%d", i), Name: fmt.Sprintf("cat %d", i)}
		categories = append(categories, c)
		txs = append(txs, expenseIn(c, float64(100+i)))
	}

	a := Compute(txs, categories)

	if len(a.TopCategories) != 5 {
		t.Fatalf("got %d categories, want 5", len(a.TopCategories))
	}
	// Highest amounts first.
	for i := 1; i < len(a.TopCategories); i++ {
		if a.TopCategories[i].Amount.GreaterThan(a.TopCategories[i-1].Amount) {
			t.Fatal("breakdown not sorted by amount descending")
		}
	}
	if a.TopCategories[0].Category.ID != "c7" {
		t.Errorf("largest category: got %s, want c7", a.TopCategories[0].Category.ID)
	}
}

func TestComputeAverageDailyUsesFixedDivisor(t *testing.T) {
	c := Category{ID: "1", Name: "Food & Dining"}
	a := Compute([]Transaction{expenseIn(c, 900)}, []Category{c})

	if !a.AverageDaily.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("average daily: got %s, want 30 (900/30)", a.AverageDaily)
	}
}

func TestComputeNegativeSavingsRate(t *testing.T) {
	c := Category{ID: "1", Name: "Food & Dining"}
	a := Compute([]Transaction{incomeOf(100), expenseIn(c, 150)}, []Category{c})

	if a.SavingsRate != -50 {
		t.Fatalf("savings rate: got %f, want -50", a.SavingsRate)
	}
}

func TestComputeUsesRegistryMetadata(t *testing.T) {
	stale := Category{ID: "1", Name: "Food"}
	current := Category{ID: "1", Name: "Food & Dining", Icon: "🍽️", Color: "#ef4444"}

	a := Compute([]Transaction{expenseIn(stale, 50)}, []Category{current})

	if a.TopCategories[0].Category.Name != "Food & Dining" {
		t.Fatalf("got %q, want registry name", a.TopCategories[0].Category.Name)
	}

	// Unknown id falls back to the embedded copy.
	orphan := Category{ID: "zz", Name: "Orphaned"}
	a = Compute([]Transaction{expenseIn(orphan, 50)}, []Category{current})
	if a.TopCategories[0].Category.Name != "Orphaned" {
		t.Fatalf("got %q, want embedded fallback", a.TopCategories[0].Category.Name)
	}
}
