package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validTransaction() Transaction {
	return Transaction{
		Title:  "Grocery Shopping",
		Amount: decimal.NewFromFloat(85.50),
		Type:   Expense,
		Category: Category{
			ID:   "1",
			Name: "Food & Dining",
		},
		PaymentMethod: PaymentMethod{ID: "1", Name: "Cash", Kind: MethodCash},
		Date:          NewDate(2025, 6, 15),
		Currency:      "USD",
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid expense", func(*Transaction) {}, nil},
		{"valid income", func(tx *Transaction) { tx.Type = Income }, nil},
		{"empty title", func(tx *Transaction) { tx.Title = "   " }, ErrEmptyTitle},
		{"negative amount", func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-1) }, ErrNegativeAmount},
		{"zero amount ok", func(tx *Transaction) { tx.Amount = decimal.Zero }, nil},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"recurring without interval", func(tx *Transaction) { tx.Recurring = true }, ErrInvalidInterval},
		{"recurring with interval", func(tx *Transaction) { tx.Recurring = true; tx.Interval = Monthly }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && err != tt.wantErr {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransactionValidateTitleLength(t *testing.T) {
	tx := validTransaction()
	for i := 0; i < 210; i++ {
		tx.Title += "x"
	}
	if err := tx.Validate(); err != ErrTitleTooLong {
		t.Fatalf("got %v, want ErrTitleTooLong", err)
	}
}

func TestTransactionValidateZeroDate(t *testing.T) {
	tx := validTransaction()
	tx.Date = Date{}
	if err := tx.Validate(); err == nil {
		t.Fatal("expected error for zero date")
	}
}

func TestBudgetValidate(t *testing.T) {
	budget := Budget{
		Name:           "Monthly Food Budget",
		Amount:         decimal.NewFromInt(500),
		Period:         PeriodMonthlyBudget,
		Categories:     []string{"1"},
		StartDate:      NewDate(2025, 6, 1),
		EndDate:        NewDate(2025, 6, 30),
		AlertThreshold: 80,
		Active:         true,
	}
	if err := budget.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reversed := budget
	reversed.StartDate, reversed.EndDate = reversed.EndDate, reversed.StartDate
	if err := reversed.Validate(); err == nil {
		t.Fatal("expected error when end date precedes start date")
	}

	badPeriod := budget
	badPeriod.Period = "quarterly"
	if err := badPeriod.Validate(); err != ErrInvalidPeriod {
		t.Fatalf("got %v, want ErrInvalidPeriod", err)
	}
}

func TestGoalValidate(t *testing.T) {
	goal := Goal{
		Title:        "Emergency Fund",
		TargetAmount: decimal.NewFromInt(15000),
		SavedAmount:  decimal.NewFromInt(8500),
		Deadline:     NewDate(2026, 12, 31),
		Priority:     PriorityHigh,
	}
	if err := goal.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goal.SavedAmount = decimal.NewFromInt(-5)
	if err := goal.Validate(); err != ErrNegativeAmount {
		t.Fatalf("got %v, want ErrNegativeAmount", err)
	}
}

func TestRecurrenceIntervalIsValid(t *testing.T) {
	valid := []RecurrenceInterval{Daily, Weekly, Monthly, Yearly}
	for _, r := range valid {
		if !r.IsValid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if RecurrenceInterval("fortnightly").IsValid() {
		t.Error("fortnightly should be invalid")
	}
}

func TestTimestampsAreCallerOpaque(t *testing.T) {
	// Validate must not reject zero timestamps: the ledger assigns them.
	tx := validTransaction()
	tx.CreatedAt = time.Time{}
	tx.UpdatedAt = time.Time{}
	if err := tx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
