package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

const (
	Daily   RecurrenceInterval = "daily"
	Weekly  RecurrenceInterval = "weekly"
	Monthly RecurrenceInterval = "monthly"
	Yearly  RecurrenceInterval = "yearly"
)

const (
	MethodCash    PaymentMethodKind = "cash"
	MethodCard    PaymentMethodKind = "card"
	MethodBank    PaymentMethodKind = "bank"
	MethodDigital PaymentMethodKind = "digital"
	MethodCrypto  PaymentMethodKind = "crypto"
)

const (
	PeriodWeeklyBudget  BudgetPeriod = "weekly"
	PeriodMonthlyBudget BudgetPeriod = "monthly"
	PeriodYearlyBudget  BudgetPeriod = "yearly"
)

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

type (
	TransactionType    string
	RecurrenceInterval string
	PaymentMethodKind  string
	BudgetPeriod       string
	GoalPriority       string

	// Category classifies a transaction's purpose. The Budget field is an
	// optional spending ceiling, zero when unset.
	Category struct {
		ID      string          `json:"id"`
		Name    string          `json:"name"`
		Icon    string          `json:"icon"`
		Color   string          `json:"color"`
		Budget  decimal.Decimal `json:"budget"`
		Default bool            `json:"isDefault"`
	}

	// PaymentMethod is the instrument used for a transaction.
	PaymentMethod struct {
		ID    string            `json:"id"`
		Name  string            `json:"name"`
		Kind  PaymentMethodKind `json:"type"`
		Icon  string            `json:"icon"`
		Color string            `json:"color"`
	}

	// Transaction is a single income or expense record. Amount is always
	// non-negative; direction is conveyed by Type alone. Category and
	// PaymentMethod are embedded copies taken at write time, so renaming a
	// category does not rewrite history.
	Transaction struct {
		ID            string             `json:"id"`
		Title         string             `json:"title"`
		Amount        decimal.Decimal    `json:"amount"`
		Type          TransactionType    `json:"type"`
		Category      Category           `json:"category"`
		PaymentMethod PaymentMethod      `json:"paymentMethod"`
		Date          Date               `json:"date"`
		Description   string             `json:"description,omitempty"`
		Location      string             `json:"location,omitempty"`
		Tags          []string           `json:"tags"`
		Recurring     bool               `json:"isRecurring"`
		Interval      RecurrenceInterval `json:"recurringInterval,omitempty"`
		Currency      string             `json:"currency"`
		CreatedAt     time.Time          `json:"createdAt"`
		UpdatedAt     time.Time          `json:"updatedAt"`
	}

	// Budget is a spending cap over a set of categories for a period.
	Budget struct {
		ID             string          `json:"id"`
		Name           string          `json:"name"`
		Amount         decimal.Decimal `json:"amount"`
		Spent          decimal.Decimal `json:"spent"`
		Period         BudgetPeriod    `json:"period"`
		Categories     []string        `json:"categories"`
		StartDate      Date            `json:"startDate"`
		EndDate        Date            `json:"endDate"`
		AlertThreshold int             `json:"alertThreshold"`
		Active         bool            `json:"isActive"`
	}

	// Goal is a savings target with a deadline.
	Goal struct {
		ID           string          `json:"id"`
		Title        string          `json:"title"`
		TargetAmount decimal.Decimal `json:"targetAmount"`
		SavedAmount  decimal.Decimal `json:"savedAmount"`
		Deadline     Date            `json:"deadline"`
		Priority     GoalPriority    `json:"priority"`
		Category     string          `json:"category"`
	}
)

var (
	ErrEmptyTitle      = errors.New("empty title")
	ErrTitleTooLong    = errors.New("title too long (max 200 characters)")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidInterval = errors.New("invalid recurrence interval")
	ErrInvalidPeriod   = errors.New("invalid budget period")
)

func (t TransactionType) IsValid() bool {
	return t == Expense || t == Income
}

func (r RecurrenceInterval) IsValid() bool {
	switch r {
	case Daily, Weekly, Monthly, Yearly:
		return true
	default:
		return false
	}
}

func (p BudgetPeriod) IsValid() bool {
	switch p {
	case PeriodWeeklyBudget, PeriodMonthlyBudget, PeriodYearlyBudget:
		return true
	default:
		return false
	}
}

// Validate checks the caller-supplied fields of a transaction. The ledger
// itself trusts its callers; the CLI runs this before handing records over.
func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return ErrTitleTooLong
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.Recurring && !t.Interval.IsValid() {
		return ErrInvalidInterval
	}
	return nil
}

func (b Budget) Validate() error {
	if len(strings.TrimSpace(b.Name)) == 0 {
		return ErrEmptyTitle
	}
	if b.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !b.Period.IsValid() {
		return ErrInvalidPeriod
	}
	if err := b.StartDate.Validate(); err != nil {
		return errors.New("invalid start date: " + err.Error())
	}
	if err := b.EndDate.Validate(); err != nil {
		return errors.New("invalid end date: " + err.Error())
	}
	if b.EndDate.Time.Before(b.StartDate.Time) {
		return errors.New("end date must not be before start date")
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Title)) == 0 {
		return ErrEmptyTitle
	}
	if g.TargetAmount.IsNegative() || g.SavedAmount.IsNegative() {
		return ErrNegativeAmount
	}
	return g.Deadline.Validate()
}
