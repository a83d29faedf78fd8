package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/log"
)

type sampleRecord struct {
	title       string
	amount      float64
	categoryID  string
	txType      core.TransactionType
	description string
}

// The demo dataset. Titles, amounts and category assignments are fixed;
// dates, payment methods, recurrence and tags are randomized per seed run.
var sampleRecords = []sampleRecord{
	// Income
	{"Salary", 3500, "9", core.Income, "Monthly salary payment"},
	{"Freelance Project", 750, "9", core.Income, "Web development project"},
	{"Investment Returns", 120, "9", core.Income, "Dividend payment"},

	// Food & Dining
	{"Grocery Shopping", 85.50, "1", core.Expense, "Weekly groceries at supermarket"},
	{"Lunch at Work", 12.99, "1", core.Expense, "Sandwich and coffee"},
	{"Dinner with Friends", 45.00, "1", core.Expense, "Italian restaurant"},
	{"Coffee Shop", 4.50, "1", core.Expense, "Morning latte"},
	{"Fast Food", 8.99, "1", core.Expense, "Quick lunch"},

	// Transportation
	{"Gas Station", 55.00, "2", core.Expense, "Fuel for car"},
	{"Uber Ride", 18.50, "2", core.Expense, "Trip to airport"},
	{"Public Transport", 2.75, "2", core.Expense, "Bus ticket"},
	{"Parking Fee", 5.00, "2", core.Expense, "Downtown parking"},

	// Shopping
	{"New Headphones", 199.99, "3", core.Expense, "Wireless noise-cancelling headphones"},
	{"Clothes Shopping", 89.99, "3", core.Expense, "New shirt and jeans"},
	{"Online Purchase", 25.99, "3", core.Expense, "Book from Amazon"},

	// Entertainment
	{"Movie Tickets", 24.00, "4", core.Expense, "Evening movie with partner"},
	{"Streaming Service", 15.99, "4", core.Expense, "Netflix subscription"},
	{"Concert Tickets", 85.00, "4", core.Expense, "Live music event"},

	// Bills & Utilities
	{"Electricity Bill", 125.00, "5", core.Expense, "Monthly electricity payment"},
	{"Internet Bill", 79.99, "5", core.Expense, "High-speed internet"},
	{"Phone Bill", 45.00, "5", core.Expense, "Mobile phone plan"},
	{"Rent", 1200.00, "5", core.Expense, "Monthly apartment rent"},

	// Healthcare
	{"Doctor Visit", 120.00, "6", core.Expense, "Annual checkup"},
	{"Pharmacy", 25.50, "6", core.Expense, "Prescription medication"},

	// Education
	{"Online Course", 49.99, "7", core.Expense, "Programming course on Udemy"},
	{"Books", 35.00, "7", core.Expense, "Educational books"},

	// Travel
	{"Weekend Trip", 300.00, "8", core.Expense, "Hotel and activities"},
	{"Flight Booking", 450.00, "8", core.Expense, "Vacation flight tickets"},
}

// SampleSeeder inserts the demo dataset into an empty ledger.
type SampleSeeder struct {
	store  *ledger.Store
	logger *log.Logger
	now    func() time.Time
}

func NewSampleSeeder(store *ledger.Store, logger *log.Logger) *SampleSeeder {
	if logger == nil {
		logger = log.New(log.Config{})
	}
	return &SampleSeeder{
		store:  store,
		logger: logger.WithComponent(log.ComponentSeed),
		now:    time.Now,
	}
}

// Seed inserts the sample records with random dates from the last 30 days.
// Idempotent: a ledger that already has transactions is left alone, and the
// returned count is zero.
func (s *SampleSeeder) Seed(ctx context.Context) int {
	if len(s.store.Query(ledger.Filter{})) > 0 {
		s.logger.DebugContext(ctx, "Ledger not empty, skipping seed",
			log.FieldOperation, log.OpSeed)
		return 0
	}

	categories := make(map[string]core.Category)
	for _, c := range s.store.Categories() {
		categories[c.ID] = c
	}
	methods := s.store.PaymentMethods()

	now := s.now()
	for _, rec := range sampleRecords {
		category, ok := categories[rec.categoryID]
		if !ok {
			continue
		}

		tx := core.Transaction{
			Title:         rec.title,
			Amount:        decimal.NewFromFloat(rec.amount),
			Type:          rec.txType,
			Category:      category,
			PaymentMethod: methods[rand.Intn(len(methods))],
			Date:          core.DateOf(now.AddDate(0, 0, -rand.Intn(30))),
			Description:   rec.description,
			Tags:          []string{},
			Currency:      "USD",
		}
		// 20% of records become monthly recurring templates.
		if rand.Float64() > 0.8 {
			tx.Recurring = true
			tx.Interval = core.Monthly
		}
		// 30% carry demo tags.
		if rand.Float64() > 0.7 {
			tx.Tags = []string{"sample", "demo"}
		}

		s.store.Add(ctx, tx)
	}

	s.logger.InfoContext(ctx, "Sample data seeded",
		log.FieldOperation, log.OpSeed,
		log.FieldCount, len(sampleRecords))
	return len(sampleRecords)
}
