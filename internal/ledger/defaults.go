package ledger

import (
	"github.com/shopspring/decimal"

	"tally/internal/core"
)

// The default catalog is part of the observable contract: a fresh ledger
// must expose exactly these categories and payment methods so demo data
// stays meaningful.

func DefaultCategories() []core.Category {
	return []core.Category{
		{ID: "1", Name: "Food & Dining", Icon: "🍽️", Color: "#ef4444", Budget: decimal.NewFromInt(500), Default: true},
		{ID: "2", Name: "Transportation", Icon: "🚗", Color: "#3b82f6", Budget: decimal.NewFromInt(300), Default: true},
		{ID: "3", Name: "Shopping", Icon: "🛍️", Color: "#8b5cf6", Budget: decimal.NewFromInt(200), Default: true},
		{ID: "4", Name: "Entertainment", Icon: "🎬", Color: "#f59e0b", Budget: decimal.NewFromInt(150), Default: true},
		{ID: "5", Name: "Bills & Utilities", Icon: "⚡", Color: "#10b981", Budget: decimal.NewFromInt(800), Default: true},
		{ID: "6", Name: "Healthcare", Icon: "🏥", Color: "#ec4899", Budget: decimal.NewFromInt(200), Default: true},
		{ID: "7", Name: "Education", Icon: "📚", Color: "#6366f1", Budget: decimal.NewFromInt(300), Default: true},
		{ID: "8", Name: "Travel", Icon: "✈️", Color: "#14b8a6", Budget: decimal.NewFromInt(400), Default: true},
		{ID: "9", Name: "Income", Icon: "💰", Color: "#22c55e", Budget: decimal.Zero, Default: true},
		{ID: "10", Name: "Savings", Icon: "🏦", Color: "#0ea5e9", Budget: decimal.Zero, Default: true},
	}
}

func DefaultPaymentMethods() []core.PaymentMethod {
	return []core.PaymentMethod{
		{ID: "1", Name: "Cash", Kind: core.MethodCash, Icon: "💵", Color: "#22c55e"},
		{ID: "2", Name: "Credit Card", Kind: core.MethodCard, Icon: "💳", Color: "#3b82f6"},
		{ID: "3", Name: "Debit Card", Kind: core.MethodCard, Icon: "💳", Color: "#8b5cf6"},
		{ID: "4", Name: "Bank Transfer", Kind: core.MethodBank, Icon: "🏦", Color: "#0ea5e9"},
		{ID: "5", Name: "PayPal", Kind: core.MethodDigital, Icon: "📱", Color: "#0070ba"},
		{ID: "6", Name: "Crypto", Kind: core.MethodCrypto, Icon: "₿", Color: "#f7931a"},
	}
}
