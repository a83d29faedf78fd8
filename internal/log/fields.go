package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldKey       = "key"
	FieldBackend   = "backend"
	FieldOrigin    = "origin"
	FieldID        = "id"
	FieldTitle     = "title"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldPeriod    = "period"
	FieldCount     = "count"
	FieldEmail     = "email"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentLedger    = "ledger"
	ComponentStorage   = "storage"
	ComponentBackend   = "backend"
	ComponentSession   = "session"
	ComponentRecurring = "recurring"
	ComponentBudget    = "budget"
	ComponentSeed      = "seed"
	ComponentCLI       = "cli"
)

// Operations defines standard operation names
const (
	OpAdd         = "add"
	OpUpdate      = "update"
	OpDelete      = "delete"
	OpQuery       = "query"
	OpAnalytics   = "analytics"
	OpLoad        = "load"
	OpPersist     = "persist"
	OpSeed        = "seed"
	OpLogin       = "login"
	OpLogout      = "logout"
	OpMaterialize = "materialize"
)
