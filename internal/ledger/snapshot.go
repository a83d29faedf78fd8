package ledger

import (
	"context"
	"encoding/json"

	"tally/internal/core"
	"tally/internal/log"
)

// StateKey is the well-known storage key the full ledger snapshot lives
// under. Every mutation overwrites the whole blob.
const StateKey = "tally.state"

// Origin tells callers where the in-memory state came from at open time.
type Origin string

const (
	// OriginDefaults: no snapshot existed; built-in reference data was
	// seeded (fresh install).
	OriginDefaults Origin = "defaults"
	// OriginSnapshot: the persisted snapshot loaded cleanly.
	OriginSnapshot Origin = "snapshot"
	// OriginRecovered: a snapshot existed but could not be read or parsed;
	// defaults were substituted. Never fatal.
	OriginRecovered Origin = "recovered"
)

// LoadResult distinguishes a fresh install from corrupt data recovered to
// defaults. Err carries the parse or read failure for OriginRecovered and
// is nil otherwise.
type LoadResult struct {
	Origin Origin
	Err    error
}

// snapshot is the persisted state layout, one JSON blob under StateKey.
type snapshot struct {
	Transactions   []core.Transaction   `json:"transactions"`
	Categories     []core.Category      `json:"categories"`
	Budgets        []core.Budget        `json:"budgets"`
	Goals          []core.Goal          `json:"goals"`
	PaymentMethods []core.PaymentMethod `json:"paymentMethods"`
}

// restore deserializes the persisted blob into the store, substituting
// defaults when the key is absent or the blob is malformed.
func (s *Store) restore(ctx context.Context) LoadResult {
	s.transactions = []core.Transaction{}
	s.categories = DefaultCategories()
	s.budgets = []core.Budget{}
	s.goals = []core.Goal{}
	s.paymentMethods = DefaultPaymentMethods()

	blob, ok, err := s.kv.Load(ctx, StateKey)
	if err != nil {
		s.logger.WarnContext(ctx, "Snapshot unreadable, starting from defaults",
			log.FieldKey, StateKey, log.FieldError, err)
		return LoadResult{Origin: OriginRecovered, Err: err}
	}
	if !ok {
		s.logger.InfoContext(ctx, "No snapshot found, seeding default catalog",
			log.FieldKey, StateKey)
		return LoadResult{Origin: OriginDefaults}
	}

	var snap snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		s.logger.WarnContext(ctx, "Snapshot malformed, starting from defaults",
			log.FieldKey, StateKey, log.FieldError, err)
		return LoadResult{Origin: OriginRecovered, Err: err}
	}

	// Sections missing from an older blob keep their defaults, mirroring
	// the original loader's per-field fallbacks.
	if snap.Transactions != nil {
		s.transactions = snap.Transactions
	}
	if len(snap.Categories) > 0 {
		s.categories = snap.Categories
	}
	if snap.Budgets != nil {
		s.budgets = snap.Budgets
	}
	if snap.Goals != nil {
		s.goals = snap.Goals
	}
	if len(snap.PaymentMethods) > 0 {
		s.paymentMethods = snap.PaymentMethods
	}

	s.logger.InfoContext(ctx, "Snapshot restored",
		log.FieldKey, StateKey, log.FieldCount, len(s.transactions))
	return LoadResult{Origin: OriginSnapshot}
}

// persist mirrors the whole in-memory state to the storage medium. The
// mirror is best effort: a failed write is logged and swallowed so no
// mutation can crash the session. Must be called with the mutex held.
func (s *Store) persist(ctx context.Context) {
	snap := snapshot{
		Transactions:   s.transactions,
		Categories:     s.categories,
		Budgets:        s.budgets,
		Goals:          s.goals,
		PaymentMethods: s.paymentMethods,
	}

	blob, err := json.Marshal(snap)
	if err != nil {
		s.logger.ErrorContext(ctx, "Snapshot serialization failed",
			log.FieldKey, StateKey, log.FieldError, err)
		return
	}

	if err := s.kv.Save(ctx, StateKey, blob); err != nil {
		s.logger.ErrorContext(ctx, "Snapshot write failed",
			log.FieldKey, StateKey, log.FieldError, err)
	}
}
