package services

import (
	"context"
	"time"

	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/log"
)

// RecurringProcessor materializes dated occurrences from recurring
// templates. A transaction with the recurring flag set acts as the
// template; each run checks, per template, whether the interval's dueness
// strategy calls for a new occurrence and appends one through the store.
type RecurringProcessor struct {
	store  *ledger.Store
	logger *log.Logger
}

func NewRecurringProcessor(store *ledger.Store, logger *log.Logger) *RecurringProcessor {
	if logger == nil {
		logger = log.New(log.Config{})
	}
	return &RecurringProcessor{
		store:  store,
		logger: logger.WithComponent(log.ComponentRecurring),
	}
}

// MaterializeDue scans all recurring templates and appends an occurrence
// for each that is due at now. It returns the number of occurrences
// created. Templates with an interval no strategy covers are skipped with
// a warning rather than failing the run.
func (p *RecurringProcessor) MaterializeDue(ctx context.Context, now time.Time) (int, error) {
	all := p.store.Query(ledger.Filter{})

	created := 0
	for _, template := range all {
		if !template.Recurring {
			continue
		}

		checker, err := GetDuenessChecker(template.Interval)
		if err != nil {
			p.logger.WarnContext(ctx, "Skipping template with unknown interval",
				log.FieldOperation, log.OpMaterialize,
				log.FieldID, template.ID,
				log.FieldError, err)
			continue
		}

		last := lastOccurrence(all, template)
		if !checker.IsDue(last, now, template.Date) {
			continue
		}

		occurrence := template
		occurrence.Date = core.DateOf(now)
		occurrence.Recurring = false
		occurrence.Interval = ""
		added := p.store.Add(ctx, occurrence)
		created++

		p.logger.InfoContext(ctx, "Materialized recurring occurrence",
			log.FieldOperation, log.OpMaterialize,
			log.FieldID, added.ID,
			log.FieldTitle, added.Title,
			log.FieldAmount, added.Amount.String())
	}

	if created > 0 {
		p.logger.InfoContext(ctx, "Materialization run complete",
			log.FieldOperation, log.OpMaterialize,
			log.FieldCount, created)
	}
	return created, nil
}

// lastOccurrence finds the most recent date among the template itself and
// every transaction that shares its title, category and type. Materialized
// copies drop the recurring flag, so matching on identity fields is how a
// template finds its own history.
func lastOccurrence(all []core.Transaction, template core.Transaction) time.Time {
	last := template.Date.Time
	for _, t := range all {
		if t.ID == template.ID || t.Recurring {
			continue
		}
		if t.Title != template.Title || t.Category.ID != template.Category.ID || t.Type != template.Type {
			continue
		}
		if t.Date.Time.After(last) {
			last = t.Date.Time
		}
	}
	return last
}
