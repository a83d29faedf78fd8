// Package services provides orchestration on top of the ledger store:
// recurring-template materialization, budget tracking and demo seeding.
//
// This file implements the Strategy Pattern for recurring-template dueness
// checking. Each interval (daily, weekly, monthly, yearly) has its own
// strategy that encapsulates the logic for deciding whether a new
// occurrence should be materialized.
package services

import (
	"fmt"
	"time"

	"tally/internal/core"
)

// DuenessChecker is the strategy interface for checking if a recurring
// template is due for a new occurrence.
type DuenessChecker interface {
	// IsDue returns true if a new occurrence should be materialized given
	// the last materialized occurrence and the current time.
	IsDue(lastOccurrence, now time.Time, startDate core.Date) bool
}

// DailyChecker implements DuenessChecker for daily templates.
type DailyChecker struct{}

// IsDue returns true if the last occurrence was before today.
func (DailyChecker) IsDue(lastOccurrence, now time.Time, _ core.Date) bool {
	if lastOccurrence.IsZero() {
		return true
	}
	lastDate := lastOccurrence.Format("2006-01-02")
	nowDate := now.Format("2006-01-02")
	return lastDate != nowDate
}

// WeeklyChecker implements DuenessChecker for weekly templates.
type WeeklyChecker struct{}

// IsDue returns true if 7 or more days have passed since the last occurrence.
func (WeeklyChecker) IsDue(lastOccurrence, now time.Time, _ core.Date) bool {
	if lastOccurrence.IsZero() {
		return true
	}
	daysSince := now.Sub(lastOccurrence).Hours() / 24
	return daysSince >= 7
}

// MonthlyChecker implements DuenessChecker for monthly templates.
type MonthlyChecker struct{}

// IsDue returns true if we're in a new month and have reached the target day.
func (MonthlyChecker) IsDue(lastOccurrence, now time.Time, startDate core.Date) bool {
	if lastOccurrence.IsZero() {
		return true
	}

	// Already materialized this month?
	if lastOccurrence.Year() == now.Year() && lastOccurrence.Month() == now.Month() {
		return false
	}

	// The target day clamps to the last day of short months.
	targetDay := startDate.Day()
	targetDayThisMonth := targetDay
	lastDayOfMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if targetDay > lastDayOfMonth {
		targetDayThisMonth = lastDayOfMonth
	}

	return now.Day() >= targetDayThisMonth
}

// YearlyChecker implements DuenessChecker for yearly templates.
type YearlyChecker struct{}

// IsDue returns true if we're in a new year and have reached the target
// month and day.
func (YearlyChecker) IsDue(lastOccurrence, now time.Time, startDate core.Date) bool {
	if lastOccurrence.IsZero() {
		return true
	}

	// Already materialized this year?
	if lastOccurrence.Year() == now.Year() {
		return false
	}

	targetMonth := startDate.Month()
	targetDay := startDate.Day()

	if int(now.Month()) < targetMonth {
		return false
	}

	if int(now.Month()) == targetMonth {
		lastDayOfMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
		targetDayThisMonth := targetDay
		if targetDay > lastDayOfMonth {
			targetDayThisMonth = lastDayOfMonth
		}
		return now.Day() >= targetDayThisMonth
	}

	// We're past the target month.
	return true
}

// duenessStrategies maps recurrence intervals to their checkers.
var duenessStrategies = map[core.RecurrenceInterval]DuenessChecker{
	core.Daily:   DailyChecker{},
	core.Weekly:  WeeklyChecker{},
	core.Monthly: MonthlyChecker{},
	core.Yearly:  YearlyChecker{},
}

// GetDuenessChecker returns the checker for a recurrence interval.
// Returns an error if the interval is not supported.
func GetDuenessChecker(interval core.RecurrenceInterval) (DuenessChecker, error) {
	checker, ok := duenessStrategies[interval]
	if !ok {
		return nil, fmt.Errorf("unknown recurrence interval: %s", interval)
	}
	return checker, nil
}
