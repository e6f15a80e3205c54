// Package view computes read-only projections of the expense store: the
// subset of records for a chosen day and their total. All functions are
// pure; inputs are never mutated.
package view

import (
	"spendlog/internal/core"
)

// DayOverview is the rendered projection for a single calendar day.
type DayOverview struct {
	Day     core.Day
	Records []core.ExpenseRecord
	Total   core.Money
}

// FilterByDay returns the records dated on the given day, preserving input
// order. Since the store keeps records newest-first, so does the result.
func FilterByDay(records []core.ExpenseRecord, day core.Day) []core.ExpenseRecord {
	var out []core.ExpenseRecord
	for _, r := range records {
		if r.Date.Equal(day) {
			out = append(out, r)
		}
	}
	return out
}

// Sum returns the arithmetic sum of the record amounts, zero for no records.
func Sum(records []core.ExpenseRecord) core.Money {
	var total core.Money
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// OverviewFor combines FilterByDay and Sum for one day.
func OverviewFor(records []core.ExpenseRecord, day core.Day) DayOverview {
	filtered := FilterByDay(records, day)
	return DayOverview{
		Day:     day,
		Records: filtered,
		Total:   Sum(filtered),
	}
}
