// Package period provides calendar-period predicates and the sums built on
// them. Boundaries are calendar days, months and years in the location of
// the reference instant, never rolling windows.
package period

import (
	"time"

	"zenspend/internal/core"
)

// Predicate reports whether a transaction date belongs to a period.
type Predicate func(time.Time) bool

// Totals are the headline expense sums relative to a reference instant.
type Totals struct {
	Today core.Money
	Month core.Money
	Year  core.Money
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last nanosecond of t's calendar month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// AddMonths moves n calendar months from the start of t's month, so day
// overflow (Mar 31 - 1 month) cannot skip a month.
func AddMonths(t time.Time, n int) time.Time {
	return StartOfMonth(t).AddDate(0, n, 0)
}

// AddDays moves n calendar days from the start of t's day.
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

func IsSameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func IsSameMonth(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func IsSameYear(a, b time.Time) bool {
	return a.In(b.Location()).Year() == b.Year()
}

// SameDay matches dates on ref's calendar day.
func SameDay(ref time.Time) Predicate {
	return func(t time.Time) bool { return IsSameDay(t, ref) }
}

// WithinMonth matches dates in ref's calendar month.
func WithinMonth(ref time.Time) Predicate {
	return func(t time.Time) bool { return IsSameMonth(t, ref) }
}

// WithinYear matches dates in ref's calendar year.
func WithinYear(ref time.Time) Predicate {
	return func(t time.Time) bool { return IsSameYear(t, ref) }
}

// WithinInterval matches dates in [start, end], both ends inclusive.
func WithinInterval(start, end time.Time) Predicate {
	return func(t time.Time) bool {
		return !t.Before(start) && !t.After(end)
	}
}

// SumByTypeAndPeriod sums the amounts of transactions of the given type whose
// date satisfies pred. An empty match yields zero.
func SumByTypeAndPeriod(txs []core.Transaction, typ core.TransactionType, pred Predicate) core.Money {
	var sum core.Money
	for _, tx := range txs {
		if tx.Type == typ && pred(tx.Date) {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// HeadlineTotals returns today's, this month's and this year's expenses.
func HeadlineTotals(txs []core.Transaction, now time.Time) Totals {
	return totalsFor(txs, core.Expense, now)
}

// IncomeTotals is HeadlineTotals for income.
func IncomeTotals(txs []core.Transaction, now time.Time) Totals {
	return totalsFor(txs, core.Income, now)
}

func totalsFor(txs []core.Transaction, typ core.TransactionType, now time.Time) Totals {
	return Totals{
		Today: SumByTypeAndPeriod(txs, typ, SameDay(now)),
		Month: SumByTypeAndPeriod(txs, typ, WithinMonth(now)),
		Year:  SumByTypeAndPeriod(txs, typ, WithinYear(now)),
	}
}

// Balance is income minus expenses over the period.
func Balance(txs []core.Transaction, pred Predicate) core.Money {
	return SumByTypeAndPeriod(txs, core.Income, pred).Sub(SumByTypeAndPeriod(txs, core.Expense, pred))
}
