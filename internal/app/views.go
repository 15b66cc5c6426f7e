package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"zenspend/internal/budget"
	"zenspend/internal/cache"
	"zenspend/internal/core"
	"zenspend/internal/history"
	"zenspend/internal/log"
	"zenspend/internal/period"
	"zenspend/internal/trend"
)

// Dashboard bundles every derived view of one revision for one reference
// instant. Its slices are owned by the caller.
type Dashboard struct {
	Revision     uint64
	Now          time.Time
	Currency     string
	Spending     period.Totals
	Income       period.Totals
	MonthBalance core.Money
	Budget       budget.Report
	Slices       []budget.Slice
	Daily        []trend.DailyPoint
	Monthly      []trend.MonthlyPoint
	Insight      trend.Insight
	DailyAverage core.Money
}

// current returns the live state and its revision. Views built from it are
// shared with the cache and must be treated as read-only.
func (t *Tracker) current() (core.AppState, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	// Transitions replace slices rather than mutating them, so the returned
	// state can be read without the lock.
	return t.state, t.revision
}

func cachedView[T any](t *Tracker, rev uint64, view string, now time.Time, extra string, fn func() T) T {
	key := cache.ViewKey{Revision: rev, View: view, Day: period.StartOfDay(now), Extra: extra}.String()
	v, _ := t.views.GetOrCompute(key, func() (any, error) {
		return fn(), nil
	})
	return v.(T)
}

// Totals returns today/month/year spending.
func (t *Tracker) Totals(now time.Time) period.Totals {
	s, rev := t.current()
	return t.totals(s, rev, now)
}

// IncomeTotals returns today/month/year income.
func (t *Tracker) IncomeTotals(now time.Time) period.Totals {
	s, rev := t.current()
	return t.income(s, rev, now)
}

// Budget returns the per-category usage for the month containing now.
func (t *Tracker) Budget(now time.Time) budget.Report {
	s, rev := t.current()
	return cloneReport(t.budget(s, rev, now))
}

// History returns the filtered, day-grouped transaction list.
func (t *Tracker) History(search string, now time.Time) []history.Group {
	s, rev := t.current()
	groups := cachedView(t, rev, cache.ViewHistory, now, search, func() []history.Group {
		return history.GroupAndFilter(s.Transactions, s.Categories, search, now)
	})
	return cloneGroups(groups)
}

// Daily returns the expense series for the 30 days ending on now's day.
func (t *Tracker) Daily(now time.Time) []trend.DailyPoint {
	s, rev := t.current()
	return slices.Clone(t.daily(s, rev, now))
}

// Monthly returns the expense series for the six months ending with now's
// month.
func (t *Tracker) Monthly(now time.Time) []trend.MonthlyPoint {
	s, rev := t.current()
	return slices.Clone(t.monthly(s, rev, now))
}

// Insight compares now's month with the previous one.
func (t *Tracker) Insight(now time.Time) trend.Insight {
	s, rev := t.current()
	return t.insight(s, rev, now)
}

// DailyAverage returns this month's expenses spread over a 30-day month.
func (t *Tracker) DailyAverage(now time.Time) core.Money {
	s, rev := t.current()
	return t.average(s, rev, now)
}

// Cached values are shared between callers, so exported views hand out
// copies of anything with a backing array.
func cloneReport(r budget.Report) budget.Report {
	r.Categories = slices.Clone(r.Categories)
	return r
}

func cloneGroups(groups []history.Group) []history.Group {
	out := slices.Clone(groups)
	for i := range out {
		out[i].Items = slices.Clone(out[i].Items)
	}
	return out
}

func (t *Tracker) totals(s core.AppState, rev uint64, now time.Time) period.Totals {
	return cachedView(t, rev, cache.ViewTotals, now, "", func() period.Totals {
		return period.HeadlineTotals(s.Transactions, now)
	})
}

func (t *Tracker) income(s core.AppState, rev uint64, now time.Time) period.Totals {
	return cachedView(t, rev, cache.ViewIncome, now, "", func() period.Totals {
		return period.IncomeTotals(s.Transactions, now)
	})
}

func (t *Tracker) budget(s core.AppState, rev uint64, now time.Time) budget.Report {
	return cachedView(t, rev, cache.ViewBudget, now, "", func() budget.Report {
		return budget.Breakdown(s.Transactions, s.Categories, now)
	})
}

func (t *Tracker) daily(s core.AppState, rev uint64, now time.Time) []trend.DailyPoint {
	return cachedView(t, rev, cache.ViewDaily, now, "", func() []trend.DailyPoint {
		return trend.Daily(s.Transactions, now)
	})
}

func (t *Tracker) monthly(s core.AppState, rev uint64, now time.Time) []trend.MonthlyPoint {
	return cachedView(t, rev, cache.ViewMonthly, now, "", func() []trend.MonthlyPoint {
		return trend.Monthly(s.Transactions, now)
	})
}

func (t *Tracker) insight(s core.AppState, rev uint64, now time.Time) trend.Insight {
	return cachedView(t, rev, cache.ViewInsight, now, "", func() trend.Insight {
		return trend.MonthOverMonth(s.Transactions, now)
	})
}

func (t *Tracker) average(s core.AppState, rev uint64, now time.Time) core.Money {
	return cachedView(t, rev, cache.ViewAverage, now, "", func() core.Money {
		return trend.DailyAverage(s.Transactions, now)
	})
}

// Dashboard computes the independent views concurrently over one snapshot.
func (t *Tracker) Dashboard(ctx context.Context, now time.Time) (Dashboard, error) {
	s, rev := t.current()
	d := Dashboard{Revision: rev, Now: now, Currency: s.Settings.Currency}

	g, ctx := errgroup.WithContext(ctx)
	run := func(view string, fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("derive %s: %w", view, err)
			}
			fn()
			return nil
		})
	}

	run(cache.ViewTotals, func() { d.Spending = t.totals(s, rev, now) })
	run(cache.ViewIncome, func() { d.Income = t.income(s, rev, now) })
	run("balance", func() { d.MonthBalance = period.Balance(s.Transactions, period.WithinMonth(now)) })
	run(cache.ViewBudget, func() {
		d.Budget = cloneReport(t.budget(s, rev, now))
		d.Slices = budget.NonZero(d.Budget)
	})
	run(cache.ViewDaily, func() { d.Daily = slices.Clone(t.daily(s, rev, now)) })
	run(cache.ViewMonthly, func() { d.Monthly = slices.Clone(t.monthly(s, rev, now)) })
	run(cache.ViewInsight, func() { d.Insight = t.insight(s, rev, now) })
	run(cache.ViewAverage, func() { d.DailyAverage = t.average(s, rev, now) })

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	hits, misses := t.views.Stats()
	t.logger.DebugContext(ctx, "Dashboard derived",
		log.FieldOperation, log.OpDerive,
		log.FieldRevision, rev,
		"cache_entries", t.views.Size(),
		"cache_hits", hits,
		"cache_misses", misses)
	return d, nil
}
