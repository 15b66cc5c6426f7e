// Package budget compares a month's expenses against per-category limits.
package budget

import (
	"time"

	"zenspend/internal/core"
	"zenspend/internal/period"
)

// NearLimitThreshold is the percent of a limit above which a category is
// flagged as near its limit.
const NearLimitThreshold = 85.0

type Status string

const (
	Safe       Status = "safe"
	NearLimit  Status = "near_limit"
	OverBudget Status = "over_budget"
)

// CategoryUsage is one configured category's spend against its limit.
type CategoryUsage struct {
	CategoryID  string
	Name        string
	Color       string
	Spent       core.Money
	Limit       core.Money
	PercentUsed float64
	Status      Status
}

// Report is the budget view for one calendar month.
type Report struct {
	Month        time.Time // first instant of the reported month
	Categories   []CategoryUsage
	TotalBudget  core.Money
	TotalSpent   core.Money
	TotalPercent float64 // capped at 100
	// Uncategorized is spend referencing unknown category ids. It is not part
	// of TotalSpent.
	Uncategorized core.Money
}

// Slice is a chart-ready share of the month's spend.
type Slice struct {
	Name  string
	Value float64
	Color string
}

// Percent returns part/whole*100, or 0 when whole is not positive.
func Percent(part, whole core.Money) float64 {
	if whole.Cents <= 0 {
		return 0
	}
	return float64(part.Cents*100) / float64(whole.Cents)
}

// Classify maps spend against a limit to a status.
func Classify(spent, limit core.Money) Status {
	if spent.Cents > limit.Cents {
		return OverBudget
	}
	pct := Percent(spent, limit)
	if pct > NearLimitThreshold && pct <= 100 {
		return NearLimit
	}
	return Safe
}

// SpentByCategory sums expenses in ref's calendar month per category id.
func SpentByCategory(txs []core.Transaction, ref time.Time) map[string]core.Money {
	inMonth := period.WithinMonth(ref)
	out := make(map[string]core.Money)
	for _, tx := range txs {
		if tx.Type != core.Expense || !inMonth(tx.Date) {
			continue
		}
		out[tx.CategoryID] = out[tx.CategoryID].Add(tx.Amount)
	}
	return out
}

// Breakdown builds the budget report for ref's calendar month with one row
// per configured category, in configuration order.
func Breakdown(txs []core.Transaction, cats []core.Category, ref time.Time) Report {
	spent := SpentByCategory(txs, ref)
	r := Report{
		Month:      period.StartOfMonth(ref),
		Categories: make([]CategoryUsage, 0, len(cats)),
	}
	known := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		known[c.ID] = struct{}{}
		s := spent[c.ID]
		r.Categories = append(r.Categories, CategoryUsage{
			CategoryID:  c.ID,
			Name:        c.Name,
			Color:       c.Color,
			Spent:       s,
			Limit:       c.Limit,
			PercentUsed: Percent(s, c.Limit),
			Status:      Classify(s, c.Limit),
		})
		r.TotalBudget = r.TotalBudget.Add(c.Limit)
		r.TotalSpent = r.TotalSpent.Add(s)
	}
	for id, s := range spent {
		if _, ok := known[id]; !ok {
			r.Uncategorized = r.Uncategorized.Add(s)
		}
	}
	r.TotalPercent = min(Percent(r.TotalSpent, r.TotalBudget), 100)
	return r
}

// NonZero returns chart slices for categories with spend in the month.
func NonZero(r Report) []Slice {
	out := make([]Slice, 0, len(r.Categories))
	for _, u := range r.Categories {
		if u.Spent.Cents > 0 {
			out = append(out, Slice{Name: u.Name, Value: u.Spent.Value(), Color: u.Color})
		}
	}
	return out
}

// Remaining is the limit left to spend; negative once over budget.
func (u CategoryUsage) Remaining() core.Money {
	return u.Limit.Sub(u.Spent)
}

// TotalRemaining is the overall budget left to spend.
func (r Report) TotalRemaining() core.Money {
	return r.TotalBudget.Sub(r.TotalSpent)
}

// Find returns the usage row for a category id.
func (r Report) Find(categoryID string) (CategoryUsage, bool) {
	for _, u := range r.Categories {
		if u.CategoryID == categoryID {
			return u, true
		}
	}
	return CategoryUsage{}, false
}
