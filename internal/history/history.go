// Package history groups transactions into day buckets for the history list.
package history

import (
	"sort"
	"strings"
	"time"

	"zenspend/internal/core"
	"zenspend/internal/period"
)

const (
	dayLayout      = "Jan 2"
	fullDateLayout = "Jan 2, 2006"
)

// Group is one calendar day of transactions, newest first.
type Group struct {
	Label string
	Day   time.Time // start of the calendar day in the reference location
	Items []core.Transaction
	// Total is signed: income adds, expenses subtract.
	Total core.Money
}

// Matches reports whether tx matches the search term on its notes or its
// category name, case-insensitively. An empty term matches everything.
func Matches(tx core.Transaction, cats []core.Category, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(tx.Notes), term) {
		return true
	}
	c, ok := core.CategoryByID(cats, tx.CategoryID)
	return ok && strings.Contains(strings.ToLower(c.Name), term)
}

// Label returns "Today, Jan 2", "Yesterday, Jan 2" or "Jan 2, 2006" for date
// relative to now, using now's location.
func Label(date, now time.Time) string {
	d := date.In(now.Location())
	switch {
	case period.IsSameDay(d, now):
		return "Today, " + d.Format(dayLayout)
	case period.IsSameDay(d, period.AddDays(now, -1)):
		return "Yesterday, " + d.Format(dayLayout)
	default:
		return d.Format(fullDateLayout)
	}
}

// GroupAndFilter filters by search, sorts newest first (stable on equal
// dates) and groups by day label. Group order follows first occurrence in
// the sorted list.
func GroupAndFilter(txs []core.Transaction, cats []core.Category, search string, now time.Time) []Group {
	filtered := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if Matches(tx, cats, search) {
			filtered = append(filtered, tx)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})

	groups := make([]Group, 0)
	index := make(map[string]int)
	for _, tx := range filtered {
		label := Label(tx.Date, now)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label, Day: period.StartOfDay(tx.Date.In(now.Location()))})
		}
		g := &groups[i]
		g.Items = append(g.Items, tx)
		g.Total = g.Total.Add(tx.Signed())
	}
	return groups
}

// Count returns the number of transactions across groups.
func Count(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Items)
	}
	return n
}
