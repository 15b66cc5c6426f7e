package cache

import (
	"fmt"
	"time"
)

// Cache defines a generic cache interface
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

var _ Cache[int] = (*LRUCache[int])(nil)

// View names used in cache keys.
const (
	ViewTotals  = "totals"
	ViewIncome  = "income"
	ViewBudget  = "budget"
	ViewHistory = "history"
	ViewDaily   = "daily"
	ViewMonthly = "monthly"
	ViewInsight = "insight"
	ViewAverage = "daily_average"
)

// ViewKey identifies one derived view of one state revision for one
// reference day. Extra carries view parameters such as a search string.
type ViewKey struct {
	Revision uint64
	View     string
	Day      time.Time
	Extra    string
}

func (k ViewKey) String() string {
	return fmt.Sprintf("%d|%s|%s|%s", k.Revision, k.View, k.Day.Format("2006-01-02Z07:00"), k.Extra)
}
