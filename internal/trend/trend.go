// Package trend builds fixed-length expense series for charts and the
// month-over-month spending insight.
package trend

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"zenspend/internal/core"
	"zenspend/internal/period"
)

const (
	DailyPoints   = 30
	MonthlyPoints = 6

	// AverageDays is the fixed divisor for the daily average, whatever the
	// month's length.
	AverageDays = 30
)

// DailyPoint is the expense total for one calendar day.
type DailyPoint struct {
	Day    time.Time
	Label  string // "Aug 15"
	Amount core.Money
}

// MonthlyPoint is the expense total for one calendar month.
type MonthlyPoint struct {
	Month     time.Time
	Label     string // "AUG"
	Amount    core.Money
	IsCurrent bool
}

// Direction says which way spending moved against the previous month.
// NoBaseline means the previous month had no expenses.
type Direction string

const (
	NoBaseline Direction = "none"
	Decrease   Direction = "decrease"
	Increase   Direction = "increase"
)

// Insight compares this calendar month's expenses with the previous one.
type Insight struct {
	Current   core.Money
	Previous  core.Money
	Percent   int64
	Direction Direction
	IsGood    bool
	Text      string
}

const noBaselineText = "Keep tracking to see insights next month!"

// Daily returns one bucket per calendar day in [end-29d, end], oldest first.
func Daily(txs []core.Transaction, end time.Time) []DailyPoint {
	points := make([]DailyPoint, DailyPoints)
	for i := range points {
		day := period.AddDays(end, i-(DailyPoints-1))
		points[i] = DailyPoint{
			Day:    day,
			Label:  day.Format("Jan 2"),
			Amount: period.SumByTypeAndPeriod(txs, core.Expense, period.SameDay(day)),
		}
	}
	return points
}

// Monthly returns one bucket per calendar month in [end-5mo, end], oldest
// first. The bucket for end's month is flagged IsCurrent.
func Monthly(txs []core.Transaction, end time.Time) []MonthlyPoint {
	points := make([]MonthlyPoint, MonthlyPoints)
	for i := range points {
		month := period.AddMonths(end, i-(MonthlyPoints-1))
		points[i] = MonthlyPoint{
			Month:     month,
			Label:     strings.ToUpper(month.Format("Jan")),
			Amount:    period.SumByTypeAndPeriod(txs, core.Expense, period.WithinMonth(month)),
			IsCurrent: period.IsSameMonth(month, end),
		}
	}
	return points
}

// MonthOverMonth compares expenses in now's calendar month against the whole
// previous calendar month. Equal totals report a 0% increase.
func MonthOverMonth(txs []core.Transaction, now time.Time) Insight {
	prevMonth := period.AddMonths(now, -1)
	current := period.SumByTypeAndPeriod(txs, core.Expense, period.WithinMonth(now))
	previous := period.SumByTypeAndPeriod(txs, core.Expense, period.WithinMonth(prevMonth))

	in := Insight{Current: current, Previous: previous}
	if previous.IsZero() {
		in.Direction = NoBaseline
		in.IsGood = true
		in.Text = noBaselineText
		return in
	}

	diff := previous.Sub(current)
	in.Percent = decimal.NewFromInt(diff.Cents).
		Div(decimal.NewFromInt(previous.Cents)).
		Mul(decimal.NewFromInt(100)).
		Abs().
		Round(0).
		IntPart()

	if diff.Cents > 0 {
		in.Direction = Decrease
		in.IsGood = true
		in.Text = fmt.Sprintf("%d%% less spending compared to last month. Great job!", in.Percent)
		return in
	}
	in.Direction = Increase
	in.Text = fmt.Sprintf("Spent %d%% more than last month. Consider reviewing your budget.", in.Percent)
	return in
}

// DailyAverage divides the expenses in now's calendar month by AverageDays,
// rounded half-up to the cent.
func DailyAverage(txs []core.Transaction, now time.Time) core.Money {
	total := period.SumByTypeAndPeriod(txs, core.Expense, period.WithinMonth(now))
	cents := decimal.NewFromInt(total.Cents).
		Div(decimal.NewFromInt(AverageDays)).
		Round(0).
		IntPart()
	return core.Money{Cents: cents}
}

// Peak returns the highest daily amount, used to scale charts.
func Peak(points []DailyPoint) core.Money {
	var peak core.Money
	for _, p := range points {
		if p.Amount.Cents > peak.Cents {
			peak = p.Amount
		}
	}
	return peak
}
