package trend

import (
	"testing"
	"time"

	"zenspend/internal/core"
)

var now = time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)

func expense(id string, cents int64, date time.Time) core.Transaction {
	return core.Transaction{ID: id, Amount: core.Money{Cents: cents}, Type: core.Expense, CategoryID: "1", Date: date, PaymentMethod: core.Cash}
}

// Fixed lengths regardless of volume.
func TestSeriesLengths(t *testing.T) {
	many := make([]core.Transaction, 0, 500)
	for i := 0; i < 500; i++ {
		many = append(many, expense("x", 100, now.AddDate(0, 0, -i)))
	}
	for _, txs := range [][]core.Transaction{nil, many} {
		if got := len(Daily(txs, now)); got != 30 {
			t.Fatalf("daily length %d", got)
		}
		if got := len(Monthly(txs, now)); got != 6 {
			t.Fatalf("monthly length %d", got)
		}
	}
}

func TestDaily(t *testing.T) {
	txs := []core.Transaction{
		expense("a", 1000, time.Date(2024, 8, 15, 23, 0, 0, 0, time.UTC)),
		expense("b", 500, time.Date(2024, 8, 15, 1, 0, 0, 0, time.UTC)),
		expense("c", 700, time.Date(2024, 7, 17, 8, 0, 0, 0, time.UTC)), // first bucket
		expense("d", 900, time.Date(2024, 7, 16, 8, 0, 0, 0, time.UTC)), // outside window
		{ID: "e", Amount: core.Money{Cents: 5000}, Type: core.Income, Date: now},
	}
	points := Daily(txs, now)
	first, last := points[0], points[len(points)-1]
	if !first.Day.Equal(time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC)) || first.Label != "Jul 17" || first.Amount.Cents != 700 {
		t.Fatalf("unexpected first bucket %+v", first)
	}
	if last.Label != "Aug 15" || last.Amount.Cents != 1500 {
		t.Fatalf("unexpected last bucket %+v", last)
	}
	var total int64
	for i, p := range points {
		total += p.Amount.Cents
		if i > 0 && !p.Day.After(points[i-1].Day) {
			t.Fatalf("buckets not oldest to newest at %d", i)
		}
	}
	if total != 2200 {
		t.Fatalf("window total %d", total)
	}
	if got := Peak(points).Cents; got != 1500 {
		t.Fatalf("peak %d", got)
	}
}

func TestMonthly(t *testing.T) {
	txs := []core.Transaction{
		expense("a", 1000, now),
		expense("b", 2000, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		expense("c", 3000, time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC)), // before window
		expense("d", 400, time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)),
	}
	points := Monthly(txs, now)
	labels := []string{"MAR", "APR", "MAY", "JUN", "JUL", "AUG"}
	amounts := []int64{2000, 0, 0, 400, 0, 1000}
	for i, p := range points {
		if p.Label != labels[i] || p.Amount.Cents != amounts[i] {
			t.Fatalf("bucket %d: got %s %d want %s %d", i, p.Label, p.Amount.Cents, labels[i], amounts[i])
		}
		if p.IsCurrent != (i == len(points)-1) {
			t.Fatalf("bucket %d: IsCurrent=%v", i, p.IsCurrent)
		}
	}
}

func TestMonthlyFromMonthEnd(t *testing.T) {
	// Day overflow on the 31st must not skip a month.
	points := Monthly(nil, time.Date(2024, 7, 31, 12, 0, 0, 0, time.UTC))
	want := []string{"FEB", "MAR", "APR", "MAY", "JUN", "JUL"}
	for i, p := range points {
		if p.Label != want[i] {
			t.Fatalf("bucket %d: got %s want %s", i, p.Label, want[i])
		}
	}
}

func TestMonthOverMonth(t *testing.T) {
	prev := time.Date(2024, 7, 31, 22, 0, 0, 0, time.UTC) // last evening of the previous month counts
	cases := []struct {
		name      string
		prevCents int64
		curCents  int64
		percent   int64
		dir       Direction
		good      bool
		text      string
	}{
		{"decrease", 100000, 80000, 20, Decrease, true, "20% less spending compared to last month. Great job!"},
		{"increase", 100000, 125000, 25, Increase, false, "Spent 25% more than last month. Consider reviewing your budget."},
		{"tie", 50000, 50000, 0, Increase, false, "Spent 0% more than last month. Consider reviewing your budget."},
		{"rounding", 30000, 20000, 33, Decrease, true, "33% less spending compared to last month. Great job!"},
		{"half rounds up", 20000, 20100, 1, Increase, false, "Spent 1% more than last month. Consider reviewing your budget."},
		{"no baseline", 0, 90000, 0, NoBaseline, true, noBaselineText},
		{"no baseline no spend", 0, 0, 0, NoBaseline, true, noBaselineText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var txs []core.Transaction
			if tc.prevCents > 0 {
				txs = append(txs, expense("p", tc.prevCents, prev))
			}
			if tc.curCents > 0 {
				txs = append(txs, expense("c", tc.curCents, now))
			}
			// Older history is ignored.
			txs = append(txs, expense("old", 999999, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))

			in := MonthOverMonth(txs, now)
			if in.Percent != tc.percent || in.Direction != tc.dir || in.IsGood != tc.good || in.Text != tc.text {
				t.Fatalf("got %+v", in)
			}
			if in.Previous.Cents != tc.prevCents || in.Current.Cents != tc.curCents {
				t.Fatalf("totals: got prev=%d cur=%d", in.Previous.Cents, in.Current.Cents)
			}
		})
	}
}

func TestMonthOverMonthJanuary(t *testing.T) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		expense("dec", 10000, time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)),
		expense("jan", 5000, jan),
	}
	in := MonthOverMonth(txs, jan)
	if in.Previous.Cents != 10000 || in.Percent != 50 || in.Direction != Decrease {
		t.Fatalf("got %+v", in)
	}
}

func TestDailyAverage(t *testing.T) {
	tests := []struct {
		name string
		txs  []core.Transaction
		want int64
	}{
		{"no expenses", nil, 0},
		{"exact", []core.Transaction{expense("a", 60000, now)}, 2000},
		{"rounds half up", []core.Transaction{expense("a", 45, now)}, 2}, // 1.5 cents
		{"rounds down", []core.Transaction{expense("a", 1000, now)}, 33}, // 33.33 cents
		{
			"this month only",
			[]core.Transaction{
				expense("a", 3000, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)),
				expense("b", 9000, time.Date(2024, 7, 31, 23, 0, 0, 0, time.UTC)),
				{ID: "c", Amount: core.Money{Cents: 90000}, Type: core.Income, Date: now},
			},
			100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DailyAverage(tt.txs, now).Cents; got != tt.want {
				t.Errorf("DailyAverage() = %d, want %d", got, tt.want)
			}
		})
	}
}
