package period

import (
	"testing"
	"time"

	"zenspend/internal/core"
)

var now = time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)

func tx(id string, cents int64, typ core.TransactionType, date time.Time) core.Transaction {
	return core.Transaction{ID: id, Amount: core.Money{Cents: cents}, Type: typ, CategoryID: "1", Date: date, PaymentMethod: core.Cash}
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		name string
		pred Predicate
		date time.Time
		want bool
	}{
		{"same day early", SameDay(now), time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), true},
		{"same day late", SameDay(now), time.Date(2024, 8, 15, 23, 59, 59, 0, time.UTC), true},
		{"previous day", SameDay(now), time.Date(2024, 8, 14, 23, 59, 59, 0, time.UTC), false},
		{"same day other year", SameDay(now), time.Date(2023, 8, 15, 12, 0, 0, 0, time.UTC), false},
		{"month first instant", WithinMonth(now), time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), true},
		{"month last day", WithinMonth(now), time.Date(2024, 8, 31, 23, 0, 0, 0, time.UTC), true},
		{"month before", WithinMonth(now), time.Date(2024, 7, 31, 23, 59, 59, 0, time.UTC), false},
		{"month other year", WithinMonth(now), time.Date(2023, 8, 10, 0, 0, 0, 0, time.UTC), false},
		{"year jan", WithinYear(now), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"year before", WithinYear(now), time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC), false},
		{"interval start", WithinInterval(now, now.Add(time.Hour)), now, true},
		{"interval end", WithinInterval(now, now.Add(time.Hour)), now.Add(time.Hour), true},
		{"interval after", WithinInterval(now, now.Add(time.Hour)), now.Add(time.Hour + 1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pred(tc.date); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestCalendarBoundariesUseReferenceLocation(t *testing.T) {
	// 2024-08-01T02:00Z is still July 31 in New York.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ref := time.Date(2024, 8, 15, 12, 0, 0, 0, ny)
	d := time.Date(2024, 8, 1, 2, 0, 0, 0, time.UTC)
	if WithinMonth(ref)(d) {
		t.Fatal("expected date to fall in July in the reference zone")
	}
	if !WithinMonth(time.Date(2024, 7, 10, 0, 0, 0, 0, ny))(d) {
		t.Fatal("expected date to fall in July in the reference zone")
	}
}

func TestSumByTypeAndPeriod(t *testing.T) {
	txs := []core.Transaction{
		tx("a", 1000, core.Expense, now),
		tx("b", 500, core.Expense, now.AddDate(0, 0, -1)),
		tx("c", 9900, core.Income, now),
		tx("d", 250, core.Expense, now.AddDate(0, -1, 0)),
	}
	if got := SumByTypeAndPeriod(txs, core.Expense, SameDay(now)).Cents; got != 1000 {
		t.Fatalf("today: got %d", got)
	}
	if got := SumByTypeAndPeriod(txs, core.Expense, WithinMonth(now)).Cents; got != 1500 {
		t.Fatalf("month: got %d", got)
	}
	if got := SumByTypeAndPeriod(txs, core.Income, WithinMonth(now)).Cents; got != 9900 {
		t.Fatalf("income: got %d", got)
	}
	if got := SumByTypeAndPeriod(nil, core.Expense, WithinYear(now)); !got.IsZero() {
		t.Fatalf("empty: got %v", got)
	}
}

func TestHeadlineTotals(t *testing.T) {
	// No transactions.
	if got := HeadlineTotals(nil, now); got != (Totals{}) {
		t.Fatalf("expected zero totals, got %+v", got)
	}

	txs := []core.Transaction{
		tx("a", 1000, core.Expense, now),
		tx("b", 5000, core.Expense, time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC)),
		tx("c", 700, core.Expense, time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)),
		tx("d", 300, core.Expense, time.Date(2023, 8, 15, 10, 0, 0, 0, time.UTC)),
		tx("e", 20000, core.Income, now),
	}
	want := Totals{Today: core.Money{Cents: 1000}, Month: core.Money{Cents: 6000}, Year: core.Money{Cents: 6700}}
	if got := HeadlineTotals(txs, now); got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if got := IncomeTotals(txs, now).Month.Cents; got != 20000 {
		t.Fatalf("income month: got %d", got)
	}
	if got := Balance(txs, WithinMonth(now)).Cents; got != 14000 {
		t.Fatalf("balance: got %d", got)
	}
}

func TestMonthHelpers(t *testing.T) {
	mar31 := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)
	if got := AddMonths(mar31, -1); !got.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("AddMonths: got %v", got)
	}
	if got := EndOfMonth(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)); got.Day() != 29 || got.Hour() != 23 {
		t.Fatalf("EndOfMonth: got %v", got)
	}
	if got := AddDays(now, -29); !got.Equal(time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("AddDays: got %v", got)
	}
}
