package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"zenspend/internal/app"
	"zenspend/internal/budget"
	"zenspend/internal/core"
	"zenspend/internal/history"
	"zenspend/internal/trend"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderSummary(w io.Writer, d app.Dashboard) {
	tw := newTable(w)
	fmt.Fprintln(tw, "\tSPENT\tINCOME")
	fmt.Fprintf(tw, "Today\t%s\t%s\n", d.Spending.Today.Format(d.Currency), d.Income.Today.Format(d.Currency))
	fmt.Fprintf(tw, "This month\t%s\t%s\n", d.Spending.Month.Format(d.Currency), d.Income.Month.Format(d.Currency))
	fmt.Fprintf(tw, "This year\t%s\t%s\n", d.Spending.Year.Format(d.Currency), d.Income.Year.Format(d.Currency))
	tw.Flush()

	fmt.Fprintf(w, "\nMonth balance: %s\n", d.MonthBalance.Format(d.Currency))
	fmt.Fprintf(w, "Daily avg: %s\n", d.DailyAverage.Format(d.Currency))
	fmt.Fprintf(w, "Budget used: %.0f%% of %s\n", d.Budget.TotalPercent, d.Budget.TotalBudget.Format(d.Currency))
	fmt.Fprintf(w, "%s\n", d.Insight.Text)
}

func renderBudget(w io.Writer, r budget.Report, currency string) {
	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tSPENT\tLIMIT\tUSED\tREMAINING\tSTATUS")
	for _, u := range r.Categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f%%\t%s\t%s\n",
			u.Name, u.Spent.Format(currency), u.Limit.Format(currency), u.PercentUsed,
			leftOrOver(u.Remaining(), currency), u.Status)
	}
	if !r.Uncategorized.IsZero() {
		fmt.Fprintf(tw, "Uncategorized\t%s\t-\t-\t-\t-\n", r.Uncategorized.Format(currency))
	}
	fmt.Fprintf(tw, "TOTAL\t%s\t%s\t%.0f%%\t%s\t\n",
		r.TotalSpent.Format(currency), r.TotalBudget.Format(currency), r.TotalPercent,
		leftOrOver(r.TotalRemaining(), currency))
	tw.Flush()
}

// leftOrOver renders remaining budget as "$X left" or "-$X over".
func leftOrOver(remaining core.Money, currency string) string {
	if remaining.Cents < 0 {
		return remaining.Format(currency) + " over"
	}
	return remaining.Format(currency) + " left"
}

func renderHistory(w io.Writer, groups []history.Group, cats []core.Category, currency string) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No transactions found")
		return
	}
	tw := newTable(w)
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\t\t\t%s\n", strings.ToUpper(g.Label), g.Total.Format(currency))
		for _, tx := range g.Items {
			name := "Uncategorized"
			if cat, ok := core.CategoryByID(cats, tx.CategoryID); ok {
				name = cat.Name
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", tx.ID, name, tx.Notes, tx.Signed().Format(currency))
		}
	}
	tw.Flush()
	n := history.Count(groups)
	noun := "transactions"
	if n == 1 {
		noun = "transaction"
	}
	fmt.Fprintf(w, "\n%d %s\n", n, noun)
}

func renderDaily(w io.Writer, points []trend.DailyPoint, avg core.Money, currency string) {
	peak := trend.Peak(points)
	tw := newTable(w)
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Label, p.Amount.Format(currency), bar(p.Amount, peak))
	}
	tw.Flush()
	fmt.Fprintf(w, "\nDaily avg this month: %s\n", avg.Format(currency))
}

func renderMonthly(w io.Writer, points []trend.MonthlyPoint, currency string) {
	var peak core.Money
	for _, p := range points {
		if p.Amount.Cents > peak.Cents {
			peak = p.Amount
		}
	}
	tw := newTable(w)
	for _, p := range points {
		marker := ""
		if p.IsCurrent {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", p.Label, marker, p.Amount.Format(currency), bar(p.Amount, peak))
	}
	tw.Flush()
}

// renderSettings prints s. lastSaved is nil when the store cannot report it.
func renderSettings(w io.Writer, s core.Settings, lastSaved *time.Time) {
	tw := newTable(w)
	cur, _ := core.LookupCurrency(s.Currency)
	fmt.Fprintf(tw, "Currency\t%s (%s)\n", s.Currency, cur.Symbol)
	fmt.Fprintf(tw, "Dark mode\t%t\n", s.IsDarkMode)
	fmt.Fprintf(tw, "Month starts on day\t%d\n", s.MonthStartDay)
	fmt.Fprintf(tw, "Last backup\t%s\n", stamp(s.LastBackup))
	if lastSaved != nil {
		fmt.Fprintf(tw, "Last saved\t%s\n", stamp(lastSaved))
	}
	tw.Flush()
}

func stamp(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

const barWidth = 30

func bar(v, peak core.Money) string {
	if peak.Cents <= 0 || v.Cents <= 0 {
		return ""
	}
	n := int(v.Cents * barWidth / peak.Cents)
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}
