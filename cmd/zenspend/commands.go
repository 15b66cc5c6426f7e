package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"zenspend/internal/app"
	"zenspend/internal/core"
	"zenspend/internal/ledger"
)

var errUsage = errors.New("invalid usage")

type command struct {
	tracker   *app.Tracker
	exportDir string
	out       io.Writer
	now       func() time.Time
}

func (c *command) run(ctx context.Context, name string, args []string) error {
	switch name {
	case "add":
		return c.add(ctx, args)
	case "edit":
		return c.edit(ctx, args)
	case "delete":
		return c.delete(ctx, args)
	case "summary":
		return c.summary(ctx, args)
	case "budget":
		return c.budget(args)
	case "history":
		return c.history(args)
	case "trends":
		return c.trends(args)
	case "insight":
		return c.insight(args)
	case "settings":
		return c.settings(ctx, args)
	case "export":
		return c.export(ctx, args)
	case "reset":
		return c.reset(ctx, args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

// txFlags holds the flags shared by add and edit.
type txFlags struct {
	typ       string
	category  string
	date      string
	method    string
	notes     string
	photo     string
	amount    string
	recurring bool
}

func newTxFlagSet(name string, withAmount bool) (*flag.FlagSet, *txFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &txFlags{}
	fs.StringVar(&f.typ, "type", "", "expense or income")
	fs.StringVar(&f.category, "category", "", "category id or name")
	fs.StringVar(&f.date, "date", "", "YYYY-MM-DD or RFC3339")
	fs.StringVar(&f.method, "method", "", "cash, debit, credit or transfer")
	fs.StringVar(&f.notes, "notes", "", "free text")
	fs.StringVar(&f.photo, "photo", "", "receipt photo URL")
	fs.BoolVar(&f.recurring, "recurring", false, "mark as recurring")
	if withAmount {
		fs.StringVar(&f.amount, "amount", "", "new amount")
	}
	return fs, f
}

func (c *command) add(ctx context.Context, args []string) error {
	fs, f := newTxFlagSet("add", false)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: add needs exactly one amount", errUsage)
	}
	amount, err := core.ParseMoney(fs.Arg(0))
	if err != nil {
		return err
	}

	snap := c.tracker.Snapshot()
	opts := ledger.AddOptions{
		Type:        core.TransactionType(strings.ToLower(f.typ)),
		Notes:       f.notes,
		IsRecurring: f.recurring,
		PhotoURL:    f.photo,
	}
	if f.category != "" {
		if opts.CategoryID, err = resolveCategory(snap.Categories, f.category); err != nil {
			return err
		}
	}
	if f.date != "" {
		if opts.Date, err = parseDate(f.date); err != nil {
			return err
		}
	}
	if f.method != "" {
		if opts.PaymentMethod, err = core.ParsePaymentMethod(f.method); err != nil {
			return err
		}
	}

	tx, err := c.tracker.AddTransaction(ctx, amount, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added %s: %s %s\n", tx.ID, tx.Type, tx.Amount.Format(snap.Settings.Currency))
	return nil
}

func (c *command) edit(ctx context.Context, args []string) error {
	fs, f := newTxFlagSet("edit", true)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: edit needs exactly one id", errUsage)
	}
	id := fs.Arg(0)
	snap := c.tracker.Snapshot()

	var (
		patch ledger.Patch
		err   error
	)
	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "amount":
			var m core.Money
			if m, err = core.ParseMoney(f.amount); err == nil {
				patch.Amount = &m
			}
		case "type":
			t := core.TransactionType(strings.ToLower(f.typ))
			patch.Type = &t
		case "category":
			var cid string
			if cid, err = resolveCategory(snap.Categories, f.category); err == nil {
				patch.CategoryID = &cid
			}
		case "date":
			var d time.Time
			if d, err = parseDate(f.date); err == nil {
				patch.Date = &d
			}
		case "method":
			var pm core.PaymentMethod
			if pm, err = core.ParsePaymentMethod(f.method); err == nil {
				patch.PaymentMethod = &pm
			}
		case "notes":
			patch.Notes = &f.notes
		case "photo":
			patch.PhotoURL = &f.photo
		case "recurring":
			patch.IsRecurring = &f.recurring
		}
	})
	if err != nil {
		return err
	}

	tx, ok, err := c.tracker.UpdateTransaction(ctx, id, patch)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(c.out, "No transaction %s\n", id)
		return nil
	}
	fmt.Fprintf(c.out, "Updated %s: %s %s\n", tx.ID, tx.Type, tx.Amount.Format(snap.Settings.Currency))
	return nil
}

func (c *command) delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete needs exactly one id", errUsage)
	}
	ok, err := c.tracker.DeleteTransaction(ctx, args[0])
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(c.out, "No transaction %s\n", args[0])
		return nil
	}
	fmt.Fprintf(c.out, "Deleted %s\n", args[0])
	return nil
}

func (c *command) summary(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: summary takes no arguments", errUsage)
	}
	d, err := c.tracker.Dashboard(ctx, c.now())
	if err != nil {
		return err
	}
	renderSummary(c.out, d)
	return nil
}

func (c *command) budget(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: budget takes no arguments", errUsage)
	}
	now := c.now()
	renderBudget(c.out, c.tracker.Budget(now), c.tracker.Snapshot().Settings.Currency)
	return nil
}

func (c *command) history(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	search := fs.String("search", "", "filter on notes or category name")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	now := c.now()
	snap := c.tracker.Snapshot()
	renderHistory(c.out, c.tracker.History(*search, now), snap.Categories, snap.Settings.Currency)
	return nil
}

func (c *command) trends(args []string) error {
	fs := flag.NewFlagSet("trends", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	monthly := fs.Bool("monthly", false, "show the last six months")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	now := c.now()
	currency := c.tracker.Snapshot().Settings.Currency
	if *monthly {
		renderMonthly(c.out, c.tracker.Monthly(now), currency)
	} else {
		renderDaily(c.out, c.tracker.Daily(now), c.tracker.DailyAverage(now), currency)
	}
	return nil
}

func (c *command) insight(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: insight takes no arguments", errUsage)
	}
	fmt.Fprintln(c.out, c.tracker.Insight(c.now()).Text)
	return nil
}

func (c *command) settings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	currency := fs.String("currency", "", "USD, EUR, GBP or JPY")
	dark := fs.Bool("dark", false, "dark mode")
	startDay := fs.Int("month-start", 1, "day the budget month starts (1-31)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var patch app.SettingsPatch
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "currency":
			upper := strings.ToUpper(*currency)
			patch.Currency = &upper
		case "dark":
			patch.IsDarkMode = dark
		case "month-start":
			patch.MonthStartDay = startDay
		}
	})

	s := c.tracker.Snapshot().Settings
	if patch != (app.SettingsPatch{}) {
		var err error
		if s, err = c.tracker.UpdateSettings(ctx, patch); err != nil {
			return err
		}
	}
	info, saved, err := c.tracker.StorageInfo(ctx)
	if err != nil {
		return err
	}
	var lastSaved *time.Time
	if saved {
		lastSaved = &info.UpdatedAt
	}
	renderSettings(c.out, s, lastSaved)
	return nil
}

func (c *command) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("o", "", "output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if *path == "-" {
		return c.tracker.Export(ctx, c.out)
	}
	target := *path
	if target == "" {
		target = filepath.Join(c.exportDir, app.BackupFileName(c.now()))
	}
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	if err := c.tracker.Export(ctx, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close backup file: %w", err)
	}
	fmt.Fprintf(c.out, "Backup written to %s\n", target)
	return nil
}

func (c *command) reset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "confirm erasing all data")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if !*yes {
		return fmt.Errorf("%w: reset erases every transaction; pass -yes to confirm", errUsage)
	}
	if err := c.tracker.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "All data erased")
	return nil
}

// resolveCategory accepts a category id or a case-insensitive name.
func resolveCategory(cats []core.Category, s string) (string, error) {
	if _, ok := core.CategoryByID(cats, s); ok {
		return s, nil
	}
	for _, cat := range cats {
		if strings.EqualFold(cat.Name, s) {
			return cat.ID, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}
