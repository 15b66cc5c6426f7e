package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"zenspend/internal/cli"
	"zenspend/internal/log"
)

const usage = `usage: zenspend <command> [flags]

commands:
  add       record a transaction: add [flags] <amount>
  edit      change a transaction: edit [flags] <id>
  delete    remove a transaction: delete <id>
  summary   today/month/year totals and the monthly insight
  budget    per-category budget usage for this month
  history   transactions grouped by day: history [-search term]
  trends    last 30 days, or last 6 months with -monthly
  insight   month-over-month comparison
  settings  show or change settings
  export    write a JSON backup
  reset     erase all data (requires -yes)
`

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "help" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := cli.LoadEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg)

	ctx, stop := cli.SignalContext(log.WithContext(context.Background(), logger))
	defer stop()

	tracker, cleanup, err := cli.OpenTracker(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open tracker", log.FieldError, err, log.FieldBackend, cfg.Backend)
		os.Exit(1)
	}

	cmd := &command{
		tracker:   tracker,
		exportDir: cfg.ExportDir,
		out:       os.Stdout,
		now:       time.Now,
	}
	runErr := cmd.run(ctx, os.Args[1], os.Args[2:])

	if err := cleanup(); err != nil {
		logger.Warn("Failed to close store", log.FieldError, err)
	}
	if runErr != nil {
		logger.Error("Command failed", "command", os.Args[1], log.FieldError, runErr)
		os.Exit(1)
	}
}
