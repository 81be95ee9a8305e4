// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger snapshot (JSONL format, encrypted when a PIN is set)")

var log = logrus.New()

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.WarnLevel)
	if level, err := logrus.ParseLevel(os.Getenv("SISFIN_LOG")); err == nil {
		log.SetLevel(level)
	}
}

// Commands lists every subcommand a main package registers.
var Commands = []subcommands.Command{
	&incomeCmd{},
	&expenseCmd{},
	&buyCmd{},
	&payCmd{},
	&advanceCmd{},
	&cardsCmd{},
	&recurCmd{},
	&goalCmd{},
	&deleteCmd{},
	&summaryCmd{},
	&breakdownCmd{},
	&projectCmd{},
	&txCmd{},
	&fmtCmd{},
	&importCmd{},
	&watchCmd{},
	&serveCmd{},
	&pinCmd{},
	&topicCmd{},
}

// Register registers every subcommand on the commander.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// DecodeLedger loads the app ledger file, materializes due recurrences and
// refreshes overdue installments. A missing file yields an empty ledger.
func DecodeLedger() (*ledger.Ledger, error) {
	l, err := loadSnapshot(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("file", *ledgerFile).Warn("ledger does not exist, starting empty")
		return ledger.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load ledger %q: %w", *ledgerFile, err)
	}

	today := ledger.Today()
	if created := l.MaterializeRecurrences(today); len(created) > 0 {
		log.WithField("count", len(created)).Info("materialized recurring transactions")
	}
	if changed := ledger.MarkOverdue(l, today); changed > 0 {
		log.WithField("count", changed).Info("marked installments overdue")
	}
	return l, nil
}

// EncodeLedger persists the ledger to the app ledger file.
func EncodeLedger(l *ledger.Ledger) error {
	if err := saveSnapshot(*ledgerFile, l); err != nil {
		return fmt.Errorf("cannot save ledger %q: %w", *ledgerFile, err)
	}
	return nil
}

// printMarkdown renders markdown for the terminal when stdout is a TTY, and
// falls back to the raw text otherwise (pipes, redirections, tests).
func printMarkdown(md string) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		if out, err := glamour.Render(md, "auto"); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}

// parseDateFlag parses a date flag defaulting to today when empty.
func parseDateFlag(value string) (ledger.Date, error) {
	if value == "" {
		return ledger.Today(), nil
	}
	return ledger.ParseDate(value)
}

// parseAmount parses a positive decimal amount from a flag.
func parseAmount(value string) (ledger.Money, error) {
	if value == "" {
		return ledger.Money{}, errors.New("amount is required")
	}
	d, err := ledger.ParseMoney(value)
	if err != nil {
		return ledger.Money{}, err
	}
	return d, nil
}
