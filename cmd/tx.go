package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
	"github.com/alonsix6/sistema-financiero-sub000/renderer"
	"github.com/google/subcommands"
)

// txCmd holds the flags for the 'tx' subcommand.
type txCmd struct {
	period string
	date   string
	kind   string
	card   string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `sisfin tx [-p <period>] [-d <date>] [-kind <kind>] [-card <card>]

  Lists transactions, optionally restricted to a period, a kind
  (income, expense, card-payment) or a card.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Restrict to a period (day, month, quarter, year).")
	f.StringVar(&c.date, "d", "", "Date inside the period. Defaults to today.")
	f.StringVar(&c.kind, "kind", "", "Restrict to one transaction kind.")
	f.StringVar(&c.card, "card", "", "Restrict to one card.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// Each restriction narrows the listing; they combine as an intersection.
	filter := ledger.AcceptAll
	if c.period != "" {
		on, err := parseDateFlag(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		period, err := ledger.ParsePeriod(c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
			return subcommands.ExitUsageError
		}
		filter = and(filter, ledger.InRange(period.Range(on)))
	}
	if c.kind != "" {
		filter = and(filter, ledger.ByKind(ledger.Kind(c.kind)))
	}
	if c.card != "" {
		filter = and(filter, ledger.ByCard(c.card))
	}

	printMarkdown(renderer.HistoryMarkdown(l, filter))
	return subcommands.ExitSuccess
}

func and(a, b func(ledger.Transaction) bool) func(ledger.Transaction) bool {
	return func(tx ledger.Transaction) bool { return a(tx) && b(tx) }
}
