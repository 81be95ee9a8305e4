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

// breakdownCmd holds the flags for the 'breakdown' subcommand.
type breakdownCmd struct {
	date   string
	period string
}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "display expenses grouped by category" }
func (*breakdownCmd) Usage() string {
	return `sisfin breakdown [-d <date>] [-p <period>]

  Displays expenses per category for the period, largest first.
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date inside the period. Defaults to today.")
	f.StringVar(&c.period, "p", "month", "Period (day, month, quarter, year).")
}

func (c *breakdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BreakdownMarkdown(l, period.Range(on)))
	return subcommands.ExitSuccess
}
