package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
	"github.com/alonsix6/sistema-financiero-sub000/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// buyCmd holds the flags for the 'buy' subcommand (installment purchases).
type buyCmd struct {
	id           string
	date         string
	amount       string
	description  string
	category     string
	card         string
	installments int
	tea          string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a card purchase paid in installments" }
func (*buyCmd) Usage() string {
	return `sisfin buy -id <id> -a <amount> -card <card> -n <installments> [-tea <rate>] [-d <date>]

  Records a card purchase split into N monthly installments billed through the
  card's cycle. With -tea, the installments follow the standard amortization of
  the annual effective rate (e.g. -tea 0.30 for 30%).
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Unique transaction id.")
	f.StringVar(&c.date, "d", "", "Purchase date. Defaults to today.")
	f.StringVar(&c.amount, "a", "", "Purchase price.")
	f.StringVar(&c.description, "m", "", "Free-form description.")
	f.StringVar(&c.category, "c", "", "Category.")
	f.StringVar(&c.card, "card", "", "Card id to charge.")
	f.IntVar(&c.installments, "n", 0, "Number of monthly installments.")
	f.StringVar(&c.tea, "tea", "0", "Annual effective rate as a decimal fraction, 0 for interest-free.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDateFlag(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	tea, err := decimal.NewFromString(c.tea)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing rate %q: %v\n", c.tea, err)
		return subcommands.ExitUsageError
	}

	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx := ledger.NewCardExpense(c.id, on, amount, c.description, c.category, c.card)
	if err := l.BuyInInstallments(tx, c.installments, tea, ledger.Today()); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording purchase: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	recorded := l.Transaction(c.id).(ledger.Expense)
	printMarkdown(renderer.ScheduleMarkdown(recorded))
	return subcommands.ExitSuccess
}
