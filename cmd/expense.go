package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
	"github.com/google/subcommands"
)

// expenseCmd holds the flags for the 'expense' subcommand.
type expenseCmd struct {
	id          string
	date        string
	amount      string
	description string
	category    string
	card        string
	investment  bool
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record money going out, in cash or on a card" }
func (*expenseCmd) Usage() string {
	return `sisfin expense -id <id> -a <amount> [-d <date>] [-m <description>] [-c <category>] [-card <card>]

  Records an expense. Without -card it is a cash outflow; with -card it is
  charged to the card and increases its balance, subject to the credit limit.
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Unique transaction id.")
	f.StringVar(&c.date, "d", "", "Date of the expense. Defaults to today.")
	f.StringVar(&c.amount, "a", "", "Amount spent.")
	f.StringVar(&c.description, "m", "", "Free-form description.")
	f.StringVar(&c.category, "c", "", "Category, e.g. food.")
	f.StringVar(&c.card, "card", "", "Card id to charge. Empty means cash.")
	f.BoolVar(&c.investment, "investment", false, "Mark the expense as an investment.")
}

func (c *expenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx := ledger.NewExpense(c.id, on, amount, c.description, c.category)
	tx.CardID = c.card
	tx.Investment = c.investment
	if err := l.AddPurchase(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording expense: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded expense %s of %s on %s\n", c.id, amount, on)
	return subcommands.ExitSuccess
}
