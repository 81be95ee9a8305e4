package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
	"github.com/google/subcommands"
)

// incomeCmd holds the flags for the 'income' subcommand.
type incomeCmd struct {
	id          string
	date        string
	amount      string
	description string
	category    string
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "record money coming in" }
func (*incomeCmd) Usage() string {
	return `sisfin income -id <id> -a <amount> [-d <date>] [-m <description>] [-c <category>]

  Records an income transaction.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Unique transaction id.")
	f.StringVar(&c.date, "d", "", "Date of the income. Defaults to today.")
	f.StringVar(&c.amount, "a", "", "Amount received.")
	f.StringVar(&c.description, "m", "", "Free-form description.")
	f.StringVar(&c.category, "c", "", "Category, e.g. work.")
}

func (c *incomeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	tx := ledger.NewIncome(c.id, on, amount, c.description, c.category)
	if err := l.Append(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording income: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded income %s of %s on %s\n", c.id, amount, on)
	return subcommands.ExitSuccess
}
