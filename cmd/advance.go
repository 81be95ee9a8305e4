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

// advanceCmd holds the flags for the 'advance' subcommand.
type advanceCmd struct {
	id     string
	date   string
	amount string
	target string
}

func (*advanceCmd) Name() string     { return "advance" }
func (*advanceCmd) Synopsis() string { return "pay installments of one purchase ahead of schedule" }
func (*advanceCmd) Usage() string {
	return `sisfin advance -id <id> -tx <purchase> -a <amount> [-d <date>]

  Records an advance payment against one installment purchase. Whole
  installments are retired first; a remainder becomes a partial payment on the
  next pending installment. The amount is capped by the available cash and by
  the plan's remaining balance.
`
}

func (c *advanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Unique transaction id.")
	f.StringVar(&c.date, "d", "", "Payment date. Defaults to today.")
	f.StringVar(&c.amount, "a", "", "Amount to advance.")
	f.StringVar(&c.target, "tx", "", "Id of the installment purchase to pay down.")
}

func (c *advanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	payment, err := l.AdvancePay(c.id, c.target, amount, l.AvailableCash(on), on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording advance: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Advanced %s on %s: %d installments covered", amount, c.target, payment.Covered)
	if !payment.PartialPaid.IsZero() {
		fmt.Printf(", %s partial", payment.PartialPaid)
	}
	fmt.Println()
	printMarkdown(renderer.ScheduleMarkdown(l.Transaction(c.target).(ledger.Expense)))
	return subcommands.ExitSuccess
}
