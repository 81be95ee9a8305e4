package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// payCmd holds the flags for the 'pay' subcommand (regular card payments).
type payCmd struct {
	id     string
	date   string
	amount string
	card   string
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "pay down a card, settling whole installments oldest first" }
func (*payCmd) Usage() string {
	return `sisfin pay -id <id> -card <card> -a <amount> [-d <date>]

  Records a regular card payment. The amount settles whole installments across
  the card's outstanding plans, oldest purchase first; leftover that cannot
  cover a full installment reduces the revolving balance only.
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Unique transaction id.")
	f.StringVar(&c.date, "d", "", "Payment date. Defaults to today.")
	f.StringVar(&c.amount, "a", "", "Amount paid.")
	f.StringVar(&c.card, "card", "", "Card id being paid.")
}

func (c *payCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	payment, err := l.PayCard(c.id, c.card, amount, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording payment: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Paid %s to card %s\n", amount, c.card)
	for _, settled := range payment.Settled {
		fmt.Printf("  settled %s\n", settled)
	}
	if len(payment.Settled) == 0 {
		fmt.Println("  no whole installment could be settled")
	}
	return subcommands.ExitSuccess
}
