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

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	months   int
	whatIf   string
	income   bool
	card     string
	describe string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the cash-flow timeline ahead" }
func (*projectCmd) Usage() string {
	return `sisfin project [-months <n>] [-what-if <amount> [-income] [-card <card>] [-m <description>]]

  Projects card due dates, pending installments and recurrences over the next
  months, folding them over the available cash and flagging risky events.
  With -what-if, a hypothetical expense (or income with -income) is injected;
  a card expense lands on the card's next due date.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.months, "months", 6, "Projection horizon in months.")
	f.StringVar(&c.whatIf, "what-if", "", "Amount of a hypothetical transaction to inject.")
	f.BoolVar(&c.income, "income", false, "Make the hypothetical an income instead of an expense.")
	f.StringVar(&c.card, "card", "", "Charge the hypothetical expense to this card.")
	f.StringVar(&c.describe, "m", "what-if", "Description of the hypothetical.")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var hypo *ledger.Hypothetical
	if c.whatIf != "" {
		amount, err := parseAmount(c.whatIf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing what-if amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		hypo = &ledger.Hypothetical{
			Description: c.describe,
			Amount:      amount,
			Expense:     !c.income,
			CardID:      c.card,
		}
	}

	p := l.Project(ledger.Today(), c.months, hypo)
	printMarkdown(renderer.ProjectionMarkdown(p))
	return subcommands.ExitSuccess
}
