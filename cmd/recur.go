package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
	"github.com/google/subcommands"
)

// recurCmd holds the flags for the 'recur' subcommand.
type recurCmd struct {
	add         bool
	pause       string
	resume      string
	id          string
	kind        string
	amount      string
	day         int
	description string
	category    string
	card        string
}

func (*recurCmd) Name() string     { return "recur" }
func (*recurCmd) Synopsis() string { return "manage monthly recurring transactions" }
func (*recurCmd) Usage() string {
	return `sisfin recur [-add -id <id> -kind <income|expense> -a <amount> -day <day>] [-pause <id>] [-resume <id>]

  Without flags, lists the recurrences. An active recurrence materializes a
  concrete transaction once per month, when its day is reached.
`
}

func (c *recurCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.add, "add", false, "Add a new recurrence.")
	f.StringVar(&c.pause, "pause", "", "Deactivate the recurrence with this id.")
	f.StringVar(&c.resume, "resume", "", "Reactivate the recurrence with this id.")
	f.StringVar(&c.id, "id", "", "Recurrence id.")
	f.StringVar(&c.kind, "kind", "expense", "Kind, income or expense.")
	f.StringVar(&c.amount, "a", "", "Monthly amount.")
	f.IntVar(&c.day, "day", 1, "Day of month, clamped to the month's length.")
	f.StringVar(&c.description, "m", "", "Free-form description.")
	f.StringVar(&c.category, "c", "", "Category.")
	f.StringVar(&c.card, "card", "", "Card id for recurring card expenses. Empty means cash.")
}

func (c *recurCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch {
	case c.add:
		amount, err := parseAmount(c.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		r := ledger.Recurrence{
			ID: c.id, Kind: ledger.Kind(c.kind), Description: c.description,
			Amount: amount, Day: c.day, Category: c.category, CardID: c.card,
			Active: true,
		}
		if err := l.AddRecurrence(r); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding recurrence: %v\n", err)
			return subcommands.ExitFailure
		}

	case c.pause != "", c.resume != "":
		id, active := c.pause, false
		if c.resume != "" {
			id, active = c.resume, true
		}
		r := l.Recurrence(id)
		if r == nil {
			fmt.Fprintf(os.Stderr, "Error: recurrence %q not in ledger\n", id)
			return subcommands.ExitFailure
		}
		r.Active = active

	default:
		for r := range l.Recurrences() {
			state := "paused"
			if r.Active {
				state = "active"
			}
			fmt.Printf("%s: %s %s every month on day %d (%s)\n", r.ID, r.Kind, r.Amount, r.Day, state)
		}
		return subcommands.ExitSuccess
	}

	if err := EncodeLedger(l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
