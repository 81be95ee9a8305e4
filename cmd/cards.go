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

// cardsCmd holds the flags for the 'cards' subcommand.
type cardsCmd struct {
	add        bool
	remove     string
	id         string
	name       string
	issuer     string
	limit      string
	closingDay int
	paymentDay int
}

func (*cardsCmd) Name() string     { return "cards" }
func (*cardsCmd) Synopsis() string { return "list, add or delete credit cards" }
func (*cardsCmd) Usage() string {
	return `sisfin cards [-add -id <id> -name <name> -limit <amount> -close <day> -due <day>] [-delete <id>]

  Without flags, lists the cards with balance, headroom and utilization.
  A card cannot be deleted while transactions still reference it.
`
}

func (c *cardsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.add, "add", false, "Add a new card.")
	f.StringVar(&c.remove, "delete", "", "Delete the card with this id.")
	f.StringVar(&c.id, "id", "", "Card id.")
	f.StringVar(&c.name, "name", "", "Display name.")
	f.StringVar(&c.issuer, "issuer", "", "Issuing bank.")
	f.StringVar(&c.limit, "limit", "", "Credit limit.")
	f.IntVar(&c.closingDay, "close", 1, "Day of month the billing cycle closes.")
	f.IntVar(&c.paymentDay, "due", 1, "Day of month the payment is due.")
}

func (c *cardsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch {
	case c.add:
		limit, err := parseAmount(c.limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing limit: %v\n", err)
			return subcommands.ExitUsageError
		}
		card := ledger.Card{
			ID: c.id, Name: c.name, Issuer: c.issuer, Limit: limit,
			ClosingDay: c.closingDay, PaymentDay: c.paymentDay,
		}
		if err := l.AddCard(card); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding card: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := EncodeLedger(l); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Added card %s\n", c.id)
		return subcommands.ExitSuccess

	case c.remove != "":
		if err := l.DeleteCard(c.remove); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting card: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := EncodeLedger(l); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted card %s\n", c.remove)
		return subcommands.ExitSuccess

	default:
		printMarkdown(renderer.CardsMarkdown(l))
		return subcommands.ExitSuccess
	}
}
