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

// goalCmd holds the flags for the 'goal' subcommand.
type goalCmd struct {
	add      bool
	save     string
	id       string
	name     string
	category string
	target   string
	amount   string
	deadline string
}

func (*goalCmd) Name() string     { return "goal" }
func (*goalCmd) Synopsis() string { return "manage savings goals" }
func (*goalCmd) Usage() string {
	return `sisfin goal [-add -id <id> -name <name> -target <amount> [-deadline <date>]] [-save <id> -a <amount>]

  Without flags, lists the active goals and their progress. -save moves cash
  into a goal's reserve; reserved cash reduces what is affordable elsewhere.
`
}

func (c *goalCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.add, "add", false, "Add a new goal.")
	f.StringVar(&c.save, "save", "", "Add savings to the goal with this id.")
	f.StringVar(&c.id, "id", "", "Goal id.")
	f.StringVar(&c.name, "name", "", "Display name.")
	f.StringVar(&c.category, "c", "", "Category.")
	f.StringVar(&c.target, "target", "", "Target amount.")
	f.StringVar(&c.amount, "a", "", "Amount to move into the goal's reserve.")
	f.StringVar(&c.deadline, "deadline", "", "Optional deadline date.")
}

func (c *goalCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch {
	case c.add:
		target, err := parseAmount(c.target)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing target: %v\n", err)
			return subcommands.ExitUsageError
		}
		g := ledger.Goal{
			ID: c.id, Name: c.name, Category: c.category, Target: target,
			Start: ledger.Today(), Active: true,
		}
		if c.deadline != "" {
			if g.Deadline, err = ledger.ParseDate(c.deadline); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing deadline: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		if err := l.AddGoal(g); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding goal: %v\n", err)
			return subcommands.ExitFailure
		}

	case c.save != "":
		amount, err := parseAmount(c.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		g := l.Goal(c.save)
		if g == nil {
			fmt.Fprintf(os.Stderr, "Error: goal %q not in ledger\n", c.save)
			return subcommands.ExitFailure
		}
		g.Saved = g.Saved.Add(amount)
		fmt.Printf("Goal %s at %s of %s (%s)\n", g.Name, g.Saved, g.Target, g.Progress())

	default:
		printMarkdown(renderer.GoalsMarkdown(l))
		return subcommands.ExitSuccess
	}

	if err := EncodeLedger(l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
