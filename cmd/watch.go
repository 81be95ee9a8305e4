package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

// watchCmd holds the flags for the 'watch' subcommand.
type watchCmd struct {
	schedule string
	horizon  int
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "run the daily maintenance loop in the foreground" }
func (*watchCmd) Usage() string {
	return `sisfin watch [-schedule <cron>] [-horizon <days>]

  Runs in the foreground and, on each tick, materializes due recurrences,
  marks overdue installments, saves the ledger and logs the payments coming
  due within the horizon. Meant to run under a process supervisor.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.schedule, "schedule", "0 8 * * *", "Cron expression of the maintenance tick.")
	f.IntVar(&c.horizon, "horizon", 7, "Days ahead to warn about upcoming payments.")
}

// tick runs one maintenance pass.
func (c *watchCmd) tick() {
	l, err := DecodeLedger() // materializes and marks overdue on load
	if err != nil {
		log.WithError(err).Error("maintenance tick failed to load ledger")
		return
	}
	if err := EncodeLedger(l); err != nil {
		log.WithError(err).Error("maintenance tick failed to save ledger")
		return
	}

	today := ledger.Today()
	deadline := today.Add(c.horizon)
	for _, tx := range l.Transactions(ledger.ByKind(ledger.KindExpense)) {
		e := tx.(ledger.Expense)
		if e.Plan == nil {
			continue
		}
		for _, entry := range e.Plan.Schedule {
			if !entry.State.Payable() || entry.Due.After(deadline) {
				continue
			}
			log.WithFields(map[string]interface{}{
				"purchase":    e.Ref(),
				"installment": entry.Number,
				"due":         entry.Due.String(),
				"amount":      entry.Amount.String(),
				"state":       string(entry.State),
			}).Warn("payment due soon")
		}
	}
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	runner := cron.New()
	if _, err := runner.AddFunc(c.schedule, c.tick); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing schedule %q: %v\n", c.schedule, err)
		return subcommands.ExitUsageError
	}

	log.WithField("schedule", c.schedule).Info("watch started")
	c.tick() // one pass immediately, then on schedule
	runner.Start()
	<-ctx.Done()
	<-runner.Stop().Done()
	return subcommands.ExitSuccess
}
