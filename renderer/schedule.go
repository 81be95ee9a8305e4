package renderer

import (
	"strconv"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
)

// ScheduleMarkdown renders the installment schedule of one purchase.
func ScheduleMarkdown(e ledger.Expense) string {
	var b stringsBuilder
	b.Printf("# %s\n\n", e.Description)

	if e.Plan == nil {
		b.Printf("No installment plan on this purchase.\n")
		return b.String()
	}
	plan := e.Plan

	b.Printf("%s in %d installments of %s", e.Amount, plan.Total, plan.PerInstallment)
	if plan.Interest.IsPositive() {
		b.Printf(" (TEA %s, interest %s)", plan.AnnualRate, plan.Interest)
	}
	b.Printf("\n\n")

	tbl := newTable([]string{right, left, right, left, right},
		"#", "Due", "Amount", "State", "Remaining")
	for _, entry := range plan.Schedule {
		remaining := "-"
		if entry.State == ledger.Partial {
			remaining = entry.RemainingDue.String()
		}
		tbl.Row(strconv.Itoa(entry.Number), entry.Due.String(), entry.Amount.String(),
			string(entry.State), remaining)
	}
	tbl.WriteTo(&b)

	b.Printf("%d paid, %d remaining, %s left to pay.\n",
		plan.Paid, plan.Remaining, plan.RemainingBalance())

	if len(plan.AdvanceLog) > 0 {
		b.Printf("\n## Advance payments\n\n")
		log := newTable([]string{left, right, right, right},
			"Date", "Amount", "Covered", "Partial")
		for _, ev := range plan.AdvanceLog {
			partial := "-"
			if !ev.Partial.IsZero() {
				partial = ev.Partial.String()
			}
			log.Row(ev.Date.String(), ev.Amount.String(), strconv.Itoa(ev.Covered), partial)
		}
		log.WriteTo(&b)
	}
	return b.String()
}
