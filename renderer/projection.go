package renderer

import (
	ledger "github.com/alonsix6/sistema-financiero-sub000"
)

func riskMark(r ledger.RiskLevel) string {
	switch r {
	case ledger.RiskDanger:
		return "🔴"
	case ledger.RiskWarning:
		return "🟡"
	default:
		return "🟢"
	}
}

// ProjectionMarkdown renders the forward cash-flow timeline with one risk
// mark per event.
func ProjectionMarkdown(p ledger.Projection) string {
	var b stringsBuilder
	b.Printf("# Projection %d months from %s\n\n", p.Months, p.From)
	b.Printf("Starting from %s of available cash.\n\n", p.StartBalance)

	if len(p.Events) == 0 {
		b.Printf("No upcoming events.\n")
		return b.String()
	}

	tbl := newTable([]string{left, left, right, right, left},
		"Date", "Event", "Amount", "Balance", "")
	for _, ev := range p.Events {
		description := ev.Description
		if ev.Hypothetical {
			description = "_" + description + " (what-if)_"
		}
		tbl.Row(ev.Date.String(), description, ev.Amount.SignedString(),
			ev.Balance.String(), riskMark(ev.Risk))
	}
	tbl.WriteTo(&b)

	b.Printf("Projected balance on %s: **%s**.\n", p.From.AddMonth(p.Months), p.EndBalance)
	switch p.Worst() {
	case ledger.RiskDanger:
		b.Printf("\nThe balance goes negative within the horizon.\n")
	case ledger.RiskWarning:
		b.Printf("\nSome payments leave a thin cushion.\n")
	}
	return b.String()
}
