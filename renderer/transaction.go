package renderer

import (
	"fmt"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx ledger.Transaction) string {
	switch v := tx.(type) {
	case ledger.Income:
		return fmt.Sprintf("Received %s (%s)", v.Amount, v.Description)
	case ledger.Expense:
		switch {
		case v.Plan != nil:
			return fmt.Sprintf("Bought %s in %d installments of %s on card %s (%s)",
				v.Amount, v.Plan.Total, v.Plan.PerInstallment, v.CardID, v.Description)
		case v.OnCard():
			return fmt.Sprintf("Spent %s on card %s (%s)", v.Amount, v.CardID, v.Description)
		default:
			return fmt.Sprintf("Spent %s in cash (%s)", v.Amount, v.Description)
		}
	case ledger.CardPayment:
		if v.Type == ledger.AdvancePayment {
			return fmt.Sprintf("Advanced %s on %s (card %s)", v.Amount, v.OriginalTxID, v.CardID)
		}
		return fmt.Sprintf("Paid %s to card %s", v.Amount, v.CardID)
	default:
		return string(tx.What())
	}
}

// HistoryMarkdown renders a chronological table of transactions.
func HistoryMarkdown(l *ledger.Ledger, filters ...func(ledger.Transaction) bool) string {
	var b stringsBuilder
	b.Printf("# Transactions\n\n")

	tbl := newTable([]string{left, left, right, left},
		"Date", "Kind", "Amount", "Detail")
	n := 0
	for _, tx := range l.Transactions(filters...) {
		n++
		tbl.Row(tx.When().String(), string(tx.What()), tx.Value().String(), Transaction(tx))
	}
	if n == 0 {
		b.Printf("No transactions.\n")
		return b.String()
	}
	tbl.WriteTo(&b)
	return b.String()
}
