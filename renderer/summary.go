package renderer

import (
	"io"
	"sort"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
)

// SummaryMarkdown renders the period summary: income, expenses, balance and
// savings rate, followed by the cash and debt standing on the closing day.
func SummaryMarkdown(l *ledger.Ledger, s ledger.Summary) string {
	var b stringsBuilder
	b.Printf("# Summary %s .. %s\n\n", s.Range.From, s.Range.To)

	tbl := newTable([]string{left, right}, "", "Amount")
	tbl.Row("Income", s.Income.String())
	tbl.Row("Expenses", s.Expense.String())
	tbl.Row("**Balance**", "**"+s.Balance.SignedString()+"**")
	tbl.Row("Savings rate", s.SavingsRate.String())
	tbl.WriteTo(&b)

	b.Printf("## Standing on %s\n\n", s.Range.To)
	standing := newTable([]string{left, right}, "", "Amount")
	standing.Row("Available cash", l.AvailableCash(s.Range.To).String())
	standing.Row("Card debt", l.TotalCardDebt().String())
	standing.Row("Reserved for goals", l.TotalGoalReserved().String())
	standing.Row("**Affordable**", "**"+l.Affordability(s.Range.To).SignedString()+"**")
	standing.WriteTo(&b)

	return b.String()
}

// BreakdownMarkdown renders expenses per category over a range, largest first.
func BreakdownMarkdown(l *ledger.Ledger, r ledger.Range) string {
	var b stringsBuilder
	b.Printf("# Expenses by Category %s .. %s\n\n", r.From, r.To)

	breakdown := l.CategoryBreakdown(r)
	if len(breakdown) == 0 {
		b.Printf("No expenses in this period.\n")
		return b.String()
	}

	categories := make([]string, 0, len(breakdown))
	for category := range breakdown {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		ai, aj := breakdown[categories[i]], breakdown[categories[j]]
		if !ai.Equal(aj) {
			return aj.LessThan(ai)
		}
		return categories[i] < categories[j]
	})

	var total ledger.Money
	tbl := newTable([]string{left, right}, "Category", "Amount")
	for _, category := range categories {
		tbl.Row(category, breakdown[category].String())
		total = total.Add(breakdown[category])
	}
	tbl.Row("**Total**", "**"+total.String()+"**")
	tbl.WriteTo(&b)

	return b.String()
}

// CardsMarkdown renders the cards with their balance, headroom and utilization.
func CardsMarkdown(l *ledger.Ledger) string {
	var b stringsBuilder
	b.Printf("# Cards\n\n")

	n := 0
	ConditionalBlock(&b, func(w io.Writer) bool {
		tbl := newTable([]string{left, left, right, right, right, right, left},
			"Card", "Issuer", "Limit", "Balance", "Headroom", "Used", "Cycle")
		for c := range l.Cards() {
			n++
			tbl.Row(c.Name, c.Issuer, c.Limit.String(), c.Balance.String(),
				c.Headroom().String(), c.Utilization().String(),
				cycleLabel(c.ClosingDay, c.PaymentDay))
		}
		tbl.WriteTo(w)
		return n > 0
	})
	if n == 0 {
		b.Printf("No cards.\n")
	}
	return b.String()
}

func cycleLabel(closingDay, paymentDay int) string {
	var b stringsBuilder
	b.Printf("closes %d, due %d", closingDay, paymentDay)
	return b.String()
}

// GoalsMarkdown renders the savings goals and their progress.
func GoalsMarkdown(l *ledger.Ledger) string {
	var b stringsBuilder
	b.Printf("# Goals\n\n")

	n := 0
	ConditionalBlock(&b, func(w io.Writer) bool {
		tbl := newTable([]string{left, right, right, right, left},
			"Goal", "Target", "Saved", "Progress", "Deadline")
		for g := range l.Goals() {
			if !g.Active {
				continue
			}
			n++
			deadline := "-"
			if !g.Deadline.IsZero() {
				deadline = g.Deadline.String()
			}
			tbl.Row(g.Name, g.Target.String(), g.Saved.String(), g.Progress().String(), deadline)
		}
		tbl.WriteTo(w)
		return n > 0
	})
	if n == 0 {
		b.Printf("No active goals.\n")
	}
	return b.String()
}
