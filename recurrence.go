package ledger

import (
	"errors"
	"fmt"
)

// Recurrence is a template for a transaction that repeats monthly on a fixed
// day. It owns no transactions; materialized entries carry a non-owning
// back-reference through their recurrenceId.
type Recurrence struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"` // income or expense
	Description string `json:"description"`
	Amount      Money  `json:"amount"`
	Day         int    `json:"day"` // day of month, clamped to the month's length
	Category    string `json:"category,omitempty"`
	CardID      string `json:"cardId,omitempty"` // empty means cash
	Active      bool   `json:"active"`
}

// Validate checks the recurrence's own fields.
func (r *Recurrence) Validate() error {
	if r.ID == "" {
		return errors.New("recurrence id is missing")
	}
	if r.Kind != KindIncome && r.Kind != KindExpense {
		return fmt.Errorf("recurrence kind must be income or expense, got %q", r.Kind)
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("recurrence amount must be positive, got %s", r.Amount)
	}
	if r.Day < 1 || r.Day > 31 {
		return fmt.Errorf("recurrence day must be in 1..31, got %d", r.Day)
	}
	return nil
}

func (r Recurrence) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("kind", r.Kind)
	w.Append("description", r.Description)
	w.Append("amount", r.Amount)
	w.Append("day", r.Day)
	w.Optional("category", r.Category)
	w.Optional("cardId", r.CardID)
	w.Append("active", r.Active)
	return w.MarshalJSON()
}

// materializedIn reports whether the ledger already holds a transaction
// materialized from this recurrence within the month containing on.
func (l *Ledger) materializedIn(recurrenceID string, on Date) bool {
	for _, tx := range l.transactions {
		var id string
		switch v := tx.(type) {
		case Income:
			id = v.RecurrenceID
		case Expense:
			id = v.RecurrenceID
		default:
			continue
		}
		if id == recurrenceID && tx.When().SameMonth(on) {
			return true
		}
	}
	return false
}

// MaterializeRecurrences turns every active recurrence that is due this month
// and not yet materialized into a concrete transaction, dated on the
// recurrence's configured day.
//
// It is safe to call on every load: a recurrence is materialized at most once
// per calendar month, and only once today has reached its configured day.
func (l *Ledger) MaterializeRecurrences(today Date) []Transaction {
	var created []Transaction
	for i := range l.recurrences {
		r := &l.recurrences[i]
		if !r.Active {
			continue
		}
		when := clampedDate(today.Year(), today.Month(), r.Day)
		if today.Before(when) {
			continue
		}
		if l.materializedIn(r.ID, today) {
			continue
		}
		id := fmt.Sprintf("%s-%s", r.ID, when.Format("200601"))
		var tx Transaction
		switch r.Kind {
		case KindIncome:
			in := NewIncome(id, when, r.Amount, r.Description, r.Category)
			in.Recurring, in.RecurrenceID = true, r.ID
			tx = in
		case KindExpense:
			ex := NewExpense(id, when, r.Amount, r.Description, r.Category)
			ex.CardID = r.CardID
			ex.Recurring, ex.RecurrenceID = true, r.ID
			// A recurring card charge is contractual: it raises the card
			// balance even past the limit, no headroom check. The overrun
			// then shows up in the debt and projection views.
			if r.CardID != "" {
				if card := l.Card(r.CardID); card != nil {
					card.Balance = card.Balance.Add(r.Amount)
				}
			}
			tx = ex
		default:
			continue
		}
		l.transactions = append(l.transactions, tx)
		created = append(created, tx)
	}
	if len(created) > 0 {
		l.stableSort()
	}
	return created
}
