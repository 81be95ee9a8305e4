package ledger

import (
	"fmt"
	"sort"
)

// entryDue returns what an entry still owes.
func entryDue(e InstallmentEntry) Money {
	switch e.State {
	case Partial:
		return e.RemainingDue
	case Overdue:
		if !e.RemainingDue.IsZero() {
			return e.RemainingDue
		}
		return e.Amount
	default:
		return e.Amount
	}
}

// settleEntry marks an entry paid and updates the plan counters.
func settleEntry(p *InstallmentPlan, i int) {
	p.Schedule[i].State = Paid
	p.Schedule[i].PartialPaid = Money{}
	p.Schedule[i].RemainingDue = Money{}
	p.Paid++
	p.Remaining--
}

// PayCard records a regular card payment of the given amount and greedily
// settles whole installments across the card's outstanding plans, oldest
// purchase first (ties broken by transaction id, so allocation is stable).
//
// Budget that cannot cover a full installment on any plan is left unconsumed
// by the schedules; the card balance is still reduced by the full payment
// amount, which also covers revolving balance outside installment plans.
func (l *Ledger) PayCard(id string, cardID string, amount Money, today Date) (CardPayment, error) {
	card := l.Card(cardID)
	if card == nil {
		return CardPayment{}, fmt.Errorf("%w: card %q not in ledger", ErrInvalidReference, cardID)
	}
	if !amount.IsPositive() {
		return CardPayment{}, fmt.Errorf("payment amount must be positive, got %s", amount)
	}
	if l.Transaction(id) != nil {
		return CardPayment{}, fmt.Errorf("duplicate transaction id %q", id)
	}

	// Outstanding installment purchases on this card, oldest debt first.
	type target struct {
		index int
		tx    Expense
	}
	var targets []target
	for i, tx := range l.transactions {
		e, ok := tx.(Expense)
		if !ok || e.CardID != cardID || e.Plan == nil || e.Plan.Remaining == 0 {
			continue
		}
		targets = append(targets, target{index: i, tx: e})
	}
	sort.SliceStable(targets, func(i, j int) bool {
		a, b := targets[i].tx, targets[j].tx
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})

	payment := NewCardPayment(id, today, amount, cardID)
	budget := amount
	for _, t := range targets {
		plan := t.tx.Plan
		for k := range plan.Schedule {
			if !plan.Schedule[k].State.Payable() {
				continue
			}
			due := entryDue(plan.Schedule[k])
			if budget.LessThan(due) {
				break // whole installments only; leftover reduces revolving balance
			}
			settleEntry(plan, k)
			budget = budget.Sub(due)
			payment.Settled = append(payment.Settled,
				fmt.Sprintf("%s %d/%d", t.tx.Description, plan.Schedule[k].Number, plan.Total))
		}
		if !budget.IsPositive() {
			break
		}
	}

	card.Balance = card.Balance.Sub(amount)
	l.transactions = append(l.transactions, payment)
	l.stableSort()
	return payment, nil
}

// AdvancePay records a targeted advance payment against one installment
// purchase. Whole installments are retired first; a remainder is applied to
// the next pending installment as a partial payment. At most one entry per
// plan is partial at a time.
//
// The operation is rejected, without mutating anything, when the amount
// exceeds the plan's remaining balance or the caller-supplied available-cash
// ceiling.
func (l *Ledger) AdvancePay(id string, txID string, amount Money, availableCash Money, today Date) (CardPayment, error) {
	tx := l.Transaction(txID)
	if tx == nil {
		return CardPayment{}, fmt.Errorf("%w: transaction %q not in ledger", ErrInvalidReference, txID)
	}
	e, ok := tx.(Expense)
	if !ok || e.Plan == nil {
		return CardPayment{}, fmt.Errorf("%w: transaction %q has no installment plan", ErrInvalidReference, txID)
	}
	if !amount.IsPositive() {
		return CardPayment{}, fmt.Errorf("payment amount must be positive, got %s", amount)
	}
	if l.Transaction(id) != nil {
		return CardPayment{}, fmt.Errorf("duplicate transaction id %q", id)
	}
	if amount.GreaterThan(availableCash) {
		return CardPayment{}, fmt.Errorf("%w: %s exceeds available cash %s", ErrInsufficientFunds, amount, availableCash)
	}
	plan := e.Plan
	if remaining := plan.RemainingBalance(); amount.GreaterThan(remaining) {
		return CardPayment{}, fmt.Errorf("%w: %s exceeds %s remaining on %q", ErrOverAllocation, amount, remaining, txID)
	}
	card := l.Card(e.CardID)
	if card == nil {
		return CardPayment{}, fmt.Errorf("%w: card %q not in ledger", ErrInvalidReference, e.CardID)
	}

	// All preconditions hold; from here the mutation cannot fail.
	budget := amount
	covered := 0
	var partial Money
	for k := range plan.Schedule {
		if !plan.Schedule[k].State.Payable() {
			continue
		}
		due := entryDue(plan.Schedule[k])
		if budget.GreaterThanOrEqual(due) {
			settleEntry(plan, k)
			budget = budget.Sub(due)
			covered++
			continue
		}
		if budget.IsPositive() {
			entry := &plan.Schedule[k]
			entry.State = Partial
			entry.PartialPaid = entry.PartialPaid.Add(budget)
			entry.RemainingDue = entry.Amount.Sub(entry.PartialPaid)
			partial = budget
			budget = Money{}
		}
		break
	}

	plan.AdvanceLog = append(plan.AdvanceLog, AdvanceEvent{
		Date: today, Amount: amount, Covered: covered, Partial: partial,
	})

	payment := CardPayment{
		baseTx: baseTx{
			ID: id, Kind: KindCardPayment, Date: today, Amount: amount,
			Description: fmt.Sprintf("advance payment on %s", e.Description),
		},
		CardID:       e.CardID,
		Type:         AdvancePayment,
		OriginalTxID: txID,
		Covered:      covered,
		PartialPaid:  partial,
	}
	card.Balance = card.Balance.Sub(amount)
	l.transactions = append(l.transactions, payment)
	l.stableSort()
	return payment, nil
}
