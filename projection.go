package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RiskLevel classifies one projected event against the running balance.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "safe"
	RiskWarning RiskLevel = "warning"
	RiskDanger  RiskLevel = "danger"
)

// warningBuffer is the heuristic cushion used to flag a warning: an outflow
// leaves the timeline in warning state when the remaining balance is smaller
// than half the outflow. Tunable, not load-bearing.
var warningBuffer = decimal.NewFromFloat(0.5)

// Event is one dated, signed cash-flow entry in the forward timeline.
// Amount is negative for outflows. Balance is the running balance after the
// event is applied.
type Event struct {
	Date         Date      `json:"date"`
	Description  string    `json:"description"`
	Amount       Money     `json:"amount"`
	Balance      Money     `json:"balance"`
	Risk         RiskLevel `json:"risk"`
	CardID       string    `json:"cardId,omitempty"`
	Hypothetical bool      `json:"hypothetical,omitempty"`
}

// Hypothetical is an optional what-if event injected into a projection.
// For card spending the amount is resolved to the card's next due date and
// merged into an existing same-card, same-due-date event when one exists.
type Hypothetical struct {
	Description string
	Amount      Money // positive income or positive expense; Expense flag carries the sign
	Expense     bool
	CardID      string // empty means cash, effective immediately
}

// Projection is a risk-classified forward timeline of cash-flow events.
type Projection struct {
	From         Date    `json:"from"`
	Months       int     `json:"months"`
	StartBalance Money   `json:"startBalance"`
	EndBalance   Money   `json:"endBalance"`
	Events       []Event `json:"events"`
}

// Worst returns the most severe risk level reached in the projection.
func (p *Projection) Worst() RiskLevel {
	worst := RiskSafe
	for _, e := range p.Events {
		switch e.Risk {
		case RiskDanger:
			return RiskDanger
		case RiskWarning:
			worst = RiskWarning
		}
	}
	return worst
}

// Project builds the event timeline for the next months calendar months,
// folds it left-to-right over the current available cash, and classifies each
// event. Events on the same date keep their insertion order.
//
// The timeline is seeded with one due-date event per card (full current
// balance on the first occurrence, zero-amount placeholders thereafter), one
// event per pending installment entry due within the window, one event per
// active recurrence for each month not already covered by a materialized
// transaction, and at most one hypothetical event.
func (l *Ledger) Project(today Date, months int, hypo *Hypothetical) Projection {
	if months < 1 {
		months = 6
	}
	horizon := today.AddMonth(months)
	window := NewRange(today.Add(1), horizon)

	var events []Event

	// (a) card due-date series: the full balance falls due on the next due
	// date; later cycles are placeholders continuing the series.
	for card := range l.Cards() {
		first := true
		due := DueDate(today, card.ClosingDay, card.PaymentDay, today)
		for !due.After(horizon) {
			amount := Money{}
			if first && card.Balance.IsPositive() {
				amount = card.Balance.Neg()
			}
			events = append(events, Event{
				Date:        due,
				Description: card.Name + " due date",
				Amount:      amount,
				CardID:      card.ID,
			})
			first = false
			due = clampedDate(due.Year(), due.Month()+1, card.PaymentDay)
		}
	}

	// (b) pending installment entries inside the window.
	for _, tx := range l.transactions {
		e, ok := tx.(Expense)
		if !ok || e.Plan == nil {
			continue
		}
		for _, entry := range e.Plan.Schedule {
			if !entry.State.Payable() || !window.Contains(entry.Due) {
				continue
			}
			events = append(events, Event{
				Date:        entry.Due,
				Description: e.Description,
				Amount:      entryDue(entry).Neg(),
				CardID:      e.CardID,
			})
		}
	}

	// (c) active recurrences, one per month not already materialized.
	for r := range l.Recurrences() {
		if !r.Active {
			continue
		}
		for k := 0; k <= months; k++ {
			month := today.StartOf(Monthly).AddMonth(k)
			when := clampedDate(month.Year(), month.Month(), r.Day)
			if !window.Contains(when) || l.materializedIn(r.ID, when) {
				continue
			}
			amount := r.Amount
			if r.Kind == KindExpense {
				amount = amount.Neg()
			}
			events = append(events, Event{Date: when, Description: r.Description, Amount: amount})
		}
	}

	// (d) the optional what-if event.
	if hypo != nil {
		amount := hypo.Amount
		if hypo.Expense {
			amount = amount.Neg()
		}
		when := today
		if hypo.CardID != "" {
			if card := l.Card(hypo.CardID); card != nil {
				when = DueDate(today, card.ClosingDay, card.PaymentDay, today)
			}
		}
		merged := false
		if hypo.CardID != "" {
			for i := range events {
				if events[i].CardID == hypo.CardID && events[i].Date == when {
					events[i].Amount = events[i].Amount.Add(amount)
					events[i].Hypothetical = true
					merged = true
					break
				}
			}
		}
		if !merged {
			events = append(events, Event{
				Date:         when,
				Description:  hypo.Description,
				Amount:       amount,
				CardID:       hypo.CardID,
				Hypothetical: true,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	projection := Projection{
		From:         today,
		Months:       months,
		StartBalance: l.AvailableCash(today),
	}
	balance := projection.StartBalance
	for _, ev := range events {
		balance = balance.Add(ev.Amount)
		ev.Balance = balance
		ev.Risk = classify(ev.Amount, balance)
		projection.Events = append(projection.Events, ev)
	}
	projection.EndBalance = balance
	return projection
}

// classify applies the risk heuristic to one event outcome.
func classify(amount, balance Money) RiskLevel {
	if balance.IsNegative() {
		return RiskDanger
	}
	if amount.IsNegative() {
		cushion := Money{value: amount.Abs().Decimal().Mul(warningBuffer)}
		if balance.LessThan(cushion) {
			return RiskWarning
		}
	}
	return RiskSafe
}
