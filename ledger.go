package ledger

import (
	"fmt"
	"iter"
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger is the full snapshot the engine works on: cards, transactions,
// recurrences and goals. Transactions are always in chronological order.
//
// The ledger is single-threaded by contract: callers serialize mutations, and
// every mutating method either fully applies or leaves the snapshot unchanged.
type Ledger struct {
	currency     string // display currency code, e.g. "PEN"
	cards        []Card
	transactions []Transaction
	recurrences  []Recurrence
	goals        []Goal
}

// DefaultCurrency is used when a snapshot does not name one.
const DefaultCurrency = "PEN"

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{currency: DefaultCurrency}
}

// Currency returns the ledger's display currency code.
func (l *Ledger) Currency() string { return l.currency }

// SetCurrency sets the ledger's display currency code.
func (l *Ledger) SetCurrency(code string) { l.currency = code }

// Card returns the card with this id, or nil if unknown.
func (l *Ledger) Card(id string) *Card {
	for i := range l.cards {
		if l.cards[i].ID == id {
			return &l.cards[i]
		}
	}
	return nil
}

// Transaction returns the transaction with this id, or nil if unknown.
func (l *Ledger) Transaction(id string) Transaction {
	for _, tx := range l.transactions {
		if tx.Ref() == id {
			return tx
		}
	}
	return nil
}

// Recurrence returns the recurrence with this id, or nil if unknown.
func (l *Ledger) Recurrence(id string) *Recurrence {
	for i := range l.recurrences {
		if l.recurrences[i].ID == id {
			return &l.recurrences[i]
		}
	}
	return nil
}

// Goal returns the goal with this id, or nil if unknown.
func (l *Ledger) Goal(id string) *Goal {
	for i := range l.goals {
		if l.goals[i].ID == id {
			return &l.goals[i]
		}
	}
	return nil
}

// Cards iterates over the ledger's cards.
func (l *Ledger) Cards() iter.Seq[*Card] {
	return func(yield func(*Card) bool) {
		for i := range l.cards {
			if !yield(&l.cards[i]) {
				return
			}
		}
	}
}

// Recurrences iterates over the ledger's recurrences.
func (l *Ledger) Recurrences() iter.Seq[*Recurrence] {
	return func(yield func(*Recurrence) bool) {
		for i := range l.recurrences {
			if !yield(&l.recurrences[i]) {
				return
			}
		}
	}
}

// Goals iterates over the ledger's goals.
func (l *Ledger) Goals() iter.Seq[*Goal] {
	return func(yield func(*Goal) bool) {
		for i := range l.goals {
			if !yield(&l.goals[i]) {
				return
			}
		}
	}
}

// AcceptAll is a transaction filter that accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// ByKind returns a predicate that filters transactions by kind.
func ByKind(kind Kind) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.What() == kind }
}

// ByCard returns a predicate that filters card expenses and card payments by card id.
func ByCard(cardID string) func(Transaction) bool {
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Expense:
			return v.CardID == cardID
		case CardPayment:
			return v.CardID == cardID
		default:
			return false
		}
	}
}

// InRange returns a predicate that keeps transactions dated within r.
func InRange(r Range) func(Transaction) bool {
	return func(tx Transaction) bool { return r.Contains(tx.When()) }
}

// Transactions returns an iterator that yields each transaction matching any
// of the filters, in chronological order.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := false
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Validate checks a transaction for correctness and applies quick fixes where
// applicable (e.g., defaulting a zero date to today). It returns the validated
// (and potentially modified) transaction or an error.
func (l *Ledger) Validate(tx Transaction) (Transaction, error) {
	ntx, err := tx.Validate(l)
	if err != nil {
		return ntx, fmt.Errorf("invalid %s transaction on %v: %w", tx.What(), tx.When(), err)
	}
	return ntx, nil
}

// Append validates and appends transactions, maintaining chronological order.
// It does not touch card balances; use the dedicated mutations for that.
func (l *Ledger) Append(txs ...Transaction) error {
	validated := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		ntx, err := l.Validate(tx)
		if err != nil {
			return err
		}
		if l.Transaction(ntx.Ref()) != nil {
			return fmt.Errorf("duplicate transaction id %q", ntx.Ref())
		}
		validated = append(validated, ntx)
	}
	l.transactions = append(l.transactions, validated...)
	l.stableSort()
	return nil
}

// AddCard adds a card after validation.
func (l *Ledger) AddCard(c Card) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if l.Card(c.ID) != nil {
		return fmt.Errorf("duplicate card id %q", c.ID)
	}
	l.cards = append(l.cards, c)
	return nil
}

// DeleteCard removes a card. It is rejected while any transaction still
// references the card: cascading would silently rewrite history.
func (l *Ledger) DeleteCard(id string) error {
	if l.Card(id) == nil {
		return fmt.Errorf("%w: card %q not in ledger", ErrInvalidReference, id)
	}
	for _, tx := range l.transactions {
		if ByCard(id)(tx) {
			return fmt.Errorf("card %q is referenced by transaction %q and cannot be deleted", id, tx.Ref())
		}
	}
	for i := range l.recurrences {
		if l.recurrences[i].CardID == id {
			return fmt.Errorf("card %q is referenced by recurrence %q and cannot be deleted", id, l.recurrences[i].ID)
		}
	}
	for i := range l.cards {
		if l.cards[i].ID == id {
			l.cards = append(l.cards[:i], l.cards[i+1:]...)
			return nil
		}
	}
	return nil
}

// AddRecurrence adds a recurrence after validation.
func (l *Ledger) AddRecurrence(r Recurrence) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.CardID != "" && l.Card(r.CardID) == nil {
		return fmt.Errorf("%w: card %q not in ledger", ErrInvalidReference, r.CardID)
	}
	if l.Recurrence(r.ID) != nil {
		return fmt.Errorf("duplicate recurrence id %q", r.ID)
	}
	l.recurrences = append(l.recurrences, r)
	return nil
}

// AddGoal adds a goal after validation.
func (l *Ledger) AddGoal(g Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if l.Goal(g.ID) != nil {
		return fmt.Errorf("duplicate goal id %q", g.ID)
	}
	l.goals = append(l.goals, g)
	return nil
}

// AddPurchase records an expense. When the expense is charged to a card it
// checks the card's headroom and increases its balance by the amount that will
// actually be collected (the plan's total payable when installments are used).
// The mutation is all-or-nothing.
func (l *Ledger) AddPurchase(e Expense) error {
	ntx, err := l.Validate(e)
	if err != nil {
		return err
	}
	e = ntx.(Expense)
	if l.Transaction(e.ID) != nil {
		return fmt.Errorf("duplicate transaction id %q", e.ID)
	}
	if e.OnCard() {
		card := l.Card(e.CardID)
		charge := e.Amount
		if e.Plan != nil {
			charge = e.Plan.TotalPayable()
		}
		if charge.GreaterThan(card.Headroom()) {
			return fmt.Errorf("%w: %s exceeds headroom %s on card %q", ErrCreditLimit, charge, card.Headroom(), card.ID)
		}
		card.Balance = card.Balance.Add(charge)
	}
	l.transactions = append(l.transactions, e)
	l.stableSort()
	return nil
}

// BuyInInstallments builds an installment plan for a card purchase and records
// it. The annual effective rate tea may be zero for interest-free plans.
func (l *Ledger) BuyInInstallments(e Expense, n int, tea decimal.Decimal, today Date) error {
	if e.CardID == "" {
		return fmt.Errorf("installment purchase requires a card")
	}
	card := l.Card(e.CardID)
	if card == nil {
		return fmt.Errorf("%w: card %q not in ledger", ErrInvalidReference, e.CardID)
	}
	plan, err := NewInstallmentPlan(e.Amount, n, e.Date, card.ClosingDay, card.PaymentDay, tea, today)
	if err != nil {
		return err
	}
	e.Plan = plan
	return l.AddPurchase(e)
}

// DeleteTransaction removes a transaction and reverses the card-balance
// effect it originally caused.
func (l *Ledger) DeleteTransaction(id string) error {
	for i, tx := range l.transactions {
		if tx.Ref() != id {
			continue
		}
		switch v := tx.(type) {
		case Expense:
			if v.OnCard() {
				if card := l.Card(v.CardID); card != nil {
					charge := v.Amount
					if v.Plan != nil {
						charge = v.Plan.TotalPayable()
					}
					card.Balance = card.Balance.Sub(charge)
				}
			}
		case CardPayment:
			if card := l.Card(v.CardID); card != nil {
				card.Balance = card.Balance.Add(v.Amount)
			}
		}
		l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: transaction %q not in ledger", ErrInvalidReference, id)
}

// OldestTransactionDate returns the date of the earliest transaction in the ledger.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction in the ledger.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}
