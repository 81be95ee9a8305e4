package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is a typed string identifying a transaction variant.
type Kind string

const (
	KindIncome      Kind = "income"
	KindExpense     Kind = "expense"
	KindCardPayment Kind = "card-payment"
)

// PaymentType distinguishes the two card payment entry points.
type PaymentType string

const (
	RegularPayment PaymentType = "regular"
	AdvancePayment PaymentType = "advance"
)

// Transaction is the closed set of ledger entries: Income, Expense and
// CardPayment. Amounts are always positive; the kind carries the sign.
type Transaction interface {
	What() Kind   // What returns the kind of the transaction.
	When() Date   // When returns the calendar day of the transaction.
	Ref() string  // Ref returns the transaction identifier.
	Value() Money // Value returns the (positive) amount.
	Equal(Transaction) bool
	Validate(l *Ledger) (Transaction, error)
}

type baseTx struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Date        Date   `json:"date"`
	Amount      Money  `json:"amount"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (t baseTx) What() Kind   { return t.Kind }
func (t baseTx) When() Date   { return t.Date }
func (t baseTx) Ref() string  { return t.ID }
func (t baseTx) Value() Money { return t.Amount }

// MarshalJSON implements the json.Marshaler interface for baseTx.
func (t baseTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("kind", t.Kind)
	w.Append("date", t.Date)
	w.Append("amount", t.Amount)
	w.Optional("description", t.Description)
	w.Optional("category", t.Category)
	return w.MarshalJSON()
}

// equal compares field by field: Money is not comparable with ==.
func (t baseTx) equal(o baseTx) bool {
	return t.ID == o.ID && t.Kind == o.Kind && t.Date == o.Date &&
		t.Amount.Equal(o.Amount) && t.Description == o.Description && t.Category == o.Category
}

// Validate checks the base fields shared by all kinds. It sets the date to
// today when it is zero.
func (t *baseTx) validate() error {
	if t.ID == "" {
		return errors.New("transaction id is missing")
	}
	if t.Date.IsZero() {
		t.Date = Today()
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be positive, got %s", t.Amount)
	}
	return nil
}

// recurringTx is a component for transactions that can be materialized from a
// recurrence. RecurrenceID is a non-owning back-reference.
type recurringTx struct {
	Recurring    bool   `json:"recurring,omitempty"`
	RecurrenceID string `json:"recurrenceId,omitempty"`
}

func (t recurringTx) validate(l *Ledger) error {
	if !t.Recurring && t.RecurrenceID != "" {
		return errors.New("recurrenceId set on a non-recurring transaction")
	}
	if t.Recurring && l.Recurrence(t.RecurrenceID) == nil {
		return fmt.Errorf("%w: recurrence %q not in ledger", ErrInvalidReference, t.RecurrenceID)
	}
	return nil
}

// Income represents cash coming in.
type Income struct {
	baseTx
	recurringTx
}

// NewIncome creates an Income transaction.
func NewIncome(id string, day Date, amount Money, description, category string) Income {
	return Income{baseTx: baseTx{ID: id, Kind: KindIncome, Date: day, Amount: amount, Description: description, Category: category}}
}

func (t Income) Equal(other Transaction) bool {
	o, ok := other.(Income)
	return ok && t.baseTx.equal(o.baseTx) && t.recurringTx == o.recurringTx
}

func (t Income) Validate(l *Ledger) (Transaction, error) {
	if err := t.baseTx.validate(); err != nil {
		return t, err
	}
	if err := t.recurringTx.validate(l); err != nil {
		return t, err
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for Income.
func (t Income) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Optional("recurring", t.Recurring)
	w.Optional("recurrenceId", t.RecurrenceID)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Income.
func (t *Income) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseTx
		recurringTx
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseTx = temp.baseTx
	t.recurringTx = temp.recurringTx
	return nil
}

// Expense represents money going out, in cash or charged to a card. A card
// expense may carry an installment plan; it is not a cash outflow until paid.
type Expense struct {
	baseTx
	recurringTx
	CardID     string           `json:"cardId,omitempty"` // empty means paid in cash
	Investment bool             `json:"investment,omitempty"`
	Plan       *InstallmentPlan `json:"plan,omitempty"`
}

// NewExpense creates a cash Expense transaction.
func NewExpense(id string, day Date, amount Money, description, category string) Expense {
	return Expense{baseTx: baseTx{ID: id, Kind: KindExpense, Date: day, Amount: amount, Description: description, Category: category}}
}

// NewCardExpense creates an Expense charged to a card, without installments.
func NewCardExpense(id string, day Date, amount Money, description, category, cardID string) Expense {
	e := NewExpense(id, day, amount, description, category)
	e.CardID = cardID
	return e
}

// OnCard reports whether the expense is charged to a card.
func (t Expense) OnCard() bool { return t.CardID != "" }

func (t Expense) Equal(other Transaction) bool {
	o, ok := other.(Expense)
	if !ok || !t.baseTx.equal(o.baseTx) || t.recurringTx != o.recurringTx {
		return false
	}
	if t.CardID != o.CardID || t.Investment != o.Investment {
		return false
	}
	return (t.Plan == nil) == (o.Plan == nil)
}

func (t Expense) Validate(l *Ledger) (Transaction, error) {
	if err := t.baseTx.validate(); err != nil {
		return t, err
	}
	if err := t.recurringTx.validate(l); err != nil {
		return t, err
	}
	if t.Plan != nil && t.CardID == "" {
		return t, errors.New("installment plan requires a card")
	}
	if t.CardID != "" && l.Card(t.CardID) == nil {
		return t, fmt.Errorf("%w: card %q not in ledger", ErrInvalidReference, t.CardID)
	}
	if t.Plan != nil {
		if t.Plan.Paid+t.Plan.Remaining != t.Plan.Total || len(t.Plan.Schedule) != t.Plan.Total {
			return t, fmt.Errorf("inconsistent installment plan on %q", t.ID)
		}
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for Expense.
func (t Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Optional("recurring", t.Recurring)
	w.Optional("recurrenceId", t.RecurrenceID)
	w.Optional("cardId", t.CardID)
	w.Optional("investment", t.Investment)
	if t.Plan != nil {
		w.Append("plan", t.Plan)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Expense.
func (t *Expense) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseTx
		recurringTx
		CardID     string           `json:"cardId"`
		Investment bool             `json:"investment"`
		Plan       *InstallmentPlan `json:"plan"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseTx = temp.baseTx
	t.recurringTx = temp.recurringTx
	t.CardID = temp.CardID
	t.Investment = temp.Investment
	t.Plan = temp.Plan
	return nil
}

// CardPayment represents cash leaving to pay down a card. A regular payment
// settles whole installments across the card's plans; an advance payment
// targets one plan and may leave a partial remainder.
type CardPayment struct {
	baseTx
	CardID  string      `json:"cardId"`
	Type    PaymentType `json:"paymentType"`
	Settled []string    `json:"settled,omitempty"` // descriptions of the installments resolved

	// Advance payment provenance.
	OriginalTxID string `json:"originalTransactionId,omitempty"`
	Covered      int    `json:"installmentsCovered,omitempty"`
	PartialPaid  Money  `json:"partialAmount,omitempty"`
}

// NewCardPayment creates a regular CardPayment transaction.
func NewCardPayment(id string, day Date, amount Money, cardID string) CardPayment {
	return CardPayment{
		baseTx: baseTx{ID: id, Kind: KindCardPayment, Date: day, Amount: amount, Description: "card payment"},
		CardID: cardID,
		Type:   RegularPayment,
	}
}

func (t CardPayment) Equal(other Transaction) bool {
	o, ok := other.(CardPayment)
	if !ok || !t.baseTx.equal(o.baseTx) {
		return false
	}
	return t.CardID == o.CardID && t.Type == o.Type &&
		t.OriginalTxID == o.OriginalTxID && t.Covered == o.Covered &&
		t.PartialPaid.Equal(o.PartialPaid)
}

func (t CardPayment) Validate(l *Ledger) (Transaction, error) {
	if err := t.baseTx.validate(); err != nil {
		return t, err
	}
	if l.Card(t.CardID) == nil {
		return t, fmt.Errorf("%w: card %q not in ledger", ErrInvalidReference, t.CardID)
	}
	switch t.Type {
	case RegularPayment:
		if t.OriginalTxID != "" {
			return t, errors.New("regular payment must not reference an original transaction")
		}
	case AdvancePayment:
		if l.Transaction(t.OriginalTxID) == nil {
			return t, fmt.Errorf("%w: transaction %q not in ledger", ErrInvalidReference, t.OriginalTxID)
		}
	default:
		return t, fmt.Errorf("unknown payment type %q", t.Type)
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for CardPayment.
func (t CardPayment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Append("cardId", t.CardID)
	w.Append("paymentType", t.Type)
	w.Optional("settled", t.Settled)
	w.Optional("originalTransactionId", t.OriginalTxID)
	w.Optional("installmentsCovered", t.Covered)
	if !t.PartialPaid.IsZero() {
		w.Append("partialAmount", t.PartialPaid)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for CardPayment.
func (t *CardPayment) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseTx
		CardID       string      `json:"cardId"`
		Type         PaymentType `json:"paymentType"`
		Settled      []string    `json:"settled"`
		OriginalTxID string      `json:"originalTransactionId"`
		Covered      int         `json:"installmentsCovered"`
		PartialPaid  Money       `json:"partialAmount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseTx = temp.baseTx
	t.CardID = temp.CardID
	t.Type = temp.Type
	t.Settled = temp.Settled
	t.OriginalTxID = temp.OriginalTxID
	t.Covered = temp.Covered
	t.PartialPaid = temp.PartialPaid
	return nil
}
