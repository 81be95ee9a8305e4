package ledger

import "errors"

// Engine error taxonomy. Every mutation either fully applies or returns one
// of these (wrapped with context) and leaves the ledger untouched.
var (
	// ErrCreditLimit reports that a purchase or installment plan would exceed
	// the card's remaining headroom.
	ErrCreditLimit = errors.New("credit limit exceeded")

	// ErrInsufficientFunds reports that a payment exceeds the caller-supplied
	// available-cash ceiling.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOverAllocation reports an attempt to retire more installment value
	// than remains on a plan.
	ErrOverAllocation = errors.New("amount exceeds remaining installment balance")

	// ErrInvalidReference reports an operation that targets a card,
	// transaction or recurrence id not present in the ledger.
	ErrInvalidReference = errors.New("invalid reference")
)
