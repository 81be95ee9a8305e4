package ledger

import (
	"errors"
	"fmt"
)

// Card is a credit card whose charges are billed through a closing/payment
// day-of-month pair. Balance is the sum of unpaid principal charged to it.
type Card struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Issuer     string `json:"issuer,omitempty"`
	Limit      Money  `json:"limit"`
	Balance    Money  `json:"balance"`
	ClosingDay int    `json:"closingDay"`
	PaymentDay int    `json:"paymentDay"`
}

// Headroom returns the remaining credit available on the card.
func (c *Card) Headroom() Money { return c.Limit.Sub(c.Balance) }

// Utilization returns the balance as a share of the limit.
func (c *Card) Utilization() Percent {
	if c.Limit.IsZero() {
		return 0
	}
	ratio, _ := c.Balance.Decimal().Div(c.Limit.Decimal()).Mul(newDecimal(100)).Float64()
	return Percent(ratio)
}

// Validate checks the card's own fields, not its relations to the ledger.
func (c *Card) Validate() error {
	if c.ID == "" {
		return errors.New("card id is missing")
	}
	if c.Name == "" {
		return errors.New("card name is missing")
	}
	if c.Limit.IsNegative() || c.Limit.IsZero() {
		return fmt.Errorf("card limit must be positive, got %s", c.Limit)
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return fmt.Errorf("card closing day must be in 1..31, got %d", c.ClosingDay)
	}
	if c.PaymentDay < 1 || c.PaymentDay > 31 {
		return fmt.Errorf("card payment day must be in 1..31, got %d", c.PaymentDay)
	}
	return nil
}

func (c Card) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", c.ID)
	w.Append("name", c.Name)
	w.Optional("issuer", c.Issuer)
	w.Append("limit", c.Limit)
	w.Append("balance", c.Balance)
	w.Append("closingDay", c.ClosingDay)
	w.Append("paymentDay", c.PaymentDay)
	return w.MarshalJSON()
}
