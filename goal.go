package ledger

import (
	"errors"
	"fmt"
)

// Goal is a savings target. Goals are read by the aggregate calculations
// (reserved amounts reduce what is affordable) but drive no schedule of
// their own.
type Goal struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Target   Money  `json:"target"`
	Saved    Money  `json:"saved"`
	Start    Date   `json:"start"`
	Deadline Date   `json:"deadline,omitempty"`
	Active   bool   `json:"active"`
}

// Progress returns the saved amount as a share of the target.
func (g *Goal) Progress() Percent {
	if g.Target.IsZero() {
		return 0
	}
	ratio, _ := g.Saved.Decimal().Div(g.Target.Decimal()).Mul(newDecimal(100)).Float64()
	return Percent(ratio)
}

// Validate checks the goal's own fields.
func (g *Goal) Validate() error {
	if g.ID == "" {
		return errors.New("goal id is missing")
	}
	if g.Name == "" {
		return errors.New("goal name is missing")
	}
	if !g.Target.IsPositive() {
		return fmt.Errorf("goal target must be positive, got %s", g.Target)
	}
	if g.Saved.IsNegative() {
		return fmt.Errorf("goal saved amount must not be negative, got %s", g.Saved)
	}
	return nil
}

func (g Goal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", g.ID)
	w.Append("name", g.Name)
	w.Optional("category", g.Category)
	w.Append("target", g.Target)
	w.Append("saved", g.Saved)
	w.Append("start", g.Start)
	if !g.Deadline.IsZero() {
		w.Append("deadline", g.Deadline)
	}
	w.Append("active", g.Active)
	return w.MarshalJSON()
}
