package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentState is the lifecycle state of a single schedule entry.
type InstallmentState string

const (
	Pending InstallmentState = "pending"
	Partial InstallmentState = "partial"
	Paid    InstallmentState = "paid"
	Overdue InstallmentState = "overdue"
)

// Payable reports whether the entry still carries debt.
func (s InstallmentState) Payable() bool { return s == Pending || s == Partial || s == Overdue }

// InstallmentEntry is one scheduled payment of an installment plan.
// PartialPaid and RemainingDue are meaningful only in the Partial state.
type InstallmentEntry struct {
	Number       int              `json:"number"`
	Due          Date             `json:"due"`
	State        InstallmentState `json:"state"`
	Amount       Money            `json:"amount"`
	PartialPaid  Money            `json:"partialPaid,omitempty"`
	RemainingDue Money            `json:"remainingDue,omitempty"`
}

func (e InstallmentEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("number", e.Number)
	w.Append("due", e.Due)
	w.Append("state", e.State)
	w.Append("amount", e.Amount)
	if e.State == Partial {
		w.Append("partialPaid", e.PartialPaid)
		w.Append("remainingDue", e.RemainingDue)
	}
	return w.MarshalJSON()
}

// AdvanceEvent is an audit record of a targeted advance payment against a plan.
type AdvanceEvent struct {
	Date    Date  `json:"date"`
	Amount  Money `json:"amount"`
	Covered int   `json:"covered"`
	Partial Money `json:"partial,omitempty"`
}

// InstallmentPlan amortizes one purchase into N fixed future payments billed
// through a card's cycle.
//
// Invariants: Paid+Remaining == Total and len(Schedule) == Total. At most one
// entry is in the Partial state at a time.
type InstallmentPlan struct {
	Total          int                `json:"total"`
	PerInstallment Money              `json:"perInstallment"`
	Paid           int                `json:"paid"`
	Remaining      int                `json:"remaining"`
	Interest       Money              `json:"interest,omitempty"`
	AnnualRate     Percent            `json:"annualRate,omitempty"`
	Schedule       []InstallmentEntry `json:"schedule"`
	AdvanceLog     []AdvanceEvent     `json:"advanceLog,omitempty"`
}

// TotalPayable is the full amount the plan will collect: principal plus interest.
func (p *InstallmentPlan) TotalPayable() Money {
	var sum Money
	for _, e := range p.Schedule {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// RemainingBalance is the unpaid value still scheduled on the plan.
func (p *InstallmentPlan) RemainingBalance() Money {
	var sum Money
	for _, e := range p.Schedule {
		switch e.State {
		case Pending:
			sum = sum.Add(e.Amount)
		case Partial:
			sum = sum.Add(e.RemainingDue)
		case Overdue:
			// An overdue entry may have been partial before it lapsed.
			if !e.RemainingDue.IsZero() {
				sum = sum.Add(e.RemainingDue)
			} else {
				sum = sum.Add(e.Amount)
			}
		}
	}
	return sum
}

// nextPayable returns the index of the first entry that still carries debt, or -1.
func (p *InstallmentPlan) nextPayable() int {
	for i := range p.Schedule {
		if p.Schedule[i].State.Payable() {
			return i
		}
	}
	return -1
}

// monthlyRate converts an annual effective rate (TEA) to the equivalent
// monthly rate: (1+TEA)^(1/12) - 1.
func monthlyRate(tea decimal.Decimal) decimal.Decimal {
	base := decimal.NewFromInt(1).Add(tea)
	twelfth := decimal.NewFromInt(1).Div(decimal.NewFromInt(12))
	root, err := base.PowWithPrecision(twelfth, 16)
	if err != nil {
		panic(fmt.Sprintf("monthly rate for TEA %s: %v", tea, err))
	}
	return root.Sub(decimal.NewFromInt(1))
}

// amortizedPayment computes the fixed payment of a standard amortization:
// principal × i / (1 - (1+i)^-N), rounded to 2 decimal places.
func amortizedPayment(principal Money, i decimal.Decimal, n int) Money {
	one := decimal.NewFromInt(1)
	compound, err := one.Add(i).PowInt32(int32(n))
	if err != nil {
		panic(fmt.Sprintf("compound factor for %d installments: %v", n, err))
	}
	denom := one.Sub(one.Div(compound))
	return Money{value: principal.Decimal().Mul(i).Div(denom)}.Round()
}

// NewInstallmentPlan decomposes a purchase of the given principal into n
// installments billed through the card's cycle starting one month after the
// purchase date.
//
// Without interest (tea zero) each installment is principal/n rounded to 2
// decimals, and the last entry absorbs the rounding remainder so the schedule
// sums to the principal exactly. With interest the fixed payment follows the
// standard amortization formula on the monthly equivalent of the annual
// effective rate, and the total payable is payment × n.
func NewInstallmentPlan(principal Money, n int, purchase Date, closingDay, paymentDay int, tea decimal.Decimal, today Date) (*InstallmentPlan, error) {
	if n < 1 {
		return nil, fmt.Errorf("installment count must be at least 1, got %d", n)
	}
	if !principal.IsPositive() {
		return nil, fmt.Errorf("installment principal must be positive, got %s", principal)
	}
	if tea.IsNegative() {
		return nil, fmt.Errorf("annual rate must not be negative, got %s", tea)
	}

	plan := &InstallmentPlan{Total: n, Remaining: n}

	var last Money
	if tea.IsZero() {
		plan.PerInstallment = principal.DivInt(n).Round()
		// The last entry absorbs the division remainder.
		last = principal.Sub(plan.PerInstallment.MulInt(n - 1))
	} else {
		plan.PerInstallment = amortizedPayment(principal, monthlyRate(tea), n)
		last = plan.PerInstallment
		plan.Interest = plan.PerInstallment.MulInt(n).Sub(principal)
		rate, _ := tea.Mul(newDecimal(100)).Float64()
		plan.AnnualRate = Percent(rate)
	}

	plan.Schedule = make([]InstallmentEntry, 0, n)
	for k := 1; k <= n; k++ {
		amount := plan.PerInstallment
		if k == n {
			amount = last
		}
		// The k-th charge keeps the purchase's day-of-month, clamped to
		// shorter months so a month-end purchase never slips a cycle.
		charge := clampedDate(purchase.Year(), purchase.Month()+time.Month(k), purchase.Day())
		plan.Schedule = append(plan.Schedule, InstallmentEntry{
			Number: k,
			Due:    DueDate(charge, closingDay, paymentDay, today),
			State:  Pending,
			Amount: amount,
		})
	}
	return plan, nil
}
