package ledger

import (
	"testing"
)

func TestNewInstallmentPlan_NoInterest(t *testing.T) {
	today := MustParse("2026-01-10")
	plan, err := NewInstallmentPlan(M(1200), 12, today, 15, 5, newDecimal(0), today)
	if err != nil {
		t.Fatal(err)
	}

	if !plan.PerInstallment.Equal(M(100)) {
		t.Errorf("PerInstallment = %s, want 100.00", plan.PerInstallment)
	}
	if plan.Total != 12 || plan.Paid != 0 || plan.Remaining != 12 {
		t.Errorf("counters = %d/%d/%d, want 12/0/12", plan.Total, plan.Paid, plan.Remaining)
	}
	if !plan.Interest.IsZero() {
		t.Errorf("Interest = %s, want zero", plan.Interest)
	}
	if !plan.TotalPayable().Equal(M(1200)) {
		t.Errorf("TotalPayable = %s, want 1200.00", plan.TotalPayable())
	}
	if len(plan.Schedule) != 12 {
		t.Fatalf("schedule has %d entries, want 12", len(plan.Schedule))
	}
	for i, e := range plan.Schedule {
		if e.Number != i+1 {
			t.Errorf("entry %d numbered %d", i, e.Number)
		}
		if e.State != Pending {
			t.Errorf("entry %d state = %s, want pending", i, e.State)
		}
	}
	// First charge is one month after the purchase: 2026-02-10 closes on
	// 2026-02-15 and falls due on 2026-03-05.
	if got := plan.Schedule[0].Due; got != MustParse("2026-03-05") {
		t.Errorf("first due date = %s, want 2026-03-05", got)
	}
	if got := plan.Schedule[11].Due; got != MustParse("2027-02-05") {
		t.Errorf("last due date = %s, want 2027-02-05", got)
	}
}

func TestNewInstallmentPlan_MonthEndPurchase(t *testing.T) {
	// A purchase on a month's last day must keep one due date per calendar
	// month: the charge day clamps in short months instead of overflowing
	// into the next cycle.
	today := MustParse("2026-01-31")
	plan, err := NewInstallmentPlan(M(600), 4, today, 2, 10, newDecimal(0), today)
	if err != nil {
		t.Fatal(err)
	}

	want := []Date{
		MustParse("2026-04-10"),
		MustParse("2026-05-10"),
		MustParse("2026-06-10"),
		MustParse("2026-07-10"),
	}
	for i, e := range plan.Schedule {
		if e.Due != want[i] {
			t.Errorf("installment %d due %s, want %s", e.Number, e.Due, want[i])
		}
	}
	seen := map[string]int{}
	for i, e := range plan.Schedule {
		if i > 0 && !e.Due.After(plan.Schedule[i-1].Due) {
			t.Errorf("due dates not strictly increasing: %s then %s", plan.Schedule[i-1].Due, e.Due)
		}
		seen[e.Due.Format("2006-01")]++
	}
	for month, n := range seen {
		if n != 1 {
			t.Errorf("%d due dates in month %s, want exactly one", n, month)
		}
	}
}

func TestNewInstallmentPlan_LastAbsorbsRemainder(t *testing.T) {
	today := MustParse("2026-01-10")
	plan, err := NewInstallmentPlan(M(1000), 3, today, 15, 5, newDecimal(0), today)
	if err != nil {
		t.Fatal(err)
	}
	if !plan.PerInstallment.Equal(M("333.33")) {
		t.Errorf("PerInstallment = %s, want 333.33", plan.PerInstallment)
	}
	if got := plan.Schedule[2].Amount; !got.Equal(M("333.34")) {
		t.Errorf("last installment = %s, want 333.34", got)
	}
	if !plan.TotalPayable().Equal(M(1000)) {
		t.Errorf("TotalPayable = %s, want exactly the principal", plan.TotalPayable())
	}
}

func TestNewInstallmentPlan_WithInterest(t *testing.T) {
	today := MustParse("2026-01-10")
	tea := newDecimal("0.30")
	plan, err := NewInstallmentPlan(M(1200), 12, today, 15, 5, tea, today)
	if err != nil {
		t.Fatal(err)
	}

	// TEA 30% is a monthly rate of (1.30)^(1/12)-1 ≈ 2.2104%; the standard
	// amortization of 1200 over 12 payments comes to 114.94.
	if !plan.PerInstallment.Equal(M("114.94")) {
		t.Errorf("PerInstallment = %s, want 114.94", plan.PerInstallment)
	}
	wantInterest := plan.PerInstallment.MulInt(12).Sub(M(1200))
	if !plan.Interest.Equal(wantInterest) {
		t.Errorf("Interest = %s, want %s", plan.Interest, wantInterest)
	}
	if !plan.Interest.IsPositive() {
		t.Errorf("Interest = %s, want positive", plan.Interest)
	}
	if !plan.AnnualRate.Equal(Percent(30)) {
		t.Errorf("AnnualRate = %s, want 30%%", plan.AnnualRate)
	}
	// Every installment carries the fixed payment, the last included.
	for i, e := range plan.Schedule {
		if !e.Amount.Equal(plan.PerInstallment) {
			t.Errorf("entry %d amount = %s, want %s", i, e.Amount, plan.PerInstallment)
		}
	}
	if got, want := plan.TotalPayable(), M(1200).Add(plan.Interest); !got.Equal(want) {
		t.Errorf("TotalPayable = %s, want %s", got, want)
	}
}

func TestNewInstallmentPlan_Rejects(t *testing.T) {
	today := MustParse("2026-01-10")
	if _, err := NewInstallmentPlan(M(1200), 0, today, 15, 5, newDecimal(0), today); err == nil {
		t.Error("zero installments accepted")
	}
	if _, err := NewInstallmentPlan(M(0), 12, today, 15, 5, newDecimal(0), today); err == nil {
		t.Error("zero principal accepted")
	}
	if _, err := NewInstallmentPlan(M(1200), 12, today, 15, 5, newDecimal(-1), today); err == nil {
		t.Error("negative rate accepted")
	}
}

func TestInstallmentPlan_RemainingBalance(t *testing.T) {
	today := MustParse("2026-01-10")
	plan, err := NewInstallmentPlan(M(600), 4, today, 15, 5, newDecimal(0), today)
	if err != nil {
		t.Fatal(err)
	}
	if !plan.RemainingBalance().Equal(M(600)) {
		t.Errorf("RemainingBalance = %s, want 600.00", plan.RemainingBalance())
	}

	settleEntry(plan, 0)
	if !plan.RemainingBalance().Equal(M(450)) {
		t.Errorf("RemainingBalance after one paid = %s, want 450.00", plan.RemainingBalance())
	}

	plan.Schedule[1].State = Partial
	plan.Schedule[1].PartialPaid = M(50)
	plan.Schedule[1].RemainingDue = M(100)
	if !plan.RemainingBalance().Equal(M(400)) {
		t.Errorf("RemainingBalance with partial = %s, want 400.00", plan.RemainingBalance())
	}

	// A partial entry lapsing into overdue keeps its partial credit.
	plan.Schedule[1].State = Overdue
	if !plan.RemainingBalance().Equal(M(400)) {
		t.Errorf("RemainingBalance with overdue partial = %s, want 400.00", plan.RemainingBalance())
	}
}
