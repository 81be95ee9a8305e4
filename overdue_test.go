package ledger

import "testing"

func TestMarkOverdue(t *testing.T) {
	purchase := MustParse("2026-01-10")
	l := newTestLedger(t, newTestCard("visa", 10000))
	e := NewCardExpense("tv", purchase, M(600), "television", "home", "visa")
	mustBuy(t, l, e, 4, purchase)
	// Due dates: 03-05, 04-05, 05-05, 06-05.

	if got := MarkOverdue(l, MustParse("2026-03-05")); got != 0 {
		t.Errorf("nothing due before 2026-03-05, marked %d", got)
	}

	if got := MarkOverdue(l, MustParse("2026-04-10")); got != 2 {
		t.Errorf("marked %d entries overdue, want 2", got)
	}
	plan := l.Transaction("tv").(Expense).Plan
	wantStates := []InstallmentState{Overdue, Overdue, Pending, Pending}
	for i, want := range wantStates {
		if got := plan.Schedule[i].State; got != want {
			t.Errorf("entry %d state = %s, want %s", i+1, got, want)
		}
	}

	// Idempotent: a second run on the same day changes nothing.
	if got := MarkOverdue(l, MustParse("2026-04-10")); got != 0 {
		t.Errorf("second run marked %d entries, want 0", got)
	}

	// Overdue entries stay payable and keep their amounts.
	if !plan.RemainingBalance().Equal(M(600)) {
		t.Errorf("RemainingBalance = %s, want 600.00", plan.RemainingBalance())
	}
}

func TestMarkOverdue_PartialEntry(t *testing.T) {
	purchase := MustParse("2026-01-10")
	l := newTestLedger(t, newTestCard("visa", 10000))
	mustBuy(t, l, NewCardExpense("tv", purchase, M(600), "television", "home", "visa"), 4, purchase)

	// An advance leaves the first entry partial; it lapses into overdue
	// without losing the partial credit.
	if _, err := l.AdvancePay("adv", "tv", M(20), M(1000), MustParse("2026-02-01")); err != nil {
		t.Fatal(err)
	}
	plan := l.Transaction("tv").(Expense).Plan
	if plan.Schedule[0].State != Partial {
		t.Fatalf("entry 1 state = %s, want partial", plan.Schedule[0].State)
	}

	if got := MarkOverdue(l, MustParse("2026-03-10")); got != 1 {
		t.Errorf("marked %d entries, want 1", got)
	}
	if plan.Schedule[0].State != Overdue {
		t.Errorf("entry 1 state = %s, want overdue", plan.Schedule[0].State)
	}
	if !plan.Schedule[0].RemainingDue.Equal(M(130)) {
		t.Errorf("entry 1 remaining = %s, want 130.00", plan.Schedule[0].RemainingDue)
	}
	if !plan.RemainingBalance().Equal(M(580)) {
		t.Errorf("RemainingBalance = %s, want 580.00", plan.RemainingBalance())
	}
}
