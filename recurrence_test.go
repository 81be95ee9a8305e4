package ledger

import "testing"

func TestMaterializeRecurrences(t *testing.T) {
	l := newTestLedger(t)
	err := l.AddRecurrence(Recurrence{
		ID: "salary", Kind: KindIncome, Description: "monthly salary",
		Amount: M(4500), Day: 28, Category: "work", Active: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Before the configured day nothing happens.
	if got := l.MaterializeRecurrences(MustParse("2026-03-15")); len(got) != 0 {
		t.Fatalf("materialized %d transactions before the day, want 0", len(got))
	}

	created := l.MaterializeRecurrences(MustParse("2026-03-28"))
	if len(created) != 1 {
		t.Fatalf("materialized %d transactions, want 1", len(created))
	}
	in, ok := created[0].(Income)
	if !ok {
		t.Fatalf("materialized a %T, want Income", created[0])
	}
	if in.ID != "salary-202603" {
		t.Errorf("id = %q, want salary-202603", in.ID)
	}
	if in.Date != MustParse("2026-03-28") {
		t.Errorf("date = %s, want 2026-03-28", in.Date)
	}
	if !in.Recurring || in.RecurrenceID != "salary" {
		t.Errorf("recurrence back-reference missing: %+v", in)
	}

	// At most once per calendar month, even later in the month.
	if got := l.MaterializeRecurrences(MustParse("2026-03-31")); len(got) != 0 {
		t.Errorf("materialized %d transactions twice in a month, want 0", len(got))
	}

	// The next month produces the next occurrence.
	if got := l.MaterializeRecurrences(MustParse("2026-04-28")); len(got) != 1 {
		t.Errorf("materialized %d transactions next month, want 1", len(got))
	}
}

func TestMaterializeRecurrences_DayClampedToShortMonth(t *testing.T) {
	l := newTestLedger(t)
	if err := l.AddRecurrence(Recurrence{
		ID: "rent", Kind: KindExpense, Description: "rent",
		Amount: M(1200), Day: 31, Category: "home", Active: true,
	}); err != nil {
		t.Fatal(err)
	}

	created := l.MaterializeRecurrences(MustParse("2026-04-30"))
	if len(created) != 1 {
		t.Fatalf("materialized %d transactions, want 1", len(created))
	}
	if got := created[0].When(); got != MustParse("2026-04-30") {
		t.Errorf("date = %s, want 2026-04-30 (clamped)", got)
	}
}

func TestMaterializeRecurrences_InactiveSkipped(t *testing.T) {
	l := newTestLedger(t)
	if err := l.AddRecurrence(Recurrence{
		ID: "gym", Kind: KindExpense, Description: "gym",
		Amount: M(120), Day: 1, Active: false,
	}); err != nil {
		t.Fatal(err)
	}
	if got := l.MaterializeRecurrences(MustParse("2026-03-15")); len(got) != 0 {
		t.Errorf("materialized %d transactions from an inactive recurrence, want 0", len(got))
	}
}

func TestMaterializeRecurrences_CardExpense(t *testing.T) {
	l := newTestLedger(t, newTestCard("visa", 10000))
	if err := l.AddRecurrence(Recurrence{
		ID: "netflix", Kind: KindExpense, Description: "streaming",
		Amount: M(45), Day: 10, Category: "leisure", CardID: "visa", Active: true,
	}); err != nil {
		t.Fatal(err)
	}
	created := l.MaterializeRecurrences(MustParse("2026-03-10"))
	if len(created) != 1 {
		t.Fatalf("materialized %d transactions, want 1", len(created))
	}
	e, ok := created[0].(Expense)
	if !ok || e.CardID != "visa" {
		t.Errorf("materialized %+v, want an expense on card visa", created[0])
	}

	// The materialized charge counts against the card like any purchase.
	if got := l.Card("visa").Balance; !got.Equal(M(45)) {
		t.Errorf("card balance = %s, want 45.00", got)
	}
	if got := l.TotalCardDebt(); !got.Equal(M(45)) {
		t.Errorf("TotalCardDebt = %s, want 45.00", got)
	}

	// A second pass in the same month must not charge the card again.
	if again := l.MaterializeRecurrences(MustParse("2026-03-20")); len(again) != 0 {
		t.Fatalf("materialized %d transactions on the second pass, want 0", len(again))
	}
	if got := l.Card("visa").Balance; !got.Equal(M(45)) {
		t.Errorf("card balance after second pass = %s, want 45.00", got)
	}

	// Deleting the materialized expense releases the charge.
	if err := l.DeleteTransaction(e.Ref()); err != nil {
		t.Fatal(err)
	}
	if got := l.Card("visa").Balance; !got.IsZero() {
		t.Errorf("card balance after deletion = %s, want zero", got)
	}
}

func TestAddRecurrence_Rejects(t *testing.T) {
	l := newTestLedger(t)
	bad := []Recurrence{
		{ID: "", Kind: KindIncome, Amount: M(10), Day: 1},
		{ID: "r", Kind: KindCardPayment, Amount: M(10), Day: 1},
		{ID: "r", Kind: KindIncome, Amount: M(0), Day: 1},
		{ID: "r", Kind: KindIncome, Amount: M(10), Day: 32},
		{ID: "r", Kind: KindExpense, Amount: M(10), Day: 1, CardID: "ghost"},
	}
	for i, r := range bad {
		if err := l.AddRecurrence(r); err == nil {
			t.Errorf("recurrence %d accepted: %+v", i, r)
		}
	}
}
