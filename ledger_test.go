package ledger

import (
	"errors"
	"testing"
)

func TestLedger_AddCard(t *testing.T) {
	l := NewLedger()
	if err := l.AddCard(newTestCard("visa", 5000)); err != nil {
		t.Fatal(err)
	}
	if err := l.AddCard(newTestCard("visa", 5000)); err == nil {
		t.Error("duplicate card id accepted")
	}
	if c := l.Card("visa"); c == nil || c.Name != "Visa visa" {
		t.Errorf("Card(visa) = %+v", c)
	}

	bad := []Card{
		{ID: "", Name: "n", Limit: M(100), ClosingDay: 1, PaymentDay: 1},
		{ID: "c", Name: "", Limit: M(100), ClosingDay: 1, PaymentDay: 1},
		{ID: "c", Name: "n", Limit: M(0), ClosingDay: 1, PaymentDay: 1},
		{ID: "c", Name: "n", Limit: M(100), ClosingDay: 0, PaymentDay: 1},
		{ID: "c", Name: "n", Limit: M(100), ClosingDay: 1, PaymentDay: 32},
	}
	for i, c := range bad {
		if err := l.AddCard(c); err == nil {
			t.Errorf("card %d accepted: %+v", i, c)
		}
	}
}

func TestLedger_AddPurchase_CreditLimit(t *testing.T) {
	l := newTestLedger(t, newTestCard("visa", 500))

	err := l.AddPurchase(NewCardExpense("big", MustParse("2026-03-01"), M(600), "tv", "home", "visa"))
	if !errors.Is(err, ErrCreditLimit) {
		t.Fatalf("err = %v, want ErrCreditLimit", err)
	}
	// Rejected all-or-nothing: no transaction, no balance change.
	if l.Transaction("big") != nil {
		t.Error("rejected purchase was recorded")
	}
	if got := l.Card("visa").Balance; !got.IsZero() {
		t.Errorf("balance = %s, want zero", got)
	}

	if err := l.AddPurchase(NewCardExpense("ok", MustParse("2026-03-01"), M(500), "tv", "home", "visa")); err != nil {
		t.Fatal(err)
	}
	if got := l.Card("visa").Headroom(); !got.IsZero() {
		t.Errorf("headroom = %s, want zero", got)
	}
}

func TestLedger_BuyInInstallments_ChecksTotalPayable(t *testing.T) {
	// With interest the card collects more than the principal; headroom is
	// checked against the total payable, not the sticker price.
	l := newTestLedger(t, newTestCard("visa", 1210))
	e := NewCardExpense("tv", MustParse("2026-01-10"), M(1200), "tv", "home", "visa")
	err := l.BuyInInstallments(e, 12, newDecimal("0.30"), MustParse("2026-01-10"))
	if !errors.Is(err, ErrCreditLimit) {
		t.Fatalf("err = %v, want ErrCreditLimit", err)
	}

	l2 := newTestLedger(t, newTestCard("visa", 2000))
	if err := l2.BuyInInstallments(e, 12, newDecimal("0.30"), MustParse("2026-01-10")); err != nil {
		t.Fatal(err)
	}
	plan := l2.Transaction("tv").(Expense).Plan
	if got := l2.Card("visa").Balance; !got.Equal(plan.TotalPayable()) {
		t.Errorf("balance = %s, want the plan total %s", got, plan.TotalPayable())
	}
}

func TestLedger_DeleteCard(t *testing.T) {
	l := newTestLedger(t, newTestCard("visa", 5000))
	if err := l.AddPurchase(NewCardExpense("tv", MustParse("2026-03-01"), M(100), "tv", "home", "visa")); err != nil {
		t.Fatal(err)
	}

	if err := l.DeleteCard("visa"); err == nil {
		t.Error("card deleted while referenced by a transaction")
	}
	if err := l.DeleteTransaction("tv"); err != nil {
		t.Fatal(err)
	}
	if err := l.DeleteCard("visa"); err != nil {
		t.Errorf("DeleteCard after releasing references: %v", err)
	}
	if err := l.DeleteCard("visa"); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("deleting a deleted card: err = %v, want ErrInvalidReference", err)
	}
}

func TestLedger_DeleteCard_BlockedByRecurrence(t *testing.T) {
	l := newTestLedger(t, newTestCard("amex", 5000))
	if err := l.AddRecurrence(Recurrence{
		ID: "netflix", Kind: KindExpense, Description: "streaming",
		Amount: M(45), Day: 10, CardID: "amex", Active: true,
	}); err != nil {
		t.Fatal(err)
	}

	// A recurrence charging the card keeps it alive even before it has
	// materialized anything, active or paused.
	if err := l.DeleteCard("amex"); err == nil {
		t.Error("card deleted while referenced by a recurrence")
	}
	l.Recurrence("netflix").Active = false
	if err := l.DeleteCard("amex"); err == nil {
		t.Error("card deleted while referenced by a paused recurrence")
	}
}

func TestLedger_DeleteTransaction_ReversesBalance(t *testing.T) {
	l := newTestLedger(t, newTestCard("visa", 5000))
	purchase := MustParse("2026-01-10")
	mustBuy(t, l, NewCardExpense("tv", purchase, M(600), "tv", "home", "visa"), 4, purchase)
	if _, err := l.PayCard("pay", "visa", M(150), MustParse("2026-03-05")); err != nil {
		t.Fatal(err)
	}
	// 600 charged, 150 paid back.
	if got := l.Card("visa").Balance; !got.Equal(M(450)) {
		t.Fatalf("balance = %s, want 450.00", got)
	}

	if err := l.DeleteTransaction("pay"); err != nil {
		t.Fatal(err)
	}
	if got := l.Card("visa").Balance; !got.Equal(M(600)) {
		t.Errorf("balance after deleting payment = %s, want 600.00", got)
	}
	if err := l.DeleteTransaction("tv"); err != nil {
		t.Fatal(err)
	}
	if got := l.Card("visa").Balance; !got.IsZero() {
		t.Errorf("balance after deleting purchase = %s, want zero", got)
	}
	if err := l.DeleteTransaction("ghost"); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("err = %v, want ErrInvalidReference", err)
	}
}

func TestLedger_Append(t *testing.T) {
	l := newTestLedger(t)
	if err := l.Append(NewIncome("a", MustParse("2026-03-10"), M(100), "", "")); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(NewIncome("a", MustParse("2026-03-11"), M(100), "", "")); err == nil {
		t.Error("duplicate transaction id accepted")
	}
	if err := l.Append(NewIncome("b", MustParse("2026-03-01"), M(100), "", "")); err != nil {
		t.Fatal(err)
	}
	// Chronological order is restored on append.
	if got := l.OldestTransactionDate(); got != MustParse("2026-03-01") {
		t.Errorf("oldest = %s, want 2026-03-01", got)
	}
	if got := l.NewestTransactionDate(); got != MustParse("2026-03-10") {
		t.Errorf("newest = %s, want 2026-03-10", got)
	}
}

func TestLedger_Validate_DefaultsDateToToday(t *testing.T) {
	l := newTestLedger(t)
	tx, err := l.Validate(NewIncome("a", Date{}, M(100), "", ""))
	if err != nil {
		t.Fatal(err)
	}
	if tx.When() != Today() {
		t.Errorf("date = %s, want today", tx.When())
	}
}

func TestLedger_TransactionFilters(t *testing.T) {
	l := newTestLedger(t, newTestCard("visa", 5000))
	if err := l.Append(NewIncome("salary", MustParse("2026-03-01"), M(5000), "", "")); err != nil {
		t.Fatal(err)
	}
	if err := l.AddPurchase(NewExpense("market", MustParse("2026-03-05"), M(100), "", "food")); err != nil {
		t.Fatal(err)
	}
	if err := l.AddPurchase(NewCardExpense("shoes", MustParse("2026-03-07"), M(200), "", "clothing", "visa")); err != nil {
		t.Fatal(err)
	}

	count := func(filters ...func(Transaction) bool) int {
		n := 0
		for range l.Transactions(filters...) {
			n++
		}
		return n
	}
	if got := count(AcceptAll); got != 3 {
		t.Errorf("AcceptAll matched %d, want 3", got)
	}
	if got := count(ByKind(KindExpense)); got != 2 {
		t.Errorf("ByKind(expense) matched %d, want 2", got)
	}
	if got := count(ByCard("visa")); got != 1 {
		t.Errorf("ByCard(visa) matched %d, want 1", got)
	}
	if got := count(InRange(NewRange(MustParse("2026-03-06"), MustParse("2026-03-31")))); got != 1 {
		t.Errorf("InRange matched %d, want 1", got)
	}
}
