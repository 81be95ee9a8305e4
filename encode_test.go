package ledger

import (
	"bytes"
	"strings"
	"testing"
)

// newSnapshotLedger builds a ledger exercising every record type.
func newSnapshotLedger(t *testing.T) *Ledger {
	t.Helper()
	l := newTestLedger(t, newTestCard("visa", 10000))
	if err := l.AddRecurrence(Recurrence{
		ID: "salary", Kind: KindIncome, Description: "salary",
		Amount: M(4500), Day: 28, Category: "work", Active: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := l.AddGoal(Goal{
		ID: "trip", Name: "vacation", Target: M(3000), Saved: M(800),
		Start: MustParse("2026-01-01"), Active: true,
	}); err != nil {
		t.Fatal(err)
	}
	if err := l.Append(NewIncome("i1", MustParse("2026-02-01"), M(2000), "seed", "")); err != nil {
		t.Fatal(err)
	}
	if err := l.AddPurchase(NewExpense("e1", MustParse("2026-02-03"), M(120.50), "groceries", "food")); err != nil {
		t.Fatal(err)
	}
	purchase := MustParse("2026-01-10")
	mustBuy(t, l, NewCardExpense("tv", purchase, M(600), "television", "home", "visa"), 4, purchase)
	if _, err := l.AdvancePay("adv", "tv", M(170), M(2000), MustParse("2026-02-10")); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestEncodeDecodeLedger_RoundTrip(t *testing.T) {
	l := newSnapshotLedger(t)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got.Currency() != l.Currency() {
		t.Errorf("currency = %q, want %q", got.Currency(), l.Currency())
	}
	if len(got.cards) != 1 || len(got.recurrences) != 1 || len(got.goals) != 1 {
		t.Fatalf("decoded %d cards %d recurrences %d goals, want 1 each",
			len(got.cards), len(got.recurrences), len(got.goals))
	}
	if !got.Card("visa").Balance.Equal(l.Card("visa").Balance) {
		t.Errorf("card balance = %s, want %s", got.Card("visa").Balance, l.Card("visa").Balance)
	}
	if len(got.transactions) != len(l.transactions) {
		t.Fatalf("decoded %d transactions, want %d", len(got.transactions), len(l.transactions))
	}
	for i, tx := range l.transactions {
		if !got.transactions[i].Equal(tx) {
			t.Errorf("transaction %d = %+v, want %+v", i, got.transactions[i], tx)
		}
	}

	// Installment state survives structurally: one paid, one partial.
	plan := got.Transaction("tv").(Expense).Plan
	if plan == nil {
		t.Fatal("decoded purchase lost its plan")
	}
	if plan.Paid != 1 || plan.Remaining != 3 {
		t.Errorf("decoded counters = %d/%d, want 1/3", plan.Paid, plan.Remaining)
	}
	if got := plan.Schedule[1]; got.State != Partial || !got.RemainingDue.Equal(M(130)) {
		t.Errorf("decoded entry 2 = %+v, want partial with 130.00 remaining", got)
	}
	if len(plan.AdvanceLog) != 1 {
		t.Errorf("decoded advance log has %d events, want 1", len(plan.AdvanceLog))
	}
}

func TestEncodeLedger_IsCanonical(t *testing.T) {
	l := newSnapshotLedger(t)

	var first bytes.Buffer
	if err := EncodeLedger(&first, l); err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeLedger(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	var second bytes.Buffer
	if err := EncodeLedger(&second, decoded); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("re-encoding is not canonical:\nfirst:\n%s\nsecond:\n%s", first.String(), second.String())
	}
}

func TestEncodeLedger_RecordOrder(t *testing.T) {
	l := newSnapshotLedger(t)
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	wantPrefixes := []string{
		`{"record":"currency"`,
		`{"record":"card"`,
		`{"record":"recurrence"`,
		`{"record":"goal"`,
		`{"record":"expense"`, // 2026-01-10 purchase comes first chronologically
		`{"record":"income"`,
		`{"record":"expense"`,
		`{"record":"card-payment"`,
	}
	if len(lines) != len(wantPrefixes) {
		t.Fatalf("snapshot has %d lines, want %d:\n%s", len(lines), len(wantPrefixes), buf.String())
	}
	for i, want := range wantPrefixes {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %s, want prefix %s", i, lines[i], want)
		}
	}
}

func TestDecodeLedger_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown record", `{"record":"wire-transfer","id":"x"}`},
		{"not json", `not a json line`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tt.input)); err == nil {
				t.Error("decoded successfully, want error")
			}
		})
	}
}

func TestDecodeLedger_SkipsEmptyLines(t *testing.T) {
	input := "\n" + `{"record":"income","id":"i1","kind":"income","date":"2026-02-01","amount":2000}` + "\n\n"
	l, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(l.transactions) != 1 {
		t.Errorf("decoded %d transactions, want 1", len(l.transactions))
	}
}
