package ledger

import "testing"

// newTestCard returns the card used by most scenarios: closing on the 15th,
// payment on the 5th of the following month.
func newTestCard(id string, limit int) Card {
	return Card{
		ID:         id,
		Name:       "Visa " + id,
		Issuer:     "BCP",
		Limit:      M(limit),
		ClosingDay: 15,
		PaymentDay: 5,
	}
}

// newTestLedger builds a ledger holding a single card.
func newTestLedger(t *testing.T, cards ...Card) *Ledger {
	t.Helper()
	l := NewLedger()
	for _, c := range cards {
		if err := l.AddCard(c); err != nil {
			t.Fatalf("AddCard(%q): %v", c.ID, err)
		}
	}
	return l
}

// mustBuy records an installment purchase or fails the test.
func mustBuy(t *testing.T, l *Ledger, e Expense, n int, today Date) {
	t.Helper()
	if err := l.BuyInInstallments(e, n, newDecimal(0), today); err != nil {
		t.Fatalf("BuyInInstallments(%q): %v", e.ID, err)
	}
}
