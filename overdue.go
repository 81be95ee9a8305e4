package ledger

// MarkOverdue re-evaluates every installment schedule against today: pending
// and partial entries whose due date is strictly before today become overdue.
// No other state changes. Running it again on a converged ledger is a no-op;
// it returns the number of entries that changed.
func MarkOverdue(l *Ledger, today Date) int {
	changed := 0
	for i, tx := range l.transactions {
		e, ok := tx.(Expense)
		if !ok || e.Plan == nil {
			continue
		}
		for k := range e.Plan.Schedule {
			entry := &e.Plan.Schedule[k]
			if (entry.State == Pending || entry.State == Partial) && entry.Due.Before(today) {
				entry.State = Overdue
				changed++
			}
		}
		l.transactions[i] = e
	}
	return changed
}
