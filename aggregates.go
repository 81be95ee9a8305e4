package ledger

// Aggregate calculations: stateless, read-only reductions over the snapshot.
//
// "Available cash" deliberately excludes card-denominated expenses (they are
// not cash outflows until the card is paid) and counts every card payment in
// full (cash leaves regardless of what it settles).

// Summary holds income, expense and balance figures for a closed date range.
type Summary struct {
	Range       Range
	Income      Money
	Expense     Money
	Balance     Money
	SavingsRate Percent
}

// AvailableCash returns income minus cash expenses minus card payments, over
// all transactions dated on or before the given day.
func (l *Ledger) AvailableCash(on Date) Money {
	var cash Money
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			// The ledger is sorted by date, so it's safe to break.
			break
		}
		switch v := tx.(type) {
		case Income:
			cash = cash.Add(v.Amount)
		case Expense:
			if !v.OnCard() {
				cash = cash.Sub(v.Amount)
			}
		case CardPayment:
			cash = cash.Sub(v.Amount)
		}
	}
	return cash
}

// PeriodSummary computes income, expense, balance and savings rate for a
// closed date range (boundaries included). Card expenses count as expense
// here: the summary reports spending, not cash movement.
func (l *Ledger) PeriodSummary(r Range) Summary {
	s := Summary{Range: r}
	for _, tx := range l.transactions {
		if !r.Contains(tx.When()) {
			continue
		}
		switch v := tx.(type) {
		case Income:
			s.Income = s.Income.Add(v.Amount)
		case Expense:
			s.Expense = s.Expense.Add(v.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	if s.Income.IsPositive() {
		rate, _ := s.Balance.Decimal().Div(s.Income.Decimal()).Mul(newDecimal(100)).Float64()
		s.SavingsRate = Percent(rate)
	}
	return s
}

// CategoryBreakdown sums expenses per category over a closed date range.
func (l *Ledger) CategoryBreakdown(r Range) map[string]Money {
	breakdown := make(map[string]Money)
	for _, tx := range l.transactions {
		e, ok := tx.(Expense)
		if !ok || !r.Contains(e.Date) {
			continue
		}
		category := e.Category
		if category == "" {
			category = "uncategorized"
		}
		breakdown[category] = breakdown[category].Add(e.Amount)
	}
	return breakdown
}

// AverageCashFlow returns the mean monthly net cash flow over the trailing
// months full calendar months before the month containing today.
func (l *Ledger) AverageCashFlow(months int, today Date) Money {
	if months < 1 {
		return Money{}
	}
	var total Money
	for k := 1; k <= months; k++ {
		r := Monthly.Range(today.StartOf(Monthly).AddMonth(-k))
		var net Money
		for _, tx := range l.transactions {
			if !r.Contains(tx.When()) {
				continue
			}
			switch v := tx.(type) {
			case Income:
				net = net.Add(v.Amount)
			case Expense:
				if !v.OnCard() {
					net = net.Sub(v.Amount)
				}
			case CardPayment:
				net = net.Sub(v.Amount)
			}
		}
		total = total.Add(net)
	}
	return total.DivInt(months).Round()
}

// TotalCardDebt sums the balances of every card.
func (l *Ledger) TotalCardDebt() Money {
	var debt Money
	for i := range l.cards {
		debt = debt.Add(l.cards[i].Balance)
	}
	return debt
}

// TotalGoalReserved sums the saved amounts of every active goal.
func (l *Ledger) TotalGoalReserved() Money {
	var reserved Money
	for i := range l.goals {
		if l.goals[i].Active {
			reserved = reserved.Add(l.goals[i].Saved)
		}
	}
	return reserved
}

// Affordability returns the cash that could go toward savings goals today:
// available cash minus total card debt minus what goals already reserve.
func (l *Ledger) Affordability(today Date) Money {
	return l.AvailableCash(today).Sub(l.TotalCardDebt()).Sub(l.TotalGoalReserved())
}
