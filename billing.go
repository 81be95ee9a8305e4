package ledger

import "time"

// clampedDate builds a date from year/month and a day-of-month, clamping the
// day to the month's length instead of letting it overflow into the next
// month (a closing day of 31 means "last day" in a 30-day month).
func clampedDate(year int, month time.Month, day int) Date {
	last := NewDate(year, month+1, 0)
	if day > last.Day() {
		day = last.Day()
	}
	return NewDate(year, month, day)
}

// DueDate converts a card charge into the date it will be collected.
//
// The charge belongs to the cycle closing on the card's closing day of the
// charge month when the charge falls on or before that day, otherwise to the
// next month's close. The due date is the card's payment day in the month
// after the close. A due date that would land on or before today is pushed
// one more month: the obligation has already lapsed into the next cycle.
func DueDate(charge Date, closingDay, paymentDay int, today Date) Date {
	close := clampedDate(charge.Year(), charge.Month(), closingDay)
	if charge.Day() > close.Day() {
		close = clampedDate(charge.Year(), charge.Month()+1, closingDay)
	}
	due := clampedDate(close.Year(), close.Month()+1, paymentDay)
	if !due.After(today) {
		due = clampedDate(due.Year(), due.Month()+1, paymentDay)
	}
	return due
}
