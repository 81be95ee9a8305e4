package ledger

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	today := Today()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		// Standard ISO format, permissive on leading zeros.
		{"2026-01-15", NewDate(2026, time.January, 15), false},
		{"2026-7-1", NewDate(2026, time.July, 1), false},
		{"invalid-date", Date{}, true},

		// Relative forms resolved against today.
		{"0d", today, false},
		{"-1d", today.Add(-1), false},
		{"+15d", today.Add(15), false},
		{"-1m", today.AddMonth(-1), false},
		{"+1y", NewDate(today.Year()+1, today.Month(), today.Day()), false},
		{"1d", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.err {
				if err == nil {
					t.Errorf("ParseDate(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDate_Normalization(t *testing.T) {
	// Day zero is the last day of the previous month.
	if got := NewDate(2026, time.March, 0); got != NewDate(2026, time.February, 28) {
		t.Errorf("NewDate(2026, mar, 0) = %s", got)
	}
	// Month thirteen rolls into the next year.
	if got := NewDate(2026, 13, 1); got != NewDate(2027, time.January, 1) {
		t.Errorf("NewDate(2026, 13, 1) = %s", got)
	}
	if got := NewDate(2026, time.January, 31).AddMonth(1); got != NewDate(2026, time.March, 3) {
		// time.Date normalization: Jan 31 + 1 month overflows February.
		t.Errorf("AddMonth(1) = %s, want 2026-03-03", got)
	}
}

func TestDate_PeriodBounds(t *testing.T) {
	d := MustParse("2026-05-20")

	tests := []struct {
		period Period
		start  string
		end    string
	}{
		{Daily, "2026-05-20", "2026-05-20"},
		{Monthly, "2026-05-01", "2026-05-31"},
		{Quarterly, "2026-04-01", "2026-06-30"},
		{Yearly, "2026-01-01", "2026-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			if got := d.StartOf(tt.period); got != MustParse(tt.start) {
				t.Errorf("StartOf = %s, want %s", got, tt.start)
			}
			if got := d.EndOf(tt.period); got != MustParse(tt.end) {
				t.Errorf("EndOf = %s, want %s", got, tt.end)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(MustParse("2026-03-01"), MustParse("2026-03-31"))

	if !r.Contains(MustParse("2026-03-01")) || !r.Contains(MustParse("2026-03-31")) {
		t.Error("boundaries must be included")
	}
	if r.Contains(MustParse("2026-02-28")) || r.Contains(MustParse("2026-04-01")) {
		t.Error("dates outside the range accepted")
	}

	// Swapped boundaries are normalized.
	swapped := NewRange(MustParse("2026-03-31"), MustParse("2026-03-01"))
	if swapped != r {
		t.Errorf("NewRange swapped = %+v, want %+v", swapped, r)
	}
}

func TestDate_SameMonth(t *testing.T) {
	if !MustParse("2026-03-01").SameMonth(MustParse("2026-03-31")) {
		t.Error("same month not detected")
	}
	if MustParse("2026-03-01").SameMonth(MustParse("2027-03-01")) {
		t.Error("same month across years")
	}
}
