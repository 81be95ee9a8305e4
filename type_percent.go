package ledger

import (
	"fmt"
	"math"
)

// Percent is a ratio expressed in percentage points: a savings rate, a
// card utilization, a goal's progress or an annual interest rate.
type Percent float64

// Equal compares with a small tolerance, the values come from float
// conversions of decimal ratios.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	return math.Abs(float64(p-q)) < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
