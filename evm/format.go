package evm

import (
	"fmt"
	"math"
)

// ManMonths formats a value as whole man-months, e.g. "110 MM" or "-10 MM"
func ManMonths(v float64) string {
	return fmt.Sprintf("%d MM", roundInt(v))
}

// Index formats a performance index with two decimals
func Index(v float64) string {
	return fmt.Sprintf("%.2f", v+0) // +0 turns -0 into 0
}

// Percent formats a fraction as a whole percentage, e.g. 0.5 -> "50%"
func Percent(fraction float64) string {
	return fmt.Sprintf("%d%%", roundInt(fraction*100))
}

// Points returns |1 - index| as whole percentage points
func Points(index float64) int {
	return roundInt(math.Abs(1-index) * 100)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
