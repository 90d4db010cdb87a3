package math

import (
	"math"
	"strconv"
)

// Format formats a float with the given number of decimals.
func Format(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}

// FormatAll formats every value with the same precision.
func FormatAll(ff []float64, precision int) []string {
	ss := make([]string, len(ff))
	for i, f := range ff {
		ss[i] = Format(f, precision)
	}
	return ss
}

// O10 returns the order of the value on a decimal basis
// NOTE : this does not differentiate between values bigger or smaller than 1
func O10(f float64) int {
	log10 := math.Log10(math.Abs(f))
	return int(math.Abs(log10))
}

// Precision returns the number of decimals needed to show the given significant digits of f.
// Zero and non-finite values get the significant digits as is.
func Precision(f float64, digits int) int {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return digits
	}
	if math.Abs(f) >= 1 {
		return digits
	}
	return digits + O10(f)
}
