package utils

import "time"

// FormatDate renders t the way review dates are shown, e.g. "March 4, 2024".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func Clamp[T int | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
