package domain

// CentsToAmount renders integer cents as a decimal currency amount.
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}
