package domain

// FirstNonEmpty returns the first value that is not the empty string.
// Import heuristics use it to pick among alternate source keys.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// FirstFloat returns the first non-nil pointer's value, or fallback when
// every candidate is absent.
func FirstFloat(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
