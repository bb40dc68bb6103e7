package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMaxAll returns every item sharing the maximal score, in input order, and
// that score. It returns nil for an empty slice.
func ArgMaxAll[T any](items []T, score func(T) float64) ([]T, float64) {
	var best []T
	var max float64
	for i, item := range items {
		s := score(item)
		switch {
		case i == 0 || s > max:
			max = s
			best = append(best[:0], item)
		case s == max:
			best = append(best, item)
		}
	}
	return best, max
}
