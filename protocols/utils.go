package protocols

import (
	"math"
	"time"
)

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// NaN sorts after every number so the ordering stays total.
func compareFloat(a, b float64) int {
	a_nan, b_nan := math.IsNaN(a), math.IsNaN(b)
	switch {
	case a_nan && b_nan:
		return 0
	case a_nan:
		return 1
	case b_nan:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
