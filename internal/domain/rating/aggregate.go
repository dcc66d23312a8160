package rating

import (
	"sort"

	"github.com/shopspring/decimal"
)

const (
	ScoreMin = 0
	ScoreMax = 5
)

// Clamp forces a score into [ScoreMin, ScoreMax].
func Clamp(value float64) float64 {
	if value < ScoreMin {
		return ScoreMin
	}
	if value > ScoreMax {
		return ScoreMax
	}
	return value
}

// AverageScore is the arithmetic mean of the present categories only; the
// denominator is the count of filled-in values, not the fixed category
// count. ok is false when nothing is present, so "no rating" stays
// distinguishable from a true zero.
func AverageScore(categories Categories) (avg float64, ok bool) {
	values := categories.Clamped().Present()
	if len(values) == 0 {
		return 0, false
	}
	sum := decimal.Zero
	for _, value := range values {
		sum = sum.Add(decimal.NewFromFloat(value))
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(values)))).Round(2)
	result, _ := mean.Float64()
	return result, true
}

// MeanAverageScore averages the averageScore of a rating set. Used for both
// department averages and the company-wide rating.
func MeanAverageScore(ratings []MonthlyRating) (avg float64, ok bool) {
	if len(ratings) == 0 {
		return 0, false
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromFloat(r.AverageScore))
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(2)
	result, _ := mean.Float64()
	return result, true
}

// YearlySeries collapses a year of ratings into month-ascending points.
// Sparse by default: months with no rating are omitted. With dense set, all
// twelve months are emitted and absent months default to 0.
func YearlySeries(ratings []MonthlyRating, dense bool) []MonthPoint {
	byMonth := make(map[int][]MonthlyRating)
	for _, r := range ratings {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		byMonth[r.Month] = append(byMonth[r.Month], r)
	}

	var out []MonthPoint
	if dense {
		for month := 1; month <= 12; month++ {
			avg, _ := MeanAverageScore(byMonth[month])
			out = append(out, MonthPoint{Month: month, AvgRating: avg})
		}
		return out
	}

	months := make([]int, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Ints(months)
	for _, month := range months {
		avg, _ := MeanAverageScore(byMonth[month])
		out = append(out, MonthPoint{Month: month, AvgRating: avg})
	}
	return out
}
