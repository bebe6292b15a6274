package portfolio

import (
	"sort"

	"tracker/src/models"
)

const (
	MinTopN     = 3
	MaxTopN     = 30
	DefaultTopN = 10
)

// AllocationBySymbol sums current value per symbol over priced rows, largest first.
func AllocationBySymbol(rows []models.ValuedHolding) []models.SeriesPoint {
	return groupSum(rows, func(r models.ValuedHolding) string { return r.Symbol }, func(r models.ValuedHolding) models.OptionalFloat { return r.CurrentValue })
}

// AllocationByAssetType sums current value per asset type over priced rows, largest first.
func AllocationByAssetType(rows []models.ValuedHolding) []models.SeriesPoint {
	return groupSum(rows, func(r models.ValuedHolding) string { return string(r.AssetType) }, func(r models.ValuedHolding) models.OptionalFloat { return r.CurrentValue })
}

// GainLossBySymbol sums unrealized gain/loss per symbol over priced rows, largest first.
func GainLossBySymbol(rows []models.ValuedHolding) []models.SeriesPoint {
	return groupSum(rows, func(r models.ValuedHolding) string { return r.Symbol }, func(r models.ValuedHolding) models.OptionalFloat { return r.GainLoss })
}

// TopWeights returns the n largest symbols by current value with weights
// relative to the subtotal of those n. n is clamped to [MinTopN, MaxTopN].
func TopWeights(rows []models.ValuedHolding, n int) []models.WeightPoint {
	n = ClampTopN(n)
	points := AllocationBySymbol(rows)
	if len(points) > n {
		points = points[:n]
	}

	values := make([]models.OptionalFloat, len(points))
	for i, p := range points {
		values[i] = models.Some(p.Value)
	}
	weights := divideBy(values, models.Some(sum(values)))

	out := make([]models.WeightPoint, len(points))
	for i, p := range points {
		out[i] = models.WeightPoint{Symbol: p.Label, CurrentValue: p.Value, WeightPct: weights[i]}
	}
	return out
}

func ClampTopN(n int) int {
	if n == 0 {
		return DefaultTopN
	}
	if n < MinTopN {
		return MinTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

func groupSum(rows []models.ValuedHolding, label func(models.ValuedHolding) string, value func(models.ValuedHolding) models.OptionalFloat) []models.SeriesPoint {
	totals := make(map[string]float64)
	for _, r := range rows {
		v, ok := value(r).Get()
		if !ok {
			continue
		}
		totals[label(r)] += v
	}

	points := make([]models.SeriesPoint, 0, len(totals))
	for l, v := range totals {
		points = append(points, models.SeriesPoint{Label: l, Value: v})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return points
}
