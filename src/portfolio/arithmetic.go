package portfolio

import "tracker/src/models"

// divide returns num/den, or an absent value when either side is absent, the
// denominator is zero, or the quotient is not finite. A zero quotient is
// always +0.
func divide(num, den models.OptionalFloat) models.OptionalFloat {
	n, ok := num.Get()
	if !ok {
		return models.None()
	}
	d, ok := den.Get()
	if !ok || d == 0 {
		return models.None()
	}
	q := n / d
	if q == 0 {
		return models.Some(0)
	}
	return models.Some(q)
}

// divideEach divides row by row; a bad row does not affect the others.
func divideEach(nums, dens []models.OptionalFloat) []models.OptionalFloat {
	out := make([]models.OptionalFloat, len(nums))
	for i := range nums {
		if i < len(dens) {
			out[i] = divide(nums[i], dens[i])
		}
	}
	return out
}

// divideBy divides every row by the same denominator.
func divideBy(nums []models.OptionalFloat, den models.OptionalFloat) []models.OptionalFloat {
	out := make([]models.OptionalFloat, len(nums))
	for i := range nums {
		out[i] = divide(nums[i], den)
	}
	return out
}

func multiply(a, b models.OptionalFloat) models.OptionalFloat {
	x, ok := a.Get()
	if !ok {
		return models.None()
	}
	y, ok := b.Get()
	if !ok {
		return models.None()
	}
	return models.Some(x * y)
}

func subtract(a, b models.OptionalFloat) models.OptionalFloat {
	x, ok := a.Get()
	if !ok {
		return models.None()
	}
	y, ok := b.Get()
	if !ok {
		return models.None()
	}
	return models.Some(x - y)
}

// sum adds the defined terms and ignores the rest.
func sum(values []models.OptionalFloat) float64 {
	total := 0.0
	for _, v := range values {
		if x, ok := v.Get(); ok {
			total += x
		}
	}
	return total
}
