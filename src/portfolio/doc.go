// Package portfolio derives positions from the asset ledger and values them
// against market prices.
//
// Every derived figure is a models.OptionalFloat: a holding whose price is
// unknown has an unknown value, never a zero value. Sums skip unknown terms.
package portfolio
