package taxcalc

import "github.com/ratelab/ratelab/internal/schedule"

// PopulationRow is one taxpayer band of the statewide income dataset. AGI
// holds the aggregate adjusted gross income earned by that band's
// taxpayers, split by which tax bracket the dollars fall into.
type PopulationRow struct {
	Band string
	AGI  []float64
}

// Population is the full dataset: one row per taxpayer band, each row
// carrying per-bracket AGI amounts. Rows and AGI columns are both in
// bracket order.
type Population []PopulationRow

// RevenueByBand applies a rate vector to the population and returns the
// projected revenue collected from each taxpayer band, exact and in row
// order. Each band's revenue is the sum over brackets of that band's AGI
// in the bracket times the bracket's rate.
func RevenueByBand(pop Population, rates schedule.RateVector) []float64 {
	out := make([]float64, len(pop))
	for r, row := range pop {
		var sum float64
		for i, agi := range row.AGI {
			if i < len(rates) {
				sum += agi * rates[i]
			}
		}
		out[r] = sum
	}
	return out
}

// DefaultPopulation is a statewide income dataset estimated from IRS
// statistics-of-income aggregates. Figures are AGI dollars per band and
// bracket; at the 4.95% flat rate they project roughly 17.16B in
// collections.
func DefaultPopulation() Population {
	return Population{
		{Band: "$0-25,000", AGI: []float64{24_000_000_000, 0, 0, 0, 0}},
		{Band: "$25,001-50,000", AGI: []float64{52_100_000_000, 24_300_000_000, 0, 0, 0}},
		{Band: "$50,001-100,000", AGI: []float64{48_000_000_000, 47_300_000_000, 31_500_000_000, 0, 0}},
		{Band: "$100,001-500,000", AGI: []float64{16_000_000_000, 16_000_000_000, 30_400_000_000, 27_000_000_000, 0}},
		{Band: "$500,001+", AGI: []float64{2_200_000_000, 2_200_000_000, 4_400_000_000, 17_200_000_000, 4_000_000_000}},
	}
}

// TotalRevenue is the sum of RevenueByBand across all bands.
func TotalRevenue(pop Population, rates schedule.RateVector) float64 {
	var total float64
	for _, rev := range RevenueByBand(pop, rates) {
		total += rev
	}
	return total
}
