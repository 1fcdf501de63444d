package schedule

// Defaults reproduce the shipped Illinois schedule. They back the CUE
// config loader's defaults and the test fixtures; deployments normally load
// these values from schedule files instead.

// DefaultRate is the Illinois flat rate applied to every bracket.
const DefaultRate = 0.0495

// DefaultIncome is the starting income input, approximately the state
// median wage.
const DefaultIncome = 60_000

// BaselineRevenue is the fixed reference for revenue deltas: estimated
// collections under the current flat tax.
const BaselineRevenue = 17_158_013_217

// DefaultBrackets is the five-band Illinois bracket schema.
func DefaultBrackets() []Bracket {
	return []Bracket{
		{Lower: 0, Upper: 25_000},
		{Lower: 25_000, Upper: 50_000},
		{Lower: 50_000, Upper: 100_000},
		{Lower: 100_000, Upper: 500_000},
		{Lower: 500_000, Upper: Ceiling},
	}
}

// DefaultBandLabels are the display names for the five taxpayer bands,
// matching the bracket order.
func DefaultBandLabels() []string {
	return []string{
		"$0-25,000",
		"$25,001-50,000",
		"$50,001-100,000",
		"$100,001-500,000",
		"$500,001+",
	}
}

// DefaultRates is the shipped flat schedule as a vector.
func DefaultRates() RateVector {
	return Flat(DefaultRate, len(DefaultBrackets()))
}

// FederalExampleBrackets are the 2018 federal brackets used in the
// progressive-tax illustration.
func FederalExampleBrackets() []Bracket {
	return []Bracket{
		{Lower: 0, Upper: 9_525},
		{Lower: 9_526, Upper: 38_700},
		{Lower: 38_700, Upper: 82_500},
		{Lower: 82_500, Upper: 157_500},
	}
}

// FederalExampleRates pair with FederalExampleBrackets.
func FederalExampleRates() RateVector {
	return RateVector{0.10, 0.12, 0.22, 0.24}
}

// DefaultPresetKey selects the shipped Illinois schedule in the catalog.
const DefaultPresetKey = "IL_2017"

// DefaultPresets is the shipped ten-state catalog, in display order.
func DefaultPresets() []Preset {
	return []Preset{
		{Label: "Illinois Flat Tax", Key: "IL_2017", Rates: Flat(0.0495, 5)},
		{Label: "Indiana Flat Tax", Key: "IN_2018", Rates: Flat(0.0323, 5)},
		{Label: "Louisiana Progressive Tax", Key: "LA_2018", Rates: RateVector{0.02, 0.04, 0.06, 0.06, 0.06}},
		{Label: "Maine Progressive Tax", Key: "ME_2018", Rates: RateVector{0.058, 0.0675, 0.0715, 0.0715, 0.0715}},
		{Label: "Massachusetts Flat Tax", Key: "MA_2018", Rates: Flat(0.051, 5)},
		{Label: "Michigan Flat Tax", Key: "MI_2018", Rates: Flat(0.0425, 5)},
		{Label: "New Jersey Progressive Tax", Key: "NJ_2018", Rates: RateVector{0.014, 0.0175, 0.0553, 0.0637, 0.0897}},
		{Label: "Utah Flat Tax", Key: "UT_2018", Rates: Flat(0.05, 5)},
		{Label: "Vermont Progressive Tax", Key: "VT_2018", Rates: RateVector{0.035, 0.066, 0.066, 0.076, 0.0875}},
		{Label: "Wisconsin Progressive Tax", Key: "WI_2018", Rates: RateVector{0.04, 0.0627, 0.0627, 0.0627, 0.0765}},
	}
}
