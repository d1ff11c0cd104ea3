package rules

// UnitCosts prices item labels in EUR per unit. Specific systems come
// before generic classes.
var UnitCosts = Table[float64]{
	rule[float64](`(?i)\b155\s?mm\b.*(round|shell|ammo)`, 3_500),
	rule[float64](`(?i)\b105\s?mm\b.*(round|shell|ammo)`, 2_500),
	rule[float64](`(?i)\b120\s?mm\b.*mortar`, 1_200),
	rule[float64](`(?i)\bGMLRS\b`, 160_000),
	rule[float64](`(?i)\bATACMS\b`, 1_200_000),
	rule[float64](`(?i)\bHIMARS\b`, 5_000_000),
	rule[float64](`(?i)\bPatriot\b`, 400_000_000),
	rule[float64](`(?i)\bNASAMS?\b`, 80_000_000),
	rule[float64](`(?i)\bAMRAAM\b|\bAIM[-\s]?120\b`, 1_200_000),
	rule[float64](`(?i)\bAIM[-\s]?9\w*\b`, 400_000),
	rule[float64](`(?i)\bStinger\b`, 120_000),
	rule[float64](`(?i)\bJavelin\b`, 170_000),
	rule[float64](`(?i)\bNLAW\b`, 40_000),
	rule[float64](`(?i)\bBradley\b`, 3_500_000),
	rule[float64](`(?i)\bStryker\b`, 4_500_000),
	rule[float64](`(?i)\bAbrams\b`, 9_000_000),
	rule[float64](`(?i)\bLeopard\s?2\w*\b`, 8_000_000),
	rule[float64](`(?i)\bLeopard\b`, 4_000_000),
	rule[float64](`(?i)\bM113\b`, 300_000),
	rule[float64](`(?i)\bCV90\b`, 8_000_000),
	rule[float64](`(?i)\bMi[-\s]?24\b`, 10_000_000),
	rule[float64](`(?i)\bFlyEye\b`, 300_000),
	rule[float64](`(?i)\bPiorun\b`, 100_000),
	rule[float64](`(?i)\bradars?\b`, 5_000_000),
	rule[float64](`(?i)\bhowitzers?\b`, 1_000_000),
	rule[float64](`(?i)\bmortars?\b`, 120_000),
	rule[float64](`(?i)\bAPCs?\b|\bIFVs?\b|\barmou?red?\s+vehicles?\b`, 1_500_000),
	rule[float64](`(?i)\btrucks?\b`, 150_000),
	rule[float64](`(?i)\bdrones?\b|\bUAVs?\b`, 50_000),
	rule[float64](`(?i)\brifles?\b`, 1_200),
	rule[float64](`(?i)\bhelmets?\b|\bvests?\b`, 400),
}
