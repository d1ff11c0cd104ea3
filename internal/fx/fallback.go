package fx

// fallbackRates are static EUR rates used when the remote lookup fails.
// Codes missing here convert at 1.0.
var fallbackRates = map[string]float64{
	"USD": 0.92, "GBP": 1.17, "CHF": 1.02, "CAD": 0.68, "AUD": 0.62, "NZD": 0.56,
	"SEK": 0.089, "NOK": 0.084, "DKK": 0.134, "PLN": 0.23, "CZK": 0.040, "HUF": 0.0026,
	"RON": 0.20, "BGN": 0.51, "TRY": 0.028, "ILS": 0.26, "INR": 0.011, "CNY": 0.13,
	"JPY": 0.0064, "KRW": 0.00068, "MXN": 0.052, "BRL": 0.18, "ZAR": 0.049, "SAR": 0.245,
	"AED": 0.25, "QAR": 0.25, "KWD": 3.0, "TWD": 0.029, "UAH": 0.024,
}

// Fallback returns the static rate for code, 1.0 when unknown
func Fallback(code string) float64 {
	if r, ok := fallbackRates[code]; ok {
		return r
	}
	return 1.0
}
