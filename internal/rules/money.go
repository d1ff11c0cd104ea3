package rules

// GroupedNumber matches digits written in thousands groups ("1,200,000",
// "10 000"). The last group must end the digit run, so "120 2023" is
// not one number.
const GroupedNumber = `\d{1,3}(?:[.,\x{00A0}\x{2009}\x{202F} ]\d{3})+\b`

// Multipliers maps magnitude words (lower case, trailing dot stripped) to
// their scale. Unknown words scale by 1.
var Multipliers = map[string]float64{
	"billion": 1e9, "bn": 1e9, "b": 1e9, "million": 1e6, "mln": 1e6, "m": 1e6, "thousand": 1e3, "k": 1e3,
	"mrd": 1e9, "milliard": 1e9, "milliards": 1e9, "miliardi": 1e9, "miliard": 1e9, "miljard": 1e9, "miljarder": 1e9,
	"mio": 1e6, "millions": 1e6, "milioni": 1e6, "millionen": 1e6, "miljoner": 1e6, "milj": 1e6, "milionů": 1e6,
	"mld": 1e9, "tys": 1e3, "tsd": 1e3,
	"млрд": 1e9, "млн": 1e6, "тыс": 1e3, "тис": 1e3,
	"milyar": 1e9, "milyon": 1e6, "bin": 1e3,
	"億": 1e8, "亿": 1e8, "万": 1e4, "萬": 1e4, "兆": 1e12, "억": 1e8, "만": 1e4, "조": 1e12,
}

// CurrencyTags maps symbols, ISO codes and currency words (lower case) to
// ISO 4217 codes.
var CurrencyTags = map[string]string{
	"€": "EUR", "eur": "EUR", "euro": "EUR", "euros": "EUR",
	"$": "USD", "usd": "USD", "us$": "USD", "dollar": "USD", "dollars": "USD",
	"£": "GBP", "gbp": "GBP", "pound": "GBP", "pounds": "GBP", "sterling": "GBP",
	"¥": "JPY", "jpy": "JPY", "円": "JPY", "yen": "JPY",
	"₩": "KRW", "krw": "KRW", "won": "KRW",
	"₺": "TRY", "try": "TRY", "tl": "TRY", "lira": "TRY",
	"chf": "CHF", "franc": "CHF", "francs": "CHF",
	"cad": "CAD", "aud": "AUD", "nzd": "NZD",
	"sek": "SEK", "krona": "SEK", "kronor": "SEK",
	"nok": "NOK", "krone": "NOK", "dkk": "DKK",
	"czk": "CZK", "koruna": "CZK", "huf": "HUF",
	"pln": "PLN", "zł": "PLN", "zl": "PLN", "zloty": "PLN", "złoty": "PLN", "zlotych": "PLN", "złotych": "PLN",
	"ron": "RON", "bgn": "BGN", "uah": "UAH", "hryvnia": "UAH",
	"ils": "ILS", "₪": "ILS", "shekel": "ILS", "shekels": "ILS",
	"cny": "CNY", "rmb": "CNY", "元": "CNY", "₽": "RUB",
	"mxn": "MXN", "brl": "BRL", "zar": "ZAR", "sar": "SAR", "aed": "AED", "qar": "QAR", "kwd": "KWD",
	"nt$": "TWD", "twd": "TWD", "ntd": "TWD", "新台幣": "TWD", "新臺幣": "TWD",
}

// PrefixCurrencies are the symbols accepted before a number
var PrefixCurrencies = []string{"€", "$", "£", "¥", "₩", "₺", "₪", "zł", "nt$", "us$"}

// SuffixCurrencies are the tokens accepted after a number, besides
// uppercase ISO-like codes.
var SuffixCurrencies = []string{
	"€", "$", "£", "¥", "₩", "₺", "₪", "zł", "nt$", "円", "元",
	"euros", "euro", "eur", "usd", "us$", "dollars", "dollar", "gbp", "pounds", "pound", "sterling",
	"jpy", "yen", "krw", "won", "try", "lira", "pln", "złotych", "złoty", "zloty", "zlotych", "twd",
	"chf", "francs", "franc", "cad", "aud", "nzd", "sek", "krona", "kronor", "nok", "krone", "dkk", "czk", "koruna",
	"huf", "ron", "bgn", "uah", "hryvnia", "ils", "shekels", "shekel", "cny", "rmb", "mxn", "brl", "zar", "sar", "aed", "qar", "kwd",
}
