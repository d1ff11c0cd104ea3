package rules

import "strings"

// DefaultLanguage is always searched alongside the country language
const DefaultLanguage = "en"

var countryLanguage = map[string]string{
	"united states": "en", "united kingdom": "en", "canada": "en", "australia": "en", "new zealand": "en",
	"japan": "ja", "south korea": "ko", "taiwan": "zh", "singapore": "en",
	"germany": "de", "france": "fr", "italy": "it", "spain": "es", "portugal": "pt", "netherlands": "nl",
	"belgium": "fr", "luxembourg": "fr", "ireland": "en", "austria": "de", "switzerland": "de",
	"poland": "pl", "czech republic": "cs", "slovakia": "sk", "hungary": "hu", "romania": "ro", "bulgaria": "bg",
	"slovenia": "sl", "croatia": "hr", "estonia": "et", "latvia": "lv", "lithuania": "lt",
	"finland": "fi", "sweden": "sv", "denmark": "da", "norway": "no", "iceland": "is", "cyprus": "el", "malta": "mt",
	"turkey": "tr", "united arab emirates": "ar", "saudi arabia": "ar", "qatar": "ar", "kuwait": "ar",
	"brazil": "pt", "mexico": "es", "south africa": "en", "israel": "he", "india": "en",
}

var countryAliases = map[string]string{
	"usa": "united states", "us": "united states", "united states of america": "united states",
	"uk": "united kingdom", "great britain": "united kingdom", "britain": "united kingdom", "gb": "united kingdom",
	"republic of korea": "south korea", "korea, republic of": "south korea", "rok": "south korea", "korea": "south korea",
	"czechia": "czech republic", "uae": "united arab emirates", "u.a.e.": "united arab emirates",
	"roc": "taiwan", "taipei": "taiwan",
}

// CountryKey lower-cases a country name and resolves aliases
func CountryKey(country string) string {
	key := strings.ToLower(strings.TrimSpace(country))
	if alias, ok := countryAliases[key]; ok {
		return alias
	}
	return key
}

// LanguageFor returns the primary language of a donor country, or
// DefaultLanguage when the country is unknown.
func LanguageFor(country string) string {
	if lang, ok := countryLanguage[CountryKey(country)]; ok {
		return lang
	}
	return DefaultLanguage
}
