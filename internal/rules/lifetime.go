package rules

// DefaultUsefulLife applies when no lifetime rule matches (years)
const DefaultUsefulLife = 15

// UsefulLife maps item text to an assumed service life in years
var UsefulLife = Table[int]{
	rule(`(?i)\b(ammo|ammunition|shells?|rounds?|rockets?|missiles?|grenades?|mines?)\b`, 0),
	rule(`(?i)(howitzer|artillery|mortar|\bguns?\b)`, 30),
	rule(`(?i)(tank|\bmbts?\b|\bifvs?\b|\bapcs?\b|armou?red|vehicle|truck|stryker|bradley|leopard|abrams|m113|cv90)`, 25),
	rule(`(?i)(patriot|nasams|iris[-\s]?t|\bsam\b|air\s*defen|radar)`, 25),
	rule(`(?i)(\buavs?\b|drone|loitering|phoenix\s*ghost|switchblade)`, 6),
	rule(`(?i)(night\s*vision|\bnvgs?\b|helmet|vest|uniform|protective|generator)`, 5),
	rule(`(?i)(demin|clearance)`, 10),
}
