package rules

import "github.com/ppiankov/aidtrace/internal/model"

// BucketRules categorizes a record from its free text. Loans are checked
// before humanitarian aid, which is checked before military transfers.
var BucketRules = Table[model.Bucket]{
	rule(`(?i)(\bloans?\b|credit|guarantee|\bbonds?\b|facility|macro[-\s]?financial|budget\s*support|reconstruction|coebank|\bkfw\b|\beib\b|world\s*bank)`, model.BucketLoan),
	rule(`(?i)(humanitarian|medical|health|hospital|ambulance|shelter|refugee|\bngos?\b|medicine|\bfood\b|winteri[sz]ation)`, model.BucketHumanitarian),
	rule(`(?i)(milit|defen[cs]e|weapon|ammo|munition|artiller|howitzer|mortar|missile|rocket|\buavs?\b|drone|loitering|\btanks?\b|armou|\bapcs?\b|\bifvs?\b|\bmbts?\b|rifle|small\s*arms|\bsam\b|patriot|nasams|himars|gmlrs|radar|night\s*vision|helmet|\bvests?\b|body\s*armou?r|generator|diesel|fuel|security)`, model.BucketMilitary),
}
