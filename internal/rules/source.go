package rules

import "github.com/ppiankov/aidtrace/internal/model"

// SourceRules classifies how materiel was sourced
var SourceRules = Table[model.SourceCategory]{
	rule(`(?i)(drawdown|from\s+stocks?\b|from\s+stockpiles?|from\s+inventory|from\s+reserves|\bpda\b)`, model.SourceStockpile),
	rule(`(?i)(procure|contract|\border|purchase|manufactur|tender)`, model.SourceNewProduction),
	rule(`(?i)(ringtausch|backfill|swap|indirect\s+transfer|compensat(?:e|ion)|in\s+return)`, model.SourceIndirect),
}
