package model

// Record is one donor aid line item
type Record struct {
	ID          string   `json:"id,omitempty" yaml:"id,omitempty"`
	Donor       string   `json:"donor" yaml:"donor"`
	Month       string   `json:"month,omitempty" yaml:"month,omitempty"` // YYYY-MM
	Bucket      Bucket   `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Amount      float64  `json:"amount_eur,omitempty" yaml:"amount_eur,omitempty"` // <= 0 means unknown
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	URLs        []string `json:"urls,omitempty" yaml:"urls,omitempty"`

	// Fields below are only written by enrichment, and only when blank.
	Status          Status         `json:"status,omitempty" yaml:"status,omitempty"`
	EvidenceMonth   string         `json:"evidence_month,omitempty" yaml:"evidence_month,omitempty"`
	SourceCategory  SourceCategory `json:"source_category,omitempty" yaml:"source_category,omitempty"`
	SourceURL       string         `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	MoneyEvidence   string         `json:"money_evidence,omitempty" yaml:"money_evidence,omitempty"`
	AmountOrigin    AmountOrigin   `json:"amount_origin,omitempty" yaml:"amount_origin,omitempty"`
	Breakdown       []string       `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
	UsefulLifeYears *int           `json:"useful_life_years,omitempty" yaml:"useful_life_years,omitempty"`
	ProductionYear  int            `json:"production_year,omitempty" yaml:"production_year,omitempty"`
	FinalValue      float64        `json:"final_value_eur,omitempty" yaml:"final_value_eur,omitempty"`
}

// HasAmount reports whether the record carries a usable amount
func (r Record) HasAmount() bool {
	return r.Amount > 0
}

// Bucket is the aid category of a record
type Bucket string

const (
	BucketMilitary     Bucket = "military_inventory_transfer"
	BucketLoan         Bucket = "loans_non_military"
	BucketHumanitarian Bucket = "direct_humanitarian_aid"
	BucketOther        Bucket = "other"
)

// Status is the delivery state reported by evidence
type Status string

const (
	StatusDelivered  Status = "delivered"  // Delivered/Disbursed
	StatusCommitment Status = "commitment" // Commitment/Other
)

// SourceCategory classifies how materiel was sourced
type SourceCategory string

const (
	SourceStockpile     SourceCategory = "stockpile"
	SourceNewProduction SourceCategory = "new_production"
	SourceIndirect      SourceCategory = "indirect"
	SourceUnknown       SourceCategory = "unknown"
)

// AmountOrigin records where a record's amount came from
type AmountOrigin string

const (
	AmountReported AmountOrigin = "reported"
	AmountEvidence AmountOrigin = "evidence"
	AmountEstimate AmountOrigin = "estimate"
)
