package rules

import (
	"regexp"

	"github.com/ppiankov/aidtrace/internal/model"
)

// Delivery and commitment lexicons. Delivery is checked first.
const (
	DeliveryVerbs   = `(?i)(delivered|handed\s+over|arriv(?:ed|als?)|transferred|shipment|shipped|supplied|provided)`
	CommitmentVerbs = `(?i)(announce(?:d|ment)|pledge(?:d)?|commit(?:ted|ment)|authori[sz]e(?:d)?)`
)

// DeliveryPattern locates delivery verbs (used to centre the date window)
var DeliveryPattern = regexp.MustCompile(DeliveryVerbs)

// StatusRules maps lexicon hits to a status
var StatusRules = Table[model.Status]{
	{Pattern: DeliveryPattern, Value: model.StatusDelivered},
	rule(CommitmentVerbs, model.StatusCommitment),
}

// DefaultStatus is used when neither lexicon matches
const DefaultStatus = model.StatusCommitment
