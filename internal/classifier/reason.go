package classifier

// ReasonCode is a stable machine-readable string. Downstream automation
// (gate controller, rewards ledger) branches on these values, so they are
// part of the wire contract and never free text.
type ReasonCode string

const (
	ReasonEligible           ReasonCode = "ELIGIBLE"
	ReasonNotTarget          ReasonCode = "NOT_TARGET"
	ReasonLowConfidence      ReasonCode = "LOW_CONFIDENCE"
	ReasonNonAllowedCategory ReasonCode = "NON_ALLOWED_CATEGORY"
	ReasonInvalidImage       ReasonCode = "INVALID_IMAGE"

	RuleSatHigh           ReasonCode = "SAT_HIGH"
	RuleSatVeryLow        ReasonCode = "SAT_VERY_LOW"
	RuleMidHighSat        ReasonCode = "MID_HIGH_SAT"
	RuleLowSatForceAccept ReasonCode = "LOW_SAT_FORCE_ACCEPT"
	RuleSvmHighConf       ReasonCode = "SVM_HIGH_CONF"
)
