// Package classifier implements the two risk classifiers: the ordered USSD
// check cascade and the additive SMS scorer. Both are pure functions over an
// immutable rule database snapshot; a classification never fails, it only
// produces lower-confidence verdicts.
package classifier

import "strings"

// RiskTier is the discrete category a verdict falls into.
type RiskTier string

// USSD tiers. TierUnknown is shared with the SMS set: an empty or blank
// message is unclassifiable and reports UNKNOWN rather than a misleading
// LEGITIMATE.
const (
	TierSafe       RiskTier = "SAFE"
	TierSuspicious RiskTier = "SUSPICIOUS"
	TierDangerous  RiskTier = "DANGEROUS"
	TierUnknown    RiskTier = "UNKNOWN"
)

// SMS tiers. TierSuspicious and TierUnknown are shared with the USSD set.
const (
	TierLegitimate       RiskTier = "LEGITIMATE"
	TierPotentiallyRisky RiskTier = "POTENTIALLY_RISKY"
	TierHighRisk         RiskTier = "HIGH_RISK"
)

// Verdict is the outcome of classifying a single input. Verdicts are value
// objects: created per call, never mutated, owned by the caller.
type Verdict struct {
	IsSafe     bool     `json:"safe"`
	Confidence int      `json:"confidence"`
	Tier       RiskTier `json:"status"`
	Message    string   `json:"message"`
	Reasons    []string `json:"reasons,omitempty"`

	// NeedsEscalation marks an UNKNOWN code the caller may want to verify
	// through a network-backed reputation service. This package only sets
	// the flag; it never goes online itself.
	NeedsEscalation bool `json:"needs_escalation,omitempty"`
}

// verdict builds a Verdict with the message rendered from tier and reasons.
func verdict(safe bool, confidence int, tier RiskTier, headline string, reasons []string) Verdict {
	return Verdict{
		IsSafe:     safe,
		Confidence: confidence,
		Tier:       tier,
		Message:    formatMessage(headline, reasons),
		Reasons:    reasons,
	}
}

// formatMessage joins the headline with the accumulated reasons. Safe tiers
// carry no reasons, so their message is just the headline.
func formatMessage(headline string, reasons []string) string {
	if len(reasons) == 0 {
		return headline
	}
	return headline + " - detected: " + strings.Join(reasons, ", ")
}
