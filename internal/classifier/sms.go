package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cyberguard-ng/cyberguard/internal/ruledb"
)

// Fixed one-shot heuristic weights and tier cutoffs. These mirror the
// hand-tuned values of the original rule tables and are deliberately not
// configurable.
const (
	weightURL   = 6
	weightPhone = 5
	weightMoney = 3

	cutoffHighRisk   = 15
	cutoffSuspicious = 10
	cutoffRisky      = 5
)

var (
	urlRe   = regexp.MustCompile(`http://|https://|www\.|bit\.ly|tinyurl|click.*here`)
	phoneRe = regexp.MustCompile(`call.*\d|phone.*number|contact.*us|dial.*\d|send.*number`)
	moneyRe = regexp.MustCompile(`\$\d|\d+\s*(dollar|naira|usd)|million|cash|money`)
)

// quickScanRe is the fast pre-filter subset: a handful of the strongest
// indicators, OR-matched with no scoring. It shares no state with the scored
// path.
var quickScanRe = regexp.MustCompile(
	`won|prize|lottery|bvn|urgent|password|http://|https://|bit\.ly`)

// SMS classifies messages by additive scoring: every rule family is
// evaluated, contributions are summed, and the total maps to a tier through
// fixed thresholds. Unlike the USSD cascade it never short-circuits.
type SMS struct {
	rules *ruledb.Store
}

// NewSMS creates an SMS classifier over the given rule store.
func NewSMS(rules *ruledb.Store) *SMS {
	return &SMS{rules: rules}
}

// Classify scores the message and always returns a Verdict.
func (c *SMS) Classify(raw string) Verdict {
	db := c.rules.Current()

	if strings.TrimSpace(raw) == "" {
		return Verdict{IsSafe: false, Confidence: 0, Tier: TierUnknown, Message: "empty message"}
	}
	msg := strings.ToLower(raw)

	var score int
	var reasons []string

	for _, m := range db.HighRiskSMS() {
		if m.Match(msg) {
			score += ruledb.WeightHighRisk
			reasons = append(reasons, fmt.Sprintf("high-risk pattern %q", m.Template()))
		}
	}
	for _, m := range db.MediumRiskSMS() {
		if m.Match(msg) {
			score += ruledb.WeightMediumRisk
			reasons = append(reasons, fmt.Sprintf("medium-risk pattern %q", m.Template()))
		}
	}
	for _, kw := range db.ScamKeywordsIn(msg) {
		score += ruledb.WeightKeyword
		reasons = append(reasons, fmt.Sprintf("scam keyword %q", kw))
	}
	if urlRe.MatchString(msg) {
		score += weightURL
		reasons = append(reasons, "suspicious URL")
	}
	if phoneRe.MatchString(msg) {
		score += weightPhone
		reasons = append(reasons, "phone number request")
	}
	if moneyRe.MatchString(msg) {
		score += weightMoney
		reasons = append(reasons, "money mention")
	}

	return scoreVerdict(score, reasons)
}

// scoreVerdict maps the accumulated score to a tiered Verdict.
func scoreVerdict(score int, reasons []string) Verdict {
	switch {
	case score >= cutoffHighRisk:
		return verdict(false, 90, TierHighRisk,
			fmt.Sprintf("HIGH-RISK SCAM SMS (score %d)", score), reasons)
	case score >= cutoffSuspicious:
		return verdict(false, 75, TierSuspicious,
			fmt.Sprintf("SUSPICIOUS SMS (score %d)", score), reasons)
	case score >= cutoffRisky:
		return verdict(false, 60, TierPotentiallyRisky,
			fmt.Sprintf("POTENTIALLY RISKY SMS (score %d)", score), reasons)
	default:
		// The legitimate tier carries no reasons.
		return verdict(true, 95, TierLegitimate, "Likely legitimate SMS", nil)
	}
}

// QuickScan is a cheap yes/no pre-filter for call sites that cannot afford
// the full scorer. It neither consults the rule store nor affects the scored
// path.
func (c *SMS) QuickScan(raw string) bool {
	return quickScanRe.MatchString(strings.ToLower(raw))
}
