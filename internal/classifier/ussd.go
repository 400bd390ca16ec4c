package classifier

import (
	"fmt"
	"strings"

	"github.com/cyberguard-ng/cyberguard/internal/ruledb"
)

// maxSegments is the largest *-delimited segment count a dialing code can
// have before it is flagged. Empirically chosen; legitimate carrier menus
// stay well under it.
const maxSegments = 4

// USSD classifies dialing codes through a fixed, ordered cascade of checks
// that stops at the first decisive match. The ordering is deliberate:
// specificity beats generality, so an exact safe-code match wins even when
// the code also contains a scam keyword.
type USSD struct {
	rules *ruledb.Store
}

// NewUSSD creates a USSD classifier over the given rule store.
func NewUSSD(rules *ruledb.Store) *USSD {
	return &USSD{rules: rules}
}

// NormalizeCode strips surrounding and embedded whitespace and uppercases.
func NormalizeCode(raw string) string {
	code := strings.TrimSpace(raw)
	code = strings.ReplaceAll(code, " ", "")
	return strings.ToUpper(code)
}

// Classify runs the cascade and always returns a Verdict.
func (c *USSD) Classify(raw string) Verdict {
	db := c.rules.Current()

	code := NormalizeCode(raw)
	if code == "" {
		return Verdict{IsSafe: false, Confidence: 0, Tier: TierUnknown, Message: "invalid input"}
	}

	if desc, ok := db.LookupSafeCode(code); ok {
		return verdict(true, 95, TierSafe, "SAFE - "+desc, nil)
	}

	if tpl, ok := db.MatchSuspicious(code); ok {
		return verdict(false, 80, TierSuspicious,
			fmt.Sprintf("SUSPICIOUS - matches scam pattern %q", tpl), nil)
	}

	if n := segmentCount(code); n > maxSegments {
		return verdict(false, 70, TierSuspicious,
			fmt.Sprintf("SUSPICIOUS - too many segments (%d)", n), nil)
	}

	if found := db.ScamKeywordsIn(code); len(found) > 0 {
		return verdict(false, 90, TierDangerous, "DANGEROUS - contains scam keywords", found)
	}

	if prefix, ok := db.MatchSafePrefix(code); ok {
		return verdict(true, 60, TierSafe, "SAFE - known safe prefix "+prefix, nil)
	}

	v := verdict(false, 50, TierUnknown, "UNKNOWN - code not in database, use caution", nil)
	v.NeedsEscalation = true
	return v
}

// segmentCount counts *-delimited segments after trimming the leading '*'
// and the trailing '#'.
func segmentCount(code string) int {
	body := strings.TrimPrefix(code, "*")
	body = strings.TrimSuffix(body, "#")
	if body == "" {
		return 0
	}
	return len(strings.Split(body, "*"))
}
