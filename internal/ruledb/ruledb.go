// Package ruledb loads and holds the static rule set both classifiers run
// against. A Database is immutable after construction; loading is
// all-or-nothing and a ruleset with any empty list is rejected outright,
// since the product is useless without rules.
package ruledb

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cyberguard-ng/cyberguard/internal/pattern"
)

// Fixed per-match weights for the SMS scorer. Hand-tuned in the original
// rule tables; kept as-is.
const (
	WeightHighRisk   = 8
	WeightMediumRisk = 4
	WeightKeyword    = 3
)

var (
	// ErrUnreadable means the rule source could not be read at all.
	ErrUnreadable = errors.New("ruledb: source unreadable")
	// ErrMalformed means the rule source was read but its shape is wrong.
	ErrMalformed = errors.New("ruledb: malformed rule database")
)

//go:embed bundle.json
var embeddedBundle []byte

// SafeCode is an exact-match known-good dialing code.
type SafeCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// document is the on-disk JSON shape of a rule bundle.
type document struct {
	Version            string     `json:"version"`
	SafeCodes          []SafeCode `json:"safe_codes"`
	SafePrefixes       []string   `json:"safe_prefixes"`
	SuspiciousPatterns []string   `json:"suspicious_patterns"`
	ScamKeywords       []string   `json:"scam_keywords"`
	HighRiskSMS        []string   `json:"high_risk_sms_patterns"`
	MediumRiskSMS      []string   `json:"medium_risk_sms_patterns"`
}

// Database is the fully parsed and compiled rule set. Read-only after Load.
type Database struct {
	Version string

	safeCodes          map[string]string // uppercased code -> description
	safePrefixes       []string          // uppercased, in bundle order
	suspiciousPatterns []pattern.Matcher
	scamKeywords       []string // lowercased, deduplicated, in bundle order
	highRiskSMS        []pattern.Matcher
	mediumRiskSMS      []pattern.Matcher
}

// Load reads and compiles a rule bundle from path.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	return Parse(data)
}

// Default builds the Database from the bundle compiled into the binary.
func Default() (*Database, error) {
	return Parse(embeddedBundle)
}

// Parse compiles a rule bundle from raw JSON. No partial database is ever
// returned: any missing key, empty list, or uncompilable template fails the
// whole load.
func Parse(data []byte) (*Database, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if len(doc.SafeCodes) == 0 {
		return nil, fmt.Errorf("%w: safe_codes is missing or empty", ErrMalformed)
	}
	if len(doc.SafePrefixes) == 0 {
		return nil, fmt.Errorf("%w: safe_prefixes is missing or empty", ErrMalformed)
	}
	if len(doc.SuspiciousPatterns) == 0 {
		return nil, fmt.Errorf("%w: suspicious_patterns is missing or empty", ErrMalformed)
	}
	if len(doc.ScamKeywords) == 0 {
		return nil, fmt.Errorf("%w: scam_keywords is missing or empty", ErrMalformed)
	}
	if len(doc.HighRiskSMS) == 0 {
		return nil, fmt.Errorf("%w: high_risk_sms_patterns is missing or empty", ErrMalformed)
	}
	if len(doc.MediumRiskSMS) == 0 {
		return nil, fmt.Errorf("%w: medium_risk_sms_patterns is missing or empty", ErrMalformed)
	}

	db := &Database{
		Version:   doc.Version,
		safeCodes: make(map[string]string, len(doc.SafeCodes)),
	}

	for _, sc := range doc.SafeCodes {
		code := strings.ToUpper(strings.TrimSpace(sc.Code))
		if code == "" {
			return nil, fmt.Errorf("%w: empty entry in safe_codes", ErrMalformed)
		}
		db.safeCodes[code] = sc.Description
	}

	for _, p := range doc.SafePrefixes {
		prefix := strings.ToUpper(strings.TrimSpace(p))
		if prefix == "" {
			return nil, fmt.Errorf("%w: empty entry in safe_prefixes", ErrMalformed)
		}
		db.safePrefixes = append(db.safePrefixes, prefix)
	}

	for _, tpl := range doc.SuspiciousPatterns {
		m, err := pattern.CompileWildcard(tpl, pattern.Substring)
		if err != nil {
			return nil, fmt.Errorf("%w: suspicious pattern %q: %v", ErrMalformed, tpl, err)
		}
		db.suspiciousPatterns = append(db.suspiciousPatterns, m)
	}

	db.scamKeywords = normalizeKeywords(doc.ScamKeywords)
	if len(db.scamKeywords) == 0 {
		return nil, fmt.Errorf("%w: scam_keywords has no usable entries", ErrMalformed)
	}

	for _, tpl := range doc.HighRiskSMS {
		m, err := pattern.CompileRegex(tpl, pattern.Substring)
		if err != nil {
			return nil, fmt.Errorf("%w: high risk pattern %q: %v", ErrMalformed, tpl, err)
		}
		db.highRiskSMS = append(db.highRiskSMS, m)
	}
	for _, tpl := range doc.MediumRiskSMS {
		m, err := pattern.CompileRegex(tpl, pattern.Substring)
		if err != nil {
			return nil, fmt.Errorf("%w: medium risk pattern %q: %v", ErrMalformed, tpl, err)
		}
		db.mediumRiskSMS = append(db.mediumRiskSMS, m)
	}

	return db, nil
}

// normalizeKeywords trims, lowercases, and deduplicates while preserving the
// bundle's ordering.
func normalizeKeywords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		kw := strings.ToLower(strings.TrimSpace(w))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// LookupSafeCode reports whether code is a known safe code and returns its
// description. The code must already be normalized (uppercased).
func (db *Database) LookupSafeCode(code string) (string, bool) {
	desc, ok := db.safeCodes[code]
	return desc, ok
}

// MatchSuspicious returns the first suspicious template the code matches.
func (db *Database) MatchSuspicious(code string) (string, bool) {
	for _, m := range db.suspiciousPatterns {
		if m.Match(code) {
			return m.Template(), true
		}
	}
	return "", false
}

// ScamKeywordsIn returns every scam keyword contained in the input, in bundle
// order. Matching is case-insensitive.
func (db *Database) ScamKeywordsIn(text string) []string {
	lc := strings.ToLower(text)
	var found []string
	for _, kw := range db.scamKeywords {
		if strings.Contains(lc, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// MatchSafePrefix returns the first safe prefix the code starts with.
func (db *Database) MatchSafePrefix(code string) (string, bool) {
	for _, p := range db.safePrefixes {
		if strings.HasPrefix(code, p) {
			return p, true
		}
	}
	return "", false
}

// HighRiskSMS returns the compiled high-risk SMS matchers in bundle order.
func (db *Database) HighRiskSMS() []pattern.Matcher { return db.highRiskSMS }

// MediumRiskSMS returns the compiled medium-risk SMS matchers in bundle order.
func (db *Database) MediumRiskSMS() []pattern.Matcher { return db.mediumRiskSMS }

// Counts reports how many rules of each kind are loaded, for /stats.
type Counts struct {
	SafeCodes          int    `json:"safe_codes"`
	SafePrefixes       int    `json:"safe_prefixes"`
	SuspiciousPatterns int    `json:"suspicious_patterns"`
	ScamKeywords       int    `json:"scam_keywords"`
	HighRiskSMS        int    `json:"high_risk_sms_patterns"`
	MediumRiskSMS      int    `json:"medium_risk_sms_patterns"`
	Version            string `json:"version"`
}

// Counts returns the per-list rule counts.
func (db *Database) Counts() Counts {
	return Counts{
		SafeCodes:          len(db.safeCodes),
		SafePrefixes:       len(db.safePrefixes),
		SuspiciousPatterns: len(db.suspiciousPatterns),
		ScamKeywords:       len(db.scamKeywords),
		HighRiskSMS:        len(db.highRiskSMS),
		MediumRiskSMS:      len(db.mediumRiskSMS),
		Version:            db.Version,
	}
}
