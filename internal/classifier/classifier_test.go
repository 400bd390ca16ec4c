package classifier

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyberguard-ng/cyberguard/internal/ruledb"
)

// fixtureStore builds a small, fully controlled ruleset so scoring tests can
// hit exact totals. overrides replaces top-level sections.
func fixtureStore(t *testing.T, overrides map[string]any) *ruledb.Store {
	t.Helper()

	doc := map[string]any{
		"version": "test",
		"safe_codes": []map[string]string{
			{"code": "*901#", "description": "Access Bank mobile banking"},
		},
		"safe_prefixes":            []string{"*310"},
		"suspicious_patterns":      []string{"*xxx*bvn*"},
		"scam_keywords":            []string{"gamma", "delta"},
		"high_risk_sms_patterns":   []string{"zorp.*alpha", "qux.*omega"},
		"medium_risk_sms_patterns": []string{"beta.*now"},
	}
	for k, v := range overrides {
		doc[k] = v
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	db, err := ruledb.Parse(data)
	require.NoError(t, err)
	return ruledb.NewStore("", db)
}

func defaultStore(t *testing.T) *ruledb.Store {
	t.Helper()
	db, err := ruledb.Default()
	require.NoError(t, err)
	return ruledb.NewStore("", db)
}
