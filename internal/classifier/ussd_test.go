package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "*901#", NormalizeCode("  *901#  "))
	assert.Equal(t, "*123*BVN#", NormalizeCode("*123 * bvn #"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestUSSDEmptyInput(t *testing.T) {
	c := NewUSSD(fixtureStore(t, nil))

	for _, in := range []string{"", "   "} {
		v := c.Classify(in)
		assert.False(t, v.IsSafe)
		assert.Equal(t, 0, v.Confidence)
		assert.Equal(t, TierUnknown, v.Tier)
		assert.Equal(t, "invalid input", v.Message)
	}
}

func TestUSSDExactSafeMatch(t *testing.T) {
	c := NewUSSD(fixtureStore(t, nil))

	v := c.Classify(" *901# ")
	assert.True(t, v.IsSafe)
	assert.Equal(t, 95, v.Confidence)
	assert.Equal(t, TierSafe, v.Tier)
	assert.Contains(t, v.Message, "Access Bank")
}

// A code can be exactly safe and contain a scam keyword at the same time;
// the exact-match check runs first and must win.
func TestUSSDExactSafeBeatsKeyword(t *testing.T) {
	c := NewUSSD(fixtureStore(t, map[string]any{
		"scam_keywords": []string{"901"},
	}))

	v := c.Classify("*901#")
	assert.True(t, v.IsSafe)
	assert.Equal(t, 95, v.Confidence)
	assert.Equal(t, TierSafe, v.Tier)
}

func TestUSSDSuspiciousPattern(t *testing.T) {
	c := NewUSSD(fixtureStore(t, nil))

	v := c.Classify("*500*bvn*123#")
	assert.False(t, v.IsSafe)
	assert.Equal(t, 80, v.Confidence)
	assert.Equal(t, TierSuspicious, v.Tier)
	assert.Contains(t, v.Message, "*xxx*bvn*")
}

func TestUSSDTooManySegments(t *testing.T) {
	c := NewUSSD(fixtureStore(t, nil))

	v := c.Classify("*1*2*3*4*5#")
	assert.False(t, v.IsSafe)
	assert.Equal(t, 70, v.Confidence)
	assert.Equal(t, TierSuspicious, v.Tier)
	assert.Contains(t, v.Message, "too many segments")

	// Four segments stay under the threshold.
	v = c.Classify("*1*2*3*4#")
	assert.NotContains(t, v.Message, "too many segments")
}

func TestUSSDKeywordDangerous(t *testing.T) {
	c := NewUSSD(fixtureStore(t, map[string]any{
		"scam_keywords": []string{"password"},
	}))

	v := c.Classify("*123*password*#")
	assert.False(t, v.IsSafe)
	assert.Equal(t, 90, v.Confidence)
	assert.Equal(t, TierDangerous, v.Tier)
	assert.Equal(t, []string{"password"}, v.Reasons)
}

func TestUSSDSafePrefixFallback(t *testing.T) {
	c := NewUSSD(fixtureStore(t, nil))

	v := c.Classify("*310*42#")
	assert.True(t, v.IsSafe)
	assert.Equal(t, 60, v.Confidence)
	assert.Equal(t, TierSafe, v.Tier)
}

func TestUSSDUnknownNeedsEscalation(t *testing.T) {
	c := NewUSSD(fixtureStore(t, nil))

	v := c.Classify("*777*8#")
	assert.False(t, v.IsSafe)
	assert.Equal(t, 50, v.Confidence)
	assert.Equal(t, TierUnknown, v.Tier)
	assert.True(t, v.NeedsEscalation)
}

func TestUSSDIdempotent(t *testing.T) {
	c := NewUSSD(fixtureStore(t, nil))

	for _, in := range []string{"*901#", "*500*bvn*1#", "*1*2*3*4*5#", "nonsense"} {
		first := c.Classify(in)
		second := c.Classify(in)
		assert.Equal(t, first, second, in)
	}
}

func TestUSSDBundledRuleset(t *testing.T) {
	c := NewUSSD(defaultStore(t))

	v := c.Classify("*901#")
	require.True(t, v.IsSafe)
	require.Equal(t, 95, v.Confidence)

	v = c.Classify("*123*password*#")
	require.Equal(t, TierDangerous, v.Tier)
	require.Equal(t, 90, v.Confidence)

	v = c.Classify("*1*2*3*4*5#")
	require.Equal(t, 70, v.Confidence)
}
