package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileWildcardSubstring(t *testing.T) {
	cases := []struct {
		template string
		input    string
		want     bool
	}{
		{"*xxx*bvn*", "*123*BVN*456#", true},
		{"*xxx*bvn*", "*123*PASSWORD*#", false},
		{"*xxx*pin*", "*500*PIN*1#", true},
		{"*xxx*pin*", "*500*SPINACH#", false},
		{"*xxx*verif*", "*42*VERIFY*9#", true},
		{"*xxx*winner*", "*123*WINNER*#", true},
		{"*xxx*winner*", "*901#", false},
	}

	for _, tc := range cases {
		m, err := CompileWildcard(tc.template, Substring)
		require.NoError(t, err, tc.template)
		require.Equal(t, tc.want, m.Match(tc.input), "%s vs %s", tc.template, tc.input)
		require.Equal(t, tc.template, m.Template())
	}
}

func TestCompileWildcardLiteralStars(t *testing.T) {
	// A template without the wildcard token matches only itself.
	m, err := CompileWildcard("*901#", Full)
	require.NoError(t, err)
	require.True(t, m.Match("*901#"))
	require.True(t, m.Match("*901#")) // compiled matcher is reusable
	require.False(t, m.Match("*9011#"))
	require.False(t, m.Match("x*901#"))
}

func TestCompileRegexSubstring(t *testing.T) {
	m, err := CompileRegex(`won.*prize`, Substring)
	require.NoError(t, err)
	require.True(t, m.Match("you have WON a big prize today"))
	require.False(t, m.Match("your parcel is on the way"))
}

func TestCompileRegexFullAnchors(t *testing.T) {
	m, err := CompileRegex(`\*\d{3}#`, Full)
	require.NoError(t, err)
	require.True(t, m.Match("*901#"))
	require.False(t, m.Match("call *901# now"))
}

func TestCompileRegexInvalid(t *testing.T) {
	_, err := CompileRegex(`won(`, Substring)
	require.Error(t, err)
}
