// Package pattern provides the single pattern-matching abstraction shared by
// both classifiers: wildcard templates for USSD codes and regular-expression
// templates for SMS text. All matchers are compiled once, match
// case-insensitively, and support either substring or full-string mode.
package pattern

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Mode selects how much of the input a template has to cover.
type Mode int

const (
	// Substring matches when the template occurs anywhere in the input.
	Substring Mode = iota
	// Full matches only when the template covers the whole input.
	Full
)

// WildcardToken is the placeholder inside USSD templates that expands to any
// run of characters, e.g. "*xxx*bvn*".
const WildcardToken = "xxx"

// Matcher is a compiled, reusable template.
type Matcher interface {
	// Match reports whether the input matches the template.
	Match(input string) bool
	// Template returns the source template the matcher was compiled from.
	Template() string
}

type globMatcher struct {
	template string
	g        glob.Glob
}

func (m *globMatcher) Match(input string) bool { return m.g.Match(strings.ToLower(input)) }
func (m *globMatcher) Template() string        { return m.template }

// CompileWildcard compiles a wildcard template. Every character is taken
// literally except runs of WildcardToken, which match any characters. USSD
// codes contain literal '*' and '#', so glob metacharacters in the template
// are escaped before compilation.
func CompileWildcard(template string, mode Mode) (Matcher, error) {
	var b strings.Builder
	rest := strings.ToLower(template)
	for {
		idx := strings.Index(rest, WildcardToken)
		if idx < 0 {
			b.WriteString(quoteGlob(rest))
			break
		}
		b.WriteString(quoteGlob(rest[:idx]))
		b.WriteString("*")
		rest = rest[idx+len(WildcardToken):]
	}

	expr := b.String()
	if mode == Substring {
		expr = "*" + expr + "*"
	}

	g, err := glob.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &globMatcher{template: template, g: g}, nil
}

// quoteGlob escapes glob metacharacters so they are matched literally.
func quoteGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '{', '}', ',', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

type regexMatcher struct {
	template string
	re       *regexp.Regexp
}

func (m *regexMatcher) Match(input string) bool { return m.re.MatchString(input) }
func (m *regexMatcher) Template() string        { return m.template }

// CompileRegex compiles a regular-expression template case-insensitively.
// In Full mode the expression is anchored at both ends.
func CompileRegex(template string, mode Mode) (Matcher, error) {
	expr := "(?i)" + template
	if mode == Full {
		expr = "(?i)^(?:" + template + ")$"
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &regexMatcher{template: template, re: re}, nil
}
