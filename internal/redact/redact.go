// Package redact masks personal data in message text before it reaches
// logs or audit sinks. Classification always runs on the raw input; only
// the stored preview is redacted.
package redact

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// Runs of 7+ digits, allowing common phone separators inside.
	phoneRe = regexp.MustCompile(`\+?\d[\d\s\-()]{5,}\d`)
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	urlRe   = regexp.MustCompile(`https?://[^\s"'<>]+|www\.[^\s"'<>]+`)
)

// String masks phone numbers, email addresses and URL paths in s.
func String(s string) string {
	if s == "" {
		return s
	}

	out := urlRe.ReplaceAllStringFunc(s, redactURL)
	out = emailRe.ReplaceAllString(out, "[EMAIL]")
	out = phoneRe.ReplaceAllStringFunc(out, func(m string) string {
		if digitCount(m) < 7 {
			return m
		}
		return "[PHONE]"
	})
	return out
}

// Sprintf formats like fmt.Sprintf and redacts the result.
func Sprintf(format string, args ...interface{}) string {
	return String(fmt.Sprintf(format, args...))
}

// Preview redacts s and truncates it to max runes. A non-positive max
// disables the preview entirely.
func Preview(s string, max int) string {
	if max <= 0 {
		return ""
	}
	out := String(s)
	runes := []rune(out)
	if len(runes) <= max {
		return out
	}
	return string(runes[:max]) + "..."
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// redactURL keeps the scheme and host so a log line still shows where a
// link pointed, but drops the path and query.
func redactURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed := trimmed
	if strings.HasPrefix(strings.ToLower(trimmed), "www.") {
		parsed = "http://" + trimmed
	}
	u, err := url.Parse(parsed)
	if err != nil || u.Host == "" {
		return "[URL]"
	}
	if u.Path == "" || u.Path == "/" {
		if u.RawQuery == "" {
			return trimmed
		}
	}
	return fmt.Sprintf("%s://%s/[REDACTED]", u.Scheme, u.Host)
}
