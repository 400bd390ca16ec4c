package redact

import (
	"strings"
	"testing"
)

func TestStringRedaction(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		disallow []string
		require  []string
	}{
		{
			name:     "phone number",
			input:    "Call 0803-123-4567 now to claim",
			disallow: []string{"0803-123-4567"},
			require:  []string{"[PHONE]"},
		},
		{
			name:     "international phone",
			input:    "Send your PIN to +234 801 234 5678 immediately",
			disallow: []string{"801 234 5678"},
			require:  []string{"[PHONE]"},
		},
		{
			name:     "short digit runs survive",
			input:    "Meeting at 3 PM, room 204",
			require:  []string{"3 PM", "204"},
		},
		{
			name:     "email",
			input:    "Reply to support@secure-bank.example with your BVN",
			disallow: []string{"support@secure-bank.example"},
			require:  []string{"[EMAIL]"},
		},
		{
			name:     "url path",
			input:    "Verify at https://phish.example.test/login?acct=9912",
			disallow: []string{"/login", "acct=9912"},
			require:  []string{"https://phish.example.test/[REDACTED]"},
		},
		{
			name:     "bare host url survives",
			input:    "Visit https://example.test for details",
			require:  []string{"https://example.test"},
		},
		{
			name:     "mixed",
			input:    "Won! Call 08031234567 or mail win@lotto.example via www.lotto.example/claim",
			disallow: []string{"08031234567", "win@lotto.example", "/claim"},
			require:  []string{"[PHONE]", "[EMAIL]", "[REDACTED]"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := String(tc.input)
			for _, bad := range tc.disallow {
				if bad != "" && strings.Contains(out, bad) {
					t.Fatalf("output still contains %q: %s", bad, out)
				}
			}
			for _, want := range tc.require {
				if want != "" && !strings.Contains(out, want) {
					t.Fatalf("output missing required substring %q: %s", want, out)
				}
			}
		})
	}
}

func TestStringEmpty(t *testing.T) {
	if got := String(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("anything", 0); got != "" {
		t.Fatalf("expected disabled preview, got %q", got)
	}

	got := Preview("Call 08031234567 about the delivery", 14)
	if !strings.HasPrefix(got, "Call [PHONE]") {
		t.Fatalf("expected redacted prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncation marker, got %q", got)
	}

	if got := Preview("short", 64); got != "short" {
		t.Fatalf("expected untouched preview, got %q", got)
	}
}

func TestSprintf(t *testing.T) {
	got := Sprintf("sms from %s: %s", "08031234567", "hello")
	if strings.Contains(got, "08031234567") {
		t.Fatalf("number leaked: %q", got)
	}
}
