// Package audit records classification outcomes on a background queue so
// the check path never blocks on disk or stdout. Message text enters an
// event only as a redacted preview.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/cyberguard-ng/cyberguard/internal/classifier"
	"github.com/cyberguard-ng/cyberguard/internal/redact"
)

// Input kinds recorded on events.
const (
	KindUSSD = "ussd"
	KindSMS  = "sms"
)

// Event is one classification outcome as written to audit sinks.
type Event struct {
	ID              string    `json:"id"`
	Time            time.Time `json:"ts"`
	Kind            string    `json:"kind"`
	Preview         string    `json:"preview,omitempty"`
	Safe            bool      `json:"safe"`
	Tier            string    `json:"tier"`
	Confidence      int       `json:"confidence"`
	Reasons         []string  `json:"reasons,omitempty"`
	NeedsEscalation bool      `json:"needs_escalation,omitempty"`
	LatencyMS       float64   `json:"latency_ms"`
}

// NewEvent builds an event from a verdict. previewLen <= 0 omits the
// message preview entirely.
func NewEvent(kind, input string, v classifier.Verdict, latency time.Duration, previewLen int) *Event {
	return &Event{
		ID:              uuid.NewString(),
		Time:            time.Now().UTC(),
		Kind:            kind,
		Preview:         redact.Preview(input, previewLen),
		Safe:            v.IsSafe,
		Tier:            string(v.Tier),
		Confidence:      v.Confidence,
		Reasons:         v.Reasons,
		NeedsEscalation: v.NeedsEscalation,
		LatencyMS:       float64(latency.Microseconds()) / 1000.0,
	}
}
