// Package report holds community scam reports submitted by users. Reports
// are kept in a thread-safe in-memory store; the device-local deployment
// has no database to persist them into.
package report

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cyberguard-ng/cyberguard/internal/redact"
)

// Report statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDismissed = "dismissed"
)

// Report kinds mirror the classifier input kinds.
const (
	KindUSSD = "ussd"
	KindSMS  = "sms"
)

var (
	ErrNotFound      = errors.New("report not found")
	ErrInvalidKind   = errors.New("kind must be ussd or sms")
	ErrInvalidStatus = errors.New("unknown report status")
	ErrEmptyContent  = errors.New("report content is empty")
)

// Report is one community submission of a suspected scam code or message.
type Report struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Content   string    `json:"content"`
	Comment   string    `json:"comment,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a thread-safe in-memory report store.
type Store struct {
	mu      sync.RWMutex
	reports map[string]*Report

	// Insertion order, newest last. List walks this instead of the map
	// so output order is stable.
	order []string
}

// NewStore creates an empty, ready-to-use Store.
func NewStore() *Store {
	return &Store{reports: make(map[string]*Report)}
}

// Submit validates and stores a new report. The content is redacted
// before storage so phone numbers and emails never sit in memory dumps.
func (s *Store) Submit(kind, content, comment string) (*Report, error) {
	if kind != KindUSSD && kind != KindSMS {
		return nil, ErrInvalidKind
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	now := time.Now().UTC()
	r := &Report{
		ID:        uuid.NewString(),
		Kind:      kind,
		Content:   redact.String(content),
		Comment:   redact.String(strings.TrimSpace(comment)),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	s.order = append(s.order, r.ID)

	return cloned(r), nil
}

// Get retrieves a single report by ID.
func (s *Store) Get(id string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloned(r), nil
}

// List returns reports in submission order, newest first. Empty status or
// kind means no filter on that field.
func (s *Store) List(status, kind string) []*Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Report, 0, len(s.order))
	for _, id := range s.order {
		r := s.reports[id]
		if status != "" && r.Status != status {
			continue
		}
		if kind != "" && r.Kind != kind {
			continue
		}
		result = append(result, cloned(r))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// UpdateStatus moves a report to a new status.
func (s *Store) UpdateStatus(id, status string) (*Report, error) {
	if status != StatusPending && status != StatusConfirmed && status != StatusDismissed {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	return cloned(r), nil
}

// Counts summarizes the store for the stats endpoint.
type Counts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Dismissed int `json:"dismissed"`
}

func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Counts
	c.Total = len(s.reports)
	for _, r := range s.reports {
		switch r.Status {
		case StatusPending:
			c.Pending++
		case StatusConfirmed:
			c.Confirmed++
		case StatusDismissed:
			c.Dismissed++
		}
	}
	return c
}

func cloned(r *Report) *Report {
	out := *r
	return &out
}
