package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberguard-ng/cyberguard/internal/report"
)

func TestSubmitAndGet(t *testing.T) {
	s := report.NewStore()

	r, err := s.Submit(report.KindUSSD, "*123*456#", "asked for my PIN")
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, report.StatusPending, r.Status)
	assert.Equal(t, "*123*456#", r.Content)

	got, err := s.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestSubmitValidation(t *testing.T) {
	s := report.NewStore()

	_, err := s.Submit("email", "something", "")
	assert.ErrorIs(t, err, report.ErrInvalidKind)

	_, err = s.Submit(report.KindSMS, "   ", "")
	assert.ErrorIs(t, err, report.ErrEmptyContent)
}

func TestSubmitRedactsContent(t *testing.T) {
	s := report.NewStore()

	r, err := s.Submit(report.KindSMS, "They told me to call 08031234567", "")
	require.NoError(t, err)
	assert.NotContains(t, r.Content, "08031234567")
	assert.Contains(t, r.Content, "[PHONE]")
}

func TestGetUnknownID(t *testing.T) {
	s := report.NewStore()
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, report.ErrNotFound)
}

func TestListFilters(t *testing.T) {
	s := report.NewStore()

	a, err := s.Submit(report.KindUSSD, "*1*2#", "")
	require.NoError(t, err)
	b, err := s.Submit(report.KindSMS, "you won a prize", "")
	require.NoError(t, err)
	_, err = s.UpdateStatus(b.ID, report.StatusConfirmed)
	require.NoError(t, err)

	all := s.List("", "")
	assert.Len(t, all, 2)

	pending := s.List(report.StatusPending, "")
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].ID)

	sms := s.List("", report.KindSMS)
	require.Len(t, sms, 1)
	assert.Equal(t, b.ID, sms[0].ID)

	assert.Empty(t, s.List(report.StatusDismissed, ""))
}

func TestUpdateStatus(t *testing.T) {
	s := report.NewStore()

	r, err := s.Submit(report.KindSMS, "suspicious text", "")
	require.NoError(t, err)

	updated, err := s.UpdateStatus(r.ID, report.StatusDismissed)
	require.NoError(t, err)
	assert.Equal(t, report.StatusDismissed, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(r.UpdatedAt))

	_, err = s.UpdateStatus(r.ID, "archived")
	assert.ErrorIs(t, err, report.ErrInvalidStatus)

	_, err = s.UpdateStatus("missing", report.StatusConfirmed)
	assert.ErrorIs(t, err, report.ErrNotFound)
}

func TestCounts(t *testing.T) {
	s := report.NewStore()

	for i := 0; i < 3; i++ {
		_, err := s.Submit(report.KindSMS, strings.Repeat("x", i+1), "")
		require.NoError(t, err)
	}
	r, err := s.Submit(report.KindUSSD, "*9#", "")
	require.NoError(t, err)
	_, err = s.UpdateStatus(r.ID, report.StatusConfirmed)
	require.NoError(t, err)

	c := s.Counts()
	assert.Equal(t, 4, c.Total)
	assert.Equal(t, 3, c.Pending)
	assert.Equal(t, 1, c.Confirmed)
	assert.Equal(t, 0, c.Dismissed)
}

func TestReturnedReportsAreCopies(t *testing.T) {
	s := report.NewStore()

	r, err := s.Submit(report.KindSMS, "original", "")
	require.NoError(t, err)
	r.Status = "tampered"

	got, err := s.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, report.StatusPending, got.Status)
}
