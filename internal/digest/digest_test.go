package digest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/followup"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

var today = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

func TestFormat(t *testing.T) {
	acme := &client.Client{ID: 1, Name: "Acme", Contact: "Wile E", Phone: "2024561111"}
	globex := &client.Client{ID: 2, Name: "Globex"}

	visits := []*visit.Visit{
		{ID: 1, ClientID: 1, Note: "demo", NextAction: "Send quote", FollowUpDate: "2025-03-07", Priority: "high", Signal: "Hot"},
		{ID: 2, ClientID: 2, Note: "check in", FollowUpDate: "2025-03-11"},
	}
	b := followup.Group(visits, []*client.Client{acme, globex}, today)

	got := Format(b, today, "US")
	want := "Follow-ups for Mon Mar 10, 2025\n\n" +
		"Overdue (1)\n" +
		"1. Acme: Send quote\n" +
		"   2025-03-07 (3 days ago) | high priority | Hot\n" +
		"   Wile E | (202) 456-1111\n" +
		"\n" +
		"Upcoming (1)\n" +
		"1. Globex: check in\n" +
		"   2025-03-11 (tomorrow)\n" +
		"\n" +
		"2 open follow-up(s).\n"
	assert.Equal(t, want, got)
}

func TestFormatEmpty(t *testing.T) {
	got := Format(followup.Buckets{}, today, "US")
	assert.Equal(t, "Follow-ups for Mon Mar 10, 2025\n\nNothing due in the next 7 days.\n", got)
}

func TestWhen(t *testing.T) {
	assert.Equal(t, "today", When(0))
	assert.Equal(t, "tomorrow", When(1))
	assert.Equal(t, "yesterday", When(-1))
	assert.Equal(t, "in 5 days", When(5))
	assert.Equal(t, "12 days ago", When(-12))
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 8 * * 1-5"))
	assert.NoError(t, ValidateSchedule("@daily"))
	assert.Error(t, ValidateSchedule("every morning"))
	assert.Error(t, ValidateSchedule("0 0 8 * * *"), "seconds field is not accepted")
}

func TestSchedulerNext(t *testing.T) {
	s, err := NewScheduler("0 8 * * *", func() {})
	require.NoError(t, err)

	from := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	want := time.Date(2025, time.March, 11, 8, 0, 0, 0, time.UTC)
	assert.True(t, want.Equal(s.Next(from)), "next = %v", s.Next(from))

	s.Start()
	s.Stop()

	_, err = NewScheduler("nope", func() {})
	assert.Error(t, err)
}
