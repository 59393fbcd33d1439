package followup

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

func TestClassify(t *testing.T) {
	today := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		date string
		want Status
	}{
		{"2025-03-09", Overdue},
		{"2024-12-31", Overdue},
		{"2025-03-10", Today},
		{"2025-03-11", Upcoming},
		{"2025-03-17", Upcoming},
		{"2025-03-18", None},
		{"2026-03-10", None},
		{"", None},
		{"next week", None},
		{"3/4/2025", None},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.date, today))
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	times := []time.Time{
		time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC),
		time.Date(2025, time.March, 10, 0, 30, 0, 0, ny),
		time.Date(2025, time.March, 10, 23, 30, 0, 0, ny),
	}

	for _, now := range times {
		assert.Equal(t, Overdue, Classify("2025-03-09", now), now.String())
		assert.Equal(t, Today, Classify("2025-03-10", now), now.String())
		assert.Equal(t, Upcoming, Classify("2025-03-17", now), now.String())
		assert.Equal(t, None, Classify("2025-03-18", now), now.String())
	}
}

func TestClassifyAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Spring forward on 2025-03-09 makes that local day 23 hours long.
	now := time.Date(2025, time.March, 8, 12, 0, 0, 0, ny)
	assert.Equal(t, Upcoming, Classify("2025-03-15", now))
	assert.Equal(t, None, Classify("2025-03-16", now))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, time.February, 28, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(a, time.Date(2024, time.March, 1, 1, 0, 0, 0, time.UTC)), "leap year")
	assert.Equal(t, -58, DaysBetween(a, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "overdue", Overdue.String())
	assert.Equal(t, "today", Today.String())
	assert.Equal(t, "upcoming", Upcoming.String())
	assert.Equal(t, "none", None.String())

	out, err := json.Marshal(Item{Status: Today})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"status":"today"`)
}

func TestGroup(t *testing.T) {
	today := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)
	clients := []*client.Client{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex"}}

	visits := []*visit.Visit{
		{ID: 1, ClientID: 1, FollowUpDate: "2025-03-12"},
		{ID: 2, ClientID: 2, FollowUpDate: "2025-03-01"},
		{ID: 3, ClientID: 1, FollowUpDate: "2025-03-10"},
		{ID: 4, ClientID: 1, FollowUpDate: "2025-03-11"},
		{ID: 5, ClientID: 2, FollowUpDate: "2025-03-11"},
		{ID: 6, ClientID: 1, FollowUpDate: "2025-03-05", Completed: true},
		{ID: 7, ClientID: 1, FollowUpDate: ""},
		{ID: 8, ClientID: 1, FollowUpDate: "", Completed: false},
		{ID: 9, ClientID: 99, FollowUpDate: "2025-03-10"},
		{ID: 10, ClientID: 2, FollowUpDate: "2025-04-30"},
		{ID: 11, ClientID: 2, FollowUpDate: "2025-02-20"},
		{ID: 12, ClientID: 2, FollowUpDate: "soon"},
	}

	b := Group(visits, clients, today)

	assert.Equal(t, []int64{11, 2}, ids(b.Overdue))
	assert.Equal(t, []int64{3}, ids(b.Today))
	assert.Equal(t, []int64{4, 5, 1}, ids(b.Upcoming))
	assert.Equal(t, 6, b.Len())

	require.Len(t, b.Today, 1)
	assert.Equal(t, "Acme", b.Today[0].Client.Name)
	assert.Equal(t, Today, b.Today[0].Status)
	assert.Equal(t, 0, b.Today[0].DaysOut)
	assert.Equal(t, 2, b.Upcoming[2].DaysOut)
	assert.Equal(t, -9, b.Overdue[1].DaysOut)
}

func TestGroupNoFollowUpNeverSurfaces(t *testing.T) {
	clients := []*client.Client{{ID: 1, Name: "Acme"}}
	visits := []*visit.Visit{{ID: 1, ClientID: 1, Date: "2025-01-01", Completed: true}}

	for _, today := range []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		assert.Zero(t, Group(visits, clients, today).Len())
	}
}

func TestGroupEmpty(t *testing.T) {
	b := Group(nil, nil, time.Now())
	assert.Zero(t, b.Len())
	assert.Nil(t, b.Overdue)
}

func ids(items []Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.Visit.ID
	}
	return out
}
