// Package followup classifies visit follow-up dates relative to today and
// groups open follow-ups into display buckets.
package followup

import (
	"sort"
	"time"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

// UpcomingDays is the window, in days after today, that counts as upcoming.
const UpcomingDays = 7

// Status is the classification of a follow-up date.
type Status int

const (
	None Status = iota
	Overdue
	Today
	Upcoming
)

func (s Status) String() string {
	switch s {
	case Overdue:
		return "overdue"
	case Today:
		return "today"
	case Upcoming:
		return "upcoming"
	default:
		return "none"
	}
}

// MarshalText renders the status by name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify reports where date (YYYY-MM-DD) falls relative to today. Only the
// calendar date of today is used; its clock time and zone offset are ignored.
// Empty or unparseable dates, and dates more than UpcomingDays out, are None.
func Classify(date string, today time.Time) Status {
	if date == "" {
		return None
	}
	d, err := time.Parse(visit.DateLayout, date)
	if err != nil {
		return None
	}

	diff := DaysBetween(today, d)
	switch {
	case diff < 0:
		return Overdue
	case diff == 0:
		return Today
	case diff <= UpcomingDays:
		return Upcoming
	default:
		return None
	}
}

// DaysBetween returns the whole number of calendar days from a to b, using
// each value's own year, month and day.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// Item is an open follow-up paired with its client.
type Item struct {
	Visit   *visit.Visit   `json:"visit"`
	Client  *client.Client `json:"client"`
	Status  Status         `json:"status"`
	DaysOut int            `json:"days_out"`
}

// Buckets holds open follow-ups by status, each sorted by follow-up date and
// then visit id.
type Buckets struct {
	Overdue  []Item `json:"overdue"`
	Today    []Item `json:"today"`
	Upcoming []Item `json:"upcoming"`
}

// Len returns the number of follow-ups across all buckets.
func (b Buckets) Len() int {
	return len(b.Overdue) + len(b.Today) + len(b.Upcoming)
}

// Group classifies every open follow-up in visits. Completed visits, visits
// without a follow-up date, and visits whose client is not in clients are
// left out.
func Group(visits []*visit.Visit, clients []*client.Client, today time.Time) Buckets {
	byID := make(map[int64]*client.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}

	var b Buckets
	for _, v := range visits {
		if !v.IsOpenFollowUp() {
			continue
		}
		c, ok := byID[v.ClientID]
		if !ok {
			continue
		}

		status := Classify(v.FollowUpDate, today)
		if status == None {
			continue
		}

		d, _ := time.Parse(visit.DateLayout, v.FollowUpDate)
		item := Item{Visit: v, Client: c, Status: status, DaysOut: DaysBetween(today, d)}

		switch status {
		case Overdue:
			b.Overdue = append(b.Overdue, item)
		case Today:
			b.Today = append(b.Today, item)
		case Upcoming:
			b.Upcoming = append(b.Upcoming, item)
		}
	}

	sortItems(b.Overdue)
	sortItems(b.Today)
	sortItems(b.Upcoming)
	return b
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Visit, items[j].Visit
		if a.FollowUpDate != b.FollowUpDate {
			return a.FollowUpDate < b.FollowUpDate
		}
		return a.ID < b.ID
	})
}
