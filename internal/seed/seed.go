// Package seed fills a tracker with plausible demo clients and visits.
package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/tracker"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

// Options controls how much demo data is generated.
type Options struct {
	Clients   int   // number of clients to add
	MaxVisits int   // each client gets 0..MaxVisits visits
	Seed      int64 // 0 picks a random seed
}

// DefaultOptions returns the settings used by `st seed`.
func DefaultOptions() Options {
	return Options{Clients: 10, MaxVisits: 4}
}

// Result counts what was added.
type Result struct {
	Clients int `json:"clients"`
	Visits  int `json:"visits"`
}

var (
	segments   = []string{"Enterprise", "Mid-Market", "SMB", "Distributor"}
	statuses   = []string{"Active", "Active", "Active", "Prospect", "Dormant"}
	products   = []string{"Widgets", "Gaskets", "Fasteners", "Sensors", "Service Plan"}
	outcomes   = []string{"Left voicemail", "Good conversation", "Requested pricing", "Demo scheduled", "Not interested right now"}
	actions    = []string{"Send quote", "Call back", "Drop off samples", "Email brochure", "Schedule site visit"}
	priorities = []string{"low", "medium", "medium", "high"}
)

// Run adds opts.Clients clients, each with a few visits spread over the last
// 60 days. About half the visits carry a follow-up between five days ago and
// ten days out, so every follow-up bucket gets something.
func Run(s *tracker.Service, opts Options) (Result, error) {
	var res Result
	if opts.Clients <= 0 {
		return res, nil
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := gofakeit.New(seed)
	today := s.Now()

	for i := 0; i < opts.Clients; i++ {
		c, err := s.AddClient(&client.Client{
			Name:    f.Company(),
			City:    f.City(),
			State:   f.StateAbr(),
			Contact: f.Name(),
			Phone:   f.Phone(),
			Email:   f.Email(),
			Segment: f.RandomString(segments),
			Status:  f.RandomString(statuses),
			Notes:   f.Sentence(6),
		})
		if err != nil {
			return res, fmt.Errorf("seeding client %d: %w", i+1, err)
		}
		res.Clients++

		if opts.MaxVisits <= 0 {
			continue
		}
		for j, n := 0, f.Number(0, opts.MaxVisits); j < n; j++ {
			in := tracker.VisitInput{
				ClientID:   c.ID,
				Date:       today.AddDate(0, 0, -f.Number(0, 60)).Format(visit.DateLayout),
				TouchType:  f.RandomString(visit.TouchTypes),
				Outcome:    f.RandomString(outcomes),
				Products:   f.RandomString(products),
				Signal:     f.RandomString(visit.Signals),
				Note:       f.Sentence(8),
				NextAction: f.RandomString(actions),
				Priority:   f.RandomString(priorities),
			}
			if f.Bool() {
				in.FollowUpDate = today.AddDate(0, 0, f.Number(-5, 10)).Format(visit.DateLayout)
			}

			if _, err := s.LogVisit(in); err != nil {
				return res, fmt.Errorf("seeding visit for %s: %w", c.Name, err)
			}
			res.Visits++
		}
	}

	return res, nil
}
