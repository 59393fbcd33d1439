package tracker

import (
	"time"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/followup"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

// EnrichedClient is a client plus fields derived from its visits.
type EnrichedClient struct {
	*client.Client
	LastVisitDate string `json:"last_visit_date"`
	LastVisitNote string `json:"last_visit_note"`
	OpenFollowUps int    `json:"open_follow_ups"`
}

// View is a snapshot of everything the tracker shows. It is built by
// Service.Reload and never updated in place; reload after a mutation.
type View struct {
	AsOf      time.Time         `json:"as_of"`
	Clients   []*EnrichedClient `json:"clients"`
	Visits    []*visit.Visit    `json:"-"`
	FollowUps followup.Buckets  `json:"follow_ups"`

	byID map[int64]*EnrichedClient
}

// Client returns the enriched client with id, if loaded.
func (v *View) Client(id int64) (*EnrichedClient, bool) {
	c, ok := v.byID[id]
	return c, ok
}

// ClientVisits returns the loaded visits for a client, newest first.
func (v *View) ClientVisits(id int64) []*visit.Visit {
	var out []*visit.Visit
	for _, vis := range v.Visits {
		if vis.ClientID == id {
			out = append(out, vis)
		}
	}
	return out
}

// buildView derives the view from clients and visits. visits must be ordered
// newest first, as visit.Repository.List returns them.
func buildView(clients []*client.Client, visits []*visit.Visit, now time.Time) *View {
	v := &View{
		AsOf:    now,
		Clients: make([]*EnrichedClient, 0, len(clients)),
		Visits:  visits,
		byID:    make(map[int64]*EnrichedClient, len(clients)),
	}

	for _, c := range clients {
		ec := &EnrichedClient{Client: c}
		v.Clients = append(v.Clients, ec)
		v.byID[c.ID] = ec
	}

	for _, vis := range visits {
		ec, ok := v.byID[vis.ClientID]
		if !ok {
			continue
		}
		if ec.LastVisitDate == "" {
			ec.LastVisitDate = vis.Date
			ec.LastVisitNote = vis.Note
		}
		if vis.IsOpenFollowUp() {
			ec.OpenFollowUps++
		}
	}

	v.FollowUps = followup.Group(visits, clients, now)
	return v
}
