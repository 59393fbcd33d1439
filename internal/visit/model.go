// Package visit provides the client visit log domain model and data access.
package visit

import "time"

// DateLayout is the storage format for visit and follow-up dates.
const DateLayout = "2006-01-02"

// Known touch types. Stored values are free strings; these are the ones the
// CLI and forms offer.
const (
	TouchCall      = "Call"
	TouchSiteVisit = "Site Visit"
	TouchMeeting   = "Meeting"
	TouchEmail     = "Email"
)

// TouchTypes is the set of offered touch types, in display order.
var TouchTypes = []string{TouchCall, TouchSiteVisit, TouchMeeting, TouchEmail}

// Lead temperature signals.
const (
	SignalHot  = "Hot"
	SignalWarm = "Warm"
	SignalCold = "Cold"
)

// Signals is the set of offered signals, hottest first.
var Signals = []string{SignalHot, SignalWarm, SignalCold}

// DefaultPriority is assigned to visits created without a priority.
const DefaultPriority = "medium"

// Visit represents one logged touch with a client, optionally carrying a
// follow-up date.
type Visit struct {
	ID           int64     `json:"id"`
	ClientID     int64     `json:"client_id"`
	Date         string    `json:"date"` // YYYY-MM-DD
	TouchType    string    `json:"touch_type"`
	Outcome      string    `json:"outcome"`
	Products     string    `json:"products"`
	Signal       string    `json:"signal"`
	Note         string    `json:"note"`
	NextAction   string    `json:"next_action"`
	FollowUpDate string    `json:"follow_up_date,omitempty"` // YYYY-MM-DD, empty = none
	Priority     string    `json:"priority"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasFollowUp reports whether the visit carries a follow-up date.
func (v *Visit) HasFollowUp() bool {
	return v.FollowUpDate != ""
}

// IsOpenFollowUp reports whether the visit is a dated follow-up not yet done.
// Completed is meaningless without a follow-up date.
func (v *Visit) IsOpenFollowUp() bool {
	return v.HasFollowUp() && !v.Completed
}

// SignalIcon returns a short marker for a signal, used in tables.
func SignalIcon(signal string) string {
	switch signal {
	case SignalHot:
		return "▲"
	case SignalWarm:
		return "●"
	case SignalCold:
		return "▼"
	default:
		return "-"
	}
}
