// Package digest formats open follow-ups as a plain-text reminder and runs it
// on a cron schedule.
package digest

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/followup"
)

// Format builds the digest body for b as of today. region controls how phone
// numbers are shown.
func Format(b followup.Buckets, today time.Time, region string) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Follow-ups for %s\n\n", today.Format("Mon Jan 2, 2006"))

	if b.Len() == 0 {
		fmt.Fprintf(&buf, "Nothing due in the next %d days.\n", followup.UpcomingDays)
		return buf.String()
	}

	section(&buf, "Overdue", b.Overdue, region)
	section(&buf, "Today", b.Today, region)
	section(&buf, "Upcoming", b.Upcoming, region)

	fmt.Fprintf(&buf, "%d open follow-up(s).\n", b.Len())
	return buf.String()
}

func section(buf *bytes.Buffer, title string, items []followup.Item, region string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(buf, "%s (%d)\n", title, len(items))
	for i, it := range items {
		v := it.Visit
		action := v.NextAction
		if action == "" {
			action = v.Note
		}
		fmt.Fprintf(buf, "%d. %s: %s\n", i+1, it.Client.Name, action)

		details := []string{v.FollowUpDate + " (" + When(it.DaysOut) + ")"}
		if v.Priority != "" {
			details = append(details, v.Priority+" priority")
		}
		if v.Signal != "" {
			details = append(details, v.Signal)
		}
		fmt.Fprintf(buf, "   %s\n", strings.Join(details, " | "))

		if contact := contactLine(it.Client, region); contact != "" {
			fmt.Fprintf(buf, "   %s\n", contact)
		}
	}
	fmt.Fprintln(buf)
}

// When describes a day offset relative to today.
func When(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

func contactLine(c *client.Client, region string) string {
	var parts []string
	if c.Contact != "" {
		parts = append(parts, c.Contact)
	}
	if c.Phone != "" {
		parts = append(parts, client.FormatPhone(c.Phone, region))
	}
	if c.Email != "" {
		parts = append(parts, c.Email)
	}
	return strings.Join(parts, " | ")
}
