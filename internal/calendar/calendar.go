// Package calendar renders a visit follow-up as an iCalendar (.ics) document.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

const (
	prodID    = "-//sales-tracker//st//EN"
	startHour = 9
	duration  = time.Hour
	alarm     = "-PT15M"
	lineLimit = 75
)

// uidSpace namespaces follow-up UIDs so re-exporting a visit yields the same
// event instead of a duplicate.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/evcraddock/sales-tracker/followup"))

// ErrNoFollowUp is returned for visits without a usable follow-up date.
var ErrNoFollowUp = errors.New("visit has no follow-up date")

// UID returns the stable event UID for a visit.
func UID(v *visit.Visit) string {
	return uuid.NewSHA1(uidSpace, []byte(strconv.FormatInt(v.ID, 10))).String() + "@sales-tracker"
}

// Event returns a VCALENDAR document holding one one-hour event at 09:00 local
// time on the visit's follow-up date, with a display alarm 15 minutes before.
// now stamps DTSTAMP.
func Event(c *client.Client, v *visit.Visit, now time.Time) (string, error) {
	if v.FollowUpDate == "" {
		return "", fmt.Errorf("visit %d: %w", v.ID, ErrNoFollowUp)
	}
	day, err := time.Parse(visit.DateLayout, v.FollowUpDate)
	if err != nil {
		return "", fmt.Errorf("visit %d: follow-up date %q: %w", v.ID, v.FollowUpDate, ErrNoFollowUp)
	}

	start := day.Add(startHour * time.Hour)
	end := start.Add(duration)
	summary := "Follow up: " + c.Name

	var b strings.Builder
	w := func(name, value string) {
		b.WriteString(fold(name + ":" + value))
		b.WriteString("\r\n")
	}

	w("BEGIN", "VCALENDAR")
	w("VERSION", "2.0")
	w("PRODID", prodID)
	w("CALSCALE", "GREGORIAN")
	w("METHOD", "PUBLISH")
	w("BEGIN", "VEVENT")
	w("UID", UID(v))
	w("DTSTAMP", now.UTC().Format("20060102T150405Z"))
	w("DTSTART", start.Format("20060102T150405"))
	w("DTEND", end.Format("20060102T150405"))
	w("SUMMARY", escape(summary))
	if desc := Description(v); desc != "" {
		w("DESCRIPTION", escape(desc))
	}
	if loc := location(c); loc != "" {
		w("LOCATION", escape(loc))
	}
	w("BEGIN", "VALARM")
	w("TRIGGER", alarm)
	w("ACTION", "DISPLAY")
	w("DESCRIPTION", escape(summary))
	w("END", "VALARM")
	w("END", "VEVENT")
	w("END", "VCALENDAR")

	return b.String(), nil
}

// Description joins the visit's next action and note, one per line.
func Description(v *visit.Visit) string {
	var parts []string
	if s := strings.TrimSpace(v.NextAction); s != "" {
		parts = append(parts, "Next: "+s)
	}
	if s := strings.TrimSpace(v.Note); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

func location(c *client.Client) string {
	switch {
	case c.City != "" && c.State != "":
		return c.City + ", " + c.State
	default:
		return c.City + c.State
	}
}

// Filename returns a download name like followup-acme-corp-2025-03-04.ics.
func Filename(c *client.Client, v *visit.Visit) string {
	name := slug(c.Name)
	if name == "" {
		name = "client-" + strconv.FormatInt(c.ID, 10)
	}
	return "followup-" + name + "-" + v.FollowUpDate + ".ics"
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// escape applies RFC 5545 TEXT escaping.
func escape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
		"\r", `\n`,
	)
	return r.Replace(s)
}

// fold splits a content line into chunks of at most 75 octets, continuing
// with CRLF and a single space. Multi-byte runes are never split.
func fold(line string) string {
	if len(line) <= lineLimit {
		return line
	}

	var b strings.Builder
	limit := lineLimit
	n := 0
	for len(line) > 0 {
		_, size := utf8.DecodeRuneInString(line)
		if n+size > limit {
			b.WriteString("\r\n ")
			n = 0
			limit = lineLimit - 1
		}
		b.WriteString(line[:size])
		n += size
		line = line[size:]
	}
	return b.String()
}
