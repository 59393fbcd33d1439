// Package importer maps pasted spreadsheet rows onto client and visit records.
//
// Both importers read the first row as a header and look values up by
// normalized column name, so column order doesn't matter. Rows are written one
// at a time in file order; a store error stops the import and leaves earlier
// rows committed.
package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/delimited"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

// ClientStore persists imported clients.
type ClientStore interface {
	Add(c *client.Client) (*client.Client, error)
}

// VisitStore persists imported visits.
type VisitStore interface {
	Add(v *visit.Visit) (*visit.Visit, error)
}

// Result summarizes a visit import.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// record gives keyed access to one data row.
type record struct {
	index map[string]int
	row   []string
}

// get returns the first non-empty value among keys, or "".
func (r record) get(keys ...string) string {
	for _, k := range keys {
		i, ok := r.index[k]
		if !ok || i >= len(r.row) {
			continue
		}
		if v := stripQuotes(r.row[i]); v != "" {
			return v
		}
	}
	return ""
}

func stripQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}

// headerIndex maps each normalized header to its column position. On
// duplicate headers the first column wins.
func headerIndex(header []string, normalize func(string) string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := normalize(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	return index
}

// clientKey lowercases and trims a client header, folding "client" into "name".
func clientKey(h string) string {
	k := strings.ToLower(strings.TrimSpace(h))
	if k == "client" {
		return "name"
	}
	return k
}

// visitKey lowercases a visit header and drops everything but a-z and 0-9,
// so "Follow-up Date" and "follow up date" both become "followupdate".
func visitKey(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ImportClients adds one client per data row of text and returns how many
// were added. Rows with fewer than two fields, an empty first field, or no
// name are ignored and not counted.
func ImportClients(text string, store ClientStore) (int, error) {
	rows := delimited.Parse(text)
	if len(rows) < 2 {
		return 0, nil
	}

	index := headerIndex(rows[0], clientKey)
	imported := 0

	for n, row := range rows[1:] {
		if len(row) < 2 || row[0] == "" {
			continue
		}

		rec := record{index: index, row: row}
		c := &client.Client{
			Name:    rec.get("name"),
			City:    rec.get("city"),
			State:   rec.get("state"),
			Contact: rec.get("contact"),
			Phone:   rec.get("phone"),
			Email:   rec.get("email"),
			Segment: rec.get("segment"),
			Status:  rec.get("status"),
			Notes:   rec.get("notes"),
		}
		if c.Name == "" {
			continue
		}
		if c.Status == "" {
			c.Status = client.DefaultStatus
		}

		if _, err := store.Add(c); err != nil {
			return imported, fmt.Errorf("importing client row %d: %w", n+2, err)
		}
		imported++
	}

	return imported, nil
}

// ImportVisits adds one visit per data row of text. The client column is
// matched against clients (the caller's loaded list, not the store) ignoring
// case and surrounding or repeated whitespace. Rows that are too short, blank
// in both leading columns, name an unknown client, or carry a visit date that
// is neither ISO nor M/D/YYYY are skipped and counted. Follow-up dates in any
// other format are stored as given.
func ImportVisits(text string, clients []*client.Client, store VisitStore, today time.Time) (Result, error) {
	var res Result

	rows := delimited.Parse(text)
	if len(rows) < 2 {
		return res, nil
	}

	byName := make(map[string]int64, len(clients))
	for _, c := range clients {
		key := NormalizeName(c.Name)
		if _, dup := byName[key]; !dup {
			byName[key] = c.ID
		}
	}

	index := headerIndex(rows[0], visitKey)

	for n, row := range rows[1:] {
		if len(row) < 2 || (row[0] == "" && row[1] == "") {
			res.Skipped++
			continue
		}

		rec := record{index: index, row: row}
		clientID, ok := byName[NormalizeName(rec.get("client"))]
		if !ok {
			res.Skipped++
			continue
		}

		date := NormalizeDate(rec.get("date"))
		if date == "" {
			date = today.Format(visit.DateLayout)
		}
		// The store only accepts ISO visit dates; anything else is a bad row.
		if _, err := time.Parse(visit.DateLayout, date); err != nil {
			res.Skipped++
			continue
		}
		followUp := NormalizeDate(rec.get("followupdate", "followup"))
		nextAction := rec.get("nextaction")
		outcome := rec.get("outcome")

		v := &visit.Visit{
			ClientID:     clientID,
			Date:         date,
			TouchType:    rec.get("touchtype", "type"),
			Outcome:      outcome,
			Products:     rec.get("products", "product"),
			Signal:       rec.get("signal"),
			Note:         firstNonEmpty(rec.get("note", "notes"), nextAction, outcome),
			NextAction:   nextAction,
			FollowUpDate: followUp,
			Priority:     rec.get("priority"),
			Completed:    followUp == "",
		}
		if v.TouchType == "" {
			v.TouchType = visit.TouchCall
		}
		if v.Priority == "" {
			v.Priority = visit.DefaultPriority
		}

		if _, err := store.Add(v); err != nil {
			return res, fmt.Errorf("importing visit row %d: %w", n+2, err)
		}
		res.Imported++
	}

	return res, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
