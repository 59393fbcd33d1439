package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/digest"
	"github.com/evcraddock/sales-tracker/internal/followup"
	"github.com/evcraddock/sales-tracker/internal/tracker"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printClientSummary prints a single client in text format.
func printClientSummary(w io.Writer, c *client.Client, region string) {
	fmt.Fprintf(w, "Client #%d\n", c.ID)
	fmt.Fprintf(w, "  Name:     %s\n", c.Name)
	if loc := location(c); loc != "" {
		fmt.Fprintf(w, "  Location: %s\n", loc)
	}
	if c.Contact != "" {
		fmt.Fprintf(w, "  Contact:  %s\n", c.Contact)
	}
	if c.Phone != "" {
		fmt.Fprintf(w, "  Phone:    %s\n", client.FormatPhone(c.Phone, region))
	}
	if c.Email != "" {
		fmt.Fprintf(w, "  Email:    %s\n", c.Email)
	}
	if c.Segment != "" {
		fmt.Fprintf(w, "  Segment:  %s\n", c.Segment)
	}
	fmt.Fprintf(w, "  Status:   %s\n", c.Status)
	if c.Notes != "" {
		fmt.Fprintf(w, "  Notes:    %s\n", c.Notes)
	}
}

// printClientTable prints enriched clients as a formatted table.
func printClientTable(out io.Writer, clients []*tracker.EnrichedClient, region string) error {
	if len(clients) == 0 {
		fmt.Fprintln(out, "No clients found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tNAME\tLOCATION\tPHONE\tSTATUS\tLAST VISIT\tOPEN"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t----\t--------\t-----\t------\t----------\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, c := range clients {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
			c.ID, truncate(c.Name, 30), dash(truncate(location(c.Client), 24)),
			dash(client.FormatPhone(c.Phone, region)), c.Status,
			dash(c.LastVisitDate), c.OpenFollowUps); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d clients\n", len(clients))
	return nil
}

// printVisits prints visits in text format, newest first.
func printVisits(w io.Writer, visits []*visit.Visit) {
	if len(visits) == 0 {
		fmt.Fprintln(w, "No visits recorded.")
		return
	}

	for _, v := range visits {
		printVisit(w, v)
		fmt.Fprintln(w)
	}
}

// printVisit prints one visit in text format.
func printVisit(w io.Writer, v *visit.Visit) {
	fmt.Fprintf(w, "[%s] %s %s (#%d)\n", v.Date, visit.SignalIcon(v.Signal), v.TouchType, v.ID)
	if v.Outcome != "" {
		fmt.Fprintf(w, "  Outcome:   %s\n", v.Outcome)
	}
	if v.Products != "" {
		fmt.Fprintf(w, "  Products:  %s\n", v.Products)
	}
	if v.Note != "" {
		fmt.Fprintf(w, "  %s\n", v.Note)
	}
	if v.NextAction != "" {
		fmt.Fprintf(w, "  Next:      %s\n", v.NextAction)
	}
	if v.HasFollowUp() {
		state := "open"
		if v.Completed {
			state = "done"
		}
		fmt.Fprintf(w, "  Follow-up: %s (%s, %s priority)\n", v.FollowUpDate, state, v.Priority)
	}
}

// printFollowUps prints the three follow-up buckets.
func printFollowUps(w io.Writer, b followup.Buckets) {
	if b.Len() == 0 {
		fmt.Fprintln(w, "No follow-ups due.")
		return
	}

	section := func(title string, items []followup.Item) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(w, "%s (%d)\n", title, len(items))
		for _, it := range items {
			action := it.Visit.NextAction
			if action == "" {
				action = it.Visit.Note
			}
			fmt.Fprintf(w, "  #%-4d %s  %-12s %s: %s\n",
				it.Visit.ID, it.Visit.FollowUpDate, digest.When(it.DaysOut),
				it.Client.Name, truncate(action, 50))
		}
		fmt.Fprintln(w)
	}

	section("Overdue", b.Overdue)
	section("Today", b.Today)
	section("Upcoming", b.Upcoming)
}

func location(c *client.Client) string {
	switch {
	case c.City != "" && c.State != "":
		return c.City + ", " + c.State
	default:
		return c.City + c.State
	}
}

// dash replaces an empty table cell with "-".
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
