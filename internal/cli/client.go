package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sales-tracker/internal/client"
	"github.com/evcraddock/sales-tracker/internal/tracker"
	"github.com/evcraddock/sales-tracker/internal/visit"
)

func newClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
	}

	cmd.AddCommand(
		newClientAddCmd(),
		newClientEditCmd(),
		newClientListCmd(),
		newClientShowCmd(),
	)

	return cmd
}

// clientFlags binds one flag per editable client field to c.
func clientFlags(cmd *cobra.Command, c *client.Client) map[string]*string {
	fields := map[string]*string{
		"city":    &c.City,
		"state":   &c.State,
		"contact": &c.Contact,
		"phone":   &c.Phone,
		"email":   &c.Email,
		"segment": &c.Segment,
		"status":  &c.Status,
		"notes":   &c.Notes,
	}
	for name, p := range fields {
		cmd.Flags().StringVar(p, name, "", "client "+name)
	}
	return fields
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", what, s)
	}
	return id, nil
}

func newClientAddCmd() *cobra.Command {
	var c client.Client

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a client",
		Long: `Add a client by name. Everything else is optional.

Examples:
  st client add "Acme Corp" --city Springfield --state IL
  st client add Globex --contact "Hank S" --phone 5125550100 --status Prospect`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Name = strings.Join(args, " ")
			return runClientAdd(cmd, &c)
		},
	}

	clientFlags(cmd, &c)

	return cmd
}

func runClientAdd(cmd *cobra.Command, c *client.Client) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	saved, err := svc.AddClient(c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, saved)
	}

	fmt.Fprintln(out, "Client added.")
	printClientSummary(out, saved, region(cfg))
	return nil
}

func newClientEditCmd() *cobra.Command {
	var (
		edits client.Client
		name  string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a client",
		Long: `Change a client's fields. Only the flags you pass are changed.

Examples:
  st client edit 3 --status Dormant
  st client edit 3 --name "Acme Corporation" --phone ""`,
		Args: cobra.ExactArgs(1),
	}

	fields := clientFlags(cmd, &edits)
	cmd.Flags().StringVar(&name, "name", "", "client name")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "client")
		if err != nil {
			return err
		}

		changed := make(map[string]string)
		for flag, p := range fields {
			if cmd.Flags().Changed(flag) {
				changed[flag] = *p
			}
		}
		if cmd.Flags().Changed("name") {
			changed["name"] = name
		}
		if len(changed) == 0 {
			return fmt.Errorf("nothing to change; pass at least one field flag")
		}

		return runClientEdit(cmd, id, changed)
	}

	return cmd
}

func runClientEdit(cmd *cobra.Command, id int64, changed map[string]string) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	c, err := svc.Client(id)
	if err != nil {
		return err
	}

	targets := map[string]*string{
		"name":    &c.Name,
		"city":    &c.City,
		"state":   &c.State,
		"contact": &c.Contact,
		"phone":   &c.Phone,
		"email":   &c.Email,
		"segment": &c.Segment,
		"status":  &c.Status,
		"notes":   &c.Notes,
	}
	for field, value := range changed {
		*targets[field] = value
	}

	saved, err := svc.UpdateClient(c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, saved)
	}

	fmt.Fprintln(out, "Client updated.")
	printClientSummary(out, saved, region(cfg))
	return nil
}

func newClientListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Long:  "List every client with its last visit and open follow-up count.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClientList(cmd, status)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only show clients with this status")

	return cmd
}

func runClientList(cmd *cobra.Command, status string) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	view, err := svc.Reload()
	if err != nil {
		return err
	}

	clients := view.Clients
	if status != "" {
		var filtered []*tracker.EnrichedClient
		for _, c := range clients {
			if strings.EqualFold(c.Status, status) {
				filtered = append(filtered, c)
			}
		}
		clients = filtered
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		if clients == nil {
			clients = []*tracker.EnrichedClient{}
		}
		return printJSON(out, clients)
	}

	return printClientTable(out, clients, region(cfg))
}

func newClientShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show client details",
		Long:  "Show full details for a client, including all visits.",
		Args:  cobra.ExactArgs(1),
		RunE:  runClientShow,
	}
}

func runClientShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "client")
	if err != nil {
		return err
	}

	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	view, err := svc.Reload()
	if err != nil {
		return err
	}

	c, ok := view.Client(id)
	if !ok {
		return fmt.Errorf("client %d: %w", id, client.ErrNotFound)
	}
	visits := view.ClientVisits(id)
	if visits == nil {
		visits = []*visit.Visit{}
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, struct {
			Client *tracker.EnrichedClient `json:"client"`
			Visits []*visit.Visit          `json:"visits"`
		}{c, visits})
	}

	printClientSummary(out, c.Client, region(cfg))
	if c.OpenFollowUps > 0 {
		fmt.Fprintf(out, "  Open follow-ups: %d\n", c.OpenFollowUps)
	}
	fmt.Fprintln(out)
	if len(visits) > 0 {
		fmt.Fprintf(out, "Visits (%d):\n", len(visits))
	}
	printVisits(out, visits)
	return nil
}
