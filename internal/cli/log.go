package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sales-tracker/internal/tracker"
)

func newLogCmd() *cobra.Command {
	var in tracker.VisitInput

	cmd := &cobra.Command{
		Use:   "log <client-id>",
		Short: "Log a visit with a client",
		Long: `Log a call, site visit, meeting or email with a client.

Date format: YYYY-MM-DD (default today)
Touch types: Call, Site Visit, Meeting, Email
Signals:     Hot, Warm, Cold

Examples:
  st log 3 --note "Walked the line, wants pricing" --type "Site Visit" --signal Hot
  st log 3 --note "Left voicemail" --next "Call back" --follow-up 2025-03-14 --priority high`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "client")
			if err != nil {
				return err
			}
			in.ClientID = id
			return runLog(cmd, in)
		},
	}

	cmd.Flags().StringVarP(&in.Note, "note", "n", "", "what happened (required)")
	cmd.Flags().StringVarP(&in.Date, "date", "d", "", "visit date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&in.TouchType, "type", "t", "", "touch type (default Call)")
	cmd.Flags().StringVar(&in.Outcome, "outcome", "", "outcome")
	cmd.Flags().StringVar(&in.Products, "products", "", "products discussed")
	cmd.Flags().StringVar(&in.Signal, "signal", "", "lead signal: Hot, Warm or Cold")
	cmd.Flags().StringVar(&in.NextAction, "next", "", "next action")
	cmd.Flags().StringVarP(&in.FollowUpDate, "follow-up", "f", "", "follow-up date, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Priority, "priority", "", "follow-up priority (default medium)")

	return cmd
}

func runLog(cmd *cobra.Command, in tracker.VisitInput) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	v, err := svc.LogVisit(in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, v)
	}

	fmt.Fprintln(out, "Visit logged.")
	printVisit(out, v)
	return nil
}
