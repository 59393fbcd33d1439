package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/sales-tracker/internal/visit"
)

func newVisitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visits <client-id>",
		Short: "List visits for a client",
		Long:  "Show all logged visits for a client, newest first.",
		Args:  cobra.ExactArgs(1),
		RunE:  runVisits,
	}
}

func runVisits(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "client")
	if err != nil {
		return err
	}

	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	visits, err := svc.ClientVisits(id)
	if err != nil {
		return err
	}

	if isJSON() {
		if visits == nil {
			visits = []*visit.Visit{}
		}
		return printJSON(cmd.OutOrStdout(), visits)
	}

	printVisits(cmd.OutOrStdout(), visits)
	return nil
}
