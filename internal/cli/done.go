package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <visit-id>",
		Short: "Mark a follow-up done",
		Long:  "Mark a visit's follow-up completed. Nothing else about the visit changes.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDone,
	}
}

func runDone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "visit")
	if err != nil {
		return err
	}

	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	if err := svc.MarkFollowUpDone(id); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		v, err := svc.Visit(id)
		if err != nil {
			return err
		}
		return printJSON(out, v)
	}

	fmt.Fprintf(out, "Follow-up #%d marked done.\n", id)
	return nil
}
