package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFollowUpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "followups",
		Aliases: []string{"fu"},
		Short:   "Show overdue, today's and upcoming follow-ups",
		Long:    "List open follow-ups: overdue, due today, and due within the next 7 days.",
		Args:    cobra.NoArgs,
		RunE:    runFollowUps,
	}
}

func runFollowUps(cmd *cobra.Command, args []string) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	view, err := svc.Reload()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, view.FollowUps)
	}

	fmt.Fprintf(out, "As of %s\n\n", view.AsOf.Format("Mon Jan 2, 2006"))
	printFollowUps(out, view.FollowUps)
	return nil
}
