package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newICSCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "ics <visit-id>",
		Short: "Export a follow-up as a calendar event",
		Long: `Write a visit's follow-up as an .ics file you can open in any calendar.

The event runs 9-10 AM on the follow-up date with a 15 minute reminder.
By default the file is written to the current directory with a suggested
name; use -o - to print it instead.

Examples:
  st ics 12
  st ics 12 -o ~/Desktop/acme.ics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "visit")
			if err != nil {
				return err
			}
			return runICS(cmd, id, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, or "-" for stdout`)

	return cmd
}

func runICS(cmd *cobra.Command, id int64, output string) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	filename, ics, err := svc.FollowUpEvent(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output == "-" {
		_, err := fmt.Fprint(out, ics)
		return err
	}
	if output == "" {
		output = filename
	}

	if err := os.WriteFile(output, []byte(ics), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	if isJSON() {
		return printJSON(out, map[string]string{"file": output})
	}

	fmt.Fprintf(out, "Wrote %s\n", output)
	return nil
}
