package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sales-tracker/internal/export"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Export clients and visits to a spreadsheet",
		Long: `Write every client and visit to an Excel workbook. The Visits sheet uses
the same columns "st import visits" reads.`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	view, err := svc.Reload()
	if err != nil {
		return err
	}

	if err := export.WriteFile(view, args[0]); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, map[string]interface{}{
			"file":    args[0],
			"clients": len(view.Clients),
			"visits":  len(view.Visits),
		})
	}

	fmt.Fprintf(out, "Exported %d clients and %d visits to %s\n", len(view.Clients), len(view.Visits), args[0])
	return nil
}
