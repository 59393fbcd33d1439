package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import clients or visits from a spreadsheet paste",
		Long: `Import tab- or comma-separated rows copied from a spreadsheet.

The first row must be a header. Columns are matched by name, so order
doesn't matter. Pass "-" to read from stdin.`,
	}

	cmd.AddCommand(newImportClientsCmd(), newImportVisitsCmd())

	return cmd
}

func newImportClientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clients <file|->",
		Short: "Import clients",
		Long: `Import clients. Recognized columns: Client (or Name), City, State, Contact,
Phone, Email, Segment, Status, Notes. Rows without a name are ignored.

Examples:
  st import clients clients.csv
  pbpaste | st import clients -`,
		Args: cobra.ExactArgs(1),
		RunE: runImportClients,
	}
}

func newImportVisitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visits <file|->",
		Short: "Import visits",
		Long: `Import visits. Each row's Client column must match an existing client
name (case and spacing are ignored). Rows with no matching client or an
unreadable date are skipped.

Examples:
  st import visits visits.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: runImportVisits,
	}
}

// readInput reads a whole file, or stdin when name is "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

func runImportClients(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	n, err := svc.ImportClients(text)
	if err != nil {
		return fmt.Errorf("import stopped after %d clients: %w", n, err)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, map[string]int{"imported": n})
	}

	fmt.Fprintf(out, "Imported %d clients.\n", n)
	return nil
}

func runImportVisits(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	res, err := svc.ImportVisits(text)
	if err != nil {
		return fmt.Errorf("import stopped after %d visits (%d skipped): %w", res.Imported, res.Skipped, err)
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, res)
	}

	fmt.Fprintf(out, "Imported %d visits, skipped %d rows.\n", res.Imported, res.Skipped)
	return nil
}
