// Package cli defines the cobra command tree for sales-tracker.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sales-tracker/internal/db"
	"github.com/evcraddock/sales-tracker/internal/logging"
	"github.com/evcraddock/sales-tracker/internal/tracker"
)

var (
	flagFormat string
	flagDB     string

	// cfg is loaded before every command runs.
	cfg Config
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "st",
		Short: "Track field-sales clients, visits and follow-ups",
		Long: "A local tracker for a field rep's clients and visits. Log touches, " +
			"import spreadsheets, see overdue and upcoming follow-ups, and export them to your calendar.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.sales-tracker/tracker.db)")

	root.AddCommand(
		newClientCmd(),
		newLogCmd(),
		newVisitsCmd(),
		newFollowUpsCmd(),
		newDoneCmd(),
		newImportCmd(),
		newICSCmd(),
		newExportCmd(),
		newSeedCmd(),
		newRemindCmd(),
		newServeCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// setup loads .env and config, then configures logging.
func setup(cmd *cobra.Command, args []string) error {
	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("invalid --format %q (use text or json)", flagFormat)
	}
	if err := loadDotEnv(); err != nil {
		return err
	}

	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if level == "" {
		level = "warn"
	}
	logging.Setup(level, cfg.LogJSON)
	return nil
}

// openDB opens the SQLite database using the --db flag, config, or default path.
func openDB() (*sql.DB, error) {
	path, err := dbPath(cfg)
	if err != nil {
		return nil, err
	}
	return db.Open(path)
}

// openService opens the database and wraps it in a tracker service. The
// caller closes the returned database.
func openService() (*tracker.Service, *sql.DB, error) {
	database, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return tracker.NewService(database), database, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
