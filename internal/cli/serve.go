package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sales-tracker/internal/logging"
	"github.com/evcraddock/sales-tracker/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API",
		Long: `Serve the tracker over HTTP on localhost so other tools can read and
update it. Stops cleanly on Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, port int) error {
	if cfg.LogLevel == "" {
		logging.Setup("info", cfg.LogJSON)
	}

	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://127.0.0.1:%d\n", port)
	return web.NewServer(svc, region(cfg)).ListenAndServe(ctx, port)
}
