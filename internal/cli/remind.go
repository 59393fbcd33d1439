package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sales-tracker/internal/digest"
	"github.com/evcraddock/sales-tracker/internal/logging"
	"github.com/evcraddock/sales-tracker/internal/tracker"
)

func newRemindCmd() *cobra.Command {
	var (
		schedule string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Print a digest of due follow-ups",
		Long: `Print today's follow-up digest: overdue, due today and the next 7 days,
with contact details for each client.

With --watch the digest is printed on a cron schedule until interrupted.
The schedule comes from --schedule, ST_REMIND_SCHEDULE or the config file.

Examples:
  st remind
  st remind --watch
  st remind --schedule "30 7 * * 1-5"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("schedule") {
				watch = true
			} else {
				schedule = cfg.RemindSchedule
			}
			if !watch {
				return runRemindOnce(cmd.OutOrStdout())
			}
			if schedule == "" {
				schedule = defaultConfig().RemindSchedule
			}
			return runRemindWatch(cmd, schedule)
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "cron schedule; implies --watch")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and print the digest on a schedule")

	return cmd
}

func runRemindOnce(out io.Writer) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	return printDigest(out, svc)
}

func printDigest(out io.Writer, svc *tracker.Service) error {
	view, err := svc.Reload()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(out, view.FollowUps)
	}

	_, err = fmt.Fprint(out, digest.Format(view.FollowUps, view.AsOf, region(cfg)))
	return err
}

func runRemindWatch(cmd *cobra.Command, schedule string) error {
	if cfg.LogLevel == "" {
		logging.Setup("info", cfg.LogJSON)
	}

	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	out := cmd.OutOrStdout()
	sched, err := digest.NewScheduler(schedule, func() {
		if err := printDigest(out, svc); err != nil {
			slog.Error("digest failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched.Start()
	<-ctx.Done()
	sched.Stop()

	slog.Info("reminders stopped")
	return nil
}
