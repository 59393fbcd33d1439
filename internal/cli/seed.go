package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sales-tracker/internal/seed"
)

func newSeedCmd() *cobra.Command {
	opts := seed.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo data",
		Long: `Add made-up clients and visits for trying things out. Pass --seed to get
the same data every time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Clients, "clients", opts.Clients, "number of clients")
	cmd.Flags().IntVar(&opts.MaxVisits, "max-visits", opts.MaxVisits, "most visits per client")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 = random)")

	return cmd
}

func runSeed(cmd *cobra.Command, opts seed.Options) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer closeDB(database)

	res, err := seed.Run(svc, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if isJSON() {
		return printJSON(out, res)
	}

	fmt.Fprintf(out, "Added %d clients and %d visits.\n", res.Clients, res.Visits)
	return nil
}
