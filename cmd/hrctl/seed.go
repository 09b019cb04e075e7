package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	employeestore "hrcore/internal/employee/store/employee"
	professionstore "hrcore/internal/employee/store/profession"
	"hrcore/internal/platform/database"
	"hrcore/internal/seeder"
	timesheetstore "hrcore/internal/timesheet/store/timesheet"
)

func (c *cli) seedCmd() *cobra.Command {
	var fixturesPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo employees, professions and timesheets",
		Long:  "Loads fixture records into Postgres. Records that already exist are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if c.cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}

			var opts []seeder.Option
			if fixturesPath != "" {
				f, err := os.Open(fixturesPath)
				if err != nil {
					return err
				}
				defer f.Close()
				fixtures, err := seeder.LoadFixtures(f)
				if err != nil {
					return fmt.Errorf("%s: %w", fixturesPath, err)
				}
				opts = append(opts, seeder.WithFixtures(fixtures))
			}

			pool, err := database.New(ctx, c.cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close() //nolint:errcheck // process exit follows

			db := pool.DB()
			res, err := seeder.New(
				employeestore.NewPostgres(db),
				professionstore.NewPostgres(db),
				timesheetstore.NewPostgres(db),
				c.log,
				opts...,
			).SeedAll(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d\n", res.Created, res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturesPath, "fixtures", "", "YAML fixtures file (default: embedded demo data)")
	return cmd
}
