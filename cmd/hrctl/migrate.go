package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hrcore/internal/platform/migrate"
)

func (c *cli) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return c.withRunner(func(r *migrate.Runner) error { return r.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return c.withRunner(func(r *migrate.Runner) error { return r.Down() })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withRunner(func(r *migrate.Runner) error {
					version, dirty, err := r.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				return c.withRunner(func(r *migrate.Runner) error { return r.Force(version) })
			},
		},
	)
	return cmd
}

func (c *cli) withRunner(fn func(*migrate.Runner) error) error {
	runner, err := migrate.New(c.cfg.Database.URL, c.log)
	if err != nil {
		return err
	}
	defer runner.Close() //nolint:errcheck // source and driver handles only
	return fn(runner)
}
