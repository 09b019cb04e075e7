// Command hrctl runs operational tasks against an hrcore deployment: schema
// migrations, demo data, offline record checks and lifecycle event tailing.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hrcore/internal/platform/config"
	"hrcore/internal/platform/logger"
)

// errRecordsInvalid makes the process exit 1 without printing an error line;
// the check command has already reported every problem.
var errRecordsInvalid = errors.New("one or more records failed validation")

type cli struct {
	envFile string
	cfg     config.Server
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "hrctl",
		Short:         "Operate an hrcore deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if c.envFile != "" {
				c.cfg = config.Load(c.envFile)
			} else {
				c.cfg = config.Load()
			}
			c.log = logger.NewWithWriter(cmd.ErrOrStderr(), c.cfg.LogLevel)
		},
	}
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "dotenv file to load (default .env)")

	root.AddCommand(
		c.migrateCmd(),
		c.seedCmd(),
		c.checkCmd(),
		c.eventsCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errRecordsInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
