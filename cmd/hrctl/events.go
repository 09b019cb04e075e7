package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"hrcore/internal/events"
	"hrcore/internal/platform/kafka/consumer"
)

func (c *cli) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect lifecycle events",
	}

	var fromStart bool
	var group string
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Print lifecycle events from Kafka as JSON lines until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if group == "" {
				group = "hrctl-tail-" + uuid.NewString()
			}
			out := json.NewEncoder(cmd.OutOrStdout())
			cons, err := consumer.New(consumer.Config{
				Brokers:   c.cfg.Kafka.Brokers,
				GroupID:   group,
				Topics:    []string{c.cfg.Kafka.Topic},
				FromStart: fromStart,
			}, consumer.HandlerFunc(func(ctx context.Context, msg *consumer.Message) error {
				event, err := events.Decode(msg.Value)
				if err != nil {
					c.log.WarnContext(ctx, "skipping undecodable event", "offset", msg.Offset, "error", err)
					return nil
				}
				return out.Encode(event)
			}), c.log)
			if err != nil {
				return err
			}
			defer cons.Close()

			c.log.Info("tailing lifecycle events", "topic", c.cfg.Kafka.Topic, "group", group)
			if err := cons.Run(cmd.Context()); err != nil {
				return fmt.Errorf("tail events: %w", err)
			}
			return nil
		},
	}
	tail.Flags().BoolVar(&fromStart, "from-start", false, "read the topic from the earliest offset")
	tail.Flags().StringVar(&group, "group", "", "consumer group ID (default: a fresh group per run)")

	cmd.AddCommand(tail)
	return cmd
}
