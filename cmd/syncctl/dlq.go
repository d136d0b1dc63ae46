package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/ticketbridge/contact-sync/internal/dlq"
)

var dlqCmd = &cobra.Command{
	Use:   "dlq",
	Short: "Dead letter queue commands",
	Long:  "Inspect events whose contact-store write failed",
}

var dlqListCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured events",
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats-url")
		limit, _ := cmd.Flags().GetInt("limit")

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		queue, err := dlq.NewJetStreamQueue(ctx, natsURL)
		if err != nil {
			return fmt.Errorf("failed to connect to DLQ: %w", err)
		}
		defer queue.Close()

		events, err := queue.List(ctx, limit)
		if err != nil {
			return fmt.Errorf("failed to list DLQ entries: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "DLQ is empty")
			return nil
		}

		for _, evt := range events {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  reason=%s  error=%s\n",
				evt.Timestamp.Format(time.RFC3339), evt.Reason, evt.Error)
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", string(evt.Payload))
		}
		return nil
	},
}

var dlqStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show queue statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		natsURL, _ := cmd.Flags().GetString("nats-url")

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		queue, err := dlq.NewJetStreamQueue(ctx, natsURL)
		if err != nil {
			return fmt.Errorf("failed to connect to DLQ: %w", err)
		}
		defer queue.Close()

		out, err := json.MarshalIndent(queue.Stats(ctx), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dlqCmd)
	dlqCmd.AddCommand(dlqListCmd)
	dlqCmd.AddCommand(dlqStatsCmd)

	dlqCmd.PersistentFlags().String("nats-url", "nats://localhost:4222", "NATS server URL")
	dlqListCmd.Flags().IntP("limit", "n", 20, "maximum entries to list")
}
