package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/ticketbridge/contact-sync/internal/seeder"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed fake events",
	Long:  "Generate fake registration events and post them to a running service",
	Example: `  syncctl seed --count 50
  syncctl seed --count 10 --seed 42 --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		serviceURL, _ := cmd.Flags().GetString("url")

		if count <= 0 {
			return fmt.Errorf("--count must be positive")
		}
		if seed != 0 {
			seeder.Seed(seed)
		}

		sent := 0
		for i := 0; i < count; i++ {
			event := seeder.RandomEvent()
			payload, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to encode event: %w", err)
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				continue
			}

			status, body, err := postEvent(serviceURL, payload)
			if err != nil {
				return fmt.Errorf("failed to send event %d: %w", i+1, err)
			}
			if status != http.StatusOK {
				return fmt.Errorf("event %d rejected: %d %s", i+1, status, body)
			}
			sent++
			time.Sleep(50 * time.Millisecond)
		}

		if !dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %d events\n", sent)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntP("count", "n", 10, "number of events to generate")
	seedCmd.Flags().Int64("seed", 0, "random seed for reproducible runs")
	seedCmd.Flags().Bool("dry-run", false, "print events instead of sending them")
}
