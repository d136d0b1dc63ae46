package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check service health",
	Long:  "Probe the service health and readiness endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceURL, _ := cmd.Flags().GetString("url")
		client := &http.Client{Timeout: 5 * time.Second}

		for _, probe := range []string{"/healthz", "/readyz"} {
			resp, err := client.Get(serviceURL + probe)
			if err != nil {
				return fmt.Errorf("%s unreachable: %w", probe, err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("%s returned %d", probe, resp.StatusCode)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ok\n", probe)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
