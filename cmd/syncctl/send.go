package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send an event",
	Long:  "Post a single registration event to the webhook endpoint",
	Example: `  syncctl send --file event.json
  cat event.json | syncctl send`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		var payload []byte
		var err error
		if file != "" {
			payload, err = os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read event file: %w", err)
			}
		} else {
			payload, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		}

		if len(payload) == 0 {
			return fmt.Errorf("no event payload (use --file or pipe JSON on stdin)")
		}
		if !json.Valid(payload) {
			return fmt.Errorf("event payload is not valid JSON")
		}

		serviceURL, _ := cmd.Flags().GetString("url")
		status, body, err := postEvent(serviceURL, payload)
		if err != nil {
			return fmt.Errorf("failed to send event: %w", err)
		}
		if status != http.StatusOK {
			return fmt.Errorf("service rejected event: %d %s", status, body)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Event accepted")
		return nil
	},
}

func postEvent(serviceURL string, payload []byte) (int, string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Post(serviceURL+"/webhook", "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(bytes.TrimSpace(body)), nil
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringP("file", "f", "", "JSON file with the event payload")
}
