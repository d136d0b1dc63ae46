package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "syncctl",
	Short: "contact-sync operator CLI",
	Long: `syncctl is the command-line companion for the contact-sync service.

Send test registration events, check service health, and seed a running
instance with realistic fake traffic.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("url", "http://localhost:8080", "contact-sync service URL")
}
