// Package main provides crmctl, a terminal client for the CRM API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pranavvermapv/real-estate-crm/pkg/client"
)

var (
	// serverURL is set by the --server flag.
	serverURL string

	// api is the shared API client, initialized on startup.
	api *client.Client
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "crmctl manages leads, properties and documents of the CRM",
	Long: `crmctl is a terminal client for the real-estate CRM API. It lists,
adds, edits and deletes leads and properties, and uploads PDF documents.

Filtering happens locally on the fetched list, the same way the browser
dashboard filters: a case-insensitive substring match, recomputed without
another server fetch.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		api = client.New(serverURL)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3001", "base URL of the CRM API server")

	rootCmd.AddCommand(leadsCmd)
	rootCmd.AddCommand(propertiesCmd)
	rootCmd.AddCommand(docsCmd)
}
