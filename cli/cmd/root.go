package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"nagapi/cli/api"
)

var (
	apiURL string
	client *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "nagapi",
	Short: "Query and control a Nagios-style monitoring daemon over its HTTP API",
	Long: `nagapi — terminal client for the nagapi server.

Inspect host and service state, read the daemon's recent log, and schedule
or cancel downtimes without touching the daemon's files by hand.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		client = api.New(apiURL, os.Getenv("NAGAPI_TOKEN"))
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultURL := os.Getenv("NAGAPI_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8866"
	}
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultURL, "nagapi server URL")
}
