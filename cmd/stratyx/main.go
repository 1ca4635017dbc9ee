// Command stratyx is a terminal client for the planner server.
package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	email   string
	timeout time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stratyx",
	Short: "Generate and manage STRATYX marketing plans",
	Long: `stratyx talks to a running planner server.

Projects live under a namespace, normally your email address:
  stratyx projects list -e you@example.com
  stratyx print <id> -e you@example.com`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultURL := os.Getenv("STRATYX_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", defaultURL, "Base URL of the server (or set STRATYX_URL)")
	rootCmd.PersistentFlags().StringVarP(&email, "email", "e", os.Getenv("STRATYX_EMAIL"), "Namespace (or set STRATYX_EMAIL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 3*time.Minute, "Request timeout")

	projectsCmd.AddCommand(projectsListCmd, projectsShowCmd, projectsDeleteCmd, projectsToggleCmd, projectsExtendCmd)
	rootCmd.AddCommand(healthCmd, generateCmd, askCmd, projectsCmd, exportCmd, printCmd)
}

func newClient() *Client {
	return NewClient(baseURL, timeout)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err.Error())
		os.Exit(1)
	}
}
