// Package main implements the ragctl CLI for manual operations against
// the coderagd HTTP admin API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL for the coderagd HTTP server
	serverURL string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ragctl",
	Short: "CLI for coderagd HTTP admin operations",
	Long: `ragctl is a command-line interface for interacting with the coderagd daemon.
It provides commands for resolving qualified names and managing the project registry.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:9090", "coderagd server URL")
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectRemoveCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check coderagd health",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getJSON("/health")
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <qualified-name>",
	Short: "Resolve a qualified symbol name to its project root",
	Long: `Resolve a qualified symbol name to its project root.

Examples:
  # Resolve a symbol
  ragctl resolve user.profile.gateway.service.Func

  # Use a different server
  ragctl resolve --server http://localhost:8080 myproject.module.func`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getJSON("/api/v1/resolve?qualified_name=" + url.QueryEscape(args[0]))
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage the project registry",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getJSON("/api/v1/projects")
	},
}

var projectAddCmd = &cobra.Command{
	Use:   "add <namespace> <path>",
	Short: "Register a project namespace with its filesystem root",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]string{
			"namespace": args[0],
			"path":      args[1],
		})
		if err != nil {
			return err
		}

		resp, err := httpClient().Post(serverURL+"/api/v1/projects", "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		return printResponse(resp)
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:   "remove <namespace>",
	Short: "Remove a registered project namespace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := http.NewRequest(http.MethodDelete, serverURL+"/api/v1/projects/"+url.PathEscape(args[0]), nil)
		if err != nil {
			return err
		}

		resp, err := httpClient().Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNoContent {
			fmt.Printf("removed %s\n", args[0])
			return nil
		}
		return printResponse(resp)
	},
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// getJSON fetches a path and pretty-prints the JSON response.
func getJSON(path string) error {
	resp, err := httpClient().Get(serverURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

// printResponse pretty-prints a JSON response body and fails the
// command on non-2xx status codes.
func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		pretty.Write(body)
	}
	fmt.Println(pretty.String())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
