// Package main provides the entry point for the career navigation service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_navigator",
	Short: "Career Path Navigation Service",
	Long:  "Career Navigator discovers realistic career transition paths over a role graph, analyzes skill gaps against them, and synthesizes cross-industry plans when the graph has nothing to offer.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
