package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msaswata15/career-navigation-platform/internal/config"
	"github.com/msaswata15/career-navigation-platform/internal/graph"
	"github.com/msaswata15/career-navigation-platform/internal/similarity"
)

var (
	similarConfigPath string
	similarLimit      int
	similarVerbose    bool
)

var similarCmd = &cobra.Command{
	Use:   "similar <skill>",
	Short: "Find skills semantically similar to the given one",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().StringVar(&similarConfigPath, "config", "", "Path to config.json file (values can be overridden by env vars)")
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", 5, "Maximum number of results")
	similarCmd.Flags().BoolVarP(&similarVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{}
	if similarConfigPath != "" {
		loaded, err := config.LoadConfig(similarConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.FromEnv()
	if cfg.Neo4jURI == "" {
		return fmt.Errorf("config error: 'neo4j_uri' is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("config error: 'api_key' is required")
	}
	if similarLimit < 1 {
		return fmt.Errorf("limit must be a positive integer")
	}

	log, err := newLogger(similarVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := graph.NewNeo4jStore(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(ctx) }()

	embedder, err := similarity.NewGeminiEmbedder(ctx, cfg.APIKey, "")
	if err != nil {
		return err
	}
	defer func() { _ = embedder.Close() }()

	corpus, err := store.AllSkillNames(ctx)
	if err != nil {
		return err
	}
	if len(corpus) == 0 {
		fmt.Println("The graph has no skills; run the seed command first.")
		return nil
	}

	matches, err := similarity.NewOracle(embedder).Rank(ctx, args[0], corpus, similarLimit)
	if err != nil {
		return err
	}

	for _, m := range matches {
		fmt.Printf("%-40s %.3f\n", m.Text, m.Score)
	}
	return nil
}
