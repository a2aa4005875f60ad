package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msaswata15/career-navigation-platform/internal/config"
	"github.com/msaswata15/career-navigation-platform/internal/graph"
	"github.com/msaswata15/career-navigation-platform/internal/seed"
)

var (
	seedConfigPath string
	seedVerbose    bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in career dataset into the graph database",
	Long:  `Create the graph schema and upsert the built-in roles, transitions, and skill requirements. Safe to re-run; existing nodes are updated in place.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedConfigPath, "config", "", "Path to config.json file (values can be overridden by env vars)")
	seedCmd.Flags().BoolVarP(&seedVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if seedConfigPath != "" {
		loaded, err := config.LoadConfig(seedConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.FromEnv()
	if cfg.Neo4jURI == "" {
		return fmt.Errorf("config error: 'neo4j_uri' is required")
	}

	log, err := newLogger(seedVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ds, err := seed.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := graph.NewNeo4jStore(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(ctx) }()

	if err := seed.Apply(ctx, ds, store, log); err != nil {
		return err
	}

	fmt.Printf("Seeded %d roles, %d transitions, %d skill requirements\n",
		len(ds.Roles), len(ds.Transitions), len(ds.SkillRequirements))
	return nil
}
