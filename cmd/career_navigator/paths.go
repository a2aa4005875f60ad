package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msaswata15/career-navigation-platform/internal/observability"
	"github.com/msaswata15/career-navigation-platform/internal/types"
)

var (
	pathsConfigPath string
	pathsCurrent    string
	pathsTarget     string
	pathsSkills     []string
	pathsJSON       bool
	pathsVerbose    bool
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Run one career path query from the command line",
	Long:  `Resolve the given roles, search the career graph, analyze skill gaps, and print the scored paths without starting the server.`,
	RunE:  runPaths,
}

func init() {
	pathsCmd.Flags().StringVar(&pathsConfigPath, "config", "", "Path to config.json file (values can be overridden by env vars)")
	pathsCmd.Flags().StringVarP(&pathsCurrent, "current", "c", "", "Current role title (required)")
	pathsCmd.Flags().StringVarP(&pathsTarget, "target", "t", "", "Target role title (optional; omit to explore)")
	pathsCmd.Flags().StringSliceVarP(&pathsSkills, "skills", "s", nil, "Comma-separated list of skills you already have")
	pathsCmd.Flags().BoolVar(&pathsJSON, "json", false, "Print the raw JSON response instead of the summary")
	pathsCmd.Flags().BoolVarP(&pathsVerbose, "verbose", "v", false, "Print detailed debug information")
	_ = pathsCmd.MarkFlagRequired("current")
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(pathsConfigPath)
	if err != nil {
		return err
	}

	log, err := newLogger(pathsVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	d, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.close(ctx)

	resp, err := d.engine.FindCareerPaths(ctx, types.CareerPathRequest{
		CurrentRole: pathsCurrent,
		TargetRole:  pathsTarget,
		UserSkills:  pathsSkills,
	})
	if err != nil {
		return err
	}

	if pathsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if len(resp.Paths) == 0 {
		fmt.Println("No paths found.")
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintPaths(resp)
	printer.PrintSkillGaps(resp.SkillGaps)
	printer.PrintRecommendation(resp.RecommendedPath)
	return nil
}
