// Package enrichment augments transition steps with concrete learning
// material: resources, certifications, and practice projects suggested by
// the generative text service.
package enrichment

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/msaswata15/career-navigation-platform/internal/llm"
	"github.com/msaswata15/career-navigation-platform/internal/prompts"
	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// Enricher fills in per-step learning material.
type Enricher struct {
	llm llm.Client
	log *zap.Logger
}

// New creates an Enricher. A nil client disables enrichment entirely.
func New(client llm.Client, log *zap.Logger) *Enricher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Enricher{llm: client, log: log}
}

// stepResources mirrors the JSON the service returns for one step.
type stepResources struct {
	LearningResources []types.LearningResource `json:"learning_resources"`
	Certifications    []types.Certification    `json:"certifications"`
	PracticalProjects []types.PracticalProject `json:"practical_projects"`
}

// EnrichPath requests learning material for every transition of a path
// concurrently and writes results back by step index. Enrichment is
// best-effort: a failed step stays unenriched and the path is still usable.
func (e *Enricher) EnrichPath(ctx context.Context, path *types.Path, userSkills []string) {
	if e.llm == nil || path == nil || len(path.Transitions) == 0 {
		return
	}

	template := prompts.MustGet("enrichment.json", "step-resources")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range path.Transitions {
		step := &path.Transitions[i]
		g.Go(func() error {
			prompt := prompts.Format(template, map[string]string{
				"FromRole":   step.FromRole,
				"ToRole":     step.ToRole,
				"UserSkills": strings.Join(userSkills, ", "),
				"StepSkills": strings.Join(step.RequiredSkills, ", "),
			})

			reply, err := e.llm.CompleteJSON(gctx, prompt, llm.TierStandard)
			if err != nil {
				e.log.Warn("step enrichment failed",
					zap.String("from", step.FromRole),
					zap.String("to", step.ToRole),
					zap.Error(err))
				return nil
			}

			var res stepResources
			if err := json.Unmarshal([]byte(llm.CleanJSONBlock(reply)), &res); err != nil {
				e.log.Warn("step enrichment returned undecodable JSON",
					zap.String("from", step.FromRole),
					zap.String("to", step.ToRole),
					zap.Error(err))
				return nil
			}

			// Each goroutine owns exactly one step, so no locking is needed.
			step.LearningResources = res.LearningResources
			step.Certifications = res.Certifications
			step.PracticalProjects = res.PracticalProjects
			return nil
		})
	}
	_ = g.Wait()
}
