// Package resolver maps free-text role input onto canonical role titles in
// the career graph. Resolution is an escalating cascade: cheap in-process
// stages run first and the generative text service is consulted only as a
// last resort, so worst-case external call volume stays bounded.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/msaswata15/career-navigation-platform/internal/llm"
	"github.com/msaswata15/career-navigation-platform/internal/prompts"
)

// ErrNoMatch indicates the input could not be mapped to any canonical role.
// Callers decide whether to degrade to the raw input or to "no paths".
var ErrNoMatch = errors.New("no matching canonical role")

// Stage identifies which cascade stage produced a resolution.
type Stage string

// Cascade stages, in escalation order.
const (
	StageUnresolved Stage = "unresolved"
	StageExact      Stage = "exact"
	StageNormalized Stage = "normalized"
	StageFiltered   Stage = "filtered"
	StageService    Stage = "service"
	StageFailed     Stage = "failed"
)

// noMatchSentinel is the reply the selection prompts use for "no good match".
const noMatchSentinel = "NONE"

// Options tunes the cascade. Zero values select the defaults.
type Options struct {
	// FilterThreshold is the canonical-set size above which the keyword
	// pre-filter is engaged before any service call.
	FilterThreshold int
	// MaxFilterCandidates caps the keyword pre-filter's survivor list.
	MaxFilterCandidates int
	// MaxPromptCandidates caps the candidate list sent in one service call.
	MaxPromptCandidates int
	// ChunkSize is the partition size for the chunked full-set search.
	ChunkSize int
	// Synonyms overrides the default synonym table.
	Synonyms SynonymTable
}

func (o *Options) applyDefaults() {
	if o.FilterThreshold <= 0 {
		o.FilterThreshold = 500
	}
	if o.MaxFilterCandidates <= 0 {
		o.MaxFilterCandidates = 50
	}
	if o.MaxPromptCandidates <= 0 {
		o.MaxPromptCandidates = 100
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = 100
	}
	if o.Synonyms == nil {
		o.Synonyms = DefaultSynonyms()
	}
}

// Resolution is the outcome of a successful resolve.
type Resolution struct {
	Title string
	Stage Stage
}

// Resolver maps user role input onto canonical graph titles.
type Resolver struct {
	llm  llm.Client
	opts Options
	log  *zap.Logger
}

// New creates a Resolver. The llm client may be nil, in which case the
// service-assisted stage is skipped and resolution fails in-process.
func New(client llm.Client, opts Options, log *zap.Logger) *Resolver {
	opts.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{llm: client, opts: opts, log: log}
}

// Resolve maps userInput onto a member of canonical. Stages 1-3 are
// deterministic and run in-process; stage 4 consults the generative text
// service and is best-effort: any service error degrades to ErrNoMatch.
func (r *Resolver) Resolve(ctx context.Context, userInput string, canonical []string) (Resolution, error) {
	input := strings.TrimSpace(userInput)
	if input == "" || len(canonical) == 0 {
		return Resolution{Stage: StageFailed}, ErrNoMatch
	}

	// Stage 1: case-insensitive exact match.
	for _, title := range canonical {
		if strings.EqualFold(title, input) {
			return Resolution{Title: title, Stage: StageExact}, nil
		}
	}

	// Stage 2: normalized match (dashes/underscores as spaces, lowercased).
	normInput := normalizeTitle(input)
	for _, title := range canonical {
		if normalizeTitle(title) == normInput {
			return Resolution{Title: title, Stage: StageNormalized}, nil
		}
	}

	// Stage 3: keyword pre-filter, engaged only for large canonical sets.
	candidates := canonical
	if len(canonical) > r.opts.FilterThreshold {
		scored := r.filterByKeywords(input, canonical)
		if len(scored) == 1 {
			return Resolution{Title: scored[0], Stage: StageFiltered}, nil
		}
		candidates = scored
	}

	// Stage 4: service-assisted disambiguation.
	if r.llm == nil {
		return Resolution{Stage: StageFailed}, ErrNoMatch
	}

	var title string
	var err error
	if len(candidates) == 0 {
		// The pre-filter eliminated everything; fall back to a chunked
		// search across the full canonical set.
		title, err = r.resolveChunked(ctx, input, canonical)
	} else {
		if len(candidates) > r.opts.MaxPromptCandidates {
			candidates = candidates[:r.opts.MaxPromptCandidates]
		}
		title, err = r.askService(ctx, input, candidates, canonical)
	}
	if err != nil {
		r.log.Warn("service-assisted role resolution failed",
			zap.String("input", input), zap.Error(err))
		return Resolution{Stage: StageFailed}, ErrNoMatch
	}
	if title == "" {
		return Resolution{Stage: StageFailed}, ErrNoMatch
	}
	return Resolution{Title: title, Stage: StageService}, nil
}

// normalizeTitle lowercases and folds dash/underscore separators to spaces.
func normalizeTitle(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// tokenize splits a string into lowercase alphanumeric tokens.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}

// filterByKeywords scores each candidate by token overlap with the
// synonym-expanded input and keeps the best non-zero scorers.
func (r *Resolver) filterByKeywords(input string, canonical []string) []string {
	queryTokens := r.opts.Synonyms.Expand(tokenize(input))
	if len(queryTokens) == 0 {
		return nil
	}

	type scoredRole struct {
		title string
		score int
	}
	scored := make([]scoredRole, 0, 64)

	for _, title := range canonical {
		lower := strings.ToLower(title)
		titleTokens := make(map[string]bool)
		for _, tok := range tokenize(title) {
			titleTokens[tok] = true
		}

		exact, contained := 0, 0
		for _, tok := range queryTokens {
			if titleTokens[tok] {
				exact++
			} else if strings.Contains(lower, tok) {
				contained++
			}
		}

		if score := 10*exact + contained; score > 0 {
			scored = append(scored, scoredRole{title: title, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > r.opts.MaxFilterCandidates {
		scored = scored[:r.opts.MaxFilterCandidates]
	}

	titles := make([]string, len(scored))
	for i, s := range scored {
		titles[i] = s.title
	}
	return titles
}

// askService asks the text service to pick one candidate. The reply is
// validated against the full canonical set, not just the filtered subset.
func (r *Resolver) askService(ctx context.Context, input string, candidates, canonical []string) (string, error) {
	template := prompts.MustGet("resolver.json", "disambiguate-role")
	prompt := prompts.Format(template, map[string]string{
		"Roles":     formatRoleList(candidates),
		"UserInput": input,
	})

	reply, err := r.llm.Complete(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("disambiguation call failed: %w", err)
	}

	return matchReply(reply, canonical), nil
}

// resolveChunked partitions the full canonical set, asks for a per-chunk
// pick, and disambiguates across chunk hits when more than one survives.
func (r *Resolver) resolveChunked(ctx context.Context, input string, canonical []string) (string, error) {
	template := prompts.MustGet("resolver.json", "chunk-pick")

	var hits []string
	for start := 0; start < len(canonical); start += r.opts.ChunkSize {
		end := start + r.opts.ChunkSize
		if end > len(canonical) {
			end = len(canonical)
		}
		chunk := canonical[start:end]

		prompt := prompts.Format(template, map[string]string{
			"Roles":     formatRoleList(chunk),
			"UserInput": input,
		})
		reply, err := r.llm.Complete(ctx, prompt, llm.TierLite)
		if err != nil {
			return "", fmt.Errorf("chunk search failed: %w", err)
		}
		if title := matchReply(reply, chunk); title != "" {
			hits = append(hits, title)
		}
	}

	switch len(hits) {
	case 0:
		return "", nil
	case 1:
		return hits[0], nil
	default:
		// One final pass over just the chunk winners.
		return r.askService(ctx, input, hits, canonical)
	}
}

// matchReply cleans a service reply and returns the canonical member it
// names, or empty when the reply is the sentinel or not a member.
func matchReply(reply string, canonical []string) string {
	cleaned := llm.CleanLabelReply(reply)
	if cleaned == "" || strings.EqualFold(cleaned, noMatchSentinel) {
		return ""
	}
	for _, title := range canonical {
		if strings.EqualFold(title, cleaned) {
			return title
		}
	}
	return ""
}

func formatRoleList(roles []string) string {
	var sb strings.Builder
	for _, role := range roles {
		sb.WriteString("- ")
		sb.WriteString(role)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
