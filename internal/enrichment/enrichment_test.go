package enrichment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaswata15/career-navigation-platform/internal/llm"
	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// fakeClient returns a reply keyed by the destination role in the prompt.
type fakeClient struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	calls   int
}

func (f *fakeClient) Complete(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for key, err := range f.errs {
		if strings.Contains(prompt, key) {
			return "", err
		}
	}
	for key, reply := range f.replies {
		if strings.Contains(prompt, key) {
			return reply, nil
		}
	}
	return "{}", nil
}

func (f *fakeClient) CompleteJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.Complete(ctx, prompt, tier)
}

func (f *fakeClient) Close() error { return nil }

func samplePath() types.Path {
	return types.Path{
		Roles: []string{"Developer", "Senior Developer", "Staff Engineer"},
		Transitions: []types.TransitionDetail{
			{Step: 1, FromRole: "Developer", ToRole: "Senior Developer", RequiredSkills: []string{"System Design"}},
			{Step: 2, FromRole: "Senior Developer", ToRole: "Staff Engineer"},
		},
	}
}

func TestEnrichPath_FillsSteps(t *testing.T) {
	client := &fakeClient{replies: map[string]string{
		"to 'Senior Developer'": `{
			"learning_resources": [{"skill": "System Design", "title": "Designing Data-Intensive Applications", "resource_type": "book"}],
			"certifications": [{"name": "AWS Solutions Architect", "provider": "AWS"}],
			"practical_projects": [{"project_title": "Design a URL shortener"}]
		}`,
	}}
	e := New(client, nil)

	path := samplePath()
	e.EnrichPath(context.Background(), &path, []string{"Go"})

	first := path.Transitions[0]
	require.Len(t, first.LearningResources, 1)
	assert.Equal(t, "Designing Data-Intensive Applications", first.LearningResources[0].Title)
	require.Len(t, first.Certifications, 1)
	require.Len(t, first.PracticalProjects, 1)

	assert.Equal(t, 2, client.calls, "one call per transition")
}

func TestEnrichPath_FailedStepStaysEmpty(t *testing.T) {
	client := &fakeClient{
		errs: map[string]error{"to 'Senior Developer'": errors.New("timeout")},
		replies: map[string]string{
			"to 'Staff Engineer'": `{"learning_resources": [{"skill": "Architecture", "title": "Staff Engineer"}]}`,
		},
	}
	e := New(client, nil)

	path := samplePath()
	e.EnrichPath(context.Background(), &path, nil)

	assert.Empty(t, path.Transitions[0].LearningResources)
	require.Len(t, path.Transitions[1].LearningResources, 1)
}

func TestEnrichPath_UndecodableReplyIgnored(t *testing.T) {
	client := &fakeClient{replies: map[string]string{
		"to 'Senior Developer'": "here are some great resources for you!",
	}}
	e := New(client, nil)

	path := samplePath()
	e.EnrichPath(context.Background(), &path, nil)

	assert.Empty(t, path.Transitions[0].LearningResources)
}

func TestEnrichPath_NilClientNoOp(t *testing.T) {
	e := New(nil, nil)

	path := samplePath()
	e.EnrichPath(context.Background(), &path, nil)

	assert.Empty(t, path.Transitions[0].LearningResources)
}
