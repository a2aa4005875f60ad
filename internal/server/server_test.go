package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaswata15/career-navigation-platform/internal/engine"
	"github.com/msaswata15/career-navigation-platform/internal/llm"
	"github.com/msaswata15/career-navigation-platform/internal/resolver"
	"github.com/msaswata15/career-navigation-platform/internal/search"
	"github.com/msaswata15/career-navigation-platform/internal/similarity"
	"github.com/msaswata15/career-navigation-platform/internal/skills"
	"github.com/msaswata15/career-navigation-platform/internal/types"
)

type fakeStore struct {
	titles     []string
	titlesErr  error
	skillNames []string
	paths      []types.Path
	roleSkills map[string][]types.SkillRequirement
}

func (f *fakeStore) AllRoleTitles(context.Context) ([]string, error) {
	return f.titles, f.titlesErr
}

func (f *fakeStore) AllSkillNames(context.Context) ([]string, error) {
	return f.skillNames, nil
}

func (f *fakeStore) FindPaths(context.Context, string, string, int) ([]types.Path, error) {
	return f.paths, nil
}

func (f *fakeStore) HighImportanceSkills(_ context.Context, role string) ([]types.SkillRequirement, error) {
	return f.roleSkills[role], nil
}

func (f *fakeStore) Close(context.Context) error { return nil }

type fakeEmbedder struct {
	mu      sync.Mutex
	indices map[string]int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	if f.indices == nil {
		f.indices = make(map[string]int)
	}
	idx, ok := f.indices[strings.ToLower(text)]
	if !ok {
		idx = len(f.indices)
		f.indices[strings.ToLower(text)] = idx
	}
	f.mu.Unlock()

	v := make([]float32, 64)
	v[idx%64] = 1
	return v, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = f.Embed(ctx, t)
	}
	return out, nil
}

type fakeLLM struct{ reply string }

func (f *fakeLLM) Complete(context.Context, string, llm.ModelTier) (string, error) {
	return f.reply, nil
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.Complete(ctx, prompt, tier)
}

func (f *fakeLLM) Close() error { return nil }

func newTestServer(t *testing.T, store *fakeStore) *httptest.Server {
	t.Helper()

	client := &fakeLLM{reply: "NONE"}
	embedder := &fakeEmbedder{}
	eng := engine.New(
		store,
		resolver.New(client, resolver.Options{}, nil),
		search.New(store, 0, nil),
		skills.New(embedder, 0, nil),
		nil, nil, nil,
	)

	s, err := New(Config{
		Addr:   ":0",
		Engine: eng,
		Graph:  store,
		Oracle: similarity.NewOracle(embedder),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(s.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func pathStore() *fakeStore {
	return &fakeStore{
		titles:     []string{"Software Engineer", "Senior Software Engineer"},
		skillNames: []string{"Go", "Python", "System Design"},
		paths: []types.Path{{
			Roles:         []string{"Software Engineer", "Senior Software Engineer"},
			TotalMonths:   24,
			AvgDifficulty: 4,
			SalaryGrowth:  35000,
			Transitions: []types.TransitionDetail{{
				Step:     1,
				FromRole: "Software Engineer",
				ToRole:   "Senior Software Engineer",
			}},
		}},
		roleSkills: map[string][]types.SkillRequirement{
			"Senior Software Engineer": {{SkillName: "System Design", Importance: "critical", Proficiency: 5}},
		},
	}
}

func jsonDecode(resp *http.Response, v any) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

func TestCareerPaths_OK(t *testing.T) {
	ts := newTestServer(t, pathStore())

	resp, err := http.Post(ts.URL+"/api/v1/career-paths", "application/json",
		strings.NewReader(`{"current_role": "Software Engineer", "user_skills": ["Go"]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body types.CareerPathResponse
	require.NoError(t, jsonDecode(resp, &body))
	require.Len(t, body.Paths, 1)
	assert.NotNil(t, body.RecommendedPath)
	assert.Equal(t, []string{"Software Engineer", "Senior Software Engineer"}, body.Paths[0].Roles)
}

func TestCareerPaths_InvalidJSON(t *testing.T) {
	ts := newTestServer(t, pathStore())

	resp, err := http.Post(ts.URL+"/api/v1/career-paths", "application/json",
		strings.NewReader(`{current_role`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCareerPaths_MissingCurrentRole(t *testing.T) {
	ts := newTestServer(t, pathStore())

	resp, err := http.Post(ts.URL+"/api/v1/career-paths", "application/json",
		strings.NewReader(`{"user_skills": ["Go"]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCareerPaths_GraphDownReturns503(t *testing.T) {
	ts := newTestServer(t, &fakeStore{titlesErr: errors.New("connection refused")})

	resp, err := http.Post(ts.URL+"/api/v1/career-paths", "application/json",
		strings.NewReader(`{"current_role": "Software Engineer"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSimilarSkills_OK(t *testing.T) {
	ts := newTestServer(t, pathStore())

	resp, err := http.Get(ts.URL + "/api/v1/skills/similar/Go?limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		SimilarSkills []similarSkill `json:"similar_skills"`
	}
	require.NoError(t, jsonDecode(resp, &body))
	require.Len(t, body.SimilarSkills, 2)
	// The skill itself embeds identically, so it ranks first.
	assert.Equal(t, "Go", body.SimilarSkills[0].Skill)
	assert.InDelta(t, 1.0, body.SimilarSkills[0].SimilarityScore, 1e-9)
}

func TestSimilarSkills_BadLimit(t *testing.T) {
	ts := newTestServer(t, pathStore())

	resp, err := http.Get(ts.URL + "/api/v1/skills/similar/Go?limit=zero")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, pathStore())

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, jsonDecode(resp, &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, pathStore())

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/career-paths", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
