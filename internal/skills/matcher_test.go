package skills

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps known texts to fixed vectors. Unknown texts embed to a
// vector orthogonal to everything else.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vector(t)
	}
	return out, nil
}

func (f *fakeEmbedder) vector(text string) []float32 {
	if v, ok := f.vectors[text]; ok {
		return v
	}
	return []float32{0, 0, 0, 1}
}

func newFake() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float32{
		"Python":        {1, 0, 0, 0},
		"python3":       {0.95, 0.05, 0, 0},
		"System Design": {0, 1, 0, 0},
		"Golang":        {0, 0, 1, 0},
		"Go":            {0, 0.1, 0.99, 0},
	}}
}

func TestMatch_HalfCovered(t *testing.T) {
	m := New(newFake(), 0, nil)

	result, err := m.Match(context.Background(), []string{"python3"}, []string{"Python", "System Design"})
	require.NoError(t, err)

	assert.Equal(t, 50.0, result.MatchPercentage)
	require.Len(t, result.MatchedSkills, 1)
	assert.Equal(t, "Python", result.MatchedSkills[0].Required)
	assert.Equal(t, "python3", result.MatchedSkills[0].UserHas)
	assert.GreaterOrEqual(t, result.MatchedSkills[0].MatchScore, 0.7)
	assert.Equal(t, []string{"System Design"}, result.MissingSkills)
}

func TestMatch_AllCovered(t *testing.T) {
	m := New(newFake(), 0, nil)

	result, err := m.Match(context.Background(), []string{"Go", "python3"}, []string{"Golang", "Python"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.MatchPercentage)
	assert.Empty(t, result.MissingSkills)
}

func TestMatch_EmptyRequiredShortCircuits(t *testing.T) {
	fake := newFake()
	m := New(fake, 0, nil)

	result, err := m.Match(context.Background(), []string{"Python"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.MatchPercentage)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
	assert.Zero(t, fake.calls, "no embeddings for empty input")
}

func TestMatch_EmptyUserSkillsShortCircuits(t *testing.T) {
	fake := newFake()
	m := New(fake, 0, nil)

	result, err := m.Match(context.Background(), nil, []string{"Python", "System Design"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.MatchPercentage)
	assert.Equal(t, []string{"Python", "System Design"}, result.MissingSkills)
	assert.Zero(t, fake.calls)
}

func TestMatch_DeduplicatesRequired(t *testing.T) {
	m := New(newFake(), 0, nil)

	result, err := m.Match(context.Background(), []string{"python3"}, []string{"Python", "python", "  Python  "})
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.MatchPercentage)
	assert.Len(t, result.MatchedSkills, 1)
}

func TestMatch_ThresholdExcludesWeakMatches(t *testing.T) {
	// python3 vs Golang is near-orthogonal; only an exact concept passes.
	m := New(newFake(), 0.9, nil)

	result, err := m.Match(context.Background(), []string{"Go"}, []string{"Golang", "Python"})
	require.NoError(t, err)
	require.Len(t, result.MatchedSkills, 1)
	assert.Equal(t, "Golang", result.MatchedSkills[0].Required)
	assert.Equal(t, []string{"Python"}, result.MissingSkills)
}

func TestMatch_EmbedderError(t *testing.T) {
	m := New(&fakeEmbedder{err: errors.New("quota exceeded")}, 0, nil)

	_, err := m.Match(context.Background(), []string{"Python"}, []string{"Golang"})
	assert.Error(t, err)
}

func TestMatchBatch_PreservesOrder(t *testing.T) {
	m := New(newFake(), 0, nil)

	results, err := m.MatchBatch(context.Background(), []string{"python3"}, [][]string{
		{"Python"},
		{"System Design"},
		{"Python", "System Design"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 100.0, results[0].MatchPercentage)
	assert.Equal(t, 0.0, results[1].MatchPercentage)
	assert.Equal(t, 50.0, results[2].MatchPercentage)
}

func TestMatchBatch_FailureDegradesToAllMissing(t *testing.T) {
	m := New(&fakeEmbedder{err: errors.New("unavailable")}, 0, nil)

	results, err := m.MatchBatch(context.Background(), []string{"Python"}, [][]string{{"Golang", "System Design"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].MatchPercentage)
	assert.Equal(t, []string{"Golang", "System Design"}, results[0].MissingSkills)
}

func TestDedupeNonEmpty(t *testing.T) {
	out := dedupeNonEmpty([]string{" Go ", "go", "", "Python", "GO"})
	assert.Equal(t, []string{"Go", "Python"}, out)
}
