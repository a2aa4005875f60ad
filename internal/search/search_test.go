package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaswata15/career-navigation-platform/internal/types"
)

type fakeStore struct {
	paths     []types.Path
	pathsErr  error
	skills    map[string][]types.SkillRequirement
	skillsErr map[string]error
}

func (f *fakeStore) AllRoleTitles(context.Context) ([]string, error) { return nil, nil }

func (f *fakeStore) AllSkillNames(context.Context) ([]string, error) { return nil, nil }

func (f *fakeStore) FindPaths(context.Context, string, string, int) ([]types.Path, error) {
	return f.paths, f.pathsErr
}

func (f *fakeStore) HighImportanceSkills(_ context.Context, role string) ([]types.SkillRequirement, error) {
	if err := f.skillsErr[role]; err != nil {
		return nil, err
	}
	return f.skills[role], nil
}

func (f *fakeStore) Close(context.Context) error { return nil }

func twoHopPath() types.Path {
	return types.Path{
		Roles:         []string{"Junior Developer", "Developer", "Senior Developer"},
		TotalMonths:   36,
		AvgDifficulty: 4.0,
		SalaryGrowth:  50000,
		Transitions: []types.TransitionDetail{
			{Step: 1, FromRole: "Junior Developer", ToRole: "Developer", DurationMonths: 18, Difficulty: 3},
			{Step: 2, FromRole: "Developer", ToRole: "Senior Developer", DurationMonths: 18, Difficulty: 5},
		},
	}
}

func TestSearch_AttachesSkills(t *testing.T) {
	store := &fakeStore{
		paths: []types.Path{twoHopPath()},
		skills: map[string][]types.SkillRequirement{
			"Developer": {
				{SkillName: "Git", Proficiency: 3, Importance: "high"},
			},
			"Senior Developer": {
				{SkillName: "System Design", Proficiency: 5, Importance: "critical"},
				{SkillName: "Mentoring", Proficiency: 4, Importance: "high"},
			},
		},
	}
	s := New(store, 4, nil)

	paths, err := s.Search(context.Background(), "Junior Developer", "Senior Developer")
	require.NoError(t, err)
	require.Len(t, paths, 1)

	path := paths[0]
	assert.Equal(t, 36, path.TotalMonths)
	assert.Equal(t, 4.0, path.AvgDifficulty)
	assert.Equal(t, []string{"Git"}, path.Transitions[0].RequiredSkills)
	assert.Equal(t, []string{"System Design", "Mentoring"}, path.Transitions[1].RequiredSkills)
	// Path-level requirements come from the final role.
	assert.Equal(t, []string{"System Design", "Mentoring"}, path.RequiredSkills)
}

func TestSearch_SkillLookupFailureDegrades(t *testing.T) {
	store := &fakeStore{
		paths:     []types.Path{twoHopPath()},
		skillsErr: map[string]error{"Developer": errors.New("connection reset")},
		skills: map[string][]types.SkillRequirement{
			"Senior Developer": {{SkillName: "System Design", Proficiency: 5, Importance: "critical"}},
		},
	}
	s := New(store, 4, nil)

	paths, err := s.Search(context.Background(), "Junior Developer", "Senior Developer")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Empty(t, paths[0].Transitions[0].RequiredSkills)
	assert.Equal(t, []string{"System Design"}, paths[0].Transitions[1].RequiredSkills)
}

func TestSearch_StoreErrorPropagates(t *testing.T) {
	store := &fakeStore{pathsErr: errors.New("graph unavailable")}
	s := New(store, 4, nil)

	_, err := s.Search(context.Background(), "Junior Developer", "")
	assert.Error(t, err)
}

func TestSearch_NoPaths(t *testing.T) {
	s := New(&fakeStore{}, 4, nil)

	paths, err := s.Search(context.Background(), "Junior Developer", "Astronaut")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSearch_DropsPathNotStartingAtCurrentRole(t *testing.T) {
	store := &fakeStore{paths: []types.Path{twoHopPath()}}
	s := New(store, 4, nil)

	paths, err := s.Search(context.Background(), "Data Scientist", "Senior Developer")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSearch_DropsPathExceedingHopBound(t *testing.T) {
	store := &fakeStore{paths: []types.Path{twoHopPath()}}
	s := New(store, 1, nil)

	paths, err := s.Search(context.Background(), "Junior Developer", "Senior Developer")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSearch_DropsPathWithBrokenChain(t *testing.T) {
	broken := twoHopPath()
	broken.Transitions[1].FromRole = "Product Manager"
	store := &fakeStore{paths: []types.Path{broken, twoHopPath()}}
	s := New(store, 4, nil)

	paths, err := s.Search(context.Background(), "Junior Developer", "Senior Developer")
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "Developer", paths[0].Transitions[1].FromRole)
}

func TestValidatePath(t *testing.T) {
	path := twoHopPath()

	ok, _ := validatePath(path, "Junior Developer", 4)
	assert.True(t, ok)

	short := types.Path{Roles: []string{"Solo"}}
	ok, reason := validatePath(short, "Solo", 4)
	assert.False(t, ok)
	assert.Equal(t, "fewer than two roles", reason)

	mismatch := twoHopPath()
	mismatch.Transitions = mismatch.Transitions[:1]
	ok, reason = validatePath(mismatch, "Junior Developer", 4)
	assert.False(t, ok)
	assert.Equal(t, "transition count does not match role count", reason)
}
