package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msaswata15/career-navigation-platform/internal/types"
)

func TestFingerprint_StableUnderSkillOrderAndCase(t *testing.T) {
	a := Fingerprint(types.CareerPathRequest{
		CurrentRole: "Software Engineer",
		TargetRole:  "Data Scientist",
		UserSkills:  []string{"Python", "SQL"},
	})
	b := Fingerprint(types.CareerPathRequest{
		CurrentRole: "software engineer",
		TargetRole:  "DATA SCIENTIST",
		UserSkills:  []string{" sql ", "python"},
	})
	assert.Equal(t, a, b)
}

func TestFingerprint_DistinguishesRequests(t *testing.T) {
	base := types.CareerPathRequest{CurrentRole: "Software Engineer", UserSkills: []string{"Go"}}

	other := base
	other.TargetRole = "Engineering Manager"
	assert.NotEqual(t, Fingerprint(base), Fingerprint(other))

	moreSkills := base
	moreSkills.UserSkills = []string{"Go", "SQL"}
	assert.NotEqual(t, Fingerprint(base), Fingerprint(moreSkills))
}

func TestFingerprint_Prefix(t *testing.T) {
	key := Fingerprint(types.CareerPathRequest{CurrentRole: "Nurse"})
	assert.Contains(t, key, "career-paths:")
}

func TestNilCacheIsNoOp(t *testing.T) {
	var c *Cache

	req := types.CareerPathRequest{CurrentRole: "Nurse"}
	assert.Nil(t, c.Get(context.Background(), req))
	c.Set(context.Background(), req, types.EmptyResponse())
	assert.NoError(t, c.Close())
}
