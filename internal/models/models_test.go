package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingAverage(t *testing.T) {
	assert.Equal(t, 0.0, Rating{}.Average())
	assert.Equal(t, 4.0, Rating{Total: 8, Count: 2}.Average())
}

func TestNormalizeSet(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeSet([]string{" a", "b", "", "a "}))
	assert.Equal(t, []string{}, NormalizeSet(nil))
}

func TestValidateMember(t *testing.T) {
	assert.NoError(t, Validate(&Member{Name: "Ada", Role: MemberRoleAdmin}))
	assert.Error(t, Validate(&Member{Name: "Ada", Role: "owner"}))
	assert.Error(t, Validate(&Member{Role: MemberRoleMember}))
}

func TestValidateCollectionVisibility(t *testing.T) {
	assert.NoError(t, Validate(&Collection{Name: "Onboarding", Visibility: VisibilityTeam}))
	assert.Error(t, Validate(&Collection{Name: "Onboarding", Visibility: "secret"}))
}

func TestValidateStandardRules(t *testing.T) {
	s := &Standard{Name: "Length", Rules: StandardRules{MinLength: -1}}
	assert.Error(t, Validate(s))
	s.Rules.MinLength = 10
	assert.NoError(t, Validate(s))
}

func TestHeaderExposesBase(t *testing.T) {
	f := &Folder{Name: "Sales"}
	var r Record = f
	r.Header().ID = "f1"
	assert.Equal(t, "f1", f.ID)
}
