package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserPasswordNeverSerialized(t *testing.T) {
	user := User{
		ID:                 primitive.NewObjectID(),
		Name:               "Jamie",
		Email:              "jamie@example.com",
		Role:               RoleUser,
		Password:           "$2a$10$hash",
		ResetPasswordToken: "deadbeef",
		CreatedAt:          time.Now(),
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "$2a$10$hash")
	assert.NotContains(t, string(raw), "deadbeef")
	assert.Contains(t, string(raw), "jamie@example.com")
}

func TestValidRegisterRole(t *testing.T) {
	assert.True(t, ValidRegisterRole(RoleUser))
	assert.True(t, ValidRegisterRole(RolePublisher))
	assert.False(t, ValidRegisterRole(RoleAdmin))
	assert.False(t, ValidRegisterRole(Role("admin")))
	assert.False(t, ValidRegisterRole(Role("")))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("Abcdef1"))
	assert.True(t, ValidPassword("Str0ngPass"))

	assert.False(t, ValidPassword("short1A"[:5]))
	assert.False(t, ValidPassword("alllowercase1"))
	assert.False(t, ValidPassword("ALLUPPERCASE1"))
	assert.False(t, ValidPassword("NoDigitsHere"))
	assert.False(t, ValidPassword("Aa1"))
	assert.False(t, ValidPassword("Aa1Aa1Aa1Aa1Aa1Aa1Aa1"))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Ada Lovelace"))
	assert.False(t, ValidName("ada_lovelace"))
	assert.False(t, ValidName("Ada2"))
	assert.False(t, ValidName(""))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("dev@example.com"))
	assert.True(t, ValidEmail("first.last@sub.example.io"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@tld"))
}

func TestValidSubjects(t *testing.T) {
	assert.True(t, ValidSubjects([]string{"Web Development"}))
	assert.True(t, ValidSubjects([]string{"DevOps", "UI/UX"}))
	assert.False(t, ValidSubjects([]string{"Underwater Basket Weaving"}))
	assert.False(t, ValidSubjects([]string{"Web Development", "nope"}))
}

func TestValidSkill(t *testing.T) {
	assert.True(t, ValidSkill(SkillBeginner))
	assert.True(t, ValidSkill(SkillAdvanced))
	assert.False(t, ValidSkill(Skill("beginner")))
	assert.False(t, ValidSkill(Skill("")))
}
