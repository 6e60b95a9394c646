package sso_test

import (
	"encoding/json"
	"testing"

	"github.com/pushkind/sso"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRoleNames(t *testing.T) {
	user := testUser(7, "person@example.com", 1, "editor", "admin")

	assert.Equal(t, []string{"editor", "admin"}, user.RoleNames())
	assert.True(t, user.HasRole("admin"))
	assert.False(t, user.HasRole("Admin"))

	var none sso.User
	assert.Nil(t, none.RoleNames())
	assert.False(t, none.HasRole("admin"))
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	user := testUser(7, "person@example.com", 1)
	user.PasswordHash = "$2a$12$secret"

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), "person@example.com")
}
