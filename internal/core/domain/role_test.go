package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleDashboardPaths(t *testing.T) {
	assert.Equal(t, "/dashboard/agent", Role(3).DashboardPath())
	assert.Equal(t, "/dashboard/tenant", DefaultRole.DashboardPath())
	assert.Equal(t, "/", Role(42).DashboardPath())
	for _, r := range Roles {
		assert.True(t, r.Valid())
		assert.NotEqual(t, "/", r.DashboardPath())
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("3")
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, r)

	r, err = ParseRole(" Landlord ")
	require.NoError(t, err)
	assert.Equal(t, RoleLandlord, r)

	_, err = ParseRole("9")
	assert.ErrorIs(t, err, ErrUnknownRole)
	_, err = ParseRole("janitor")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRoleJSON(t *testing.T) {
	b, err := json.Marshal(RoleManager)
	require.NoError(t, err)
	assert.Equal(t, "4", string(b))

	var status RoleStatus
	require.NoError(t, json.Unmarshal([]byte(`{"role_assigned":true,"role":"owner"}`), &status))
	require.NotNil(t, status.Role)
	assert.Equal(t, RoleOwner, *status.Role)

	require.NoError(t, json.Unmarshal([]byte(`{"role_assigned":true,"role":1}`), &status))
	assert.Equal(t, RoleLandlord, *status.Role)
	assert.Equal(t, "Landlord", status.Role.Label())
}

func TestSelfSelectable(t *testing.T) {
	assert.True(t, RoleAgent.SelfSelectable())
	assert.False(t, RoleAdmin.SelfSelectable())
	assert.False(t, RoleManager.SelfSelectable())
}
