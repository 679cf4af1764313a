package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	tests := []struct {
		name      string
		role      Role
		superuser bool
		expected  Capabilities
	}{
		{
			name: "dispatch personnel can transfer only",
			role: RoleDispatchPersonnel,
			expected: Capabilities{
				CanView:     true,
				CanTransfer: true,
			},
		},
		{
			name: "call triage can triage only",
			role: RoleCallTriage,
			expected: Capabilities{
				CanView:   true,
				CanTriage: true,
			},
		},
		{
			name: "administrator is admin without workflow capabilities",
			role: RoleAdministrator,
			expected: Capabilities{
				CanView: true,
				IsAdmin: true,
			},
		},
		{
			name:      "superuser is admin regardless of role",
			role:      RoleDispatchPersonnel,
			superuser: true,
			expected: Capabilities{
				CanView:     true,
				CanTransfer: true,
				IsAdmin:     true,
			},
		},
		{
			name: "unknown role can only view",
			role: Role("janitor"),
			expected: Capabilities{
				CanView: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CapabilitiesFor(tt.role, tt.superuser))
		})
	}
}

func TestCapabilitiesForNeverAllowsStaffCreate(t *testing.T) {
	for _, role := range []Role{RoleDispatchPersonnel, RoleCallTriage, RoleAdministrator} {
		assert.False(t, CapabilitiesFor(role, false).CanCreateReferral, "role %s", role)
		assert.False(t, CapabilitiesFor(role, true).CanCreateReferral, "superuser with role %s", role)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleDispatchPersonnel.Valid())
	assert.True(t, RoleCallTriage.Valid())
	assert.True(t, RoleAdministrator.Valid())
	assert.False(t, Role("doctor").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleDisplay(t *testing.T) {
	assert.Equal(t, "Dispatch Personnel", RoleDispatchPersonnel.Display())
	assert.Equal(t, "Call Triage", RoleCallTriage.Display())
	assert.Equal(t, "Administrator", RoleAdministrator.Display())
	assert.Equal(t, "other", Role("other").Display())
}
