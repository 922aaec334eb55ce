package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLevels(t *testing.T) {
	assert.Equal(t, 1, RoleCashier.Level())
	assert.Equal(t, 2, RoleAdmin.Level())
	assert.Equal(t, 3, RoleSuperAdmin.Level())
	assert.Equal(t, 0, Role("").Level())
	assert.Equal(t, 0, Role("Manager").Level(), "unknown roles rank 0")
}

func TestRoleAtLeast(t *testing.T) {
	known := []Role{RoleCashier, RoleAdmin, RoleSuperAdmin}

	// Access is allowed iff the session role's level meets the required level
	for _, have := range known {
		for _, need := range known {
			assert.Equal(t, have.Level() >= need.Level(), have.AtLeast(need),
				"have=%s need=%s", have, need)
		}
	}

	// A missing or unknown role fails every gate
	for _, need := range known {
		assert.False(t, Role("").AtLeast(need))
		assert.False(t, Role("Waiter").AtLeast(need))
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleCashier.Valid())
	assert.True(t, RoleSuperAdmin.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("root").Valid())
}
