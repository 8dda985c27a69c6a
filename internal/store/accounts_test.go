package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/domain"
)

func TestCreateUser_AllocatesRoleIDs(t *testing.T) {
	_, store := newSQLiteStore(t)
	ctx := context.Background()

	testCases := []struct {
		username string
		role     access.Role
		roleID   string
	}{
		{"pilot2", access.RolePilot, "P002"},
		{"tech2", access.RoleTechnician, "T002"},
		{"cust1", access.RoleCustomer, "1"},
		{"cust2", access.RoleCustomer, "2"},
		{"boss", access.RoleManagement, ""},
		{"pilot3", access.RolePilot, "P003"},
	}

	for _, tc := range testCases {
		u, err := store.CreateUser(ctx, NewUser{Username: tc.username, PasswordHash: "hash", Role: tc.role})
		require.NoError(t, err, tc.username)
		assert.Equal(t, tc.roleID, u.RoleID, tc.username)
		assert.Equal(t, tc.role, u.Role)
		assert.NotZero(t, u.UserID)
	}

	got, err := store.UserByUsername(ctx, "tech2")
	require.NoError(t, err)
	assert.Equal(t, "T002", got.RoleID)
}

func TestCreateUser_Rejections(t *testing.T) {
	_, store := newSQLiteStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, NewUser{Username: "pilot1", PasswordHash: "hash", Role: access.RolePilot})
	assert.True(t, domain.IsValidation(err), "duplicate username")

	_, err = store.CreateUser(ctx, NewUser{Username: "mechanic", PasswordHash: "hash", Role: access.Role("Maintenance")})
	assert.True(t, domain.IsValidation(err), "unknown role")

	_, err = store.CreateUser(ctx, NewUser{Username: "x", PasswordHash: "hash", Role: access.RoleCustomer})
	assert.True(t, domain.IsValidation(err), "short username")

	_, err = store.UserByUsername(ctx, "ghost")
	assert.True(t, domain.IsNotFound(err))
}
