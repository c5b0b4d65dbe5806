package access

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequire_ExactMatch(t *testing.T) {
	require.NoError(t, Require(Identity{UserID: 1, Role: RoleLibrarian}, RoleLibrarian))
	require.NoError(t, Require(Identity{UserID: 2, Role: RoleAdmin}, RoleAdmin))
}

func TestRequire_NotHierarchical(t *testing.T) {
	// Admin is not a librarian and vice versa.
	require.ErrorIs(t, Require(Identity{Role: RoleAdmin}, RoleLibrarian), ErrForbidden)
	require.ErrorIs(t, Require(Identity{Role: RoleLibrarian}, RoleAdmin), ErrForbidden)
	require.ErrorIs(t, Require(Identity{Role: RoleMember}, RoleLibrarian), ErrForbidden)
}
