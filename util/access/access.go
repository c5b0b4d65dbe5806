// Package access is the single role gate consulted before every
// privileged operation. Roles are exact-match, not hierarchical:
// a librarian-only endpoint rejects admins the same as members.
package access

import "errors"

type Role int64

const (
	RoleAdmin     Role = 1
	RoleMember    Role = 2
	RoleLibrarian Role = 3
)

// Identity is what the token middleware extracts from a verified JWT.
type Identity struct {
	UserID int64
	Role   Role
}

var ErrForbidden = errors.New("forbidden")

func Require(id Identity, want Role) error {
	if id.Role != want {
		return ErrForbidden
	}
	return nil
}
