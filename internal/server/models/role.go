package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bailbridge/internal/common"
)

// Role is the closed set of authorisation tiers. The zero value is not a
// valid role, so an unset field can never pass an access check.
type Role uint8

const (
	RoleUser Role = iota + 1
	RoleLawyer
	RoleJudge
)

var roleNames = map[Role]string{
	RoleUser:   "user",
	RoleLawyer: "lawyer",
	RoleJudge:  "judge",
}

// Roles lists every valid role in declaration order.
func Roles() []Role {
	return []Role{RoleUser, RoleLawyer, RoleJudge}
}

// ParseRole maps a wire string onto a Role. Matching is exact; anything
// outside the closed set yields common.ErrInvalidRole.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", common.ErrInvalidRole, s)
}

// Valid reports whether r is a member of the closed set.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidRole, uint8(r))
	}
	return []byte(roleNames[r]), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RoleSet is a bitmask over Role.
type RoleSet uint8

// NewRoleSet builds a set from roles. Invalid roles are ignored.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		if r.Valid() {
			s |= 1 << r
		}
	}
	return s
}

// Has reports whether r is in the set. Invalid roles are never members.
func (s RoleSet) Has(r Role) bool {
	return r.Valid() && s&(1<<r) != 0
}

func (s RoleSet) String() string {
	names := make([]string, 0, len(roleNames))
	for _, r := range Roles() {
		if s.Has(r) {
			names = append(names, r.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}
