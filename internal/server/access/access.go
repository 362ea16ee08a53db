// Package access decides whether verified claims may perform an operation.
// Every function here is pure: no I/O, no state, same answer for the same
// inputs. Handlers must consult it before reading or mutating any record.
package access

import (
	"fmt"

	"github.com/dmitrijs2005/bailbridge/internal/common"
	"github.com/dmitrijs2005/bailbridge/internal/server/auth"
	"github.com/dmitrijs2005/bailbridge/internal/server/models"
)

// Operation names a protected action on the case-management surface.
type Operation string

const (
	OpViewProfile         Operation = "profile:view"
	OpCreateApplication   Operation = "application:create"
	OpViewApplication     Operation = "application:view"
	OpListOwnApplications Operation = "application:list_own"
	OpListAllApplications Operation = "application:list_all"
	OpAssignLawyer        Operation = "application:assign_lawyer"
)

// Rule is the requirement attached to an Operation.
type Rule struct {
	Roles models.RoleSet
	// OwnerOverride lets the record owner through regardless of role.
	OwnerOverride bool
}

var (
	anyone = models.NewRoleSet(models.Roles()...)
	staff  = models.NewRoleSet(models.RoleLawyer, models.RoleJudge)
)

// policy is the single source of truth for role-based access.
var policy = map[Operation]Rule{
	OpViewProfile:         {Roles: anyone},
	OpCreateApplication:   {Roles: anyone},
	OpListOwnApplications: {Roles: anyone},
	OpViewApplication:     {Roles: staff, OwnerOverride: true},
	OpListAllApplications: {Roles: staff},
	OpAssignLawyer:        {Roles: models.NewRoleSet(models.RoleLawyer)},
}

func ruleFor(op Operation) (Rule, bool) {
	r, ok := policy[op]
	return r, ok
}

// Authorize allows iff the caller's role is in required. Nil claims deny.
func Authorize(claims *auth.Claims, required models.RoleSet) bool {
	if claims == nil {
		return false
	}
	return required.Has(claims.Role)
}

// AuthorizeOwnerOrRoles allows when the caller owns the record or the role
// check passes. An empty ownerID never matches.
func AuthorizeOwnerOrRoles(claims *auth.Claims, ownerID string, required models.RoleSet) bool {
	if claims == nil {
		return false
	}
	if ownerID != "" && claims.Subject == ownerID {
		return true
	}
	return Authorize(claims, required)
}

// Check evaluates op for claims. Records with an owner should go through
// CheckOwner instead.
func Check(claims *auth.Claims, op Operation) error {
	return CheckOwner(claims, op, "")
}

// CheckOwner evaluates op for claims against a record owned by ownerID.
// The owner override only applies to operations whose rule enables it.
func CheckOwner(claims *auth.Claims, op Operation, ownerID string) error {
	rule, ok := ruleFor(op)
	if !ok {
		return fmt.Errorf("%w: %q", common.ErrUnknownOperation, op)
	}

	var allowed bool
	if rule.OwnerOverride {
		allowed = AuthorizeOwnerOrRoles(claims, ownerID, rule.Roles)
	} else {
		allowed = Authorize(claims, rule.Roles)
	}

	if !allowed {
		return fmt.Errorf("%w: %s requires %s", common.ErrForbidden, op, rule.Roles)
	}
	return nil
}
