// Package users implements the identity directory: lookup by email and
// creation of new identities, backed by PostgreSQL or process memory.
package users

import (
	"context"

	"github.com/dmitrijs2005/bailbridge/internal/server/models"
)

// Repository is the identity directory contract.
//
// GetUserByEmail returns common.ErrorNotFound when no identity has the email.
// Create returns common.ErrDuplicateIdentity when the email is already taken;
// the check and the insert are atomic with respect to each other.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
