package userRepo

import (
	"context"

	"coachhub/models"
)

// UserRepository is the identity-directory lookup this service consumes.
// User accounts are managed elsewhere; only reads are exposed here.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
