// Package users stores credential holders and their ordered role sets.
package users

import (
	"context"

	"github.com/dmitrijs2005/tokengate/internal/server/models"
)

type Repository interface {
	// Create inserts user and its roles, assigning user.ID. A taken email is
	// common.ErrorAlreadyExists. Run it inside a transaction.
	Create(ctx context.Context, user *models.User, roles []string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	Roles(ctx context.Context, id string) ([]string, error)
}
