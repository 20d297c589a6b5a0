// Package users is the credential store: user records keyed by username.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the lookup/insert contract the authentication core needs.
//
// GetUserByLogin returns common.ErrorNotFound when no user has the name.
// Create assigns user.ID and returns common.ErrorAlreadyExists when the
// username is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
