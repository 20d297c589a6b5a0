// Package todos stores tasks. Every read and write is scoped to an owner id;
// a todo owned by someone else behaves exactly like a missing one.
package todos

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error)
	GetForOwner(ctx context.Context, id, ownerID int64) (*models.Todo, error)
	UpdateForOwner(ctx context.Context, todo *models.Todo) error
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
}
