package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
)

const (
	MinPriority = 1
	MaxPriority = 5
)

// TodoInput is the writable part of a todo.
type TodoInput struct {
	Title       string
	Description *string
	Priority    int
	Complete    bool
}

func (in TodoInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return common.ErrorValidation
	}
	if in.Priority < MinPriority || in.Priority > MaxPriority {
		return common.ErrorValidation
	}
	return nil
}

// TodoService manages the caller's todos. Every method takes the caller from
// the context and fails with common.ErrorUnauthenticated before touching
// the store when there is none.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

func (s *TodoService) List(ctx context.Context) ([]models.Todo, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	var result []models.Todo
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		result, err = s.repomanager.Todos(tx).ListByOwner(ctx, id.ID)
		return err
	})
	return result, err
}

// Get returns common.ErrorNotFound for todos owned by someone else.
func (s *TodoService) Get(ctx context.Context, todoID int64) (*models.Todo, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	var todo *models.Todo
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		todo, err = s.repomanager.Todos(tx).GetForOwner(ctx, todoID, id.ID)
		return err
	})
	return todo, err
}

func (s *TodoService) Create(ctx context.Context, in TodoInput) (*models.Todo, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
		OwnerID:     id.ID,
	}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		todo, err = s.repomanager.Todos(tx).Create(ctx, todo)
		return err
	})
	return todo, err
}

func (s *TodoService) Update(ctx context.Context, todoID int64, in TodoInput) error {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}
	if err := in.validate(); err != nil {
		return err
	}

	todo := &models.Todo{
		ID:          todoID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
		OwnerID:     id.ID,
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Todos(tx).UpdateForOwner(ctx, todo)
	})
}

func (s *TodoService) Delete(ctx context.Context, todoID int64) error {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Todos(tx).DeleteForOwner(ctx, todoID, id.ID)
	})
}
