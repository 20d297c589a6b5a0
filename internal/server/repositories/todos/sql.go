package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// queries holds one dialect's statements; the parameter order is shared.
type queries struct {
	insert string
	list   string
	get    string
	update string
	delete string
}

var postgresQueries = queries{
	insert: `INSERT INTO todos (title, description, priority, complete, owner_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
	list: `SELECT id, title, description, priority, complete, owner_id FROM todos
		WHERE owner_id = $1 ORDER BY id`,
	get: `SELECT id, title, description, priority, complete, owner_id FROM todos
		WHERE id = $1 AND owner_id = $2`,
	update: `UPDATE todos SET title = $1, description = $2, priority = $3, complete = $4
		WHERE id = $5 AND owner_id = $6`,
	delete: `DELETE FROM todos WHERE id = $1 AND owner_id = $2`,
}

var sqliteQueries = queries{
	insert: `INSERT INTO todos (title, description, priority, complete, owner_id)
		VALUES (?, ?, ?, ?, ?) RETURNING id`,
	list: `SELECT id, title, description, priority, complete, owner_id FROM todos
		WHERE owner_id = ? ORDER BY id`,
	get: `SELECT id, title, description, priority, complete, owner_id FROM todos
		WHERE id = ? AND owner_id = ?`,
	update: `UPDATE todos SET title = ?, description = ?, priority = ?, complete = ?
		WHERE id = ? AND owner_id = ?`,
	delete: `DELETE FROM todos WHERE id = ? AND owner_id = ?`,
}

// SQLRepository implements Repository over a DBTX for one dialect.
type SQLRepository struct {
	db dbx.DBTX
	q  queries
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}

func NewSQLiteRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}

func (r *SQLRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	err := r.db.QueryRowContext(ctx, r.q.insert,
		todo.Title, todo.Description, todo.Priority, todo.Complete, todo.OwnerID).Scan(&todo.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Todo, 0)
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Priority, &item.Complete, &item.OwnerID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) GetForOwner(ctx context.Context, id, ownerID int64) (*models.Todo, error) {
	item := &models.Todo{}
	err := r.db.QueryRowContext(ctx, r.q.get, id, ownerID).
		Scan(&item.ID, &item.Title, &item.Description, &item.Priority, &item.Complete, &item.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// UpdateForOwner overwrites title, description, priority and complete of
// todo.ID when it belongs to todo.OwnerID.
func (r *SQLRepository) UpdateForOwner(ctx context.Context, todo *models.Todo) error {
	res, err := r.db.ExecContext(ctx, r.q.update,
		todo.Title, todo.Description, todo.Priority, todo.Complete, todo.ID, todo.OwnerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, r.q.delete, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
