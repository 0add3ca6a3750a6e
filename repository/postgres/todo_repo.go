package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/donelist/backend/domain"
	"github.com/donelist/backend/repository"
)

type todoRepository struct {
	pool *pgxpool.Pool
}

// NewTodoRepository returns a Postgres-backed implementation of TodoRepository.
func NewTodoRepository(pool *pgxpool.Pool) repository.TodoRepository {
	return &todoRepository{pool: pool}
}

func (r *todoRepository) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	const query = `
	SELECT id, title, description, deadline, completed, created_at, updated_at
	FROM todos
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTodo(row)
}

func (r *todoRepository) List(ctx context.Context, params repository.ListParams) ([]domain.Todo, error) {
	query := fmt.Sprintf(`
	SELECT id, title, description, deadline, completed, created_at, updated_at
	FROM todos
	ORDER BY %s
	LIMIT $1 OFFSET $2
	`, orderClause(params))

	rows, err := r.pool.Query(ctx, query, clampLimit(params.Limit), clampOffset(params.Offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if todo == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO todos (title, description, deadline)
	VALUES ($1, $2, $3)
	RETURNING id, completed, created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		todo.Title,
		todo.Description,
		todo.Deadline,
	).Scan(&todo.ID, &todo.Completed, &todo.CreatedAt, &todo.UpdatedAt); err != nil {
		return nil, err
	}

	return todo, nil
}

func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	if todo == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE todos
	SET title = $2,
		description = $3,
		deadline = $4,
		completed = $5,
		updated_at = NOW()
	WHERE id = $1
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		todo.ID,
		todo.Title,
		todo.Description,
		todo.Deadline,
		todo.Completed,
	).Scan(&todo.CreatedAt, &todo.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTodoNotFound
		}
		return err
	}

	return nil
}

func (r *todoRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM todos WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func scanTodo(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Todo, error) {
	var todo domain.Todo

	if err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Deadline,
		&todo.Completed,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}

	return &todo, nil
}
