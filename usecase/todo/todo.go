package todo

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/donelist/backend/domain"
	"github.com/donelist/backend/repository"
	"github.com/donelist/backend/usecase"
)

const maxTitleLength = 200

type UseCase struct {
	todos  repository.TodoRepository
	cache  usecase.ListCache
	logger *zap.Logger
}

func New(todos repository.TodoRepository, cache usecase.ListCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		todos:  todos,
		cache:  cache,
		logger: logger,
	}
}

// CreateTodoInput carries raw client input for a create. Deadline is an
// RFC3339 string left unparsed by the transport layer.
type CreateTodoInput struct {
	Title       string
	Description *string
	Deadline    *string
}

// UpdateTodoInput carries raw client input for a full-replace update.
type UpdateTodoInput struct {
	Title       string
	Description *string
	Deadline    *string
	Completed   bool
}

func (uc *UseCase) ListTodos(ctx context.Context, params repository.ListParams) ([]domain.Todo, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetList(ctx, params)
		if err != nil {
			uc.logger.Warn("todo list cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	todos, err := uc.todos.List(ctx, params)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetList(ctx, params, todos); err != nil {
			uc.logger.Warn("todo list cache write failed", zap.Error(err))
		}
	}

	return todos, nil
}

func (uc *UseCase) GetTodo(ctx context.Context, id int64) (*domain.Todo, error) {
	return uc.todos.GetByID(ctx, id)
}

func (uc *UseCase) CreateTodo(ctx context.Context, input CreateTodoInput) (*domain.Todo, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}

	todo := &domain.Todo{
		Title:       title,
		Description: normalizeDescription(input.Description),
		Deadline:    deadline,
	}

	created, err := uc.todos.Create(ctx, todo)
	if err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx)
	return created, nil
}

func (uc *UseCase) UpdateTodo(ctx context.Context, id int64, input UpdateTodoInput) (*domain.Todo, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return nil, err
	}

	todo := &domain.Todo{
		ID:          id,
		Title:       title,
		Description: normalizeDescription(input.Description),
		Deadline:    deadline,
		Completed:   input.Completed,
	}

	if err := uc.todos.Update(ctx, todo); err != nil {
		return nil, err
	}

	uc.invalidateCache(ctx)
	return todo, nil
}

func (uc *UseCase) DeleteTodo(ctx context.Context, id int64) error {
	if err := uc.todos.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidateCache(ctx)
	return nil
}

func (uc *UseCase) invalidateCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("todo list cache invalidation failed", zap.Error(err))
	}
}

func normalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", domain.NewError(domain.ErrCodeInvalid, "title must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxTitleLength {
		return "", domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("title must not exceed %d characters", maxTitleLength))
	}
	return trimmed, nil
}

// normalizeDescription maps empty or whitespace-only descriptions to absent.
func normalizeDescription(description *string) *string {
	if description == nil || strings.TrimSpace(*description) == "" {
		return nil
	}
	return description
}

// parseDeadline parses an RFC3339 deadline string. Absent input stays
// absent; malformed input is rejected, never coerced to null.
func parseDeadline(deadline *string) (*time.Time, error) {
	if deadline == nil {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *deadline)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid deadline format, expected RFC3339", err)
	}
	return &parsed, nil
}
