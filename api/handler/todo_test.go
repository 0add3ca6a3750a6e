package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/donelist/backend/api/handler"
	"github.com/donelist/backend/domain"
	"github.com/donelist/backend/repository"
	todoUC "github.com/donelist/backend/usecase/todo"
)

type mockTodoRepo struct {
	getByIDFn func(ctx context.Context, id int64) (*domain.Todo, error)
	listFn    func(ctx context.Context, params repository.ListParams) ([]domain.Todo, error)
	createFn  func(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	updateFn  func(ctx context.Context, todo *domain.Todo) error
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockTodoRepo) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockTodoRepo) List(ctx context.Context, params repository.ListParams) ([]domain.Todo, error) {
	return m.listFn(ctx, params)
}
func (m *mockTodoRepo) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	return m.createFn(ctx, todo)
}
func (m *mockTodoRepo) Update(ctx context.Context, todo *domain.Todo) error {
	return m.updateFn(ctx, todo)
}
func (m *mockTodoRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleTodo() *domain.Todo {
	return &domain.Todo{
		ID:        1,
		Title:     "Buy milk",
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newHandler(repo *mockTodoRepo) *apiHandler.TodoHandler {
	uc := todoUC.New(repo, nil, zap.NewNop())
	return apiHandler.NewTodoHandler(uc, nil, zap.NewNop())
}

func newCtx(method, uri string, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	return ctx
}

func TestGetTodos_Defaults(t *testing.T) {
	var captured repository.ListParams
	repo := &mockTodoRepo{
		listFn: func(ctx context.Context, params repository.ListParams) ([]domain.Todo, error) {
			captured = params
			return []domain.Todo{*sampleTodo()}, nil
		},
	}
	h := newHandler(repo)

	ctx := newCtx(http.MethodGet, "/todos", "")
	h.GetTodos(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, domain.SortByDeadline, captured.SortBy)
	assert.Equal(t, domain.OrderAsc, captured.Order)
	assert.Equal(t, 50, captured.Limit)
	assert.Equal(t, 0, captured.Offset)

	var todos []domain.Todo
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Title)
}

func TestGetTodos_EmptyListIsArray(t *testing.T) {
	repo := &mockTodoRepo{
		listFn: func(ctx context.Context, params repository.ListParams) ([]domain.Todo, error) {
			return []domain.Todo{}, nil
		},
	}
	h := newHandler(repo)

	ctx := newCtx(http.MethodGet, "/todos", "")
	h.GetTodos(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, "[]", string(ctx.Response.Body()))
}

func TestGetTodos_ParamValidation(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"unknown sort_by", "/todos?sort_by=priority"},
		{"unknown order", "/todos?order=sideways"},
		{"limit not a number", "/todos?limit=ten"},
		{"limit too small", "/todos?limit=0"},
		{"limit too large", "/todos?limit=201"},
		{"negative offset", "/todos?offset=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoCalled := false
			repo := &mockTodoRepo{
				listFn: func(ctx context.Context, params repository.ListParams) ([]domain.Todo, error) {
					repoCalled = true
					return nil, nil
				},
			}
			h := newHandler(repo)

			ctx := newCtx(http.MethodGet, tt.uri, "")
			h.GetTodos(ctx)

			assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
			assert.False(t, repoCalled)
		})
	}
}

func TestGetTodos_SortPassthrough(t *testing.T) {
	var captured repository.ListParams
	repo := &mockTodoRepo{
		listFn: func(ctx context.Context, params repository.ListParams) ([]domain.Todo, error) {
			captured = params
			return []domain.Todo{}, nil
		},
	}
	h := newHandler(repo)

	ctx := newCtx(http.MethodGet, "/todos?sort_by=title&order=desc&limit=10&offset=20", "")
	h.GetTodos(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, domain.SortByTitle, captured.SortBy)
	assert.Equal(t, domain.OrderDesc, captured.Order)
	assert.Equal(t, 10, captured.Limit)
	assert.Equal(t, 20, captured.Offset)
}

func TestCreateTodo(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		repo := &mockTodoRepo{
			createFn: func(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
				todo.ID = 5
				todo.CreatedAt = now
				todo.UpdatedAt = now
				return todo, nil
			},
		}
		h := newHandler(repo)

		ctx := newCtx(http.MethodPost, "/todos", `{"title":"Buy milk"}`)
		h.CreateTodo(ctx)

		require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
		assert.EqualValues(t, 5, body["id"])
		assert.Equal(t, "Buy milk", body["title"])
		assert.Equal(t, false, body["completed"])
		assert.Nil(t, body["description"])
		assert.Nil(t, body["deadline"])
		assert.Equal(t, body["created_at"], body["updated_at"])
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"invalid json", `{not json`},
			{"empty title", `{"title":""}`},
			{"whitespace title", `{"title":"   "}`},
			{"malformed deadline", `{"title":"Buy milk","deadline":"next week"}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repoCalled := false
				repo := &mockTodoRepo{
					createFn: func(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
						repoCalled = true
						return todo, nil
					},
				}
				h := newHandler(repo)

				ctx := newCtx(http.MethodPost, "/todos", tt.body)
				h.CreateTodo(ctx)

				assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
				assert.False(t, repoCalled, "no record may be created")
			})
		}
	})

	t.Run("store error is opaque", func(t *testing.T) {
		repo := &mockTodoRepo{
			createFn: func(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
				return nil, errors.New("pq: connection reset")
			},
		}
		h := newHandler(repo)

		ctx := newCtx(http.MethodPost, "/todos", `{"title":"Buy milk"}`)
		h.CreateTodo(ctx)

		require.Equal(t, http.StatusInternalServerError, ctx.Response.StatusCode())
		assert.NotContains(t, string(ctx.Response.Body()), "connection reset")
	})
}

func TestGetTodo(t *testing.T) {
	repo := &mockTodoRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Todo, error) {
			if id != 1 {
				return nil, domain.ErrTodoNotFound
			}
			return sampleTodo(), nil
		},
	}
	h := newHandler(repo)

	t.Run("found", func(t *testing.T) {
		ctx := newCtx(http.MethodGet, "/todos/1", "")
		ctx.SetUserValue("id", "1")
		h.GetTodo(ctx)

		require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
		var todo domain.Todo
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &todo))
		assert.Equal(t, "Buy milk", todo.Title)
		assert.False(t, todo.Completed)
	})

	t.Run("not found", func(t *testing.T) {
		ctx := newCtx(http.MethodGet, "/todos/42", "")
		ctx.SetUserValue("id", "42")
		h.GetTodo(ctx)

		assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	})

	t.Run("non-numeric id", func(t *testing.T) {
		ctx := newCtx(http.MethodGet, "/todos/abc", "")
		ctx.SetUserValue("id", "abc")
		h.GetTodo(ctx)

		assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	})
}

func TestUpdateTodo(t *testing.T) {
	t.Run("full replace", func(t *testing.T) {
		var captured *domain.Todo
		repo := &mockTodoRepo{
			updateFn: func(ctx context.Context, todo *domain.Todo) error {
				captured = todo
				todo.CreatedAt = now
				todo.UpdatedAt = now.Add(time.Second)
				return nil
			},
		}
		h := newHandler(repo)

		ctx := newCtx(http.MethodPut, "/todos/3", `{"title":"Buy oat milk","completed":true}`)
		ctx.SetUserValue("id", "3")
		h.UpdateTodo(ctx)

		require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
		assert.EqualValues(t, 3, captured.ID)
		assert.True(t, captured.Completed)
		assert.Nil(t, captured.Description)
		assert.Nil(t, captured.Deadline)
	})

	t.Run("completed is required", func(t *testing.T) {
		h := newHandler(&mockTodoRepo{})

		ctx := newCtx(http.MethodPut, "/todos/3", `{"title":"Buy oat milk"}`)
		ctx.SetUserValue("id", "3")
		h.UpdateTodo(ctx)

		assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	})

	t.Run("not found", func(t *testing.T) {
		repo := &mockTodoRepo{
			updateFn: func(ctx context.Context, todo *domain.Todo) error {
				return domain.ErrTodoNotFound
			},
		}
		h := newHandler(repo)

		ctx := newCtx(http.MethodPut, "/todos/42", `{"title":"x","completed":false}`)
		ctx.SetUserValue("id", "42")
		h.UpdateTodo(ctx)

		assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	})
}

func TestDeleteTodo(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo := &mockTodoRepo{
			deleteFn: func(ctx context.Context, id int64) error { return nil },
		}
		h := newHandler(repo)

		ctx := newCtx(http.MethodDelete, "/todos/1", "")
		ctx.SetUserValue("id", "1")
		h.DeleteTodo(ctx)

		assert.Equal(t, http.StatusNoContent, ctx.Response.StatusCode())
		assert.Empty(t, ctx.Response.Body())
	})

	t.Run("second delete fails", func(t *testing.T) {
		repo := &mockTodoRepo{
			deleteFn: func(ctx context.Context, id int64) error { return domain.ErrTodoNotFound },
		}
		h := newHandler(repo)

		ctx := newCtx(http.MethodDelete, "/todos/1", "")
		ctx.SetUserValue("id", "1")
		h.DeleteTodo(ctx)

		assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	})
}
