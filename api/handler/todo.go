package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/donelist/backend/api/transport"
	"github.com/donelist/backend/domain"
	"github.com/donelist/backend/pkg/httpcontext"
	"github.com/donelist/backend/repository"
	todoUC "github.com/donelist/backend/usecase/todo"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type TodoHandler struct {
	baseHandler
	uc *todoUC.UseCase
}

func NewTodoHandler(uc *todoUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// GetTodos handles GET /todos.
func (h *TodoHandler) GetTodos(ctx *fasthttp.RequestCtx) {
	params, ok := h.parseListParams(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	todos, err := h.uc.ListTodos(stdCtx, params)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, todos)
}

// CreateTodo handles POST /todos.
func (h *TodoHandler) CreateTodo(ctx *fasthttp.RequestCtx) {
	var req transport.CreateTodoRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTodo(stdCtx, todoUC.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, created)
}

// GetTodo handles GET /todos/{id}.
func (h *TodoHandler) GetTodo(ctx *fasthttp.RequestCtx) {
	id, ok := h.todoID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	todo, err := h.uc.GetTodo(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, todo)
}

// UpdateTodo handles PUT /todos/{id}. The body is a full replace of every
// mutable field, so title and completed must both be supplied.
func (h *TodoHandler) UpdateTodo(ctx *fasthttp.RequestCtx) {
	id, ok := h.todoID(ctx)
	if !ok {
		return
	}

	var req transport.UpdateTodoRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if req.Completed == nil {
		h.respondInvalid(ctx, "completed is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTodo(stdCtx, id, todoUC.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Completed:   *req.Completed,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, updated)
}

// DeleteTodo handles DELETE /todos/{id}. Deleting an unknown id is a 404,
// including the second delete of the same id.
func (h *TodoHandler) DeleteTodo(ctx *fasthttp.RequestCtx) {
	id, ok := h.todoID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTodo(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusNoContent, nil)
}

func (h *TodoHandler) parseListParams(ctx *fasthttp.RequestCtx) (repository.ListParams, bool) {
	params := repository.ListParams{
		SortBy: domain.SortByDeadline,
		Order:  domain.OrderAsc,
		Limit:  defaultLimit,
	}

	if raw := string(ctx.QueryArgs().Peek("sort_by")); raw != "" {
		sortBy := domain.SortField(raw)
		if !sortBy.IsValid() {
			h.respondInvalid(ctx, "sort_by must be one of deadline, created_at, title")
			return params, false
		}
		params.SortBy = sortBy
	}

	if raw := string(ctx.QueryArgs().Peek("order")); raw != "" {
		order := domain.SortOrder(raw)
		if !order.IsValid() {
			h.respondInvalid(ctx, "order must be asc or desc")
			return params, false
		}
		params.Order = order
	}

	if raw := string(ctx.QueryArgs().Peek("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			h.respondInvalid(ctx, fmt.Sprintf("limit must be an integer between 1 and %d", maxLimit))
			return params, false
		}
		params.Limit = limit
	}

	if raw := string(ctx.QueryArgs().Peek("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			h.respondInvalid(ctx, "offset must be a non-negative integer")
			return params, false
		}
		params.Offset = offset
	}

	return params, true
}

func (h *TodoHandler) todoID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondInvalid(ctx, "todo id must be an integer")
		return 0, false
	}
	return id, true
}
