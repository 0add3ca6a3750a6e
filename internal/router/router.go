package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/donelist/backend/api/handler"
)

type Handlers struct {
	Todo   *apiHandler.TodoHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/todos", handlers.Todo.GetTodos)
	r.POST("/todos", handlers.Todo.CreateTodo)
	r.GET("/todos/{id}", handlers.Todo.GetTodo)
	r.PUT("/todos/{id}", handlers.Todo.UpdateTodo)
	r.DELETE("/todos/{id}", handlers.Todo.DeleteTodo)

	return r
}
