package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/donelist/backend/domain"
	"github.com/donelist/backend/repository"
)

const listPrefix = "todo:list:"

// TodoCache caches todo listing results in Redis, keyed by the full
// sort/pagination parameter set. Writes invalidate every listing key.
type TodoCache struct {
	client *redislib.Client
	ttl    time.Duration
}

// NewTodoCache creates a Redis-backed listing cache.
func NewTodoCache(client *redislib.Client, ttl time.Duration) *TodoCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &TodoCache{
		client: client,
		ttl:    ttl,
	}
}

// GetList returns the cached listing for params, or nil on miss.
func (c *TodoCache) GetList(ctx context.Context, params repository.ListParams) ([]domain.Todo, error) {
	result, err := c.client.Get(ctx, listKey(params)).Bytes()
	if err != nil {
		if err == redislib.Nil {
			return nil, nil
		}
		return nil, err
	}

	var todos []domain.Todo
	if err := json.Unmarshal(result, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// SetList stores a listing result under its parameter key.
func (c *TodoCache) SetList(ctx context.Context, params repository.ListParams, todos []domain.Todo) error {
	payload, err := json.Marshal(todos)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey(params), payload, c.ttl).Err()
}

// Invalidate removes every cached listing. Called after each successful write.
func (c *TodoCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, listPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func listKey(params repository.ListParams) string {
	return fmt.Sprintf("%s%s:%s:%d:%d", listPrefix, params.SortBy, params.Order, params.Limit, params.Offset)
}
