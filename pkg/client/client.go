package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/donelist/backend/api/transport"
	"github.com/donelist/backend/domain"
)

// EnvBaseURL is the single environment variable the client reads its API
// base URL from.
const EnvBaseURL = "TODO_API_BASE_URL"

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Client is a typed HTTP client for the todo API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client against the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewFromEnv builds a client from TODO_API_BASE_URL.
func NewFromEnv() (*Client, error) {
	baseURL := os.Getenv(EnvBaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("%s is not set", EnvBaseURL)
	}
	return New(baseURL), nil
}

// ListOptions mirrors the query parameters of GET /todos. Zero values are
// omitted and resolved to server-side defaults.
type ListOptions struct {
	SortBy domain.SortField
	Order  domain.SortOrder
	Limit  int
	Offset int
}

func (c *Client) List(ctx context.Context, opts ListOptions) ([]domain.Todo, error) {
	query := url.Values{}
	if opts.SortBy != "" {
		query.Set("sort_by", string(opts.SortBy))
	}
	if opts.Order != "" {
		query.Set("order", string(opts.Order))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/todos"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var todos []domain.Todo
	if err := c.do(ctx, http.MethodGet, path, nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) Create(ctx context.Context, req transport.CreateTodoRequest) (*domain.Todo, error) {
	var todo domain.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	var todo domain.Todo
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/todos/%d", id), nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) Update(ctx context.Context, id int64, req transport.UpdateTodoRequest) (*domain.Todo, error) {
	var todo domain.Todo
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/todos/%d", id), req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/todos/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body transport.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
