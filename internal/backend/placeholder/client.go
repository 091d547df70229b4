// Package placeholder implements the service.Gateway interface against a
// JSONPlaceholder-style REST collection.
package placeholder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"todoctl/internal/config"
	"todoctl/internal/service"
)

// ContentType is sent on every request, including GET and DELETE.
const ContentType = "application/json; charset=UTF-8"

// ErrBackend marks every failure returned by the client.
var ErrBackend = errors.New("backend error")

// Client implements service.Gateway over HTTP+JSON.
type Client struct {
	http     *http.Client
	endpoint string
	timeout  time.Duration
}

// New creates a client for the configured collection endpoint.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	c, err := NewWithHTTPClient(cfg.Endpoint, http.DefaultClient)
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.Timeout()
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(endpoint string, httpClient *http.Client) (*Client, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}
	return &Client{http: httpClient, endpoint: endpoint}, nil
}

// List returns the whole collection.
func (c *Client) List(ctx context.Context) ([]service.Todo, error) {
	var todos []service.Todo
	if err := c.do(ctx, http.MethodGet, c.endpoint, nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// createRequest is the POST body; the server assigns the id.
type createRequest struct {
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Create posts a new todo.
func (c *Client) Create(ctx context.Context, title string, completed bool) (service.Todo, error) {
	body := createRequest{UserID: service.DefaultUserID, Title: title, Completed: completed}
	var created service.Todo
	if err := c.do(ctx, http.MethodPost, c.endpoint, body, &created); err != nil {
		return service.Todo{}, err
	}
	return created, nil
}

// Update puts the full record to its item URL. Fields missing from the
// response stay nil in the returned Patch.
func (c *Client) Update(ctx context.Context, todo service.Todo) (service.Patch, error) {
	var updated service.Patch
	if err := c.do(ctx, http.MethodPut, c.itemURL(todo.ID), todo, &updated); err != nil {
		return service.Patch{}, err
	}
	return updated, nil
}

// Delete removes a todo. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id int) string {
	return c.endpoint + "/" + strconv.Itoa(id)
}

func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return wrapError(err)
	}
	req.Header.Set("Content-type", ContentType)

	res, err := c.http.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer googleapi.CloseBody(res)

	if err := googleapi.CheckResponse(res); err != nil {
		return wrapError(err)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return wrapError(fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// wrapError folds every failure into ErrBackend with a short description.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out", ErrBackend)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s", ErrBackend, httpStatus(apiErr.Code))
	}

	return fmt.Errorf("%w: %v", ErrBackend, err)
}

func httpStatus(code int) string {
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("%d %s", code, strings.ToLower(text))
	}
	return strconv.Itoa(code)
}
