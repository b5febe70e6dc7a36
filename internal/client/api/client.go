// Package api is a Go client for the TaskTracker HTTP API. The session
// cookie is kept in an in-memory cookie jar, so a Client behaves like one
// logged-in browser.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the server at baseURL, e.g.
// "http://127.0.0.1:8080".
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// do sends a JSON request and decodes a 2xx body into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &Error{Status: res.StatusCode}
		var eb struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

type userEnvelope struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

type taskEnvelope struct {
	Message string `json:"message"`
	Task    *Task  `json:"task"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	var res userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	var res userEnvelope
	err := c.do(ctx, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var res userEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &res); err != nil {
		return nil, err
	}
	return res.User, nil
}

// ListTasks returns the current user's tasks. Empty status or priority
// means no filter on that field.
func (c *Client) ListTasks(ctx context.Context, status, priority string) ([]Task, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if priority != "" {
		q.Set("priority", priority)
	}
	path := "/api/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var res struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*Task, error) {
	var res taskEnvelope
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil, &res); err != nil {
		return nil, err
	}
	return res.Task, nil
}

func (c *Client) CreateTask(ctx context.Context, t NewTask) (*Task, error) {
	var res taskEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/tasks", t, &res); err != nil {
		return nil, err
	}
	return res.Task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, p TaskPatch) (*Task, error) {
	var res taskEnvelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), p.body(), &res); err != nil {
		return nil, err
	}
	return res.Task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil, nil)
}
