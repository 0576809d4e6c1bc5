// Package client is the API client for the taskgo HTTP surface. It
// attaches the session credential to every request and maps error
// responses to APIError values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avoronov/taskgo/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken sets the credential sent as the bearer token on every
// subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is a non-2xx response decoded into its status and message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Credentials is the register/login response.
type Credentials struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*Credentials, error) {
	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/api/users/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &creds)
	if err != nil {
		return nil, err
	}

	c.token = creds.Token
	return &creds, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	var creds Credentials
	err := c.do(ctx, http.MethodPost, "/api/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, &creds)
	if err != nil {
		return nil, err
	}

	c.token = creds.Token
	return &creds, nil
}

func (c *Client) Users(ctx context.Context) ([]models.PublicUser, error) {
	var users []models.PublicUser
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Task mirrors the task JSON on the wire.
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Desc      string    `json:"desc"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Client) CreateTask(ctx context.Context, name, desc, taskType string) (*Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", map[string]string{
		"name": name,
		"desc": desc,
		"type": taskType,
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// TaskUpdate carries the fields to change. Empty fields are left
// untouched by the server.
type TaskUpdate struct {
	Name string `json:"name,omitempty"`
	Desc string `json:"desc,omitempty"`
	Type string `json:"type,omitempty"`
}

func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, update, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		var errBody struct {
			Message string `json:"message"`
		}
		if err = json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Message = errBody.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
