// Package board is the client-side companion to the task API: a small HTTP
// client plus the optimistic board state machine that keeps a local Kanban
// view reconciled with the authoritative server state.
package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vv-omkareshwar/Task-Management-App/internal/domain"
)

// defaultTimeout bounds every request; a mutation that exceeds it is treated
// as failed for reconciliation purposes.
const defaultTimeout = 10 * time.Second

// Task is the wire representation of a task as the board consumes it.
type Task struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Deadline    *string `json:"deadline"`
	CreatedAt   string  `json:"createdAt"`
}

// Client calls the task endpoints. It authenticates with the auth-token
// header; it holds no cookies.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the API at baseURL, authenticating every
// request with the given session token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// ListTasks fetches the caller's full task set.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/task", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("auth-token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list tasks: unexpected status %d", resp.StatusCode)
	}

	var tasks []Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus issues the status-change mutation backing a drag between
// columns.
func (c *Client) UpdateStatus(ctx context.Context, taskID int64, status domain.Status) error {
	payload, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	url := fmt.Sprintf("%s/api/task/%d", c.baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("auth-token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("update task %d: %w", taskID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update task %d: unexpected status %d", taskID, resp.StatusCode)
	}
	return nil
}
