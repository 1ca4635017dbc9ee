package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BerylCAtieno/stratyx-planner/internal/a2a"
	"github.com/BerylCAtieno/stratyx-planner/internal/models"
)

// Client talks to a running planner server.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *Client) projectsPath(email string, parts ...string) string {
	path := "/api/namespaces/" + url.PathEscape(email) + "/projects"
	for _, p := range parts {
		path += "/" + url.PathEscape(p)
	}
	return path
}

// do sends body as JSON and returns the raw response body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			msg = payload.Error
		}
		return nil, nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return data, resp.Header, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	data, _, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Health(ctx context.Context) error {
	data, _, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	if string(data) != "OK" {
		return fmt.Errorf("expected body 'OK', got %q", string(data))
	}
	return nil
}

func (c *Client) AgentCard(ctx context.Context) (map[string]any, error) {
	var card map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/.well-known/agent.json", nil, &card); err != nil {
		return nil, err
	}
	return card, nil
}

func (c *Client) ListProjects(ctx context.Context, email string) ([]models.Project, error) {
	var projects []models.Project
	err := c.doJSON(ctx, http.MethodGet, c.projectsPath(email), nil, &projects)
	return projects, err
}

func (c *Client) GetProject(ctx context.Context, email, id string) (models.Project, error) {
	var p models.Project
	err := c.doJSON(ctx, http.MethodGet, c.projectsPath(email, id), nil, &p)
	return p, err
}

func (c *Client) DeleteProject(ctx context.Context, email, id string) error {
	return c.doJSON(ctx, http.MethodDelete, c.projectsPath(email, id), nil, nil)
}

func (c *Client) SaveProject(ctx context.Context, email string, p models.Project, name string) (models.Project, error) {
	body := map[string]any{"project": p, "name": name}
	var saved models.Project
	err := c.doJSON(ctx, http.MethodPost, c.projectsPath(email), body, &saved)
	return saved, err
}

func (c *Client) TogglePost(ctx context.Context, email, id, postID string) (models.Project, error) {
	var p models.Project
	err := c.doJSON(ctx, http.MethodPost, c.projectsPath(email, id, "posts", postID, "toggle"), nil, &p)
	return p, err
}

func (c *Client) ExtendCalendar(ctx context.Context, email, id string) (models.Project, error) {
	var p models.Project
	err := c.doJSON(ctx, http.MethodPost, c.projectsPath(email, id, "extend"), nil, &p)
	return p, err
}

func (c *Client) GeneratePlan(ctx context.Context, profile models.BusinessProfile) (*models.MarketingPlan, error) {
	var plan models.MarketingPlan
	if err := c.doJSON(ctx, http.MethodPost, "/api/plans", profile, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Export returns the JSON document and the filename suggested by the server.
func (c *Client) Export(ctx context.Context, email, id string) ([]byte, string, error) {
	data, header, err := c.do(ctx, http.MethodGet, c.projectsPath(email, id, "export"), nil)
	if err != nil {
		return nil, "", err
	}
	filename := id + ".json"
	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, after, ok := strings.Cut(cd, "filename="); ok {
			filename = strings.Trim(after, `"`)
		}
	}
	return data, filename, nil
}

func (c *Client) Print(ctx context.Context, email, id string) (string, error) {
	data, _, err := c.do(ctx, http.MethodGet, c.projectsPath(email, id, "print"), nil)
	return string(data), err
}

// AskAgent sends a free-form business description to the A2A endpoint.
func (c *Client) AskAgent(ctx context.Context, idea string) (*a2a.TaskResult, error) {
	params, err := json.Marshal(a2a.MessageParams{
		Message: a2a.A2AMessage{
			Kind:  "message",
			Role:  a2a.RoleUser,
			Parts: []a2a.MessagePart{a2a.TextPart(idea)},
		},
		Configuration: a2a.MessageConfiguration{
			Blocking:            true,
			AcceptedOutputModes: []string{"text", "data"},
		},
	})
	if err != nil {
		return nil, err
	}
	req := a2a.JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      fmt.Sprintf("cli-%d", time.Now().Unix()),
		Method:  "message/send",
		Params:  params,
	}

	var resp struct {
		Result *a2a.TaskResult   `json:"result"`
		Error  *a2a.JSONRPCError `json:"error"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/a2a/planner", req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("agent error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	if resp.Result == nil {
		return nil, fmt.Errorf("agent returned no result")
	}
	return resp.Result, nil
}
