// Package client is a thin HTTP client for the taskkeeper API. It keeps the
// bearer token of the current session and maps server statuses to the
// sentinel errors in errors.go.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

type TaskkeeperClient struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewTaskkeeperClient(baseURL string, timeout time.Duration) *TaskkeeperClient {
	return &TaskkeeperClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *TaskkeeperClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *TaskkeeperClient) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Logout forgets the session token. Tokens are not revocable server side.
func (c *TaskkeeperClient) Logout() {
	c.setToken("")
}

// Register creates an account. Like Login it does not retain the password;
// the copy made while encoding the body is not wiped.
func (c *TaskkeeperClient) Register(ctx context.Context, u models.NewUser, password []byte) (*models.User, error) {
	body := struct {
		models.NewUser
		Password string `json:"password"`
	}{NewUser: u, Password: string(password)}

	var out models.User
	if err := c.doJSON(ctx, http.MethodPost, "/create/user", false, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token and keeps it for later calls.
// The password is not retained.
func (c *TaskkeeperClient) Login(ctx context.Context, userName string, password []byte) error {
	form := url.Values{"username": {userName}, "password": {string(password)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(req, &out); err != nil {
		return err
	}
	if out.Token == "" {
		return ErrUnexpectedAPI
	}

	c.setToken(out.Token)
	return nil
}

func (c *TaskkeeperClient) ListTodos(ctx context.Context) ([]models.Todo, error) {
	var out []models.Todo
	if err := c.doJSON(ctx, http.MethodGet, "/todos/user", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskkeeperClient) GetTodo(ctx context.Context, id int64) (*models.Todo, error) {
	var out models.Todo
	if err := c.doJSON(ctx, http.MethodGet, "/todo/"+strconv.FormatInt(id, 10), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *TaskkeeperClient) CreateTodo(ctx context.Context, t models.TodoFields) error {
	return c.doJSON(ctx, http.MethodPost, "/", true, t, nil)
}

func (c *TaskkeeperClient) UpdateTodo(ctx context.Context, id int64, t models.TodoFields) error {
	return c.doJSON(ctx, http.MethodPut, "/"+strconv.FormatInt(id, 10), true, t, nil)
}

func (c *TaskkeeperClient) DeleteTodo(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/"+strconv.FormatInt(id, 10), true, nil, nil)
}

func (c *TaskkeeperClient) doJSON(ctx context.Context, method, path string, authorized bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		token := c.Token()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	return c.do(req, out)
}

func (c *TaskkeeperClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", ErrUnexpectedAPI, err)
		}
		return nil
	}

	return statusError(resp)
}

func statusError(resp *http.Response) error {
	var d struct {
		Detail string `json:"detail"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&d)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrTokenExpired
	case http.StatusConflict:
		sentinel = ErrConflict
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusUnprocessableEntity:
		sentinel = ErrInvalidInput
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		sentinel = ErrUnavailable
	default:
		sentinel = ErrUnexpectedAPI
	}

	if d.Detail != "" {
		return fmt.Errorf("%w: %s", sentinel, d.Detail)
	}
	return fmt.Errorf("%w: status %d", sentinel, resp.StatusCode)
}
