// Package cli is the interactive taskkeeper client: a small REPL over the
// HTTP API.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// API is the part of client.TaskkeeperClient the CLI uses.
type API interface {
	Register(ctx context.Context, u models.NewUser, password []byte) (*models.User, error)
	Login(ctx context.Context, userName string, password []byte) error
	Logout()
	ListTodos(ctx context.Context) ([]models.Todo, error)
	GetTodo(ctx context.Context, id int64) (*models.Todo, error)
	CreateTodo(ctx context.Context, t models.TodoFields) error
	UpdateTodo(ctx context.Context, id int64, t models.TodoFields) error
	DeleteTodo(ctx context.Context, id int64) error
}

type App struct {
	config   *config.Config
	api      API
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	api := client.NewTaskkeeperClient(c.ServerURL, c.RequestTimeout)
	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return "(" + a.userName + ") "
}

func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to taskkeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
