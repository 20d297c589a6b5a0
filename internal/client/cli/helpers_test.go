package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// captureOutput swaps printlnFn and returns everything printed.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&sb, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &sb
}

// stubInputs answers prompts in order and returns password for getPassword.
func stubInputs(t *testing.T, password []byte, answers ...string) *[]string {
	t.Helper()
	var prompts []string
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
	return &prompts
}

type fakeAPI struct {
	registered *models.NewUser
	regPass    []byte
	regErr     error

	loginUser string
	loginPass []byte
	loginErr  error
	loggedOut bool

	todos   map[int64]models.Todo
	created []models.TodoFields
	updated map[int64]models.TodoFields
	deleted []int64
	err     error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{todos: map[int64]models.Todo{}, updated: map[int64]models.TodoFields{}}
}

func (f *fakeAPI) Register(_ context.Context, u models.NewUser, pass []byte) (*models.User, error) {
	f.registered, f.regPass = &u, append([]byte(nil), pass...)
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.User{ID: 1, UserName: u.UserName}, nil
}

func (f *fakeAPI) Login(_ context.Context, user string, pass []byte) error {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	return f.loginErr
}

func (f *fakeAPI) Logout() { f.loggedOut = true }

func (f *fakeAPI) ListTodos(context.Context) ([]models.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Todo, 0, len(f.todos))
	for _, t := range f.todos {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeAPI) GetTodo(_ context.Context, id int64) (*models.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.todos[id]
	if !ok {
		return nil, fmt.Errorf("todo %d: not found", id)
	}
	return &t, nil
}

func (f *fakeAPI) CreateTodo(_ context.Context, t models.TodoFields) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, t)
	return nil
}

func (f *fakeAPI) UpdateTodo(_ context.Context, id int64, t models.TodoFields) error {
	if f.err != nil {
		return f.err
	}
	f.updated[id] = t
	return nil
}

func (f *fakeAPI) DeleteTodo(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}
