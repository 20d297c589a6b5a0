package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	args     [][]string
	listErr  error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) List(context.Context) error {
	f.calls = append(f.calls, "list")
	return f.listErr
}
func (f *fakeExec) Add(context.Context) error { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) Show(_ context.Context, args []string) error {
	f.calls = append(f.calls, "show")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) Done(_ context.Context, args []string) error {
	f.calls = append(f.calls, "done")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) Delete(_ context.Context, args []string) error {
	f.calls = append(f.calls, "delete")
	f.args = append(f.args, args)
	return nil
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)
	f := &fakeExec{}

	input := strings.Join([]string{
		"help", "register", "login", "", "help", "l", "add",
		"show 3", "done 3", "delete 3", "bogus", "logout", "exit", "list",
	}, "\n")
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"register", "login", "list", "add", "show", "done", "delete", "logout"}, f.calls)
	assert.Equal(t, [][]string{{"3"}, {"3"}, {"3"}}, f.args)

	s := out.String()
	assert.Contains(t, s, "Available commands: register, login, exit")
	assert.Contains(t, s, "Available commands: (l)ist")
	assert.Contains(t, s, "Unknown command: bogus")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_StopsOnEOFAndReportsErrors(t *testing.T) {
	out := captureOutput(t)
	f := &fakeExec{listErr: client.ErrTokenExpired}

	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("list")))

	assert.Equal(t, []string{"list"}, f.calls)
	assert.Contains(t, out.String(), "Session expired, please login again")
}
