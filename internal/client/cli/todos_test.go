package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_DefaultsPriority(t *testing.T) {
	captureOutput(t)
	api := newFakeAPI()
	a := &App{api: api, userName: "alice"}
	stubInputs(t, nil, "milk", "", "")

	require.NoError(t, a.Add(context.Background()))
	require.Len(t, api.created, 1)
	assert.Equal(t, models.TodoFields{Title: "milk", Priority: 3}, api.created[0])
}

func TestAdd_RejectsBadPriority(t *testing.T) {
	captureOutput(t)
	api := newFakeAPI()
	a := &App{api: api, userName: "alice"}

	for _, p := range []string{"0", "6", "high"} {
		stubInputs(t, nil, "milk", "2l", p)
		require.Error(t, a.Add(context.Background()), p)
	}
	assert.Empty(t, api.created)
}

func TestList_PrintsTodos(t *testing.T) {
	out := captureOutput(t)
	api := newFakeAPI()
	api.todos[7] = models.Todo{ID: 7, Title: "milk", Priority: 2}
	a := &App{api: api, userName: "alice"}

	require.NoError(t, a.List(context.Background()))
	assert.Contains(t, out.String(), "[ ] #7 p2 milk")
}

func TestDone_KeepsFields(t *testing.T) {
	captureOutput(t)
	d := "2l"
	api := newFakeAPI()
	api.todos[7] = models.Todo{ID: 7, Title: "milk", Description: &d, Priority: 2}
	a := &App{api: api, userName: "alice"}

	require.NoError(t, a.Done(context.Background(), []string{"7"}))
	assert.Equal(t, models.TodoFields{Title: "milk", Description: &d, Priority: 2, Complete: true}, api.updated[7])
}

func TestShowAndDelete_PromptForID(t *testing.T) {
	out := captureOutput(t)
	api := newFakeAPI()
	api.todos[7] = models.Todo{ID: 7, Title: "milk", Priority: 2}
	a := &App{api: api, userName: "alice"}

	prompts := stubInputs(t, nil, "7", "#7")
	require.NoError(t, a.Show(context.Background(), nil))
	require.NoError(t, a.Delete(context.Background(), nil))

	assert.Len(t, *prompts, 2)
	assert.Contains(t, out.String(), "milk")
	assert.Equal(t, []int64{7}, api.deleted)
}

func TestTodoID_Invalid(t *testing.T) {
	a := &App{api: newFakeAPI()}
	_, err := a.todoID([]string{"abc"}, "")
	assert.Error(t, err)
	_, err = a.todoID([]string{"-1"}, "")
	assert.Error(t, err)
}

func TestExpiredSessionLogsOut(t *testing.T) {
	captureOutput(t)
	api := newFakeAPI()
	api.err = client.ErrTokenExpired
	a := &App{api: api, userName: "alice"}

	err := a.List(context.Background())
	require.ErrorIs(t, err, client.ErrTokenExpired)
	assert.False(t, a.isLoggedIn())
	assert.True(t, api.loggedOut)
}
