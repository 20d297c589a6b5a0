package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_SendsFieldsAndWipesPassword(t *testing.T) {
	out := captureOutput(t)
	api := newFakeAPI()
	a := &App{api: api}

	pw := []byte("secret1")
	stubInputs(t, pw, "alice", "", "Alice", "Liddell")

	require.NoError(t, a.Register(context.Background()))

	require.NotNil(t, api.registered)
	assert.Equal(t, "alice", api.registered.UserName)
	assert.Nil(t, api.registered.Email)
	assert.Equal(t, []byte("secret1"), api.regPass)
	assert.Equal(t, make([]byte, len(pw)), pw, "password buffer must be wiped")
	assert.Contains(t, out.String(), "Success!")
}

func TestRegister_Conflict(t *testing.T) {
	captureOutput(t)
	api := newFakeAPI()
	api.regErr = fmt.Errorf("%w: username already exists", client.ErrConflict)
	a := &App{api: api}
	stubInputs(t, []byte("pw"), "alice", "a@example.com", "A", "L")

	err := a.Register(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"alice" is taken`)
	require.NotNil(t, api.registered.Email)
}

func TestLogin_Success(t *testing.T) {
	captureOutput(t)
	api := newFakeAPI()
	a := &App{api: api}
	pw := []byte("secret1")
	stubInputs(t, pw, "alice")

	require.NoError(t, a.Login(context.Background()))

	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(alice) ", a.getStatus())
	assert.Equal(t, "alice", api.loginUser)
	assert.Equal(t, []byte("secret1"), api.loginPass)
	assert.Equal(t, make([]byte, len(pw)), pw)
}

func TestLogin_Rejected(t *testing.T) {
	captureOutput(t)
	api := newFakeAPI()
	api.loginErr = client.ErrUnauthorized
	a := &App{api: api}
	stubInputs(t, []byte("bad"), "alice")

	err := a.Login(context.Background())
	require.EqualError(t, err, "incorrect username or password")
	assert.False(t, a.isLoggedIn())
}

func TestLogout(t *testing.T) {
	captureOutput(t)
	api := newFakeAPI()
	a := &App{api: api, userName: "alice"}

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.True(t, api.loggedOut)
}
