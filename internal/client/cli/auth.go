package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// getSimpleText and getPassword are indirections swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and a password and creates the
// account. The password buffer is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	var u models.NewUser
	var err error

	if u.UserName, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email (optional)", a.out)
	if err != nil {
		return err
	}
	if email != "" {
		u.Email = &email
	}
	if u.FirstName, err = getSimpleText(a.reader, "Enter first name", a.out); err != nil {
		return err
	}
	if u.LastName, err = getSimpleText(a.reader, "Enter last name", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.api.Register(ctx, u, password); err != nil {
		if errors.Is(err, client.ErrConflict) {
			return fmt.Errorf("username %q is taken", u.UserName)
		}
		return err
	}

	printlnFn("Success!")
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("incorrect username or password")
		}
		return err
	}

	a.userName = userName
	printlnFn("Logged in as", userName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	printlnFn("Logged out")
	return nil
}

// expire drops local session state when the server says the token is
// stale, and passes err through.
func (a *App) expire(err error) error {
	if errors.Is(err, client.ErrTokenExpired) || errors.Is(err, client.ErrUnauthorized) {
		a.api.Logout()
		a.userName = ""
	}
	return err
}
