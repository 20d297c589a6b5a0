package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/client"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL reads commands line by line until EOF, "exit" or "quit".
//
//	Not logged in: help, register, login, exit
//	Logged in:     help, (l)ist, add, show <id>, done <id>, delete <id>, logout, exit
//
// Command errors are reported and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, show <id>, done <id>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "add":
			cmdErr = a.Add(ctx)

		case "show":
			cmdErr = a.Show(ctx, args)

		case "done":
			cmdErr = a.Done(ctx, args)

		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			report(cmdErr)
		}
	}
}

func report(err error) {
	switch {
	case errors.Is(err, client.ErrTokenExpired):
		printlnFn("Session expired, please login again")
	case errors.Is(err, client.ErrNotLoggedIn):
		printlnFn("Please login first")
	default:
		printlnFn("Error:", err.Error())
	}
}
