package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

const defaultPriority = 3

func (a *App) List(ctx context.Context) error {
	list, err := a.api.ListTodos(ctx)
	if err != nil {
		return a.expire(err)
	}
	if len(list) == 0 {
		printlnFn("No todos yet")
		return nil
	}
	for _, item := range list {
		printlnFn(item.String())
	}
	return nil
}

// Add prompts for title, optional description and priority (1-5, default 3).
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		return fmt.Errorf("title is required")
	}

	description, err := getSimpleText(a.reader, "Enter description (optional)", a.out)
	if err != nil {
		return err
	}

	p, err := getSimpleText(a.reader, "Enter priority 1-5 (default 3)", a.out)
	if err != nil {
		return err
	}
	priority := defaultPriority
	if p != "" {
		if priority, err = strconv.Atoi(p); err != nil || priority < 1 || priority > 5 {
			return fmt.Errorf("priority must be a number from 1 to 5")
		}
	}

	fields := models.TodoFields{Title: title, Priority: priority}
	if description != "" {
		fields.Description = &description
	}

	if err := a.api.CreateTodo(ctx, fields); err != nil {
		return a.expire(err)
	}
	printlnFn("Added")
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.todoID(args, "Enter todo id to show")
	if err != nil {
		return err
	}
	todo, err := a.api.GetTodo(ctx, id)
	if err != nil {
		return a.expire(err)
	}
	printlnFn(todo.String())
	return nil
}

// Done marks a todo complete, keeping its other fields.
func (a *App) Done(ctx context.Context, args []string) error {
	id, err := a.todoID(args, "Enter todo id to complete")
	if err != nil {
		return err
	}
	todo, err := a.api.GetTodo(ctx, id)
	if err != nil {
		return a.expire(err)
	}

	fields := todo.Fields()
	fields.Complete = true
	if err := a.api.UpdateTodo(ctx, id, fields); err != nil {
		return a.expire(err)
	}
	printlnFn("Completed #" + strconv.FormatInt(id, 10))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.todoID(args, "Enter todo id to delete")
	if err != nil {
		return err
	}
	if err := a.api.DeleteTodo(ctx, id); err != nil {
		return a.expire(err)
	}
	printlnFn("Deleted #" + strconv.FormatInt(id, 10))
	return nil
}

// todoID takes the id from the first argument or prompts for it.
func (a *App) todoID(args []string, prompt string) (int64, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = getSimpleText(a.reader, prompt, a.out); err != nil {
			return 0, err
		}
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", raw)
	}
	return id, nil
}
