// Package models holds the wire shapes the CLI exchanges with the server.
package models

import "fmt"

type User struct {
	ID        int64   `json:"id"`
	UserName  string  `json:"username"`
	Email     *string `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	IsActive  bool    `json:"is_active"`
}

// NewUser is the account part of a registration. The password travels
// separately so callers can wipe it.
type NewUser struct {
	UserName  string  `json:"username"`
	Email     *string `json:"email,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
}

type Todo struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    int     `json:"priority"`
	Complete    bool    `json:"complete"`
	OwnerID     int64   `json:"owner_id"`
}

// TodoFields is the writable part of a Todo.
type TodoFields struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Priority    int     `json:"priority"`
	Complete    bool    `json:"complete"`
}

func (t Todo) Fields() TodoFields {
	return TodoFields{Title: t.Title, Description: t.Description, Priority: t.Priority, Complete: t.Complete}
}

func (t Todo) String() string {
	mark := " "
	if t.Complete {
		mark = "x"
	}
	s := fmt.Sprintf("[%s] #%d p%d %s", mark, t.ID, t.Priority, t.Title)
	if t.Description != nil && *t.Description != "" {
		s += " - " + *t.Description
	}
	return s
}
