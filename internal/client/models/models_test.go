package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTodo_String(t *testing.T) {
	d := "2l"
	assert.Equal(t, "[ ] #3 p2 milk - 2l", Todo{ID: 3, Title: "milk", Description: &d, Priority: 2}.String())
	assert.Equal(t, "[x] #4 p1 bread", Todo{ID: 4, Title: "bread", Priority: 1, Complete: true}.String())
}

func TestTodo_Fields(t *testing.T) {
	d := "x"
	todo := Todo{ID: 1, Title: "t", Description: &d, Priority: 5, Complete: true, OwnerID: 9}
	assert.Equal(t, TodoFields{Title: "t", Description: &d, Priority: 5, Complete: true}, todo.Fields())
}
