// Package storage persists todo records.
//
// Two drivers implement the same Store contract: a JSON flat file
// (the default) and SQLite. The HTTP layer only ever sees the
// interface, so the driver is a config switch.
package storage

import (
	"errors"

	"github.com/WD2026/todo-rest-service-katharinaviik/model"
)

// ErrNotFound is returned by Update and Delete when the id does not
// exist. Get signals a missing id through its ok result instead; the
// HTTP layer pre-checks existence, so hitting this sentinel means the
// caller skipped that check.
var ErrNotFound = errors.New("todo not found")

// Store is the persistence contract consumed by the HTTP layer.
type Store interface {
	// GetAll returns every stored todo in insertion order.
	GetAll() ([]model.Todo, error)

	// Get returns the todo with the given id. A missing id is not an
	// error: ok is false and err is nil.
	Get(id int) (todo model.Todo, ok bool, err error)

	// Save assigns the next id, persists the todo and returns it with
	// the id populated. Ids are strictly increasing and never reused,
	// deletes included.
	Save(todo model.TodoCreate) (model.Todo, error)

	// Update replaces the stored record with the same id wholesale.
	// Returns ErrNotFound when the id does not exist; there is no
	// insert fallthrough.
	Update(todo model.Todo) (model.Todo, error)

	// Delete removes the todo with the given id and returns
	// ErrNotFound when it does not exist.
	Delete(id int) error

	// Close releases driver resources.
	Close() error
}
