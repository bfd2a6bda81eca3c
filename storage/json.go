package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/WD2026/todo-rest-service-katharinaviik/model"
)

// The backing file holds the full collection as one JSON array and is
// rewritten wholesale on every mutation. A file that parses but has
// the wrong shape is as unusable as one that does not parse, so the
// load path validates against this schema before trusting it.
const todoSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "done"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "text": {"type": "string"},
      "done": {"type": "boolean"}
    }
  }
}`

var dataSchema = jsonschema.MustCompileString("todos.schema.json", todoSchema)

// recordStore is the in-memory mapping synchronized with the backing
// file. It owns id assignment; TodoDao layers the Store contract and
// locking on top.
type recordStore struct {
	path   string
	todos  map[int]model.Todo
	order  []int // insertion order, also the flush order
	nextID int   // highest id ever assigned or loaded
}

func openRecordStore(path string) (*recordStore, error) {
	rs := &recordStore{path: path, todos: make(map[int]model.Todo)}
	if err := rs.load(); err != nil {
		return nil, err
	}
	return rs, nil
}

// load reads the backing file into the mapping. A missing file means
// an empty store; anything unreadable or malformed is an error the
// caller treats as fatal. The id counter is seeded from the highest
// loaded id.
func (rs *recordStore) load() error {
	b, err := os.ReadFile(rs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", rs.path, err)
	}

	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", rs.path, err)
	}
	if err := dataSchema.Validate(doc); err != nil {
		return fmt.Errorf("validate %s: %w", rs.path, err)
	}

	var todos []model.Todo
	if err := json.Unmarshal(b, &todos); err != nil {
		return fmt.Errorf("parse %s: %w", rs.path, err)
	}
	for _, t := range todos {
		if _, dup := rs.todos[t.ID]; dup {
			return fmt.Errorf("load %s: duplicate id %d", rs.path, t.ID)
		}
		rs.todos[t.ID] = t
		rs.order = append(rs.order, t.ID)
		if t.ID > rs.nextID {
			rs.nextID = t.ID
		}
	}
	return nil
}

// takeID consumes the next id. Each id is handed out exactly once per
// process lifetime; deleting a record does not free its id.
func (rs *recordStore) takeID() int {
	rs.nextID++
	return rs.nextID
}

// snapshot returns a copy of the collection in insertion order.
func (rs *recordStore) snapshot() []model.Todo {
	todos := make([]model.Todo, 0, len(rs.order))
	for _, id := range rs.order {
		todos = append(todos, rs.todos[id])
	}
	return todos
}

// flush rewrites the whole backing file from the mapping. It is
// synchronous: mutating calls do not return before the bytes are
// handed to the OS.
func (rs *recordStore) flush() error {
	b, err := json.MarshalIndent(rs.snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todos: %w", err)
	}
	if err := os.WriteFile(rs.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rs.path, err)
	}
	return nil
}

// TodoDao is the flat-file Store driver. A single RWMutex spans the
// mapping and the file flush, so concurrent saves cannot collide on
// an id or lose an update.
//
// When a flush fails, the preceding in-memory mutation is rolled back:
// memory and disk never diverge, the failed write is lost and the
// error is returned to the caller.
type TodoDao struct {
	mu sync.RWMutex
	rs *recordStore
}

// NewTodoDao loads the store backed by the file at path, starting
// empty when the file does not exist yet.
func NewTodoDao(path string) (*TodoDao, error) {
	rs, err := openRecordStore(path)
	if err != nil {
		return nil, err
	}
	return &TodoDao{rs: rs}, nil
}

// GetAll returns every stored todo in insertion order. The flat-file
// driver cannot fail here; the error is owed to the Store contract.
func (d *TodoDao) GetAll() ([]model.Todo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rs.snapshot(), nil
}

// Get returns a copy of the todo with the given id, or ok=false when
// it is absent.
func (d *TodoDao) Get(id int) (model.Todo, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	todo, ok := d.rs.todos[id]
	return todo, ok, nil
}

// Save stores a new todo under the next id and flushes.
func (d *TodoDao) Save(todo model.TodoCreate) (model.Todo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	created := model.Todo{ID: d.rs.takeID(), Text: todo.Text, Done: todo.Done}
	d.rs.todos[created.ID] = created
	d.rs.order = append(d.rs.order, created.ID)

	if err := d.rs.flush(); err != nil {
		delete(d.rs.todos, created.ID)
		d.rs.order = d.rs.order[:len(d.rs.order)-1]
		// The id stays consumed; it will not be issued again.
		return model.Todo{}, err
	}
	return created, nil
}

// Update replaces the stored record wholesale and flushes. The id must
// already exist; otherwise ErrNotFound.
func (d *TodoDao) Update(todo model.Todo) (model.Todo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev, ok := d.rs.todos[todo.ID]
	if !ok {
		return model.Todo{}, ErrNotFound
	}
	d.rs.todos[todo.ID] = todo

	if err := d.rs.flush(); err != nil {
		d.rs.todos[todo.ID] = prev
		return model.Todo{}, err
	}
	return todo, nil
}

// Delete removes the record and flushes. Deleting an absent id returns
// ErrNotFound; callers are expected to have checked existence first.
func (d *TodoDao) Delete(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev, ok := d.rs.todos[id]
	if !ok {
		return ErrNotFound
	}
	pos := slices.Index(d.rs.order, id)
	delete(d.rs.todos, id)
	d.rs.order = slices.Delete(d.rs.order, pos, pos+1)

	if err := d.rs.flush(); err != nil {
		d.rs.todos[id] = prev
		d.rs.order = slices.Insert(d.rs.order, pos, id)
		return err
	}
	return nil
}

// Close is a no-op for the flat-file driver.
func (d *TodoDao) Close() error {
	return nil
}
