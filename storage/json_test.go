package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/WD2026/todo-rest-service-katharinaviik/model"
)

func newTestDao(t *testing.T) (*TodoDao, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo_data.json")
	dao, err := NewTodoDao(path)
	if err != nil {
		t.Fatalf("NewTodoDao: %v", err)
	}
	return dao, path
}

func mustSave(t *testing.T, dao *TodoDao, text string, done bool) model.Todo {
	t.Helper()
	created, err := dao.Save(model.TodoCreate{Text: text, Done: done})
	if err != nil {
		t.Fatalf("Save(%q): %v", text, err)
	}
	return created
}

func TestSaveAssignsIncreasingIDs(t *testing.T) {
	dao, _ := newTestDao(t)

	prev := 0
	for _, text := range []string{"a", "b", "c", "d"} {
		created := mustSave(t, dao, text, false)
		if created.ID <= prev {
			t.Fatalf("expected id > %d, got %d", prev, created.ID)
		}
		prev = created.ID
	}
}

func TestGetAfterSave(t *testing.T) {
	dao, _ := newTestDao(t)

	created := mustSave(t, dao, "buy milk", false)

	got, ok, err := dao.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected todo %d to exist", created.ID)
	}
	if got != created {
		t.Errorf("Get returned %+v, want %+v", got, created)
	}
}

func TestGetMissingID(t *testing.T) {
	dao, _ := newTestDao(t)

	_, ok, err := dao.Get(42)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected ok=false for a missing id")
	}
}

func TestUpdateFullReplace(t *testing.T) {
	dao, _ := newTestDao(t)

	created := mustSave(t, dao, "buy milk", true)

	// Done is not carried over from the stored record; the update is a
	// wholesale replace.
	updated, err := dao.Update(model.Todo{ID: created.ID, Text: "pay bills"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Done {
		t.Error("expected done to be overwritten to false")
	}

	got, ok, _ := dao.Get(created.ID)
	if !ok {
		t.Fatalf("expected todo %d to exist", created.ID)
	}
	if got.Text != "pay bills" || got.Done {
		t.Errorf("unexpected todo after update: %+v", got)
	}
}

func TestUpdateMissingID(t *testing.T) {
	dao, _ := newTestDao(t)

	_, err := dao.Update(model.Todo{ID: 7, Text: "ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteThenGet(t *testing.T) {
	dao, _ := newTestDao(t)

	created := mustSave(t, dao, "buy milk", false)

	if err := dao.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, ok, _ := dao.Get(created.ID)
	if ok {
		t.Error("expected todo to be gone after delete")
	}
}

func TestDeleteMissingID(t *testing.T) {
	dao, _ := newTestDao(t)

	if err := dao.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// The scenario from the service contract: deleted ids are never
// reused, and GetAll keeps insertion order.
func TestDeletedIDNotReused(t *testing.T) {
	dao, _ := newTestDao(t)

	first := mustSave(t, dao, "buy milk", false)
	second := mustSave(t, dao, "pay bills", false)
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}

	if err := dao.Delete(first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	third := mustSave(t, dao, "call mom", false)
	if third.ID != 3 {
		t.Fatalf("expected id 3 after delete, got %d", third.ID)
	}

	todos, err := dao.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(todos) != 2 || todos[0].ID != 2 || todos[1].ID != 3 {
		t.Errorf("unexpected collection: %+v", todos)
	}
}

func TestGetAllInsertionOrder(t *testing.T) {
	dao, _ := newTestDao(t)

	for _, text := range []string{"a", "b", "c"} {
		mustSave(t, dao, text, false)
	}

	todos, _ := dao.GetAll()
	if len(todos) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(todos))
	}
	for i, text := range []string{"a", "b", "c"} {
		if todos[i].Text != text {
			t.Errorf("position %d: expected %q, got %q", i, text, todos[i].Text)
		}
	}
}

func TestGetAllReturnsCopies(t *testing.T) {
	dao, _ := newTestDao(t)
	created := mustSave(t, dao, "buy milk", false)

	todos, _ := dao.GetAll()
	todos[0].Done = true

	got, _, _ := dao.Get(created.ID)
	if got.Done {
		t.Error("mutating the returned slice must not touch the store")
	}
}

// Re-opening a dao on the same file must reproduce the collection and
// continue the id sequence from the persisted maximum.
func TestRoundTripPersistence(t *testing.T) {
	dao, path := newTestDao(t)

	mustSave(t, dao, "buy milk", false)
	second := mustSave(t, dao, "pay bills", true)
	mustSave(t, dao, "call mom", false)
	if err := dao.Delete(second.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	before, _ := dao.GetAll()

	reopened, err := NewTodoDao(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	after, _ := reopened.GetAll()

	if len(after) != len(before) {
		t.Fatalf("expected %d todos after reload, got %d", len(before), len(after))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("position %d: expected %+v, got %+v", i, before[i], after[i])
		}
	}

	created := mustSave(t, reopened, "new after reload", false)
	if created.ID != 4 {
		t.Errorf("expected id counter to resume at 4, got %d", created.ID)
	}
}

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	dao, path := newTestDao(t)

	todos, err := dao.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("expected empty store, got %d todos", len(todos))
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected no file before the first mutation, stat err: %v", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo_data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewTodoDao(path); err == nil {
		t.Fatal("expected an error for a malformed data file")
	}
}

func TestLoadRejectsWrongShape(t *testing.T) {
	cases := map[string]string{
		"object instead of array": `{"1": {"id": 1, "text": "x", "done": false}}`,
		"missing required field":  `[{"id": 1, "text": "x"}]`,
		"non-positive id":         `[{"id": 0, "text": "x", "done": false}]`,
		"wrong field type":        `[{"id": 1, "text": 5, "done": false}]`,
	}

	for name, contents := range cases {
		path := filepath.Join(t.TempDir(), "todo_data.json")
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewTodoDao(path); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo_data.json")
	contents := `[{"id": 1, "text": "a", "done": false}, {"id": 1, "text": "b", "done": true}]`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewTodoDao(path); err == nil {
		t.Fatal("expected an error for duplicate ids")
	}
}

// Every mutation flushes before returning, so the file must match the
// in-memory collection at any point between calls.
func TestFlushAfterEveryMutation(t *testing.T) {
	dao, path := newTestDao(t)

	created := mustSave(t, dao, "buy milk", false)
	assertFileMatches(t, dao, path)

	if _, err := dao.Update(model.Todo{ID: created.ID, Text: "buy milk", Done: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	assertFileMatches(t, dao, path)

	if err := dao.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	assertFileMatches(t, dao, path)
}

func assertFileMatches(t *testing.T, dao *TodoDao, path string) {
	t.Helper()

	reloaded, err := NewTodoDao(path)
	if err != nil {
		t.Fatalf("reload %s: %v", path, err)
	}

	inMemory, _ := dao.GetAll()
	onDisk, _ := reloaded.GetAll()

	if len(inMemory) != len(onDisk) {
		t.Fatalf("memory has %d todos, disk has %d", len(inMemory), len(onDisk))
	}
	for i := range inMemory {
		if inMemory[i] != onDisk[i] {
			t.Errorf("position %d: memory %+v, disk %+v", i, inMemory[i], onDisk[i])
		}
	}
}
