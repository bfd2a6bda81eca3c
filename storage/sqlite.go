package storage

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"github.com/WD2026/todo-rest-service-katharinaviik/model"
)

// SQLiteStore implements Store on a local SQLite database, for
// deployments that outgrow the flat file. Selected with
// driver = "sqlite" in the config.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{conn: conn}

	if err := s.initSchema(); err != nil {
		return nil, err
	}

	log.Printf("Database initialized at %s", path)
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	// AUTOINCREMENT (not plain rowid) so deleted ids are never handed
	// out again, matching the flat-file driver's counter.
	schema := `
  	CREATE TABLE IF NOT EXISTS todos (
  		id INTEGER PRIMARY KEY AUTOINCREMENT,
  		text TEXT NOT NULL,
  		done BOOLEAN NOT NULL DEFAULT 0
  	);
	`

	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// GetAll returns every stored todo. Insertion order and id order
// coincide here because ids are monotonic.
func (s *SQLiteStore) GetAll() ([]model.Todo, error) {
	rows, err := s.conn.Query(`SELECT id, text, done FROM todos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		var todo model.Todo
		if err := rows.Scan(&todo.ID, &todo.Text, &todo.Done); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return todos, nil
}

// Get returns the todo with the given id, or ok=false when absent.
func (s *SQLiteStore) Get(id int) (model.Todo, bool, error) {
	var todo model.Todo
	err := s.conn.QueryRow(
		`SELECT id, text, done FROM todos WHERE id = ?`, id,
	).Scan(&todo.ID, &todo.Text, &todo.Done)

	if err == sql.ErrNoRows {
		return model.Todo{}, false, nil
	}
	if err != nil {
		return model.Todo{}, false, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, true, nil
}

// Save inserts a new todo and returns it with the assigned id.
func (s *SQLiteStore) Save(todo model.TodoCreate) (model.Todo, error) {
	result, err := s.conn.Exec(
		`INSERT INTO todos (text, done) VALUES (?, ?)`, todo.Text, todo.Done,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return model.Todo{ID: int(id), Text: todo.Text, Done: todo.Done}, nil
}

// Update replaces the stored record wholesale. Returns ErrNotFound
// when the id does not exist.
func (s *SQLiteStore) Update(todo model.Todo) (model.Todo, error) {
	result, err := s.conn.Exec(
		`UPDATE todos SET text = ?, done = ? WHERE id = ?`,
		todo.Text, todo.Done, todo.ID,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return model.Todo{}, ErrNotFound
	}

	return todo, nil
}

// Delete removes the record with the given id. Returns ErrNotFound
// when it does not exist.
func (s *SQLiteStore) Delete(id int) error {
	result, err := s.conn.Exec(`DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
