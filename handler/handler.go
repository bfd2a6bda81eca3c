package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/WD2026/todo-rest-service-katharinaviik/model"
	"github.com/WD2026/todo-rest-service-katharinaviik/storage"
)

// ErrorResponse is the JSON shape of every error body.
type ErrorResponse struct {
	Detail string `json:"detail" example:"Todo not found"`
}

// Handler serves the todo routes. The storage dependency is injected
// by the caller; there is no package-level store.
type Handler struct {
	store storage.Store
}

// New creates a handler on top of the given store.
func New(store storage.Store) *Handler {
	return &Handler{store: store}
}

// sendJSON buffers the encoded body first so an encoding failure can
// still produce a clean 500 instead of a half-written response.
func (h *Handler) sendJSON(w http.ResponseWriter, status int, v interface{}) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error: Failed to encode response"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *Handler) sendError(w http.ResponseWriter, status int, detail string) {
	h.sendJSON(w, status, ErrorResponse{Detail: detail})
}

// parseID extracts and checks the {id} path value. Ids are positive
// integers; anything else is a client error.
func parseID(r *http.Request) (int, error) {
	idStr := r.PathValue("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", idStr)
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive, got %d", id)
	}
	return id, nil
}

// HealthCheck reports liveness.
// @Summary Health check
// @Description Returns the current health of the service
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTodos returns the whole collection.
// @Summary List todos
// @Description Returns all todos in insertion order
// @Tags todos
// @Produce json
// @Success 200 {array} model.Todo
// @Failure 500 {object} handler.ErrorResponse
// @Router /todos [get]
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.store.GetAll()
	if err != nil {
		log.Printf("Failed to list todos: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Failed to list todos")
		return
	}

	h.sendJSON(w, http.StatusOK, todos)
}

// CreateTodo creates and saves a new todo. A unique id is assigned by
// the store and echoed in the Location header.
// @Summary Create a todo
// @Description Creates a new todo; a unique id is assigned
// @Tags todos
// @Accept json
// @Produce json
// @Param todo body model.TodoCreate true "Todo contents"
// @Success 201 {object} model.Todo
// @Header 201 {string} Location "URL of the created todo"
// @Failure 400 {object} handler.ErrorResponse
// @Failure 500 {object} handler.ErrorResponse
// @Router /todos [post]
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req model.TodoCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %v", err))
		return
	}

	created, err := h.store.Save(req)
	if err != nil {
		log.Printf("Failed to create todo: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/todos/%d", created.ID))
	h.sendJSON(w, http.StatusCreated, created)
}

// GetTodo returns a single todo by id.
// @Summary Get a todo
// @Description Returns the todo with the given id
// @Tags todos
// @Produce json
// @Param id path int true "Todo id"
// @Success 200 {object} model.Todo
// @Failure 400 {object} handler.ErrorResponse
// @Failure 404 {object} handler.ErrorResponse
// @Failure 500 {object} handler.ErrorResponse
// @Router /todos/{id} [get]
func (h *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	todo, ok, err := h.store.Get(id)
	if err != nil {
		log.Printf("Failed to get todo: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Failed to get todo")
		return
	}
	if !ok {
		h.sendError(w, http.StatusNotFound, "Todo not found")
		return
	}

	h.sendJSON(w, http.StatusOK, todo)
}

// UpdateTodo replaces an existing todo wholesale. The body carries the
// full new state; fields absent from it are overwritten, not merged.
// @Summary Replace a todo
// @Description Replaces the todo with the given id wholesale
// @Tags todos
// @Accept json
// @Produce json
// @Param id path int true "Todo id"
// @Param todo body model.TodoCreate true "New todo contents"
// @Success 200 {object} model.Todo
// @Failure 400 {object} handler.ErrorResponse
// @Failure 404 {object} handler.ErrorResponse
// @Failure 500 {object} handler.ErrorResponse
// @Router /todos/{id} [put]
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	id, err := parseID(r)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req model.TodoCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, fmt.Sprintf("Invalid JSON body: %v", err))
		return
	}

	// The store requires the id to exist; the existence check is this
	// layer's job.
	if _, ok, err := h.store.Get(id); err != nil {
		log.Printf("Failed to get todo: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Failed to get todo")
		return
	} else if !ok {
		h.sendError(w, http.StatusNotFound, "Todo not found")
		return
	}

	updated, err := h.store.Update(model.Todo{ID: id, Text: req.Text, Done: req.Done})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Todo not found")
			return
		}
		log.Printf("Failed to update todo: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Failed to update todo")
		return
	}

	h.sendJSON(w, http.StatusOK, updated)
}

// DeleteTodo removes a todo. Returns 204 No Content on success.
// @Summary Delete a todo
// @Description Deletes the todo with the given id
// @Tags todos
// @Produce json
// @Param id path int true "Todo id"
// @Success 204 "No Content"
// @Failure 400 {object} handler.ErrorResponse
// @Failure 404 {object} handler.ErrorResponse
// @Failure 500 {object} handler.ErrorResponse
// @Router /todos/{id} [delete]
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, ok, err := h.store.Get(id); err != nil {
		log.Printf("Failed to get todo: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Failed to get todo")
		return
	} else if !ok {
		h.sendError(w, http.StatusNotFound, "Todo not found")
		return
	}

	if err := h.store.Delete(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.sendError(w, http.StatusNotFound, "Todo not found")
			return
		}
		log.Printf("Failed to delete todo: %v", err)
		h.sendError(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CollectionOptions reports the methods supported on /todos. Per REST
// convention OPTIONS returns capabilities, not data.
// @Summary Allowed methods for the collection
// @Tags todos
// @Produce json
// @Success 200 {object} map[string]string
// @Header 200 {string} Allow "Comma-separated list of allowed methods"
// @Router /todos [options]
func (h *Handler) CollectionOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET,POST,OPTIONS")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("{}"))
}

// ItemOptions reports the methods supported on a single todo. It does
// not check whether the todo exists.
// @Summary Allowed methods for a single todo
// @Tags todos
// @Produce json
// @Param id path int true "Todo id (not validated)"
// @Success 200 {object} map[string]string
// @Header 200 {string} Allow "Comma-separated list of allowed methods"
// @Router /todos/{id} [options]
func (h *Handler) ItemOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET,PUT,DELETE,OPTIONS")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("{}"))
}
