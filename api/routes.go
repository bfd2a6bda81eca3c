package api

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/WD2026/todo-rest-service-katharinaviik/handler"
)

// corsMiddleware handles cross-origin requests.
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// recoverMiddleware catches panics so one bad request cannot take the
// server down.
func recoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("panic recovered: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}

// chain applies middlewares right to left.
func chain(f http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		f = middlewares[i](f)
	}
	return f
}

// SetupRoutes builds the ServeMux for the todo API.
func SetupRoutes(h *handler.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	withMiddlewares := func(f http.HandlerFunc) http.HandlerFunc {
		return chain(f, corsMiddleware, recoverMiddleware)
	}

	mux.HandleFunc("GET /todos", withMiddlewares(h.ListTodos))
	mux.HandleFunc("POST /todos", withMiddlewares(h.CreateTodo))
	mux.HandleFunc("OPTIONS /todos", withMiddlewares(h.CollectionOptions))

	mux.HandleFunc("GET /todos/{id}", withMiddlewares(h.GetTodo))
	mux.HandleFunc("PUT /todos/{id}", withMiddlewares(h.UpdateTodo))
	mux.HandleFunc("DELETE /todos/{id}", withMiddlewares(h.DeleteTodo))
	mux.HandleFunc("OPTIONS /todos/{id}", withMiddlewares(h.ItemOptions))

	mux.HandleFunc("GET /health", h.HealthCheck)

	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return mux
}
