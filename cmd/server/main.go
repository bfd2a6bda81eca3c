package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/WD2026/todo-rest-service-katharinaviik/api"
	"github.com/WD2026/todo-rest-service-katharinaviik/config"
	_ "github.com/WD2026/todo-rest-service-katharinaviik/docs"
	"github.com/WD2026/todo-rest-service-katharinaviik/handler"
	"github.com/WD2026/todo-rest-service-katharinaviik/storage"
)

// @title Todo REST API
// @version 1.0
// @description Minimal REST API exposing CRUD operations over a single todo resource.
// @BasePath /
func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	// The store is built first and handed down explicitly; nothing in
	// the process holds a mutable package-level reference to it.
	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	h := handler.New(store)
	mux := api.SetupRoutes(h)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	go func() {
		log.Printf("Server started on %s (driver=%s, data=%s)", cfg.Addr, cfg.Driver, cfg.DataFile)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := server.Close(); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return storage.NewSQLiteStore(cfg.DataFile)
	default:
		return storage.NewTodoDao(cfg.DataFile)
	}
}
