/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the attendance ledger server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Resolve ledger configuration (defaults or -config JSON file)
  3. Initialize SQLite store
  4. Seed the demo roster if the store is empty
  5. Create API handler with dependencies
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: attendance.db)
           Use ":memory:" for an in-memory database
  -config  Optional JSON config file (days, rate, sites)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/attendance.db"

  # Run with in-memory database and a custom pay period
  ./server -db=":memory:" -config=period.json

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - factory/config.go: Configuration parsing
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abk8406/attendance-manager/api"
	"github.com/Abk8406/attendance-manager/engine"
	"github.com/Abk8406/attendance-manager/factory"
	"github.com/Abk8406/attendance-manager/roster"
	"github.com/Abk8406/attendance-manager/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "attendance.db", "SQLite database path")
	cfgPath := flag.String("config", "", "optional JSON config file")
	flag.Parse()

	// Resolve configuration
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Seed the demo roster on first run so the table has rows to edit
	if err := seedIfEmpty(context.Background(), store, cfg); err != nil {
		log.Fatalf("Failed to seed roster: %v", err)
	}

	// Initialize handler
	handler, err := api.NewHandler(cfg, store, store)
	if err != nil {
		log.Fatalf("Failed to initialize handler: %v", err)
	}

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// loadConfig returns the built-in defaults, or the parsed -config file.
func loadConfig(path string) (engine.Config, error) {
	if path == "" {
		return factory.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Config{}, err
	}
	return factory.ParseConfig(data)
}

// seedIfEmpty populates a fresh database with the demo roster.
func seedIfEmpty(ctx context.Context, store *sqlite.Store, cfg engine.Config) error {
	count, err := store.CountEmployees(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Println("Empty roster, seeding demo employees")
	return store.SaveRoster(ctx, roster.DemoRoster(cfg.Days))
}
