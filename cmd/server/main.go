/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the ground-ops roster server: configuration,
  dependency wiring, graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize the SQLite store
  3. Wire domain services and the API handler
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

CONFIGURATION:
  Flags override environment:
    -port  / PORT          HTTP server port (default: 8080)
    -db    / DB_PATH       SQLite database path (default: roster.db,
                           ":memory:" for in-memory)
    -cors  / CORS_ORIGINS  Comma-separated allowed origins

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, close the database, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite:  Database implementation
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
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/skyport/roster-engine/api"
	"github.com/skyport/roster-engine/roster"
	"github.com/skyport/roster-engine/store/sqlite"
	"github.com/skyport/roster-engine/wchr"
)

func main() {
	// .env is optional; flags still win.
	_ = godotenv.Load()

	port := flag.Int("port", envInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envString("DB_PATH", "roster.db"), "SQLite database path")
	corsOrigins := flag.String("cors", envString("CORS_ORIGINS", "http://localhost:5173,http://localhost:8080"), "comma-separated allowed CORS origins")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Wire domain services
	schedules := roster.NewService(store, store, store)
	registry := wchr.NewRegistry(store)
	reports := wchr.NewService(registry, store)

	handler := api.NewHandler(schedules, registry, reports, store, store)
	router := api.NewRouter(handler, strings.Split(*corsOrigins, ","))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Roster server starting on http://localhost:%d", *port)
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

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
