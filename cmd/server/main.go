/*
main.go - HTTP server entry point

PURPOSE:
  Starts the attendance ledger HTTP server. Owns the storage lifecycle:
  the SQLite handle is constructed here and passed into the service; the
  ledger itself never holds global connection state.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Open SQLite store, ensure the template partition exists
  3. Build ledger service and HTTP router
  4. Serve with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: attendance.db)
           Use ":memory:" for an in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, close the database, exit.

SEE ALSO:
  - api/server.go: router configuration
  - cmd/attendance/main.go: CLI front-end over the same service
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

	"github.com/warp/attendance-ledger/api"
	"github.com/warp/attendance-ledger/ledger"
	"github.com/warp/attendance-ledger/store/sqlite"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "attendance.db", "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// The write path needs a blueprint for the first month ever created.
	if _, err := store.CreatePartition(context.Background(), ledger.TemplatePartition); err != nil {
		log.Fatalf("Failed to ensure template partition: %v", err)
	}

	svc := ledger.NewService(store, store)
	router := api.NewRouter(api.NewHandler(svc))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Attendance ledger on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

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
