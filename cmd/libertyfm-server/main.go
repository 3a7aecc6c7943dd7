package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/libertyfm/libertyfm/internal/api"
	"github.com/libertyfm/libertyfm/internal/core"
	"github.com/libertyfm/libertyfm/internal/importer"
	"github.com/libertyfm/libertyfm/internal/jobs"
	"github.com/libertyfm/libertyfm/internal/library"
	"github.com/libertyfm/libertyfm/internal/models"
	"github.com/libertyfm/libertyfm/internal/store"
	"github.com/libertyfm/libertyfm/internal/websocket"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize the core application components
	app, err := core.New()
	if err != nil {
		log.Fatalf("Fatal error during application setup: %v", err)
	}
	defer app.Close()

	// WebSocket hub for live import progress
	hub := websocket.NewHub()
	go hub.Run()

	// Job registry: each asynchronous import runs the same pipeline the
	// synchronous endpoint uses, and completed runs land in the history.
	st := store.New(app.DB)
	registry := jobs.NewRegistry(func(gameRoot string, observer importer.Observer) (*models.Summary, error) {
		summary, err := importer.Run(importer.Options{
			GameRoot:  gameRoot,
			TargetDir: app.Config.Target.Path,
			Tool:      app.Config.Tool,
			Observer:  observer,
		})
		if err != nil {
			return nil, err
		}
		if _, serr := st.SaveRun(summary); serr != nil {
			log.Printf("Error recording import run: %v", serr)
		}
		return summary, nil
	}, hub)

	// Periodic destination verify
	scheduler := jobs.StartScheduler(app.Config)
	defer scheduler.Stop()

	// Watch the destination for manual edits. The directory may not
	// exist before the first import; that is not fatal.
	if err := os.MkdirAll(app.Config.Target.Path, 0755); err != nil {
		log.Printf("Warning: could not create target directory: %v", err)
	}
	watcher := library.NewWatcherService(app.Config.Target.Path, jobs.VerifyDestination)
	if err := watcher.Start(); err != nil {
		log.Printf("Warning: destination watcher disabled: %v", err)
	} else {
		defer watcher.Stop()
	}

	// Setup the API server
	server := api.NewServer(app, registry, hub)
	addr := fmt.Sprintf(":%d", app.Config.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Router(),
	}

	// --- Graceful Shutdown ---
	// Start the server in a goroutine so it doesn't block.
	go func() {
		log.Printf("Starting web server on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not start server: %v", err)
		}
	}()

	// Wait for an interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a context with a timeout to allow existing connections to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
