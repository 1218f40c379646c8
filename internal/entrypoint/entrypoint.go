// Package entrypoint wires configuration, databases, the task queue and the
// HTTP router into a running service.
package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pmaren/bookannex/internal/annex"
	"github.com/pmaren/bookannex/internal/calibre"
	"github.com/pmaren/bookannex/internal/config"
	"github.com/pmaren/bookannex/internal/entities"
	http_controllers "github.com/pmaren/bookannex/internal/http"
	"github.com/pmaren/bookannex/internal/normalize"
	"github.com/pmaren/bookannex/internal/scheduler"
	"github.com/pmaren/bookannex/internal/tasks"
	"github.com/pmaren/bookannex/internal/thumbs"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting BookAnnex v%s", version)

	// A missing or broken metadata.db degrades catalog queries to empty
	// results instead of failing startup; the annex stays writable.
	library, err := calibre.Open(cfg.Library.Path, normalize.Default())
	if err != nil {
		log.Fatalf("Failed to open library: %v", err)
	}
	defer func() {
		if err := library.Close(); err != nil {
			log.Printf("Error closing library: %v", err)
		}
	}()
	if !library.Ok() {
		log.Printf("WARNING: library at %s is not readable, catalog queries will return empty results", cfg.Library.Path)
	}

	store, err := annex.Open(cfg.Annex.Path)
	if err != nil {
		log.Fatalf("Failed to initialize annex database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing annex database: %v", err)
		}
	}()
	store.SetBcryptCost(cfg.Auth.BcryptCost)

	thumbStore, err := thumbs.New(cfg.Thumbs.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize thumbnail store: %v", err)
	}

	// Task queue for background maintenance
	taskCfg := tasks.Config{
		Workers:           cfg.Tasks.Workers,
		ReleaseAfter:      cfg.Tasks.ReleaseAfter,
		CleanupInterval:   cfg.Tasks.CleanupInterval,
		RetentionDuration: cfg.Tasks.RetentionDuration,
	}
	taskClient, err := tasks.NewClient(cfg.Annex.Path, taskCfg)
	if err != nil {
		log.Fatalf("Failed to initialize task queue: %v", err)
	}
	defer func() {
		if err := taskClient.Close(); err != nil {
			log.Printf("Error closing task client: %v", err)
		}
	}()

	taskClient.Register(
		tasks.NewCleanupOrphanThingsQueue(store, library),
	)

	taskCtx, taskCtxCancel := context.WithCancel(context.Background())
	go taskClient.Start(taskCtx)

	// Cron scheduler enqueues the orphan sweep
	janitor := scheduler.NewJanitorScheduler(taskClient, cfg.Janitor)
	if err := janitor.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start janitor scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Library:         library,
		Store:           store,
		Thumbs:          thumbStore,
		Janitor:         janitor,
		DefaultPageSize: configuredPageSize(store),
		Version:         version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		janitor.Stop()
		taskClient.Stop(ctx)
		taskCtxCancel()
	}

	Serve(router, cfg, onShutdown)
}

// configuredPageSize reads the page_size setting from the annex, falling
// back to the baked-in default on any failure.
func configuredPageSize(store *annex.Store) int {
	raw, err := store.ConfigValue("page_size")
	if err == nil {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	n, _ := strconv.Atoi(entities.KnownConfigDefaults["page_size"])
	return n
}
