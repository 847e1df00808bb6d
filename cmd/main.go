// pipeline-service — hiring-pipeline state engine.
//
// Tracks candidates through application review, board stages, interview
// scheduling and the offer lifecycle. Exposes a JSON API used by the
// dashboard gateway:
//   - create/update/delete per entity kind
//   - updateStatus / updateStage transitions via the workflow policy
//   - pipeline board view and applicants counter recount
//
// Every successful write publishes VIEW_INVALIDATED to Redis so dependent
// views refetch before their next render.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talenthub/pipeline-service/internal/config"
	"talenthub/pipeline-service/internal/db"
	"talenthub/pipeline-service/internal/httpserver"
	"talenthub/pipeline-service/internal/invalidate"
	"talenthub/pipeline-service/internal/logger"
	"talenthub/pipeline-service/internal/store"
	"talenthub/pipeline-service/internal/workflow"
)

const version = "1.0.0"

func main() {
	log, err := logger.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Infow("connecting to PostgreSQL")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	log.Infow("connecting to Redis")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	entities := store.NewPostgres(pool)
	views := invalidate.NewPublisher(rdb)
	svc := workflow.NewService(entities, views, log)
	actions := workflow.NewActions(svc, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	httpserver.NewHandler(actions).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("listening", "version", version, "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown error", "err", err)
	}
	log.Infow("stopped")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"pipeline-service","version":%q}`, version)
}
