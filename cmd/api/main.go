// Package main is the entry point for the scheduling API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/jbackman/instructor-scheduler/backend/internal/config"
	"github.com/jbackman/instructor-scheduler/backend/internal/handler"
	"github.com/jbackman/instructor-scheduler/backend/internal/middleware"
	"github.com/jbackman/instructor-scheduler/backend/internal/repo"
	"github.com/jbackman/instructor-scheduler/backend/internal/service"
	"github.com/jbackman/instructor-scheduler/backend/internal/share"
	"github.com/jbackman/instructor-scheduler/backend/internal/state"
	"github.com/jbackman/instructor-scheduler/backend/migrations"
)

// maxBodySize caps request bodies. Every request body in this API is a
// small JSON document; 1 MiB leaves generous headroom.
const maxBodySize = 1 << 20

// autosaver persists the schedule after every change, the server-side
// equivalent of writing through to browser storage on each mutation.
// Saves are coalesced: a change arriving while one is in flight queues at
// most one more.
type autosaver struct {
	changes chan struct{}
}

func newAutosaver() *autosaver {
	return &autosaver{changes: make(chan struct{}, 1)}
}

// ScheduleChanged implements state.Notifier.
func (a *autosaver) ScheduleChanged() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

func (a *autosaver) run(ctx context.Context, snapshots *service.SnapshotService) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.changes:
			saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if err := snapshots.Save(saveCtx); err != nil {
				slog.Error("autosave failed", "error", err)
			}
			cancel()
		}
	}
}

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// goose runs the embedded migrations on boot; a second database/sql
	// connection is needed because goose does not speak the pgx native API.
	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// --- Wiring -----------------------------------------------------------
	saver := newAutosaver()
	store := state.NewStore(saver)

	snapshots := service.NewSnapshotService(store, repo.NewSnapshotRepo(pool))
	server := handler.NewServer(
		store,
		service.NewRosterService(store),
		service.NewScheduleService(store),
		service.NewGenerator(store, nil),
		service.NewStatsService(store),
		snapshots,
		share.NewShortener(cfg.ShortenerBaseURL),
		cfg.ShareBaseURL,
	)

	// Restore the last snapshot before taking traffic. A fresh database
	// just means starting from the seed roster.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	if loaded, err := snapshots.Load(loadCtx); err != nil {
		slog.Warn("starting from seed state", "error", err)
	} else if loaded {
		slog.Info("schedule snapshot restored")
	}
	cancelLoad()

	saverCtx, stopSaver := context.WithCancel(context.Background())
	go saver.run(saverCtx, snapshots)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodySize))

	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	stopSaver()

	// One final save so nothing queued in the autosaver is lost.
	saveCtx, cancelSave := context.WithTimeout(context.Background(), 5*time.Second)
	if err := snapshots.Save(saveCtx); err != nil {
		slog.Error("final save failed", "error", err)
	}
	cancelSave()

	slog.Info("server stopped")
}

// runMigrations applies all embedded migrations against the database.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "source", res.Source.Path)
	}
	return nil
}
