package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/mattn/go-sqlite3"

	"github.com/istitla/istitla/internal/api"
	"github.com/istitla/istitla/internal/cache"
	"github.com/istitla/istitla/internal/config"
	"github.com/istitla/istitla/internal/db"
	"github.com/istitla/istitla/internal/middleware"
	"github.com/istitla/istitla/internal/services"
	"github.com/istitla/istitla/internal/utils"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("jwt secret not configured (set ISTITLA_JWT_SECRET)")
	}

	store, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer cleanup()

	auth, err := middleware.NewAuth(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	router := api.NewRouter(api.Config{
		Store:   store,
		Auth:    services.NewAuthService(store, auth.SignToken),
		Surveys: services.NewSurveyService(store),
		Analytics: services.NewAnalyticsService(store, services.AnalyticsOptions{
			DefaultTimezone:     cfg.DefaultTimezone,
			NPSBands:            cfg.NPSBands,
			ExcludeUnknownYesNo: cfg.ExcludeUnknownYesNo,
		}),
		Cache:    cache.NewMemory(),
		CacheTTL: cfg.CacheTTL,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.LocaleMiddleware)
	r.Use(middleware.NoStore)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(req.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":      true,
			"name":    "Istitla API",
			"version": version,
			"locale":  locale,
			"msg":     utils.T(locale, "health.ok"),
		})
	})
	router.Register(r, auth)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("istitla server listening on %s", cfg.Addr)
		errChan <- srv.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	case sig := <-sigChan:
		log.Printf("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

// openStore picks sqlite when a path is configured, the in-memory store
// otherwise. The memory store suits demos and tests; it loses everything
// on restart.
func openStore(cfg *config.Config) (api.Store, func(), error) {
	if cfg.SQLitePath == "" {
		log.Print("no sqlite_path configured, using in-memory store")
		return api.NewMemoryStore(), func() {}, nil
	}
	conn, err := sql.Open("sqlite3", cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(conn, ""); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	store, err := db.NewSQLiteStore(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return store, func() { _ = conn.Close() }, nil
}
