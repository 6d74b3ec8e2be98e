package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/auth"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/employee"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/payroll"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/domain/reports"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/platform/config"
	cryptoutil "github.com/mwendaalphonce/pactiPay-sub001/internal/platform/crypto"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/platform/db"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/platform/metrics"
	authhandler "github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/handlers/auth"
	employeehandler "github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/handlers/employees"
	payrollhandler "github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/handlers/payroll"
	reportshandler "github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/handlers/reports"
	statutoryhandler "github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/handlers/statutory"
	"github.com/mwendaalphonce/pactiPay-sub001/internal/transport/http/middleware"
)

// App is the fully wired application. Tests construct one with New and mount
// Router on an httptest server; production goes through Run.
type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New connects the pool, applies migrations and seed data when configured,
// and assembles the router with every domain mounted under /api/v1. The
// caller owns the returned App and must Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		pool.Close()
		return nil, err
	}

	authStore := auth.NewStore(pool)
	authService := auth.NewService(authStore)
	employeeService := employee.NewService(employee.NewStore(pool, crypto))
	payrollService := payroll.NewService(payroll.NewStore(pool), crypto, cfg.PayslipDir)
	reportsService := reports.NewService(reports.NewStore(pool), crypto)
	idempotency := middleware.NewIdempotencyStore(pool)
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Logger)
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(collector.Snapshot()); err != nil {
				log.Printf("metrics encode failed: %v", err)
			}
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authService, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Post("/auth/refresh", authHandler.HandleRefresh)

		employeehandler.NewHandler(employeeService, authService, authStore).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollService, employeeService, authStore, idempotency).RegisterRoutes(r)
		statutoryhandler.NewHandler(employeeService, authStore).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService, authStore).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, DB: pool, Router: router}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run loads configuration from the environment and serves until the process
// exits.
func Run() {
	cfg := config.Load()
	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("pactiPay server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// spaHandler serves the built frontend, falling back to index.html so
// client-side routes resolve on refresh.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
