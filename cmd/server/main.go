package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/joho/godotenv"

	"github.com/madmenmarketingindia/mad-rating/internal/config"
	"github.com/madmenmarketingindia/mad-rating/internal/db"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/audit"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/dashboard"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/disciplinary"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/employee"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/holiday"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/incentive"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/payroll"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/rating"
	"github.com/madmenmarketingindia/mad-rating/internal/domain/user"
	"github.com/madmenmarketingindia/mad-rating/internal/platform/metrics"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/api"
	audithandler "github.com/madmenmarketingindia/mad-rating/internal/transport/http/handlers/audit"
	authhandler "github.com/madmenmarketingindia/mad-rating/internal/transport/http/handlers/auth"
	dashboardhandler "github.com/madmenmarketingindia/mad-rating/internal/transport/http/handlers/dashboard"
	disciplinaryhandler "github.com/madmenmarketingindia/mad-rating/internal/transport/http/handlers/disciplinary"
	employeehandler "github.com/madmenmarketingindia/mad-rating/internal/transport/http/handlers/employee"
	holidayhandler "github.com/madmenmarketingindia/mad-rating/internal/transport/http/handlers/holiday"
	incentivehandler "github.com/madmenmarketingindia/mad-rating/internal/transport/http/handlers/incentive"
	payrollhandler "github.com/madmenmarketingindia/mad-rating/internal/transport/http/handlers/payroll"
	ratinghandler "github.com/madmenmarketingindia/mad-rating/internal/transport/http/handlers/rating"
	userhandler "github.com/madmenmarketingindia/mad-rating/internal/transport/http/handlers/user"
	"github.com/madmenmarketingindia/mad-rating/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logFormat := httplog.SchemaECS.Concise(cfg.Environment != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "mad-rating"),
		slog.String("env", cfg.Environment),
	)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			logger.Error("seed failed", "error", err)
			os.Exit(1)
		}
	}

	employeeStore := employee.NewStore(pool)
	userStore := user.NewStore(pool)
	ratingStore := rating.NewStore(pool)
	incentiveStore := incentive.NewStore(pool)
	payrollStore := payroll.NewStore(pool)
	disciplinaryStore := disciplinary.NewStore(pool)
	holidayStore := holiday.NewStore(pool)
	dashboardStore := dashboard.NewStore(pool)

	payrollService := payroll.NewService(payrollStore, employeeStore, ratingStore, incentiveStore)
	dashboardService := dashboard.NewService(dashboardStore, ratingStore)
	auditor := audit.New(pool)

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:           300,
	}))
	if cfg.TrustProxy {
		// Only behind a proxy the operator controls may X-Forwarded-For
		// rewrite RemoteAddr; otherwise the header is ignored entirely.
		router.Use(chimiddleware.RealIP)
	}
	router.Use(middleware.RequestID)
	router.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	router.Use(chimiddleware.CleanPath)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))

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
	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", authhandler.NewHandler(userStore, cfg.JWTSecret, cfg.JWTTTL).RegisterRoutes)
		r.Route("/user", userhandler.NewHandler(userStore, auditor).RegisterRoutes)
		r.Route("/employees", employeehandler.NewHandler(employeeStore, auditor).RegisterRoutes)
		r.Route("/rating", ratinghandler.NewHandler(ratingStore, auditor).RegisterRoutes)
		r.Route("/team", incentivehandler.NewHandler(incentiveStore, auditor).RegisterRoutes)

		payrollH := payrollhandler.NewHandler(payrollService, auditor, cfg.CompanyName, cfg.CompanyAddress)
		r.Route("/attendance-payroll", payrollH.RegisterPayrollRoutes)
		r.Route("/salary", payrollH.RegisterSalaryRoutes)
		r.Route("/export", payrollH.RegisterExportRoutes)

		r.Route("/disciplinary", disciplinaryhandler.NewHandler(disciplinaryStore, auditor).RegisterRoutes)
		r.Route("/holiday", holidayhandler.NewHandler(holidayStore, auditor).RegisterRoutes)
		r.Route("/d", dashboardhandler.NewHandler(dashboardService).RegisterRoutes)
		r.Route("/audit", audithandler.NewHandler(auditor).RegisterRoutes)
	})

	logger.Info("server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
