// Package main is the entry point for the WorldPianos API server.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/jessebautista/wpnew-sub000/internal/admin"
	"github.com/jessebautista/wpnew-sub000/internal/ai"
	"github.com/jessebautista/wpnew-sub000/internal/api"
	"github.com/jessebautista/wpnew-sub000/internal/auth"
	"github.com/jessebautista/wpnew-sub000/internal/blog"
	"github.com/jessebautista/wpnew-sub000/internal/comment"
	"github.com/jessebautista/wpnew-sub000/internal/config"
	"github.com/jessebautista/wpnew-sub000/internal/dataservice"
	"github.com/jessebautista/wpnew-sub000/internal/db"
	"github.com/jessebautista/wpnew-sub000/internal/event"
	"github.com/jessebautista/wpnew-sub000/internal/geocode"
	"github.com/jessebautista/wpnew-sub000/internal/health"
	"github.com/jessebautista/wpnew-sub000/internal/middleware"
	"github.com/jessebautista/wpnew-sub000/internal/mockdata"
	"github.com/jessebautista/wpnew-sub000/internal/newsletter"
	"github.com/jessebautista/wpnew-sub000/internal/piano"
	"github.com/jessebautista/wpnew-sub000/internal/report"
	"github.com/jessebautista/wpnew-sub000/internal/settings"
	"github.com/jessebautista/wpnew-sub000/internal/upload"
	"github.com/jessebautista/wpnew-sub000/internal/user"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("WorldPianos API Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config:", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	store, err := mockdata.NewStore()
	if err != nil {
		return err
	}

	// Live repositories default to the mock store; a configured database
	// swaps in Postgres for everything the SQL transport serves.
	var (
		users       user.Repository       = store.Users
		pianos      piano.Repository      = store.Pianos
		events      event.Repository      = store.Events
		posts       blog.Repository       = store.Posts
		comments    comment.Repository    = store.Comments
		reports     report.Repository     = store.Reports
		newsletters newsletter.Repository = store.Newsletter
	)

	checkers := map[string]health.Checker{}
	var transports []dataservice.Transport

	var conn *sql.DB
	if !cfg.UseMockData(config.IntegrationDatabase) {
		conn, err = db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		users = user.NewPostgresRepository(conn)
		pianos = piano.NewPostgresRepository(conn)
		events = event.NewPostgresRepository(conn)
		posts = blog.NewPostgresRepository(conn)
		comments = comment.NewPostgresRepository(conn)
		reports = report.NewPostgresRepository(conn)
		newsletters = newsletter.NewPostgresRepository(conn)

		checkers["database"] = health.NewDBChecker(conn)
		transports = append(transports, dataservice.NewSQLTransport(conn))
	}
	if cfg.IsConfigured(config.IntegrationRest) {
		if restTransportEnabled(cfg, conn != nil) {
			transports = append(transports, dataservice.NewRESTTransport(cfg.RestURL, cfg.RestKey))
		} else {
			logger.Warn("rest transport configured without a database, running fully on mock data")
		}
	}

	data := dataservice.New(logger, dataservice.NewMockTransport(store), transports...)
	if data.UsingMock() {
		logger.Warn("running on mock data, no live transport configured")
	}

	// Rate limiting: Redis when configured, per-process otherwise.
	var limitStore middleware.RateLimitStore
	if cfg.IsConfigured(config.IntegrationRedis) {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()
		limitStore = middleware.NewRedisRateLimitStore(client)
		checkers["redis"] = health.NewRedisChecker(client)
	} else {
		memStore := middleware.NewInMemoryRateLimitStore()
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				memStore.Cleanup()
			}
		}()
		limitStore = memStore
	}

	metrics := middleware.NewMetrics()
	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	jwt := auth.NewJWTService(cfg.JWTSecret)

	var uploads *upload.Service
	if cfg.IsConfigured(config.IntegrationStorage) {
		uploads, err = upload.NewService(upload.Config{
			Bucket:          cfg.StorageBucket,
			Endpoint:        cfg.StorageEndpoint,
			AccessKeyID:     cfg.StorageAccessKeyID,
			SecretAccessKey: cfg.StorageSecretKey,
			PublicBaseURL:   cfg.StoragePublicURL,
			MaxSizeMB:       cfg.MaxUploadSizeMB,
		}, pianos)
		if err != nil {
			return fmt.Errorf("init upload service: %w", err)
		}
	} else {
		uploads = upload.NewServiceWithStore(upload.UnconfiguredStore{}, upload.Config{MaxSizeMB: cfg.MaxUploadSizeMB}, pianos)
		logger.Warn("object storage not configured, uploads will fail")
	}

	siteSettings := settings.Defaults()
	if cfg.IsConfigured(config.IntegrationAnalytics) {
		siteSettings.Analytics = settings.AnalyticsSettings{
			Enabled:       true,
			MeasurementID: cfg.AnalyticsMeasurement,
		}
	}

	geocodeUA := ""
	if cfg.IsConfigured(config.IntegrationGeocoding) {
		geocodeUA = cfg.GeocodingUserAgent
	}

	router := api.NewRouter(api.RouterConfig{
		Pianos:         api.NewPianoHandlers(data, pianos, logger),
		Events:         api.NewEventHandlers(data, events, logger),
		Blog:           api.NewBlogHandlers(data, posts, users, logger),
		Comments:       api.NewCommentHandlers(comments, posts, users, logger),
		Reports:        api.NewReportHandlers(reports, logger),
		Admin:          api.NewAdminHandlers(admin.NewService(users, pianos, events, posts, comments, reports), logger),
		Settings:       api.NewSettingsHandlers(settings.NewService(siteSettings), logger),
		AI:             api.NewAIHandlers(ai.New(logger, cfg.OpenAIAPIKey, cfg.OpenAIModel), data, logger),
		Geocode:        api.NewGeocodeHandlers(geocode.New(logger, geocodeUA), logger),
		Uploads:        api.NewUploadHandlers(uploads, cfg.MaxUploadSizeMB, logger),
		Newsletter:     api.NewNewsletterHandlers(newsletters, logger),
		Search:         api.NewSearchHandlers(data, logger),
		Health:         api.NewHealthHandlers(checkers, data.UsingMock(), logger),
		JWT:            jwt,
		RateLimitStore: limitStore,
		Metrics:        metrics,
		Registry:       registry,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"port", cfg.Port,
			"env", cfg.Env,
			"mock_mode", data.UsingMock())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// restTransportEnabled decides whether the REST transport joins the live
// read chain. It is a fallback behind the database: without one, comments,
// reports, moderation and admin stats would still run on the in-memory
// store, and a moderator's decision would never reach the backend the
// public reads from. REST-only therefore means mock mode for the whole app.
func restTransportEnabled(cfg *config.Config, haveDB bool) bool {
	return cfg.IsConfigured(config.IntegrationRest) && haveDB
}
