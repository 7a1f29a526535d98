package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	"github.com/aprilmaraat/simple-account-api/internal/config"
	"github.com/aprilmaraat/simple-account-api/internal/database"
	"github.com/aprilmaraat/simple-account-api/internal/facades"
	"github.com/aprilmaraat/simple-account-api/internal/handlers"
	"github.com/aprilmaraat/simple-account-api/internal/logger"
	"github.com/aprilmaraat/simple-account-api/internal/middlewares"
	"github.com/aprilmaraat/simple-account-api/internal/repositories"
	"github.com/aprilmaraat/simple-account-api/internal/services"
	"github.com/aprilmaraat/simple-account-api/internal/tx"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title simple-account API
// @version 1.0.0
// @description CRUD backend for user accounts with welcome email notifications
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// run initializes the logger, database, optional Redis and Kafka clients,
// wires the service graph, and serves HTTP until shutdown.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := cfg.PostgresDSN()
	logger.Log.Infof("Connecting to PostgreSQL: %s:%d/%s", cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PostgresMaxOpenConns)
	db.SetMaxIdleConns(cfg.PostgresMaxIdleConns)

	if err := database.RunMigrations(db); err != nil {
		logger.Log.Errorw("migration error", "error", err)
		return err
	}
	logger.Log.Info("Database migrations applied")

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctxShutdown)

	// Wire the notifier per configured mode
	smtpNotifier := facades.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPName, cfg.SMTPPassword)

	var notifier services.Notifier
	switch cfg.NotifierMode {
	case config.NotifierModeSMTP:
		notifier = smtpNotifier
	case config.NotifierModeQueue:
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr(),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Errorw("Redis connection error", "error", err)
			return err
		}
		defer rdb.Close()

		notifier = facades.NewEmailQueueNotifier(rdb, cfg.EmailQueueKey)

		worker := facades.NewEmailQueueWorker(rdb, cfg.EmailQueueKey, smtpNotifier)
		group.Go(func() error {
			worker.Run(groupCtx)
			return nil
		})
	default:
		logger.Log.Warnw("notifications disabled", "mode", cfg.NotifierMode)
	}

	// Wire the event stream when brokers are configured
	var events services.EventWriter
	if cfg.KafkaBrokers != "" {
		writer := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer writer.Close()
		events = writer
	}

	// Initialize repositories and the transaction runner
	userReadRepo := repositories.NewUserReadRepository(db, tx.FromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, tx.FromContext)
	txRunner := tx.NewRunner(db)

	// Initialize services
	userService := services.NewUserService(userReadRepo, userWriteRepo, txRunner, notifier, events)

	// Initialize handlers
	userListHandler := handlers.NewUserListHandler(userService)
	userDetailHandler := handlers.NewUserDetailHandler(userService)
	loginHandler := handlers.NewLoginHandler(userService)
	registerHandler := handlers.NewRegisterHandler(userService)
	updateHandler := handlers.NewUpdateHandler(userService)
	deleteHandler := handlers.NewDeleteHandler(userService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api/user", func(r chi.Router) {
		r.Get("/user-list", userListHandler)
		r.Get("/user-detail/{id}", userDetailHandler)
		r.Post("/login", loginHandler)
		r.Post("/register", registerHandler)
		r.Put("/update", updateHandler)
		r.Delete("/delete/{id}", deleteHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	stop()
	if err := group.Wait(); err != nil {
		logger.Log.Errorw("worker shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
