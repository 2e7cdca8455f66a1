package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"quillpad/app/auth"
	"quillpad/app/controllers"
	"quillpad/app/metrics"
	"quillpad/app/repositories"
	"quillpad/app/repositories/postgres"
	"quillpad/app/routes"
	"quillpad/app/services"
	"quillpad/config"
	"quillpad/logger"
)

const cliVersion = "1.0.0"

const shutdownTimeout = 30 * time.Second

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch strings.ToLower(os.Args[1]) {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("quillpad version %s\n", cliVersion)
	case "serve":
		serve()
	case "migrate":
		runMigrations()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: quillpad <command>

Commands:
  help       Display this help message.
  version    Show version information.
  serve      Run the blog API server.
  migrate    Apply pending database migrations (postgres driver only).
`
	fmt.Println(helpText)
}

func postgresDSN(cfg *config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName,
	)
}

func runMigrations() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	if cfg.Storage.Driver != "postgres" {
		log.Error("migrate requires the postgres storage driver", slog.String("driver", cfg.Storage.Driver))
		os.Exit(1)
	}
	if err := postgres.Migrate(postgresDSN(cfg), cfg.Database.MigrationsPath); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("migrations applied")
}

// openRepositories wires the storage backend selected by config. The
// returned closer releases the underlying store.
func openRepositories(ctx context.Context, cfg *config.Config, log *slog.Logger) (repositories.PostRepository, repositories.CommentRepository, func(), error) {
	switch cfg.Storage.Driver {
	case "badger":
		db, err := repositories.OpenBadger(cfg.Storage.Path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open badger at %s: %w", cfg.Storage.Path, err)
		}
		closer := func() {
			if err := db.Close(); err != nil {
				log.Error("failed to close badger", slog.String("error", err.Error()))
			}
		}
		return repositories.NewBadgerPostRepository(db), repositories.NewBadgerCommentRepository(db), closer, nil

	case "postgres":
		dsn := postgresDSN(cfg)
		if err := postgres.Migrate(dsn, cfg.Database.MigrationsPath); err != nil {
			return nil, nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		pool, err := postgres.NewPool(ctx, dsn)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return postgres.NewPostRepository(pool, log), postgres.NewCommentRepository(pool, log), pool.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func serve() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	log.Info("starting quillpad", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postRepo, commentRepo, closeStore, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	sessions, err := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.CookieName, cfg.Auth.SessionTTL, cfg.Env == "prod")
	if err != nil {
		log.Error("failed to configure sessions", slog.String("error", err.Error()))
		os.Exit(1)
	}
	verifier := auth.NewProviderVerifier(cfg.Auth.CertsURL, cfg.Auth.Audience, cfg.Auth.Issuer)

	postService := services.NewPostService(postRepo, commentRepo, log)
	commentService := services.NewCommentService(commentRepo, log)

	router := routes.SetupRoutes(
		controllers.NewPostController(postService, log),
		controllers.NewCommentController(commentService, log),
		controllers.NewAuthController(verifier, sessions, log),
		sessions,
		log,
	)

	apiServer := routes.NewServer(cfg.HTTPServer.Address, cfg.HTTPServer.Port, router, log)
	metricsServer := metrics.NewServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	errCh := make(chan error, 2)
	go func() {
		if err := apiServer.Run(); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := metricsServer.Run(); err != nil {
			errCh <- err
		}
	}()

	metrics.ServiceHealth.Set(1)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", slog.String("error", err.Error()))
	}

	metrics.ServiceHealth.Set(0)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down API server", slog.String("error", err.Error()))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down metrics server", slog.String("error", err.Error()))
	}
	log.Info("stopped")
}
