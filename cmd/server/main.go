package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/todo-api/internal/challenge"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/handlers"
	"github.com/yukikurage/todo-api/internal/repository"
	"github.com/yukikurage/todo-api/internal/services"
	"github.com/yukikurage/todo-api/internal/session"
	"github.com/yukikurage/todo-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	operations := map[string]gfshutdown.Operation{}

	// Challenge store: in-process with a janitor, or Redis with native TTLs
	var challenges challenge.Store
	switch cfg.ChallengeBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		challenges = challenge.NewRedisStore(rdb, cfg.ChallengeTTL)
		operations["redis"] = func(ctx context.Context) error {
			return rdb.Close()
		}
	default:
		store := challenge.NewMemoryStore(challenge.WithTTL(cfg.ChallengeTTL))
		janitorCtx, stopJanitor := context.WithCancel(context.Background())
		go store.Run(janitorCtx, cfg.ChallengeSweepInterval)
		challenges = store
		operations["challenge-janitor"] = func(ctx context.Context) error {
			stopJanitor()
			return nil
		}
	}

	// Wire services
	sessions := session.NewHolder()
	hasher := utils.NewPasswordHasher(cfg.BcryptCost)

	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	authService := services.NewAuthService(userRepo, challenges, sessions, hasher)
	taskService := services.NewTaskService(taskRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSAllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))

	handlers.RegisterRoutes(r, authHandler, taskHandler, sessions)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server
	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// The database closes only after in-flight requests have drained
	operations["http-server"] = func(ctx context.Context) error {
		log.Println("Shutting down HTTP server...")
		shutdownErr := srv.Shutdown(ctx)
		return errors.Join(shutdownErr, database.Close())
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, operations)

	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	os.Exit(exitCode)
}
