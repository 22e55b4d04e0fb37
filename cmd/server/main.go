package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio_server/internal/chat"
	"portfolio_server/internal/config"
	"portfolio_server/internal/handler"
	"portfolio_server/internal/middleware"
	"portfolio_server/internal/repository"
	"portfolio_server/internal/service"
	"portfolio_server/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level)

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN)
	if err != nil {
		appLogger.Fatal("Invalid database DSN", "error", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConnections)
	poolCfg.MaxConnIdleTime = cfg.Database.MaxIdleTime

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		appLogger.Fatal("Failed to ping database", "error", err)
	}
	appLogger.Info("Database connection established")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("Failed to connect to Redis", "error", err)
	}
	appLogger.Info("Redis connection established")

	repos := repository.NewRepositories(dbPool, rdb, appLogger)
	services := service.NewServices(repos, cfg, appLogger)

	// The chat hub runs for the life of the process; cancelling the
	// context stops the broadcast loop during shutdown.
	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()

	hub := chat.NewHub(cfg.Chat.MaxMessageLen, cfg.Chat.HistoryLimit, appLogger)
	go hub.Run(hubCtx)

	authMiddleware := middleware.NewAuthMiddleware(services.Auth, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(services.RateLimit, appLogger)

	handlers := handler.NewHandlers(services, hub, dbPool, cfg, appLogger)

	router := setupRouter(handlers, authMiddleware, rateLimitMiddleware, cfg, appLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	hubCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func setupRouter(
	handlers *handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cfg *config.Config,
	log logger.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Check)

	// Realtime chat. Origin checking happens in the websocket upgrader,
	// not in CORS middleware.
	router.GET("/ws/chat", handlers.WebSocket.HandleChat)

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		public.Use(rateLimitMiddleware.Limit("api", 100, 60))
		{
			public.GET("/portfolio", handlers.Portfolio.Get)
			public.GET("/projects", handlers.Project.List)
			public.GET("/projects/:id", handlers.Project.Get)
			public.GET("/skills", handlers.Skill.List)
			public.GET("/github/contributions", handlers.GitHub.Contributions)
			public.GET("/cv", handlers.Upload.DownloadCV)
		}

		// Contact form gets a tighter budget than browsing.
		v1.POST("/contact", rateLimitMiddleware.Limit("contact", 5, 300), handlers.Contact.Submit)

		auth := v1.Group("/auth")
		auth.Use(rateLimitMiddleware.Limit("auth", 10, 60))
		{
			auth.POST("/login", handlers.Auth.Login)
			auth.POST("/refresh", handlers.Auth.Refresh)
			auth.POST("/logout", handlers.Auth.Logout)
		}

		admin := v1.Group("/admin")
		admin.Use(authMiddleware.RequireAuth())
		{
			admin.PUT("/portfolio", handlers.Portfolio.Update)
			admin.POST("/projects", handlers.Project.Create)
			admin.PUT("/projects/:id", handlers.Project.Update)
			admin.DELETE("/projects/:id", handlers.Project.Delete)
			admin.GET("/contact", handlers.Contact.List)
			admin.PATCH("/contact/:id", handlers.Contact.Update)
			admin.DELETE("/contact/:id", handlers.Contact.Delete)
			admin.GET("/stats", handlers.Stats.Dashboard)
			admin.GET("/stats/contacts", handlers.Stats.Contacts)
			admin.GET("/stats/projects", handlers.Stats.Projects)
			admin.POST("/uploads", handlers.Upload.Upload)
		}
	}

	// Uploaded files are served straight off disk.
	router.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	return router
}
