// Package server contains the HTTP handlers for the board API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "board/docs" // swagger docs
	"board/internal/cache"
	"board/internal/config"
	"board/internal/database"
	"board/internal/events"
	"board/internal/middleware"
	"board/internal/models"
	"board/internal/repository"
	"board/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	app            *fiber.App
	appOnce        sync.Once
	promMiddleware *fiberprometheus.FiberPrometheus
	publisher      events.Publisher
	validate       *validator.Validate
	postService    *service.PostService
	commentService *service.CommentService
	likeService    *service.LikeService
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// A nil publisher disables domain events.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, publisher events.Publisher) (*Server, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("server requires config and database")
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	stores := repository.NewStores(db)
	tx := repository.NewTransactor(db)

	likeService := service.NewLikeService(stores, tx, publisher)

	return &Server{
		config:         cfg,
		db:             db,
		promMiddleware: middleware.InitMetrics("board-api"),
		publisher:      publisher,
		validate:       validator.New(),
		postService:    service.NewPostService(tx, likeService, publisher),
		commentService: service.NewCommentService(tx, publisher),
		likeService:    likeService,
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Board Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	posts := api.Group("/posts")
	posts.Get("/", s.FindPosts)
	posts.Post("/", s.CreatePost)
	// Define specific /:id/:resource routes BEFORE generic /:id route
	posts.Post("/:id/comments", s.CreateComment)
	posts.Post("/:id/likes", s.CreateLike)
	posts.Get("/:id/likes", s.CountLikes)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)

	comments := api.Group("/comments")
	comments.Put("/:commentId", s.UpdateComment)
	comments.Delete("/:commentId", s.DeleteComment)
}

// App builds the Fiber application with middleware and routes. Start serves
// it; tests drive it with app.Test.
func (s *Server) App() *fiber.App {
	s.appOnce.Do(func() { s.app = s.newApp() })
	return s.app
}

func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Board API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, fe.Code, err)
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis only counts when it
// is configured.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if cache.GetClient() != nil {
		redisStatus = "healthy"
		if err := cache.Ping(ctx); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown stops accepting requests and waits for in-flight ones. Closing the
// database, cache and publisher is left to the caller that opened them.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.App().ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	middleware.Logger.Info("Server shutdown complete")
	return nil
}
