// Package app assembles the catalogue service from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"catalogue/internal/config"
	"catalogue/internal/database"
	"catalogue/internal/handlers"
	"catalogue/internal/middleware"
	"catalogue/internal/repositories"
	"catalogue/internal/services"
	"catalogue/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// App is a fully wired catalogue service.
type App struct {
	Fiber    *fiber.App
	Products *services.ProductService
	Auth     *services.AuthService

	cfg    *config.Config
	db     *gorm.DB
	mq     *rabbitmq.Client
	logger *slog.Logger
}

// New builds the repositories, services and HTTP routes described by cfg.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	a := &App{cfg: cfg, logger: log}

	productRepo, userRepo, err := a.openStorage()
	if err != nil {
		return nil, err
	}

	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.mq = mq
		publisher = mq
		log.Info("Publishing product events", "queue", cfg.RabbitMQQueue)
	}

	a.Products = services.NewProductService(productRepo, publisher, log)

	a.Fiber = fiber.New(fiber.Config{
		AppName:               "catalogue",
		ErrorHandler:          handlers.ErrorHandler(log),
		UnescapePath:          true,
		DisableStartupMessage: true,
	})
	a.Fiber.Use(recover.New())
	a.Fiber.Use(requestid.New())
	a.Fiber.Use(logger.New(logger.Config{
		Format:        "${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output:        accessLogWriter{logger: log.With("component", "access")},
		DisableColors: true,
	}))

	handlers.NewHealthHandler(a.ping()).RegisterRoutes(a.Fiber)

	var writeGuards []fiber.Handler
	if cfg.AuthEnabled {
		a.Auth = services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
		handlers.NewAuthHandler(a.Auth).RegisterRoutes(a.Fiber)
		writeGuards = append(writeGuards, middleware.AuthRequired(a.Auth))
	}
	handlers.NewProductHandler(a.Products).RegisterRoutes(a.Fiber, writeGuards...)

	if cfg.SeedDemoData {
		seedDemoProducts(context.Background(), a.Products, log)
	}
	return a, nil
}

func (a *App) openStorage() (repositories.ProductRepository, repositories.UserRepository, error) {
	if a.cfg.DBDriver == config.DriverMemory {
		a.logger.Info("Using in-memory product storage")
		return repositories.NewMemoryProductRepository(), nil, nil
	}
	db, err := database.Open(a.cfg.DBDriver, a.cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	a.db = db
	a.logger.Info("Connected to database", "driver", a.cfg.DBDriver)
	return repositories.NewGORMProductRepository(db), repositories.NewGORMUserRepository(db), nil
}

func (a *App) ping() func(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return func(ctx context.Context) error {
		sqlDB, err := a.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// Listen serves HTTP on the configured port until Shutdown is called.
func (a *App) Listen() error {
	a.logger.Info("Starting server", "addr", a.cfg.AppPort)
	return a.Fiber.Listen(a.cfg.AppPort)
}

// Shutdown stops the HTTP server and releases storage and broker connections.
func (a *App) Shutdown() error {
	var errs []error
	if a.Fiber != nil {
		if err := a.Fiber.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
		}
	}
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Close releases storage and broker connections without touching the HTTP server.
func (a *App) Close() error {
	var errs []error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			errs = append(errs, fmt.Errorf("rabbitmq close: %w", err))
		}
		a.mq = nil
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
		a.db = nil
	}
	return errors.Join(errs...)
}
