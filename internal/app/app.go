package app

import (
	"errors"
	"fmt"

	"github.com/checkhealth/goals/internal/config"
	"github.com/checkhealth/goals/internal/db"
	"github.com/checkhealth/goals/internal/event"
	"github.com/checkhealth/goals/internal/repository"
	"github.com/checkhealth/goals/internal/service"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	Transport   event.Transport
	GoalService *service.GoalService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Event transport
	transport, err := event.NewTransport(cfg)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to initialize event transport: %w", err)
	}

	// Repositories
	goalRepository := repository.NewGoalRepository(database)

	// Services
	notifier := event.NewNotifier(transport)
	goalService := service.NewGoalService(goalRepository, notifier)

	return &App{
		Cfg:         cfg,
		DB:          database,
		Transport:   transport,
		GoalService: goalService,
	}, nil
}

func (a *App) Close() error {
	var errs []error
	if a.Transport != nil {
		if err := a.Transport.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s transport: %w", a.Transport.Name(), err))
		}
	}
	if a.DB != nil {
		if err := db.Close(a.DB); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
