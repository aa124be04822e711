package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/emkopo/employee_lending_app/internal/apperrors"
	"github.com/emkopo/employee_lending_app/internal/core/services"
	"github.com/emkopo/employee_lending_app/internal/logging"
	"github.com/emkopo/employee_lending_app/internal/platform/events"
	"github.com/emkopo/employee_lending_app/internal/repositories/database/pgsql"
	"github.com/emkopo/employee_lending_app/pkg/config"
	"github.com/emkopo/employee_lending_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// allowAllDirectory stands in for the employer-side borrower directory, which
// is owned by an external system. Every borrower ID is accepted.
type allowAllDirectory struct{}

func (allowAllDirectory) BorrowerExists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.New(cfg.IsProduction)
	slog.SetDefault(logger)

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	publisher, err := events.NewKafkaPublisher(
		strings.Split(cfg.KafkaBrokers, ","),
		cfg.LoanEventsTopic,
		cfg.KafkaWriteWait,
		cfg.EventWorkers,
		logger,
	)
	if err != nil {
		logger.Error("Failed to initialize event publisher", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := publisher.Close(); cerr != nil {
			logger.Error("Error closing event publisher", slog.String("error", cerr.Error()))
		}
	}()

	repos := pgsql.NewRepositoryProvider(dbPool)
	container := services.NewContainer(&repos, publisher, allowAllDirectory{}, cfg.MutationRetries)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go runHealthLoop(ctx, container, logger)

	logger.Info("Lending backend ready.")
	<-ctx.Done()
	logger.Info("Shutting down.")
}

// runHealthLoop periodically runs a synthetic read through the service and
// repository stack. ErrNotFound is the healthy outcome; any other error means
// the database path behind the container is broken.
func runHealthLoop(ctx context.Context, container *services.Container, logger *slog.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			_, err := container.Loan.GetLoanByID(checkCtx, "health-check")
			cancel()
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				logger.Error("Health check failed", slog.String("error", err.Error()))
			}
		}
	}
}

// runMigrations applies all pending SQL migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
