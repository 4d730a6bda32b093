package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"senscalc/adapters/excel"
	"senscalc/adapters/postgres"
	"senscalc/app"
	"senscalc/internal"
	"senscalc/internal/config"
	"senscalc/internal/errors"
	"senscalc/internal/observability"
	"senscalc/ports"
	"senscalc/ui"
)

// initDatabase connects the optional calculation-history database.
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.EnsureSchema(db); err != nil {
		return nil, errors.Wrap(err, "failed to ensure calculations schema")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file (development convenience)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)
	logger := internal.NewDefaultLogger()

	var history ports.CalculationHistoryRepository
	if cfg.Database.URL != "" {
		db, err := initDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		history = postgres.NewHistoryRepository(db)
		logger.Info("calculation history enabled")
	} else {
		logger.Info("no DATABASE_URL set, calculation history disabled")
	}

	collector, err := observability.NewCalculatorCollector(nil)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	calc := app.NewCalculatorService(logger, collector, history)

	server, err := ui.NewServer(calc, history, excel.NewReportWriter(), logger)
	if err != nil {
		log.Fatalf("Failed to build web server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiSrv := server.HTTPServer(":" + cfg.Server.Port)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("calculator listening on :%s", cfg.Server.Port)
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	var debugSrv *http.Server
	if cfg.Observability.Enabled {
		debugSrv = observability.NewDebugServer(":"+cfg.Observability.Port, collector)
		g.Go(func() error {
			logger.Info("metrics/pprof listening on :%s", cfg.Observability.Port)
			if err := debugSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = apiSrv.Shutdown(context.Background())
		if debugSrv != nil {
			_ = debugSrv.Shutdown(context.Background())
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
